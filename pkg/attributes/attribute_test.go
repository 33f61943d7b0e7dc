package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttribute_AddFlatModifier(t *testing.T) {
	a := NewAttribute("health", 0, 0, 100)

	changed, delta := a.addFlatModifier(3)
	assert.True(t, changed)
	assert.Equal(t, 3.0, delta)
	assert.Equal(t, 3.0, a.Current())
	assert.Equal(t, 3.0, a.Modifier())
	assert.Equal(t, 0.0, a.Overflow())
}

func TestAttribute_ClampAndOverflow(t *testing.T) {
	// A1 base 1, max 10; apply Infinite FlatBonus 99 (spec.md §8 S2).
	a := NewAttribute("a1", 1, 0, 10)

	a.addFlatModifier(99)

	assert.Equal(t, 10.0, a.Current())
	assert.Equal(t, 99.0, a.Modifier())
	assert.Equal(t, 9.0, a.ValidModifier())
	assert.Equal(t, 90.0, a.Overflow())
}

func TestAttribute_RemoveFlatModifier_Exact(t *testing.T) {
	a := NewAttribute("health", 10, 0, 100)
	a.addFlatModifier(25)
	changed, delta := a.removeFlatModifier(25)

	assert.True(t, changed)
	assert.Equal(t, -25.0, delta)
	assert.Equal(t, 10.0, a.Current())
	assert.Equal(t, 0.0, a.Modifier())
}

func TestAttribute_SetBase_OnlyInstantChannel(t *testing.T) {
	a := NewAttribute("health", 0, 0, 100)
	changed, delta := a.setBase(5)

	assert.True(t, changed)
	assert.Equal(t, 5.0, delta)
	assert.Equal(t, 5.0, a.BaseValue())
	assert.Equal(t, 5.0, a.Current())
}

func TestAttribute_SetBounds_ShiftsOverflow(t *testing.T) {
	a := NewAttribute("a1", 1, 0, 100)
	a.addFlatModifier(20) // prospective 21, within max

	changed, delta := a.setBounds(0, 10)
	assert.True(t, changed)
	assert.Equal(t, -11.0, delta) // 10 - 21
	assert.Equal(t, 11.0, a.Overflow())
	assert.Equal(t, 9.0, a.ValidModifier())

	changed, delta = a.setBounds(0, 100)
	assert.True(t, changed)
	assert.Equal(t, 11.0, delta) // 21 - 10
	assert.Equal(t, 0.0, a.Overflow())
	assert.Equal(t, 20.0, a.ValidModifier())
}

func TestAttribute_NoChangeWhenValueStable(t *testing.T) {
	a := NewAttribute("health", 100, 0, 1000)
	changed, delta := a.addFlatModifier(0)
	assert.False(t, changed)
	assert.Equal(t, 0.0, delta)
}
