package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeSet_DefineAndGet(t *testing.T) {
	s := NewAttributeSet(8)
	_, err := s.Define("health", 100, 0, 1000)
	require.NoError(t, err)

	a, ok := s.Get("health")
	require.True(t, ok)
	assert.Equal(t, 100.0, a.Current())
}

func TestAttributeSet_Define_Duplicate(t *testing.T) {
	s := NewAttributeSet(8)
	_, err := s.Define("health", 100, 0, 1000)
	require.NoError(t, err)

	_, err = s.Define("health", 50, 0, 1000)
	require.Error(t, err)
	var ade *AlreadyDefinedError
	assert.ErrorAs(t, err, &ade)
}

func TestAttributeSet_AddFlatModifier_NotFound(t *testing.T) {
	s := NewAttributeSet(8)
	err := s.AddFlatModifier("missing", 10)
	require.Error(t, err)
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestAttributeSet_AddFlatModifier_FiresListener(t *testing.T) {
	s := NewAttributeSet(8)
	health, _ := s.Define("health", 100, 0, 1000)

	var gotDelta float64
	fired := 0
	health.Subscribe(func(attr *Attribute, delta float64) error {
		fired++
		gotDelta = delta
		return nil
	})

	require.NoError(t, s.AddFlatModifier("health", 50))
	assert.Equal(t, 1, fired)
	assert.Equal(t, 50.0, gotDelta)
}

func TestAttributeSet_SetChangeHook_RunsBeforeListeners(t *testing.T) {
	s := NewAttributeSet(8)
	vitality, _ := s.Define("vitality", 10, 0, 999)
	_, _ = s.Define("max_health", 100, 0, 999)

	var order []string
	s.SetChangeHook(func(set *AttributeSet, attr *Attribute, delta float64) error {
		order = append(order, "hook")
		return nil
	})
	vitality.Subscribe(func(attr *Attribute, delta float64) error {
		order = append(order, "listener")
		return nil
	})

	require.NoError(t, s.SetBase("vitality", 20))
	assert.Equal(t, []string{"hook", "listener"}, order)
}

func TestAttributeSet_Cascade_DerivedAttribute(t *testing.T) {
	s := NewAttributeSet(8)
	strength, _ := s.Define("strength", 10, 0, 999)
	carryCapacity, _ := s.Define("carry_capacity", 0, 0, 999)

	strength.Subscribe(func(attr *Attribute, delta float64) error {
		return s.AddFlatModifier("carry_capacity", delta*10)
	})

	require.NoError(t, s.SetBase("strength", 20))
	assert.Equal(t, 100.0, carryCapacity.Current())
}

func TestAttributeSet_CascadeOverflow_CyclicDependency(t *testing.T) {
	s := NewAttributeSet(3)
	a, _ := s.Define("a", 1, 0, 9999)
	b, _ := s.Define("b", 1, 0, 9999)

	a.Subscribe(func(attr *Attribute, delta float64) error {
		return s.SetBase("b", attr.Current()+1)
	})
	b.Subscribe(func(attr *Attribute, delta float64) error {
		return s.SetBase("a", attr.Current()+1)
	})

	err := s.SetBase("a", 2)
	require.Error(t, err)
	var coe *CascadeOverflowError
	assert.ErrorAs(t, err, &coe)
}

func TestAttributeSet_SetBounds(t *testing.T) {
	s := NewAttributeSet(8)
	_, _ = s.Define("health", 50, 0, 100)

	require.NoError(t, s.SetBounds("health", 0, 40))
	h, _ := s.Get("health")
	assert.Equal(t, 40.0, h.Current())
}

func TestAttributeSet_Names_Sorted(t *testing.T) {
	s := NewAttributeSet(8)
	_, _ = s.Define("zeta", 0, 0, 1)
	_, _ = s.Define("alpha", 0, 0, 1)

	assert.Equal(t, []string{"alpha", "zeta"}, s.Names())
}
