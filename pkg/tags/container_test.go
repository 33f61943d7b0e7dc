package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry([]string{
		"status.debuff.poison",
		"status.debuff.blind",
		"status.buff.haste",
		"enemy.undead.zombie",
	})
	require.NoError(t, err)
	return r
}

func TestContainer_HasTag_HierarchyMatch(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	statusDebuff, _ := r.RequestTag("status.debuff")
	status, _ := r.RequestTag("status")

	c := NewContainer(poison)

	assert.True(t, c.HasTag(poison))
	assert.True(t, c.HasTag(statusDebuff))
	assert.True(t, c.HasTag(status))
	assert.False(t, c.HasTagExact(status))
}

func TestContainer_HasAny_EmptyOtherIsFalse(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	c := NewContainer(poison)

	assert.False(t, c.HasAny(Container{}))
}

func TestContainer_HasAll_EmptyOtherIsTrue(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	c := NewContainer(poison)

	assert.True(t, c.HasAll(Container{}))
}

func TestContainer_Remove_RebuildsAncestors(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	blind, _ := r.RequestTag("status.debuff.blind")
	status, _ := r.RequestTag("status")

	c := NewContainer(poison, blind)
	assert.True(t, c.HasTag(status))

	c.Remove(poison)
	assert.True(t, c.HasTag(status)) // blind still implies status

	c.Remove(blind)
	assert.False(t, c.HasTag(status))
	assert.True(t, c.IsEmpty())
}

func TestContainer_Union(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")

	a := NewContainer(poison)
	b := NewContainer(haste)
	u := a.Union(b)

	assert.Equal(t, 2, u.Count())
	assert.True(t, u.HasTagExact(poison))
	assert.True(t, u.HasTagExact(haste))
	// originals unaffected
	assert.Equal(t, 1, a.Count())
}

func TestContainer_Filter(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")
	debuffQuery, _ := r.RequestTag("status.debuff")

	c := NewContainer(poison, haste)
	filtered := c.Filter(NewContainer(debuffQuery))

	assert.Equal(t, 1, filtered.Count())
	assert.True(t, filtered.HasTagExact(poison))
}

func TestContainer_Clone_Independent(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	c := NewContainer(poison)
	clone := c.Clone()

	haste, _ := r.RequestTag("status.buff.haste")
	clone.Add(haste)

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 2, clone.Count())
}
