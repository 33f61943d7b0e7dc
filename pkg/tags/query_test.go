package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_MatchAnyTags(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")
	q := MatchAnyTags(NewContainer(poison, haste))

	assert.True(t, q.Matches(NewContainer(poison)))
	assert.True(t, q.Matches(NewContainer(haste)))
	blind, _ := r.RequestTag("status.debuff.blind")
	assert.False(t, q.Matches(NewContainer(blind)))
}

func TestQuery_MatchAllTags(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")
	q := MatchAllTags(NewContainer(poison, haste))

	assert.True(t, q.Matches(NewContainer(poison, haste)))
	assert.False(t, q.Matches(NewContainer(poison)))
}

func TestQuery_MatchAllTags_EmptySourceVacuouslyTrue(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	q := MatchAllTags(Container{})

	assert.True(t, q.Matches(NewContainer(poison)))
	assert.True(t, q.Matches(Container{}))
}

func TestQuery_MatchNoTags(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	q := MatchNoTags(NewContainer(poison))

	assert.True(t, q.Matches(Container{}))
	assert.False(t, q.Matches(NewContainer(poison)))
}

func TestQuery_HierarchyVsExact(t *testing.T) {
	r := testRegistry(t)
	status, _ := r.RequestTag("status")
	poison, _ := r.RequestTag("status.debuff.poison")

	hier := MatchTag(status)
	exact := MatchTagExact(status)

	c := NewContainer(poison)
	assert.True(t, hier.Matches(c))
	assert.False(t, exact.Matches(c))
}

func TestQuery_AllExpressionsMatch(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")

	hasPoison := MatchTag(poison)
	hasHaste := MatchTag(haste)
	q := AllExpressionsMatch(hasPoison, hasHaste)

	assert.True(t, q.Matches(NewContainer(poison, haste)))
	assert.False(t, q.Matches(NewContainer(poison)))
}

func TestQuery_AnyExpressionsMatch(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")

	hasPoison := MatchTag(poison)
	hasHaste := MatchTag(haste)
	q := AnyExpressionsMatch(hasPoison, hasHaste)

	assert.True(t, q.Matches(NewContainer(poison)))
	assert.True(t, q.Matches(NewContainer(haste)))
	blind, _ := r.RequestTag("status.debuff.blind")
	assert.False(t, q.Matches(NewContainer(blind)))
}

func TestQuery_NoExpressionsMatch(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	zombie, _ := r.RequestTag("enemy.undead.zombie")

	excludesBoth := NoExpressionsMatch(MatchTag(poison), MatchTag(zombie))

	assert.True(t, excludesBoth.Matches(Container{}))
	assert.False(t, excludesBoth.Matches(NewContainer(poison)))
}

func TestQuery_NestedComposite(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")
	zombie, _ := r.RequestTag("enemy.undead.zombie")

	// (poison AND haste) OR zombie
	inner := AllExpressionsMatch(MatchTag(poison), MatchTag(haste))
	q := AnyExpressionsMatch(inner, MatchTag(zombie))

	require.True(t, q.Matches(NewContainer(poison, haste)))
	require.True(t, q.Matches(NewContainer(zombie)))
	require.False(t, q.Matches(NewContainer(poison)))
}

func TestQuery_EmptyQueryNeverMatches(t *testing.T) {
	q := &Query{}
	assert.False(t, q.Matches(Container{}))
}
