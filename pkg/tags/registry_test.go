package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_ImplicitAncestors(t *testing.T) {
	r, err := NewRegistry([]string{"status.debuff.poison", "status.buff.haste"})
	require.NoError(t, err)

	// status, status.buff, status.buff.haste, status.debuff, status.debuff.poison
	assert.Equal(t, 5, r.Count())

	_, err = r.RequestTag("status")
	assert.NoError(t, err)
	_, err = r.RequestTag("status.debuff")
	assert.NoError(t, err)
}

func TestNewRegistry_Normalization(t *testing.T) {
	r, err := NewRegistry([]string{"  Status.Debuff.Poison  "})
	require.NoError(t, err)

	tag, err := r.RequestTag("status.debuff.poison")
	require.NoError(t, err)
	assert.Equal(t, "status.debuff.poison", tag.Key())
}

func TestNewRegistry_RejectsMalformedKeys(t *testing.T) {
	cases := []string{"", ".leading", "trailing.", "double..dot", "has space", "bad!char"}
	for _, c := range cases {
		_, err := NewRegistry([]string{c})
		assert.Errorf(t, err, "expected error for key %q", c)
	}
}

func TestRegistry_RequestTag_NotRegistered(t *testing.T) {
	r, err := NewRegistry([]string{"status.debuff.poison"})
	require.NoError(t, err)

	_, err = r.RequestTag("status.debuff.blind")
	require.Error(t, err)
	var nre *NotRegisteredError
	assert.ErrorAs(t, err, &nre)
}

func TestRegistry_RequestTagOrEmpty(t *testing.T) {
	r, err := NewRegistry([]string{"status.debuff.poison"})
	require.NoError(t, err)

	tag := r.RequestTagOrEmpty("nonexistent")
	assert.False(t, tag.IsValid())
	assert.Equal(t, EmptyNetIndex, tag.NetIndex())
}

func TestRegistry_NetIndicesAreDeterministic(t *testing.T) {
	keys := []string{"zeta.one", "alpha.two", "middle.three"}
	r1, err := NewRegistry(keys)
	require.NoError(t, err)
	r2, err := NewRegistry(keys)
	require.NoError(t, err)

	t1, _ := r1.RequestTag("zeta.one")
	t2, _ := r2.RequestTag("zeta.one")
	assert.Equal(t, t1.NetIndex(), t2.NetIndex())
}

func TestRegistry_InvalidNetIndex(t *testing.T) {
	r, err := NewRegistry([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, uint16(r.Count()+1), r.InvalidNetIndex())
}

func TestTag_MatchesTag(t *testing.T) {
	r, err := NewRegistry([]string{"enemy.undead.zombie"})
	require.NoError(t, err)

	enemy, _ := r.RequestTag("enemy")
	zombie, _ := r.RequestTag("enemy.undead.zombie")

	assert.True(t, enemy.MatchesTag(zombie))
	assert.False(t, zombie.MatchesTag(enemy))
	assert.True(t, zombie.MatchesTag(zombie))
}

func TestTag_Empty_NeverMatches(t *testing.T) {
	assert.False(t, Empty.MatchesTag(Empty))
	r, err := NewRegistry([]string{"a"})
	require.NoError(t, err)
	a, _ := r.RequestTag("a")
	assert.False(t, Empty.MatchesTag(a))
	assert.False(t, a.MatchesTag(Empty))
}
