package tags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_Marshal_Empty(t *testing.T) {
	c := Container{}
	data, err := c.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)
}

func TestContainer_MarshalUnmarshal_RoundTrip(t *testing.T) {
	r := testRegistry(t)
	poison, _ := r.RequestTag("status.debuff.poison")
	haste, _ := r.RequestTag("status.buff.haste")
	c := NewContainer(poison, haste)

	data, err := c.Marshal()
	require.NoError(t, err)
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(2), data[1])

	decoded, err := Unmarshal(data, r)
	require.NoError(t, err)
	assert.True(t, decoded.HasTagExact(poison))
	assert.True(t, decoded.HasTagExact(haste))
	assert.Equal(t, 2, decoded.Count())
}

func TestUnmarshal_Empty(t *testing.T) {
	r := testRegistry(t)
	decoded, err := Unmarshal([]byte{1}, r)
	require.NoError(t, err)
	assert.True(t, decoded.IsEmpty())
}

func TestUnmarshal_SkipsBoundarySentinel(t *testing.T) {
	r := testRegistry(t)
	bound := r.InvalidNetIndex()
	data := []byte{0, 1, byte(bound), byte(bound >> 8)}

	decoded, err := Unmarshal(data, r)
	require.NoError(t, err)
	assert.True(t, decoded.IsEmpty())
}

func TestUnmarshal_RejectsIndexBeyondBound(t *testing.T) {
	r := testRegistry(t)
	bad := r.InvalidNetIndex() + 1
	data := []byte{0, 1, byte(bad), byte(bad >> 8)}

	_, err := Unmarshal(data, r)
	require.Error(t, err)
	var ie *InvalidNetIndexError
	assert.ErrorAs(t, err, &ie)
}

func TestUnmarshal_TruncatedBuffer(t *testing.T) {
	r := testRegistry(t)
	_, err := Unmarshal([]byte{0, 2, 5, 0}, r)
	assert.Error(t, err)
}

func TestContainer_Marshal_ExceedsLimit(t *testing.T) {
	keys := make([]string, MaxWireCount+1)
	for i := range keys {
		keys[i] = fmt.Sprintf("group%d.item%d", i, i)
	}
	r, err := NewRegistry(keys)
	require.NoError(t, err)

	c := Container{}
	for _, k := range keys {
		tag, terr := r.RequestTag(k)
		require.NoError(t, terr)
		c.Add(tag)
	}

	_, err = c.Marshal()
	assert.Error(t, err)
}
