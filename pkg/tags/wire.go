package tags

import (
	"encoding/binary"
	"fmt"
)

// MaxWireCount bounds how many tags a single container may encode,
// config.Config.MaxContainerCount() mirrors this at the engine level; the
// package-level default matches the 6-bit encoding (63 tags).
const MaxWireCount = 63

// Marshal encodes c in the engine's bit-exact wire format: a single
// isEmpty byte (1 if c.IsEmpty()), followed, for non-empty containers,
// by a count byte and count little-endian uint16 net indices.
func (c Container) Marshal() ([]byte, error) {
	if c.IsEmpty() {
		return []byte{1}, nil
	}
	ts := c.Tags()
	if len(ts) > MaxWireCount {
		return nil, fmt.Errorf("tags: container holds %d tags, exceeds wire limit %d", len(ts), MaxWireCount)
	}
	buf := make([]byte, 2+2*len(ts))
	buf[0] = 0
	buf[1] = byte(len(ts))
	for i, t := range ts {
		binary.LittleEndian.PutUint16(buf[2+2*i:], t.index)
	}
	return buf, nil
}

// Unmarshal decodes a wire-format container against r. Net indices equal
// to r.InvalidNetIndex() are tolerated and skipped (they denote a tag the
// sender's registry generation didn't have); indices strictly greater
// raise InvalidNetIndexError, since no well-formed sender could produce
// one.
func Unmarshal(data []byte, r *Registry) (Container, error) {
	if len(data) == 0 {
		return Container{}, fmt.Errorf("tags: empty wire buffer")
	}
	if data[0] == 1 {
		return Container{}, nil
	}
	if len(data) < 2 {
		return Container{}, fmt.Errorf("tags: truncated wire buffer")
	}
	count := int(data[1])
	need := 2 + 2*count
	if len(data) < need {
		return Container{}, fmt.Errorf("tags: truncated wire buffer, need %d bytes got %d", need, len(data))
	}
	bound := r.InvalidNetIndex()
	out := Container{registry: r}
	for i := 0; i < count; i++ {
		idx := binary.LittleEndian.Uint16(data[2+2*i:])
		if idx == bound {
			continue
		}
		if idx > bound {
			return Container{}, &InvalidNetIndexError{Index: idx, Bound: bound}
		}
		t, ok := r.TagByNetIndex(idx)
		if !ok {
			continue
		}
		out.Add(t)
	}
	return out, nil
}
