package tags

import (
	"golang.org/x/exp/slices"
)

// node is a registry-tree entry for one full key, including implicit
// ancestors that were never registered directly but exist because a
// descendant key was (e.g. registering "status.debuff.poison" implies
// "status" and "status.debuff" nodes).
type node struct {
	fullKey   string
	ancestors []string // strict ancestor full keys, root-to-parent order
	index     uint16
}

// Registry interns a closed set of dotted-path tag keys and assigns each
// a stable, deterministic net index for wire encoding. A Registry is
// immutable after NewRegistry returns and is safe for concurrent use.
type Registry struct {
	byKey   map[string]*node
	byIndex []*node
}

// NewRegistry builds a Registry from the given tag keys, implicitly
// adding every ancestor segment. Keys are normalized (trimmed,
// lowercased); duplicates after normalization collapse to one node. Net
// indices are assigned in sorted-by-key order for determinism across
// runs and processes.
func NewRegistry(keys []string) (*Registry, error) {
	seen := make(map[string]struct{})
	for _, raw := range keys {
		key, err := normalizeKey(raw)
		if err != nil {
			return nil, err
		}
		seen[key] = struct{}{}
		parts := splitKey(key)
		for i := 1; i < len(parts); i++ {
			seen[joinKey(parts[:i])] = struct{}{}
		}
	}

	allKeys := make([]string, 0, len(seen))
	for k := range seen {
		allKeys = append(allKeys, k)
	}
	slices.SortFunc(allKeys, func(a, b string) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})

	r := &Registry{
		byKey:   make(map[string]*node, len(allKeys)),
		byIndex: make([]*node, len(allKeys)),
	}
	for i, key := range allKeys {
		parts := splitKey(key)
		ancestors := make([]string, 0, len(parts)-1)
		for i := 1; i < len(parts); i++ {
			ancestors = append(ancestors, joinKey(parts[:i]))
		}
		n := &node{fullKey: key, ancestors: ancestors, index: uint16(i)}
		r.byKey[key] = n
		r.byIndex[i] = n
	}
	return r, nil
}

// Count returns the number of distinct tags (including implicit
// ancestors) known to the registry.
func (r *Registry) Count() int { return len(r.byIndex) }

// InvalidNetIndex returns the wire-format sentinel one past the last
// valid net index for this registry.
func (r *Registry) InvalidNetIndex() uint16 { return uint16(len(r.byIndex)) + 1 }

// RequestTag looks up a tag by key, normalizing it first. It returns a
// NotRegisteredError if the key was never registered (directly or as an
// implicit ancestor).
func (r *Registry) RequestTag(key string) (Tag, error) {
	norm, err := normalizeKey(key)
	if err != nil {
		return Empty, err
	}
	n, ok := r.byKey[norm]
	if !ok {
		return Empty, &NotRegisteredError{Key: key}
	}
	return Tag{registry: r, key: n.fullKey, index: n.index}, nil
}

// RequestTagOrEmpty looks up a tag by key and returns Empty instead of
// an error when the key is not registered.
func (r *Registry) RequestTagOrEmpty(key string) Tag {
	t, err := r.RequestTag(key)
	if err != nil {
		return Empty
	}
	return t
}

// TagByNetIndex reconstructs a Tag from a wire net index. It returns
// false if the index is not assigned in this registry.
func (r *Registry) TagByNetIndex(idx uint16) (Tag, bool) {
	if int(idx) >= len(r.byIndex) {
		return Empty, false
	}
	n := r.byIndex[idx]
	return Tag{registry: r, key: n.fullKey, index: n.index}, true
}

// ancestorsOf returns the strict hierarchy ancestors of the tag at idx,
// as Tags bound to this registry.
func (r *Registry) ancestorsOf(idx uint16) []Tag {
	n := r.byIndex[idx]
	out := make([]Tag, 0, len(n.ancestors))
	for _, ak := range n.ancestors {
		an := r.byKey[ak]
		out = append(out, Tag{registry: r, key: an.fullKey, index: an.index})
	}
	return out
}

func splitKey(key string) []string {
	parts := []string{}
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	parts = append(parts, key[start:])
	return parts
}

func joinKey(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}
