package tags

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Container is an unordered set of Tags plus a cached transitive closure
// of their hierarchy ancestors. Zero value is a valid empty container.
// Container is not safe for concurrent mutation; callers that share a
// container across goroutines must synchronize externally.
type Container struct {
	tags       map[uint16]Tag
	parentTags map[uint16]Tag
	registry   *Registry
}

// NewContainer builds a Container from zero or more tags, which must all
// come from the same Registry.
func NewContainer(ts ...Tag) Container {
	c := Container{}
	for _, t := range ts {
		c.Add(t)
	}
	return c
}

// IsEmpty reports whether the container holds no tags.
func (c Container) IsEmpty() bool { return len(c.tags) == 0 }

// Count returns the number of explicit tags held (ancestors implied by
// hierarchy are not counted).
func (c Container) Count() int { return len(c.tags) }

// Tags returns the container's explicit tags sorted by key, for
// deterministic iteration.
func (c Container) Tags() []Tag {
	out := make([]Tag, 0, len(c.tags))
	for _, t := range c.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// Add inserts t into the container, recomputing the ancestor cache. It
// is a no-op if t is invalid or already present.
func (c *Container) Add(t Tag) {
	if !t.IsValid() {
		return
	}
	if c.tags == nil {
		c.tags = make(map[uint16]Tag)
		c.parentTags = make(map[uint16]Tag)
	}
	if c.registry == nil {
		c.registry = t.registry
	}
	if _, ok := c.tags[t.index]; ok {
		return
	}
	c.tags[t.index] = t
	for _, a := range c.registry.ancestorsOf(t.index) {
		c.parentTags[a.index] = a
	}
}

// Remove deletes t from the container and rebuilds the ancestor cache
// from the remaining tags.
func (c *Container) Remove(t Tag) {
	if !t.IsValid() || c.tags == nil {
		return
	}
	if _, ok := c.tags[t.index]; !ok {
		return
	}
	delete(c.tags, t.index)
	c.rebuildParents()
}

func (c *Container) rebuildParents() {
	c.parentTags = make(map[uint16]Tag)
	for idx := range c.tags {
		for _, a := range c.registry.ancestorsOf(idx) {
			c.parentTags[a.index] = a
		}
	}
}

// Clone returns an independent copy of c.
func (c Container) Clone() Container {
	out := Container{registry: c.registry}
	if len(c.tags) > 0 {
		out.tags = maps.Clone(c.tags)
		out.parentTags = maps.Clone(c.parentTags)
	}
	return out
}

// Union returns a new container holding the tags of both c and other.
func (c Container) Union(other Container) Container {
	out := c.Clone()
	for _, t := range other.tags {
		out.Add(t)
	}
	return out
}

// HasTag reports whether t is present explicitly or as a hierarchy
// ancestor match (c contains t itself, or a descendant of t). Per the
// engine's matching convention, Empty never matches, even against an
// empty container.
func (c Container) HasTag(t Tag) bool {
	if !t.IsValid() {
		return false
	}
	if _, ok := c.tags[t.index]; ok {
		return true
	}
	_, ok := c.parentTags[t.index]
	return ok
}

// HasTagExact reports whether t is present explicitly, with no
// hierarchy matching.
func (c Container) HasTagExact(t Tag) bool {
	if !t.IsValid() {
		return false
	}
	_, ok := c.tags[t.index]
	return ok
}

// HasAny reports whether c has a hierarchy match for any tag in other.
// HasAny against an empty other is false.
func (c Container) HasAny(other Container) bool {
	for _, t := range other.tags {
		if c.HasTag(t) {
			return true
		}
	}
	return false
}

// HasAnyExact reports whether c has an exact match for any tag in other.
func (c Container) HasAnyExact(other Container) bool {
	for _, t := range other.tags {
		if c.HasTagExact(t) {
			return true
		}
	}
	return false
}

// HasAll reports whether c has a hierarchy match for every tag in other.
// HasAll against an empty other is vacuously true.
func (c Container) HasAll(other Container) bool {
	for _, t := range other.tags {
		if !c.HasTag(t) {
			return false
		}
	}
	return true
}

// HasAllExact reports whether c has an exact match for every tag in
// other.
func (c Container) HasAllExact(other Container) bool {
	for _, t := range other.tags {
		if !c.HasTagExact(t) {
			return false
		}
	}
	return true
}

// Filter returns the subset of c's tags that hierarchy-match some tag in
// other.
func (c Container) Filter(other Container) Container {
	out := Container{registry: c.registry}
	for _, t := range c.tags {
		if other.HasTag(t) {
			out.Add(t)
		}
	}
	return out
}

// FilterExact returns the subset of c's tags that exactly match some tag
// in other.
func (c Container) FilterExact(other Container) Container {
	out := Container{registry: c.registry}
	for _, t := range c.tags {
		if other.HasTagExact(t) {
			out.Add(t)
		}
	}
	return out
}
