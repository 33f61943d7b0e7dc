package tags

import (
	"fmt"
	"strings"
)

// EmptyNetIndex is the sentinel net index NetIndex reports for any
// unbound Tag (the zero value, Empty, and tags returned from
// RequestTagOrEmpty when the key is not
// registered. It is never assigned to a real registered tag.
const EmptyNetIndex uint16 = 0xFFFF

// Tag is an interned, registry-scoped handle to a dotted-path tag such
// as "status.debuff.poison". Tags from different Registry instances are
// never equal, even if their keys match textually.
type Tag struct {
	registry *Registry
	key      string
	index    uint16
}

// Empty is the unbound Tag: not bound to any registry.
var Empty = Tag{index: EmptyNetIndex}

// Key returns the tag's full dotted-path key, or "" for Empty.
func (t Tag) Key() string { return t.key }

// NetIndex returns the tag's registry-assigned wire index, or
// EmptyNetIndex if the tag is not bound to a registry.
func (t Tag) NetIndex() uint16 {
	if !t.IsValid() {
		return EmptyNetIndex
	}
	return t.index
}

// Registry returns the registry this tag was requested from, or nil for
// Empty.
func (t Tag) Registry() *Registry { return t.registry }

// IsValid reports whether the tag is bound to a registry.
func (t Tag) IsValid() bool { return t.registry != nil }

// String renders the tag's key, or "<empty>" for Empty.
func (t Tag) String() string {
	if !t.IsValid() {
		return "<empty>"
	}
	return t.key
}

// MatchesTag reports whether t equals other or is a hierarchy ancestor
// of other (e.g. "status" matches "status.debuff.poison"). Per the
// container matching rules this is asymmetric and Empty never matches
// anything, including itself.
func (t Tag) MatchesTag(other Tag) bool {
	if !t.IsValid() || !other.IsValid() {
		return false
	}
	if t.registry != other.registry {
		return false
	}
	if t.key == other.key {
		return true
	}
	return strings.HasPrefix(other.key, t.key+".")
}

// MatchesTagExact reports whether t and other are the identical tag.
func (t Tag) MatchesTagExact(other Tag) bool {
	if !t.IsValid() || !other.IsValid() {
		return false
	}
	return t.registry == other.registry && t.key == other.key
}

// ParentKey returns the key of t's immediate parent, and false if t has
// no parent (a root tag or Empty).
func (t Tag) ParentKey() (string, bool) {
	idx := strings.LastIndexByte(t.key, '.')
	if idx < 0 {
		return "", false
	}
	return t.key[:idx], true
}

// ValidationError reports a malformed tag key.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tags: invalid key %q: %s", e.Key, e.Reason)
}

// NotRegisteredError is returned by Registry.RequestTag when the key is
// not a registered tag and error-on-miss behavior was requested.
type NotRegisteredError struct {
	Key string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("tags: key %q is not registered", e.Key)
}

// InvalidNetIndexError is returned when deserializing a wire index that
// exceeds the receiving registry's valid range.
type InvalidNetIndexError struct {
	Index  uint16
	Bound  uint16
}

func (e *InvalidNetIndexError) Error() string {
	return fmt.Sprintf("tags: net index %d exceeds registry bound %d", e.Index, e.Bound)
}

// normalizeKey lowercases and trims a candidate tag key, and validates
// its shape: non-empty dot-separated segments of ASCII letters, digits,
// underscore, and hyphen.
func normalizeKey(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", &ValidationError{Key: raw, Reason: "empty key"}
	}
	if strings.Contains(key, " ") {
		return "", &ValidationError{Key: raw, Reason: "key must not contain whitespace"}
	}
	if strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return "", &ValidationError{Key: raw, Reason: "key must not start or end with '.'"}
	}
	if strings.Contains(key, "..") {
		return "", &ValidationError{Key: raw, Reason: "key must not contain empty segments"}
	}
	for _, seg := range strings.Split(key, ".") {
		for _, r := range seg {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
			if !ok {
				return "", &ValidationError{Key: raw, Reason: fmt.Sprintf("segment %q contains disallowed character %q", seg, r)}
			}
		}
	}
	return key, nil
}
