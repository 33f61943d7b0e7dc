package cues

import (
	"strings"

	"effectkit/pkg/tags"
)

// Manager holds tag-keyed cue handler registrations and dispatches
// resolved events to them. A Manager is construct-then-use and is not
// safe for concurrent registration and dispatch (spec.md §5).
type Manager struct {
	handlers map[string][]Handler
}

// NewManager constructs an empty cue dispatch manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[string][]Handler)}
}

// Register attaches h to every dispatch whose CueData.Tags contains a
// hierarchy match for t.
func (m *Manager) Register(t tags.Tag, h Handler) {
	if !t.IsValid() {
		return
	}
	m.handlers[t.Key()] = append(m.handlers[t.Key()], h)
}

// RegisterContainer registers h against every tag in c.
func (m *Manager) RegisterContainer(c tags.Container, h Handler) {
	for _, t := range c.Tags() {
		m.Register(t, h)
	}
}

// Dispatch resolves data's magnitude via resolve (supplied by the
// caller, which owns the attribute/effect state this package doesn't
// know about) and invokes every handler registered under a tag data.Tags
// hierarchy-matches. Invalid or unregistered cue tags dispatch to no
// handlers and produce no error, per spec.md §4.6.
//
// A handler registered under more than one tag present in data.Tags is
// invoked once per matching registration; callers that care about
// exactly-once delivery should register each handler under a single
// tag.
func (m *Manager) Dispatch(data CueData, callback CallbackType, raw float64, info Event) {
	info.RawMagnitude = raw
	info.NormalizedMagnitude = normalize(raw, data.MinValue, data.MaxValue)

	for key, hs := range m.handlers {
		if !m.keyMatches(key, data.Tags) {
			continue
		}
		for _, h := range hs {
			h.HandleCue(callback, info)
		}
	}
}

func (m *Manager) keyMatches(key string, c tags.Container) bool {
	for _, t := range c.Tags() {
		if t.Key() == key || strings.HasPrefix(t.Key(), key+".") {
			return true
		}
	}
	return false
}

func normalize(raw, min, max float64) float64 {
	if max == min {
		if raw <= min {
			return 0
		}
		return 1
	}
	v := (raw - min) / (max - min)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
