package attributes

import (
	"fmt"
	"sort"
)

// NotFoundError is returned when an operation names an attribute the
// set does not define.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attributes: %q is not defined", e.Name)
}

// AlreadyDefinedError is returned by Define when the name is already in
// use.
type AlreadyDefinedError struct {
	Name string
}

func (e *AlreadyDefinedError) Error() string {
	return fmt.Sprintf("attributes: %q is already defined", e.Name)
}

// CascadeOverflowError is returned when a recompute cascade, driven by
// OnValueChanged listeners triggering further recomputes, exceeds the
// configured bound. It signals a runaway or cyclic attribute dependency
// graph rather than a transient condition.
type CascadeOverflowError struct {
	Attribute string
	Bound     int
}

func (e *CascadeOverflowError) Error() string {
	return fmt.Sprintf("attributes: recompute cascade through %q exceeded bound of %d passes", e.Attribute, e.Bound)
}

// SetChangeHook is the AttributeSet-level hook spec.md §4.2 describes:
// it implements derived-attribute rules (e.g. maxHealth := vitality*10)
// and runs before any attribute-level ChangeListener.
type SetChangeHook func(set *AttributeSet, attr *Attribute, delta float64) error

// AttributeSet is a named collection of Attributes belonging to one
// entity, with a bounded change-cascade so that AttributeBased live
// dependencies between attributes cannot recurse forever.
type AttributeSet struct {
	attrs        map[string]*Attribute
	cascadeBound int
	depth        int
	hook         SetChangeHook
}

// NewAttributeSet constructs an empty set. cascadeBound is the maximum
// recursion depth a single external stimulus (SetBase, AddFlatModifier,
// SetBounds) may drive through chained OnValueChanged listeners before
// the cascade is treated as a contract error.
func NewAttributeSet(cascadeBound int) *AttributeSet {
	return &AttributeSet{attrs: make(map[string]*Attribute), cascadeBound: cascadeBound}
}

// SetChangeHook installs (or clears, with nil) the set-level derived-
// attribute hook.
func (s *AttributeSet) SetChangeHook(hook SetChangeHook) { s.hook = hook }

// Define registers a new attribute with the given base value and clamp
// range.
func (s *AttributeSet) Define(name string, base, min, max float64) (*Attribute, error) {
	if _, exists := s.attrs[name]; exists {
		return nil, &AlreadyDefinedError{Name: name}
	}
	a := NewAttribute(name, base, min, max)
	s.attrs[name] = a
	return a, nil
}

// Get returns the named attribute, if defined.
func (s *AttributeSet) Get(name string) (*Attribute, bool) {
	a, ok := s.attrs[name]
	return a, ok
}

// Names returns the set's attribute names in sorted order.
func (s *AttributeSet) Names() []string {
	out := make([]string, 0, len(s.attrs))
	for n := range s.attrs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SetBase overwrites an attribute's base value (the channel Instant
// effects and periodic executions write) and runs a bounded recompute cascade.
func (s *AttributeSet) SetBase(name string, value float64) error {
	a, ok := s.attrs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	changed, delta := a.setBase(value)
	return s.propagate(a, changed, delta)
}

// AddToBase folds a signed delta into the named attribute's base value
// and runs a bounded recompute cascade. Instant-duration effects and
// periodic executions write here; persistent effects write
// AddFlatModifier instead.
func (s *AttributeSet) AddToBase(name string, delta float64) error {
	a, ok := s.attrs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	changed, netDelta := a.addToBase(delta)
	return s.propagate(a, changed, netDelta)
}

// AddFlatModifier folds a signed delta into the named attribute's
// modifier channel and runs a bounded recompute cascade. This is the
// channel persistent (non-Instant) effects write.
func (s *AttributeSet) AddFlatModifier(name string, delta float64) error {
	a, ok := s.attrs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	changed, netDelta := a.addFlatModifier(delta)
	return s.propagate(a, changed, netDelta)
}

// RemoveFlatModifier reverses a previously added delta exactly.
func (s *AttributeSet) RemoveFlatModifier(name string, delta float64) error {
	a, ok := s.attrs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	changed, netDelta := a.removeFlatModifier(delta)
	return s.propagate(a, changed, netDelta)
}

// SetBounds reconfigures an attribute's clamp range and runs a bounded
// recompute cascade.
func (s *AttributeSet) SetBounds(name string, min, max float64) error {
	a, ok := s.attrs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	changed, delta := a.setBounds(min, max)
	return s.propagate(a, changed, delta)
}

func (s *AttributeSet) propagate(a *Attribute, changed bool, delta float64) error {
	if !changed {
		return nil
	}
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.cascadeBound {
		return &CascadeOverflowError{Attribute: a.name, Bound: s.cascadeBound}
	}

	if s.hook != nil {
		if err := s.hook(s, a, delta); err != nil {
			return err
		}
	}
	for _, le := range a.listeners {
		if err := le.fn(a, delta); err != nil {
			return err
		}
	}
	return nil
}
