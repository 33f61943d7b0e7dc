package attributes

import "fmt"

// ChangeListener is notified with the signed delta in Current whenever a
// recompute changes it. Listeners are how a derived attribute (an
// AttributeBased magnitude capturing another attribute "live") stays in
// sync: a listener typically pushes a modifier delta onto a dependent
// attribute and asks the owning AttributeSet to recompute it, which is
// what makes the cascade bound in AttributeSet meaningful.
type ChangeListener func(attr *Attribute, delta float64) error

// Attribute is one named numeric channel set, restricted to the single
// FlatBonus modifier operation the engine implements: a base value
// written by Instant effects and periodic executions, a modifier channel accumulating
// signed deltas from persistent effects, and the derived overflow,
// validModifier, and current channels.
type Attribute struct {
	name string

	base     float64
	modifier float64
	min      float64
	max      float64

	overflow      float64
	validModifier float64
	current       float64

	listeners      []listenerEntry
	nextListenerID int
}

type listenerEntry struct {
	id int
	fn ChangeListener
}

// NewAttribute constructs an Attribute with the given permanent base
// value and inclusive clamp range.
func NewAttribute(name string, base, min, max float64) *Attribute {
	a := &Attribute{name: name, base: base, min: min, max: max}
	a.recompute()
	return a
}

func (a *Attribute) Name() string          { return a.name }
func (a *Attribute) BaseValue() float64    { return a.base }
func (a *Attribute) Modifier() float64     { return a.modifier }
func (a *Attribute) Min() float64          { return a.min }
func (a *Attribute) Max() float64          { return a.max }
func (a *Attribute) Current() float64      { return a.current }
func (a *Attribute) Overflow() float64     { return a.overflow }
func (a *Attribute) ValidModifier() float64 { return a.validModifier }

// AddFlatModifier folds a signed delta into the modifier channel. Instant
// effects and periodic executions write BaseValue directly; standing
// modifiers of Infinite and HasDuration effects write here, and removal later calls
// RemoveFlatModifier with the exact same magnitude.
func (a *Attribute) addFlatModifier(delta float64) (changed bool, netDelta float64) {
	a.modifier += delta
	return a.recompute()
}

// removeFlatModifier reverses a previously submitted delta exactly.
func (a *Attribute) removeFlatModifier(delta float64) (changed bool, netDelta float64) {
	return a.addFlatModifier(-delta)
}

// setBase overwrites the base value outright, used by a host setting an
// entity's starting stats or a level-derived base change.
func (a *Attribute) setBase(value float64) (changed bool, netDelta float64) {
	a.base = value
	return a.recompute()
}

// addToBase folds a signed delta into the base value. Per spec.md §4.2
// this is the write Instant-duration effects and periodic executions
// use: a permanent, consumed-once change, as opposed to the standing
// modifier channel addFlatModifier feeds.
func (a *Attribute) addToBase(delta float64) (changed bool, netDelta float64) {
	return a.setBase(a.base + delta)
}

// setBounds reconfigures the clamp range. Per spec.md §4.2, lowering max
// below the current prospective value shifts the difference from
// validModifier into overflow; raising it back restores validModifier
// and current rises accordingly. Min is analogous on the lower bound,
// except the engine tracks no corresponding underflow channel.
func (a *Attribute) setBounds(min, max float64) (changed bool, netDelta float64) {
	a.min, a.max = min, max
	return a.recompute()
}

// Subscribe registers a listener invoked whenever recompute changes
// Current, and returns a function that removes it. Per spec.md §4.2,
// the AttributeSet's own change hook (if any) runs before attribute-
// level listeners registered here.
func (a *Attribute) Subscribe(l ChangeListener) (unsubscribe func()) {
	id := a.nextListenerID
	a.nextListenerID++
	a.listeners = append(a.listeners, listenerEntry{id: id, fn: l})
	return func() {
		for i, le := range a.listeners {
			if le.id == id {
				a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

// recompute implements the spec.md §4.2 modifier-channel algorithm:
// prospective = base + modifier; overflow captures anything past max;
// validModifier is modifier net of that overflow; current clamps
// prospective into [min, max].
func (a *Attribute) recompute() (changed bool, netDelta float64) {
	prospective := a.base + a.modifier
	if prospective > a.max {
		a.overflow = prospective - a.max
		a.validModifier = a.modifier - a.overflow
	} else {
		a.overflow = 0
		a.validModifier = a.modifier
	}

	clamped := prospective
	if clamped < a.min {
		clamped = a.min
	}
	if clamped > a.max {
		clamped = a.max
	}

	delta := clamped - a.current
	a.current = clamped
	return delta != 0, delta
}

func (a *Attribute) String() string {
	return fmt.Sprintf("%s(base=%.2f current=%.2f range=[%.2f,%.2f])", a.name, a.base, a.current, a.min, a.max)
}
