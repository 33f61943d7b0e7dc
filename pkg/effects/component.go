package effects

import (
	"effectkit/pkg/entity"
	"effectkit/pkg/magnitude"
	"effectkit/pkg/tags"
)

// Component is a pluggable hook attached to an EffectData. Per spec.md
// Design Note 3, the hook set is finite and closed — CanApplyHook,
// OnApplyHook, OngoingHook, and OnRemoveHook — rather than an open
// component bus; a concrete Component may implement any subset of them
// and the Manager type-asserts for each at the pipeline stage it
// belongs to.
type Component interface {
	// ComponentName identifies the component for diagnostics
	// (components run in the EffectData.Components declaration order at
	// each stage).
	ComponentName() string
}

// CanApplyHook gates whether an effect may be applied at all. Any
// refusal aborts application with no handle and no cues.
type CanApplyHook interface {
	Component
	CanApply(target entity.Entity, effect *Effect) bool
}

// OnApplyHook runs once an effect has been committed to the target.
type OnApplyHook interface {
	Component
	OnApply(target entity.Entity, effect *Effect)
}

// OngoingHook gates whether a persistent effect's modifiers currently
// contribute to the target's attributes (the inhibition check).
type OngoingHook interface {
	Component
	Ongoing(target entity.Entity) bool
}

// OnRemoveHook runs when an active effect is unapplied or expires.
type OnRemoveHook interface {
	Component
	OnRemove(target entity.Entity, effect *Effect)
}

// Random is the injected randomness dependency ChanceToApply draws from
// (spec.md §5: the engine never reaches for a global RNG).
type Random interface {
	Float64() float64
}

// ChanceToApply denies application with probability 1-chance.
type ChanceToApply struct {
	Rand   Random
	Chance magnitude.ScalableFloat
}

func (c *ChanceToApply) ComponentName() string { return "ChanceToApply" }

func (c *ChanceToApply) CanApply(target entity.Entity, effect *Effect) bool {
	chance := c.Chance.Eval(float64(effect.Level()))
	if chance >= 1 {
		return true
	}
	if chance <= 0 {
		return false
	}
	return c.Rand.Float64() < chance
}

// TargetTagRequirements gates application, ongoing contribution, and
// forced removal against the target's combined tag set (owned union
// granted modifier tags). Any of the three queries may be nil to opt
// out of that gate.
type TargetTagRequirements struct {
	Application *tags.Query
	Removal     *tags.Query
	Ongoing     *tags.Query
}

func (t *TargetTagRequirements) ComponentName() string { return "TargetTagRequirements" }

func (t *TargetTagRequirements) CanApply(target entity.Entity, effect *Effect) bool {
	if t.Application == nil {
		return true
	}
	return t.Application.Matches(combinedTags(target))
}

func (t *TargetTagRequirements) Ongoing(target entity.Entity) bool {
	if t.Ongoing == nil {
		return true
	}
	return t.Ongoing.Matches(combinedTags(target))
}

func combinedTags(e entity.Entity) tags.Container {
	return e.OwnedTags().Union(e.ModifierTags())
}

// ModifierTagsComponent stamps tags onto the effect while it is active
// and not inhibited, exposed to other effects' TargetTagRequirements
// checks via Manager.GrantedTags.
type ModifierTagsComponent struct {
	TagsToAdd tags.Container
}

func (m *ModifierTagsComponent) ComponentName() string { return "ModifierTags" }
