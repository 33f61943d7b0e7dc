// Package entity defines the narrow contract a host game object must
// satisfy to receive effects: attribute storage and two tag containers.
// It deliberately omits any handle back to an effects manager so that
// pkg/magnitude, pkg/effects, and pkg/cues can all depend on Entity
// without importing pkg/effects — the host's concrete entity type is
// free to embed its own *effects.Manager alongside these three methods.
package entity

import (
	"effectkit/pkg/attributes"
	"effectkit/pkg/tags"
)

// Entity is implemented by anything an effect can be applied to.
//
//   - Attributes returns the entity's attribute set, the target of every
//     Modifier a running effect applies.
//   - OwnedTags returns the tags describing the entity's own persistent
//     state (species, class), consulted by TargetTagRequirements gates
//     together with ModifierTags.
//   - ModifierTags returns the tags granted to the entity by its active
//     effects (ModifierTagsComponent, aggregated by the host's
//     effects.Manager.GrantedTags) — kept distinct from OwnedTags so
//     effect-granted tags come and go with the effects that grant them.
type Entity interface {
	Attributes() *attributes.AttributeSet
	OwnedTags() tags.Container
	ModifierTags() tags.Container
}
