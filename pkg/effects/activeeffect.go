package effects

import (
	"github.com/google/uuid"

	"effectkit/pkg/entity"
	"effectkit/pkg/magnitude"
)

// ActiveEffectHandle is the opaque reference callers use to inspect or
// remove an active effect. It becomes invalid once the underlying
// ActiveEffect is gone; Manager methods taking a handle report
// NotActiveError once that happens.
type ActiveEffectHandle struct {
	id uuid.UUID
}

// modifierState remembers what a single modifier contributed to an
// attribute, so removal and live-dependency recomputation can apply the
// exact inverse.
type modifierState struct {
	attribute     string
	appliedDelta  float64
	capture       *liveCapture // non-nil for a non-snapshot AttributeBased modifier
}

// liveCapture is the subscription state for one non-snapshot
// AttributeBased modifier: which attribute it watches and an
// unsubscribe thunk.
type liveCapture struct {
	sourceAttribute string
	unsubscribe     func()
}

// ActiveEffect is a live binding of an Effect to a target's Manager.
type ActiveEffect struct {
	Handle ActiveEffectHandle
	Effect *Effect

	// source is the entity that was applying when this ActiveEffect was
	// created. Periodic ticks and post-apply recomputes (level-up,
	// stack changes) read SourceEntity captures from it, since the
	// Manager itself does not otherwise retain who applied what.
	source entity.Entity

	remainingDuration float64
	periodAccumulator float64

	stackCount int
	level      int

	inhibited     bool
	wasInhibited  bool
	removed       bool

	modifiers []modifierState

	// frozen caches every Snapshot capture this active effect has
	// already resolved, so level-up and stack recomputation reuse the
	// apply-time reading instead of drawing a fresh one.
	frozen map[magnitude.CaptureDefinition]float64
}

func newActiveEffect(effect *Effect, initialStack int, source entity.Entity) *ActiveEffect {
	ae := &ActiveEffect{
		Handle:     ActiveEffectHandle{id: uuid.New()},
		Effect:     effect,
		source:     source,
		stackCount: initialStack,
		level:      effect.Level(),
		frozen:     make(map[magnitude.CaptureDefinition]float64),
	}
	if effect.Data.Duration.Kind == DurationHasDuration {
		ae.remainingDuration = effect.Data.Duration.Duration.Eval(float64(ae.level))
	}
	return ae
}

// StackCount returns the active effect's current merge count.
func (ae *ActiveEffect) StackCount() int { return ae.stackCount }

// Level returns the active effect's current level.
func (ae *ActiveEffect) Level() int { return ae.level }

// Inhibited reports whether the active effect's modifiers are currently
// withheld by its ongoing tag requirement.
func (ae *ActiveEffect) Inhibited() bool { return ae.inhibited }

// RemainingDuration returns the active effect's time left, meaningless
// for Infinite or Instant effects.
func (ae *ActiveEffect) RemainingDuration() float64 { return ae.remainingDuration }
