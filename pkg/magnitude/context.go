package magnitude

import "effectkit/pkg/entity"

// EvalContext carries everything a magnitude evaluation needs: the two
// entities a modifier's effect is bound between, the effect's current
// level, any SetByCaller bindings the caller made at effect-creation
// time, and a scratch map custom calculators may populate for the cue
// pipeline to read back (spec.md §4.3).
type EvalContext struct {
	Source entity.Entity
	Target entity.Entity
	Level  float64

	SetByCallerValues map[string]float64
	CustomParams      map[string]float64

	// FrozenCaptures holds the once-evaluated value of every
	// Snapshot capture this context's owning ActiveEffect has already
	// resolved, so re-evaluating the same modifier on a later level-up
	// or stack change reuses the apply-time reading instead of drawing
	// a fresh one. Nil for Instant contexts, which have no "later" to
	// freeze against; periodic ticks use their ActiveEffect's cache.
	FrozenCaptures map[CaptureDefinition]float64
}

func (c *EvalContext) entityFor(from CaptureSource) entity.Entity {
	if from == SourceEntity {
		return c.Source
	}
	return c.Target
}

// CaptureAttributeMagnitude reads the channel named by def from the
// appropriate entity. A missing entity or attribute yields 0, per
// spec.md §4.3's "if the attribute is not found... m = 0" rule. A
// Snapshot definition is read once and then served from
// FrozenCaptures for the lifetime of that cache.
func (c *EvalContext) CaptureAttributeMagnitude(def CaptureDefinition) float64 {
	if def.Snapshot && c.FrozenCaptures != nil {
		if v, ok := c.FrozenCaptures[def]; ok {
			return v
		}
	}

	v := c.readChannel(def)

	if def.Snapshot && c.FrozenCaptures != nil {
		c.FrozenCaptures[def] = v
	}
	return v
}

func (c *EvalContext) readChannel(def CaptureDefinition) float64 {
	e := c.entityFor(def.From)
	if e == nil {
		return 0
	}
	attr, ok := e.Attributes().Get(def.Attribute)
	if !ok {
		return 0
	}
	switch def.Channel {
	case ChannelBase:
		return attr.BaseValue()
	case ChannelModifier:
		return attr.Modifier()
	case ChannelValidModifier:
		return attr.ValidModifier()
	case ChannelOverflow:
		return attr.Overflow()
	case ChannelMin:
		return attr.Min()
	case ChannelMax:
		return attr.Max()
	default:
		return attr.Current()
	}
}
