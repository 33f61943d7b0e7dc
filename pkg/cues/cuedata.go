package cues

import "effectkit/pkg/tags"

// MagnitudeType names the live source a CueData's magnitude is drawn
// from at dispatch time.
type MagnitudeType int

const (
	AttributeValueChange MagnitudeType = iota
	AttributeCurrentValue
	AttributeBaseValue
	AttributeModifier
	AttributeValidModifier
	AttributeOverflow
	AttributeMin
	AttributeMax
	AttributeMagnitudeEvaluatedUpToChannel
	EffectLevel
	StackCount
)

// CueData names which tags trigger a cue, the normalization range, and
// which live value the cue reports.
type CueData struct {
	Tags              tags.Container
	MinValue          float64
	MaxValue          float64
	MagnitudeType     MagnitudeType
	MagnitudeAttribute string
}

// RequiresAttribute reports whether this cue's magnitude type reads an
// attribute (as opposed to effect-level metadata like EffectLevel or
// StackCount).
func (d CueData) RequiresAttribute() bool {
	switch d.MagnitudeType {
	case EffectLevel, StackCount:
		return false
	default:
		return true
	}
}
