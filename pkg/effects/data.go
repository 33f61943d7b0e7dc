package effects

import (
	"effectkit/pkg/cues"
	"effectkit/pkg/magnitude"
)

// Operation names a modifier's write operation. FlatBonus is the only
// operation the engine's attribute channel (pkg/attributes) implements;
// the type exists so EffectData and Execution stay forward-compatible
// with the data model's admission of more operations (spec.md §3).
type Operation int

const (
	FlatBonus Operation = iota
)

// Modifier is one (attribute, operation, magnitude) entry of an
// EffectData's ordered modifier list.
type Modifier struct {
	Attribute string
	Operation Operation
	Magnitude magnitude.Spec
}

// DurationKind is the closed set of temporal shapes an effect may have.
type DurationKind int

const (
	DurationInstant DurationKind = iota
	DurationInfinite
	DurationHasDuration
)

// DurationData names an effect's temporal shape. Duration is only
// meaningful when Kind is DurationHasDuration.
type DurationData struct {
	Kind     DurationKind
	Duration magnitude.ScalableFloat
}

// InhibitionRemovedPolicy governs what a periodic effect's accumulator
// does when its ongoing requirements are satisfied again after being
// unmet.
type InhibitionRemovedPolicy int

const (
	NeverReset InhibitionRemovedPolicy = iota
	ResetPeriod
	ExecuteAndResetPeriod
)

// PeriodicData makes an effect tick on a fixed interval, writing
// modifiers as instant base-value deltas each period rather than
// holding a standing modifier-channel contribution.
type PeriodicData struct {
	Period                  magnitude.ScalableFloat
	ExecuteOnApplication    bool
	InhibitionRemovedPolicy InhibitionRemovedPolicy
}

// LevelComparison is a bitmask of level-relationship flags used by
// StackingData.LevelDenialPolicy and LevelOverridePolicy.
type LevelComparison int

const (
	LevelLower LevelComparison = 1 << iota
	LevelEqual
	LevelHigher
)

func (lc LevelComparison) matches(incoming, current int) bool {
	switch {
	case incoming < current:
		return lc&LevelLower != 0
	case incoming == current:
		return lc&LevelEqual != 0
	default:
		return lc&LevelHigher != 0
	}
}

type StackPolicy int

const (
	AggregateByTarget StackPolicy = iota
	AggregateBySource
)

type StackLevelPolicy int

const (
	AggregateLevels StackLevelPolicy = iota
	SegregateLevels
)

type StackMagnitudePolicy int

const (
	Sum StackMagnitudePolicy = iota
	DontStack
)

type StackOverflowPolicy int

const (
	AllowApplication StackOverflowPolicy = iota
	DenyApplication
)

type StackExpirationPolicy int

const (
	RemoveSingleStackAndRefreshDuration StackExpirationPolicy = iota
	ClearEntireStack
	RefreshDuration
)

type StackOverrideStackCountPolicy int

const (
	ResetStacks StackOverrideStackCountPolicy = iota
	IncreaseStacks
)

type ApplicationRefreshPolicy int

const (
	NeverRefresh ApplicationRefreshPolicy = iota
	RefreshOnSuccessfulApplication
)

// StackingData is the orthogonal policy vector governing how repeated
// applications of one EffectData merge (spec.md §4.5).
type StackingData struct {
	StackPolicy                   StackPolicy
	StackLevelPolicy              StackLevelPolicy
	StackMagnitudePolicy          StackMagnitudePolicy
	StackOverflowPolicy           StackOverflowPolicy
	StackExpirationPolicy         StackExpirationPolicy
	LevelDenialPolicy             LevelComparison
	LevelOverridePolicy           LevelComparison
	LevelOverrideStackCountPolicy StackOverrideStackCountPolicy
	ApplicationRefreshPolicy      ApplicationRefreshPolicy
	StackLimit                    magnitude.ScalableInt
	InitialStack                  magnitude.ScalableInt
}

// EffectData is the immutable effect template: modifiers, duration,
// optional periodic/stacking data, optional custom executions, cues,
// and pluggable components.
type EffectData struct {
	Name      string
	Modifiers []Modifier
	Duration  DurationData
	Periodic  *PeriodicData
	Stacking  *StackingData
	Executions []Execution

	Cues []cues.CueData

	Components []Component

	SnapshotLevel                     bool
	RequireModifierSuccessToTriggerCue bool
	SuppressStackingCues              bool
}

// Validate checks structural invariants the engine treats as contract
// errors when violated (spec.md §7): RefreshDuration is a periodic-only
// stack expiration policy, and a standing modifier may not live-capture a
// target attribute the same effect writes.
func (d *EffectData) Validate() error {
	if d.Stacking != nil && d.Stacking.StackExpirationPolicy == RefreshDuration && d.Periodic == nil {
		return &ContractError{Reason: "StackExpirationPolicy.RefreshDuration requires PeriodicData"}
	}
	if d.Duration.Kind != DurationInstant && d.Periodic == nil {
		writes := make(map[string]bool, len(d.Modifiers))
		for _, mod := range d.Modifiers {
			writes[mod.Attribute] = true
		}
		for _, mod := range d.Modifiers {
			abs, ok := mod.Magnitude.(magnitude.AttributeBasedSpec)
			if ok && !abs.Capture.Snapshot && abs.Capture.From == magnitude.TargetEntity && writes[abs.Capture.Attribute] {
				return &ContractError{Reason: "non-snapshot capture of written attribute " + abs.Capture.Attribute + " would form a cycle"}
			}
		}
	}
	return nil
}

// Ownership is the (source, target) pair an Effect binds a template
// between.
type Ownership struct {
	SourceKey string
	TargetKey string
}

// Effect is an EffectData bound to an ownership and a level; it may be
// applied multiple times by a Manager.
type Effect struct {
	Data      *EffectData
	Ownership Ownership
	level     int

	// SetByCallerValues holds float bindings the caller made at
	// effect-creation time for any SetByCallerSpec modifiers.
	SetByCallerValues map[string]float64
}

// NewEffect constructs an Effect at the given starting level (minimum
// 1).
func NewEffect(data *EffectData, ownership Ownership, level int) *Effect {
	if level < 1 {
		level = 1
	}
	return &Effect{Data: data, Ownership: ownership, level: level, SetByCallerValues: map[string]float64{}}
}

// Level returns the effect's current level.
func (e *Effect) Level() int { return e.level }

// LevelUp increments the effect's level by one.
func (e *Effect) LevelUp() { e.level++ }

// tagRequirements returns the effect's TargetTagRequirements component,
// if it has one.
func (e *Effect) tagRequirements() *TargetTagRequirements {
	for _, c := range e.Data.Components {
		if ttr, ok := c.(*TargetTagRequirements); ok {
			return ttr
		}
	}
	return nil
}
