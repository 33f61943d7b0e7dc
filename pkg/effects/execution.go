package effects

import "effectkit/pkg/magnitude"

// ModifierEvaluatedData is one write an Execution produces: an
// attribute, the operation to apply it with, and the magnitude to
// apply.
type ModifierEvaluatedData struct {
	Attribute string
	Operation Operation
	Magnitude float64
	// TargetsSource, when true, routes this write to the effect's
	// source entity instead of its target (spec.md §4.3: "executions
	// may target both source and target entities").
	TargetsSource bool
}

// Execution replaces an effect's ordinary modifier list entirely: it
// computes one or more writes directly rather than producing a single
// magnitude for a pre-declared (attribute, operation) pair.
type Execution interface {
	Execute(ctx *magnitude.EvalContext) ([]ModifierEvaluatedData, error)
}
