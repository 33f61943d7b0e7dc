package magnitude

// Calculator is the engine's open extension point for magnitudes that
// can't be expressed by the closed ScalableFloat/AttributeBased/
// SetByCaller union (spec.md Design Note 2). A calculator lists the
// captures it reads in RequiredCaptures, but effects.Manager does not
// read that list: it subscribes live only to AttributeBasedSpec
// captures. Snapshot captures a calculator reads through
// ctx.CaptureAttributeMagnitude are frozen via FrozenCaptures; a
// non-snapshot one is re-read only when the modifier is re-evaluated
// (stack change, level-up, expiration recompute), not when the captured
// attribute changes.
type Calculator interface {
	// RequiredCaptures lists the attribute captures this calculator
	// reads from ctx.Source/ctx.Target when Calculate runs.
	RequiredCaptures() []CaptureDefinition

	// Calculate returns the calculator's raw magnitude, before the
	// coefficient/pre/post/curve envelope is applied. It may write
	// entries into ctx.CustomParams for the cue pipeline to read back.
	Calculate(ctx *EvalContext) (float64, error)
}
