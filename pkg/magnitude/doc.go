// Package magnitude evaluates a modifier's numeric value from any of the
// engine's four closed-union magnitude sources (ScalableFloat,
// AttributeBased, SetByCaller, CustomCalculator) plus the open
// CustomCalculator extension point. CustomExecution, the fifth
// calculation mode named in spec.md §4.3, replaces a modifier entirely
// rather than producing a magnitude for one, so it lives in
// effects.Execution instead of here.
package magnitude
