package magnitude

import "math"

// ScalableFloat is a base value paired with an optional curve indexed by
// effect level.
type ScalableFloat struct {
	Base  float64
	Curve *Curve
}

// Eval returns Base scaled by Curve.Eval(level), or Base unscaled when
// Curve is nil.
func (s ScalableFloat) Eval(level float64) float64 {
	if s.Curve == nil {
		return s.Base
	}
	return s.Base * s.Curve.Eval(level)
}

// ScalableInt is the integer-valued counterpart of ScalableFloat, used
// for stack counts and limits.
type ScalableInt struct {
	Base  int
	Curve *Curve
}

// Eval returns Base scaled by Curve.Eval(level) and rounded to the
// nearest int, or Base unscaled when Curve is nil.
func (s ScalableInt) Eval(level float64) int {
	if s.Curve == nil {
		return s.Base
	}
	return int(math.Round(float64(s.Base) * s.Curve.Eval(level)))
}
