package magnitude

import "fmt"

// UnknownSpecError is returned by Evaluate for a Spec implementation
// outside the closed union — it can only occur if a caller defines its
// own Spec type, which the engine does not support.
type UnknownSpecError struct {
	Spec Spec
}

func (e *UnknownSpecError) Error() string {
	return fmt.Sprintf("magnitude: unrecognized spec type %T", e.Spec)
}

// Evaluate computes spec's magnitude against ctx. This is the single
// dispatch site spec.md Design Note 1 calls for: each closed-union
// variant's arithmetic lives here rather than behind a virtual method.
func Evaluate(spec Spec, ctx *EvalContext) (float64, error) {
	switch s := spec.(type) {
	case ScalableFloatSpec:
		return s.Value.Eval(ctx.Level), nil
	case AttributeBasedSpec:
		return evalAttributeBased(s, ctx), nil
	case SetByCallerSpec:
		return evalSetByCaller(s, ctx), nil
	case CustomCalculatorSpec:
		return evalCustomCalculator(s, ctx)
	default:
		return 0, &UnknownSpecError{Spec: spec}
	}
}

func envelope(m float64, coeff, pre, post ScalableFloat, curve *Curve, level float64) float64 {
	result := coeff.Eval(level)*(m+pre.Eval(level)) + post.Eval(level)
	if curve != nil {
		result *= curve.Eval(level)
	}
	return result
}

func evalAttributeBased(s AttributeBasedSpec, ctx *EvalContext) float64 {
	m := ctx.CaptureAttributeMagnitude(s.Capture)
	return envelope(m, s.Coefficient, s.PreAdd, s.PostAdd, s.Curve, ctx.Level)
}

func evalSetByCaller(s SetByCallerSpec, ctx *EvalContext) float64 {
	v := ctx.SetByCallerValues[s.Tag.Key()]
	if s.Curve != nil {
		v *= s.Curve.Eval(ctx.Level)
	}
	return v
}

func evalCustomCalculator(s CustomCalculatorSpec, ctx *EvalContext) (float64, error) {
	if s.Calculator == nil {
		return 0, fmt.Errorf("magnitude: CustomCalculatorSpec has a nil Calculator")
	}
	m, err := s.Calculator.Calculate(ctx)
	if err != nil {
		return 0, err
	}
	return envelope(m, s.Coefficient, s.PreAdd, s.PostAdd, s.Curve, ctx.Level), nil
}
