package magnitude

import "effectkit/pkg/tags"

// Spec is the closed union of magnitude sources a Modifier may draw
// from: ScalableFloatSpec, AttributeBasedSpec, SetByCallerSpec, and
// CustomCalculatorSpec. It is authored as a class hierarchy in the
// reference design but is a natural sum type (spec.md Design Note 1);
// Evaluate is the single dispatch site.
type Spec interface {
	isMagnitudeSpec()
}

// ScalableFloatSpec evaluates to Value.Eval(level).
type ScalableFloatSpec struct {
	Value ScalableFloat
}

func (ScalableFloatSpec) isMagnitudeSpec() {}

// AttributeBasedSpec captures an attribute channel from the source or
// target entity and runs it through a coefficient/pre-add/post-add
// envelope, then an optional curve, all indexed by effect level.
type AttributeBasedSpec struct {
	Capture     CaptureDefinition
	Coefficient ScalableFloat
	PreAdd      ScalableFloat
	PostAdd     ScalableFloat
	Curve       *Curve
}

func (AttributeBasedSpec) isMagnitudeSpec() {}

// SetByCallerSpec reads a float the caller bound to Tag at effect-
// creation time, scaled by an optional curve. A missing binding
// evaluates to 0.
type SetByCallerSpec struct {
	Tag   tags.Tag
	Curve *Curve
}

func (SetByCallerSpec) isMagnitudeSpec() {}

// CustomCalculatorSpec runs Calculator.Calculate and applies the same
// coefficient/pre-add/post-add/curve envelope as AttributeBasedSpec.
type CustomCalculatorSpec struct {
	Calculator  Calculator
	Coefficient ScalableFloat
	PreAdd      ScalableFloat
	PostAdd     ScalableFloat
	Curve       *Curve
}

func (CustomCalculatorSpec) isMagnitudeSpec() {}
