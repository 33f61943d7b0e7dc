package magnitude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effectkit/pkg/attributes"
	"effectkit/pkg/tags"
)

type fakeEntity struct {
	attrs *attributes.AttributeSet
	owned tags.Container
	mods  tags.Container
}

func (f *fakeEntity) Attributes() *attributes.AttributeSet { return f.attrs }
func (f *fakeEntity) OwnedTags() tags.Container            { return f.owned }
func (f *fakeEntity) ModifierTags() tags.Container         { return f.mods }

func newFakeEntity() *fakeEntity {
	return &fakeEntity{attrs: attributes.NewAttributeSet(8)}
}

func TestEvaluate_ScalableFloat(t *testing.T) {
	spec := ScalableFloatSpec{Value: ScalableFloat{Base: 5}}
	v, err := Evaluate(spec, &EvalContext{Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvaluate_AttributeBased_Basic(t *testing.T) {
	source := newFakeEntity()
	source.attrs.Define("power", 10, 0, 100)

	spec := AttributeBasedSpec{
		Capture:     CaptureDefinition{Attribute: "power", From: SourceEntity, Channel: ChannelCurrent},
		Coefficient: ScalableFloat{Base: 1},
	}
	v, err := Evaluate(spec, &EvalContext{Source: source, Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestEvaluate_AttributeBased_MissingAttributeYieldsZero(t *testing.T) {
	source := newFakeEntity()
	spec := AttributeBasedSpec{
		Capture:     CaptureDefinition{Attribute: "nonexistent", From: SourceEntity},
		Coefficient: ScalableFloat{Base: 1},
	}
	v, err := Evaluate(spec, &EvalContext{Source: source, Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvaluate_AttributeBased_CoeffPrePost(t *testing.T) {
	source := newFakeEntity()
	source.attrs.Define("power", 10, 0, 100)

	spec := AttributeBasedSpec{
		Capture:     CaptureDefinition{Attribute: "power", From: SourceEntity},
		Coefficient: ScalableFloat{Base: 2},
		PreAdd:      ScalableFloat{Base: 1},
		PostAdd:     ScalableFloat{Base: 3},
	}
	// (2 * (10 + 1)) + 3 = 25
	v, err := Evaluate(spec, &EvalContext{Source: source, Level: 1})
	require.NoError(t, err)
	assert.Equal(t, 25.0, v)
}

func TestEvaluate_SetByCaller_MissingBindingIsZero(t *testing.T) {
	spec := SetByCallerSpec{}
	v, err := Evaluate(spec, &EvalContext{SetByCallerValues: map[string]float64{}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvaluate_SetByCaller_Binding(t *testing.T) {
	r, err := tags.NewRegistry([]string{"damage.caller_value"})
	require.NoError(t, err)
	tag, err := r.RequestTag("damage.caller_value")
	require.NoError(t, err)

	spec := SetByCallerSpec{Tag: tag}
	v, err := Evaluate(spec, &EvalContext{
		SetByCallerValues: map[string]float64{"damage.caller_value": 42},
	})
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

type doublingCalculator struct {
	capture CaptureDefinition
}

func (c *doublingCalculator) RequiredCaptures() []CaptureDefinition {
	return []CaptureDefinition{c.capture}
}

func (c *doublingCalculator) Calculate(ctx *EvalContext) (float64, error) {
	m := ctx.CaptureAttributeMagnitude(c.capture)
	ctx.CustomParams["doubled_from"] = m
	return m * 2, nil
}

func TestEvaluate_CustomCalculator(t *testing.T) {
	source := newFakeEntity()
	source.attrs.Define("power", 10, 0, 100)

	calc := &doublingCalculator{capture: CaptureDefinition{Attribute: "power", From: SourceEntity}}
	spec := CustomCalculatorSpec{Calculator: calc, Coefficient: ScalableFloat{Base: 1}}

	ctx := &EvalContext{Source: source, Level: 1, CustomParams: map[string]float64{}}
	v, err := Evaluate(spec, ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)
	assert.Equal(t, 10.0, ctx.CustomParams["doubled_from"])
}

func TestEvaluate_CustomCalculator_NilCalculatorErrors(t *testing.T) {
	spec := CustomCalculatorSpec{}
	_, err := Evaluate(spec, &EvalContext{})
	assert.Error(t, err)
}
