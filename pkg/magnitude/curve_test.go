package magnitude

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurve_EmptyIsIdentity(t *testing.T) {
	c := NewCurve()
	assert.Equal(t, 1.0, c.Eval(5))
}

func TestCurve_OutOfRangeClampsToEndpoints(t *testing.T) {
	c := NewCurve(CurveKey{Level: 1, Value: 10}, CurveKey{Level: 2, Value: 20})
	assert.Equal(t, 10.0, c.Eval(0))
	assert.Equal(t, 20.0, c.Eval(100))
}

func TestCurve_LinearInterpolation(t *testing.T) {
	c := NewCurve(CurveKey{Level: 1, Value: 1}, CurveKey{Level: 2, Value: 2})
	assert.Equal(t, 1.5, c.Eval(1.5))
}

func TestCurve_SortsUnorderedKeys(t *testing.T) {
	c := NewCurve(CurveKey{Level: 2, Value: 20}, CurveKey{Level: 1, Value: 10})
	assert.Equal(t, 15.0, c.Eval(1.5))
}

func TestScalableFloat_NoCurve(t *testing.T) {
	s := ScalableFloat{Base: 3}
	assert.Equal(t, 3.0, s.Eval(1))
	assert.Equal(t, 3.0, s.Eval(5))
}

func TestScalableFloat_WithCurve(t *testing.T) {
	// spec.md §8 S1: base 3, curve {(1,1),(2,2)}, level 2 -> 6.
	s := ScalableFloat{Base: 3, Curve: NewCurve(CurveKey{Level: 1, Value: 1}, CurveKey{Level: 2, Value: 2})}
	assert.Equal(t, 6.0, s.Eval(2))
}

func TestScalableInt_RoundsResult(t *testing.T) {
	s := ScalableInt{Base: 3, Curve: NewCurve(CurveKey{Level: 1, Value: 1}, CurveKey{Level: 2, Value: 1.5})}
	assert.Equal(t, 5, s.Eval(2)) // 3*1.5 = 4.5 -> rounds to 5
}
