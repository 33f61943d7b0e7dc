package magnitude

import "sort"

// CurveKey is one (level, value) sample of a Curve.
type CurveKey struct {
	Level float64
	Value float64
}

// Curve is a sorted sequence of (level, value) keys, linearly
// interpolated between bracketing keys and clamped to endpoint values
// outside the sampled range. An empty Curve evaluates to 1.0, the
// identity scaler.
type Curve struct {
	keys []CurveKey
}

// NewCurve builds a Curve from the given keys, sorting them by Level.
func NewCurve(keys ...CurveKey) *Curve {
	sorted := make([]CurveKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	return &Curve{keys: sorted}
}

// Eval returns the curve's value at level, linearly interpolating
// between bracketing keys.
func (c *Curve) Eval(level float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return 1.0
	}
	if level <= c.keys[0].Level {
		return c.keys[0].Value
	}
	last := c.keys[len(c.keys)-1]
	if level >= last.Level {
		return last.Value
	}
	for i := 1; i < len(c.keys); i++ {
		if level <= c.keys[i].Level {
			lo, hi := c.keys[i-1], c.keys[i]
			span := hi.Level - lo.Level
			if span == 0 {
				return hi.Value
			}
			t := (level - lo.Level) / span
			return lo.Value + t*(hi.Value-lo.Value)
		}
	}
	return last.Value
}
