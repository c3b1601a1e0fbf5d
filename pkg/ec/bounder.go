package ec

import "math"

// Bounder constrains candidate solutions to the legal search space.
// The built-in variators make only minimal assumptions about candidates,
// so they rely on the bounder supplied to Evolve to enforce
// problem-specific limits. A bounder must return the bounded candidate,
// which may be the input mutated in place.
type Bounder interface {
	Bound(candidate Candidate) Candidate
}

// BounderFunc adapts a function to the Bounder interface.
type BounderFunc func(candidate Candidate) Candidate

func (f BounderFunc) Bound(candidate Candidate) Candidate { return f(candidate) }

// identityBounder leaves candidates unchanged.
type identityBounder struct{}

func (identityBounder) Bound(candidate Candidate) Candidate { return candidate }

// ClampBounder clamps each element of a []float64 candidate between a
// lower and upper bound. Bounds may be single values, applied to every
// element, or per-element slices. Candidates that are not []float64 are
// returned unchanged.
type ClampBounder struct {
	Lower []float64
	Upper []float64
}

// NewBounder creates a bounder that clamps every element of a candidate
// to [lower, upper].
func NewBounder(lower, upper float64) *ClampBounder {
	return &ClampBounder{Lower: []float64{lower}, Upper: []float64{upper}}
}

// NewBounderSlices creates a bounder with per-element bounds.
func NewBounderSlices(lower, upper []float64) *ClampBounder {
	return &ClampBounder{Lower: lower, Upper: upper}
}

func (b *ClampBounder) boundAt(i int, bounds []float64) float64 {
	if len(bounds) == 1 {
		return bounds[0]
	}
	return bounds[i]
}

func (b *ClampBounder) Bound(candidate Candidate) Candidate {
	cs, ok := candidate.([]float64)
	if !ok || len(b.Lower) == 0 || len(b.Upper) == 0 {
		return candidate
	}
	for i, c := range cs {
		lo := b.boundAt(i, b.Lower)
		hi := b.boundAt(i, b.Upper)
		cs[i] = math.Max(math.Min(c, hi), lo)
	}
	return cs
}

// DiscreteBounder resolves each element of a []float64 candidate to the
// nearest value in a fixed set of legal values. When an element is
// equidistant from several legal values, the one appearing earliest in
// Values wins.
type DiscreteBounder struct {
	Values []float64
}

// NewDiscreteBounder creates a bounder restricted to the given values.
func NewDiscreteBounder(values []float64) *DiscreteBounder {
	return &DiscreteBounder{Values: values}
}

func (b *DiscreteBounder) Bound(candidate Candidate) Candidate {
	cs, ok := candidate.([]float64)
	if !ok || len(b.Values) == 0 {
		return candidate
	}
	for i, c := range cs {
		closest := b.Values[0]
		for _, v := range b.Values[1:] {
			if math.Abs(v-c) < math.Abs(closest-c) {
				closest = v
			}
		}
		cs[i] = closest
	}
	return cs
}
