package deriv

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// FD is the finite-difference derivative scheme: a simple neighbour
// difference scaled by the cell spacing. For an E-update the
// derivative at index i uses line[i+1]-line[i]; for an H-update it
// uses line[i]-line[i-1] (spec.md §4.1). The boundary sample that has
// no far neighbour is left at zero; callers only read derivative
// samples at interior indices where both neighbours exist.
type FD struct{}

func (FD) Name() string { return "fd" }

func (FD) DerivativeAlong(axis grid.Axis, delta float64, line []float64, forE bool, scratch *Scratch, out []float64) []float64 {
	n := len(line)
	out = growTo(out, n)
	invDelta := 1.0 / delta
	if forE {
		for i := 0; i < n-1; i++ {
			out[i] = (line[i+1] - line[i]) * invDelta
		}
		out[n-1] = 0
	} else {
		out[0] = 0
		for i := 1; i < n; i++ {
			out[i] = (line[i] - line[i-1]) * invDelta
		}
	}
	return out
}

func growTo(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
