// Package deriv implements the spatial Derivative Engine from spec.md
// §4.1: a single contract, two interchangeable implementations
// (finite-difference and pseudo-spectral). Kernel code should depend
// only on the Scheme interface so the FD/PS choice is a pure strategy
// swap, per the "derivative-scheme pluggability" redesign note in
// spec.md §9.
package deriv

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// Scheme computes the spatial half-step derivative of a 1-D line
// along one axis. forE selects the E-update sign/stencil convention
// (E-updates differentiate "forward", H-updates "backward" in the FD
// variant; -0.5 vs +0.5 half-step phase in the PS variant). delta is
// the cell spacing along axis (dx, dy or dz). scratch is an opaque,
// per-goroutine buffer the scheme may reuse across calls to avoid
// allocating inside the time loop; obtain one with NewScratch and
// never share it between goroutines.
type Scheme interface {
	Name() string
	DerivativeAlong(axis grid.Axis, delta float64, line []float64, forE bool, scratch *Scratch, out []float64) []float64
}

// Scratch is the per-thread working memory a Scheme may need: PS
// needs a complex line buffer and memoised wavenumber/shift-operator
// vectors per (axis, length); FD needs nothing but still receives one
// so kernel call sites are scheme-agnostic.
type Scratch struct {
	complexLine []complex128
	shiftCache  map[shiftKey][]complex128
}

type shiftKey struct {
	axis  grid.Axis
	n     int
	delta float64
	forE  bool
}

// NewScratch allocates an empty per-goroutine scratch buffer.
func NewScratch() *Scratch {
	return &Scratch{shiftCache: make(map[shiftKey][]complex128)}
}

func (s *Scratch) complexBuf(n int) []complex128 {
	if cap(s.complexLine) < n {
		s.complexLine = make([]complex128, n)
	}
	return s.complexLine[:n]
}
