// Package phasor implements the Phasor Accumulator from spec.md §4.5:
// running discrete Fourier sums over a fixed set of extraction
// frequencies, zeroed once per convergence cycle and fed by the
// volume, surface, vertex-list and detector-plane families.
package phasor

import (
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// DFT accumulates, for each of a fixed set of frequencies, a running
// sum over a fixed number of scalar channels:
//
//	Sums[fi][c] += value[c] * exp(i*omega[fi]*t) * (1/NSamples)
//
// NSamples is Nsteps (steady-state) or Npe (pulsed) per spec.md §4.5.
type DFT struct {
	Omegas   []float64
	NSamples float64
	Sums     [][]complex128 // len(Omegas) x numChannels

	scratch []complex128
}

// NewDFT allocates a zeroed accumulator for the given frequencies and
// channel count.
func NewDFT(omegas []float64, numChannels int, nsamples float64) *DFT {
	sums := make([][]complex128, len(omegas))
	for i := range sums {
		sums[i] = make([]complex128, numChannels)
	}
	return &DFT{
		Omegas:   omegas,
		NSamples: nsamples,
		Sums:     sums,
		scratch:  make([]complex128, numChannels),
	}
}

// Accumulate adds one sample of `values` (length numChannels) at time
// t to every frequency's running sum.
func (d *DFT) Accumulate(t float64, values []complex128) {
	invN := complex(1/d.NSamples, 0)
	for fi, omega := range d.Omegas {
		phase := cmplx.Exp(complex(0, omega*t)) * invN
		copy(d.scratch, values)
		cmplxs.Scale(phase, d.scratch)
		cmplxs.Add(d.Sums[fi], d.scratch)
	}
}

// Reset zeros every frequency's running sum. Per spec.md §3's
// invariant, this must happen only at the start of a new
// steady-state convergence cycle.
func (d *DFT) Reset() {
	for _, row := range d.Sums {
		for i := range row {
			row[i] = 0
		}
	}
}

// Snapshot returns a deep copy of the current sums, for the
// convergence monitor's cycle-to-cycle comparison.
func (d *DFT) Snapshot() [][]complex128 {
	out := make([][]complex128, len(d.Sums))
	for i, row := range d.Sums {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}
