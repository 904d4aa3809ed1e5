package detector

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/phasor"

// Accumulator feeds one Integrator's per-step mode projections into a
// running DFT, giving the detector-plane family the same
// phase-accumulation shape as the other three phasor families in
// spec.md §4.5.
type Accumulator struct {
	Integrator *Integrator
	DFT        *phasor.DFT
}

// NewAccumulator allocates a detector accumulator for the given
// extraction frequencies and sample count.
func NewAccumulator(it *Integrator, omegas []float64, nsamples float64) *Accumulator {
	return &Accumulator{
		Integrator: it,
		DFT:        phasor.NewDFT(omegas, len(it.cfg.ModeWeights), nsamples),
	}
}

// Accumulate projects one step's (Ex,Ey) snapshot and feeds it into
// the running DFT at time t (the E-time argument, per spec.md
// §4.5(4)).
func (a *Accumulator) Accumulate(t float64, ex, ey [][]complex128) {
	a.DFT.Accumulate(t, a.Integrator.Project(ex, ey))
}

// Reset zeros the running DFT.
func (a *Accumulator) Reset() {
	a.DFT.Reset()
}
