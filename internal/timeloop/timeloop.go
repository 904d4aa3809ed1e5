// Package timeloop implements the Time Loop Driver from spec.md
// §4.4 and its run state machine from spec.md §4.9: it orders the
// per-step E/H updates, TF/SF injection, phasor accumulation,
// convergence checks and diagnostic taps, and chooses Δt/Nsteps for
// steady-state runs.
package timeloop

import (
	"log"
	"math"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/convergence"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/detector"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/fdtderr"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/kernel"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/phasor"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/tfsf"
)

// State is one of the run's lifecycle states (spec.md §4.9).
type State int

const (
	Idle State = iota
	TimeStepping
	SteadyStateConverged
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case TimeStepping:
		return "TimeStepping"
	case SteadyStateConverged:
		return "SteadyStateConverged"
	default:
		return "Finished"
	}
}

// ChooseSteadyStateTiming implements spec.md §4.4's Δt/Nsteps
// selection: Nsteps is the smallest integer number of steps per
// analysis window covering at least 3 source periods, Δt is adjusted
// so that window is exact, and Nt is rounded down to a whole number
// of windows.
func ChooseSteadyStateTiming(omega, dt0 float64, nt int) (dt float64, nsteps, roundedNt int) {
	nsteps = int(math.Ceil(6 * math.Pi / (omega * dt0)))
	if nsteps < 1 {
		nsteps = 1
	}
	dt = 6 * math.Pi / (omega * float64(nsteps))
	roundedNt = (nt / nsteps) * nsteps
	return dt, nsteps, roundedNt
}

// Result is what a completed run returns: the final state reached,
// the number of convergence cycles checked, the last residual, and a
// non-fatal diagnostic when steady-state mode ran out of steps before
// converging. The accumulated phasors themselves stay in the Driver's
// accumulators.
type Result struct {
	State          State
	CyclesRun      int
	FinalResidual  float64
	NonConvergence error // non-nil only as a diagnostic note, see spec.md §4.9
}

// Driver owns every moving part of one run: the field store, the
// update kernel, the TF/SF injector, the volume phasor accumulator
// used by the convergence monitor, the source-phasor normaliser, and
// the optional field sampler. It advances through Idle ->
// TimeStepping -> {SteadyStateConverged, Finished} exactly once.
type Driver struct {
	Store    *grid.Store
	Kernel   *kernel.Kernel
	Injector *tfsf.Injector
	Volume   *phasor.VolumeAccumulator

	// Surface, Vertex and Detector are the other three phasor families
	// from spec.md §4.5; all three are optional and run alongside
	// Volume with the same per-step timing when configured.
	Surface   *phasor.SurfaceAccumulator
	Vertex    *phasor.VertexAccumulator
	Detector  *detector.Accumulator
	DetectorK int // k-plane sampled for the detector family's Ex/Ey snapshot

	AnalysisOmega float64
	SteadyState   bool
	Nsteps        int // only meaningful in steady-state mode
	Dt            float64
	Nt            int
	StartTind     int

	EnormAccum *phasor.DFT // 1 channel: running sum of ft
	HnormAccum *phasor.DFT // 1 channel: running sum of fth

	Sampler *FieldSampler

	Logger *log.Logger

	state State
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State { return d.state }

// Run advances the simulation from StartTind to Nt (or until the
// convergence monitor fires in steady-state mode), following the
// per-step ordering from spec.md §2: phasor accumulation of the
// prior step, E update, E-side TF/SF correction, H update, H-side
// TF/SF correction, source-phasor normaliser update, optional
// time-domain export.
func (d *Driver) Run() (Result, error) {
	if d.state != Idle {
		return Result{}, fdtderr.NewInvariantError("timeloop.Driver", nil, "Run called outside the Idle state")
	}
	d.state = TimeStepping
	if d.Logger == nil {
		d.Logger = log.Default()
	}

	var monitor convergence.Monitor
	cyclesRun := 0
	lastResidual := 1.0

	for tind := d.StartTind; tind < d.Nt; tind++ {
		if d.SteadyState && d.Nsteps > 0 && tind > d.StartTind && (tind-d.StartTind)%d.Nsteps == 0 {
			cyclesRun++
			current := d.flattenEVolume()
			converged, residual := monitor.Check(current)
			lastResidual = residual
			if converged {
				d.Logger.Printf("steady-state converged after %d cycles (residual %.3e)", cyclesRun, residual)
				// The check runs before this step's accumulation, so the
				// accumulators still hold the last complete cycle and no
				// copy-back is needed before moving on to Finished.
				d.state = Finished
				return Result{State: SteadyStateConverged, CyclesRun: cyclesRun, FinalResidual: residual}, nil
			}
			d.Logger.Printf("cycle %d residual %.3e (tolerance %.3e)", cyclesRun, residual, convergence.Tolerance)
			d.Volume.Reset()
			if d.Surface != nil {
				d.Surface.Reset()
			}
			if d.Vertex != nil {
				d.Vertex.Reset()
			}
			if d.Detector != nil {
				d.Detector.Reset()
			}
			if d.EnormAccum != nil {
				d.EnormAccum.Reset()
			}
			if d.HnormAccum != nil {
				d.HnormAccum.Reset()
			}
		}

		d.accumulatePhasors(tind)

		if err := d.Kernel.UpdateE(d.Store); err != nil {
			return Result{}, err
		}
		if d.Injector != nil {
			if err := d.Injector.CorrectE(d.Store, tind, d.Dt); err != nil {
				return Result{}, err
			}
		}

		if err := d.Kernel.UpdateH(d.Store); err != nil {
			return Result{}, err
		}
		if d.Injector != nil {
			if err := d.Injector.CorrectH(d.Store, tind, d.Dt); err != nil {
				return Result{}, err
			}
		}

		d.updateNormaliser(tind)

		if d.Sampler != nil {
			if err := d.Sampler.Sample(d.Store, tind); err != nil {
				return Result{}, err
			}
		}

		if max := d.Store.MaxFieldMagnitude(); math.IsInf(max, 1) || math.IsNaN(max) {
			d.Logger.Printf("numeric blow-up detected at tind=%d, max magnitude=%v", tind, max)
		}
	}

	d.state = Finished
	var diag error
	if d.SteadyState {
		diag = &fdtderr.NonConvergence{CyclesRun: cyclesRun, LastResidual: lastResidual, Tolerance: convergence.Tolerance}
	}
	return Result{State: d.state, CyclesRun: cyclesRun, FinalResidual: lastResidual, NonConvergence: diag}, nil
}

// flattenEVolume returns the current E-phasor volume at frequency
// index 0 of the Volume accumulator, the one frequency the
// convergence monitor tracks (the first extraction frequency, or the
// source frequency when no extraction frequencies are configured).
func (d *Driver) flattenEVolume() []complex128 {
	snap := d.Volume.EDFT.Snapshot()
	return snap[0]
}

func (d *Driver) accumulatePhasors(tind int) {
	te := float64(tind+1) * d.Dt
	th := (float64(tind) + 0.5) * d.Dt
	d.Volume.AccumulateE(d.Store, te)
	d.Volume.AccumulateH(d.Store, th)
	if d.Surface != nil {
		d.Surface.AccumulateE(d.Store, te)
		d.Surface.AccumulateH(d.Store, th)
	}
	if d.Vertex != nil {
		d.Vertex.AccumulateE(d.Store, te)
		d.Vertex.AccumulateH(d.Store, th)
	}
	if d.Detector != nil {
		ex, ey := d.detectorPlanes()
		d.Detector.Accumulate(te, ex, ey)
	}
}

// detectorPlanes extracts the Ex/Ey transverse snapshot at k =
// DetectorK that the detector family's Integrator projects, per
// spec.md §4.5(4).
func (d *Driver) detectorPlanes() (ex, ey [][]complex128) {
	nj, ni := d.Store.Dims.JTot+1, d.Store.Dims.ITot+1
	ex = make([][]complex128, nj)
	ey = make([][]complex128, nj)
	for j := 0; j < nj; j++ {
		ex[j] = make([]complex128, ni)
		ey[j] = make([]complex128, ni)
		for i := 0; i < ni; i++ {
			ex[j][i] = complex(d.Store.Physical(grid.AxisX, true, d.DetectorK, j, i), 0)
			ey[j][i] = complex(d.Store.Physical(grid.AxisY, true, d.DetectorK, j, i), 0)
		}
	}
	return ex, ey
}

func (d *Driver) updateNormaliser(tind int) {
	if d.EnormAccum == nil || d.HnormAccum == nil || d.Injector == nil {
		return
	}
	mode := tfsf.SteadyState
	if !d.SteadyState {
		mode = tfsf.Pulsed
	}
	ft, fth := tfsf.FtFth(tind, d.Dt, mode, d.AnalysisOmega, d.Injector.T0, d.Injector.Hwhm)
	te := float64(tind+1) * d.Dt
	th := (float64(tind) + 0.5) * d.Dt
	d.EnormAccum.Accumulate(te, []complex128{ft})
	d.HnormAccum.Accumulate(th, []complex128{fth})
}
