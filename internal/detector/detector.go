// Package detector implements the Detector-Plane Integrator from
// spec.md §4.5(4) and §4.9: a 2-D FFT-based far-field mode projection
// at an observation plane, with optional air-interface refraction.
package detector

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/fdtderr"
)

// AirInterface splits the propagation path into two homogeneous
// media at z = ZInterface, each with its own refractive index
// (spec.md §4.5(4), "optional two-medium split across an air
// interface").
type AirInterface struct {
	ZInterface  float64
	RefIndAbove float64
}

// Config describes one detector plane's geometry and per-mode
// weights.
type Config struct {
	Nx, Ny      int
	Dx, Dy      float64
	Lambda      float64
	RefInd      float64
	ZObs        float64
	Pupil       [][]complex128   // Nx x Ny window, nil selects no windowing
	ModeWeights [][][]complex128 // one Nx x Ny weight grid (D̃) per mode
	Air         *AirInterface
}

// Integrator owns the FFT plans and spatial-frequency vectors for one
// detector plane, created once at setup and reused every step
// (spec.md §4.9).
type Integrator struct {
	cfg    Config
	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT
	fxVec  []float64
	fyVec  []float64

	scratchRow []complex128
	scratchCol []complex128
}

// NewIntegrator validates the configuration and builds the FFT plans
// and spatial-frequency vectors for the plane.
func NewIntegrator(cfg Config) (*Integrator, error) {
	if cfg.Nx <= 0 || cfg.Ny <= 0 {
		return nil, fdtderr.NewInvariantError("detector.Integrator", []int{cfg.Nx, cfg.Ny}, "non-positive detector plane extent")
	}
	it := &Integrator{
		cfg:    cfg,
		rowFFT: fourier.NewCmplxFFT(cfg.Nx),
		colFFT: fourier.NewCmplxFFT(cfg.Ny),
		fxVec:  spatialFrequencies(cfg.Nx, cfg.Dx),
		fyVec:  spatialFrequencies(cfg.Ny, cfg.Dy),
	}
	it.scratchRow = make([]complex128, cfg.Nx)
	it.scratchCol = make([]complex128, cfg.Ny)
	return it, nil
}

// spatialFrequencies returns the FFT bin frequencies f_vec.{x,y} from
// spec.md §4.9, in standard (0, 1, ..., -1) FFT ordering; for even n
// the Nyquist bin n/2 is negative.
func spatialFrequencies(n int, d float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		k := i
		if k >= (n+1)/2 {
			k -= n
		}
		out[i] = float64(k) / (float64(n) * d)
	}
	return out
}

// CentredSnapshot forms the centred field-sum snapshot from spec.md
// §4.5(4): Ex+Ey with the spatial mean removed.
func CentredSnapshot(ex, ey [][]complex128) [][]complex128 {
	ny := len(ex)
	nx := len(ex[0])
	var mean complex128
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			mean += ex[j][i] + ey[j][i]
		}
	}
	mean /= complex(float64(nx*ny), 0)

	out := make([][]complex128, ny)
	for j := 0; j < ny; j++ {
		out[j] = make([]complex128, nx)
		for i := 0; i < nx; i++ {
			out[j][i] = ex[j][i] + ey[j][i] - mean
		}
	}
	return out
}

// fft2D runs the rows-then-columns 2-D FFT over a (ny x nx) grid.
func (it *Integrator) fft2D(data [][]complex128) [][]complex128 {
	ny := len(data)
	out := make([][]complex128, ny)
	for j := 0; j < ny; j++ {
		out[j] = append([]complex128(nil), it.rowFFT.Coefficients(it.scratchRow, data[j])...)
	}
	nx := it.cfg.Nx
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			it.scratchCol[j] = out[j][i]
		}
		res := it.colFFT.Coefficients(nil, it.scratchCol)
		for j := 0; j < ny; j++ {
			out[j][i] = res[j]
		}
	}
	return out
}

// propagationPhase evaluates spec.md §4.5(4)'s propagator
//
//	exp(i*z*2*pi/lambda*refind*sqrt(1-(lambda*fx/n)^2-(lambda*fy/n)^2))
//
// for one (fx,fy) pair, splitting the path across the air interface
// when configured.
func (it *Integrator) propagationPhase(fx, fy float64) complex128 {
	k0 := 2 * math.Pi / it.cfg.Lambda
	evaluate := func(z, refind float64) complex128 {
		arg := 1 - (it.cfg.Lambda*fx/refind)*(it.cfg.Lambda*fx/refind) - (it.cfg.Lambda*fy/refind)*(it.cfg.Lambda*fy/refind)
		if arg < 0 {
			// Evanescent order: the propagator decays rather than
			// oscillates.
			return cmplx.Exp(complex(0, 1) * complex(z*k0*refind, 0) * complex(0, math.Sqrt(-arg)))
		}
		return cmplx.Exp(complex(0, z*k0*refind*math.Sqrt(arg)))
	}

	if it.cfg.Air == nil {
		return evaluate(it.cfg.ZObs, it.cfg.RefInd)
	}
	zBelow := it.cfg.Air.ZInterface
	zAbove := it.cfg.ZObs - it.cfg.Air.ZInterface
	return evaluate(zBelow, it.cfg.RefInd) * evaluate(zAbove, it.cfg.Air.RefIndAbove)
}

// Project forms the detector-plane integral for every configured
// mode from one step's centred (Ex,Ey) snapshot: FFT, multiply by the
// pupil and the mode's weight D̃, propagate, and sum over the
// transverse plane. The E-time phase is applied by the caller's DFT
// accumulator, matching the other phasor families.
func (it *Integrator) Project(ex, ey [][]complex128) []complex128 {
	spectrum := it.fft2D(CentredSnapshot(ex, ey))

	out := make([]complex128, len(it.cfg.ModeWeights))
	for m, weights := range it.cfg.ModeWeights {
		var sum complex128
		for j := 0; j < it.cfg.Ny; j++ {
			fy := it.fyVec[j]
			for i := 0; i < it.cfg.Nx; i++ {
				fx := it.fxVec[i]
				v := spectrum[j][i]
				if it.cfg.Pupil != nil {
					v *= it.cfg.Pupil[j][i]
				}
				v *= weights[j][i]
				v *= it.propagationPhase(fx, fy)
				sum += v
			}
		}
		out[m] = sum
	}
	return out
}
