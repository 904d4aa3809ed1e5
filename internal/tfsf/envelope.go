package tfsf

import (
	"math"
	"math/cmplx"
)

// Mode selects the TF/SF temporal envelope: a continuous-wave
// steady-state run ramped up over a few periods, or a single
// Gaussian-windowed pulse (spec.md §4.3).
type Mode int

const (
	SteadyState Mode = iota
	Pulsed
)

// rampPeriods is W in spec.md §4.3's ramp(t) = min(1, t/(W*T)).
const rampPeriods = 4.0

// Ramp is the linear turn-on envelope for steady-state runs:
// ramp(0) = 0, ramp(W*T) = 1, monotone non-decreasing, clamped at 1
// thereafter.
func Ramp(t, omega float64) float64 {
	period := 2 * math.Pi / omega
	r := t / (rampPeriods * period)
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}

// SteadyStateEnvelope is ramp(t)*exp(-i*omega*t).
func SteadyStateEnvelope(t, omega float64) complex128 {
	return complex(Ramp(t, omega), 0) * cmplx.Exp(complex(0, -omega*t))
}

// PulsedEnvelope is (-i)*exp(-i*omega*(t-t0))*exp(-pi*((t-t0)/hwhm)^2).
func PulsedEnvelope(t, t0, omega, hwhm float64) complex128 {
	dt := t - t0
	carrier := cmplx.Exp(complex(0, -omega*dt))
	gauss := math.Exp(-math.Pi * (dt / hwhm) * (dt / hwhm))
	return complex(0, -1) * carrier * complex(gauss, 0)
}

// Envelope dispatches to the steady-state or pulsed envelope per mode.
func Envelope(mode Mode, t, omega, t0, hwhm float64) complex128 {
	if mode == Pulsed {
		return PulsedEnvelope(t, t0, omega, hwhm)
	}
	return SteadyStateEnvelope(t, omega)
}

// FtFth computes the E-time and H-time envelope scalars the
// source-phasor normaliser uses, evaluated at (tind+1)*dt and
// (tind+0.5)*dt respectively (spec.md §4.3).
func FtFth(tind int, dt float64, mode Mode, omega, t0, hwhm float64) (ft, fth complex128) {
	te := float64(tind+1) * dt
	th := (float64(tind) + 0.5) * dt
	ft = Envelope(mode, te, omega, t0, hwhm)
	fth = Envelope(mode, th, omega, t0, hwhm)
	return ft, fth
}
