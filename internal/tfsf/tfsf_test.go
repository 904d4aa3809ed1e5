package tfsf

import (
	"math"
	"testing"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/source"
)

func TestRampBoundaries(t *testing.T) {
	omega := 2 * math.Pi * 1e9
	period := 2 * math.Pi / omega

	if got := Ramp(0, omega); got != 0 {
		t.Errorf("Ramp(0) = %v, want 0", got)
	}
	if got := Ramp(rampPeriods*period, omega); math.Abs(got-1) > 1e-12 {
		t.Errorf("Ramp(W*T) = %v, want 1", got)
	}
	if got := Ramp(10*rampPeriods*period, omega); got != 1 {
		t.Errorf("Ramp(t > W*T) = %v, want 1 (clamped)", got)
	}

	prev := 0.0
	for n := 0; n <= 20; n++ {
		tt := float64(n) / 20 * rampPeriods * period * 1.5
		v := Ramp(tt, omega)
		if v < prev-1e-15 {
			t.Fatalf("Ramp is not monotone non-decreasing at t=%v: %v < %v", tt, v, prev)
		}
		prev = v
	}
}

func TestFaceCorrectionAddsAtLowFace(t *testing.T) {
	dims := grid.Dims{ITot: 4, JTot: 4, KTot: 4}
	store, err := grid.NewStore(dims)
	if err != nil {
		t.Fatal(err)
	}

	ksrc := source.NewTensor(store.E[grid.Exz].NI, store.E[grid.Exz].NJ)
	for a := 0; a < ksrc.Dim1; a++ {
		for b := 0; b < ksrc.Dim2; b++ {
			ksrc.Set(0, a, b, complex(1, 0))
		}
	}

	box := &source.InterfaceBox{
		K0: source.FacePair{Index: 1, Apply: true},
		K1: source.FacePair{Index: 3, Apply: false},
	}
	inj := &Injector{
		Box:    box,
		Planes: &source.Planes{Ksource: ksrc},
		Mode:   SteadyState,
		Omega:  2 * math.Pi * 1e9,
	}

	before := store.E[grid.Exz].At(1, 0, 0)
	if err := inj.CorrectE(store, 0, 1e-12); err != nil {
		t.Fatal(err)
	}
	after := store.E[grid.Exz].At(1, 0, 0)
	if after == before {
		t.Errorf("expected CorrectE to perturb Exz at the K0 face, got unchanged value %v", after)
	}
}

func TestFtFthUseOffsetTimes(t *testing.T) {
	omega := 2 * math.Pi * 1e9
	dt := 1e-12
	ft, fth := FtFth(5, dt, SteadyState, omega, 0, 0)
	wantFt := SteadyStateEnvelope(6*dt, omega)
	wantFth := SteadyStateEnvelope(5.5*dt, omega)
	if ft != wantFt {
		t.Errorf("ft = %v, want %v", ft, wantFt)
	}
	if fth != wantFth {
		t.Errorf("fth = %v, want %v", fth, wantFth)
	}
}
