package phasor

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
)

func TestFourierTimeSymmetryAtResonantFrequency(t *testing.T) {
	const n = 200
	dt := 1e-12
	omega := 2 * math.Pi / (float64(n) * dt) // exactly one cycle over n steps

	// Feed a unit harmonic exp(-i*omega*t) at the resonant frequency:
	// each step contributes exp(i*omega*t)*exp(-i*omega*t)/n = 1/n.
	d := NewDFT([]float64{omega}, 1, float64(n))
	for step := 0; step < n; step++ {
		tt := float64(step) * dt
		d.Accumulate(tt, []complex128{cmplx.Exp(complex(0, -omega*tt))})
	}
	mag := cmplx.Abs(d.Sums[0][0])
	if math.Abs(mag-1) > 1e-9 {
		t.Errorf("resonant-frequency accumulation magnitude = %v, want 1 (within 1e-9)", mag)
	}
}

func TestResetZeroesSums(t *testing.T) {
	d := NewDFT([]float64{1, 2}, 3, 10)
	d.Accumulate(0, []complex128{1, 2, 3})
	d.Reset()
	for _, row := range d.Sums {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("Reset left a nonzero sum: %v", v)
			}
		}
	}
}

func TestVolumeAccumulatorMatchesSplitSum(t *testing.T) {
	dims := grid.Dims{ITot: 5, JTot: 5, KTot: 5}
	store, err := grid.NewStore(dims)
	if err != nil {
		t.Fatal(err)
	}
	store.E[grid.Exy].Set(2, 2, 2, 0.4)
	store.E[grid.Exz].Set(2, 2, 2, 0.6)

	bounds := Bounds{KLo: 1, KHi: 4, JLo: 1, JHi: 4, ILo: 1, IHi: 4}
	va := NewVolumeAccumulator(bounds, []float64{1e9}, 1)
	va.AccumulateE(store, 0)

	got := va.At(0, true, grid.AxisX, 2, 2, 2)
	if math.Abs(real(got)-1.0) > 1e-12 {
		t.Errorf("volume accumulator Ex sample = %v, want 1.0 (split-sum 0.4+0.6)", got)
	}
}
