package deriv

import (
	"math"
	"testing"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
)

func TestFDNeighbourDifference(t *testing.T) {
	line := []float64{1, 3, 6, 10}
	var fd FD
	out := fd.DerivativeAlong(grid.AxisX, 1.0, line, true, nil, nil)
	want := []float64{2, 3, 4, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("E out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	out = fd.DerivativeAlong(grid.AxisX, 1.0, line, false, nil, nil)
	want = []float64{0, 2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("H out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestPSMatchesKnownSineDerivative(t *testing.T) {
	n := 64
	L := 2 * math.Pi
	delta := L / float64(n)
	line := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) * delta
		line[i] = math.Sin(x)
	}
	var ps PS
	scratch := NewScratch()
	out := ps.DerivativeAlong(grid.AxisX, delta, line, true, scratch, nil)
	// d/dx sin(x) = cos(x); the E-side PS derivative applies the -0.5
	// half-step shift, so it is evaluated at x-delta/2. Compare against
	// cos(x-delta/2) with a loose tolerance.
	maxErr := 0.0
	for i := 0; i < n; i++ {
		x := float64(i) * delta
		want := math.Cos(x - delta/2)
		if e := math.Abs(out[i] - want); e > maxErr {
			maxErr = e
		}
	}
	if maxErr > 1e-2 {
		t.Errorf("PS derivative max error = %v, want < 1e-2", maxErr)
	}
}

func TestPSScratchIsolatesAxes(t *testing.T) {
	scratch := NewScratch()
	var ps PS
	lineX := make([]float64, 8)
	lineY := make([]float64, 4)
	for i := range lineX {
		lineX[i] = float64(i)
	}
	for i := range lineY {
		lineY[i] = float64(i)
	}
	outX := ps.DerivativeAlong(grid.AxisX, 1.0, lineX, true, scratch, nil)
	outY := ps.DerivativeAlong(grid.AxisY, 1.0, lineY, true, scratch, nil)
	if len(outX) != 8 || len(outY) != 4 {
		t.Fatalf("unexpected output lengths: %d, %d", len(outX), len(outY))
	}
}
