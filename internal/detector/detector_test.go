package detector

import (
	"math"
	"math/cmplx"
	"testing"
)

func gridOf(n int, v complex128) [][]complex128 {
	g := make([][]complex128, n)
	for j := range g {
		g[j] = make([]complex128, n)
		for i := range g[j] {
			g[j][i] = v
		}
	}
	return g
}

func TestSpatialFrequenciesOrdering(t *testing.T) {
	f := spatialFrequencies(8, 1.0)
	if f[0] != 0 {
		t.Errorf("f[0] = %v, want 0", f[0])
	}
	if f[4] >= 0 {
		t.Errorf("f[n/2] should be the negative Nyquist bin, got %v", f[4])
	}
}

func TestCentredSnapshotRemovesMean(t *testing.T) {
	ex := gridOf(4, complex(1, 0))
	ey := gridOf(4, complex(1, 0))
	out := CentredSnapshot(ex, ey)
	for _, row := range out {
		for _, v := range row {
			if cmplx.Abs(v) > 1e-12 {
				t.Fatalf("constant field should centre to zero, got %v", v)
			}
		}
	}
}

func TestProjectProducesOneValuePerMode(t *testing.T) {
	n := 4
	cfg := Config{
		Nx: n, Ny: n, Dx: 1e-7, Dy: 1e-7,
		Lambda: 5e-7, RefInd: 1.0, ZObs: 1e-6,
		ModeWeights: [][][]complex128{gridOf(n, 1), gridOf(n, 1)},
	}
	it, err := NewIntegrator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ex := gridOf(n, complex(1, 0))
	ey := gridOf(n, complex(0, 0))
	out := it.Project(ex, ey)
	if len(out) != 2 {
		t.Fatalf("Project returned %d values, want 2 modes", len(out))
	}
}

func TestPropagationPhaseHasUnitMagnitudeForPropagatingOrders(t *testing.T) {
	cfg := Config{Nx: 4, Ny: 4, Dx: 1e-7, Dy: 1e-7, Lambda: 5e-7, RefInd: 1.0, ZObs: 1e-6}
	it, err := NewIntegrator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	mag := cmplx.Abs(it.propagationPhase(0, 0))
	if math.Abs(mag-1) > 1e-9 {
		t.Errorf("on-axis propagator magnitude = %v, want 1", mag)
	}
}
