package material

import (
	"testing"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
)

func TestAverage(t *testing.T) {
	p := Coeffs{A: 1, B: 2, C: 3}
	q := Coeffs{A: 3, B: 4, C: 5}
	got := Average(p, q)
	want := Coeffs{A: 2, B: 3, C: 4}
	if got != want {
		t.Errorf("Average = %+v, want %+v", got, want)
	}
}

func TestLookupBackgroundVsMaterial(t *testing.T) {
	tables := &Tables{
		Background: AxisTriple{X: Coeffs{A: 1}},
		PerMaterial: []AxisTriple{
			{X: Coeffs{A: 9}},
		},
	}
	got := tables.Lookup(grid.AxisX, 0, 0, 0, 0, 0)
	if got.A != 1 {
		t.Errorf("background lookup A = %v, want 1", got.A)
	}
	got = tables.Lookup(grid.AxisX, 1, 1, 0, 0, 0)
	if got.A != 9 {
		t.Errorf("material lookup A = %v, want 9", got.A)
	}
}

func TestLookupInterpolatesAcrossMaterialBoundary(t *testing.T) {
	tables := &Tables{
		InterpolateMaterialProperties: true,
		Background:                    AxisTriple{X: Coeffs{A: 0}},
		PerMaterial: []AxisTriple{
			{X: Coeffs{A: 2}},
			{X: Coeffs{A: 6}},
		},
	}
	got := tables.Lookup(grid.AxisX, 1, 2, 0, 0, 0)
	if got.A != 4 {
		t.Errorf("interpolated A = %v, want 4", got.A)
	}
	// same material on both sides: no averaging.
	got = tables.Lookup(grid.AxisX, 1, 1, 0, 0, 0)
	if got.A != 2 {
		t.Errorf("non-interpolated A = %v, want 2", got.A)
	}
}

func TestConductivityAndDispersionActive(t *testing.T) {
	tables := &Tables{Rho: 0}
	if tables.ConductivityActive() {
		t.Error("expected conductivity inactive at rho=0")
	}
	tables.Rho = 1e-10
	if !tables.ConductivityActive() {
		t.Error("expected conductivity active at rho=1e-10")
	}

	if tables.DispersionActive() {
		t.Error("expected dispersion inactive with no dispersive material")
	}
	tables.MaterialDispersion = []Dispersion{{Gamma: 0.5}}
	if !tables.DispersionActive() {
		t.Error("expected dispersion active when a material has gamma>0")
	}
}

func TestStructureOffsetDefaultsToZero(t *testing.T) {
	var s *Structure
	if got := s.Offset(3, 4); got != 0 {
		t.Errorf("nil Structure.Offset = %v, want 0", got)
	}
	s2 := NewStructure(5, 5)
	s2.Set(1, 2, 7)
	if got := s2.Offset(1, 2); got != 7 {
		t.Errorf("Offset = %v, want 7", got)
	}
}
