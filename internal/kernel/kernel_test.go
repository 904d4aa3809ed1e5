package kernel

import (
	"testing"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/deriv"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/material"
)

func flatTables() *material.Tables {
	return &material.Tables{
		Background: material.AxisTriple{
			X: material.Coeffs{A: 1, B: 0.5},
			Y: material.Coeffs{A: 1, B: 0.5},
			Z: material.Coeffs{A: 1, B: 0.5},
		},
	}
}

func TestEmptySimulationStaysZero(t *testing.T) {
	dims := grid.Dims{ITot: 4, JTot: 4, KTot: 4}
	store, err := grid.NewStore(dims)
	if err != nil {
		t.Fatal(err)
	}
	k := &Kernel{
		Scheme: deriv.FD{},
		Tables: flatTables(),
		Dims:   dims,
		Dt:     1e-3,
		Dx:     1, Dy: 1, Dz: 1,
		Mode: Mode3D,
	}
	for step := 0; step < 2; step++ {
		if err := k.UpdateE(store); err != nil {
			t.Fatalf("UpdateE: %v", err)
		}
		if err := k.UpdateH(store); err != nil {
			t.Fatalf("UpdateH: %v", err)
		}
	}
	if store.MaxFieldMagnitude() != 0 {
		t.Errorf("expected all-zero fields in empty simulation, got max magnitude %v", store.MaxFieldMagnitude())
	}
}

func TestTEModeForcesOtherComponentsToZero(t *testing.T) {
	dims := grid.Dims{ITot: 6, JTot: 0, KTot: 6}
	store, err := grid.NewStore(dims)
	if err != nil {
		t.Fatal(err)
	}
	// Seed the surviving TE components with a nonzero value to drive
	// the update; everything else must stay at zero.
	store.H[grid.Hxz].Set(3, 0, 3, 1.0)
	store.H[grid.Hzx].Set(3, 0, 3, 1.0)

	k := &Kernel{
		Scheme: deriv.FD{},
		Tables: flatTables(),
		Dims:   dims,
		Dt:     1e-3,
		Dx:     1, Dy: 1, Dz: 1,
		Mode: ModeTE,
	}
	for step := 0; step < 3; step++ {
		if err := k.UpdateE(store); err != nil {
			t.Fatalf("UpdateE: %v", err)
		}
		if err := k.UpdateH(store); err != nil {
			t.Fatalf("UpdateH: %v", err)
		}
	}

	zeroComponents := []grid.Component{
		grid.Exy, grid.Exz, grid.Ezx, grid.Ezy, grid.Eyz,
		grid.Hxy, grid.Hzy, grid.Hyx, grid.Hyz,
	}
	for _, c := range zeroComponents {
		f := fieldOf(store, c)
		if got := f.MaxAbs(); got != 0 {
			t.Errorf("component %s should stay zero in TE mode, got max %v", c, got)
		}
	}
}

func TestApplyDispersionMatchesReferenceFormula(t *testing.T) {
	dims := grid.Dims{ITot: 4, JTot: 4, KTot: 4}
	store, err := grid.NewStore(dims)
	if err != nil {
		t.Fatal(err)
	}
	store.EnableDispersion()

	tables := &material.Tables{
		Background: material.AxisTriple{
			X: material.Coeffs{A: 1, B: 0.5, C: 0.25},
		},
		BackgroundDispersion: &material.MultilayerDispersion{
			Alpha: []float64{0.1},
			Beta:  []float64{0.2},
			Gamma: []float64{0.3},
			Kappa: map[grid.Axis][]float64{grid.AxisX: {0.05}},
			Sigma: map[grid.Axis][]float64{grid.AxisX: {0.02}},
		},
	}
	k := &Kernel{Tables: tables, Dt: 1e-3}

	c := grid.Exy
	store.Js[c].Set(1, 1, 1, 0.4)
	store.JsNm1[c].Set(1, 1, 1, 0.1)
	store.Enm1[c].Set(1, 1, 1, 0.6)

	coeffs := material.Coeffs{A: 1, B: 0.5, C: 0.25}
	old := 0.8
	preDispersion := 0.9 // Ca*E_old + Cb*curl, computed upstream of applyDispersion

	got := k.applyDispersion(store, c, 0, 1, 1, 1, coeffs, old, preDispersion)

	disp := tables.DispersionFor(0, 1)
	jOld, jNm1, enm1 := 0.4, 0.1, 0.6
	want := preDispersion + coeffs.C*enm1 - coeffs.B*((1+disp.Alpha)*jOld+disp.Beta*jNm1)
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("applyDispersion = %v, want %v", got, want)
	}

	kappa, sigma := tables.BackgroundDispersion.KappaSigma(grid.AxisX, 1)
	wantJNew := disp.Alpha*jOld + disp.Beta*jNm1 +
		kappa*disp.Gamma/(2*k.Dt)*(want-enm1) +
		sigma*disp.Gamma/eps0*old
	if gotJ := store.Js[c].At(1, 1, 1); gotJ != wantJNew {
		t.Errorf("J_new = %v, want %v", gotJ, wantJNew)
	}
	if gotEnm1 := store.Enm1[c].At(1, 1, 1); gotEnm1 != old {
		t.Errorf("E_nm1 = %v, want %v", gotEnm1, old)
	}
	if gotJnm1 := store.JsNm1[c].At(1, 1, 1); gotJnm1 != jOld {
		t.Errorf("J_nm1 = %v, want %v", gotJnm1, jOld)
	}
}

func TestSplitRangePartitionsFully(t *testing.T) {
	chunks := splitRange(10, 3)
	total := 0
	for _, c := range chunks {
		total += c[1] - c[0]
	}
	if total != 10 {
		t.Errorf("splitRange total = %d, want 10", total)
	}
}
