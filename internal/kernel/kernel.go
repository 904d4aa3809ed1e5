// Package kernel implements the Update Kernel from spec.md §4.2: the
// per-split-component advance
//
//	E_new = Ca*E_old + Cb*Δspatial(H) - (dispersion and conductivity corrections)
//
// driven by a pluggable internal/deriv.Scheme and internal/material
// coefficient tables, data-parallel over one outer spatial index per
// component pass (spec.md §5).
package kernel

import (
	"sync"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/deriv"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"
	"github.com/UCL/isotropic-finite-difference-time-domain/internal/material"
)

// eps0 is the vacuum permittivity used in the dispersion correction
// term of spec.md §4.2.
const eps0 = 8.8541878128e-12

// Mode selects the dimensionality/polarisation restriction from
// spec.md §4.2's "2-D mode" rule.
type Mode int

const (
	Mode3D Mode = iota
	ModeTE
	ModeTM
)

// Kernel advances one simulation's split fields by one half-step. It
// holds no per-run mutable state beyond the derivative scheme and
// coefficient tables; the grid.Store it mutates is always passed in
// explicitly, matching the "explicit Engine context passed by
// reference" redesign note in spec.md §9.
type Kernel struct {
	Scheme         deriv.Scheme
	Tables         *material.Tables
	Dims           grid.Dims
	Dt             float64
	Dx, Dy, Dz     float64
	Mode           Mode
	MaxParallelism int // 0 selects one goroutine per row of the outer axis
}

func (k *Kernel) delta(axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return k.Dx
	case grid.AxisY:
		return k.Dy
	default:
		return k.Dz
	}
}

// UpdateE advances all six (or, in 2-D mode, the surviving) electric
// split components. Must complete before UpdateH is called for the
// same time step (spec.md §5 ordering guarantee).
func (k *Kernel) UpdateE(store *grid.Store) error {
	if k.Mode == Mode3D {
		for _, c := range grid.ElectricComponents() {
			if err := k.updateComponent(store, c, nil); err != nil {
				return err
			}
		}
		return nil
	}
	return k.update2D(store, true)
}

// UpdateH advances all six (or, in 2-D mode, the surviving) magnetic
// split components.
func (k *Kernel) UpdateH(store *grid.Store) error {
	if k.Mode == Mode3D {
		for _, c := range grid.MagneticComponents() {
			if err := k.updateComponent(store, c, nil); err != nil {
				return err
			}
		}
		return nil
	}
	return k.update2D(store, false)
}

// updateComponent runs the generic single-curl-term update for split
// component c. If extraSibling is non-nil, c's permanently-zeroed
// sibling's curl term (2-D mode only) is folded into c's own update,
// since the sibling's Field3D is never written in that mode.
func (k *Kernel) updateComponent(store *grid.Store, c grid.Component, extraSibling *grid.Component) error {
	field := fieldOf(store, c)
	derivAxis := c.DerivativeAxis()
	physAxis := c.PhysicalAxis()
	delta := k.delta(derivAxis)

	nk, nj, ni := field.NK, field.NJ, field.NI
	n := axisExtent(derivAxis, nk, nj, ni)

	var wg sync.WaitGroup
	outer1, outer2 := transverseExtents(derivAxis, nk, nj, ni)
	workers := k.workers(outer1)
	chunks := splitRange(outer1, workers)

	dispersive := k.Tables != nil && k.Tables.DispersionActive() && c.IsElectric()
	conductive := k.Tables != nil && k.Tables.ConductivityActive() && c.IsElectric()
	if dispersive {
		store.EnableDispersion()
	}
	if conductive {
		store.EnableConductivity()
	}

	for _, chunk := range chunks {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			scratch := deriv.NewScratch()
			line := make([]float64, n)
			siblingLine := make([]float64, n)
			derivBuf := make([]float64, n)
			siblingDerivBuf := make([]float64, n)
			for o1 := lo; o1 < hi; o1++ {
				for o2 := 0; o2 < outer2; o2++ {
					kk, jj, ii := composeIndex(derivAxis, o1, o2, 0)
					line = store.TotalLine(c, jj, kk, ii, n, line)
					derivBuf = k.Scheme.DerivativeAlong(derivAxis, delta, line, c.IsElectric(), scratch, derivBuf)

					var siblingDeriv []float64
					var sibSign float64
					if extraSibling != nil {
						sib := *extraSibling
						sibAxis := sib.DerivativeAxis()
						sibDelta := k.delta(sibAxis)
						siblingLine = store.TotalLine(sib, jj, kk, ii, n, siblingLine)
						siblingDerivBuf = k.Scheme.DerivativeAlong(sibAxis, sibDelta, siblingLine, sib.IsElectric(), scratch, siblingDerivBuf)
						siblingDeriv = siblingDerivBuf
						sibSign = sib.CurlSign()
					}

					for p := 1; p < n-1; p++ {
						kk, jj, ii = composeIndex(derivAxis, o1, o2, p)
						k.updateCell(store, c, field, physAxis, kk, jj, ii, derivBuf[p], sibSign, siblingDeriv, p, dispersive, conductive)
					}
				}
			}
		}(chunk[0], chunk[1])
	}
	wg.Wait()
	return nil
}

func (k *Kernel) updateCell(store *grid.Store, c grid.Component, field *grid.Field3D, physAxis grid.Axis, kk, jj, ii int, ownDeriv, sibSign float64, siblingDeriv []float64, p int, dispersive, conductive bool) {
	mk := clampTo(kk, len(store.MaterialIndex))
	mj := clampTo(jj, len(store.MaterialIndex[0]))
	mi := clampTo(ii, len(store.MaterialIndex[0][mj]))
	matIdx, _ := store.MaterialAt(mk, mj, mi)
	nextIdx := neighbourMaterial(store, physAxis, mk, mj, mi)
	coeffs := k.Tables.Lookup(physAxis, matIdx, nextIdx, k.Dims.JTot, mj, mk)

	old := field.At(kk, jj, ii)
	term := c.CurlSign() * ownDeriv
	if siblingDeriv != nil {
		term += sibSign * siblingDeriv[p]
	}
	updated := coeffs.A*old + coeffs.B*term

	if dispersive {
		updated = k.applyDispersion(store, c, matIdx, kk, jj, ii, coeffs, old, updated)
	}
	if conductive {
		updated = k.applyConductivity(store, c, kk, jj, ii, coeffs, old, updated)
	}
	field.Set(kk, jj, ii, updated)
}

// applyDispersion implements spec.md §4.2's dispersion branch:
//
//	E_new += Cc*E_nm1 - Cb*((1+alpha)*J + beta*J_nm1)
//	J_new = alpha*J + beta*J_nm1 + kappa*gamma/(2*dt)*(E_new-E_nm1) + sigma*gamma/eps0*E_old
//	E_nm1 <- E_old; J_nm1 <- J; J <- J_new
func (k *Kernel) applyDispersion(store *grid.Store, c grid.Component, matIdx, kk, jj, ii int, coeffs material.Coeffs, old, updated float64) float64 {
	disp := k.Tables.DispersionFor(matIdx, kk)
	if !disp.IsActive() {
		return updated
	}
	kappa, sigma := disp.Kappa, disp.Sigma
	if matIdx == 0 {
		kappa, sigma = k.Tables.BackgroundDispersion.KappaSigma(c.PhysicalAxis(), kk)
	}

	jField := store.Js[c]
	jnm1Field := store.JsNm1[c]
	enm1Field := store.Enm1[c]

	jOld := jField.At(kk, jj, ii)
	jNm1 := jnm1Field.At(kk, jj, ii)
	enm1 := enm1Field.At(kk, jj, ii)

	updated += coeffs.C*enm1 - coeffs.B*((1+disp.Alpha)*jOld+disp.Beta*jNm1)

	jNew := disp.Alpha*jOld + disp.Beta*jNm1 +
		kappa*disp.Gamma/(2*k.Dt)*(updated-enm1) +
		sigma*disp.Gamma/eps0*old

	enm1Field.Set(kk, jj, ii, old)
	jnm1Field.Set(kk, jj, ii, jOld)
	jField.Set(kk, jj, ii, jNew)
	return updated
}

// applyConductivity implements spec.md §4.2's conductivity branch:
//
//	E_new <- E_new + Cb*J_c
//	J_c <- J_c - rho*(E_new + E_old)
func (k *Kernel) applyConductivity(store *grid.Store, c grid.Component, kk, jj, ii int, coeffs material.Coeffs, old, updated float64) float64 {
	jc := store.Jc[c]
	jcOld := jc.At(kk, jj, ii)
	updated += coeffs.B * jcOld
	jc.Set(kk, jj, ii, jcOld-k.Tables.Rho*(updated+old))
	return updated
}

func (k *Kernel) workers(n int) int {
	if k.MaxParallelism > 0 {
		if k.MaxParallelism < n {
			return k.MaxParallelism
		}
		return n
	}
	return n
}

func fieldOf(store *grid.Store, c grid.Component) *grid.Field3D {
	if c.IsElectric() {
		return store.E[c]
	}
	return store.H[c]
}

func axisExtent(axis grid.Axis, nk, nj, ni int) int {
	switch axis {
	case grid.AxisX:
		return ni
	case grid.AxisY:
		return nj
	default:
		return nk
	}
}

func transverseExtents(axis grid.Axis, nk, nj, ni int) (outer1, outer2 int) {
	switch axis {
	case grid.AxisX:
		return nk, nj
	case grid.AxisY:
		return nk, ni
	default:
		return nj, ni
	}
}

func composeIndex(axis grid.Axis, o1, o2, p int) (k, j, i int) {
	switch axis {
	case grid.AxisX:
		return o1, o2, p
	case grid.AxisY:
		return o1, p, o2
	default:
		return p, o1, o2
	}
}

// neighbourMaterial returns the material index of the axis-next
// neighbour along physAxis, used by the "interpolate material
// properties" coefficient-averaging rule in spec.md §4.2.
func neighbourMaterial(store *grid.Store, physAxis grid.Axis, k, j, i int) int {
	nk, nj, ni := len(store.MaterialIndex), len(store.MaterialIndex[0]), len(store.MaterialIndex[0][0])
	switch physAxis {
	case grid.AxisX:
		idx, _ := store.MaterialAt(k, j, clampTo(i+1, ni))
		return idx
	case grid.AxisY:
		idx, _ := store.MaterialAt(k, clampTo(j+1, nj), i)
		return idx
	default:
		idx, _ := store.MaterialAt(clampTo(k+1, nk), j, i)
		return idx
	}
}

func clampTo(v, n int) int {
	if n <= 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// splitRange partitions [0,n) into up to `workers` contiguous chunks,
// the bounded-concurrency shape from spec.md §9 ("tiling over one
// outer axis per pass").
func splitRange(n, workers int) [][2]int {
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return [][2]int{{0, n}}
	}
	chunks := make([][2]int, 0, workers)
	base := n / workers
	rem := n % workers
	start := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, [2]int{start, start + size})
		start += size
	}
	return chunks
}
