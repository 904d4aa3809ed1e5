// Package material holds the per-axis coefficient tables, the
// per-material and background tables they are selected from, the
// dispersion and conductivity parameters, and the grating "structure"
// offset array described in spec.md §3 and §4.2.
package material

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/grid"

// Coeffs is one (a,b,c) coefficient triple for one axis: a scales the
// previous field value, b scales the curl term, c scales the (n-1)
// previous-previous value (dispersive correction).
type Coeffs struct {
	A, B, C float64
}

// Average returns the cell/axis-next-neighbour average of two
// coefficient triples, used when the "interpolate material
// properties" flag requests it (spec.md §4.2 rule 3).
func Average(p, q Coeffs) Coeffs {
	return Coeffs{
		A: 0.5 * (p.A + q.A),
		B: 0.5 * (p.B + q.B),
		C: 0.5 * (p.C + q.C),
	}
}

// AxisTriple groups the per-axis {a,b,c}x{x,y,z} coefficients spec.md
// §3 describes as a struct-of-arrays, per the redesign note in §9.
type AxisTriple struct {
	X, Y, Z Coeffs
}

// ForAxis returns the Coeffs for the given grid axis.
func (t AxisTriple) ForAxis(axis grid.Axis) Coeffs {
	switch axis {
	case grid.AxisX:
		return t.X
	case grid.AxisY:
		return t.Y
	default:
		return t.Z
	}
}

// Dispersion holds the three scalars (alpha, beta, gamma) per
// dispersive material, and the kappa/sigma pair used in the
// dispersion-correction term of the update kernel (spec.md §3, §4.2).
type Dispersion struct {
	Alpha, Beta, Gamma float64
	Kappa, Sigma       float64
}

// IsActive reports whether this material requires the dispersion
// branch of the update kernel (gamma > 0, per spec.md §4.2).
func (d Dispersion) IsActive() bool { return d.Gamma > 0 }

// MultilayerDispersion is the background dispersion table indexed by
// k, required when the background itself is dispersive (spec.md §3:
// "A dispersive background requires arrays alpha[k], beta[k],
// gamma[k] plus kappa and sigma vectors per axis"). This is one of the
// features the distillation left implicit; it is supplemented here
// from tdms/include/arrays.h's per-k register layout.
type MultilayerDispersion struct {
	Alpha, Beta, Gamma []float64          // indexed by k
	Kappa, Sigma       map[grid.Axis][]float64 // indexed by k, per axis
}

// IsActive reports whether the background is dispersive at all: any
// gamma[k] > 0.
func (m *MultilayerDispersion) IsActive() bool {
	if m == nil {
		return false
	}
	for _, g := range m.Gamma {
		if g > 0 {
			return true
		}
	}
	return false
}

// At returns the (alpha, beta, gamma) scalars for layer k, clamped to
// the table's extent.
func (m *MultilayerDispersion) At(k int) (alpha, beta, gamma float64) {
	if m == nil || len(m.Gamma) == 0 {
		return 0, 0, 0
	}
	if k < 0 {
		k = 0
	}
	if k >= len(m.Gamma) {
		k = len(m.Gamma) - 1
	}
	return m.Alpha[k], m.Beta[k], m.Gamma[k]
}

// KappaSigma returns the per-axis kappa/sigma scalars for layer k.
func (m *MultilayerDispersion) KappaSigma(axis grid.Axis, k int) (kappa, sigma float64) {
	if m == nil {
		return 0, 0
	}
	ks, ss := m.Kappa[axis], m.Sigma[axis]
	if len(ks) == 0 {
		return 0, 0
	}
	if k < 0 {
		k = 0
	}
	if k >= len(ks) {
		k = len(ks) - 1
	}
	return ks[k], ss[k]
}

// Structure is the vertical grating-offset array from spec.md §4.2:
// "A vertical 'structure' array offsets the coefficient-table axis
// index per horizontal position, allowing a grating profile." It maps
// a horizontal position (i,j) to an additive offset on the background
// table's axis (multilayer k) index.
type Structure struct {
	offset [][]int // indexed [j][i]
	nj, ni int
}

// NewStructure allocates a zero-offset structure table over an (nj,ni)
// horizontal grid.
func NewStructure(nj, ni int) *Structure {
	s := &Structure{nj: nj, ni: ni}
	s.offset = make([][]int, nj)
	for j := range s.offset {
		s.offset[j] = make([]int, ni)
	}
	return s
}

// Set stores the grating offset at horizontal position (j,i).
func (s *Structure) Set(j, i, offset int) {
	if s == nil {
		return
	}
	s.offset[j][i] = offset
}

// Offset returns the grating offset at (j,i), or 0 if s is nil (flat
// background, the common case when no grating is configured).
func (s *Structure) Offset(j, i int) int {
	if s == nil {
		return 0
	}
	if j < 0 || j >= s.nj || i < 0 || i >= s.ni {
		return 0
	}
	return s.offset[j][i]
}

// Tables bundles everything the coefficient-selection rule in
// spec.md §4.2 needs: the background table (optionally multilayer-
// indexed), the per-material tables, the per-material dispersion
// scalars, the background multilayer dispersion, conductivity
// resistivity, and the grating structure offset.
type Tables struct {
	// Background is indexed directly when Multilayer is false.
	Background AxisTriple
	// BackgroundLayers is indexed by the multilayer compound index
	// (J+1)*k + j (or the analogous 2-D index) when Multilayer is true.
	BackgroundLayers []AxisTriple
	Multilayer       bool

	// PerMaterial[m-1] is the coefficient triple for material index m.
	PerMaterial []AxisTriple
	// MaterialDispersion[m-1] is the dispersion scalars for material m.
	MaterialDispersion []Dispersion

	BackgroundDispersion *MultilayerDispersion

	// Rho is the background conductivity (resistivity-like scalar);
	// the conductivity branch activates when Rho > 1e-15 on at least
	// one cell (spec.md §4.2).
	Rho float64

	InterpolateMaterialProperties bool
	Structure                     *Structure
}

// ConductivityActive reports whether the conductivity branch is
// needed anywhere in the grid.
func (t *Tables) ConductivityActive() bool { return t.Rho > 1e-15 }

// DispersionActive reports whether the dispersion branch could be
// needed anywhere: either some material has gamma > 0, or the
// background multilayer is dispersive.
func (t *Tables) DispersionActive() bool {
	if t.BackgroundDispersion.IsActive() {
		return true
	}
	for _, d := range t.MaterialDispersion {
		if d.IsActive() {
			return true
		}
	}
	return false
}

// multilayerIndex computes the compound background-layer index
// (J+1)*k + j from spec.md §3.
func (t *Tables) multilayerIndex(jtot, j, k int) int {
	return (jtot+1)*k + j
}

// Lookup implements the three-step coefficient-selection rule from
// spec.md §4.2: background (direct or multilayer, with grating
// structure offset applied to k), per-material, or the
// material/axis-next-neighbour average when interpolation is
// requested and the neighbour differs.
func (t *Tables) Lookup(axis grid.Axis, matIdx, nextMatIdx int, jtot, j, k int) Coeffs {
	here := t.lookupOne(axis, matIdx, jtot, j, k)
	if !t.InterpolateMaterialProperties || matIdx == nextMatIdx {
		return here
	}
	next := t.lookupOne(axis, nextMatIdx, jtot, j, k)
	return Average(here, next)
}

func (t *Tables) lookupOne(axis grid.Axis, matIdx, jtot, j, k int) Coeffs {
	if matIdx == 0 {
		if !t.Multilayer {
			return t.Background.ForAxis(axis)
		}
		k = k + t.Structure.Offset(j, 0)
		idx := t.multilayerIndex(jtot, j, k)
		if idx < 0 {
			idx = 0
		}
		if idx >= len(t.BackgroundLayers) {
			idx = len(t.BackgroundLayers) - 1
		}
		return t.BackgroundLayers[idx].ForAxis(axis)
	}
	m := matIdx - 1
	if m < 0 || m >= len(t.PerMaterial) {
		return Coeffs{}
	}
	return t.PerMaterial[m].ForAxis(axis)
}

// DispersionFor returns the dispersion scalars active at a cell: the
// per-material dispersion if matIdx != 0, otherwise the background
// multilayer dispersion at layer k.
func (t *Tables) DispersionFor(matIdx, k int) Dispersion {
	if matIdx != 0 {
		m := matIdx - 1
		if m >= 0 && m < len(t.MaterialDispersion) {
			return t.MaterialDispersion[m]
		}
		return Dispersion{}
	}
	alpha, beta, gamma := t.BackgroundDispersion.At(k)
	return Dispersion{Alpha: alpha, Beta: beta, Gamma: gamma}
}
