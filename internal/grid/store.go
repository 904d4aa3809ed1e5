package grid

import "github.com/UCL/isotropic-finite-difference-time-domain/internal/fdtderr"

// electricComponents and magneticComponents list the six split halves
// of each field family, in a fixed order used whenever the time loop
// or kernel needs to iterate "all six components".
var electricComponents = [6]Component{Exy, Exz, Eyx, Eyz, Ezx, Ezy}
var magneticComponents = [6]Component{Hxy, Hxz, Hyx, Hyz, Hzx, Hzy}

// ElectricComponents returns the six E split components in canonical order.
func ElectricComponents() [6]Component { return electricComponents }

// MagneticComponents returns the six H split components in canonical order.
func MagneticComponents() [6]Component { return magneticComponents }

// Store owns every dense array the engine mutates during a run: the
// split E/H fields, the dispersion and conductivity auxiliary current
// densities, the previous-step copies they need, and the
// material-index volume. It is created once at setup and mutated only
// by the update kernels and the TF/SF injector (spec.md §3 Lifecycle).
type Store struct {
	Dims Dims

	E map[Component]*Field3D
	H map[Component]*Field3D

	// Js is the dispersion auxiliary current density; allocated lazily
	// (spec.md §9) only when dispersion is active anywhere in the grid.
	Js map[Component]*Field3D
	// Jc is the conductivity auxiliary current density; allocated
	// lazily only when conductivity is active.
	Jc map[Component]*Field3D

	// Enm1 holds each E split component's value at time n-1; JsNm1
	// likewise for Js. Both are nil until the dispersion/conductivity
	// branch that needs them is first active.
	Enm1  map[Component]*Field3D
	JsNm1 map[Component]*Field3D

	// MaterialIndex is the integer-valued material-index volume,
	// shaped (K_tot+1)x(J_tot+1)x(I_tot+1): 0 means background.
	MaterialIndex [][][]int
}

// NewStore allocates the twelve split-field arrays at their
// Yee-staggered shapes. Js/Jc/Enm1/JsNm1 are left nil; call
// EnableDispersion / EnableConductivity to allocate them once a
// material requiring them is known.
func NewStore(d Dims) (*Store, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s := &Store{
		Dims: d,
		E:    make(map[Component]*Field3D, 6),
		H:    make(map[Component]*Field3D, 6),
	}
	for _, c := range electricComponents {
		nk, nj, ni := c.dims(d)
		s.E[c] = NewField3D(nk, nj, ni)
	}
	for _, c := range magneticComponents {
		nk, nj, ni := c.dims(d)
		s.H[c] = NewField3D(nk, nj, ni)
	}
	nk, nj, ni := d.KTot+1, d.JTot+1, d.ITot+1
	if d.Is2D() {
		nj = 1
	}
	s.MaterialIndex = make([][][]int, nk)
	for k := range s.MaterialIndex {
		s.MaterialIndex[k] = make([][]int, nj)
		for j := range s.MaterialIndex[k] {
			s.MaterialIndex[k][j] = make([]int, ni)
		}
	}
	return s, nil
}

// EnableDispersion allocates Js and Enm1/JsNm1 if not already present.
// Lazy per spec.md §9: "Auxiliary current densities carry the
// dispersion history; they must be allocated lazily and only if any
// material has gamma > 0 or the multilayer background is dispersive."
func (s *Store) EnableDispersion() {
	if s.Js != nil {
		return
	}
	s.Js = make(map[Component]*Field3D, 6)
	s.Enm1 = make(map[Component]*Field3D, 6)
	s.JsNm1 = make(map[Component]*Field3D, 6)
	for _, c := range electricComponents {
		f := s.E[c]
		s.Js[c] = NewField3D(f.NK, f.NJ, f.NI)
		s.Enm1[c] = NewField3D(f.NK, f.NJ, f.NI)
		s.JsNm1[c] = NewField3D(f.NK, f.NJ, f.NI)
	}
}

// EnableConductivity allocates Jc if not already present.
func (s *Store) EnableConductivity() {
	if s.Jc != nil {
		return
	}
	s.Jc = make(map[Component]*Field3D, 6)
	for _, c := range electricComponents {
		f := s.E[c]
		s.Jc[c] = NewField3D(f.NK, f.NJ, f.NI)
	}
}

// Physical sums the two split halves of a physical field component,
// e.g. Physical(AxisX, true) returns Ex = Exy + Exz at (k,j,i). This is
// the split-sum identity from spec.md §3 and §8: it must always equal
// the sum of the current split-half values, which holds here by
// construction since it is computed on demand rather than cached.
func (s *Store) Physical(axis Axis, electric bool, k, j, i int) float64 {
	a, b := s.splitPair(axis, electric)
	return a.At(k, j, i) + b.At(k, j, i)
}

// TotalLine extracts n samples of the total (summed) source field for
// component c along c's derivative axis, holding the transverse
// indices (j,k,i) fixed at the destination component's own
// coordinates. The source family's split pair can have a slightly
// different shape than the destination component (Yee staggering
// offsets arrays by one cell along various axes); indices that would
// run outside the source arrays' extent are clamped to the nearest
// valid sample rather than treated as an error, since the physical
// source field is smooth across that one-cell margin.
func (s *Store) TotalLine(c Component, j, k, i, n int, out []float64) []float64 {
	out = growFloat(out, n)
	srcAxis := c.SourceAxis()
	a, b := s.splitPair(srcAxis, !c.IsElectric())
	derivAxis := c.DerivativeAxis()
	for p := 0; p < n; p++ {
		kk, jj, ii := k, j, i
		switch derivAxis {
		case AxisX:
			ii = p
		case AxisY:
			jj = p
		default:
			kk = p
		}
		kk = clamp(kk, a.NK)
		jj = clamp(jj, a.NJ)
		ii = clamp(ii, a.NI)
		out[p] = a.At(kk, jj, ii) + b.At(kk, jj, ii)
	}
	return out
}

func clamp(v, n int) int {
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

func growFloat(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

func (s *Store) splitPair(axis Axis, electric bool) (*Field3D, *Field3D) {
	fam := s.H
	if electric {
		fam = s.E
	}
	switch axis {
	case AxisX:
		if electric {
			return fam[Exy], fam[Exz]
		}
		return fam[Hxy], fam[Hxz]
	case AxisY:
		if electric {
			return fam[Eyx], fam[Eyz]
		}
		return fam[Hyx], fam[Hyz]
	default:
		if electric {
			return fam[Ezx], fam[Ezy]
		}
		return fam[Hzx], fam[Hzy]
	}
}

// MaterialAt returns the material index at (k,j,i), or an error if the
// index is out of range (an invariant violation per spec.md §7).
func (s *Store) MaterialAt(k, j, i int) (int, error) {
	if k < 0 || k >= len(s.MaterialIndex) {
		return 0, fdtderr.NewInvariantError("grid.Store", []int{k, j, i}, "k index out of range")
	}
	row := s.MaterialIndex[k]
	if j < 0 || j >= len(row) {
		return 0, fdtderr.NewInvariantError("grid.Store", []int{k, j, i}, "j index out of range")
	}
	col := row[j]
	if i < 0 || i >= len(col) {
		return 0, fdtderr.NewInvariantError("grid.Store", []int{k, j, i}, "i index out of range")
	}
	return col[i], nil
}

// MaxFieldMagnitude scans all twelve split components for the largest
// absolute sample, used by the numerical-blow-up monitor (spec.md §4.9
// failure semantics: "numeric blow-up is detected by monitoring the
// max split-field magnitude and surfacing it").
func (s *Store) MaxFieldMagnitude() float64 {
	max := 0.0
	for _, c := range electricComponents {
		if v := s.E[c].MaxAbs(); v > max {
			max = v
		}
	}
	for _, c := range magneticComponents {
		if v := s.H[c].MaxAbs(); v > max {
			max = v
		}
	}
	return max
}
