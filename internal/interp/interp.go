package interp

// Family selects between the band-limited and cubic scheme families
// for Interpolator.Select.
type Family int

const (
	BandLimited Family = iota
	Cubic
)

// Interpolator picks and applies an interpolation scheme for
// reconstructing the half-step sample between line[i] and line[i+1],
// per the scheme-selection rule in spec.md §4.7: prefer the symmetric
// interior scheme (BL4, or CBMid) and fall back to the deepest
// boundary-admissible scheme when fewer than four samples are
// available on one side.
type Interpolator struct {
	Family Family
}

// Select returns the scheme to use for index i on a line of length n.
func (it Interpolator) Select(i, n int) Scheme {
	if it.Family == Cubic {
		switch {
		case i == 0:
			return CBFst
		case i >= n-2:
			return CBLst
		default:
			return CBMid
		}
	}
	lower := i + 9 - n
	if lower < 0 {
		lower = 0
	}
	upper := i + 1
	if upper > 7 {
		upper = 7
	}
	numLeft := 4
	if numLeft < lower {
		numLeft = lower
	}
	if numLeft > upper {
		numLeft = upper
	}
	return BLSchemes[numLeft]
}

// At reconstructs the half-step sample between line[i] and line[i+1].
func (it Interpolator) At(line []float64, i int) float64 {
	return it.Select(i, len(line)).Apply(line, i)
}

// AtComplex is At's complex-valued counterpart.
func (it Interpolator) AtComplex(line []complex128, i int) complex128 {
	return it.Select(i, len(line)).ApplyComplex(line, i)
}
