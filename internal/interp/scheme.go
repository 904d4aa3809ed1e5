// Package interp reconstructs centre-of-cell field values from
// split-field half-samples, using one of eleven 8-tap interpolation
// schemes: eight band-limited (BL0..BL7, offset-specific near the two
// boundaries and symmetric in the interior) and three cubic variants
// (CBFst/CBMid/CBLst for leftmost/interior/rightmost cells), per
// spec.md §4.7.
package interp

import "math"

// Scheme holds the eight dot-product coefficients used to reconstruct
// a half-step sample, plus the bookkeeping spec.md §4.7 requires:
// which of the eight taps are actually nonzero, and how many of the
// eight lie to the left of the interpolation point.
type Scheme struct {
	Coeff                   [8]float64
	FirstNonzeroCoeff       int
	LastNonzeroCoeff        int
	NumberOfDataPointsToLeft int
}

// Apply evaluates the scheme against an 8-sample real window
// line[i+1-NumberOfDataPointsToLeft .. i+8-NumberOfDataPointsToLeft],
// so that NumberOfDataPointsToLeft of the eight samples lie at or left
// of line[i].
func (s Scheme) Apply(line []float64, i int) float64 {
	start := i + 1 - s.NumberOfDataPointsToLeft
	var acc float64
	for k := s.FirstNonzeroCoeff; k <= s.LastNonzeroCoeff; k++ {
		idx := start + k
		if idx < 0 {
			idx = 0
		}
		if idx >= len(line) {
			idx = len(line) - 1
		}
		acc += s.Coeff[k] * line[idx]
	}
	return acc
}

// ApplyComplex is Apply's complex-valued counterpart; spec.md §4.7
// requires interpolation to "work over real or complex-valued data".
func (s Scheme) ApplyComplex(line []complex128, i int) complex128 {
	start := i + 1 - s.NumberOfDataPointsToLeft
	var acc complex128
	for k := s.FirstNonzeroCoeff; k <= s.LastNonzeroCoeff; k++ {
		idx := start + k
		if idx < 0 {
			idx = 0
		}
		if idx >= len(line) {
			idx = len(line) - 1
		}
		acc += complex(s.Coeff[k], 0) * line[idx]
	}
	return acc
}

// sinc is the normalised sinc function, sin(pi x)/(pi x), with
// sinc(0) = 1.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// lanczosWindow is the Lanczos kernel of half-width a, used to taper
// the sinc-based band-limited coefficients to a finite 8-tap support.
func lanczosWindow(x, a float64) float64 {
	if x < -a || x > a {
		return 0
	}
	return sinc(x / a)
}

// blScheme builds the band-limited scheme whose interpolation point
// has numLeft samples to its left among the eight taps. Coefficients
// are windowed-sinc weights normalised to sum to 1, which both
// reconstructs smooth band-limited signals well and guarantees the
// BL coefficient-sum-constancy property from spec.md §8 by
// construction.
func blScheme(numLeft int) Scheme {
	var raw [8]float64
	sum := 0.0
	for m := 0; m < 8; m++ {
		offset := float64(m-numLeft) + 0.5
		w := sinc(offset) * lanczosWindow(offset, 4.0)
		raw[m] = w
		sum += w
	}
	s := Scheme{NumberOfDataPointsToLeft: numLeft}
	first, last := -1, -1
	const epsilon = 1e-13
	for m := 0; m < 8; m++ {
		s.Coeff[m] = raw[m] / sum
		if math.Abs(s.Coeff[m]) > epsilon {
			if first == -1 {
				first = m
			}
			last = m
		}
	}
	if first == -1 {
		first, last = 0, 7
	}
	s.FirstNonzeroCoeff = first
	s.LastNonzeroCoeff = last
	return s
}

// BLSchemes holds BL0..BL7 indexed by NumberOfDataPointsToLeft.
var BLSchemes = buildBLSchemes()

func buildBLSchemes() [8]Scheme {
	var out [8]Scheme
	for n := 0; n < 8; n++ {
		out[n] = blScheme(n)
	}
	return out
}

// cubicScheme builds an exact-for-cubics 4-tap scheme (with the
// remaining four of the eight coefficient slots zero) using Lagrange
// weights evaluated at the given fractional offset from samples
// p0..p3 placed at relative positions 0..3.
func cubicScheme(offset float64, numLeft int) Scheme {
	s := Scheme{NumberOfDataPointsToLeft: numLeft}
	nodes := [4]float64{0, 1, 2, 3}
	for j := 0; j < 4; j++ {
		l := 1.0
		for m := 0; m < 4; m++ {
			if m == j {
				continue
			}
			l *= (offset - nodes[m]) / (nodes[j] - nodes[m])
		}
		s.Coeff[j+2] = l // taps occupy slots 2..5 of the 8, leaving room
		// for the BL-sized window so both families share one Scheme shape.
	}
	s.FirstNonzeroCoeff = 2
	s.LastNonzeroCoeff = 5
	return s
}

// CBFst interpolates between line[i] and line[i+1] at the left edge,
// using a forward-biased cubic through line[i..i+3], evaluated at
// x=0.5 relative to that window: it needs no samples left of i.
var CBFst = cubicScheme(0.5, 3)

// CBMid interpolates between line[i] and line[i+1] in the interior,
// using the symmetric cubic through line[i-1..i+2], evaluated at
// x=1.5 relative to that window.
var CBMid = cubicScheme(1.5, 4)

// CBLst interpolates between line[i] and line[i+1] at the right edge,
// using a backward-biased cubic through line[i-2..i+1], evaluated at
// x=2.5 relative to that window: it needs no samples right of i+1.
var CBLst = cubicScheme(2.5, 5)
