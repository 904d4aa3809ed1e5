package interp

import (
	"math"
	"testing"
)

func TestBLCoefficientsSumToOne(t *testing.T) {
	for n, s := range BLSchemes {
		sum := 0.0
		for _, c := range s.Coeff {
			sum += c
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("BL%d coefficient sum = %v, want 1", n, sum)
		}
	}
}

func TestCubicSchemesAreExactForCubics(t *testing.T) {
	f := func(x float64) float64 { return 2*x*x*x - 3*x*x + x - 5 }
	line := make([]float64, 12)
	for i := range line {
		line[i] = f(float64(i))
	}

	got := CBFst.Apply(line, 0)
	want := f(0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CBFst: got %v, want %v", got, want)
	}

	got = CBMid.Apply(line, 5)
	want = f(5.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CBMid: got %v, want %v", got, want)
	}

	got = CBLst.Apply(line, 10)
	want = f(10.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CBLst: got %v, want %v", got, want)
	}
}

func TestSelectPrefersSymmetricInterior(t *testing.T) {
	it := Interpolator{Family: BandLimited}
	s := it.Select(20, 40)
	if s.NumberOfDataPointsToLeft != 4 {
		t.Errorf("interior selection NumberOfDataPointsToLeft = %d, want 4", s.NumberOfDataPointsToLeft)
	}
}

func TestSelectFallsBackNearLeftBoundary(t *testing.T) {
	it := Interpolator{Family: BandLimited}
	s := it.Select(0, 40)
	if s.NumberOfDataPointsToLeft != 1 {
		t.Errorf("left-boundary selection NumberOfDataPointsToLeft = %d, want 1", s.NumberOfDataPointsToLeft)
	}
}

func TestSelectFallsBackNearRightBoundary(t *testing.T) {
	it := Interpolator{Family: BandLimited}
	n := 40
	s := it.Select(n-2, n)
	if s.NumberOfDataPointsToLeft != 7 {
		t.Errorf("right-boundary selection NumberOfDataPointsToLeft = %d, want 7", s.NumberOfDataPointsToLeft)
	}
}

func TestCubicFamilySelectsEndpointSchemes(t *testing.T) {
	it := Interpolator{Family: Cubic}
	if s := it.Select(0, 10); s.NumberOfDataPointsToLeft != CBFst.NumberOfDataPointsToLeft {
		t.Errorf("expected CBFst at left edge")
	}
	if s := it.Select(8, 10); s.NumberOfDataPointsToLeft != CBLst.NumberOfDataPointsToLeft {
		t.Errorf("expected CBLst at right edge")
	}
	if s := it.Select(5, 10); s.NumberOfDataPointsToLeft != CBMid.NumberOfDataPointsToLeft {
		t.Errorf("expected CBMid in the interior")
	}
}

// mollifier is the standard compactly-supported smooth bump
// exp(-1/(1-x^2)) on (-1,1), zero elsewhere.
func mollifier(x float64) float64 {
	if x <= -1 || x >= 1 {
		return 0
	}
	return math.Exp(-1 / (1 - x*x))
}

// TestBLInterpolationConcreteScenarios checks the four end-to-end
// numeric scenarios from spec.md §8 against MATLAB-order error
// bounds: 100 samples, band-limited interpolation to the 99
// mid-points, max error measured against the exact generating
// function.
func TestBLInterpolationConcreteScenarios(t *testing.T) {
	const n = 100
	it := Interpolator{Family: BandLimited}

	xOf := func(i int) float64 { return float64(i) / float64(n-1) }
	midOf := func(i int) float64 { return (xOf(i) + xOf(i+1)) / 2 }

	cases := []struct {
		name   string
		f      func(x float64) float64
		maxErr float64
	}{
		{"constant", func(x float64) float64 { return 1 }, 2.83e-4},
		{"sin2pi", func(x float64) float64 { return math.Sin(2 * math.Pi * x) }, 2.64e-4},
		{"smoothPulse", func(x float64) float64 { return mollifier(3 * (2*x - 1)) }, 4.88e-4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := make([]float64, n)
			for i := range line {
				line[i] = tc.f(xOf(i))
			}
			var maxErr float64
			for i := 0; i < n-1; i++ {
				got := it.At(line, i)
				want := tc.f(midOf(i))
				if d := math.Abs(got - want); d > maxErr {
					maxErr = d
				}
			}
			if maxErr > tc.maxErr {
				t.Errorf("%s: max error = %v, want < %v", tc.name, maxErr, tc.maxErr)
			}
		})
	}

	t.Run("complex", func(t *testing.T) {
		const wantMaxErr = 5.36e-4
		line := make([]complex128, n)
		f := func(x float64) complex128 {
			return complex(math.Sin(2*math.Pi*x), mollifier(3*(2*x-1)))
		}
		for i := range line {
			line[i] = f(xOf(i))
		}
		var maxErr float64
		for i := 0; i < n-1; i++ {
			got := it.AtComplex(line, i)
			want := f(midOf(i))
			if d := cmplxAbs(got - want); d > maxErr {
				maxErr = d
			}
		}
		if maxErr > wantMaxErr {
			t.Errorf("complex: max error = %v, want < %v", maxErr, wantMaxErr)
		}
	})
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
