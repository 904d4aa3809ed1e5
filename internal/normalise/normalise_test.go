package normalise

import (
	"math"
	"testing"
)

func TestIdempotenceWithUnitNorm(t *testing.T) {
	sample := complex(1.7, -0.3)
	norm := complex(1, 0)

	once := Apply(sample, norm)
	twice := Apply(once, norm)

	if math.Abs(real(once-twice)) > 1e-15 || math.Abs(imag(once-twice)) > 1e-15 {
		t.Errorf("normaliser is not idempotent with unit norm: once=%v twice=%v", once, twice)
	}
	if once != sample {
		t.Errorf("dividing by a unit norm should be a no-op: got %v, want %v", once, sample)
	}
}

func TestApplyMatchesDefinition(t *testing.T) {
	sample := complex(2, 1)
	norm := complex(1, 1)
	got := Apply(sample, norm)
	want := sample * complex(1, -1) / complex(2, 0)
	if got != want {
		t.Errorf("Apply(%v, %v) = %v, want %v", sample, norm, got, want)
	}
}

func TestZeroNormIsNoOp(t *testing.T) {
	sample := complex(3, 4)
	if got := Apply(sample, 0); got != sample {
		t.Errorf("Apply with zero norm = %v, want unchanged %v", got, sample)
	}
}
