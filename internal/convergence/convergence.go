// Package convergence implements the Convergence Monitor from
// spec.md §4.6: on steady-state cycle boundaries it compares the
// current cycle's E-phasor volume against the previous cycle's
// snapshot and decides whether to terminate.
package convergence

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/UCL/isotropic-finite-difference-time-domain/internal/fdtderr"
)

// Tolerance is the fixed relative-difference threshold from
// spec.md §4.6 and §8.
const Tolerance = 1e-6

// Monitor tracks the previous cycle's flattened E-phasor volume and
// decides convergence by comparing it to the current cycle.
type Monitor struct {
	prev []complex128
}

// Check computes max|E-Eprev| / max|E| over the flattened interior
// volume `current`, against the stored previous-cycle snapshot. It
// returns whether the run has converged and the relative difference
// actually observed. The first call (no stored snapshot) never
// converges; it only seeds the snapshot.
func (m *Monitor) Check(current []complex128) (converged bool, relDiff float64) {
	if m.prev == nil {
		m.prev = append([]complex128(nil), current...)
		return false, 1
	}

	absCurrent := make([]float64, len(current))
	absDiff := make([]float64, len(current))
	for i, v := range current {
		absCurrent[i] = cmplx.Abs(v)
		absDiff[i] = cmplx.Abs(v - m.prev[i])
	}

	maxCurrent := floats.Max(absCurrent)
	maxDiff := floats.Max(absDiff)

	if maxCurrent == 0 {
		relDiff = maxDiff
	} else {
		relDiff = maxDiff / maxCurrent
	}

	converged = relDiff < Tolerance
	copy(m.prev, current)
	return converged, relDiff
}

// Snapshot returns the stored previous-cycle volume, the value
// spec.md §4.6 says to return on convergence ("the previous cycle's
// snapshot is returned because the current cycle is incomplete when
// the check fires").
func (m *Monitor) Snapshot() []complex128 {
	return append([]complex128(nil), m.prev...)
}

// RequireMatchingLength validates that a newly-accumulated volume has
// the same channel count as a previously recorded one, surfacing a
// mismatch as the invariant violation spec.md §7 describes.
func RequireMatchingLength(got, want int) error {
	if got != want {
		return fdtderr.NewInvariantError("convergence.Monitor", []int{got, want}, "phasor volume length changed between cycles")
	}
	return nil
}
