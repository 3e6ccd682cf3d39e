// Package nnls defines options and sentinel errors for the
// non-negative least-squares solver.
package nnls

import "errors"

// Sentinel errors for nnls operations.
var (
	// ErrBadDimensions indicates mismatched or empty input shapes.
	ErrBadDimensions = errors.New("nnls: input dimensions are empty or disagree")
	// ErrMaxIterations indicates the active-set loop hit its iteration cap.
	ErrMaxIterations = errors.New("nnls: maximum iterations reached before optimality")
)

// Options contains tunable parameters for Solve.
//
// Fields:
//   - MaxIter — cap on active-set iterations. A value ≤ 0 selects the
//     conventional default of 3·n (n = number of columns of A).
//   - Tol — optimality threshold for the dual vector w = Aᵀ(b−Ax).
//     A value ≤ 0 selects a scale-aware default derived from ‖A‖₁.
type Options struct {
	MaxIter int
	Tol     float64
}

// DefaultOptions returns an Options with both knobs on their defaults
// (MaxIter=0 → 3·n, Tol=0 → scale-aware).
func DefaultOptions() Options {
	return Options{MaxIter: 0, Tol: 0}
}

// Solver bundles Options into a reusable value whose Refit method
// satisfies the strictfit.Refitter collaborator interface.
type Solver struct {
	Opts Options
}
