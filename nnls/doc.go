// Package nnls solves non-negative least-squares problems and refits
// whole mutation-count cohorts against a signature catalogue.
//
// What:
//
//   - Solve finds x ≥ 0 minimizing ‖Ax − b‖₂ with the Lawson–Hanson
//     active-set method.
//   - Refit runs Solve independently per counts column and returns the
//     contribution matrix plus the reconstructed counts.
//
// Why:
//
//   - Signature refitting: weight mutational signatures per sample.
//   - Spectral unmixing, abundance estimation, any fit where negative
//     coefficients are physically meaningless.
//
// Complexity:
//
//   - Solve: each iteration solves a least-squares subproblem on the
//     passive columns, O(m·k²) via QR; at most MaxIter iterations
//     (default 3·n).
//   - Refit: one Solve per sample column.
//
// Options:
//
//   - Options.MaxIter: iteration cap; ≤ 0 selects the 3·n default.
//   - Options.Tol: optimality threshold on the dual vector; ≤ 0 selects
//     a scale-aware default.
//
// Errors:
//
//   - ErrBadDimensions: shapes of A, b (or counts, signatures) disagree.
//   - ErrMaxIterations: the iteration cap was reached before optimality.
package nnls
