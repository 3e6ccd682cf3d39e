// Package strictfit performs strict non-negative signature refitting:
// per sample, it greedily discards the weakest-contributing signature
// for as long as reconstruction quality drops by no more than MaxDelta
// per step, then reassembles the cohort on the original ordering.
//
// What:
//
//   - Fit runs the whole pipeline: validate → global zero-contribution
//     filter → per-sample backward elimination → cohort aggregation.
//   - Each sample yields a decay Trace (similarity after each removal)
//     for diagnostics and downstream plotting.
//   - Undefined cosine similarities (zero-norm columns) are substituted
//     with 0 and surfaced as Warning values on the Result.
//
// Why:
//
//   - Unconstrained refitting spreads small spurious weight over many
//     signatures; strict refitting trades a bounded similarity loss per
//     step for a minimal signature subset.
//   - Cohort studies: per-sample subsets, one shared signature order.
//
// Complexity:
//
//   - Per sample: at most k−1 elimination steps, each one refit over
//     the shrinking subset (k = globally retained signatures).
//   - Samples are independent; Fit fans them out across Workers.
//
// Options:
//
//   - Options.MaxDelta: tolerated mean-cosine loss per removal step.
//   - Options.Refitter: the NNLS collaborator (nnls.Solver by default).
//   - Options.Workers: parallel sample fan-out; ≤ 0 means GOMAXPROCS.
//
// Errors:
//
//   - ErrNilInput: counts or signatures is nil.
//   - ErrDimensionMismatch: mutation-type rows of counts and signatures
//     disagree, or name slices do not match matrix dimensions.
//   - ErrNegativeInput: a matrix entry is negative, NaN or infinite.
//   - ErrBadDelta: MaxDelta is negative, NaN or infinite.
//   - ErrEmptySignatureSet: no signature carries positive contribution
//     anywhere in the cohort.
package strictfit
