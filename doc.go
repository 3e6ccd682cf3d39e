// Package sigfit is an in-memory toolkit for strict non-negative
// refitting of mutational signatures against observed mutation counts.
//
// 🚀 What is sigfit?
//
//	A small, deterministic library that brings together:
//		• Non-negative least squares: a Lawson–Hanson active-set solver
//		• Cohort refitting: contribution + reconstruction per sample
//		• Strict refitting: greedy backward elimination of weak signatures
//		  with a similarity-loss budget per removal step
//		• Decay traces: per-sample similarity records for diagnostics
//
// ✨ Why choose sigfit?
//
//   - Predictable – pure functions over immutable inputs, no global state
//   - Rock-solid guarantees – validated inputs, sentinel errors, in-code docs
//   - Parallel where it is free – per-sample refinement fans out safely
//   - Extensible – bring your own Refitter, keep the elimination core
//
// Under the hood, everything is organized under two subpackages:
//
//	nnls/   — non-negative least squares (Solve) and cohort refitting (Refit)
//	strictfit/ — strict refitting: filter, per-sample refinement, aggregation
//
// Quick sketch:
//
//	counts (types × samples)  ┐
//	                          ├─► Fit ─► contribution (signatures × samples)
//	signatures (types × sigs) ┘         reconstruction (types × samples)
//	                                    one decay trace per sample
//
// Dive into README.md for full examples and the algorithm walkthrough.
//
//	go get github.com/katalvlaran/sigfit
package sigfit
