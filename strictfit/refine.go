package strictfit

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// The per-sample refiner is an explicit state machine:
//
//	ACTIVE(subset, similarity) → ACTIVE(smaller, similarity′) → … → DONE(subset)
//
// One transition (tryRemoveWeakest) tentatively removes the signature
// with the lowest contribution proportion and accepts the step only
// when the similarity drop stays within maxDelta. The first rejected
// step terminates the machine with the state from before that step —
// no alternative candidate is tried, no lookahead past one violation.

// fitPair is one refit outcome for a single sample: a k×1 contribution
// over the active subset and the t×1 reconstruction.
type fitPair struct {
	contribution  *mat.Dense
	reconstructed *mat.Dense
}

// state is the refiner's accepted position: the active subset (as
// indices into the filtered signature pool), the mean cosine
// similarity of its refit, and the refit itself.
type state struct {
	subset []int
	sim    float64
	fit    fitPair
}

// sampleResult is the value one sample's refinement produces. Nothing
// here is shared across samples.
type sampleResult struct {
	subset        []int     // retained pool indices, original order
	contribution  []float64 // aligned with subset
	reconstructed []float64 // length = mutation types
	trace         Trace
	warnings      []Warning
}

// refineSample runs backward elimination for a single sample column.
//
// Outline:
//  1. Refit the full filtered subset; record {NoneRemoved, sim}.
//  2. While more than one signature remains: tryRemoveWeakest.
//     Every attempt is recorded in the trace; a rejected attempt
//     terminates the loop without being applied.
//  3. One final refit on the retained subset yields the sample's
//     contribution and reconstruction.
//
// A filtered pool of exactly one signature skips the loop entirely:
// the lone refit is the result.
func refineSample(sample string, counts, pool *mat.Dense, names []string, maxDelta float64, rf Refitter) (sampleResult, error) {
	_, k := pool.Dims()
	subset := make([]int, k)
	for i := range subset {
		subset[i] = i
	}

	res := sampleResult{trace: Trace{Sample: sample}}
	warn := func(active []int) {
		res.warnings = append(res.warnings, Warning{
			Sample:     sample,
			Signatures: selectNames(names, active),
			Reason:     "undefined cosine similarity (zero-norm column), substituted 0",
		})
	}

	f, err := refitSubset(counts, pool, subset, rf)
	if err != nil {
		return sampleResult{}, err
	}
	sim, undefined := meanCosine(counts, f.reconstructed)
	if len(undefined) > 0 {
		warn(subset)
	}
	res.trace.Steps = append(res.trace.Steps, TraceStep{Removed: NoneRemoved, Similarity: sim})

	st := state{subset: subset, sim: sim, fit: f}
	for len(st.subset) > 1 {
		next, step, accepted, attempted, undef, err := tryRemoveWeakest(counts, pool, names, st, maxDelta, rf)
		if err != nil {
			return sampleResult{}, err
		}
		if undef {
			warn(attempted)
		}
		res.trace.Steps = append(res.trace.Steps, step)
		if !accepted {
			break // keep st, the state from before the rejected step
		}
		st = next
	}

	// The last recorded delta flags the final bar for the renderer.
	if d := res.trace.Deltas(); len(d) > 0 && d[len(d)-1] > maxDelta {
		res.trace.ExceededFinal = true
	}

	// Final refit on the retained subset.
	final, err := refitSubset(counts, pool, st.subset, rf)
	if err != nil {
		return sampleResult{}, err
	}
	res.subset = st.subset
	res.contribution = make([]float64, len(st.subset))
	for i := range st.subset {
		res.contribution[i] = final.contribution.At(i, 0)
	}
	types, _ := counts.Dims()
	res.reconstructed = make([]float64, types)
	mat.Col(res.reconstructed, 0, final.reconstructed)

	return res, nil
}

// tryRemoveWeakest is the refiner's pure transition function.
//
// It ranks the active subset by contribution proportion (the k×1
// contribution normalized to sum 1; ties broken by first occurrence
// in the current column order), tentatively refits without the lowest
// ranked signature, and compares the similarity drop against
// maxDelta. The input state is never mutated.
//
// Returns the next state (the reduced one when accepted, the input
// state when rejected), the TraceStep of the attempt, the acceptance
// verdict, the subset the attempt was fitted on, and whether the
// attempted fit's similarity was undefined.
func tryRemoveWeakest(counts, pool *mat.Dense, names []string, st state, maxDelta float64, rf Refitter) (next state, step TraceStep, accepted bool, attempted []int, undef bool, err error) {
	weights := make([]float64, len(st.subset))
	for i := range st.subset {
		weights[i] = st.fit.contribution.At(i, 0)
	}
	// Proportions and raw weights rank identically for a single
	// sample; normalize anyway so the score is the documented one.
	if total := floats.Sum(weights); total > 0 {
		floats.Scale(1/total, weights)
	}
	weakest := 0
	for i, w := range weights {
		if w < weights[weakest] {
			weakest = i
		}
	}

	reduced := make([]int, 0, len(st.subset)-1)
	reduced = append(reduced, st.subset[:weakest]...)
	reduced = append(reduced, st.subset[weakest+1:]...)

	f, err := refitSubset(counts, pool, reduced, rf)
	if err != nil {
		return state{}, TraceStep{}, false, nil, false, err
	}
	sim, undefined := meanCosine(counts, f.reconstructed)
	step = TraceStep{Removed: names[st.subset[weakest]], Similarity: sim}

	if delta := st.sim - sim; delta > maxDelta {
		return st, step, false, reduced, len(undefined) > 0, nil
	}

	return state{subset: reduced, sim: sim, fit: f}, step, true, reduced, len(undefined) > 0, nil
}

// refitSubset refits one sample column against the chosen pool
// columns. The pool is narrowed copy-on-select; it is never mutated.
func refitSubset(counts, pool *mat.Dense, subset []int, rf Refitter) (fitPair, error) {
	contribution, reconstructed, err := rf.Refit(counts, selectColumns(pool, subset))
	if err != nil {
		return fitPair{}, err
	}

	return fitPair{contribution: contribution, reconstructed: reconstructed}, nil
}
