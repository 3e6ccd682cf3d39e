package strictfit

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Fit — strict non-negative signature refitting
//
// Description:
//
//	Fit reconstructs every counts column as a non-negative combination
//	of a minimal signature subset. Per sample it greedily removes the
//	weakest-contributing signature while the drop in mean cosine
//	similarity stays within opts.MaxDelta, rolling back the first
//	excessive step. This is a deliberate greedy heuristic: one removal
//	order, one-step rollback, no global subset search.
//
// Algorithm Outline:
//  1. Validate shapes and options (fatal, before any work).
//  2. Refit the whole cohort once; drop signatures whose summed
//     contribution across all samples is zero (global filter).
//  3. Per sample, independently: backward elimination with rollback
//     (see refineSample). Samples fan out across opts.Workers; each
//     writes only its own slot, so any worker count yields identical
//     results.
//  4. Aggregate per-sample values onto the original signature and
//     sample ordering, zero-filled for dropped signatures.
//
// Returns either a complete Result (contribution, reconstruction, one
// decay Trace per sample, recovered Warnings) or an error — never
// partial output.
//
// Errors: ErrNilInput, ErrDimensionMismatch, ErrBadDelta,
// ErrEmptySignatureSet; solver failures propagate unwrapped.
func Fit(counts *Counts, signatures *Signatures, opts Options) (*Result, error) {
	if counts == nil || signatures == nil || counts.Data == nil || signatures.Data == nil {
		return nil, ErrNilInput
	}
	typesC, samples := counts.Data.Dims()
	typesS, _ := signatures.Data.Dims()
	if typesC != typesS {
		return nil, ErrDimensionMismatch
	}
	if math.IsNaN(opts.MaxDelta) || math.IsInf(opts.MaxDelta, 0) || opts.MaxDelta < 0 {
		return nil, ErrBadDelta
	}
	rf := opts.Refitter
	if rf == nil {
		rf = DefaultOptions().Refitter
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Inputs built as bare literals may lack labels; traces and
	// warnings are keyed by name, so generate the defaults here.
	_, allSigs := signatures.Data.Dims()
	sampleNames := counts.Samples
	if len(sampleNames) != samples {
		sampleNames = autoNames("sample", samples)
	}
	sigNames := signatures.Names
	if len(sigNames) != allSigs {
		sigNames = autoNames("sig", allSigs)
	}

	keep, err := filterGlobal(counts.Data, signatures.Data, rf)
	if err != nil {
		return nil, err
	}
	pool := selectColumns(signatures.Data, keep)
	poolNames := selectNames(sigNames, keep)

	results := make([]sampleResult, samples)
	var g errgroup.Group
	g.SetLimit(workers)
	for j := 0; j < samples; j++ {
		j := j
		g.Go(func() error {
			col := selectColumns(counts.Data, []int{j})
			sr, err := refineSample(sampleNames[j], col, pool, poolNames, opts.MaxDelta, rf)
			if err != nil {
				return err
			}
			results[j] = sr

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(results, keep, typesC, sigNames, sampleNames, opts.MaxDelta), nil
}
