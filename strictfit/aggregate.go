package strictfit

import (
	"gonum.org/v1/gonum/mat"
)

// aggregate joins the per-sample values into the cohort Result in one
// deterministic reduction. Per-sample contributions are reindexed
// onto the full original signature ordering (poolToOrig maps filtered
// pool indices back to catalogue rows), zero-filled for signatures a
// sample dropped or the global filter excluded. Reconstructions keep
// the original sample column order.
//
// Invariant: Contribution is len(sigNames) × len(results) with no
// reordering relative to the inputs.
func aggregate(results []sampleResult, poolToOrig []int, types int, sigNames, sampleNames []string, maxDelta float64) *Result {
	res := &Result{
		Contribution:   mat.NewDense(len(sigNames), len(results), nil),
		Reconstructed:  mat.NewDense(types, len(results), nil),
		SignatureNames: sigNames,
		SampleNames:    sampleNames,
		Traces:         make([]Trace, len(results)),
		MaxDelta:       maxDelta,
	}

	for j, sr := range results {
		for i, poolIdx := range sr.subset {
			res.Contribution.Set(poolToOrig[poolIdx], j, sr.contribution[i])
		}
		res.Reconstructed.SetCol(j, sr.reconstructed)
		res.Traces[j] = sr.trace
		res.Warnings = append(res.Warnings, sr.warnings...)
	}

	return res
}
