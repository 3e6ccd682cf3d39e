package strictfit

import (
	"gonum.org/v1/gonum/mat"
)

// filterGlobal runs one cohort-wide refit of counts against the full
// catalogue and returns the indices of signatures whose summed
// contribution across all samples is strictly positive, preserving
// the original column order. Signatures that never receive weight
// anywhere cannot matter per sample, so dropping them up front
// shrinks every elimination loop. Running the filter on its own
// output removes nothing further.
//
// Returns ErrEmptySignatureSet when nothing survives: with zero
// retained signatures there is no basis to fit any sample.
func filterGlobal(counts, signatures *mat.Dense, rf Refitter) ([]int, error) {
	contribution, _, err := rf.Refit(counts, signatures)
	if err != nil {
		return nil, err
	}

	sigs, samples := contribution.Dims()
	keep := make([]int, 0, sigs)
	for i := 0; i < sigs; i++ {
		var sum float64
		for j := 0; j < samples; j++ {
			sum += contribution.At(i, j)
		}
		if sum > 0 {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, ErrEmptySignatureSet
	}

	return keep, nil
}

// selectColumns copies the chosen columns of m into a fresh matrix,
// preserving their relative order. The source is never mutated.
func selectColumns(m *mat.Dense, cols []int) *mat.Dense {
	rows, _ := m.Dims()
	out := mat.NewDense(rows, len(cols), nil)
	buf := make([]float64, rows)
	for i, j := range cols {
		mat.Col(buf, j, m)
		out.SetCol(i, buf)
	}

	return out
}

// selectNames picks the chosen entries of names in order.
func selectNames(names []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = names[j]
	}

	return out
}
