package nnls

import (
	"gonum.org/v1/gonum/mat"
)

// Refit fits every column of counts independently against the columns
// of signatures, minimizing Euclidean reconstruction error under
// non-negativity.
//
// Returns:
//   - contribution — signatures × samples weight matrix.
//   - reconstructed — types × samples matrix, signatures · contribution.
//
// Single-column counts and single-column signatures are both fine.
// Refit is pure and deterministic: same inputs, same outputs.
//
// Time: O(samples · iters · m·k²). Memory: O(m·n) per sample solve.
func Refit(counts, signatures mat.Matrix) (contribution, reconstructed *mat.Dense, err error) {
	return Solver{Opts: DefaultOptions()}.Refit(counts, signatures)
}

// Refit runs the column-wise fit with the Solver's Options applied to
// every per-column Solve call.
func (s Solver) Refit(counts, signatures mat.Matrix) (contribution, reconstructed *mat.Dense, err error) {
	types, samples := counts.Dims()
	rows, sigs := signatures.Dims()
	if types == 0 || samples == 0 || sigs == 0 || rows != types {
		return nil, nil, ErrBadDimensions
	}

	contribution = mat.NewDense(sigs, samples, nil)
	col := mat.NewVecDense(types, nil)
	for j := 0; j < samples; j++ {
		mat.Col(col.RawVector().Data, j, counts)
		x, err := Solve(signatures, col, s.Opts)
		if err != nil {
			return nil, nil, err
		}
		contribution.SetCol(j, x.RawVector().Data)
	}

	reconstructed = mat.NewDense(types, samples, nil)
	reconstructed.Mul(signatures, contribution)

	return contribution, reconstructed, nil
}
