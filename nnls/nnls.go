package nnls

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve — Lawson–Hanson non-negative least squares
//
// Description:
//
//	Solve minimizes ‖Ax − b‖₂ subject to x ≥ 0 with the active-set
//	method of Lawson & Hanson ('Solving Least Squares Problems',
//	ch. 23, algorithm NNLS). Indices live in one of two sets:
//	the zero set ℤ (coordinate held at 0) and the passive set ℙ
//	(coordinate free to take a positive value).
//
// Algorithm Outline:
//  1. Start with x = 0 and every index in ℤ.
//  2. Compute the dual vector w = Aᵀ(b − Ax). If every wⱼ (j ∈ ℤ) is
//     ≤ tol, the Kuhn–Tucker conditions hold: done.
//  3. Move the index with the most positive wⱼ from ℤ to ℙ.
//  4. Solve the unconstrained least-squares subproblem on the columns
//     in ℙ, giving candidate z.
//  5. If z > 0 on all of ℙ, set x|ℙ = z and go to 2. Otherwise
//     interpolate x ← x + α(z − x) with the largest α keeping x ≥ 0,
//     move every coordinate that hit zero back to ℤ, and repeat 4.
//
// Complexity:
//
//	Time   = O(iters · m·k²) with k = |ℙ| (QR per subproblem solve)
//	Memory = O(m·n)
//
// Errors:
//   - ErrBadDimensions — A empty or len(b) ≠ rows(A).
//   - ErrMaxIterations — iteration cap reached; the partial x computed
//     so far is returned alongside the error.
func Solve(a mat.Matrix, b mat.Vector, opts Options) (*mat.VecDense, error) {
	m, n := a.Dims()
	if m == 0 || n == 0 || b.Len() != m {
		return nil, ErrBadDimensions
	}

	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = 3 * n
	}
	tol := opts.Tol
	if tol <= 0 {
		// Scale-aware guard against round-off chatter in the dual test.
		tol = float64(max(m, n)) * mat.Norm(a, 1) * machEps
	}

	x := mat.NewVecDense(n, nil)
	passive := make([]bool, n)
	np := 0

	resid := mat.NewVecDense(m, nil)
	w := mat.NewVecDense(n, nil)

	for iter := 0; ; {
		// All m rows triangularized: no further column can improve the fit.
		if np >= m {
			return x, nil
		}

		// Dual vector w = Aᵀ(b − Ax); only the ℤ entries matter here,
		// the ℙ entries are zero at a subproblem optimum.
		resid.MulVec(a, x)
		resid.SubVec(b, resid)
		w.MulVec(a.T(), resid)

		// Find t ∈ ℤ with wₜ = max{ wⱼ : j ∈ ℤ }.
		enter, wmax := -1, tol
		for j := 0; j < n; j++ {
			if !passive[j] && w.AtVec(j) > wmax {
				enter, wmax = j, w.AtVec(j)
			}
		}
		// Kuhn–Tucker: no constraint left worth relaxing.
		if enter < 0 {
			return x, nil
		}
		passive[enter] = true
		np++

		// Inner loop: restore feasibility of the subproblem solution.
		for {
			if iter++; iter > maxIter {
				return x, ErrMaxIterations
			}

			idx, z, err := solvePassive(a, b, passive, np)
			if err != nil {
				return nil, err
			}

			// All passive coefficients positive: adopt z and return to
			// the dual test.
			feasible := true
			for i := range idx {
				if z[i] <= 0 {
					feasible = false
					break
				}
			}
			if feasible {
				zero(x)
				for i, j := range idx {
					x.SetVec(j, z[i])
				}
				break
			}

			// α = min{ xⱼ/(xⱼ−zⱼ) : zⱼ ≤ 0, j ∈ ℙ } keeps x + α(z−x) ≥ 0.
			alpha := math.Inf(1)
			for i, j := range idx {
				if z[i] > 0 {
					continue
				}
				if d := x.AtVec(j) - z[i]; d > 0 {
					if t := x.AtVec(j) / d; t < alpha {
						alpha = t
					}
				} else {
					alpha = 0
				}
			}
			if math.IsInf(alpha, 1) {
				alpha = 0
			}

			// Interpolate and demote every coordinate that hit the boundary.
			for i, j := range idx {
				v := x.AtVec(j) + alpha*(z[i]-x.AtVec(j))
				if z[i] <= 0 && v <= tol {
					v = 0
					passive[j] = false
					np--
				}
				x.SetVec(j, v)
			}
			if np == 0 {
				break
			}
		}
	}
}

// machEps is the double-precision unit round-off.
const machEps = 0x1p-52

// solvePassive solves the unconstrained least-squares subproblem on the
// passive columns of a. It returns the passive indices in ascending
// order and the matching subproblem solution.
func solvePassive(a mat.Matrix, b mat.Vector, passive []bool, np int) ([]int, []float64, error) {
	m, n := a.Dims()
	idx := make([]int, 0, np)
	for j := 0; j < n; j++ {
		if passive[j] {
			idx = append(idx, j)
		}
	}

	ap := mat.NewDense(m, len(idx), nil)
	col := make([]float64, m)
	for i, j := range idx {
		mat.Col(col, j, a)
		ap.SetCol(i, col)
	}

	var z mat.VecDense
	if err := z.SolveVec(ap, b); err != nil {
		// Near-singular subproblems still carry a usable solution;
		// anything else is a genuine solver failure.
		if _, ok := err.(mat.Condition); !ok {
			return nil, nil, err
		}
	}

	out := make([]float64, len(idx))
	for i := range idx {
		out[i] = z.AtVec(i)
	}

	return idx, out, nil
}

// zero resets every entry of v in place.
func zero(v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, 0)
	}
}
