package nnls_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sigfit/nnls"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleSolve
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Fit b = [3, 4] against an orthogonal basis. The unconstrained
//	optimum is already non-negative, so NNLS reproduces it exactly.
//
// Use case:
//
//	Sanity baseline before fitting real signature catalogues.
func ExampleSolve() {
	a := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	b := mat.NewVecDense(2, []float64{3, 4})

	x, err := nnls.Solve(a, b, nnls.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("x = [%.0f %.0f]\n", x.AtVec(0), x.AtVec(1))
	// Output:
	// x = [3 4]
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleRefit
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	One sample with counts [10, 5] against two orthogonal signatures.
//	Each signature receives exactly the matching count as its weight
//	and the reconstruction is lossless.
//
// Use case:
//
//	The cohort-wide refit every strict-refitting run starts from.
func ExampleRefit() {
	signatures := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	counts := mat.NewDense(2, 1, []float64{10, 5})

	contribution, reconstructed, err := nnls.Refit(counts, signatures)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("contribution = [%.0f %.0f]\n", contribution.At(0, 0), contribution.At(1, 0))
	fmt.Printf("reconstructed = [%.0f %.0f]\n", reconstructed.At(0, 0), reconstructed.At(1, 0))
	// Output:
	// contribution = [10 5]
	// reconstructed = [10 5]
}
