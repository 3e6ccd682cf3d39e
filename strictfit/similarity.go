package strictfit

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// meanCosine computes cosine similarity column by column between an
// observed matrix and its reconstruction, then averages across
// columns. An undefined similarity (a zero-norm column on either
// side) contributes 0 to the mean and has its column index reported
// in undefined — recovery is the caller's concern, never a failure
// here, because the elimination loop must keep iterating.
//
// Time: O(r·c). Memory: O(r).
func meanCosine(observed, reconstructed mat.Matrix) (sim float64, undefined []int) {
	rows, cols := observed.Dims()
	a := make([]float64, rows)
	b := make([]float64, rows)

	var total float64
	for j := 0; j < cols; j++ {
		mat.Col(a, j, observed)
		mat.Col(b, j, reconstructed)
		c, ok := cosine(a, b)
		if !ok {
			undefined = append(undefined, j)
			continue // contributes 0
		}
		total += c
	}

	return total / float64(cols), undefined
}

// cosine returns dot(a,b)/(‖a‖·‖b‖) and whether the value is defined.
// A zero norm on either side makes the similarity undefined.
func cosine(a, b []float64) (float64, bool) {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, false
	}

	return floats.Dot(a, b) / (na * nb), true
}
