package strictfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var identityPool = mat.NewDense(2, 2, []float64{
	1, 0,
	0, 1,
})

// TestRefineSample_GenerousTolerance walks the accepted-removal path:
// with MaxDelta=1.0 the weakest signature is removed and the sample
// ends on a single-signature subset.
func TestRefineSample_GenerousTolerance(t *testing.T) {
	counts := mat.NewDense(2, 1, []float64{10, 5})

	res, err := refineSample("s1", counts, identityPool, []string{"S1", "S2"}, 1.0, DefaultOptions().Refitter)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.subset, "S2 (lowest proportion) removed")
	assert.InDelta(t, 10, res.contribution[0], 1e-10)
	assert.InDelta(t, 10, res.reconstructed[0], 1e-10)
	assert.InDelta(t, 0, res.reconstructed[1], 1e-10)

	require.Len(t, res.trace.Steps, 2)
	assert.Equal(t, NoneRemoved, res.trace.Steps[0].Removed)
	assert.InDelta(t, 1, res.trace.Steps[0].Similarity, 1e-12)
	assert.Equal(t, "S2", res.trace.Steps[1].Removed)
	assert.InDelta(t, 10/math.Sqrt(125), res.trace.Steps[1].Similarity, 1e-10)
	assert.False(t, res.trace.ExceededFinal, "delta ≈ 0.106 within MaxDelta=1.0")
}

// TestRefineSample_Rollback walks the rejected-removal path: with
// MaxDelta=0.004 the same step is rejected and the kept state is the
// one from before the rejected step — not the narrower one.
func TestRefineSample_Rollback(t *testing.T) {
	counts := mat.NewDense(2, 1, []float64{10, 5})

	res, err := refineSample("s1", counts, identityPool, []string{"S1", "S2"}, 0.004, DefaultOptions().Refitter)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, res.subset, "rejected removal must not be applied")
	assert.InDelta(t, 10, res.contribution[0], 1e-10)
	assert.InDelta(t, 5, res.contribution[1], 1e-10)
	assert.InDelta(t, 10, res.reconstructed[0], 1e-10)
	assert.InDelta(t, 5, res.reconstructed[1], 1e-10)

	require.Len(t, res.trace.Steps, 2, "the rejected attempt is still recorded")
	assert.Equal(t, "S2", res.trace.Steps[1].Removed)
	assert.True(t, res.trace.ExceededFinal, "final recorded delta exceeded MaxDelta")
}

// TestRefineSample_SingleSignature covers the degenerate pool: no
// removal loop runs, the lone refit is the result, and the trace
// holds only the initial sentinel entry.
func TestRefineSample_SingleSignature(t *testing.T) {
	pool := mat.NewDense(2, 1, []float64{0.8, 0.2})
	counts := mat.NewDense(2, 1, []float64{8, 2})

	res, err := refineSample("s1", counts, pool, []string{"S1"}, 0.004, DefaultOptions().Refitter)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.subset)
	assert.InDelta(t, 10, res.contribution[0], 1e-10)
	require.Len(t, res.trace.Steps, 1)
	assert.Equal(t, NoneRemoved, res.trace.Steps[0].Removed)
	assert.False(t, res.trace.ExceededFinal)
}

// TestRefineSample_ZeroCounts covers the NaN policy end to end: an
// all-zero sample keeps iterating on similarity 0 and surfaces
// warnings instead of NaN.
func TestRefineSample_ZeroCounts(t *testing.T) {
	counts := mat.NewDense(2, 1, []float64{0, 0})

	res, err := refineSample("s1", counts, identityPool, []string{"S1", "S2"}, 0.004, DefaultOptions().Refitter)
	require.NoError(t, err)

	for _, step := range res.trace.Steps {
		assert.False(t, math.IsNaN(step.Similarity))
		assert.Equal(t, 0.0, step.Similarity, "undefined similarity substituted with 0")
	}
	assert.NotEmpty(t, res.warnings, "every undefined fit must be reported")
	assert.Equal(t, "s1", res.warnings[0].Sample)
}

// TestTryRemoveWeakest_TieBreak verifies ties on the contribution
// proportion resolve to the first signature in current column order.
func TestTryRemoveWeakest_TieBreak(t *testing.T) {
	counts := mat.NewDense(2, 1, []float64{7, 7})
	rf := DefaultOptions().Refitter

	f, err := refitSubset(counts, identityPool, []int{0, 1}, rf)
	require.NoError(t, err)
	sim, _ := meanCosine(counts, f.reconstructed)
	st := state{subset: []int{0, 1}, sim: sim, fit: f}

	_, step, accepted, _, _, err := tryRemoveWeakest(counts, identityPool, []string{"S1", "S2"}, st, 1.0, rf)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, "S1", step.Removed, "equal proportions: first occurrence wins")
}

// TestTryRemoveWeakest_PureOnReject verifies the transition never
// mutates its input and a rejection returns the input state as next.
func TestTryRemoveWeakest_PureOnReject(t *testing.T) {
	counts := mat.NewDense(2, 1, []float64{10, 5})
	rf := DefaultOptions().Refitter

	f, err := refitSubset(counts, identityPool, []int{0, 1}, rf)
	require.NoError(t, err)
	sim, _ := meanCosine(counts, f.reconstructed)
	st := state{subset: []int{0, 1}, sim: sim, fit: f}

	next, step, accepted, _, _, err := tryRemoveWeakest(counts, identityPool, []string{"S1", "S2"}, st, 0.004, rf)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, st.subset, next.subset, "rejection keeps the pre-step subset")
	assert.Equal(t, st.sim, next.sim, "rejection keeps the pre-step similarity")
	assert.Equal(t, []int{0, 1}, st.subset, "input state untouched")
	assert.InDelta(t, 10/math.Sqrt(125), step.Similarity, 1e-10, "rejected similarity still recorded")
}
