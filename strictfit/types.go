// Package strictfit defines core types, options, and sentinel errors
// for the strictfit subpackage of github.com/katalvlaran/sigfit.
package strictfit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sigfit/nnls"
)

// Sentinel errors for strictfit operations.
var (
	// ErrNilInput indicates counts or signatures is nil.
	ErrNilInput = errors.New("strictfit: counts and signatures must be non-nil")
	// ErrDimensionMismatch indicates disagreeing shapes or name counts.
	ErrDimensionMismatch = errors.New("strictfit: mutation-type rows of counts and signatures must agree")
	// ErrNegativeInput indicates a negative, NaN or infinite matrix entry.
	ErrNegativeInput = errors.New("strictfit: matrix entries must be finite and non-negative")
	// ErrBadDelta indicates MaxDelta is negative, NaN or infinite.
	ErrBadDelta = errors.New("strictfit: MaxDelta must be finite and non-negative")
	// ErrEmptySignatureSet indicates the global filter retained nothing.
	ErrEmptySignatureSet = errors.New("strictfit: no signature has positive contribution across the cohort")
)

// NoneRemoved is the Removed value of the first TraceStep of every
// Trace: the similarity of the full signature set, before any removal.
const NoneRemoved = "none"

// DefaultMaxDelta is the conventional per-step similarity-loss budget.
const DefaultMaxDelta = 0.004

// Counts holds observed mutation counts: rows are the fixed
// mutation-type alphabet, columns are samples. Read-only once built.
type Counts struct {
	Types   []string // row labels, len = Data rows
	Samples []string // column labels, len = Data cols
	Data    *mat.Dense
}

// Signatures holds the candidate catalogue: rows are the same
// mutation-type alphabet as Counts, columns are signatures.
// Read-only once built.
type Signatures struct {
	Types []string // row labels, len = Data rows
	Names []string // column labels, len = Data cols
	Data  *mat.Dense
}

// Refitter is the collaborator contract for the non-negative refit
// solver: fit every counts column independently against the signature
// columns, returning contribution (signatures × samples) and
// reconstruction (types × samples). Implementations must be pure and
// deterministic; nnls.Solver is the default.
type Refitter interface {
	Refit(counts, signatures mat.Matrix) (contribution, reconstructed *mat.Dense, err error)
}

// Options configures Fit.
//
// Fields:
//   - MaxDelta — maximum tolerated drop in mean cosine similarity per
//     removal step. 0 forbids any loss; large values drive every sample
//     down to a single signature.
//   - Refitter — the NNLS collaborator; nil selects nnls.Solver with
//     its defaults.
//   - Workers — parallel fan-out across samples; ≤ 0 uses GOMAXPROCS.
//     Results are identical for any worker count.
type Options struct {
	MaxDelta float64
	Refitter Refitter
	Workers  int
}

// DefaultOptions returns an Options with default settings:
// MaxDelta=0.004, the nnls-backed Refitter, Workers=1.
func DefaultOptions() Options {
	return Options{
		MaxDelta: DefaultMaxDelta,
		Refitter: nnls.Solver{Opts: nnls.DefaultOptions()},
		Workers:  1,
	}
}

// TraceStep records one elimination attempt: the signature removed
// (NoneRemoved for the initial full-set entry) and the mean cosine
// similarity of the refit after that removal.
type TraceStep struct {
	Removed    string
	Similarity float64
}

// Trace is the ordered similarity-decay record of one sample. The
// first step is always {NoneRemoved, similarity-of-full-set}. A
// rejected final attempt is still recorded, though its removal was not
// applied to the kept subset.
type Trace struct {
	Sample string
	Steps  []TraceStep
	// ExceededFinal marks whether the delta between the final two
	// steps exceeded MaxDelta. Diagnostic only: it never changes the
	// numeric result, it flags the last bar for the renderer.
	ExceededFinal bool
}

// Deltas returns the similarity drop of each step relative to its
// predecessor; the initial step has no predecessor and is skipped.
// Length is len(Steps)−1 (or 0 for a single-step trace).
func (t Trace) Deltas() []float64 {
	if len(t.Steps) < 2 {
		return nil
	}
	d := make([]float64, len(t.Steps)-1)
	for i := 1; i < len(t.Steps); i++ {
		d[i-1] = t.Steps[i-1].Similarity - t.Steps[i].Similarity
	}

	return d
}

// Warning is a recovered diagnostic: a per-column cosine similarity
// was undefined (zero-norm vector) and contributed 0 to the mean.
type Warning struct {
	Sample     string   // sample whose fit produced the undefined column
	Signatures []string // active subset during the offending refit
	Reason     string
}

// Result is the cohort-level outcome of Fit.
//
// Contribution has one row per original signature (original order,
// zero-filled where a signature was dropped for a sample) and one
// column per input sample (original order). Reconstructed mirrors the
// counts layout: one row per mutation type, one column per sample.
type Result struct {
	Contribution   *mat.Dense
	Reconstructed  *mat.Dense
	SignatureNames []string
	SampleNames    []string
	Traces         []Trace
	Warnings       []Warning
	MaxDelta       float64
}

// ContributionFor returns the non-zero named contributions of one
// sample, keyed by signature name. Unknown samples return nil.
func (r *Result) ContributionFor(sample string) map[string]float64 {
	col := -1
	for j, name := range r.SampleNames {
		if name == sample {
			col = j
			break
		}
	}
	if col < 0 {
		return nil
	}
	out := make(map[string]float64)
	for i, name := range r.SignatureNames {
		if v := r.Contribution.At(i, col); v > 0 {
			out[name] = v
		}
	}

	return out
}

// NewCounts builds a validated Counts. Either name slice may be nil,
// in which case labels type1…/sample1… are generated. Entries must be
// finite and non-negative.
func NewCounts(types, samples []string, data *mat.Dense) (*Counts, error) {
	if data == nil {
		return nil, fmt.Errorf("strictfit: NewCounts: %w", ErrNilInput)
	}
	r, c := data.Dims()
	if types == nil {
		types = autoNames("type", r)
	}
	if samples == nil {
		samples = autoNames("sample", c)
	}
	if len(types) != r || len(samples) != c {
		return nil, fmt.Errorf("strictfit: NewCounts: %w", ErrDimensionMismatch)
	}
	if err := validateEntries("NewCounts", data); err != nil {
		return nil, err
	}

	return &Counts{Types: types, Samples: samples, Data: data}, nil
}

// NewSignatures builds a validated Signatures. Either name slice may
// be nil, in which case labels type1…/sig1… are generated. Entries
// must be finite and non-negative; column sums are deliberately not
// checked (only non-negativity matters for fitting).
func NewSignatures(types, names []string, data *mat.Dense) (*Signatures, error) {
	if data == nil {
		return nil, fmt.Errorf("strictfit: NewSignatures: %w", ErrNilInput)
	}
	r, c := data.Dims()
	if types == nil {
		types = autoNames("type", r)
	}
	if names == nil {
		names = autoNames("sig", c)
	}
	if len(types) != r || len(names) != c {
		return nil, fmt.Errorf("strictfit: NewSignatures: %w", ErrDimensionMismatch)
	}
	if err := validateEntries("NewSignatures", data); err != nil {
		return nil, err
	}

	return &Signatures{Types: types, Names: names, Data: data}, nil
}

// autoNames generates prefix1…prefixN labels.
func autoNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}

	return names
}

// validateEntries rejects negative, NaN or infinite matrix entries.
func validateEntries(tag string, data *mat.Dense) error {
	r, c := data.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := data.At(i, j)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("strictfit: %s: entry (%d,%d)=%g: %w", tag, i, j, v, ErrNegativeInput)
			}
		}
	}

	return nil
}
