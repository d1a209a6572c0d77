package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/poiesic/policymatch/ai"
)

const (
	// CandidateOversample is how many candidates TopCandidates gathers per
	// requested result, leaving room for eligibility demotion.
	CandidateOversample = 3

	// MinSimilarity is the hard floor below which candidates are discarded.
	MinSimilarity = 0.1
)

// Candidate is one row of the index scored against a query.
type Candidate struct {
	Index int
	Score float64
}

// Index is a read-only matrix of unit-length corpus vectors, aligned
// row-for-row with the corpus it was built from.
type Index struct {
	rows [][]float32
	dim  int
}

// NewIndex normalizes and stores rows. All rows must share one length.
func NewIndex(rows [][]float32) (*Index, error) {
	ix := &Index{rows: make([][]float32, len(rows))}
	for i, row := range rows {
		if len(row) == 0 {
			return nil, ai.ErrEmptyEmbedding
		}
		if i == 0 {
			ix.dim = len(row)
		} else if len(row) != ix.dim {
			return nil, ai.ErrDimensionMismatch
		}
		ix.rows[i] = ai.NormalizeVector(row)
	}
	return ix, nil
}

// Len returns the number of rows.
func (ix *Index) Len() int {
	return len(ix.rows)
}

// Dimensions returns the row length, or 0 for an empty index.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// Similarity returns the cosine similarity between query and row i.
func (ix *Index) Similarity(query []float32, i int) float64 {
	return ai.CosineSimilarity(query, ix.rows[i])
}

// TopCandidates returns up to CandidateOversample*k rows by descending cosine
// similarity, dropping any below MinSimilarity. Equal scores keep corpus order.
func (ix *Index) TopCandidates(query []float32, k int) []Candidate {
	return ix.topCandidates(query, k, nil)
}

func (ix *Index) topCandidates(query []float32, k int, keep func(i int) bool) []Candidate {
	if k <= 0 || len(query) != ix.dim {
		return nil
	}
	q := ai.NormalizeVector(query)

	scored := make([]Candidate, 0, len(ix.rows))
	for i, row := range ix.rows {
		if keep != nil && !keep(i) {
			continue
		}
		score := math.Max(-1, math.Min(1, ai.Dot(q, row)))
		scored = append(scored, Candidate{Index: i, Score: score})
	}
	slices.SortStableFunc(scored, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	pool := min(CandidateOversample*k, len(scored))
	out := make([]Candidate, 0, pool)
	for _, c := range scored[:pool] {
		if c.Score < MinSimilarity {
			break
		}
		out = append(out, c)
	}
	return out
}
