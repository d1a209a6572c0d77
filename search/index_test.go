package search

import (
	"testing"

	"github.com/poiesic/policymatch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateIndexes(candidates []Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.Index
	}
	return out
}

func TestNewIndex_Validation(t *testing.T) {
	_, err := NewIndex([][]float32{{1, 0}, {1, 0, 0}})
	assert.ErrorIs(t, err, ai.ErrDimensionMismatch)

	_, err = NewIndex([][]float32{{1, 0}, {}})
	assert.ErrorIs(t, err, ai.ErrEmptyEmbedding)

	ix, err := NewIndex(nil)
	require.NoError(t, err)
	assert.Zero(t, ix.Len())
	assert.Zero(t, ix.Dimensions())
}

func TestIndex_SelfSimilarity(t *testing.T) {
	rows := [][]float32{{3, 4, 0}, {0, 2, 9}, {-1, 5, 2}}
	ix, err := NewIndex(rows)
	require.NoError(t, err)

	for i, row := range rows {
		assert.InDelta(t, 1.0, ix.Similarity(row, i), 1e-6, "row %d", i)
	}
	assert.InDelta(t, ix.Similarity(rows[0], 1), ix.Similarity(rows[1], 0), 1e-9)
}

func TestIndex_TopCandidates(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}, {0, 1}, {1, 1}, {-1, 0}})
	require.NoError(t, err)

	candidates := ix.TopCandidates([]float32{1, 0}, 1)
	assert.Equal(t, []int{0, 2}, candidateIndexes(candidates), "orthogonal and opposite rows fall under the floor")
	assert.InDelta(t, 1.0, candidates[0].Score, 1e-6)
	assert.InDelta(t, 0.7071, candidates[1].Score, 1e-4)
}

func TestIndex_SimilarityFloor(t *testing.T) {
	ix, err := NewIndex([][]float32{{0.05, 1}, {0.2, 1}})
	require.NoError(t, err)

	candidates := ix.TopCandidates([]float32{1, 0}, 5)
	require.Len(t, candidates, 1)
	assert.Equal(t, 1, candidates[0].Index)
	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.Score, MinSimilarity)
	}
}

func TestIndex_OversamplesAndKeepsCorpusOrderOnTies(t *testing.T) {
	rows := make([][]float32, 10)
	for i := range rows {
		rows[i] = []float32{1, 0}
	}
	ix, err := NewIndex(rows)
	require.NoError(t, err)

	candidates := ix.TopCandidates([]float32{1, 0}, 2)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, candidateIndexes(candidates))
}

func TestIndex_Filter(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}, {1, 0}, {1, 0}})
	require.NoError(t, err)

	candidates := ix.topCandidates([]float32{1, 0}, 1, func(i int) bool { return i != 0 })
	assert.Equal(t, []int{1, 2}, candidateIndexes(candidates))
}

func TestIndex_BadQuery(t *testing.T) {
	ix, err := NewIndex([][]float32{{1, 0}})
	require.NoError(t, err)

	assert.Empty(t, ix.TopCandidates([]float32{1, 0, 0}, 3))
	assert.Empty(t, ix.TopCandidates([]float32{1, 0}, 0))
}
