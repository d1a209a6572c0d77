package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/ai/mock"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func newTestEncoder(t *testing.T, embedder *mock.MockEmbedder) *ai.Encoder {
	t.Helper()
	cfg := ai.NewConfig(
		ai.WithPrimaryModel("test-model"),
		ai.WithBatchSize(4),
		ai.WithWorkers(2),
		ai.WithRetries(1, time.Millisecond),
	)
	encoder, err := ai.NewEncoderWithEmbedder("test-model", embedder, cfg)
	require.NoError(t, err)
	t.Cleanup(encoder.Release)
	return encoder
}

func testPolicies(n int) []*core.PolicyRecord {
	records := make([]*core.PolicyRecord, n)
	for i := range records {
		records[i] = &core.PolicyRecord{
			ServiceName:       fmt.Sprintf("청년 지원사업 %d", i),
			TargetDescription: "만 19~34세 청년",
			SupportContent:    fmt.Sprintf("monthly support %d", i),
			Category:          core.CategoryCentral,
		}
	}
	return records
}

func TestBatchProcessor_Process(t *testing.T) {
	repos := setupTestDB(t)
	embedder := mock.NewMockEmbedder()
	encoder := newTestEncoder(t, embedder)
	ctx := context.Background()

	records := testPolicies(3)
	bp := NewBatchProcessor(repos.Embeddings, encoder, false)

	result, err := bp.Process(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Encoded: 3}, result)

	count, err := repos.Embeddings.CountEmbeddings(ctx, "test-model")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Cached vectors are the normalized encoder output for the search text
	texts := []string{corpus.SearchText(records[0])}
	cached, err := repos.Embeddings.GetEmbeddings(ctx, "test-model", texts)
	require.NoError(t, err)
	want := ai.NormalizeVector(mock.BagOfWords(texts[0], mock.DefaultDimensions))
	assert.InDeltaSlice(t, want, cached[0], 1e-6)
}

func TestBatchProcessor_SkipsCachedPolicies(t *testing.T) {
	repos := setupTestDB(t)
	embedder := mock.NewMockEmbedder()
	encoder := newTestEncoder(t, embedder)
	ctx := context.Background()

	records := testPolicies(5)
	bp := NewBatchProcessor(repos.Embeddings, encoder, false)

	_, err := bp.Process(ctx, records[:2])
	require.NoError(t, err)
	calls := embedder.CallCount()

	result, err := bp.Process(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Encoded: 3, Cached: 2}, result)
	assert.Equal(t, calls+1, embedder.CallCount(), "only the misses should be encoded")

	calls = embedder.CallCount()
	result, err = bp.Process(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Cached: 5}, result)
	assert.Equal(t, calls, embedder.CallCount(), "fully cached batch should not call the embedder")
}

func TestBatchProcessor_ForceEncodesEverything(t *testing.T) {
	repos := setupTestDB(t)
	encoder := newTestEncoder(t, mock.NewMockEmbedder())
	ctx := context.Background()

	records := testPolicies(3)
	_, err := NewBatchProcessor(repos.Embeddings, encoder, false).Process(ctx, records)
	require.NoError(t, err)

	result, err := NewBatchProcessor(repos.Embeddings, encoder, true).Process(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Encoded: 3}, result)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repos := setupTestDB(t)
	embedder := mock.NewMockEmbedder()
	encoder := newTestEncoder(t, embedder)

	result, err := NewBatchProcessor(repos.Embeddings, encoder, false).Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
	assert.Equal(t, 0, embedder.CallCount())
}

func TestBatchProcessor_EncoderFailure(t *testing.T) {
	repos := setupTestDB(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding server unavailable")
	}
	encoder := newTestEncoder(t, embedder)
	ctx := context.Background()

	_, err := NewBatchProcessor(repos.Embeddings, encoder, false).Process(ctx, testPolicies(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding server unavailable")

	count, err := repos.Embeddings.CountEmbeddings(ctx, "test-model")
	require.NoError(t, err)
	assert.Zero(t, count, "nothing should be cached after a failed batch")
}
