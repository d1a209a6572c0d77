package reembed

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/ai/mock"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_WarmCacheServesRebuild warms the cache, then checks that a
// search rebuild with the same model never sends corpus texts to the embedder.
func TestIntegration_WarmCacheServesRebuild(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	repos := setupTestDB(t)

	policies := append(testPolicies(20), &core.PolicyRecord{
		ServiceName:       "Youth Rent Subsidy",
		TargetDescription: "ages 19-29 low income youth",
		SupportContent:    "monthly rent support",
	})
	_, err := repos.Policies.ReplacePolicies(ctx, policies...)
	require.NoError(t, err)

	cfg := ai.NewConfig(
		ai.WithPrimaryModel("primary"),
		ai.WithBatchSize(8),
		ai.WithWorkers(2),
		ai.WithRetries(1, time.Millisecond),
	)
	embedder := mock.NewMockEmbedder()
	encoder, err := ai.NewEncoderWithEmbedder("primary", embedder, cfg)
	require.NoError(t, err)
	defer encoder.Release()

	var progress bytes.Buffer
	r, err := NewReembedder(repos.Policies, repos.Embeddings, encoder, &Config{BatchSize: 5, ReportInterval: 5}, &progress)
	require.NoError(t, err)

	result, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, result.Encoded)

	embedder.Reset()
	searcher, err := search.NewSearcher(repos.Policies, mock.NewMockLoaderWithEmbedder(embedder),
		search.WithAIConfig(cfg),
		search.WithEmbeddingCache(repos.Embeddings),
		search.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	defer searcher.Close()

	require.NoError(t, searcher.Rebuild(ctx))
	assert.Equal(t, search.StateEmbeddingsReady, searcher.State())
	assert.Zero(t, embedder.CallCount(), "rebuild should be served entirely from the cache")

	results := searcher.Search(ctx, "youth rent", &core.UserProfile{Age: 25, IncomeLevel: "무소득"}, 3)
	require.NotEmpty(t, results)
	assert.Equal(t, "Youth Rent Subsidy", results[0].Record.ServiceName)
	assert.Equal(t, 1, embedder.CallCount(), "only the query should be encoded")
}
