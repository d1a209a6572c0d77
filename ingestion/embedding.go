package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/reembed"
	"github.com/poiesic/policymatch/storage"
)

// embeddingProcessor fills the embedding cache for freshly stored policies.
type embeddingProcessor struct {
	batch  *reembed.BatchProcessor
	model  string
	logger *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

func newEmbeddingProcessor(cache storage.EmbeddingRepository, encoder *ai.Encoder, logger *slog.Logger) (*embeddingProcessor, error) {
	if cache == nil {
		return nil, ErrEmbeddingCacheRequired
	}
	if encoder == nil {
		return nil, ErrEncoderRequired
	}
	return &embeddingProcessor{
		batch:  reembed.NewBatchProcessor(cache, encoder, false),
		model:  encoder.Model(),
		logger: logger.With("processor", "embeddings", "model", encoder.Model()),
	}, nil
}

func (ep *embeddingProcessor) name() string { return "embeddings" }

func (ep *embeddingProcessor) process(ctx context.Context, records []*core.PolicyRecord) ([]*core.PolicyRecord, error) {
	ep.logger.Info("warming embedding cache", "records", len(records))

	result, err := ep.batch.Process(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWarmupFailed, err)
	}

	ep.logger.Debug("embedding cache warmed", "encoded", result.Encoded, "cached", result.Cached)
	return records, nil
}
