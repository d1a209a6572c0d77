package reembed

import (
	"context"
	"fmt"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/storage"
)

// BatchResult counts what happened to one batch.
type BatchResult struct {
	Encoded int
	Cached  int
}

// BatchProcessor encodes batches of policies into the embedding cache.
type BatchProcessor struct {
	cache   storage.EmbeddingRepository
	encoder *ai.Encoder
	force   bool
}

// NewBatchProcessor creates a new batch processor.
// force: encode every policy even when its vector is already cached
func NewBatchProcessor(cache storage.EmbeddingRepository, encoder *ai.Encoder, force bool) *BatchProcessor {
	return &BatchProcessor{
		cache:   cache,
		encoder: encoder,
		force:   force,
	}
}

// Process encodes the search text of each record that has no cached vector for
// the encoder's model and stores the result. Retries are handled by the encoder.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.PolicyRecord) (BatchResult, error) {
	var result BatchResult
	if len(records) == 0 {
		return result, nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = corpus.SearchText(record)
	}

	missing := texts
	if !bp.force {
		cached, err := bp.cache.GetEmbeddings(ctx, bp.encoder.Model(), texts)
		if err != nil {
			return result, fmt.Errorf("failed to read embedding cache: %w", err)
		}
		missing = nil
		for i, v := range cached {
			if len(v) == 0 {
				missing = append(missing, texts[i])
			}
		}
		result.Cached = len(texts) - len(missing)
	}

	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := bp.encoder.Encode(ctx, missing)
	if err != nil {
		return result, fmt.Errorf("failed to encode %d policies: %w", len(missing), err)
	}

	if err := bp.cache.PutEmbeddings(ctx, bp.encoder.Model(), missing, vectors); err != nil {
		return result, fmt.Errorf("failed to store embeddings: %w", err)
	}
	result.Encoded = len(missing)

	return result, nil
}
