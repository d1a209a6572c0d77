// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/storage"
)

// Config holds configuration for a warm-up run.
type Config struct {
	// BatchSize is the number of policies handed to the encoder at once
	BatchSize int

	// ReportInterval is how often to report progress (number of policies)
	ReportInterval int

	// Force drops the model's cached vectors and encodes every policy again
	Force bool

	// Logger receives run summaries. Default is slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
	}
}

// Result summarizes a warm-up run.
type Result struct {
	Model    string
	Policies int
	Encoded  int
	Cached   int
	Elapsed  time.Duration
}

// Reembedder fills the embedding cache for every stored policy.
type Reembedder struct {
	policies  PolicySource
	cache     storage.EmbeddingRepository
	encoder   *ai.Encoder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *RecordIterator
	logger    *slog.Logger
}

// NewReembedder creates a new reembedder. The encoder stays owned by the caller.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewReembedder(policies PolicySource, cache storage.EmbeddingRepository, encoder *ai.Encoder, config *Config, progress io.Writer) (*Reembedder, error) {
	if policies == nil {
		return nil, ErrPolicyRepositoryRequired
	}
	if cache == nil {
		return nil, ErrEmbeddingCacheRequired
	}
	if encoder == nil {
		return nil, ErrEncoderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reembedder{
		policies:  policies,
		cache:     cache,
		encoder:   encoder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(cache, encoder, config.Force),
		iterator:  NewRecordIterator(policies, config.BatchSize),
		logger:    logger.With("component", "reembed", "model", encoder.Model()),
	}, nil
}

// Run encodes every stored policy that has no cached vector for the encoder's
// model. With Force set the model's cache is cleared first.
func (r *Reembedder) Run(ctx context.Context) (*Result, error) {
	result := &Result{Model: r.encoder.Model()}

	total, err := r.policies.GetAllPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	result.Policies = len(total)
	if result.Policies == 0 {
		fmt.Fprintf(r.progress, "No policies found in database (0 policies)\n")
		return result, nil
	}

	if r.config.Force {
		if err := r.cache.DeleteEmbeddings(ctx, r.encoder.Model()); err != nil {
			return nil, fmt.Errorf("failed to clear embedding cache: %w", err)
		}
		r.logger.Info("cleared embedding cache")
	}

	fmt.Fprintf(r.progress, "Embedding %d policies with %s (batch size: %d)\n",
		result.Policies, r.encoder.Model(), r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, result.Policies, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(records []*core.PolicyRecord) error {
		batch, err := r.processor.Process(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		result.Encoded += batch.Encoded
		result.Cached += batch.Cached
		tracker.Add(len(records), batch.Encoded)
		return nil
	})
	if err != nil {
		return nil, err
	}

	tracker.Finish()
	result.Elapsed = tracker.Elapsed()

	fmt.Fprintf(r.progress, "Embedding cache warm. %d encoded, %d already cached in %v\n",
		result.Encoded, result.Cached, result.Elapsed.Round(time.Millisecond))
	r.logger.Info("embedding cache warmed",
		"policies", result.Policies,
		"encoded", result.Encoded,
		"cached", result.Cached,
		"elapsed", result.Elapsed)

	return result, nil
}
