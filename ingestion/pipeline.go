package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/storage"
)

// Stats summarizes one import.
type Stats struct {
	Sources    []string         // sources read successfully, in configuration order
	Failed     map[string]error // failed sources and their errors
	Loaded     int              // records read from all sources
	Invalid    int              // records dropped by validation
	Duplicates int              // records dropped as duplicates
	Stored     int              // records written to storage
	Elapsed    time.Duration
}

// Pipeline orchestrates the import of policy records into storage.
// Sources are read concurrently; cache warm-up runs on a worker pool after
// the corpus is stored.
type Pipeline struct {
	sources       []corpus.Source
	policies      storage.PolicyRepository
	loader        *corpus.Loader
	warmupPool    *ants.Pool
	poolSize      int
	stages        []processor
	embeddingProc processor
	warmCache     storage.EmbeddingRepository
	warmEncoder   *ai.Encoder
	appendMode    bool
	dedupe        bool
	logger        *slog.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	warmErrs []error
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets how many sources are read, and warm-ups run, concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.warmupPool != nil {
			p.warmupPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.warmupPool = pool
		p.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithAppend adds imported records after the stored corpus instead of
// replacing it.
func WithAppend() Option {
	return func(p *Pipeline) error {
		p.appendMode = true
		return nil
	}
}

// WithDeduplication enables or disables dropping duplicate records.
// Default is enabled.
func WithDeduplication(enabled bool) Option {
	return func(p *Pipeline) error {
		p.dedupe = enabled
		return nil
	}
}

// WithEmbeddingWarmup encodes newly stored policies into cache after each
// import. The encoder stays owned by the caller and must outlive the pipeline.
func WithEmbeddingWarmup(cache storage.EmbeddingRepository, encoder *ai.Encoder) Option {
	return func(p *Pipeline) error {
		if cache == nil {
			return ErrEmbeddingCacheRequired
		}
		if encoder == nil {
			return ErrEncoderRequired
		}
		p.warmCache = cache
		p.warmEncoder = encoder
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(
	policies storage.PolicyRepository,
	sources []corpus.Source,
	opts ...Option,
) (*Pipeline, error) {
	if policies == nil {
		return nil, ErrPolicyRepositoryRequired
	}
	if len(sources) == 0 {
		return nil, ErrSourcesRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	warmupPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		sources:    sources,
		policies:   policies,
		warmupPool: warmupPool,
		poolSize:   poolSize,
		dedupe:     true,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	// Create the loader and stages after options are applied
	loader, err := corpus.NewLoader(sources,
		corpus.WithConcurrency(p.poolSize),
		corpus.WithLoaderLogger(p.logger))
	if err != nil {
		p.Release()
		return nil, err
	}
	p.loader = loader

	p.stages = []processor{newValidationProcessor(p.logger)}
	if p.dedupe {
		p.stages = append(p.stages, newDedupeProcessor(p.logger))
	}

	if p.warmEncoder != nil {
		embeddingProc, err := newEmbeddingProcessor(p.warmCache, p.warmEncoder, p.logger)
		if err != nil {
			p.Release()
			return nil, err
		}
		p.embeddingProc = embeddingProc
	}

	return p, nil
}

// Import reads every source, filters the records and stores the survivors.
// The returned Stats are populated even when an error is returned.
func (p *Pipeline) Import(ctx context.Context) (*Stats, error) {
	start := time.Now()

	report, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Sources: report.Loaded,
		Failed:  report.Failed,
		Loaded:  len(report.Records),
	}

	if len(report.Loaded) == 0 {
		errs := make([]error, 0, len(report.Failed))
		for _, err := range report.Failed {
			errs = append(errs, err)
		}
		stats.Elapsed = time.Since(start)
		return stats, fmt.Errorf("%w: %w", ErrAllSourcesFailed, errors.Join(errs...))
	}

	records := report.Records
	for _, stage := range p.stages {
		before := len(records)
		records, err = stage.process(ctx, records)
		if err != nil {
			return stats, fmt.Errorf("%s stage: %w", stage.name(), err)
		}
		switch stage.(type) {
		case *validationProcessor:
			stats.Invalid += before - len(records)
		case *dedupeProcessor:
			stats.Duplicates += before - len(records)
		}
	}

	if len(records) == 0 {
		stats.Elapsed = time.Since(start)
		return stats, ErrNothingToImport
	}

	var stored []*core.PolicyRecord
	if p.appendMode {
		stored, err = p.policies.AddPolicies(ctx, records...)
	} else {
		stored, err = p.policies.ReplacePolicies(ctx, records...)
	}
	if err != nil {
		return stats, err
	}
	stats.Stored = len(stored)
	stats.Elapsed = time.Since(start)

	p.logger.Info("policies imported",
		"sources", len(stats.Sources),
		"failed", len(stats.Failed),
		"loaded", stats.Loaded,
		"invalid", stats.Invalid,
		"duplicates", stats.Duplicates,
		"stored", stats.Stored,
		"append", p.appendMode)

	if p.embeddingProc != nil {
		p.submitWarmup(stored)
	}

	return stats, nil
}

// submitWarmup runs the embedding stage in the background.
func (p *Pipeline) submitWarmup(records []*core.PolicyRecord) {
	p.wg.Add(1)
	err := p.warmupPool.Submit(func() {
		defer p.wg.Done()
		if _, err := p.embeddingProc.process(context.Background(), records); err != nil {
			p.logger.Error("error warming embedding cache", "err", err)
			p.recordWarmupError(err)
		}
	})
	if err != nil {
		p.wg.Done()
		p.logger.Error("error submitting embedding warm-up", "err", err)
		p.recordWarmupError(fmt.Errorf("%w: %w", ErrWarmupFailed, err))
	}
}

func (p *Pipeline) recordWarmupError(err error) {
	p.mu.Lock()
	p.warmErrs = append(p.warmErrs, err)
	p.mu.Unlock()
}

// Wait blocks until every submitted warm-up has finished and returns the
// warm-up errors collected since the previous Wait.
func (p *Pipeline) Wait() error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	err := errors.Join(p.warmErrs...)
	p.warmErrs = nil
	return err
}

// Release waits for pending warm-ups, then releases the worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.loader != nil {
		p.loader.Release()
	}
	if p.warmupPool != nil {
		p.warmupPool.Release()
	}
}
