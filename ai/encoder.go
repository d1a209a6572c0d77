package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Encoder maps texts onto unit-length vectors with a single loaded model.
// Corpus texts and query texts go through the same Encode path, so their
// vectors always live in the same space. Encoder is safe for concurrent use.
type Encoder struct {
	model     string
	embedder  Embedder
	batchSize int
	retry     RetryPolicy
	pool      *ants.Pool
	logger    *slog.Logger
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder) error

// WithEncoderLogger sets a custom logger.
// Default is slog.Default().
func WithEncoderLogger(logger *slog.Logger) EncoderOption {
	return func(e *Encoder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEncoder loads the configured primary model, falling back to the
// secondary model when the primary cannot be loaded. When neither loads the
// returned error wraps ErrEncoderUnavailable and both load failures.
func NewEncoder(ctx context.Context, loader ModelLoader, cfg *Config, opts ...EncoderOption) (*Encoder, error) {
	if loader == nil {
		return nil, ErrModelLoaderRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	probe := &Encoder{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(probe); err != nil {
			return nil, err
		}
	}
	logger := probe.logger.With("component", "encoder")

	var errs []error
	for i, model := range cfg.Models() {
		embedder, err := loader.LoadEmbedder(ctx, model)
		if err == nil && embedder == nil {
			err = ErrEmbedderRequired
		}
		if err != nil {
			logger.Warn("embedding model unavailable", "model", model, "primary", i == 0, "err", err)
			errs = append(errs, fmt.Errorf("model %s: %w", model, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if i > 0 {
			logger.Warn("using secondary embedding model", "model", model)
		}
		return NewEncoderWithEmbedder(model, embedder, cfg, opts...)
	}

	return nil, fmt.Errorf("%w: %w", ErrEncoderUnavailable, errors.Join(errs...))
}

// NewEncoderWithEmbedder wraps an already loaded embedder.
func NewEncoderWithEmbedder(model string, embedder Embedder, cfg *Config, opts ...EncoderOption) (*Encoder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		model:     model,
		embedder:  embedder,
		batchSize: cfg.BatchSize,
		retry:     RetryPolicy{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryDelay},
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "encoder", "model", model)
	return e, nil
}

// Model returns the name of the loaded model.
func (e *Encoder) Model() string {
	return e.model
}

// BatchSize returns the number of texts per embedding request.
func (e *Encoder) BatchSize() int {
	return e.batchSize
}

// Encode returns one normalized vector per text, in input order.
// Texts are split into fixed-size batches; batches run on the worker pool
// when there is more than one. Every vector of a call has the same length.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	batches := (len(texts) + e.batchSize - 1) / e.batchSize

	if batches == 1 {
		if err := e.encodeBatch(ctx, texts, out); err != nil {
			return nil, err
		}
		return e.checkDimensions(out)
	}

	e.logger.Debug("encoding texts", "texts", len(texts), "batches", batches)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			if err := e.encodeBatch(ctx, texts[start:end], out[start:end]); err != nil {
				fail(fmt.Errorf("batch %d-%d: %w", start, end, err))
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return e.checkDimensions(out)
}

// EncodeQuery encodes a single text through the same path as Encode.
func (e *Encoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Release releases the encoder's worker pool.
func (e *Encoder) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

func (e *Encoder) encodeBatch(ctx context.Context, batch []string, dst [][]float32) error {
	return Retry(ctx, e.retry, func(attempt int) error {
		vectors, err := e.embedder.EmbedTexts(ctx, batch)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingCount, len(batch), len(vectors))
		}
		for i, v := range vectors {
			if len(v) == 0 {
				return ErrEmptyEmbedding
			}
			dst[i] = NormalizeVector(v)
		}
		return nil
	})
}

func (e *Encoder) checkDimensions(vectors [][]float32) ([][]float32, error) {
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return vectors, nil
}
