package ai

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEncoderUnavailable is returned when no embedding model could be loaded.
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrConfigRequired is returned when a nil config is supplied.
	ErrConfigRequired = errors.New("ai config required")

	// ErrModelLoaderRequired is returned when a model loader is not provided.
	ErrModelLoaderRequired = errors.New("model loader required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingCount indicates the model returned a different number of vectors than texts.
	ErrEmbeddingCount = errors.New("embedding count mismatch")

	// ErrDimensionMismatch indicates vectors of different lengths in one encoding.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyEmbedding indicates the model returned a zero-length vector.
	ErrEmptyEmbedding = errors.New("empty embedding")
)
