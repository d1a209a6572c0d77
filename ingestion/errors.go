package ingestion

import "errors"

var (
	// ErrPolicyRepositoryRequired is returned when a policy repository is not provided.
	ErrPolicyRepositoryRequired = errors.New("policy repository required")

	// ErrSourcesRequired is returned when no corpus source is configured.
	ErrSourcesRequired = errors.New("at least one corpus source required")

	// ErrEmbeddingCacheRequired is returned when cache warm-up is enabled without a cache.
	ErrEmbeddingCacheRequired = errors.New("embedding cache required")

	// ErrEncoderRequired is returned when cache warm-up is enabled without an encoder.
	ErrEncoderRequired = errors.New("encoder required")

	// ErrAllSourcesFailed is returned when no source could be read.
	// The stored corpus is left untouched.
	ErrAllSourcesFailed = errors.New("every corpus source failed")

	// ErrNothingToImport is returned when no valid record survived the import stages.
	// The stored corpus is left untouched.
	ErrNothingToImport = errors.New("no valid policies to import")

	// ErrWarmupFailed wraps errors from the background embedding warm-up.
	ErrWarmupFailed = errors.New("embedding warm-up failed")
)
