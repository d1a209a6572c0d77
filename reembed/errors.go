package reembed

import "errors"

var (
	// ErrPolicyRepositoryRequired is returned when a policy repository is not provided.
	ErrPolicyRepositoryRequired = errors.New("policy repository required")

	// ErrEmbeddingCacheRequired is returned when an embedding repository is not provided.
	ErrEmbeddingCacheRequired = errors.New("embedding cache required")

	// ErrEncoderRequired is returned when an encoder is not provided.
	ErrEncoderRequired = errors.New("encoder required")
)
