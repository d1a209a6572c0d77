package storage

import (
	"context"

	"github.com/poiesic/policymatch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// PolicyRepository stores the policy corpus in insertion order.
type PolicyRepository interface {
	Repository

	// ReplacePolicies atomically swaps the whole stored corpus for records.
	// IDs are assigned from the sequence in the given order.
	ReplacePolicies(ctx context.Context, records ...*core.PolicyRecord) ([]*core.PolicyRecord, error)

	// AddPolicies appends records after the existing corpus.
	// Returns the records with IDs populated.
	AddPolicies(ctx context.Context, records ...*core.PolicyRecord) ([]*core.PolicyRecord, error)

	// GetPolicy retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetPolicy(ctx context.Context, id core.ID) (*core.PolicyRecord, error)

	// GetAllPolicies returns every stored record in insertion order.
	GetAllPolicies(ctx context.Context) ([]*core.PolicyRecord, error)

	// DeletePolicies removes records by ID.
	// Returns ErrNotFound if any record doesn't exist.
	DeletePolicies(ctx context.Context, ids ...core.ID) error

	// CountPolicies returns the number of stored records.
	CountPolicies(ctx context.Context) (int, error)

	// LoadCorpus is GetAllPolicies under the name the searcher expects.
	LoadCorpus(ctx context.Context) ([]*core.PolicyRecord, error)
}

// ProfileRepository stores user profiles keyed by user ID.
type ProfileRepository interface {
	Repository

	// SaveProfile inserts or replaces a profile and stamps UpdatedAt.
	SaveProfile(ctx context.Context, profile *core.UserProfile) error

	// GetProfile retrieves a profile.
	// Returns ErrNotFound if the user has no profile.
	GetProfile(ctx context.Context, userID string) (*core.UserProfile, error)

	// DeleteProfile removes a profile.
	// Returns ErrNotFound if the user has no profile.
	DeleteProfile(ctx context.Context, userID string) error

	// ListProfiles returns every stored profile ordered by user ID.
	ListProfiles(ctx context.Context) ([]*core.UserProfile, error)
}

// EmbeddingRepository caches normalized vectors per (model, text).
type EmbeddingRepository interface {
	Repository

	// GetEmbeddings returns one entry per text; misses are nil.
	GetEmbeddings(ctx context.Context, model string, texts []string) ([][]float32, error)

	// PutEmbeddings stores vectors[i] for texts[i].
	PutEmbeddings(ctx context.Context, model string, texts []string, vectors [][]float32) error

	// CountEmbeddings returns the number of cached vectors for model.
	CountEmbeddings(ctx context.Context, model string) (int, error)

	// DeleteEmbeddings drops every cached vector for model.
	DeleteEmbeddings(ctx context.Context, model string) error
}

// BuildInfoRepository records the most recent search snapshot build.
type BuildInfoRepository interface {
	// SaveBuildInfo persists info, replacing any previous record.
	SaveBuildInfo(ctx context.Context, info *core.BuildInfo) error

	// LoadBuildInfo returns the last saved record.
	// Returns nil, nil if nothing has been built yet.
	LoadBuildInfo(ctx context.Context) (*core.BuildInfo, error)
}
