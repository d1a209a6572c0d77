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

package policymatch

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/ai/openai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/eligibility"
	"github.com/poiesic/policymatch/ingestion"
	"github.com/poiesic/policymatch/reembed"
	"github.com/poiesic/policymatch/search"
	"github.com/poiesic/policymatch/storage"
	"github.com/poiesic/policymatch/storage/badger"
)

// Service wires the policy store, the embedding models and the searcher.
// Call Rebuild after opening, and after every import, to publish a snapshot.
type Service struct {
	repos    *badger.Repositories
	searcher *search.Searcher
	models   ai.ModelLoader
	aiConfig *ai.Config
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions) error

type serviceOptions struct {
	aiConfig  *ai.Config
	models    ai.ModelLoader
	evaluator *eligibility.Evaluator
	logger    *slog.Logger
	inMemory  bool
	noCache   bool
}

// WithAIConfig sets the embedding configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) error {
		if cfg == nil {
			return ai.ErrConfigRequired
		}
		o.aiConfig = cfg
		return nil
	}
}

// WithModelLoader sets how embedding models are loaded.
// Default is an OpenAI-compatible loader for the configured host.
func WithModelLoader(models ai.ModelLoader) ServiceOption {
	return func(o *serviceOptions) error {
		o.models = models
		return nil
	}
}

// WithEvaluator replaces the default eligibility evaluator.
func WithEvaluator(evaluator *eligibility.Evaluator) ServiceOption {
	return func(o *serviceOptions) error {
		o.evaluator = evaluator
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithInMemory keeps all data in memory; the path is ignored.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) error {
		o.inMemory = true
		return nil
	}
}

// WithoutEmbeddingCache makes every rebuild encode the whole corpus.
func WithoutEmbeddingCache() ServiceOption {
	return func(o *serviceOptions) error {
		o.noCache = true
		return nil
	}
}

// NewService opens the store at filePath and prepares a searcher over it.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	models := options.models
	if models == nil {
		var err error
		models, err = openai.NewLoader(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	// Open storage
	repos, err := badger.OpenRepositories(filePath, options.inMemory,
		badger.WithBackendLogger(options.logger))
	if err != nil {
		return nil, err
	}

	searchOpts := []search.Option{
		search.WithAIConfig(options.aiConfig),
		search.WithLogger(options.logger),
		search.WithBuildRecorder(repos.Builds),
	}
	if !options.noCache {
		searchOpts = append(searchOpts, search.WithEmbeddingCache(repos.Embeddings))
	}
	if options.evaluator != nil {
		searchOpts = append(searchOpts, search.WithEvaluator(options.evaluator))
	}

	searcher, err := search.NewSearcher(repos.Policies, models, searchOpts...)
	if err != nil {
		repos.Close()
		return nil, err
	}

	return &Service{
		repos:    repos,
		searcher: searcher,
		models:   models,
		aiConfig: options.aiConfig,
		logger:   options.logger.With("component", "service"),
	}, nil
}

// Close releases the searcher and the store.
func (s *Service) Close() error {
	s.searcher.Close()

	if err := s.repos.Close(); err != nil {
		s.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// Rebuild reloads the stored corpus and publishes a new search snapshot.
func (s *Service) Rebuild(ctx context.Context) error {
	return s.searcher.Rebuild(ctx)
}

// State returns the state of the published search snapshot.
func (s *Service) State() search.State {
	return s.searcher.State()
}

// Info describes the published search snapshot.
func (s *Service) Info() core.BuildInfo {
	return s.searcher.Info()
}

// LastBuild returns the most recently recorded build, possibly from an
// earlier process. Returns nil, nil if nothing has been built yet.
func (s *Service) LastBuild(ctx context.Context) (*core.BuildInfo, error) {
	return s.repos.Builds.LoadBuildInfo(ctx)
}

// Search ranks policies for query and profile. profile may be nil.
func (s *Service) Search(ctx context.Context, query string, profile *core.UserProfile, topK int, opts ...search.SearchOption) []*core.MatchResult {
	return s.searcher.Search(ctx, query, profile, topK, opts...)
}

// SearchForUser searches with the stored profile of userID.
// A user without a stored profile is searched for without one.
func (s *Service) SearchForUser(ctx context.Context, userID, query string, topK int, opts ...search.SearchOption) ([]*core.MatchResult, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.searcher.Search(ctx, query, profile, topK, opts...), nil
}

// Recommend lists policies matching the profile's needs without a query.
func (s *Service) Recommend(profile *core.UserProfile, limit int, opts ...search.SearchOption) []*core.PolicyRecord {
	return s.searcher.Recommend(profile, limit, opts...)
}

// RecommendForUser recommends with the stored profile of userID.
func (s *Service) RecommendForUser(ctx context.Context, userID string, limit int, opts ...search.SearchOption) ([]*core.PolicyRecord, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.searcher.Recommend(profile, limit, opts...), nil
}

// LoadProfile returns the stored profile of userID, or nil when there is none.
func (s *Service) LoadProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	if userID == "" {
		return nil, nil
	}
	profile, err := s.repos.Profiles.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile validates and stores profile.
func (s *Service) SaveProfile(ctx context.Context, profile *core.UserProfile) error {
	if err := core.ValidateUserProfile(profile); err != nil {
		return err
	}
	return s.repos.Profiles.SaveProfile(ctx, profile)
}

// Import runs an import pipeline over sources and rebuilds the searcher when
// anything was stored.
func (s *Service) Import(ctx context.Context, sources []corpus.Source, opts ...ingestion.Option) (*ingestion.Stats, error) {
	pipeline, err := s.NewImportPipeline(sources, opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	stats, err := pipeline.Import(ctx)
	if err != nil {
		return stats, err
	}
	if err := s.Rebuild(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// NewImportPipeline creates an import pipeline writing to this service's store.
func (s *Service) NewImportPipeline(sources []corpus.Source, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(s.logger)}, opts...)
	return ingestion.NewPipeline(s.repos.Policies, sources, opts...)
}

// NewEncoder loads the first loadable configured model.
// The caller must Release the encoder.
func (s *Service) NewEncoder(ctx context.Context) (*ai.Encoder, error) {
	return ai.NewEncoder(ctx, s.models, s.aiConfig, ai.WithEncoderLogger(s.logger))
}

// Reembed warms the embedding cache with the first loadable configured model.
func (s *Service) Reembed(ctx context.Context, config *reembed.Config, progress io.Writer) (*reembed.Result, error) {
	encoder, err := s.NewEncoder(ctx)
	if err != nil {
		return nil, err
	}
	defer encoder.Release()

	if config == nil {
		config = reembed.DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = s.logger
	}

	r, err := reembed.NewReembedder(s.repos.Policies, s.repos.Embeddings, encoder, config, progress)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Policies returns the policy store.
func (s *Service) Policies() storage.PolicyRepository {
	return s.repos.Policies
}

// Profiles returns the profile store.
func (s *Service) Profiles() storage.ProfileRepository {
	return s.repos.Profiles
}

// Embeddings returns the embedding cache.
func (s *Service) Embeddings() storage.EmbeddingRepository {
	return s.repos.Embeddings
}

// Searcher returns the underlying searcher.
func (s *Service) Searcher() *search.Searcher {
	return s.searcher
}
