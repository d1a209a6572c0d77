package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/eligibility"
)

// DefaultTopK is used when Search is called with topK <= 0.
const DefaultTopK = 10

// CorpusLoader supplies the records a snapshot is built from.
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) ([]*core.PolicyRecord, error)
}

// EmbeddingCache stores corpus vectors between builds.
type EmbeddingCache interface {
	GetEmbeddings(ctx context.Context, model string, texts []string) ([][]float32, error)
	PutEmbeddings(ctx context.Context, model string, texts []string, vectors [][]float32) error
}

// BuildRecorder persists metadata about each published snapshot.
type BuildRecorder interface {
	SaveBuildInfo(ctx context.Context, info *core.BuildInfo) error
}

// Searcher answers queries against the most recently built snapshot.
// Search, KeywordSearch and Recommend are safe for concurrent use, including
// while Rebuild runs.
type Searcher struct {
	loader    CorpusLoader
	models    ai.ModelLoader
	aiConfig  *ai.Config
	evaluator *eligibility.Evaluator
	cache     EmbeddingCache
	recorder  BuildRecorder
	logger    *slog.Logger

	buildMu sync.Mutex
	current atomic.Pointer[snapshot]
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAIConfig sets the model names, batch size and retry policy used to
// build the encoder. Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) Option {
	return func(s *Searcher) error {
		if cfg == nil {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.aiConfig = cfg
		return nil
	}
}

// WithEvaluator replaces the default eligibility evaluator.
func WithEvaluator(evaluator *eligibility.Evaluator) Option {
	return func(s *Searcher) error {
		if evaluator != nil {
			s.evaluator = evaluator
		}
		return nil
	}
}

// WithEmbeddingCache reuses corpus vectors across builds.
func WithEmbeddingCache(cache EmbeddingCache) Option {
	return func(s *Searcher) error {
		s.cache = cache
		return nil
	}
}

// WithBuildRecorder records every published snapshot.
func WithBuildRecorder(recorder BuildRecorder) Option {
	return func(s *Searcher) error {
		s.recorder = recorder
		return nil
	}
}

// NewSearcher creates a searcher in StateUninitialized. Call Rebuild to load
// the corpus and build embeddings.
func NewSearcher(loader CorpusLoader, models ai.ModelLoader, opts ...Option) (*Searcher, error) {
	if loader == nil {
		return nil, ErrCorpusLoaderRequired
	}
	if models == nil {
		return nil, ErrModelLoaderRequired
	}

	s := &Searcher{
		loader:   loader,
		models:   models,
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	if s.evaluator == nil {
		evaluator, err := eligibility.NewEvaluator(eligibility.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.evaluator = evaluator
	}

	return s, nil
}

// State returns the state of the published snapshot.
func (s *Searcher) State() State {
	if snap := s.current.Load(); snap != nil {
		return snap.state
	}
	return StateUninitialized
}

// Info describes the published snapshot.
func (s *Searcher) Info() core.BuildInfo {
	if snap := s.current.Load(); snap != nil {
		return snap.info()
	}
	return core.BuildInfo{State: StateUninitialized.String()}
}

// Len returns the number of records in the published snapshot.
func (s *Searcher) Len() int {
	if snap := s.current.Load(); snap != nil {
		return len(snap.records)
	}
	return 0
}

// Rebuild loads the corpus, encodes it and atomically publishes the result.
// When no model can be loaded, or corpus encoding fails, the published
// snapshot is StateDegraded and queries use keyword search. Only a corpus
// load failure or cancellation is returned as an error; the previous
// snapshot then stays in place.
func (s *Searcher) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	records, err := s.loader.LoadCorpus(ctx)
	if err != nil {
		s.logger.Error("error loading corpus", "err", err)
		return fmt.Errorf("load corpus: %w", err)
	}

	matchTexts := make([]string, len(records))
	searchTexts := make([]string, len(records))
	for i, record := range records {
		matchTexts[i] = corpus.MatchText(record)
		searchTexts[i] = corpus.SearchText(record)
	}

	if s.current.Load() == nil {
		s.current.Store(newSnapshot(records, matchTexts))
	}
	next := newSnapshot(records, matchTexts)

	if len(records) == 0 {
		s.logger.Warn("corpus is empty; every search returns no results")
		s.publish(ctx, next)
		return nil
	}

	encoder, err := ai.NewEncoder(ctx, s.models, s.aiConfig, ai.WithEncoderLogger(s.logger))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error("no embedding model available, entering degraded mode", "err", err)
		s.publish(ctx, s.degraded(next))
		return nil
	}

	vectors, err := s.corpusVectors(ctx, encoder, searchTexts)
	if err == nil {
		next.index, err = NewIndex(vectors)
	}
	if err != nil {
		encoder.Release()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error("error encoding corpus, entering degraded mode", "model", encoder.Model(), "err", err)
		s.publish(ctx, s.degraded(next))
		return nil
	}

	next.state = StateEmbeddingsReady
	next.encoder = encoder
	next.builtAt = time.Now().UTC().Truncate(time.Microsecond)
	s.publish(ctx, next)

	s.logger.Info("search index built",
		"records", len(records),
		"model", encoder.Model(),
		"dimensions", next.index.Dimensions(),
		"elapsed", time.Since(start))
	return nil
}

// Close releases the encoder of the published snapshot.
func (s *Searcher) Close() {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if snap := s.current.Load(); snap != nil && snap.encoder != nil {
		snap.encoder.Release()
	}
}

func (s *Searcher) degraded(snap *snapshot) *snapshot {
	snap.state = StateDegraded
	snap.builtAt = time.Now().UTC().Truncate(time.Microsecond)
	return snap
}

// publish swaps in snap and releases the encoder it replaces.
func (s *Searcher) publish(ctx context.Context, snap *snapshot) {
	prev := s.current.Swap(snap)
	if prev != nil && prev != snap && prev.encoder != nil && prev.encoder != snap.encoder {
		prev.encoder.Release()
	}

	if s.recorder == nil {
		return
	}
	info := snap.info()
	if err := s.recorder.SaveBuildInfo(ctx, &info); err != nil {
		s.logger.Warn("error saving build info", "err", err)
	}
}

// corpusVectors encodes texts, reusing cached vectors where available.
func (s *Searcher) corpusVectors(ctx context.Context, encoder *ai.Encoder, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	if s.cache != nil {
		cached, err := s.cache.GetEmbeddings(ctx, encoder.Model(), texts)
		switch {
		case err != nil:
			s.logger.Warn("error reading embedding cache", "err", err)
		case len(cached) == len(texts):
			vectors = cached
		}
	}

	var missing []int
	for i, v := range vectors {
		if len(v) == 0 {
			missing = append(missing, i)
		}
	}

	if len(missing) < len(texts) && !sameDimensions(vectors) {
		s.logger.Warn("cached embeddings disagree on dimensions, re-encoding corpus", "model", encoder.Model())
		return encoder.Encode(ctx, texts)
	}
	if len(missing) == 0 {
		s.logger.Debug("all corpus vectors served from cache", "records", len(texts))
		return vectors, nil
	}

	missTexts := make([]string, len(missing))
	for j, i := range missing {
		missTexts[j] = texts[i]
	}
	encoded, err := encoder.Encode(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for j, i := range missing {
		vectors[i] = encoded[j]
	}

	if s.cache != nil {
		if err := s.cache.PutEmbeddings(ctx, encoder.Model(), missTexts, encoded); err != nil {
			s.logger.Warn("error writing embedding cache", "err", err)
		}
	}
	s.logger.Debug("encoded corpus", "encoded", len(missing), "cached", len(texts)-len(missing))
	return vectors, nil
}

// sameDimensions reports whether every non-empty vector has the same length.
func sameDimensions(vectors [][]float32) bool {
	dim := -1
	for _, v := range vectors {
		if len(v) == 0 {
			continue
		}
		if dim < 0 {
			dim = len(v)
		} else if len(v) != dim {
			return false
		}
	}
	return true
}

// SearchOption adjusts a single query.
type SearchOption func(*searchOptions)

type searchOptions struct {
	category core.Category
	monitor  SearchMonitor
}

// WithCategory restricts results to one category.
func WithCategory(category core.Category) SearchOption {
	return func(o *searchOptions) {
		o.category = category
	}
}

// WithMonitor observes the query as it runs.
func WithMonitor(monitor SearchMonitor) SearchOption {
	return func(o *searchOptions) {
		if monitor != nil {
			o.monitor = monitor
		}
	}
}

func (o *searchOptions) keep(record *core.PolicyRecord) bool {
	return o.category == core.CategoryUnknown || record.Category == o.category
}

// Search ranks the corpus for query and profile, returning at most topK
// results (DefaultTopK when topK <= 0). profile may be nil. Search never
// fails: when embeddings are unavailable or the semantic path errors, the
// results come from KeywordSearch and are marked Fallback.
func (s *Searcher) Search(ctx context.Context, query string, profile *core.UserProfile, topK int, opts ...SearchOption) []*core.MatchResult {
	so := &searchOptions{monitor: &noopMonitor{}}
	for _, opt := range opts {
		opt(so)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	so.monitor.Start(query)

	snap := s.current.Load()
	if snap == nil || len(snap.records) == 0 {
		results := []*core.MatchResult{}
		so.monitor.Finish(results)
		return results
	}

	if snap.state != StateEmbeddingsReady {
		so.monitor.Fallback(ErrNotReady)
		return s.fallback(snap, query, so)
	}

	results, err := s.semantic(ctx, snap, query, profile, topK, so)
	if err != nil {
		s.logger.Warn("semantic search failed, using keyword search", "query", query, "err", err)
		so.monitor.Fallback(err)
		return s.fallback(snap, query, so)
	}

	so.monitor.Finish(results)
	return results
}

// KeywordSearch is the degraded search path: records containing query as a
// case-insensitive substring, in corpus order, at most FallbackLimit.
func (s *Searcher) KeywordSearch(query string, opts ...SearchOption) []*core.PolicyRecord {
	so := &searchOptions{}
	for _, opt := range opts {
		opt(so)
	}
	snap := s.current.Load()
	if snap == nil {
		return []*core.PolicyRecord{}
	}
	return cloneAll(KeywordSearch(snap.records, snap.matchTexts, query, so.keep))
}

// Recommend lists records addressing the profile's support needs, best first.
// Without a profile it returns the first NoProfileRecommendLimit records.
func (s *Searcher) Recommend(profile *core.UserProfile, limit int, opts ...SearchOption) []*core.PolicyRecord {
	so := &searchOptions{}
	for _, opt := range opts {
		opt(so)
	}
	snap := s.current.Load()
	if snap == nil {
		return []*core.PolicyRecord{}
	}

	records, matchTexts := snap.records, snap.matchTexts
	if so.category != core.CategoryUnknown {
		records, matchTexts = nil, nil
		for i, record := range snap.records {
			if so.keep(record) {
				records = append(records, record)
				matchTexts = append(matchTexts, snap.matchTexts[i])
			}
		}
	}
	return cloneAll(recommend(records, matchTexts, profile, limit))
}

func (s *Searcher) fallback(snap *snapshot, query string, so *searchOptions) []*core.MatchResult {
	records := KeywordSearch(snap.records, snap.matchTexts, query, so.keep)
	results := make([]*core.MatchResult, len(records))
	for i, record := range records {
		results[i] = &core.MatchResult{Record: corpus.Clone(record), Fallback: true}
	}
	so.monitor.Finish(results)
	return results
}

func (s *Searcher) semantic(ctx context.Context, snap *snapshot, query string, profile *core.UserProfile, topK int, so *searchOptions) (results []*core.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("%w: %v", ErrSemanticPanic, r)
		}
	}()

	enhanced := EnhanceQuery(query, profile)
	so.monitor.AfterQueryEnhancement(enhanced)

	vector, err := snap.encoder.EncodeQuery(ctx, enhanced)
	if err != nil {
		return nil, err
	}
	if len(vector) != snap.index.Dimensions() {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ai.ErrDimensionMismatch, len(vector), snap.index.Dimensions())
	}

	var keep func(int) bool
	if so.category != core.CategoryUnknown {
		keep = func(i int) bool { return so.keep(snap.records[i]) }
	}
	candidates := snap.index.topCandidates(vector, topK, keep)
	so.monitor.AfterCandidateSelection(candidates)

	results = make([]*core.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		record := snap.records[c.Index]
		result := s.evaluator.Evaluate(profile, record)
		so.monitor.Evaluated(record, result)

		bonus := KeywordBonus(query, snap.bonusTexts[c.Index])
		results = append(results, &core.MatchResult{
			Record:        corpus.Clone(record),
			SemanticScore: c.Score,
			KeywordBonus:  bonus,
			Eligibility:   result,
			CombinedScore: CombinedScore(c.Score, result, bonus),
		})
	}

	slices.SortStableFunc(results, func(a, b *core.MatchResult) int {
		return cmp.Compare(b.CombinedScore, a.CombinedScore)
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func cloneAll(records []*core.PolicyRecord) []*core.PolicyRecord {
	out := make([]*core.PolicyRecord, len(records))
	for i, record := range records {
		out[i] = corpus.Clone(record)
	}
	return out
}
