package search

import (
	"time"

	"github.com/poiesic/policymatch/ai"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
)

// State is the lifecycle state of a Searcher.
type State int

const (
	StateUninitialized State = iota
	StateCorpusLoaded
	StateEmbeddingsReady
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateCorpusLoaded:
		return "corpus_loaded"
	case StateEmbeddingsReady:
		return "embeddings_ready"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// snapshot is one published corpus with everything derived from it.
// It is never modified after publication.
type snapshot struct {
	state      State
	records    []*core.PolicyRecord
	matchTexts []string
	bonusTexts []string
	index      *Index
	encoder    *ai.Encoder
	builtAt    time.Time
}

func newSnapshot(records []*core.PolicyRecord, matchTexts []string) *snapshot {
	bonusTexts := make([]string, len(records))
	for i, record := range records {
		bonusTexts[i] = corpus.BonusText(record)
	}
	return &snapshot{
		state:      StateCorpusLoaded,
		records:    records,
		matchTexts: matchTexts,
		bonusTexts: bonusTexts,
		builtAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *snapshot) info() core.BuildInfo {
	info := core.BuildInfo{
		State:   s.state.String(),
		Records: len(s.records),
		BuiltAt: s.builtAt,
	}
	if s.encoder != nil {
		info.Model = s.encoder.Model()
	}
	if s.index != nil {
		info.Dimensions = s.index.Dimensions()
	}
	return info
}
