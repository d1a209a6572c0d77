package search

import (
	"strings"

	"github.com/poiesic/policymatch/core"
)

// Ranking weights.
const (
	SemanticWeight    = 0.6
	EligibilityWeight = 0.3
	KeywordWeight     = 0.1

	// KeywordHitBonus is added per query word found in the record.
	KeywordHitBonus = 0.2
	// MaxKeywordBonus caps the keyword bonus.
	MaxKeywordBonus = 1.0
)

// KeywordBonus counts the query words longer than one character that occur
// verbatim in text, KeywordHitBonus each, capped at MaxKeywordBonus.
// text must already be lowercase; the searcher passes corpus.BonusText.
func KeywordBonus(query, text string) float64 {
	var bonus float64
	for _, word := range queryWords(query) {
		if strings.Contains(text, word) {
			bonus += KeywordHitBonus
		}
	}
	return min(bonus, MaxKeywordBonus)
}

// CombinedScore merges the three ranking signals.
// A nil eligibility contributes nothing.
func CombinedScore(semantic float64, eligibility *core.EligibilityResult, keywordBonus float64) float64 {
	var confidence float64
	if eligibility != nil {
		confidence = eligibility.Confidence
	}
	return SemanticWeight*semantic + EligibilityWeight*confidence + KeywordWeight*keywordBonus
}
