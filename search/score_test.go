package search

import (
	"testing"

	"github.com/poiesic/policymatch/core"
	"github.com/stretchr/testify/assert"
)

func TestKeywordBonus(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		text     string
		expected float64
	}{
		{name: "two hits", query: "housing support", text: "youth housing support program", expected: 0.4},
		{name: "case insensitive", query: "Housing", text: "youth housing", expected: 0.2},
		{name: "single characters ignored", query: "a b housing", text: "a b housing", expected: 0.2},
		{name: "korean words", query: "주거 지원", text: "청년 주거 지원 사업", expected: 0.4},
		{name: "substring inside word", query: "rent", text: "youth rental aid", expected: 0.2},
		{name: "punctuation kept verbatim", query: "rent?", text: "monthly rent", expected: 0},
		{name: "punctuation matched verbatim", query: "rent?", text: "need rent? apply", expected: 0.2},
		{name: "korean particle kept", query: "월세를", text: "청년 월세 지원", expected: 0},
		{name: "no hits", query: "tuition", text: "monthly rent", expected: 0},
		{name: "capped", query: "aa bb cc dd ee ff gg", text: "aa bb cc dd ee ff gg", expected: 1},
		{name: "empty query", query: "", text: "anything", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bonus := KeywordBonus(tt.query, tt.text)
			assert.InDelta(t, tt.expected, bonus, 1e-9)
			assert.GreaterOrEqual(t, bonus, 0.0)
			assert.LessOrEqual(t, bonus, MaxKeywordBonus)
		})
	}
}

func TestCombinedScore(t *testing.T) {
	assert.InDelta(t, 0.7, CombinedScore(0.5, &core.EligibilityResult{Confidence: 1}, 1), 1e-9)
	assert.InDelta(t, 0.6*0.8+0.3*0.5, CombinedScore(0.8, &core.EligibilityResult{Confidence: 0.5}, 0), 1e-9)
	assert.InDelta(t, 0.6, CombinedScore(1, nil, 0), 1e-9)
}

func TestQueryWords(t *testing.T) {
	assert.Equal(t, []string{"youth", "rent?", "(서울)"}, queryWords("  Youth  RENT? a (서울) "))
	assert.Empty(t, queryWords(""))
	assert.Empty(t, queryWords("a b c"))
}
