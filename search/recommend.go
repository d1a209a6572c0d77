package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/eligibility"
)

const (
	// DefaultRecommendLimit is used when Recommend is called with limit <= 0.
	DefaultRecommendLimit = 20

	// NoProfileRecommendLimit is how many records are returned without a profile.
	NoProfileRecommendLimit = 10

	needHitPoints          = 3
	psychologicalHitPoints = 2
	independencePoints     = 2
)

var independenceTargets = []string{"자립", "청소년", "independence", "leaving care"}

type recommendation struct {
	record *core.PolicyRecord
	score  int
}

// recommend scores records by how many of the profile's support needs they
// address, with a bonus for independence and youth-protection programs.
// Only records scoring above zero are returned, best first, corpus order on ties.
func recommend(records []*core.PolicyRecord, matchTexts []string, profile *core.UserProfile, limit int) []*core.PolicyRecord {
	if profile == nil {
		return records[:min(NoProfileRecommendLimit, len(records))]
	}
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	var scored []recommendation
	for i, record := range records {
		text := matchTexts[i]
		score := 0
		for _, need := range profile.SupportNeeds {
			if !containsAny(text, eligibility.NeedTerms[need]) {
				continue
			}
			if need == core.NeedPsychological {
				score += psychologicalHitPoints
			} else {
				score += needHitPoints
			}
		}
		if containsAny(text, independenceTargets) {
			score += independencePoints
		}
		if score > 0 {
			scored = append(scored, recommendation{record: record, score: score})
		}
	}

	slices.SortStableFunc(scored, func(a, b recommendation) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]*core.PolicyRecord, 0, min(limit, len(scored)))
	for _, r := range scored[:min(limit, len(scored))] {
		out = append(out, r.record)
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
