package search

import (
	"strings"

	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/eligibility"
)

var independentYouthStatus = []string{"자립준비", "independence-preparing", "independence preparing"}

// EnhanceQuery appends profile terms to query before it is encoded:
// each support need (identifier and Korean label), an independence-preparing
// youth marker, and a youth marker for ages 18 to 39.
func EnhanceQuery(query string, profile *core.UserProfile) string {
	if profile == nil {
		return query
	}

	parts := []string{query}
	for _, need := range profile.SupportNeeds {
		parts = append(parts, string(need))
		if label := need.Label(); label != "" {
			parts = append(parts, label)
		}
	}

	housing := strings.ToLower(profile.HousingStatus)
	for _, marker := range independentYouthStatus {
		if strings.Contains(housing, marker) {
			parts = append(parts, "자립준비청년 청소년")
			break
		}
	}

	if profile.HasAge() && profile.Age >= eligibility.YouthMinAge && profile.Age <= eligibility.YouthMaxAge {
		parts = append(parts, "청년 youth")
	}

	return strings.Join(parts, " ")
}
