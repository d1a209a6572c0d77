package search

import (
	"fmt"
	"testing"

	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/stretchr/testify/assert"
)

func matchTextsFor(records []*core.PolicyRecord) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = corpus.MatchText(r)
	}
	return texts
}

func TestKeywordSearch_SubstringInCorpusOrder(t *testing.T) {
	records := []*core.PolicyRecord{
		{ServiceName: "Youth Rent Subsidy"},
		{ServiceName: "Job Academy"},
		{ServiceName: "Deposit Loan", SupportContent: "covers RENT deposits"},
		{ServiceName: "Rental Housing", AgencyName: "LH"},
	}

	got := KeywordSearch(records, matchTextsFor(records), "Rent", nil)
	assert.Equal(t, []string{"Youth Rent Subsidy", "Deposit Loan", "Rental Housing"}, serviceNamesOf(got))
}

func TestKeywordSearch_MatchesAgencyAndTarget(t *testing.T) {
	records := []*core.PolicyRecord{
		{ServiceName: "A", AgencyName: "국토교통부"},
		{ServiceName: "B", TargetDescription: "자립준비청년"},
		{ServiceName: "C", ApplicationMethod: "국토교통부 방문"},
	}
	texts := matchTextsFor(records)

	assert.Equal(t, []string{"A"}, serviceNamesOf(KeywordSearch(records, texts, "국토교통부", nil)))
	assert.Equal(t, []string{"B"}, serviceNamesOf(KeywordSearch(records, texts, " 자립준비 ", nil)))
}

func TestKeywordSearch_Cap(t *testing.T) {
	var records []*core.PolicyRecord
	for i := 0; i < 15; i++ {
		records = append(records, &core.PolicyRecord{ServiceName: fmt.Sprintf("rent program %02d", i)})
	}

	got := KeywordSearch(records, matchTextsFor(records), "rent", nil)
	assert.Len(t, got, FallbackLimit)
	assert.Equal(t, "rent program 00", got[0].ServiceName)
	assert.Equal(t, "rent program 09", got[9].ServiceName)
}

func TestKeywordSearch_FilterAppliesBeforeCap(t *testing.T) {
	var records []*core.PolicyRecord
	for i := 0; i < 15; i++ {
		category := core.CategoryCentral
		if i%2 == 1 {
			category = core.CategoryLocal
		}
		records = append(records, &core.PolicyRecord{ServiceName: fmt.Sprintf("rent %02d", i), Category: category})
	}

	keep := func(r *core.PolicyRecord) bool { return r.Category == core.CategoryLocal }
	got := KeywordSearch(records, matchTextsFor(records), "rent", keep)
	assert.Len(t, got, 7)
	for _, r := range got {
		assert.Equal(t, core.CategoryLocal, r.Category)
	}
}

func TestKeywordSearch_NoMatch(t *testing.T) {
	records := []*core.PolicyRecord{{ServiceName: "Job Academy"}}
	got := KeywordSearch(records, matchTextsFor(records), "rent", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func serviceNamesOf(records []*core.PolicyRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.ServiceName
	}
	return names
}
