package search

import (
	"strings"

	"github.com/poiesic/policymatch/core"
)

// FallbackLimit caps keyword search results.
const FallbackLimit = 10

// KeywordSearch returns the records whose match text contains the lowercase
// query, in corpus order, up to FallbackLimit. matchTexts[i] belongs to
// records[i]. keep, when non-nil, filters records before the cap applies.
func KeywordSearch(records []*core.PolicyRecord, matchTexts []string, query string, keep func(*core.PolicyRecord) bool) []*core.PolicyRecord {
	q := normalizeQuery(query)
	out := make([]*core.PolicyRecord, 0, FallbackLimit)
	for i, record := range records {
		if len(out) == FallbackLimit {
			break
		}
		if keep != nil && !keep(record) {
			continue
		}
		if strings.Contains(matchTexts[i], q) {
			out = append(out, record)
		}
	}
	return out
}
