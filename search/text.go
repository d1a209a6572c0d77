package search

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/policymatch/corpus"
)

// queryWords splits a query on whitespace into lowercase words and drops
// single-character words. Words are kept verbatim, punctuation included.
func queryWords(query string) []string {
	words := strings.Fields(strings.ToLower(corpus.Normalize(query)))
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		if utf8.RuneCountInString(word) > 1 {
			filtered = append(filtered, word)
		}
	}

	return filtered
}

// normalizeQuery prepares a query for substring matching against match texts.
func normalizeQuery(query string) string {
	return strings.ToLower(corpus.Normalize(query))
}
