package eligibility

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/policymatch/core"
)

// Monthly income ceilings, in KRW, of the comparable buckets.
const (
	MinimalIncomeCeiling  = 500_000
	LowIncomeCeiling      = 1_500_000
	ModerateIncomeCeiling = 3_000_000
)

// BucketForAmount places a monthly income amount in KRW into a bucket.
func BucketForAmount(amount int64) core.IncomeBucket {
	switch {
	case amount <= 0:
		return core.IncomeNone
	case amount <= MinimalIncomeCeiling:
		return core.IncomeMinimal
	case amount <= LowIncomeCeiling:
		return core.IncomeLow
	case amount <= ModerateIncomeCeiling:
		return core.IncomeModerate
	default:
		return core.IncomeHigh
	}
}

var (
	amountPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*(만|천)?\s*(원|krw|won)?`)

	upperBoundWords = []string{"이하", "미만", "below", "under", "less than", "up to", "at most", "<"}
	lowerBoundWords = []string{"이상", "초과", "above", "over", "more than", "at least", ">"}

	noIncomeWords = []string{"없음", "무소득", "소득없음", "no income", "none", "zero", "unemployed"}

	// Bucket names and status words, most specific first.
	incomeWords = []struct {
		word   string
		bucket core.IncomeBucket
	}{
		{"기초생활수급", core.IncomeMinimal},
		{"수급자", core.IncomeMinimal},
		{"차상위", core.IncomeMinimal},
		{"basic livelihood", core.IncomeMinimal},
		{"near-poverty", core.IncomeMinimal},
		{"near poverty", core.IncomeMinimal},
		{"minimal", core.IncomeMinimal},
		{"저소득", core.IncomeLow},
		{"low", core.IncomeLow},
		{"moderate", core.IncomeModerate},
		{"middle", core.IncomeModerate},
		{"중간", core.IncomeModerate},
		{"고소득", core.IncomeHigh},
		{"high", core.IncomeHigh},
	}
)

// ParseIncomeLevel places a free-text monthly income description into a bucket.
//
// It understands amounts ("50만원 이하", "below 500000", "1,200,000원"),
// statements of no income ("없음", "none") and bucket or status names
// ("차상위", "low"). An upper bound ("이하", "below") places the income in the
// bucket of the bound; a lower bound ("이상", "over") in the bucket just above
// an exact ceiling. Unrecognized text yields ErrUnknownIncome.
func ParseIncomeLevel(text string) (core.IncomeBucket, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return core.IncomeUnknown, ErrUnknownIncome
	}

	if amount, ok := findAmount(s); ok {
		if amount > 0 && amount < math.MaxInt64 && containsAny(s, lowerBoundWords) && !containsAny(s, upperBoundWords) {
			amount++
		}
		return BucketForAmount(amount), nil
	}

	if containsAny(s, noIncomeWords) {
		return core.IncomeNone, nil
	}

	for _, w := range incomeWords {
		if strings.Contains(s, w.word) {
			return w.bucket, nil
		}
	}

	return core.IncomeUnknown, ErrUnknownIncome
}

// findAmount returns the first number that reads as money: one with a unit
// or currency, or at least 1,000. A lone small number ("2인 가구") is skipped
// unless it is the only number in the text.
func findAmount(s string) (int64, bool) {
	matches := amountPattern.FindAllStringSubmatch(s, -1)
	for _, m := range matches {
		amount, err := parseAmount(m[1], m[2])
		if err != nil {
			continue
		}
		if m[2] != "" || m[3] != "" || amount >= 1_000 {
			return amount, true
		}
	}
	if len(matches) == 1 {
		if amount, err := parseAmount(matches[0][1], matches[0][2]); err == nil {
			return amount, true
		}
	}
	return 0, false
}

func parseAmount(number, unit string) (int64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if errors.Is(err, strconv.ErrRange) && f > 0 {
		return math.MaxInt64, nil
	}
	if err != nil {
		return 0, err
	}
	switch unit {
	case "만":
		f *= 10_000
	case "천":
		f *= 1_000
	}
	if math.IsNaN(f) || f >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(f), nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
