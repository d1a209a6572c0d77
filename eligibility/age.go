package eligibility

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxAge bounds any parsed age limit.
const MaxAge = 120

// Youth programs without explicit limits cover this range.
const (
	YouthMinAge = 18
	YouthMaxAge = 39
)

// AgeRange is an inclusive age interval.
type AgeRange struct {
	Min int
	Max int
}

// Contains reports whether age lies within the range.
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

func (r AgeRange) String() string {
	switch {
	case r.Min == 0:
		return fmt.Sprintf("up to %d", r.Max)
	case r.Max == MaxAge:
		return fmt.Sprintf("%d and over", r.Min)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}

var (
	// "ages 19-29", "19~34세", "만 19세~34세", "19세부터 34세까지", "19 to 29 years",
	// and bare "19~34 무주택자". The last group is the character after the range.
	rangePattern = regexp.MustCompile(`(?i)(?:^|[^\d])(ages?|aged|만)?\s*(\d{1,3})\s*(세)?\s*(?:~|∼|-|–|—|to|부터)\s*(?:만\s*)?(\d{1,3})\s*(세|years?)?([^\d]|$)`)

	// Units that make a bare range something other than ages: "10-20만원",
	// "3~6개월", "1-2인 가구", "9-18시".
	nonAgeUnits = "만천원%％월년일시개명인회층차주분점호급배단등위건종kK$₩"

	koUpperPattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,3})\s*세\s*(이하|미만)`)
	koLowerPattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,3})\s*세\s*(이상|초과)`)

	enUpperPattern = regexp.MustCompile(`(?i)(?:under|below|younger than)\s+(?:the\s+)?age\s+(?:of\s+)?(\d{1,3})(?:[^\d]|$)|(?:under|below|younger than)\s+(\d{1,3})\s*(?:years|yrs)`)
	enLowerPattern = regexp.MustCompile(`(?i)(?:over|above|older than)\s+(?:the\s+)?age\s+(?:of\s+)?(\d{1,3})(?:[^\d]|$)|(?:over|above|older than)\s+(\d{1,3})\s*(?:years|yrs)`)
)

// ParseAgeRange extracts an explicit age limit from free text.
// Ranges ("19-29", "19~34세") win over one-sided limits ("34세 이하",
// "19세 이상"); one-sided limits found together are combined. Text without
// a usable limit yields ErrNoAgeConstraint.
func ParseAgeRange(text string) (AgeRange, error) {
	for _, m := range rangePattern.FindAllStringSubmatch(text, -1) {
		lo, _ := strconv.Atoi(m[2])
		hi, _ := strconv.Atoi(m[4])
		labelled := m[1] != "" || m[3] != "" || m[5] != ""
		if !labelled && (lo >= hi || strings.ContainsAny(m[6], nonAgeUnits)) {
			continue
		}
		if r := (AgeRange{Min: lo, Max: hi}); valid(r) {
			return r, nil
		}
	}

	r := AgeRange{Min: 0, Max: MaxAge}
	found := false

	if m := koUpperPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] == "미만" {
			n--
		}
		r.Max, found = n, true
	} else if n, ok := firstNumber(enUpperPattern.FindStringSubmatch(text)); ok {
		r.Max, found = n-1, true
	}

	if m := koLowerPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] == "초과" {
			n++
		}
		r.Min, found = n, true
	} else if n, ok := firstNumber(enLowerPattern.FindStringSubmatch(text)); ok {
		r.Min, found = n+1, true
	}

	if !found || !valid(r) {
		return AgeRange{}, ErrNoAgeConstraint
	}
	return r, nil
}

func valid(r AgeRange) bool {
	return r.Min >= 0 && r.Max <= MaxAge && r.Min <= r.Max
}

// firstNumber returns the first non-empty numeric capture group of m.
func firstNumber(m []string) (int, bool) {
	if m == nil {
		return 0, false
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}
