package eligibility

import (
	"fmt"
	"strings"

	"github.com/poiesic/policymatch/core"
)

// Kind names a check in results.
type Kind string

const (
	KindAge              Kind = "age"
	KindIncome           Kind = "income"
	KindSpecialCondition Kind = "special_condition"
)

// Default check weights.
const (
	AgeWeight              = 0.3
	IncomeWeight           = 0.4
	SpecialConditionWeight = 0.3
)

// CheckFunc decides a single check for a non-nil profile.
type CheckFunc func(profile *core.UserProfile, record *core.PolicyRecord) (passed bool, reason string)

// Check is one weighted eligibility rule.
type Check struct {
	Kind     Kind
	Weight   float64
	Evaluate CheckFunc
}

var (
	youthMarkers        = []string{"청년", "youth", "young adult"}
	lowIncomeMarkers    = []string{"기초생활수급", "차상위", "저소득", "basic livelihood", "near-poverty", "near poverty", "low-income", "low income"}
	independenceMarkers = []string{"자립", "independence", "보호종료", "leaving care"}
	independentHousing  = []string{"자립준비", "independence-preparing", "independence preparing", "보호종료", "leaving care"}

	// NeedTerms maps each support need to record terms that indicate it.
	NeedTerms = map[core.SupportNeed][]string{
		core.NeedHousing:       {"주거", "임대", "월세", "전세", "housing", "rent", "rental"},
		core.NeedEmployment:    {"취업", "일자리", "고용", "job", "employment"},
		core.NeedEducation:     {"교육", "학비", "등록금", "장학", "education", "tuition", "scholarship"},
		core.NeedIncome:        {"생계", "급여", "수당", "livelihood", "benefit", "allowance"},
		core.NeedPsychological: {"심리", "상담", "정신", "counseling", "mental", "psychological"},
	}
)

// DefaultChecks returns the age, income and special-condition checks.
// Low-income programs accept profiles at or below incomeCeiling.
func DefaultChecks(incomeCeiling core.IncomeBucket) []Check {
	return []Check{
		{Kind: KindAge, Weight: AgeWeight, Evaluate: CheckAge},
		{Kind: KindIncome, Weight: IncomeWeight, Evaluate: IncomeCheck(incomeCeiling)},
		{Kind: KindSpecialCondition, Weight: SpecialConditionWeight, Evaluate: CheckSpecialCondition},
	}
}

// CheckAge compares the profile age with the record's stated age limits.
// An explicit range takes precedence over the generic youth marker.
func CheckAge(profile *core.UserProfile, record *core.PolicyRecord) (bool, string) {
	if !profile.HasAge() {
		return true, "age not provided"
	}
	text := record.TargetDescription + " " + record.ServiceName

	if r, err := ParseAgeRange(text); err == nil {
		if r.Contains(profile.Age) {
			return true, fmt.Sprintf("age requirement met (%s)", r)
		}
		return false, fmt.Sprintf("age requirement not met: requires %s, age %d", r, profile.Age)
	}

	if containsAny(strings.ToLower(text), youthMarkers) {
		if profile.Age >= YouthMinAge && profile.Age <= YouthMaxAge {
			return true, "youth age requirement met"
		}
		return false, fmt.Sprintf("youth program requires ages %d-%d, age %d", YouthMinAge, YouthMaxAge, profile.Age)
	}

	return true, "no age requirement stated"
}

// IncomeCheck returns a check that limits low-income programs to profiles
// at or below ceiling.
func IncomeCheck(ceiling core.IncomeBucket) CheckFunc {
	return func(profile *core.UserProfile, record *core.PolicyRecord) (bool, string) {
		text := strings.ToLower(record.TargetDescription + " " + record.SupportContent)
		if !containsAny(text, lowIncomeMarkers) {
			return true, "no income requirement stated"
		}
		if strings.TrimSpace(profile.IncomeLevel) == "" {
			return true, "income not provided"
		}

		bucket, err := ParseIncomeLevel(profile.IncomeLevel)
		if err != nil {
			return false, fmt.Sprintf("low-income program; income level %q not recognized", profile.IncomeLevel)
		}
		if bucket <= ceiling {
			return true, fmt.Sprintf("low-income requirement met (%s)", bucket)
		}
		return false, fmt.Sprintf("low-income program requires %s income or less, profile is %s", ceiling, bucket)
	}
}

// CheckSpecialCondition looks for independence-preparing youth programs and
// overlap with the profile's support needs. It never fails; the reason
// records what matched.
func CheckSpecialCondition(profile *core.UserProfile, record *core.PolicyRecord) (bool, string) {
	text := strings.ToLower(record.TargetDescription + " " + record.ServiceName)
	housing := strings.ToLower(profile.HousingStatus)

	if containsAny(text, independenceMarkers) && containsAny(housing, independentHousing) {
		return true, "independence-preparing youth condition met"
	}

	text += " " + strings.ToLower(record.SupportContent)
	for _, need := range profile.SupportNeeds {
		if containsAny(text, NeedTerms[need]) {
			return true, fmt.Sprintf("matches support need %s", need)
		}
	}

	return true, "no special condition"
}
