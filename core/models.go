package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Policy IDs come from a storage sequence; content IDs from IDFromContent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category identifies who runs a support program.
type Category string

const (
	CategoryUnknown Category = ""
	// CategoryCentral is a central-government program (중앙부처).
	CategoryCentral Category = "central-government"
	// CategoryLocal is a local-government program (지자체).
	CategoryLocal Category = "local-government"
	// CategoryPrivate is a program run by a private organization (민간).
	CategoryPrivate Category = "private"
)

var categoryAliases = map[string]Category{
	"central-government": CategoryCentral,
	"central":            CategoryCentral,
	"중앙부처":               CategoryCentral,
	"local-government":   CategoryLocal,
	"local":              CategoryLocal,
	"지자체":                CategoryLocal,
	"private":            CategoryPrivate,
	"민간":                 CategoryPrivate,
}

// ParseCategory maps English or Korean category names onto a Category.
// Unrecognized input yields CategoryUnknown and false.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Label returns the Korean display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryCentral:
		return "중앙부처"
	case CategoryLocal:
		return "지자체"
	case CategoryPrivate:
		return "민간"
	default:
		return ""
	}
}

// PolicyRecord is a single government or private support program.
// Textual fields are never nil; missing values are empty strings.
type PolicyRecord struct {
	Id                ID                `json:"id"`
	ServiceName       string            `json:"service_name"`
	AgencyName        string            `json:"agency_name"`
	TargetDescription string            `json:"target_description"`
	SupportContent    string            `json:"support_content"`
	ApplicationMethod string            `json:"application_method"`
	Category          Category          `json:"category"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// Fingerprint returns a content ID over the identifying fields of the record.
func (r *PolicyRecord) Fingerprint() ID {
	return IDFromContent(string(r.Category) + "\x00" + r.ServiceName + "\x00" + r.AgencyName + "\x00" + r.TargetDescription)
}

// SupportNeed is one entry of the controlled support-need vocabulary.
type SupportNeed string

const (
	NeedHousing       SupportNeed = "housing"
	NeedIncome        SupportNeed = "income"
	NeedEmployment    SupportNeed = "employment"
	NeedEducation     SupportNeed = "education"
	NeedPsychological SupportNeed = "psychological"
)

// SupportNeeds lists the vocabulary in a stable order.
var SupportNeeds = []SupportNeed{
	NeedHousing,
	NeedIncome,
	NeedEmployment,
	NeedEducation,
	NeedPsychological,
}

var needLabels = map[SupportNeed]string{
	NeedHousing:       "주거지원",
	NeedIncome:        "경제지원",
	NeedEmployment:    "취업지원",
	NeedEducation:     "교육지원",
	NeedPsychological: "심리지원",
}

// Label returns the Korean display name used by intake forms.
func (n SupportNeed) Label() string {
	return needLabels[n]
}

// ParseSupportNeed accepts either the English identifier or the Korean label.
func ParseSupportNeed(s string) (SupportNeed, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, need := range SupportNeeds {
		if s == string(need) || s == needLabels[need] {
			return need, true
		}
	}
	return "", false
}

// IncomeBucket is a comparable monthly-income band.
// Buckets are ordered so that a lower value means less income; IncomeUnknown sorts first
// but never satisfies an income ceiling.
type IncomeBucket int

const (
	IncomeUnknown IncomeBucket = iota
	IncomeNone
	IncomeMinimal  // up to 500,000 KRW per month
	IncomeLow      // up to 1,500,000 KRW per month
	IncomeModerate // up to 3,000,000 KRW per month
	IncomeHigh
)

func (b IncomeBucket) String() string {
	switch b {
	case IncomeNone:
		return "none"
	case IncomeMinimal:
		return "minimal"
	case IncomeLow:
		return "low"
	case IncomeModerate:
		return "moderate"
	case IncomeHigh:
		return "high"
	default:
		return "unknown"
	}
}

// UserProfile describes the person a search is run for.
type UserProfile struct {
	UserID        string        `json:"user_id,omitempty"`
	Age           int           `json:"age,omitempty"` // 0 when unknown
	HousingStatus string        `json:"housing_status,omitempty"`
	IncomeLevel   string        `json:"income_level,omitempty"`
	SupportNeeds  []SupportNeed `json:"support_needs,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty"`
}

// HasAge reports whether the profile carries an age.
func (p *UserProfile) HasAge() bool {
	return p != nil && p.Age > 0
}

// CheckResult is the outcome of a single eligibility check.
type CheckResult struct {
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
	Passed bool    `json:"passed"`
	Reason string  `json:"reason"`
}

// EligibilityResult summarizes how well a profile fits a record's constraints.
type EligibilityResult struct {
	Eligible      bool          `json:"eligible"`
	Confidence    float64       `json:"confidence"`
	FailedReasons []string      `json:"failed_reasons"`
	Checks        []CheckResult `json:"checks,omitempty"`
}

// MatchResult is one ranked search hit with its score breakdown.
// Fallback results carry only the record.
type MatchResult struct {
	Record        *PolicyRecord      `json:"record"`
	SemanticScore float64            `json:"semantic_score"`
	KeywordBonus  float64            `json:"keyword_bonus"`
	Eligibility   *EligibilityResult `json:"eligibility,omitempty"`
	CombinedScore float64            `json:"combined_score"`
	Fallback      bool               `json:"fallback,omitempty"`
}

// BuildInfo describes the most recently published search snapshot.
type BuildInfo struct {
	Model      string    `json:"model"`
	State      string    `json:"state"`
	Records    int       `json:"records"`
	Dimensions int       `json:"dimensions"`
	BuiltAt    time.Time `json:"built_at"`
}
