package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "ascii content", content: "service: Youth Rent Subsidy"},
		{name: "empty string", content: ""},
		{name: "korean content", content: "청년 월세 한시 특별지원"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("content1") == IDFromContent("content2") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"중앙부처", CategoryCentral, true},
		{"지자체", CategoryLocal, true},
		{"민간", CategoryPrivate, true},
		{" Central ", CategoryCentral, true},
		{"local-government", CategoryLocal, true},
		{"PRIVATE", CategoryPrivate, true},
		{"federal", CategoryUnknown, false},
		{"", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategory_Label(t *testing.T) {
	if CategoryCentral.Label() != "중앙부처" {
		t.Errorf("unexpected label %q", CategoryCentral.Label())
	}
	if CategoryUnknown.Label() != "" {
		t.Errorf("unknown category should have no label, got %q", CategoryUnknown.Label())
	}
}

func TestParseSupportNeed(t *testing.T) {
	tests := []struct {
		in     string
		want   SupportNeed
		wantOK bool
	}{
		{"housing", NeedHousing, true},
		{"Employment", NeedEmployment, true},
		{"주거지원", NeedHousing, true},
		{"경제지원", NeedIncome, true},
		{"심리지원", NeedPsychological, true},
		{"교육지원", NeedEducation, true},
		{"transport", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSupportNeed(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSupportNeed(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSupportNeed_LabelsCoverVocabulary(t *testing.T) {
	for _, need := range SupportNeeds {
		if need.Label() == "" {
			t.Errorf("need %q has no label", need)
		}
	}
}

func TestIncomeBucket_Ordering(t *testing.T) {
	ordered := []IncomeBucket{IncomeNone, IncomeMinimal, IncomeLow, IncomeModerate, IncomeHigh}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("%s should sort before %s", ordered[i-1], ordered[i])
		}
	}
	if IncomeUnknown.String() != "unknown" {
		t.Errorf("unexpected name %q", IncomeUnknown.String())
	}
}

func TestPolicyRecord_Fingerprint(t *testing.T) {
	a := &PolicyRecord{ServiceName: "청년월세지원", AgencyName: "국토교통부", Category: CategoryCentral}
	b := &PolicyRecord{ServiceName: "청년월세지원", AgencyName: "국토교통부", Category: CategoryCentral, SupportContent: "월 20만원"}
	c := &PolicyRecord{ServiceName: "청년월세지원", AgencyName: "서울시", Category: CategoryLocal}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("support content should not affect fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("different agency and category should change fingerprint")
	}
}

func TestUserProfile_HasAge(t *testing.T) {
	var nilProfile *UserProfile
	if nilProfile.HasAge() {
		t.Errorf("nil profile should not have an age")
	}
	if (&UserProfile{}).HasAge() {
		t.Errorf("zero age means unknown")
	}
	if !(&UserProfile{Age: 25}).HasAge() {
		t.Errorf("age 25 should be present")
	}
}
