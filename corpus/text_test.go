package corpus

import (
	"testing"

	"github.com/poiesic/policymatch/core"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestSearchText(t *testing.T) {
	tests := []struct {
		name   string
		record *core.PolicyRecord
		want   string
	}{
		{
			name: "all fields",
			record: &core.PolicyRecord{
				ServiceName:       "Youth Rent Subsidy",
				AgencyName:        "Ministry of Land",
				TargetDescription: "ages 19-29 low income youth",
				SupportContent:    "monthly rent up to 200,000 KRW",
				ApplicationMethod: "online",
				Category:          core.CategoryCentral,
			},
			want: "service: Youth Rent Subsidy Youth Rent Subsidy target: ages 19-29 low income youth " +
				"content: monthly rent up to 200,000 KRW agency: Ministry of Land application: online category: 중앙부처",
		},
		{
			name:   "absent fields are skipped",
			record: &core.PolicyRecord{ServiceName: "청년월세", SupportContent: "  "},
			want:   "service: 청년월세 청년월세",
		},
		{
			name:   "no service name",
			record: &core.PolicyRecord{TargetDescription: "자립준비청년"},
			want:   "target: 자립준비청년",
		},
		{
			name:   "nil record",
			record: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchText(tt.record))
		})
	}
}

func TestSearchText_Deterministic(t *testing.T) {
	r := &core.PolicyRecord{ServiceName: "a", TargetDescription: "b", Metadata: map[string]string{"x": "1", "y": "2"}}
	assert.Equal(t, SearchText(r), SearchText(r))
}

func TestMatchText(t *testing.T) {
	r := &core.PolicyRecord{
		ServiceName:       "Youth RENT Subsidy",
		AgencyName:        "Seoul",
		TargetDescription: "Youth",
		SupportContent:    "Monthly Rent",
		ApplicationMethod: "Visit the office",
	}
	assert.Equal(t, "youth rent subsidy seoul youth monthly rent", MatchText(r))
	assert.NotContains(t, MatchText(r), "office")
	assert.NotContains(t, MatchText(r), "service:")
}

func TestBonusText(t *testing.T) {
	r := &core.PolicyRecord{
		ServiceName:       "Youth RENT Subsidy",
		AgencyName:        "Seoul",
		TargetDescription: "Youth",
		SupportContent:    "Monthly Rent",
		ApplicationMethod: "Visit the office",
	}
	assert.Equal(t, "youth rent subsidy monthly rent youth", BonusText(r))
	assert.NotContains(t, BonusText(r), "seoul")
	assert.Empty(t, BonusText(nil))
	assert.Equal(t, "청년 월세", BonusText(&core.PolicyRecord{ServiceName: " 청년 월세 "}))
}

func TestNormalize_ComposesHangul(t *testing.T) {
	decomposed := norm.NFD.String("청년")
	assert.NotEqual(t, "청년", decomposed)
	assert.Equal(t, "청년", Normalize(" "+decomposed+" "))
}
