package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgeRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want AgeRange
	}{
		{name: "english ages range", text: "ages 19-29 low income youth", want: AgeRange{19, 29}},
		{name: "tilde with 세", text: "19~34세 청년", want: AgeRange{19, 34}},
		{name: "만 prefix both sides", text: "만 19세~만 34세 무주택자", want: AgeRange{19, 34}},
		{name: "부터", text: "18세부터 24세까지 보호종료아동", want: AgeRange{18, 24}},
		{name: "english to", text: "aged 18 to 24", want: AgeRange{18, 24}},
		{name: "korean bounded", text: "만 19세 이상 34세 이하 청년", want: AgeRange{19, 34}},
		{name: "korean bounded 미만", text: "15세 이상 25세 미만", want: AgeRange{15, 24}},
		{name: "korean upper only", text: "만 39세 이하", want: AgeRange{0, 39}},
		{name: "korean lower only", text: "65세 이상 어르신", want: AgeRange{65, MaxAge}},
		{name: "korean 초과", text: "18세 초과", want: AgeRange{19, MaxAge}},
		{name: "english under age", text: "young people under the age of 25", want: AgeRange{0, 24}},
		{name: "english over years", text: "residents over 64 years", want: AgeRange{65, MaxAge}},
		{name: "bare tilde range", text: "19~34 무주택자", want: AgeRange{19, 34}},
		{name: "bare hyphen range after label", text: "대상: 19-29 구직자", want: AgeRange{19, 29}},
		{name: "bare range at end", text: "지원 대상 18-24", want: AgeRange{18, 24}},
		{name: "bare range after money range", text: "월 10-20만원, 19~34 청년", want: AgeRange{19, 34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAgeRange(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAgeRange_NoConstraint(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "youth marker only", text: "청년 누구나"},
		{name: "money range", text: "월 10-20만원 지원"},
		{name: "phone number", text: "문의 1600-0777"},
		{name: "year range", text: "2024-2025 사업"},
		{name: "income below", text: "income below 1,000,000 KRW"},
		{name: "inverted range", text: "ages 30-20"},
		{name: "implausible age", text: "ages 19-200"},
		{name: "bare implausible age", text: "대상 19-130 누구나"},
		{name: "bare equal bounds", text: "20-20 대상"},
		{name: "bare months", text: "3~6개월 과정"},
		{name: "bare household size", text: "1-2인 가구"},
		{name: "bare hours", text: "운영 9-18시"},
		{name: "bare percent", text: "10~20% 할인"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAgeRange(tt.text)
			assert.ErrorIs(t, err, ErrNoAgeConstraint)
		})
	}
}

func TestAgeRange_String(t *testing.T) {
	assert.Equal(t, "19-29", AgeRange{19, 29}.String())
	assert.Equal(t, "up to 39", AgeRange{0, 39}.String())
	assert.Equal(t, "65 and over", AgeRange{65, MaxAge}.String())
}

func TestAgeRange_Contains(t *testing.T) {
	r := AgeRange{19, 29}
	assert.True(t, r.Contains(19))
	assert.True(t, r.Contains(29))
	assert.False(t, r.Contains(18))
	assert.False(t, r.Contains(30))
}
