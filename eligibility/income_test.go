package eligibility

import (
	"math"
	"strings"
	"testing"

	"github.com/poiesic/policymatch/core"
	"github.com/stretchr/testify/assert"
)

func TestParseIncomeLevel(t *testing.T) {
	tests := []struct {
		text string
		want core.IncomeBucket
	}{
		{"50만원 이하", core.IncomeMinimal},
		{"below 500000", core.IncomeMinimal},
		{"500,000원", core.IncomeMinimal},
		{"월 120만원", core.IncomeLow},
		{"150만원 이하", core.IncomeLow},
		{"150만원 이상", core.IncomeModerate},
		{"2인 가구 월 250만원", core.IncomeModerate},
		{"4,000,000 KRW", core.IncomeHigh},
		{"0원", core.IncomeNone},
		{"없음", core.IncomeNone},
		{"No income", core.IncomeNone},
		{"기초생활수급자", core.IncomeMinimal},
		{"차상위계층", core.IncomeMinimal},
		{"low", core.IncomeLow},
		{"moderate", core.IncomeModerate},
		{"High", core.IncomeHigh},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseIncomeLevel(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestParseIncomeLevel_Unrecognized(t *testing.T) {
	for _, text := range []string{"", "   ", "잘 모르겠어요", "depends"} {
		got, err := ParseIncomeLevel(text)
		assert.ErrorIs(t, err, ErrUnknownIncome, "text %q", text)
		assert.Equal(t, core.IncomeUnknown, got)
	}
}

func TestBucketForAmount_Boundaries(t *testing.T) {
	assert.Equal(t, core.IncomeNone, BucketForAmount(0))
	assert.Equal(t, core.IncomeMinimal, BucketForAmount(MinimalIncomeCeiling))
	assert.Equal(t, core.IncomeLow, BucketForAmount(MinimalIncomeCeiling+1))
	assert.Equal(t, core.IncomeLow, BucketForAmount(LowIncomeCeiling))
	assert.Equal(t, core.IncomeModerate, BucketForAmount(ModerateIncomeCeiling))
	assert.Equal(t, core.IncomeHigh, BucketForAmount(ModerateIncomeCeiling+1))
}

func TestParseIncomeLevel_HugeAmounts(t *testing.T) {
	tests := []string{
		"99999999999999999999원",
		"월 99999999999999999999만원",
		"10,000,000,000,000,000,000,000 KRW",
		strings.Repeat("9", 400) + "원",
		"99999999999999999999원 이상",
	}

	for _, text := range tests {
		got, err := ParseIncomeLevel(text)
		assert.NoError(t, err, "text %q", text)
		assert.Equal(t, core.IncomeHigh, got, "text %q got %s", text, got)
	}
}

func TestParseAmount_Saturates(t *testing.T) {
	amount, err := parseAmount("99999999999999999999", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), amount)

	amount, err = parseAmount("9223372036854775807", "만")
	assert.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), amount)

	amount, err = parseAmount("1,200", "만")
	assert.NoError(t, err)
	assert.Equal(t, int64(12_000_000), amount)
}

func TestIncomeCheck_HugeIncomeFailsLowIncomeProgram(t *testing.T) {
	record := &core.PolicyRecord{TargetDescription: "기초생활수급자"}
	profile := &core.UserProfile{IncomeLevel: "99999999999999999999원"}

	passed, reason := IncomeCheck(core.IncomeMinimal)(profile, record)
	assert.False(t, passed, reason)
}
