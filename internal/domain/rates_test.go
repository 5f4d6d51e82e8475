package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func upper(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func age(v int) *int { return &v }

func TestValidateBrackets(t *testing.T) {
	valid := []TaxBracket{
		{Lower: dec(0), Upper: upper(10000), Rate: dec(0)},
		{Lower: dec(10000), Upper: upper(20000), Rate: dec(10)},
		{Lower: dec(20000), Rate: dec(30)},
	}
	assert.NoError(t, ValidateBrackets("test", valid))

	tests := []struct {
		name     string
		brackets []TaxBracket
		contains string
	}{
		{"empty", nil, "empty"},
		{"not starting at zero", []TaxBracket{{Lower: dec(5), Rate: dec(10)}}, "start at 0"},
		{"bounded last", []TaxBracket{{Lower: dec(0), Upper: upper(5), Rate: dec(10)}}, "unbounded"},
		{"gap", []TaxBracket{
			{Lower: dec(0), Upper: upper(100), Rate: dec(0)},
			{Lower: dec(200), Rate: dec(10)},
		}, "gap"},
		{"descending", []TaxBracket{
			{Lower: dec(0), Upper: upper(100), Rate: dec(0)},
			{Lower: dec(100), Upper: upper(50), Rate: dec(10)},
			{Lower: dec(50), Rate: dec(20)},
		}, "not above"},
		{"rate above 100", []TaxBracket{{Lower: dec(0), Rate: dec(101)}}, "outside 0-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets("test", tt.brackets)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func minimalTables() *RateTables {
	scale := []TaxBracket{{Lower: dec(0), Rate: dec(10)}}
	return &RateTables{
		Metadata:     RateMetadata{TaxYear: 2025},
		IncomeTax:    IncomeTaxRules{Brackets: scale, HighIncomeSurcharge: SurchargeRules{Single: scale, Couple: scale}},
		Gift:         GiftRules{Brackets: scale},
		CorporateTax: CorporateTaxRules{Brackets: scale},
		Abatements: map[string]AbatementRules{
			CategorySecurities: {
				IncomeTax: AbatementSchedule{Mode: ScheduleStep, Bands: []AbatementBand{
					{FromYear: 2, Percent: dec(50)},
					{FromYear: 8, Percent: dec(65)},
				}},
			},
		},
		Acquisition: AcquisitionRules{Fees: map[string]FeeRates{PropertyExisting: {Notary: upper(1)}}},
		Usufruct: []UsufructBand{
			{MaxAge: age(20), Percent: dec(90)},
			{MaxAge: age(50), Percent: dec(60)},
			{Percent: dec(10)},
		},
		Freelance: FreelanceRules{Micro: map[string]MicroRules{
			ActivitySales: {SocialRate: dec(12), AllowancePercent: dec(71), TurnoverCeiling: dec(188700)},
		}},
	}
}

func TestRateTables_Lookups(t *testing.T) {
	rt := minimalTables()
	require.NoError(t, rt.Validate())

	_, err := rt.Abatement(CategorySecurities)
	assert.NoError(t, err)

	_, err = rt.Abatement("crypto")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookup))
	assert.False(t, errors.Is(err, ErrValidation))

	_, err = rt.FeeDefaults(PropertyNew)
	assert.True(t, errors.Is(err, ErrLookup))

	_, err = rt.Micro("consulting")
	assert.True(t, errors.Is(err, ErrLookup))

	assert.Equal(t, []string{CategorySecurities}, rt.Categories())
}

func TestRateTables_UsufructPercent(t *testing.T) {
	rt := minimalTables()
	tests := []struct {
		age  int
		want int64
	}{
		{0, 90}, {20, 90}, {21, 60}, {50, 60}, {51, 10}, {104, 10},
	}
	for _, tt := range tests {
		got, err := rt.UsufructPercent(tt.age)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(tt.want)), "age %d: got %s", tt.age, got)
	}
}

func TestRateTables_ValidateRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RateTables)
	}{
		{"missing year", func(rt *RateTables) { rt.Metadata.TaxYear = 0 }},
		{"bad flat rate", func(rt *RateTables) { rt.CapitalIncome.FlatIncomeRate = dec(128) }},
		{"unknown schedule mode", func(rt *RateTables) {
			rules := rt.Abatements[CategorySecurities]
			rules.IncomeTax.Mode = "linear"
			rt.Abatements[CategorySecurities] = rules
		}},
		{"usufruct not open-ended", func(rt *RateTables) { rt.Usufruct = rt.Usufruct[:2] }},
		{"usufruct not ascending", func(rt *RateTables) {
			rt.Usufruct = []UsufructBand{{MaxAge: age(50), Percent: dec(60)}, {MaxAge: age(20), Percent: dec(90)}, {Percent: dec(10)}}
		}},
		{"fee above 100", func(rt *RateTables) {
			rt.Acquisition.Fees[PropertyExisting] = FeeRates{Agency: upper(150)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := minimalTables()
			tt.mutate(rt)
			assert.Error(t, rt.Validate())
		})
	}
}
