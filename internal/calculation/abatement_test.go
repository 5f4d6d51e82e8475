package calculation

import (
	"errors"
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulePercent_RealEstate(t *testing.T) {
	rules, err := tables2025(t).Abatement(domain.CategoryRealEstate)
	require.NoError(t, err)

	tests := []struct {
		years      int
		wantIT     string
		wantSocial string
	}{
		{0, "0", "0"},
		{5, "0", "0"},
		{6, "6", "1.65"},
		{8, "18", "4.95"},
		{21, "96", "26.4"},
		{22, "100", "28"},
		{23, "100", "37"},
		{30, "100", "100"},
		{45, "100", "100"},
	}
	for _, tt := range tests {
		it := SchedulePercent(rules.IncomeTax, tt.years)
		social := SchedulePercent(rules.Social, tt.years)
		assert.True(t, it.Equal(ds(tt.wantIT)), "%d years income tax: got %s", tt.years, it)
		assert.True(t, social.Equal(ds(tt.wantSocial)), "%d years social: got %s", tt.years, social)
	}
}

func TestSchedulePercent_SecuritiesSteps(t *testing.T) {
	rules, err := tables2025(t).Abatement(domain.CategorySecurities)
	require.NoError(t, err)

	for years, want := range map[int]int64{0: 0, 1: 0, 2: 50, 7: 50, 8: 65, 20: 65} {
		got := SchedulePercent(rules.IncomeTax, years)
		assert.True(t, got.Equal(d(want)), "%d years: got %s", years, got)
	}
	assert.True(t, SchedulePercent(rules.Social, 20).IsZero())
}

func TestAbatementCalculator_NoEligibilityIsIdentity(t *testing.T) {
	calc := NewAbatementCalculator(tables2025(t))

	for _, raw := range []string{"1", "40000", "123456.78", "5000000"} {
		for years := 0; years <= 5; years++ {
			res, err := calc.Apply(domain.CategoryRealEstate, ds(raw), years, domain.AbatementOptions{})
			require.NoError(t, err)
			assert.True(t, res.IncomeTax.AdjustedGain.Equal(ds(raw)), "raw %s years %d: %s", raw, years, res.IncomeTax.AdjustedGain)
			assert.True(t, res.SocialContributions.AdjustedGain.Equal(ds(raw)))
			assert.True(t, res.IncomeTax.PercentApplied.IsZero())
			assert.True(t, res.IncomeTax.AmountExempted.IsZero())
		}
	}
}

func TestAbatementCalculator_StagesInOrder(t *testing.T) {
	calc := NewAbatementCalculator(tables2025(t))

	res, err := calc.Apply(domain.CategoryRealEstate, d(40000), 8, domain.AbatementOptions{Enhanced: true})
	require.NoError(t, err)

	it := res.IncomeTax
	require.Len(t, it.Stages, 2)
	assert.Equal(t, StageDuration, it.Stages[0].Name)
	assert.True(t, it.Stages[0].Amount.Equal(d(7200)))
	assert.True(t, it.Stages[0].BaseAfter.Equal(d(32800)))
	assert.Equal(t, StageEnhanced, it.Stages[1].Name)
	assert.True(t, it.Stages[1].Amount.Equal(d(16400)), "enhanced acts on the reduced base")
	assert.True(t, it.AdjustedGain.Equal(d(16400)))
	assert.True(t, it.PercentApplied.Equal(d(59)))
	assert.True(t, it.AmountExempted.Equal(d(23600)))

	// the enhanced stage does not touch the social treatment
	assert.Len(t, res.SocialContributions.Stages, 1)
	assert.True(t, res.SocialContributions.AdjustedGain.Equal(d(38020)))
}

func TestAbatementCalculator_PercentInvariant(t *testing.T) {
	calc := NewAbatementCalculator(tables2025(t))

	for years := 0; years <= 32; years++ {
		for _, enhanced := range []bool{false, true} {
			res, err := calc.Apply(domain.CategoryRealEstate, d(87000), years, domain.AbatementOptions{Enhanced: enhanced})
			require.NoError(t, err)
			for _, r := range []domain.AbatementResult{res.IncomeTax, res.SocialContributions} {
				assert.True(t, r.PercentApplied.GreaterThanOrEqual(d(0)))
				assert.True(t, r.PercentApplied.LessThanOrEqual(d(100)))
				want := d(87000).Mul(d(100).Sub(r.PercentApplied)).Div(d(100))
				assert.True(t, r.AdjustedGain.Equal(want), "years %d enhanced %v: %s vs %s", years, enhanced, r.AdjustedGain, want)
			}
		}
	}
}

func TestAbatementCalculator_FixedStageFloorsAtZero(t *testing.T) {
	calc := NewAbatementCalculator(tables2025(t))

	res, err := calc.Apply(domain.CategorySecurities, d(600000), 8, domain.AbatementOptions{Fixed: true})
	require.NoError(t, err)
	it := res.IncomeTax
	require.Len(t, it.Stages, 2)
	assert.Equal(t, StageFixed, it.Stages[1].Name)
	assert.True(t, it.Stages[1].Amount.Equal(d(210000)), "fixed stage never exceeds the remaining base")
	assert.True(t, it.AdjustedGain.IsZero())
	assert.True(t, it.PercentApplied.Equal(d(65)))

	res, err = calc.Apply(domain.CategorySecurities, d(1000000), 0, domain.AbatementOptions{Fixed: true})
	require.NoError(t, err)
	assert.True(t, res.IncomeTax.AdjustedGain.Equal(d(500000)))
}

func TestAbatementCalculator_LossAndErrors(t *testing.T) {
	calc := NewAbatementCalculator(tables2025(t))

	res, err := calc.Apply(domain.CategoryRealEstate, d(-12000), 10, domain.AbatementOptions{Enhanced: true, Fixed: true})
	require.NoError(t, err)
	assert.True(t, res.RawGain.Equal(d(-12000)))
	assert.True(t, res.IncomeTax.AdjustedGain.IsZero())
	assert.True(t, res.SocialContributions.AdjustedGain.IsZero())

	_, err = calc.Apply("crypto", d(1000), 3, domain.AbatementOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLookup))

	_, err = calc.Apply(domain.CategoryRealEstate, d(1000), -1, domain.AbatementOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
