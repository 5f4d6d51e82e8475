package calculation

import (
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealEstateGain_EndToEndScenario(t *testing.T) {
	calc := NewRealEstateGainCalculator(tables2025(t))

	res, err := calc.Calculate(domain.RealEstateGainInput{
		Gain: domain.GainInput{
			AcquisitionValue: d(250000),
			DisposalValue:    d(350000),
			AcquisitionCosts: d(20000),
			DisposalCosts:    d(25000),
			DeductibleWorks:  d(15000),
			HoldingYears:     8,
		},
	})
	require.NoError(t, err)

	assert.True(t, res.Abatements.RawGain.Equal(d(40000)))
	assert.True(t, res.Abatements.IncomeTax.PercentApplied.Equal(d(18)))
	assert.True(t, res.IncomeTax.Equal(d(6232)), "got %s", res.IncomeTax)
	assert.True(t, res.IncomeTax.LessThan(d(7600)), "abated tax is below 19%% of the raw gain")
	assert.True(t, res.SocialContributions.Equal(d(6539)), "got %s", res.SocialContributions)
	assert.True(t, res.Surtax.IsZero())
	assert.True(t, res.TotalTax.Equal(d(12771)))
	assert.True(t, res.NetProceeds.Equal(d(325000-12771)))
	assert.Equal(t, domain.StatusTaxable, res.Status)
}

func TestRealEstateGain_FlatAllowances(t *testing.T) {
	calc := NewRealEstateGainCalculator(tables2025(t))

	in := domain.RealEstateGainInput{
		Gain: domain.GainInput{
			AcquisitionValue: d(200000),
			DisposalValue:    d(300000),
			HoldingYears:     10,
		},
		FlatAcquisitionCosts: true,
		FlatWorks:            true,
	}
	res, err := calc.Calculate(in)
	require.NoError(t, err)
	assert.True(t, res.AcquisitionCosts.Equal(d(15000)))
	assert.True(t, res.DeductibleWorks.Equal(d(30000)))
	assert.True(t, res.Abatements.RawGain.Equal(d(55000)))
	assert.True(t, res.TotalTax.Equal(d(15995)), "got %s", res.TotalTax)

	// flat works need more than five years of ownership
	in.Gain.HoldingYears = 5
	in.Gain.DeductibleWorks = d(1000)
	res, err = calc.Calculate(in)
	require.NoError(t, err)
	assert.True(t, res.DeductibleWorks.Equal(d(1000)))
}

func TestRealEstateGain_Surtax(t *testing.T) {
	calc := NewRealEstateGainCalculator(tables2025(t))

	tests := []struct {
		gain int64
		want int64
	}{
		{40000, 0},
		{50000, 0},
		{55000, 850},
		{60000, 1200},
		{80000, 1600},
		{255000, 14050},
		{300000, 18000},
	}
	for _, tt := range tests {
		got := calc.Surtax(d(tt.gain))
		assert.True(t, got.Equal(d(tt.want)), "gain %d: got %s", tt.gain, got)
	}
}

func TestRealEstateGain_DegenerateResults(t *testing.T) {
	calc := NewRealEstateGainCalculator(tables2025(t))
	base := domain.GainInput{AcquisitionValue: d(300000), DisposalValue: d(250000), HoldingYears: 4}

	t.Run("loss", func(t *testing.T) {
		res, err := calc.Calculate(domain.RealEstateGainInput{Gain: base})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusLoss, res.Status)
		assert.True(t, res.TotalTax.IsZero())
		assert.True(t, res.NetProceeds.Equal(d(250000)))
	})

	t.Run("main residence", func(t *testing.T) {
		g := base
		g.DisposalValue = d(500000)
		res, err := calc.Calculate(domain.RealEstateGainInput{Gain: g, MainResidence: true})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExempt, res.Status)
		assert.True(t, res.TotalTax.IsZero())
	})

	t.Run("fully abated after thirty years", func(t *testing.T) {
		g := base
		g.DisposalValue = d(500000)
		g.HoldingYears = 30
		res, err := calc.Calculate(domain.RealEstateGainInput{Gain: g})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExempt, res.Status)
		assert.True(t, res.TotalTax.IsZero())
	})

	t.Run("missing disposal value", func(t *testing.T) {
		_, err := calc.Calculate(domain.RealEstateGainInput{Gain: domain.GainInput{AcquisitionValue: d(1)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disposal_value")
	})
}

func TestRealEstateGain_TaxOnGain(t *testing.T) {
	calc := NewRealEstateGainCalculator(tables2025(t))

	tests := []struct {
		gain  int64
		years int
		want  int64
	}{
		{500000, 10, 166405},
		{50000, 0, 18100},
		{250000, 10, 79703},
		{-100, 3, 0},
	}
	for _, tt := range tests {
		got, err := calc.TaxOnGain(d(tt.gain), tt.years)
		require.NoError(t, err)
		assert.True(t, got.Equal(d(tt.want)), "gain %d over %d years: got %s", tt.gain, tt.years, got)
	}
}
