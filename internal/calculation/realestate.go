package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// RealEstateGainCalculator estimates the tax on the sale of a property
type RealEstateGainCalculator struct {
	Rules      domain.RealEstateGainRules
	Abatements *AbatementCalculator
}

// NewRealEstateGainCalculator creates a real-estate gain calculator
func NewRealEstateGainCalculator(rt *domain.RateTables) *RealEstateGainCalculator {
	return &RealEstateGainCalculator{
		Rules:      rt.RealEstateGains,
		Abatements: NewAbatementCalculator(rt),
	}
}

// Surtax computes the additional tax on high real-estate gains. Inside a
// smoothing band the rate applies to the whole gain minus a fraction of the
// distance to the band ceiling.
func (c *RealEstateGainCalculator) Surtax(taxableGain decimal.Decimal) decimal.Decimal {
	if !taxableGain.GreaterThan(c.Rules.SurtaxThreshold) {
		return decimal.Zero
	}
	for _, band := range c.Rules.SurtaxBands {
		if !taxableGain.GreaterThan(band.From) {
			continue
		}
		if band.To != nil && taxableGain.GreaterThan(*band.To) {
			continue
		}
		surtax := percentOf(taxableGain, band.Rate)
		if band.SmoothingPercent.IsPositive() && band.To != nil {
			surtax = surtax.Sub(percentOf(band.To.Sub(taxableGain), band.SmoothingPercent))
		}
		return nonNegative(surtax)
	}
	return decimal.Zero
}

// Calculate estimates the income tax, social contributions and surtax due
// on a property sale.
func (c *RealEstateGainCalculator) Calculate(in domain.RealEstateGainInput) (*domain.RealEstateGainResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	gain := in.Gain
	if in.FlatAcquisitionCosts {
		gain.AcquisitionCosts = percentOf(gain.AcquisitionValue, c.Rules.FlatAcquisitionCostPercent)
	}
	if in.FlatWorks && gain.HoldingYears >= c.Rules.FlatWorksMinYears {
		gain.DeductibleWorks = percentOf(gain.AcquisitionValue, c.Rules.FlatWorksPercent)
	}

	res := &domain.RealEstateGainResult{
		AcquisitionCosts: gain.AcquisitionCosts,
		DeductibleWorks:  gain.DeductibleWorks,
	}
	saleProceeds := gain.DisposalValue.Sub(gain.DisposalCosts)

	if in.MainResidence {
		res.Status = domain.StatusExempt
		res.Abatements = domain.AbatementBreakdown{Category: domain.CategoryRealEstate, RawGain: gain.RawGain(), HoldingYears: gain.HoldingYears}
		res.NetProceeds = saleProceeds
		return res, nil
	}

	breakdown, err := c.Abatements.Apply(domain.CategoryRealEstate, gain.RawGain(), gain.HoldingYears, in.Abatements)
	if err != nil {
		return nil, err
	}
	res.Abatements = breakdown

	res.IncomeTax = roundEuro(percentOf(breakdown.IncomeTax.AdjustedGain, c.Rules.IncomeTaxRate))
	res.SocialContributions = roundEuro(percentOf(breakdown.SocialContributions.AdjustedGain, c.Rules.SocialRate))
	res.Surtax = roundEuro(c.Surtax(breakdown.IncomeTax.AdjustedGain))
	res.TotalTax = res.IncomeTax.Add(res.SocialContributions).Add(res.Surtax)
	res.NetProceeds = saleProceeds.Sub(res.TotalTax)

	switch {
	case !breakdown.RawGain.IsPositive():
		res.Status = domain.StatusLoss
	case res.TotalTax.IsZero():
		res.Status = domain.StatusExempt
	default:
		res.Status = domain.StatusTaxable
	}
	return res, nil
}

// TaxOnGain is the total tax on a bare gain with no costs or options.
func (c *RealEstateGainCalculator) TaxOnGain(rawGain decimal.Decimal, holdingYears int) (decimal.Decimal, error) {
	breakdown, err := c.Abatements.Apply(domain.CategoryRealEstate, rawGain, holdingYears, domain.AbatementOptions{})
	if err != nil {
		return decimal.Zero, err
	}
	it := roundEuro(percentOf(breakdown.IncomeTax.AdjustedGain, c.Rules.IncomeTaxRate))
	ps := roundEuro(percentOf(breakdown.SocialContributions.AdjustedGain, c.Rules.SocialRate))
	surtax := roundEuro(c.Surtax(breakdown.IncomeTax.AdjustedGain))
	return it.Add(ps).Add(surtax), nil
}
