package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// SecuritiesGainCalculator estimates the tax on a sale of shares
type SecuritiesGainCalculator struct {
	Abatements *AbatementCalculator
	Optimizer  *RegimeOptimizer
}

// NewSecuritiesGainCalculator creates a securities gain calculator
func NewSecuritiesGainCalculator(rt *domain.RateTables) *SecuritiesGainCalculator {
	return &SecuritiesGainCalculator{
		Abatements: NewAbatementCalculator(rt),
		Optimizer:  NewRegimeOptimizer(rt),
	}
}

// Calculate runs the abatements and the regime comparison. Duration and
// enhanced abatements need eligible shares and only reduce the progressive
// base; the fixed abatement reduces both income-tax bases, each on its own; social
// contributions are due on the raw gain.
func (c *SecuritiesGainCalculator) Calculate(in domain.SecuritiesGainInput) (*domain.SecuritiesGainResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	raw := in.Gain.RawGain()
	years := in.Gain.HoldingYears
	opts := in.Abatements
	if !in.AbatementEligible {
		years = 0
		opts.Enhanced = false
	}
	breakdown, err := c.Abatements.Apply(domain.CategorySecurities, raw, years, opts)
	if err != nil {
		return nil, err
	}
	breakdown.HoldingYears = in.Gain.HoldingYears

	flatBase, err := c.flatBase(raw, opts)
	if err != nil {
		return nil, err
	}

	res := &domain.SecuritiesGainResult{Abatements: breakdown}
	res.Regimes = c.Optimizer.Compare(RegimeBases{
		FlatBase:        flatBase,
		ProgressiveBase: breakdown.IncomeTax.AdjustedGain,
		SocialBase:      nonNegative(raw),
		OtherIncome:     in.OtherIncome,
		Household:       in.Household,
	})

	switch {
	case !raw.IsPositive():
		res.Status = domain.StatusLoss
	case res.Regimes.ChosenAmount.IsZero():
		res.Status = domain.StatusExempt
	default:
		res.Status = domain.StatusTaxable
	}
	return res, nil
}

// flatBase is the raw gain less the fixed abatement. It ignores the duration
// and enhanced stages, so the fixed amount is taken from the whole gain.
func (c *SecuritiesGainCalculator) flatBase(raw decimal.Decimal, opts domain.AbatementOptions) (decimal.Decimal, error) {
	base := nonNegative(raw)
	if !opts.Fixed {
		return base, nil
	}
	rules, err := c.Abatements.Tables.Abatement(domain.CategorySecurities)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Sub(decimal.Min(base, nonNegative(rules.FixedAmount))), nil
}

// FlatTaxOnGain is the flat tax on a bare gain.
func (c *SecuritiesGainCalculator) FlatTaxOnGain(rawGain decimal.Decimal) decimal.Decimal {
	return roundEuro(percentOf(nonNegative(rawGain), c.Optimizer.CapitalIncome.FlatTaxRate()))
}
