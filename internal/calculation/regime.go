package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// RegimeBases are the amounts each regime taxes. The flat and progressive
// income-tax bases differ when abatements only apply to one of them; social
// contributions never go through the progressive scale.
type RegimeBases struct {
	FlatBase        decimal.Decimal
	ProgressiveBase decimal.Decimal
	SocialBase      decimal.Decimal
	OtherIncome     decimal.Decimal
	Household       domain.HouseholdProfile
}

// RegimeOptimizer compares the flat tax with progressive inclusion
type RegimeOptimizer struct {
	IncomeTax     domain.IncomeTaxRules
	CapitalIncome domain.CapitalIncomeRules
}

// NewRegimeOptimizer creates a regime optimizer
func NewRegimeOptimizer(rt *domain.RateTables) *RegimeOptimizer {
	return &RegimeOptimizer{IncomeTax: rt.IncomeTax, CapitalIncome: rt.CapitalIncome}
}

// Compare computes both liabilities and picks the smaller one. The flat
// regime is evaluated first and wins ties.
func (o *RegimeOptimizer) Compare(b RegimeBases) domain.RegimeComparison {
	social := roundEuro(percentOf(nonNegative(b.SocialBase), o.CapitalIncome.SocialRate))
	flatIT := roundEuro(percentOf(nonNegative(b.FlatBase), o.CapitalIncome.FlatIncomeRate))

	other := nonNegative(b.OtherIncome)
	with := QuotientTax(other.Add(nonNegative(b.ProgressiveBase)), b.Household, o.IncomeTax).Tax
	without := QuotientTax(other, b.Household, o.IncomeTax).Tax
	progIT := roundEuro(nonNegative(with.Sub(without)))

	cmp := domain.RegimeComparison{
		FlatIncomeTax:        flatIT,
		ProgressiveIncomeTax: progIT,
		SocialContributions:  social,
		FlatTaxAmount:        flatIT.Add(social),
		ProgressiveAmount:    progIT.Add(social),
	}
	if cmp.FlatTaxAmount.LessThanOrEqual(cmp.ProgressiveAmount) {
		cmp.ChosenRegime = domain.RegimeFlat
		cmp.ChosenAmount = cmp.FlatTaxAmount
		cmp.Saving = cmp.ProgressiveAmount.Sub(cmp.FlatTaxAmount)
	} else {
		cmp.ChosenRegime = domain.RegimeProgressive
		cmp.ChosenAmount = cmp.ProgressiveAmount
		cmp.Saving = cmp.FlatTaxAmount.Sub(cmp.ProgressiveAmount)
	}
	cmp.Status = domain.StatusTaxable
	if !cmp.ChosenAmount.IsPositive() {
		cmp.Status = domain.StatusNoTaxDue
	}
	return cmp
}

// Calculate runs the optimizer on a standalone form.
func (o *RegimeOptimizer) Calculate(in domain.RegimeInput) (*domain.RegimeComparison, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b := RegimeBases{
		FlatBase:        in.Gain,
		ProgressiveBase: in.Gain,
		SocialBase:      in.Gain,
		OtherIncome:     in.OtherIncome,
		Household:       in.Household,
	}
	if in.ProgressiveBase != nil {
		b.ProgressiveBase = *in.ProgressiveBase
	}
	if in.SocialBase != nil {
		b.SocialBase = *in.SocialBase
	}
	cmp := o.Compare(b)
	return &cmp, nil
}
