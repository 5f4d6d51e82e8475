package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// ShareBreakdown itemizes where a household's shares come from.
type ShareBreakdown struct {
	Base         decimal.Decimal
	Dependents   decimal.Decimal
	Disability   decimal.Decimal
	SingleParent decimal.Decimal
}

// Total is the household share count.
func (s ShareBreakdown) Total() decimal.Decimal {
	return s.Base.Add(s.Dependents).Add(s.Disability).Add(s.SingleParent)
}

// HouseholdShares derives the share count: 1 or 2 base shares, 0.5 for each
// of the first two dependents, 1 for each further dependent, 0.5 for a
// disability, 0.5 for a single parent with at least one dependent.
func HouseholdShares(h domain.HouseholdProfile) ShareBreakdown {
	s := ShareBreakdown{Base: decimal.NewFromInt(1)}
	if h.IsCouple() {
		s.Base = decimal.NewFromInt(2)
	}
	for i := 1; i <= h.DependentCount; i++ {
		if i <= 2 {
			s.Dependents = s.Dependents.Add(half)
		} else {
			s.Dependents = s.Dependents.Add(decimal.NewFromInt(1))
		}
	}
	if h.HasDisability {
		s.Disability = half
	}
	if h.SingleParent && !h.IsCouple() && h.DependentCount > 0 {
		s.SingleParent = half
	}
	return s
}

// BenefitCap is the largest tax saving the extra shares may produce. Each
// half-share above the base is capped at the half-share amount; for a single
// parent the extra half-share and the first dependent's half-share are
// capped together at the single-parent amount.
func BenefitCap(s ShareBreakdown, rules domain.QuotientRules) decimal.Decimal {
	halfShares := s.Dependents.Add(s.Disability).Mul(decimal.NewFromInt(2))
	if s.SingleParent.IsPositive() {
		return rules.SingleParentCap.Add(halfShares.Sub(decimal.NewFromInt(1)).Mul(rules.HalfShareCap))
	}
	return halfShares.Mul(rules.HalfShareCap)
}

// QuotientTax computes the progressive tax of a household with the family
// quotient and its benefit cap: max(tax at all shares, tax at base shares − cap).
func QuotientTax(income decimal.Decimal, h domain.HouseholdProfile, rules domain.IncomeTaxRules) domain.QuotientResult {
	shares := HouseholdShares(h)
	res := domain.QuotientResult{
		Shares:     shares.Total(),
		BaseShares: shares.Base,
		BenefitCap: BenefitCap(shares, rules.Quotient),
	}
	res.TaxAtAllShares = ProgressiveTax(income, res.Shares, rules.Brackets)
	res.TaxAtBaseShares = ProgressiveTax(income, res.BaseShares, rules.Brackets)
	res.RawBenefit = res.TaxAtBaseShares.Sub(res.TaxAtAllShares)

	res.Tax = res.TaxAtAllShares
	if res.RawBenefit.GreaterThan(res.BenefitCap) {
		res.Capped = true
		res.Tax = res.TaxAtBaseShares.Sub(res.BenefitCap)
	}
	return res
}
