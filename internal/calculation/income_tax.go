package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeTaxCalculator computes the household income tax of one tax year
type IncomeTaxCalculator struct {
	Rules domain.IncomeTaxRules
}

// NewIncomeTaxCalculator creates an income tax calculator from a rate table
func NewIncomeTaxCalculator(rt *domain.RateTables) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Rules: rt.IncomeTax}
}

// SalaryDeduction is the flat professional-expense deduction: a percentage of
// the salary bounded by the minimum and maximum, never more than the salary.
func (c *IncomeTaxCalculator) SalaryDeduction(salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	rules := c.Rules.SalaryDeduction
	deduction := percentOf(salary, rules.Rate)
	if deduction.LessThan(rules.Minimum) {
		deduction = rules.Minimum
	}
	if rules.Maximum.IsPositive() && deduction.GreaterThan(rules.Maximum) {
		deduction = rules.Maximum
	}
	return roundEuro(decimal.Min(deduction, salary))
}

// Decote returns the reduction granted on small tax amounts, never more than the tax itself.
func (c *IncomeTaxCalculator) Decote(tax decimal.Decimal, h domain.HouseholdProfile) decimal.Decimal {
	ceiling := c.Rules.Decote.SingleCeiling
	if h.IsCouple() {
		ceiling = c.Rules.Decote.CoupleCeiling
	}
	decote := ceiling.Sub(percentOf(tax, c.Rules.Decote.Rate))
	if !decote.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(decote, tax)
}

// HighIncomeSurcharge computes the CEHR on the reference income.
func (c *IncomeTaxCalculator) HighIncomeSurcharge(referenceIncome decimal.Decimal, h domain.HouseholdProfile) decimal.Decimal {
	schedule := c.Rules.HighIncomeSurcharge.Single
	if h.IsCouple() {
		schedule = c.Rules.HighIncomeSurcharge.Couple
	}
	return BracketTax(referenceIncome, schedule)
}

// Calculate runs the full income tax pipeline: salary deduction, family
// quotient with its cap, decote, then the high income surcharge.
func (c *IncomeTaxCalculator) Calculate(in domain.IncomeTaxInput) (*domain.IncomeTaxResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	res := &domain.IncomeTaxResult{
		SalaryDeduction: c.SalaryDeduction(in.SalaryIncome),
	}
	net := in.SalaryIncome.Sub(res.SalaryDeduction).Add(in.OtherIncome).Sub(in.DeductibleCharges)
	res.NetTaxableIncome = nonNegative(net)

	shares := HouseholdShares(in.Household).Total()
	res.IncomePerShare = res.NetTaxableIncome.Div(shares)
	res.Brackets = BracketSlices(res.IncomePerShare, c.Rules.Brackets)
	res.MarginalRatePercent = MarginalRate(res.IncomePerShare, c.Rules.Brackets)
	res.Quotient = QuotientTax(res.NetTaxableIncome, in.Household, c.Rules)

	if !res.NetTaxableIncome.IsPositive() {
		res.Status = domain.StatusNoTaxDue
		res.MarginalRatePercent = decimal.Zero
		return res, nil
	}

	gross := roundEuro(res.Quotient.Tax)
	res.Decote = roundEuro(c.Decote(gross, in.Household))
	res.TaxAfterDecote = gross.Sub(res.Decote)
	res.HighIncomeSurcharge = roundEuro(c.HighIncomeSurcharge(res.NetTaxableIncome, in.Household))
	res.TotalTax = roundEuro(res.TaxAfterDecote.Add(res.HighIncomeSurcharge))
	res.AverageRatePercent = res.TotalTax.Div(res.NetTaxableIncome).Mul(hundred).Round(2)

	res.Status = domain.StatusTaxable
	if res.TotalTax.IsZero() {
		res.Status = domain.StatusNoTaxDue
	}
	return res, nil
}
