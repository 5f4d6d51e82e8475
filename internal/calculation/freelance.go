package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// FreelanceCalculator compares the yearly net income of an activity under
// each legal status
type FreelanceCalculator struct {
	Tables    *domain.RateTables
	IncomeTax *IncomeTaxCalculator
}

// NewFreelanceCalculator creates a freelance status calculator
func NewFreelanceCalculator(rt *domain.RateTables) *FreelanceCalculator {
	return &FreelanceCalculator{Tables: rt, IncomeTax: NewIncomeTaxCalculator(rt)}
}

// householdDelta is the extra household income tax caused by adding income
// on top of the other income.
func (c *FreelanceCalculator) householdDelta(income decimal.Decimal, in domain.FreelanceInput) decimal.Decimal {
	rules := c.Tables.IncomeTax
	with := QuotientTax(in.OtherIncome.Add(nonNegative(income)), in.Household, rules).Tax
	without := QuotientTax(in.OtherIncome, in.Household, rules).Tax
	return roundEuro(nonNegative(with.Sub(without)))
}

func (c *FreelanceCalculator) micro(in domain.FreelanceInput, rules domain.MicroRules) domain.StatusOutcome {
	out := domain.StatusOutcome{Status: domain.StatusMicro, Eligible: true}
	if in.Turnover.GreaterThan(rules.TurnoverCeiling) {
		out.Eligible = false
		out.Reason = "turnover above the micro-enterprise ceiling of " + rules.TurnoverCeiling.StringFixed(0)
	}
	allowance := percentOf(in.Turnover, rules.AllowancePercent)
	if allowance.LessThan(c.Tables.Freelance.MinimumAllowance) {
		allowance = c.Tables.Freelance.MinimumAllowance
	}
	allowance = decimal.Min(allowance, in.Turnover)

	out.Profit = in.Turnover.Sub(in.Expenses)
	out.TaxableIncome = in.Turnover.Sub(allowance)
	out.SocialContributions = roundEuro(percentOf(in.Turnover, rules.SocialRate))
	out.IncomeTax = c.householdDelta(out.TaxableIncome, in)
	return finishOutcome(out, out.Profit)
}

func (c *FreelanceCalculator) individual(in domain.FreelanceInput) domain.StatusOutcome {
	out := domain.StatusOutcome{Status: domain.StatusIndividual, Eligible: true}
	out.Profit = in.Turnover.Sub(in.Expenses)
	out.SocialContributions = roundEuro(percentOf(nonNegative(out.Profit), c.Tables.Freelance.IndividualSocialRate))
	out.TaxableIncome = nonNegative(out.Profit.Sub(out.SocialContributions))
	out.IncomeTax = c.householdDelta(out.TaxableIncome, in)
	return finishOutcome(out, out.Profit)
}

// company pays SalaryPercent of the profit as salary cost (gross plus
// charges), pays corporate tax on the rest and distributes it as dividends.
func (c *FreelanceCalculator) company(in domain.FreelanceInput) domain.StatusOutcome {
	out := domain.StatusOutcome{Status: domain.StatusCompany, Eligible: true}
	out.Profit = in.Turnover.Sub(in.Expenses)
	profit := nonNegative(out.Profit)

	salaryCost := percentOf(profit, in.SalaryPercent)
	chargeRate := c.Tables.Freelance.SalaryChargeRate
	gross := roundEuro(salaryCost.Mul(hundred).Div(hundred.Add(chargeRate)))
	out.SocialContributions = roundEuro(salaryCost).Sub(gross)

	corporateProfit := profit.Sub(roundEuro(salaryCost))
	out.CorporateTax = roundEuro(BracketTax(corporateProfit, c.Tables.CorporateTax.Brackets))
	dividends := nonNegative(corporateProfit.Sub(out.CorporateTax))
	out.DividendTax = roundEuro(percentOf(dividends, c.Tables.CapitalIncome.FlatTaxRate()))

	out.TaxableIncome = gross.Sub(c.IncomeTax.SalaryDeduction(gross))
	out.IncomeTax = c.householdDelta(out.TaxableIncome, in)
	return finishOutcome(out, out.Profit)
}

func finishOutcome(out domain.StatusOutcome, profit decimal.Decimal) domain.StatusOutcome {
	out.TotalCharges = out.SocialContributions.Add(out.CorporateTax).Add(out.DividendTax).Add(out.IncomeTax)
	out.NetIncome = profit.Sub(out.TotalCharges)
	return out
}

// Calculate evaluates every status and reports the eligible one with the
// highest net income. Ties keep the simpler status (micro, then individual).
func (c *FreelanceCalculator) Calculate(in domain.FreelanceInput) (*domain.FreelanceResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rules, err := c.Tables.Micro(in.Activity)
	if err != nil {
		return nil, err
	}

	res := &domain.FreelanceResult{
		Activity: in.Activity,
		Turnover: in.Turnover,
		Outcomes: []domain.StatusOutcome{
			c.micro(in, rules),
			c.individual(in),
			c.company(in),
		},
	}

	var best *domain.StatusOutcome
	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		if !o.Eligible {
			continue
		}
		if best == nil || o.NetIncome.GreaterThan(best.NetIncome) {
			best = o
		}
	}
	if best != nil {
		res.Best = best.Status
	}
	return res, nil
}
