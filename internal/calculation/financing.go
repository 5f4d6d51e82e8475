package calculation

import (
	"math"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// MonthlyPayment is the fixed-rate amortization payment
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1),  r = annual rate / 12
//
// rounded to the cent. A zero rate repays the principal in equal parts. A
// zero term is only valid with a zero principal.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, domain.NewValidationError("principal", "cannot be negative")
	}
	if months < 0 {
		return decimal.Zero, domain.NewValidationError("term_years", "cannot be negative")
	}
	if months == 0 {
		if principal.IsZero() {
			return decimal.Zero, nil
		}
		return decimal.Zero, domain.NewValidationError("term_years", "must be positive to borrow %s", principal.StringFixed(2))
	}
	if principal.IsZero() {
		return decimal.Zero, nil
	}

	n := decimal.NewFromInt(int64(months))
	if annualRatePercent.IsZero() {
		return roundCents(principal.Div(n)), nil
	}

	// power factor in float64, money back in decimal
	r := annualRatePercent.Div(hundred).Div(twelve)
	factor := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(months)))
	payment := principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	return roundCents(payment), nil
}

// NewLoanSchedule computes the payment and total interest of a loan.
// TotalInterest is payment × months − principal.
func NewLoanSchedule(principal, annualRatePercent decimal.Decimal, termYears int) (domain.LoanSchedule, error) {
	months := termYears * 12
	payment, err := MonthlyPayment(principal, annualRatePercent, months)
	if err != nil {
		return domain.LoanSchedule{}, err
	}
	interest := payment.Mul(decimal.NewFromInt(int64(months))).Sub(principal)
	return domain.LoanSchedule{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		MonthlyPayment:    payment,
		TotalInterest:     nonNegative(interest),
	}, nil
}

// AmortizationByYear summarizes the month-by-month repayment per year. The
// last payment absorbs rounding so the balance ends at zero.
func AmortizationByYear(loan domain.LoanSchedule) []domain.AmortizationYear {
	months := loan.Months()
	if months == 0 || loan.Principal.IsZero() {
		return []domain.AmortizationYear{}
	}
	r := loan.AnnualRatePercent.Div(hundred).Div(twelve)
	balance := loan.Principal
	years := make([]domain.AmortizationYear, 0, loan.TermYears)
	var current domain.AmortizationYear

	for m := 1; m <= months; m++ {
		interest := roundCents(balance.Mul(r))
		principalPart := loan.MonthlyPayment.Sub(interest)
		if m == months || principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		balance = balance.Sub(principalPart)

		current.InterestPaid = current.InterestPaid.Add(interest)
		current.PrincipalPaid = current.PrincipalPaid.Add(principalPart)
		if m%12 == 0 {
			current.Year = m / 12
			current.RemainingBalance = balance
			years = append(years, current)
			current = domain.AmortizationYear{}
		}
	}
	return years
}

// AcquisitionCalculator prices a property purchase and its financing
type AcquisitionCalculator struct {
	Tables *domain.RateTables
}

// NewAcquisitionCalculator creates an acquisition calculator
func NewAcquisitionCalculator(rt *domain.RateTables) *AcquisitionCalculator {
	return &AcquisitionCalculator{Tables: rt}
}

// FeeLines returns one line per transaction fee. Each rate comes from the
// override when set, else from the property type's default.
func (c *AcquisitionCalculator) FeeLines(price decimal.Decimal, propertyType string, overrides domain.FeeRates) ([]domain.FeeLine, error) {
	defaults, err := c.Tables.FeeDefaults(propertyType)
	if err != nil {
		return nil, err
	}
	return lo.Map(domain.FeeNames, func(name string, _ int) domain.FeeLine {
		line := domain.FeeLine{Name: name}
		if r := overrides.Rate(name); r != nil {
			line.RatePercent = *r
			line.Overridden = true
		} else if r := defaults.Rate(name); r != nil {
			line.RatePercent = *r
		}
		line.Amount = roundCents(percentOf(price, line.RatePercent))
		return line
	}), nil
}

// Calculate prices the purchase, sizes the loan and checks the debt ratio.
func (c *AcquisitionCalculator) Calculate(in domain.AcquisitionInput) (*domain.AcquisitionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	propertyType := in.PropertyType
	if propertyType == "" {
		propertyType = domain.PropertyExisting
	}

	fees, err := c.FeeLines(in.Price, propertyType, in.Fees)
	if err != nil {
		return nil, err
	}
	res := &domain.AcquisitionResult{Fees: fees}
	res.TotalFees = lo.Reduce(fees, func(sum decimal.Decimal, l domain.FeeLine, _ int) decimal.Decimal {
		return sum.Add(l.Amount)
	}, decimal.Zero)
	res.TotalCost = in.Price.Add(res.TotalFees)

	principal := in.Price
	if in.FinanceFees {
		principal = res.TotalCost
	}
	principal = nonNegative(principal.Sub(in.DownPayment))

	res.Loan, err = NewLoanSchedule(principal, in.AnnualRatePercent, in.TermYears)
	if err != nil {
		return nil, err
	}
	res.Schedule = AmortizationByYear(res.Loan)

	if in.TermYears > 0 {
		res.MonthlyInsurance = roundCents(percentOf(principal, in.InsuranceRatePercent).Div(twelve))
	}
	res.TotalInsurance = res.MonthlyInsurance.Mul(decimal.NewFromInt(int64(res.Loan.Months())))
	res.MonthlyTotal = res.Loan.MonthlyPayment.Add(res.MonthlyInsurance)

	if in.MonthlyIncome.IsPositive() {
		res.DebtRatioPercent = res.MonthlyTotal.Div(in.MonthlyIncome).Mul(hundred).Round(2)
		res.WithinDebtCeiling = res.DebtRatioPercent.LessThanOrEqual(c.Tables.Acquisition.MaxDebtRatio)
	} else {
		res.WithinDebtCeiling = res.MonthlyTotal.IsZero()
	}
	return res, nil
}
