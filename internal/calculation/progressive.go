package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentOf returns amount × rate / 100.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// roundEuro rounds a liability to the nearest euro, halves away from zero.
func roundEuro(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// BracketTax walks a marginal schedule. Each bracket taxes only the slice of
// income inside its bounds; negative income is taxed as zero.
func BracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	var totalTax decimal.Decimal
	for _, s := range BracketSlices(income, brackets) {
		totalTax = totalTax.Add(s.Tax)
	}
	return totalTax
}

// BracketSlices splits income across every bracket of the schedule. The
// taxable amounts always sum to the (clamped) income.
func BracketSlices(income decimal.Decimal, brackets []domain.TaxBracket) []domain.BracketSlice {
	income = nonNegative(income)
	slices := make([]domain.BracketSlice, 0, len(brackets))
	for _, bracket := range brackets {
		slice := domain.BracketSlice{
			Lower:       bracket.Lower,
			Upper:       bracket.Upper,
			RatePercent: bracket.Rate,
		}
		if income.GreaterThan(bracket.Lower) {
			top := income
			if !bracket.Unbounded() {
				top = decimal.Min(income, *bracket.Upper)
			}
			slice.TaxableAmount = top.Sub(bracket.Lower)
			slice.Tax = percentOf(slice.TaxableAmount, bracket.Rate)
		}
		slices = append(slices, slice)
	}
	return slices
}

// CumulativeTax is the closed form of BracketTax: the full tax of every
// bracket below the one holding income, plus that bracket's rate on the remainder.
func CumulativeTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	var cumulative decimal.Decimal
	for _, bracket := range brackets {
		if bracket.Unbounded() || income.LessThanOrEqual(*bracket.Upper) {
			return cumulative.Add(percentOf(income.Sub(bracket.Lower), bracket.Rate))
		}
		cumulative = cumulative.Add(percentOf(bracket.Width(), bracket.Rate))
	}
	return cumulative
}

// MarginalRate returns the rate of the bracket holding income. A boundary
// value belongs to the lower bracket.
func MarginalRate(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	for _, bracket := range brackets {
		if bracket.Unbounded() || income.LessThanOrEqual(*bracket.Upper) {
			return bracket.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// ProgressiveTax applies the schedule to income per share and multiplies the
// result back by the share count.
func ProgressiveTax(income, shares decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !shares.IsPositive() {
		return decimal.Zero
	}
	income = nonNegative(income)
	perShare := income.Div(shares)
	return BracketTax(perShare, brackets).Mul(shares)
}
