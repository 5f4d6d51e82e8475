package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxBracket is one slice of a marginal schedule. A nil Upper means unbounded.
// Income equal to Upper belongs to this bracket, not the next one.
type TaxBracket struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"` // percent, 0-100
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.Upper == nil
}

// Width returns Upper-Lower, or zero for the unbounded bracket.
func (b TaxBracket) Width() decimal.Decimal {
	if b.Upper == nil {
		return decimal.Zero
	}
	return b.Upper.Sub(b.Lower)
}

// BracketSlice is the share of an income that falls inside one bracket.
type BracketSlice struct {
	Lower         decimal.Decimal  `json:"lower"`
	Upper         *decimal.Decimal `json:"upper,omitempty"`
	RatePercent   decimal.Decimal  `json:"rate_percent"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// ValidateBrackets checks that a schedule starts at zero, is contiguous,
// ascending and ends with an unbounded bracket.
func ValidateBrackets(name string, brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s: schedule is empty", name)
	}
	if !brackets[0].Lower.IsZero() {
		return fmt.Errorf("%s: first bracket must start at 0, got %s", name, brackets[0].Lower)
	}
	for i, b := range brackets {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%s: bracket %d rate %s outside 0-100", name, i, b.Rate)
		}
		last := i == len(brackets)-1
		if last {
			if !b.Unbounded() {
				return fmt.Errorf("%s: last bracket must be unbounded", name)
			}
			break
		}
		if b.Unbounded() {
			return fmt.Errorf("%s: bracket %d is unbounded but not last", name, i)
		}
		if !b.Upper.GreaterThan(b.Lower) {
			return fmt.Errorf("%s: bracket %d upper %s not above lower %s", name, i, b.Upper, b.Lower)
		}
		if !brackets[i+1].Lower.Equal(*b.Upper) {
			return fmt.Errorf("%s: gap or overlap between bracket %d and %d", name, i, i+1)
		}
	}
	return nil
}
