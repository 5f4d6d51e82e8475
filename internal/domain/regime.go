package domain

import (
	"github.com/shopspring/decimal"
)

// Regime names a way of taxing capital income.
type Regime string

const (
	RegimeFlat        Regime = "flat_tax"
	RegimeProgressive Regime = "progressive"
)

// RegimeInput feeds the regime optimizer. ProgressiveBase and SocialBase
// default to Gain when nil.
type RegimeInput struct {
	Gain            decimal.Decimal  `yaml:"gain" json:"gain"`
	ProgressiveBase *decimal.Decimal `yaml:"progressive_base,omitempty" json:"progressive_base,omitempty"`
	SocialBase      *decimal.Decimal `yaml:"social_base,omitempty" json:"social_base,omitempty"`
	OtherIncome     decimal.Decimal  `yaml:"other_income" json:"other_income"`
	Household       HouseholdProfile `yaml:"household" json:"household"`
}

// Validate checks the optimizer input.
func (in RegimeInput) Validate() error {
	if in.Gain.IsNegative() {
		return NewValidationError("gain", "cannot be negative")
	}
	if in.ProgressiveBase != nil && in.ProgressiveBase.IsNegative() {
		return NewValidationError("progressive_base", "cannot be negative")
	}
	if in.SocialBase != nil && in.SocialBase.IsNegative() {
		return NewValidationError("social_base", "cannot be negative")
	}
	return in.Household.Validate()
}

// RegimeComparison always reports both liabilities, never only the winner.
// ChosenAmount equals min(FlatTaxAmount, ProgressiveAmount); ties go to the flat regime.
// Status is no_tax_due when nothing is owed under the chosen regime.
type RegimeComparison struct {
	Status               ResultStatus    `json:"status"`
	FlatTaxAmount        decimal.Decimal `json:"flat_tax_amount"`
	ProgressiveAmount    decimal.Decimal `json:"progressive_amount"`
	ChosenRegime         Regime          `json:"chosen_regime"`
	ChosenAmount         decimal.Decimal `json:"chosen_amount"`
	FlatIncomeTax        decimal.Decimal `json:"flat_income_tax"`
	ProgressiveIncomeTax decimal.Decimal `json:"progressive_income_tax"`
	SocialContributions  decimal.Decimal `json:"social_contributions"`
	Saving               decimal.Decimal `json:"saving"`
}
