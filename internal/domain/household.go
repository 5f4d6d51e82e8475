package domain

import (
	"github.com/shopspring/decimal"
)

// MaritalStatus of the tax household. Civil partners file as married.
type MaritalStatus string

const (
	Single  MaritalStatus = "single"
	Married MaritalStatus = "married"
)

// ResultStatus labels degenerate outcomes so a zero is never ambiguous.
type ResultStatus string

const (
	StatusTaxable  ResultStatus = "taxable"
	StatusNoTaxDue ResultStatus = "no_tax_due"
	StatusLoss     ResultStatus = "loss"
	StatusExempt   ResultStatus = "exempt"
)

// HouseholdProfile drives the family quotient share count.
type HouseholdProfile struct {
	MaritalStatus  MaritalStatus `yaml:"marital_status" json:"marital_status"`
	DependentCount int           `yaml:"dependent_count" json:"dependent_count"`
	HasDisability  bool          `yaml:"has_disability" json:"has_disability"`
	// SingleParent grants the extra half-share of a parent raising children alone.
	SingleParent bool `yaml:"single_parent,omitempty" json:"single_parent,omitempty"`
}

// IsCouple reports whether the household files jointly.
func (h HouseholdProfile) IsCouple() bool {
	return h.MaritalStatus == Married
}

// Validate checks the profile fields.
func (h HouseholdProfile) Validate() error {
	switch h.MaritalStatus {
	case Single, Married:
	case "":
		return NewValidationError("marital_status", "is required")
	default:
		return NewValidationError("marital_status", "must be 'single' or 'married', got %q", h.MaritalStatus)
	}
	if h.DependentCount < 0 {
		return NewValidationError("dependent_count", "cannot be negative, got %d", h.DependentCount)
	}
	if h.SingleParent && h.IsCouple() {
		return NewValidationError("single_parent", "only applies to single filers")
	}
	return nil
}

// QuotientResult itemizes the family quotient mechanism and its benefit cap.
type QuotientResult struct {
	Shares          decimal.Decimal `json:"shares"`
	BaseShares      decimal.Decimal `json:"base_shares"`
	TaxAtBaseShares decimal.Decimal `json:"tax_at_base_shares"`
	TaxAtAllShares  decimal.Decimal `json:"tax_at_all_shares"`
	RawBenefit      decimal.Decimal `json:"raw_benefit"`
	BenefitCap      decimal.Decimal `json:"benefit_cap"`
	Capped          bool            `json:"capped"`
	Tax             decimal.Decimal `json:"tax"`
}

// IncomeTaxInput is the income-tax simulator form.
type IncomeTaxInput struct {
	Household         HouseholdProfile `yaml:"household" json:"household"`
	SalaryIncome      decimal.Decimal  `yaml:"salary_income" json:"salary_income"`
	OtherIncome       decimal.Decimal  `yaml:"other_income" json:"other_income"`
	DeductibleCharges decimal.Decimal  `yaml:"deductible_charges" json:"deductible_charges"`
}

// Validate checks the income-tax form.
func (in IncomeTaxInput) Validate() error {
	if err := in.Household.Validate(); err != nil {
		return err
	}
	if in.SalaryIncome.IsNegative() {
		return NewValidationError("salary_income", "cannot be negative")
	}
	if in.DeductibleCharges.IsNegative() {
		return NewValidationError("deductible_charges", "cannot be negative")
	}
	return nil
}

// IncomeTaxResult is the itemized income-tax estimate.
type IncomeTaxResult struct {
	Status              ResultStatus    `json:"status"`
	SalaryDeduction     decimal.Decimal `json:"salary_deduction"`
	NetTaxableIncome    decimal.Decimal `json:"net_taxable_income"`
	IncomePerShare      decimal.Decimal `json:"income_per_share"`
	Quotient            QuotientResult  `json:"quotient"`
	Decote              decimal.Decimal `json:"decote"`
	TaxAfterDecote      decimal.Decimal `json:"tax_after_decote"`
	HighIncomeSurcharge decimal.Decimal `json:"high_income_surcharge"` // CEHR
	TotalTax            decimal.Decimal `json:"total_tax"`
	MarginalRatePercent decimal.Decimal `json:"marginal_rate_percent"`
	AverageRatePercent  decimal.Decimal `json:"average_rate_percent"`
	Brackets            []BracketSlice  `json:"brackets"`
}
