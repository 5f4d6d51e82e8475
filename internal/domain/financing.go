package domain

import (
	"github.com/shopspring/decimal"
)

// Property types with distinct transaction-fee defaults.
const (
	PropertyExisting = "existing"
	PropertyNew      = "new"
)

// Fee line names, in display order.
const (
	FeeNotary       = "notary"
	FeeAgency       = "agency"
	FeeRegistration = "registration"
	FeeTransferTax  = "transfer_tax"
	FeeLandRegistry = "land_registry"
)

// FeeNames lists every transaction fee line.
var FeeNames = []string{FeeNotary, FeeAgency, FeeRegistration, FeeTransferTax, FeeLandRegistry}

// FeeRates holds percentage-of-price rates per fee line. In inputs a nil
// field keeps the table default.
type FeeRates struct {
	Notary       *decimal.Decimal `yaml:"notary,omitempty" json:"notary,omitempty"`
	Agency       *decimal.Decimal `yaml:"agency,omitempty" json:"agency,omitempty"`
	Registration *decimal.Decimal `yaml:"registration,omitempty" json:"registration,omitempty"`
	TransferTax  *decimal.Decimal `yaml:"transfer_tax,omitempty" json:"transfer_tax,omitempty"`
	LandRegistry *decimal.Decimal `yaml:"land_registry,omitempty" json:"land_registry,omitempty"`
}

// Rate returns the rate for a fee line, or nil when unset.
func (f FeeRates) Rate(name string) *decimal.Decimal {
	switch name {
	case FeeNotary:
		return f.Notary
	case FeeAgency:
		return f.Agency
	case FeeRegistration:
		return f.Registration
	case FeeTransferTax:
		return f.TransferTax
	case FeeLandRegistry:
		return f.LandRegistry
	}
	return nil
}

// FeeLine is one transaction fee.
type FeeLine struct {
	Name        string          `json:"name"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      decimal.Decimal `json:"amount"`
	Overridden  bool            `json:"overridden"`
}

// LoanSchedule is a fixed-rate amortizing loan.
// MonthlyPayment × months − Principal equals TotalInterest.
type LoanSchedule struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermYears         int             `json:"term_years"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
}

// Months is the number of monthly payments.
func (l LoanSchedule) Months() int {
	return l.TermYears * 12
}

// AmortizationYear summarizes one year of repayments.
type AmortizationYear struct {
	Year             int             `json:"year"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// AcquisitionInput is the real-estate purchase and financing form.
type AcquisitionInput struct {
	Price                decimal.Decimal `yaml:"price" json:"price"`
	PropertyType         string          `yaml:"property_type" json:"property_type"`
	DownPayment          decimal.Decimal `yaml:"down_payment" json:"down_payment"`
	FinanceFees          bool            `yaml:"finance_fees" json:"finance_fees"`
	AnnualRatePercent    decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears            int             `yaml:"term_years" json:"term_years"`
	InsuranceRatePercent decimal.Decimal `yaml:"insurance_rate_percent" json:"insurance_rate_percent"`
	MonthlyIncome        decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	Fees                 FeeRates        `yaml:"fees" json:"fees"`
}

// Validate checks the purchase form.
func (in AcquisitionInput) Validate() error {
	if !in.Price.IsPositive() {
		return NewValidationError("price", "must be positive")
	}
	switch in.PropertyType {
	case PropertyExisting, PropertyNew, "":
	default:
		return NewValidationError("property_type", "must be '%s' or '%s', got %q", PropertyExisting, PropertyNew, in.PropertyType)
	}
	if in.DownPayment.IsNegative() {
		return NewValidationError("down_payment", "cannot be negative")
	}
	if in.AnnualRatePercent.IsNegative() || in.AnnualRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("annual_rate_percent", "must be between 0 and 100")
	}
	if in.InsuranceRatePercent.IsNegative() || in.InsuranceRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("insurance_rate_percent", "must be between 0 and 100")
	}
	if in.TermYears < 0 {
		return NewValidationError("term_years", "cannot be negative, got %d", in.TermYears)
	}
	if in.MonthlyIncome.IsNegative() {
		return NewValidationError("monthly_income", "cannot be negative")
	}
	for _, name := range FeeNames {
		if r := in.Fees.Rate(name); r != nil && (r.IsNegative() || r.GreaterThan(decimal.NewFromInt(100))) {
			return NewValidationError("fees."+name, "must be between 0 and 100")
		}
	}
	return nil
}

// AcquisitionResult is the itemized purchase cost and loan.
type AcquisitionResult struct {
	Fees              []FeeLine          `json:"fees"`
	TotalFees         decimal.Decimal    `json:"total_fees"`
	TotalCost         decimal.Decimal    `json:"total_cost"`
	Loan              LoanSchedule       `json:"loan"`
	MonthlyInsurance  decimal.Decimal    `json:"monthly_insurance"`
	MonthlyTotal      decimal.Decimal    `json:"monthly_total"`
	TotalInsurance    decimal.Decimal    `json:"total_insurance"`
	DebtRatioPercent  decimal.Decimal    `json:"debt_ratio_percent"`
	WithinDebtCeiling bool               `json:"within_debt_ceiling"`
	Schedule          []AmortizationYear `json:"schedule"`
}
