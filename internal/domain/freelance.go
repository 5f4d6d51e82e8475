package domain

import (
	"github.com/shopspring/decimal"
)

// Freelance activity kinds, each with its own micro-regime parameters.
const (
	ActivityServicesBNC = "services_bnc"
	ActivityServicesBIC = "services_bic"
	ActivitySales       = "sales"
)

// FreelanceStatus is a legal form a self-employed person can choose.
type FreelanceStatus string

const (
	StatusMicro      FreelanceStatus = "micro"
	StatusIndividual FreelanceStatus = "individual"
	StatusCompany    FreelanceStatus = "company"
)

// FreelanceInput is the status comparison form.
type FreelanceInput struct {
	Activity string          `yaml:"activity" json:"activity"`
	Turnover decimal.Decimal `yaml:"turnover" json:"turnover"`
	Expenses decimal.Decimal `yaml:"expenses" json:"expenses"`
	// SalaryPercent is the share of company profit paid out as gross salary (0-100).
	SalaryPercent decimal.Decimal  `yaml:"salary_percent" json:"salary_percent"`
	Household     HouseholdProfile `yaml:"household" json:"household"`
	OtherIncome   decimal.Decimal  `yaml:"other_income" json:"other_income"`
}

// Validate checks the freelance form.
func (in FreelanceInput) Validate() error {
	switch in.Activity {
	case ActivityServicesBNC, ActivityServicesBIC, ActivitySales:
	case "":
		return NewValidationError("activity", "is required")
	}
	if in.Turnover.IsNegative() {
		return NewValidationError("turnover", "cannot be negative")
	}
	if in.Expenses.IsNegative() {
		return NewValidationError("expenses", "cannot be negative")
	}
	if in.SalaryPercent.IsNegative() || in.SalaryPercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("salary_percent", "must be between 0 and 100")
	}
	if in.OtherIncome.IsNegative() {
		return NewValidationError("other_income", "cannot be negative")
	}
	return in.Household.Validate()
}

// StatusOutcome is the yearly result of running the activity under one status.
type StatusOutcome struct {
	Status              FreelanceStatus `json:"status"`
	Eligible            bool            `json:"eligible"`
	Reason              string          `json:"reason,omitempty"`
	Profit              decimal.Decimal `json:"profit"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	SocialContributions decimal.Decimal `json:"social_contributions"`
	CorporateTax        decimal.Decimal `json:"corporate_tax"`
	DividendTax         decimal.Decimal `json:"dividend_tax"`
	IncomeTax           decimal.Decimal `json:"income_tax"`
	TotalCharges        decimal.Decimal `json:"total_charges"`
	NetIncome           decimal.Decimal `json:"net_income"`
}

// FreelanceResult lists every status; Best is the eligible one with the highest net income.
type FreelanceResult struct {
	Activity string          `json:"activity"`
	Turnover decimal.Decimal `json:"turnover"`
	Outcomes []StatusOutcome `json:"outcomes"`
	Best     FreelanceStatus `json:"best"`
}

// Outcome returns the outcome for status, if present.
func (r FreelanceResult) Outcome(status FreelanceStatus) (StatusOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Status == status {
			return o, true
		}
	}
	return StatusOutcome{}, false
}
