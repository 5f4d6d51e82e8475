package compare

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one legal status with its metrics and its deltas
// against the base status.
type ComparisonResult struct {
	Status   domain.FreelanceStatus `json:"status"`
	Eligible bool                   `json:"eligible"`
	Reason   string                 `json:"reason,omitempty"`
	Outcome  *domain.StatusOutcome  `json:"-"`

	// Key Metrics
	NetIncome         decimal.Decimal `json:"net_income"`
	TotalCharges      decimal.Decimal `json:"total_charges"`
	ChargeRatePercent decimal.Decimal `json:"charge_rate_percent"` // charges as a share of turnover

	// Comparison to Base
	NetDiffFromBase     decimal.Decimal `json:"net_diff_from_base"`
	NetPctFromBase      decimal.Decimal `json:"net_pct_from_base"`
	ChargesDiffFromBase decimal.Decimal `json:"charges_diff_from_base"`
}

// ComparisonSet is a base status compared with the alternatives.
type ComparisonSet struct {
	Activity           string                 `json:"activity"`
	Turnover           decimal.Decimal        `json:"turnover"`
	TaxYear            int                    `json:"tax_year"`
	BaseStatus         domain.FreelanceStatus `json:"base_status"`
	BaseResult         *ComparisonResult      `json:"base_result"`
	AlternativeResults []ComparisonResult     `json:"alternative_results"`
	Best               domain.FreelanceStatus `json:"best"`
	Recommendations    []string               `json:"recommendations"`
	Source             string                 `json:"source,omitempty"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// Find returns the result for status.
func (cs *ComparisonSet) Find(status domain.FreelanceStatus) (*ComparisonResult, bool) {
	if cs.BaseResult != nil && cs.BaseResult.Status == status {
		return cs.BaseResult, true
	}
	for i := range cs.AlternativeResults {
		if cs.AlternativeResults[i].Status == status {
			return &cs.AlternativeResults[i], true
		}
	}
	return nil, false
}
