package compare

import (
	"context"
	"fmt"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/shopspring/decimal"
)

// CompareEngine runs the freelance simulator and arranges its statuses
// as a base-versus-alternatives comparison.
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseStatus domain.FreelanceStatus // defaults to micro
	TaxYear    int                    // 0 selects the latest rate table
	Source     string                 // input file, echoed in reports
}

// Compare simulates every status for the input and compares them with the base status.
func (ce *CompareEngine) Compare(ctx context.Context, in domain.FreelanceInput, options CompareOptions) (*ComparisonSet, error) {
	base := options.BaseStatus
	if base == "" {
		base = domain.StatusMicro
	}

	out, err := ce.CalcEngine.Run(ctx, domain.SimulationRequest{
		Simulator: domain.KindFreelance,
		TaxYear:   options.TaxYear,
		Freelance: &in,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to simulate statuses: %w", err)
	}
	return ce.FromResult(out.TaxYear, out.Freelance, base, options.Source)
}

// FromResult builds a comparison set from an existing freelance result.
func (ce *CompareEngine) FromResult(taxYear int, res *domain.FreelanceResult, base domain.FreelanceStatus, source string) (*ComparisonSet, error) {
	if res == nil {
		return nil, fmt.Errorf("freelance result cannot be nil")
	}
	baseOutcome, ok := res.Outcome(base)
	if !ok {
		return nil, domain.NewValidationError("base_status", "unknown status %q", base)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseOutcome, res.Turnover)

	alternatives := []ComparisonResult{}
	for _, o := range res.Outcomes {
		if o.Status == base {
			continue
		}
		alt := ce.MetricsCalculator.CalculateMetrics(o, res.Turnover)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		Activity:           res.Activity,
		Turnover:           res.Turnover,
		TaxYear:            taxYear,
		BaseStatus:         base,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		Best:               res.Best,
		Source:             source,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// MetricsCalculator extracts key metrics from status outcomes
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one status.
func (mc *MetricsCalculator) CalculateMetrics(o domain.StatusOutcome, turnover decimal.Decimal) ComparisonResult {
	result := ComparisonResult{
		Status:       o.Status,
		Eligible:     o.Eligible,
		Reason:       o.Reason,
		Outcome:      &o,
		NetIncome:    o.NetIncome,
		TotalCharges: o.TotalCharges,
	}
	if turnover.IsPositive() {
		result.ChargeRatePercent = o.TotalCharges.Div(turnover).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return result
}

// CalculateComparison computes the deltas between a status and the base.
func (mc *MetricsCalculator) CalculateComparison(status, base ComparisonResult) ComparisonResult {
	status.NetDiffFromBase = status.NetIncome.Sub(base.NetIncome)
	if !base.NetIncome.IsZero() {
		status.NetPctFromBase = status.NetDiffFromBase.
			Div(base.NetIncome.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	status.ChargesDiffFromBase = status.TotalCharges.Sub(base.TotalCharges)
	return status
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil {
		return recommendations
	}

	if !compSet.BaseResult.Eligible {
		recommendations = append(recommendations,
			fmt.Sprintf("%s is not available: %s", compSet.BaseStatus, compSet.BaseResult.Reason))
	}

	if best, ok := compSet.Find(compSet.Best); ok && compSet.Best != compSet.BaseStatus {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Net Income: %s leaves %s more than %s",
				best.Status, output.FormatEuro(best.NetDiffFromBase), compSet.BaseStatus))
	} else if ok {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Net Income: %s, the base status, is the most favorable", best.Status))
	}

	var lowest *ComparisonResult
	for _, r := range compSet.All() {
		if !r.Eligible {
			continue
		}
		if lowest == nil || r.TotalCharges.LessThan(lowest.TotalCharges) {
			lowest = &r
		}
	}
	if lowest != nil && lowest.Status != compSet.Best {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Charges: %s (%s of turnover)", lowest.Status, output.FormatPercent(lowest.ChargeRatePercent)))
	}

	return recommendations
}
