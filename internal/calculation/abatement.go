package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Abatement stage names as reported in AbatementStage.Name.
const (
	StageDuration = "duration"
	StageEnhanced = "enhanced"
	StageFixed    = "fixed"
)

// SchedulePercent returns the duration abatement reached after holdingYears,
// capped at 100.
func SchedulePercent(schedule domain.AbatementSchedule, holdingYears int) decimal.Decimal {
	var total decimal.Decimal
	switch schedule.Mode {
	case domain.ScheduleCumulative:
		for _, band := range schedule.Bands {
			last := holdingYears
			if band.ToYear != 0 && band.ToYear < last {
				last = band.ToYear
			}
			if years := last - band.FromYear + 1; years > 0 {
				total = total.Add(band.Percent.Mul(decimal.NewFromInt(int64(years))))
			}
		}
	case domain.ScheduleStep:
		for _, band := range schedule.Bands {
			if holdingYears >= band.FromYear {
				total = band.Percent
			}
		}
	}
	return decimal.Min(total, hundred)
}

// AbatementCalculator applies the abatement pipeline of one rate table
type AbatementCalculator struct {
	Tables *domain.RateTables
}

// NewAbatementCalculator creates an abatement calculator
func NewAbatementCalculator(rt *domain.RateTables) *AbatementCalculator {
	return &AbatementCalculator{Tables: rt}
}

// Apply runs the pipeline for a gain category. The income-tax treatment goes
// through duration, enhanced and fixed stages in that order, each acting on the
// base left by the previous one; the social treatment only has its own
// duration schedule. A gain that is not positive leaves nothing to tax.
func (c *AbatementCalculator) Apply(category string, rawGain decimal.Decimal, holdingYears int, opts domain.AbatementOptions) (domain.AbatementBreakdown, error) {
	rules, err := c.Tables.Abatement(category)
	if err != nil {
		return domain.AbatementBreakdown{}, err
	}
	if holdingYears < 0 {
		return domain.AbatementBreakdown{}, domain.NewValidationError("holding_years", "cannot be negative, got %d", holdingYears)
	}

	out := domain.AbatementBreakdown{
		Category:     category,
		RawGain:      rawGain,
		HoldingYears: holdingYears,
	}
	out.IncomeTax = applyStages(rawGain, SchedulePercent(rules.IncomeTax, holdingYears), rules, opts)
	out.SocialContributions = applyStages(rawGain, SchedulePercent(rules.Social, holdingYears), rules, domain.AbatementOptions{})
	return out, nil
}

func applyStages(rawGain, durationPercent decimal.Decimal, rules domain.AbatementRules, opts domain.AbatementOptions) domain.AbatementResult {
	if !rawGain.IsPositive() {
		return domain.AbatementResult{
			PercentApplied: decimal.Zero,
			AmountExempted: decimal.Zero,
			AdjustedGain:   decimal.Zero,
			Stages:         []domain.AbatementStage{},
		}
	}

	base := rawGain
	stages := make([]domain.AbatementStage, 0, 3)

	cut := percentOf(base, durationPercent)
	base = base.Sub(cut)
	stages = append(stages, domain.AbatementStage{Name: StageDuration, Percent: durationPercent, Amount: cut, BaseAfter: base})
	combined := durationPercent

	if opts.Enhanced && rules.EnhancedPercent.IsPositive() {
		cut = percentOf(base, rules.EnhancedPercent)
		base = base.Sub(cut)
		stages = append(stages, domain.AbatementStage{Name: StageEnhanced, Percent: rules.EnhancedPercent, Amount: cut, BaseAfter: base})
		// 1 − (1 − d)(1 − e)
		remaining := hundred.Sub(durationPercent).Mul(hundred.Sub(rules.EnhancedPercent)).Div(hundred)
		combined = hundred.Sub(remaining)
	}

	if opts.Fixed && rules.FixedAmount.IsPositive() {
		cut = decimal.Min(base, rules.FixedAmount)
		base = base.Sub(cut)
		stages = append(stages, domain.AbatementStage{Name: StageFixed, Amount: cut, BaseAfter: base})
	}

	return domain.AbatementResult{
		PercentApplied: decimal.Min(combined, hundred),
		AmountExempted: rawGain.Sub(base),
		AdjustedGain:   base,
		Stages:         stages,
	}
}
