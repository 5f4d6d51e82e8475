package domain

import (
	"github.com/shopspring/decimal"
)

// Abatement categories known to the rate tables.
const (
	CategoryRealEstate = "real_estate"
	CategorySecurities = "securities"
)

// GainInput holds the values a gain is derived from.
type GainInput struct {
	AcquisitionValue decimal.Decimal `yaml:"acquisition_value" json:"acquisition_value"`
	DisposalValue    decimal.Decimal `yaml:"disposal_value" json:"disposal_value"`
	AcquisitionCosts decimal.Decimal `yaml:"acquisition_costs" json:"acquisition_costs"`
	DisposalCosts    decimal.Decimal `yaml:"disposal_costs" json:"disposal_costs"`
	HoldingYears     int             `yaml:"holding_years" json:"holding_years"`
	DeductibleWorks  decimal.Decimal `yaml:"deductible_works" json:"deductible_works"`
}

// RawGain is disposal minus acquisition, costs and works. It may be negative.
func (g GainInput) RawGain() decimal.Decimal {
	return g.DisposalValue.
		Sub(g.AcquisitionValue).
		Sub(g.AcquisitionCosts).
		Sub(g.DisposalCosts).
		Sub(g.DeductibleWorks)
}

// Validate rejects negative amounts and durations.
func (g GainInput) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"acquisition_value", g.AcquisitionValue},
		{"disposal_value", g.DisposalValue},
		{"acquisition_costs", g.AcquisitionCosts},
		{"disposal_costs", g.DisposalCosts},
		{"deductible_works", g.DeductibleWorks},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return NewValidationError(f.name, "cannot be negative")
		}
	}
	if g.HoldingYears < 0 {
		return NewValidationError("holding_years", "cannot be negative, got %d", g.HoldingYears)
	}
	return nil
}

// AbatementStage records the effect of one step of the abatement pipeline.
type AbatementStage struct {
	Name      string          `json:"name"`
	Percent   decimal.Decimal `json:"percent"`
	Amount    decimal.Decimal `json:"amount"`
	BaseAfter decimal.Decimal `json:"base_after"`
}

// AbatementResult is one treatment (income tax or social contributions) of a gain.
// PercentApplied combines the duration and enhanced stages; AdjustedGain is
// floored at zero once the fixed abatement is subtracted.
type AbatementResult struct {
	PercentApplied decimal.Decimal  `json:"percent_applied"`
	AmountExempted decimal.Decimal  `json:"amount_exempted"`
	AdjustedGain   decimal.Decimal  `json:"adjusted_gain"`
	Stages         []AbatementStage `json:"stages"`
}

// AbatementBreakdown reports both treatments, which diverge over time.
type AbatementBreakdown struct {
	Category            string          `json:"category"`
	RawGain             decimal.Decimal `json:"raw_gain"`
	HoldingYears        int             `json:"holding_years"`
	IncomeTax           AbatementResult `json:"income_tax"`
	SocialContributions AbatementResult `json:"social_contributions"`
}

// AbatementOptions selects the optional pipeline stages.
type AbatementOptions struct {
	Enhanced bool `yaml:"enhanced" json:"enhanced"`
	Fixed    bool `yaml:"fixed" json:"fixed"`
}

// RealEstateGainInput is the real-estate capital-gains simulator form.
type RealEstateGainInput struct {
	Gain                 GainInput        `yaml:"gain" json:"gain"`
	Abatements           AbatementOptions `yaml:"abatements" json:"abatements"`
	FlatAcquisitionCosts bool             `yaml:"flat_acquisition_costs" json:"flat_acquisition_costs"`
	FlatWorks            bool             `yaml:"flat_works" json:"flat_works"`
	MainResidence        bool             `yaml:"main_residence" json:"main_residence"`
}

// Validate checks the real-estate form.
func (in RealEstateGainInput) Validate() error {
	if in.Gain.AcquisitionValue.IsZero() {
		return NewValidationError("acquisition_value", "is required")
	}
	if in.Gain.DisposalValue.IsZero() {
		return NewValidationError("disposal_value", "is required")
	}
	return in.Gain.Validate()
}

// RealEstateGainResult is the itemized real-estate capital-gains estimate.
type RealEstateGainResult struct {
	Status              ResultStatus       `json:"status"`
	AcquisitionCosts    decimal.Decimal    `json:"acquisition_costs"`
	DeductibleWorks     decimal.Decimal    `json:"deductible_works"`
	Abatements          AbatementBreakdown `json:"abatements"`
	IncomeTax           decimal.Decimal    `json:"income_tax"`
	SocialContributions decimal.Decimal    `json:"social_contributions"`
	Surtax              decimal.Decimal    `json:"surtax"`
	TotalTax            decimal.Decimal    `json:"total_tax"`
	NetProceeds         decimal.Decimal    `json:"net_proceeds"`
}

// SecuritiesGainInput is the securities capital-gains simulator form.
type SecuritiesGainInput struct {
	Gain       GainInput        `yaml:"gain" json:"gain"`
	Abatements AbatementOptions `yaml:"abatements" json:"abatements"`
	// AbatementEligible enables the holding-duration schedule (shares bought before 2018).
	AbatementEligible bool             `yaml:"abatement_eligible" json:"abatement_eligible"`
	Household         HouseholdProfile `yaml:"household" json:"household"`
	OtherIncome       decimal.Decimal  `yaml:"other_income" json:"other_income"`
}

// Validate checks the securities form.
func (in SecuritiesGainInput) Validate() error {
	if err := in.Gain.Validate(); err != nil {
		return err
	}
	return in.Household.Validate()
}

// SecuritiesGainResult pairs the abatement detail with the regime comparison.
type SecuritiesGainResult struct {
	Status     ResultStatus       `json:"status"`
	Abatements AbatementBreakdown `json:"abatements"`
	Regimes    RegimeComparison   `json:"regimes"`
}
