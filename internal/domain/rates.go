package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RateTables holds every figure the calculators need for one tax year.
// A table is loaded once and never patched; a new year means a new table.
// All rates are percentages (0-100), amounts are euros.
type RateTables struct {
	Metadata        RateMetadata              `yaml:"metadata" json:"metadata"`
	IncomeTax       IncomeTaxRules            `yaml:"income_tax" json:"income_tax"`
	CapitalIncome   CapitalIncomeRules        `yaml:"capital_income" json:"capital_income"`
	Abatements      map[string]AbatementRules `yaml:"abatements" json:"abatements"`
	RealEstateGains RealEstateGainRules       `yaml:"real_estate_gains" json:"real_estate_gains"`
	Acquisition     AcquisitionRules          `yaml:"acquisition" json:"acquisition"`
	Usufruct        []UsufructBand            `yaml:"usufruct" json:"usufruct"`
	Gift            GiftRules                 `yaml:"gift" json:"gift"`
	CorporateTax    CorporateTaxRules         `yaml:"corporate_tax" json:"corporate_tax"`
	Freelance       FreelanceRules            `yaml:"freelance" json:"freelance"`
}

// RateMetadata identifies a table.
type RateMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	IncomeYear  int    `yaml:"income_year" json:"income_year"`
	Description string `yaml:"description" json:"description"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
}

// IncomeTaxRules covers the progressive scale and its adjustments.
type IncomeTaxRules struct {
	Brackets            []TaxBracket         `yaml:"brackets" json:"brackets"`
	Quotient            QuotientRules        `yaml:"quotient" json:"quotient"`
	Decote              DecoteRules          `yaml:"decote" json:"decote"`
	SalaryDeduction     SalaryDeductionRules `yaml:"salary_deduction" json:"salary_deduction"`
	HighIncomeSurcharge SurchargeRules       `yaml:"high_income_surcharge" json:"high_income_surcharge"`
}

// QuotientRules caps the benefit of each extra half-share.
type QuotientRules struct {
	HalfShareCap    decimal.Decimal `yaml:"half_share_cap" json:"half_share_cap"`
	SingleParentCap decimal.Decimal `yaml:"single_parent_cap" json:"single_parent_cap"`
}

// DecoteRules reduces small tax amounts: decote = ceiling − rate × tax.
type DecoteRules struct {
	SingleCeiling decimal.Decimal `yaml:"single_ceiling" json:"single_ceiling"`
	CoupleCeiling decimal.Decimal `yaml:"couple_ceiling" json:"couple_ceiling"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
}

// SalaryDeductionRules is the flat professional-expense deduction on salaries.
type SalaryDeductionRules struct {
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
	Minimum decimal.Decimal `yaml:"minimum" json:"minimum"`
	Maximum decimal.Decimal `yaml:"maximum" json:"maximum"`
}

// SurchargeRules holds the CEHR schedules by filing status.
type SurchargeRules struct {
	Single []TaxBracket `yaml:"single" json:"single"`
	Couple []TaxBracket `yaml:"couple" json:"couple"`
}

// CapitalIncomeRules holds the flat-tax components.
type CapitalIncomeRules struct {
	FlatIncomeRate decimal.Decimal `yaml:"flat_income_rate" json:"flat_income_rate"`
	SocialRate     decimal.Decimal `yaml:"social_rate" json:"social_rate"`
}

// FlatTaxRate is the combined flat rate.
func (c CapitalIncomeRules) FlatTaxRate() decimal.Decimal {
	return c.FlatIncomeRate.Add(c.SocialRate)
}

// Abatement schedule modes.
const (
	// ScheduleCumulative adds each band's percent once per holding year inside the band.
	ScheduleCumulative = "cumulative"
	// ScheduleStep applies the percent of the highest band reached.
	ScheduleStep = "step"
)

// AbatementBand covers holding years FromYear..ToYear inclusive. ToYear 0 means open-ended.
type AbatementBand struct {
	FromYear int             `yaml:"from_year" json:"from_year"`
	ToYear   int             `yaml:"to_year,omitempty" json:"to_year,omitempty"`
	Percent  decimal.Decimal `yaml:"percent" json:"percent"`
}

// AbatementSchedule is a year-banded duration abatement.
type AbatementSchedule struct {
	Mode  string          `yaml:"mode" json:"mode"`
	Bands []AbatementBand `yaml:"bands" json:"bands"`
}

// AbatementRules is the full abatement configuration of one gain category.
type AbatementRules struct {
	IncomeTax       AbatementSchedule `yaml:"income_tax" json:"income_tax"`
	Social          AbatementSchedule `yaml:"social" json:"social"`
	EnhancedPercent decimal.Decimal   `yaml:"enhanced_percent" json:"enhanced_percent"`
	FixedAmount     decimal.Decimal   `yaml:"fixed_amount" json:"fixed_amount"`
}

// SurtaxBand is one slice of the high real-estate gain surtax. Inside a band
// with a smoothing percent the surtax is rate × gain − (To − gain) × smoothing.
type SurtaxBand struct {
	From             decimal.Decimal  `yaml:"from" json:"from"`
	To               *decimal.Decimal `yaml:"to,omitempty" json:"to,omitempty"`
	Rate             decimal.Decimal  `yaml:"rate" json:"rate"`
	SmoothingPercent decimal.Decimal  `yaml:"smoothing_percent" json:"smoothing_percent"`
}

// RealEstateGainRules holds the real-estate gain rates and flat allowances.
type RealEstateGainRules struct {
	IncomeTaxRate              decimal.Decimal `yaml:"income_tax_rate" json:"income_tax_rate"`
	SocialRate                 decimal.Decimal `yaml:"social_rate" json:"social_rate"`
	FlatAcquisitionCostPercent decimal.Decimal `yaml:"flat_acquisition_cost_percent" json:"flat_acquisition_cost_percent"`
	FlatWorksPercent           decimal.Decimal `yaml:"flat_works_percent" json:"flat_works_percent"`
	FlatWorksMinYears          int             `yaml:"flat_works_min_years" json:"flat_works_min_years"`
	SurtaxThreshold            decimal.Decimal `yaml:"surtax_threshold" json:"surtax_threshold"`
	SurtaxBands                []SurtaxBand    `yaml:"surtax_bands" json:"surtax_bands"`
}

// AcquisitionRules holds transaction fee defaults by property type.
type AcquisitionRules struct {
	Fees         map[string]FeeRates `yaml:"fees" json:"fees"`
	MaxDebtRatio decimal.Decimal     `yaml:"max_debt_ratio" json:"max_debt_ratio"`
}

// UsufructBand gives the usufruct share for donors up to MaxAge. A nil MaxAge is open-ended.
type UsufructBand struct {
	MaxAge  *int            `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	Percent decimal.Decimal `yaml:"percent" json:"percent"`
}

// GiftRules is the direct-line gift tax.
type GiftRules struct {
	ChildAllowance decimal.Decimal `yaml:"child_allowance" json:"child_allowance"`
	Brackets       []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// CorporateTaxRules is the corporate income tax scale.
type CorporateTaxRules struct {
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
}

// MicroRules are the micro-enterprise parameters of one activity.
type MicroRules struct {
	SocialRate       decimal.Decimal `yaml:"social_rate" json:"social_rate"`
	AllowancePercent decimal.Decimal `yaml:"allowance_percent" json:"allowance_percent"`
	TurnoverCeiling  decimal.Decimal `yaml:"turnover_ceiling" json:"turnover_ceiling"`
}

// FreelanceRules configures the status comparison.
type FreelanceRules struct {
	Micro                map[string]MicroRules `yaml:"micro" json:"micro"`
	MinimumAllowance     decimal.Decimal       `yaml:"minimum_allowance" json:"minimum_allowance"`
	IndividualSocialRate decimal.Decimal       `yaml:"individual_social_rate" json:"individual_social_rate"`
	SalaryChargeRate     decimal.Decimal       `yaml:"salary_charge_rate" json:"salary_charge_rate"`
}

// Abatement returns the abatement rules of a gain category.
func (rt *RateTables) Abatement(category string) (AbatementRules, error) {
	rules, ok := rt.Abatements[category]
	if !ok {
		return AbatementRules{}, NewLookupError("abatement", category)
	}
	return rules, nil
}

// FeeDefaults returns the default fee rates of a property type.
func (rt *RateTables) FeeDefaults(propertyType string) (FeeRates, error) {
	fees, ok := rt.Acquisition.Fees[propertyType]
	if !ok {
		return FeeRates{}, NewLookupError("acquisition fee", propertyType)
	}
	return fees, nil
}

// Micro returns the micro-enterprise parameters of an activity.
func (rt *RateTables) Micro(activity string) (MicroRules, error) {
	rules, ok := rt.Freelance.Micro[activity]
	if !ok {
		return MicroRules{}, NewLookupError("micro-enterprise", activity)
	}
	return rules, nil
}

// UsufructPercent returns the usufruct share for a donor of the given age.
func (rt *RateTables) UsufructPercent(age int) (decimal.Decimal, error) {
	for _, band := range rt.Usufruct {
		if band.MaxAge == nil || age <= *band.MaxAge {
			return band.Percent, nil
		}
	}
	return decimal.Zero, NewLookupError("usufruct", age)
}

// Categories lists the abatement categories, sorted.
func (rt *RateTables) Categories() []string {
	out := make([]string, 0, len(rt.Abatements))
	for k := range rt.Abatements {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks the internal consistency of a table.
func (rt *RateTables) Validate() error {
	if rt.Metadata.TaxYear == 0 {
		return fmt.Errorf("metadata.tax_year is required")
	}
	schedules := []struct {
		name     string
		brackets []TaxBracket
	}{
		{"income_tax.brackets", rt.IncomeTax.Brackets},
		{"income_tax.high_income_surcharge.single", rt.IncomeTax.HighIncomeSurcharge.Single},
		{"income_tax.high_income_surcharge.couple", rt.IncomeTax.HighIncomeSurcharge.Couple},
		{"gift.brackets", rt.Gift.Brackets},
		{"corporate_tax.brackets", rt.CorporateTax.Brackets},
	}
	for _, s := range schedules {
		if err := ValidateBrackets(s.name, s.brackets); err != nil {
			return err
		}
	}

	percents := map[string]decimal.Decimal{
		"income_tax.decote.rate":                          rt.IncomeTax.Decote.Rate,
		"income_tax.salary_deduction.rate":                rt.IncomeTax.SalaryDeduction.Rate,
		"capital_income.flat_income_rate":                 rt.CapitalIncome.FlatIncomeRate,
		"capital_income.social_rate":                      rt.CapitalIncome.SocialRate,
		"real_estate_gains.income_tax_rate":               rt.RealEstateGains.IncomeTaxRate,
		"real_estate_gains.social_rate":                   rt.RealEstateGains.SocialRate,
		"real_estate_gains.flat_acquisition_cost_percent": rt.RealEstateGains.FlatAcquisitionCostPercent,
		"real_estate_gains.flat_works_percent":            rt.RealEstateGains.FlatWorksPercent,
		"acquisition.max_debt_ratio":                      rt.Acquisition.MaxDebtRatio,
		"freelance.individual_social_rate":                rt.Freelance.IndividualSocialRate,
		"freelance.salary_charge_rate":                    rt.Freelance.SalaryChargeRate,
	}
	for name, p := range percents {
		if err := checkPercent(name, p); err != nil {
			return err
		}
	}

	for cat, rules := range rt.Abatements {
		if err := rules.IncomeTax.validate("abatements." + cat + ".income_tax"); err != nil {
			return err
		}
		if err := rules.Social.validate("abatements." + cat + ".social"); err != nil {
			return err
		}
		if err := checkPercent("abatements."+cat+".enhanced_percent", rules.EnhancedPercent); err != nil {
			return err
		}
		if rules.FixedAmount.IsNegative() {
			return fmt.Errorf("abatements.%s.fixed_amount cannot be negative", cat)
		}
	}

	for ptype, fees := range rt.Acquisition.Fees {
		for _, name := range FeeNames {
			if r := fees.Rate(name); r != nil {
				if err := checkPercent("acquisition.fees."+ptype+"."+name, *r); err != nil {
					return err
				}
			}
		}
	}

	if err := validateUsufruct(rt.Usufruct); err != nil {
		return err
	}

	for act, m := range rt.Freelance.Micro {
		if err := checkPercent("freelance.micro."+act+".social_rate", m.SocialRate); err != nil {
			return err
		}
		if err := checkPercent("freelance.micro."+act+".allowance_percent", m.AllowancePercent); err != nil {
			return err
		}
	}

	prev := rt.RealEstateGains.SurtaxThreshold
	for i, b := range rt.RealEstateGains.SurtaxBands {
		if b.From.LessThan(prev) {
			return fmt.Errorf("real_estate_gains.surtax_bands[%d] is not ascending", i)
		}
		if b.To == nil && i != len(rt.RealEstateGains.SurtaxBands)-1 {
			return fmt.Errorf("real_estate_gains.surtax_bands[%d] is unbounded but not last", i)
		}
		if b.To != nil {
			prev = *b.To
		}
	}
	return nil
}

func (s AbatementSchedule) validate(name string) error {
	switch s.Mode {
	case ScheduleCumulative, ScheduleStep:
	case "":
		if len(s.Bands) > 0 {
			return fmt.Errorf("%s: mode is required when bands are set", name)
		}
	default:
		return fmt.Errorf("%s: unknown mode %q", name, s.Mode)
	}
	lastFrom := 0
	for i, b := range s.Bands {
		if b.FromYear < 0 || (b.ToYear != 0 && b.ToYear < b.FromYear) {
			return fmt.Errorf("%s: band %d has invalid years %d-%d", name, i, b.FromYear, b.ToYear)
		}
		if b.FromYear < lastFrom {
			return fmt.Errorf("%s: band %d is not ascending", name, i)
		}
		lastFrom = b.FromYear
		if err := checkPercent(fmt.Sprintf("%s band %d", name, i), b.Percent); err != nil {
			return err
		}
	}
	return nil
}

func validateUsufruct(bands []UsufructBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("usufruct: table is empty")
	}
	last := -1
	for i, b := range bands {
		if err := checkPercent(fmt.Sprintf("usufruct band %d", i), b.Percent); err != nil {
			return err
		}
		if b.MaxAge == nil {
			if i != len(bands)-1 {
				return fmt.Errorf("usufruct: band %d is open-ended but not last", i)
			}
			continue
		}
		if *b.MaxAge <= last {
			return fmt.Errorf("usufruct: band %d age %d is not ascending", i, *b.MaxAge)
		}
		last = *b.MaxAge
	}
	if bands[len(bands)-1].MaxAge != nil {
		return fmt.Errorf("usufruct: last band must be open-ended")
	}
	return nil
}

func checkPercent(name string, p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%s: %s outside 0-100", name, p)
	}
	return nil
}
