package domain

import (
	"strings"
)

// SimulationKind selects a simulator.
type SimulationKind string

const (
	KindIncomeTax      SimulationKind = "income_tax"
	KindRealEstateGain SimulationKind = "real_estate_gain"
	KindSecuritiesGain SimulationKind = "securities_gain"
	KindRegime         SimulationKind = "regime"
	KindAcquisition    SimulationKind = "acquisition"
	KindDonation       SimulationKind = "donation"
	KindFreelance      SimulationKind = "freelance"
)

// AllKinds lists the simulators in display order.
var AllKinds = []SimulationKind{
	KindIncomeTax,
	KindRealEstateGain,
	KindSecuritiesGain,
	KindRegime,
	KindAcquisition,
	KindDonation,
	KindFreelance,
}

// ParseKind accepts snake or kebab case ("real-estate-gain").
func ParseKind(s string) (SimulationKind, error) {
	k := SimulationKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range AllKinds {
		if k == known {
			return k, nil
		}
	}
	return "", NewValidationError("simulator", "unknown simulator %q", s)
}

// SimulationRequest carries exactly one simulator input, selected by Simulator.
// TaxYear 0 means the latest loaded rate table.
type SimulationRequest struct {
	Simulator      SimulationKind       `yaml:"simulator" json:"simulator"`
	TaxYear        int                  `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	Label          string               `yaml:"label,omitempty" json:"label,omitempty"`
	IncomeTax      *IncomeTaxInput      `yaml:"income_tax,omitempty" json:"income_tax,omitempty"`
	RealEstateGain *RealEstateGainInput `yaml:"real_estate_gain,omitempty" json:"real_estate_gain,omitempty"`
	SecuritiesGain *SecuritiesGainInput `yaml:"securities_gain,omitempty" json:"securities_gain,omitempty"`
	Regime         *RegimeInput         `yaml:"regime,omitempty" json:"regime,omitempty"`
	Acquisition    *AcquisitionInput    `yaml:"acquisition,omitempty" json:"acquisition,omitempty"`
	Donation       *DonationInput       `yaml:"donation,omitempty" json:"donation,omitempty"`
	Freelance      *FreelanceInput      `yaml:"freelance,omitempty" json:"freelance,omitempty"`
}

// Validate checks that the input block matching Simulator is present and valid.
func (r SimulationRequest) Validate() error {
	kind, err := ParseKind(string(r.Simulator))
	if err != nil {
		return err
	}
	if r.TaxYear < 0 {
		return NewValidationError("tax_year", "cannot be negative, got %d", r.TaxYear)
	}
	missing := NewValidationError(string(kind), "input block is required for simulator %s", kind)
	switch kind {
	case KindIncomeTax:
		if r.IncomeTax == nil {
			return missing
		}
		return r.IncomeTax.Validate()
	case KindRealEstateGain:
		if r.RealEstateGain == nil {
			return missing
		}
		return r.RealEstateGain.Validate()
	case KindSecuritiesGain:
		if r.SecuritiesGain == nil {
			return missing
		}
		return r.SecuritiesGain.Validate()
	case KindRegime:
		if r.Regime == nil {
			return missing
		}
		return r.Regime.Validate()
	case KindAcquisition:
		if r.Acquisition == nil {
			return missing
		}
		return r.Acquisition.Validate()
	case KindDonation:
		if r.Donation == nil {
			return missing
		}
		return r.Donation.Validate()
	case KindFreelance:
		if r.Freelance == nil {
			return missing
		}
		return r.Freelance.Validate()
	}
	return nil
}

// SimulationOutcome holds the result of one simulator run; only the field
// matching Kind is set.
type SimulationOutcome struct {
	Kind           SimulationKind        `json:"kind"`
	TaxYear        int                   `json:"tax_year"`
	Label          string                `json:"label,omitempty"`
	IncomeTax      *IncomeTaxResult      `json:"income_tax,omitempty"`
	RealEstateGain *RealEstateGainResult `json:"real_estate_gain,omitempty"`
	SecuritiesGain *SecuritiesGainResult `json:"securities_gain,omitempty"`
	Regime         *RegimeComparison     `json:"regime,omitempty"`
	Acquisition    *AcquisitionResult    `json:"acquisition,omitempty"`
	Donation       *DonationResult       `json:"donation,omitempty"`
	Freelance      *FreelanceResult      `json:"freelance,omitempty"`
}
