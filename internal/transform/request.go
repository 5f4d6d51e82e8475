package transform

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
)

// SetTaxYear runs the request against another rate table.
type SetTaxYear struct {
	Year int
}

func (sy *SetTaxYear) Name() string { return "set_tax_year" }

func (sy *SetTaxYear) Description() string {
	if sy.Year == 0 {
		return "Use the latest tax year"
	}
	return fmt.Sprintf("Use the %d rate table", sy.Year)
}

func (sy *SetTaxYear) Validate(base *domain.SimulationRequest) error {
	if sy.Year < 0 {
		return &TransformError{TransformName: sy.Name(), Operation: "validate", Reason: "year cannot be negative"}
	}
	return nil
}

func (sy *SetTaxYear) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	req.TaxYear = sy.Year
	return req, nil
}

// SetHoldingYears changes how long the asset was held before the sale.
type SetHoldingYears struct {
	Years int
}

func (sh *SetHoldingYears) Name() string { return "set_holding_years" }

func (sh *SetHoldingYears) Description() string {
	return fmt.Sprintf("Sell after %d years", sh.Years)
}

func (sh *SetHoldingYears) Validate(base *domain.SimulationRequest) error {
	if sh.Years < 0 {
		return &TransformError{TransformName: sh.Name(), Operation: "validate", Reason: "years cannot be negative"}
	}
	if base.RealEstateGain == nil && base.SecuritiesGain == nil && base.Donation == nil {
		return &TransformError{TransformName: sh.Name(), Operation: "validate", Reason: fmt.Sprintf("a %s request has no holding period", base.Simulator)}
	}
	return nil
}

func (sh *SetHoldingYears) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	switch {
	case req.RealEstateGain != nil:
		req.RealEstateGain.Gain.HoldingYears = sh.Years
	case req.SecuritiesGain != nil:
		req.SecuritiesGain.Gain.HoldingYears = sh.Years
	case req.Donation != nil:
		req.Donation.HoldingYears = sh.Years
	}
	return req, nil
}
