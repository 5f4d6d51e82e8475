package domain

import (
	"github.com/shopspring/decimal"
)

// OwnershipSplit divides a full-ownership value into usufruct and bare ownership.
// UsufructValue + BareValue == FullValue exactly.
type OwnershipSplit struct {
	FullValue       decimal.Decimal `json:"full_value"`
	DonorAge        int             `json:"donor_age"`
	UsufructPercent decimal.Decimal `json:"usufruct_percent"`
	BarePercent     decimal.Decimal `json:"bare_percent"`
	UsufructValue   decimal.Decimal `json:"usufruct_value"`
	BareValue       decimal.Decimal `json:"bare_value"`
}

// DonationInput is the donation-then-sale form.
type DonationInput struct {
	Category         string          `yaml:"category" json:"category"`
	FullValue        decimal.Decimal `yaml:"full_value" json:"full_value"`
	SalePrice        decimal.Decimal `yaml:"sale_price" json:"sale_price"`
	AcquisitionValue decimal.Decimal `yaml:"acquisition_value" json:"acquisition_value"`
	HoldingYears     int             `yaml:"holding_years" json:"holding_years"`
	// DonorAge is the age of the older donor.
	DonorAge      int  `yaml:"donor_age" json:"donor_age"`
	Donors        int  `yaml:"donors" json:"donors"`
	Children      int  `yaml:"children" json:"children"`
	BareOwnership bool `yaml:"bare_ownership" json:"bare_ownership"`
}

// Validate checks the donation form.
func (in DonationInput) Validate() error {
	switch in.Category {
	case CategoryRealEstate, CategorySecurities:
	case "":
		return NewValidationError("category", "is required")
	default:
		return NewValidationError("category", "must be '%s' or '%s', got %q", CategoryRealEstate, CategorySecurities, in.Category)
	}
	if !in.FullValue.IsPositive() {
		return NewValidationError("full_value", "must be positive")
	}
	if in.SalePrice.IsNegative() {
		return NewValidationError("sale_price", "cannot be negative")
	}
	if in.AcquisitionValue.IsNegative() {
		return NewValidationError("acquisition_value", "cannot be negative")
	}
	if in.HoldingYears < 0 {
		return NewValidationError("holding_years", "cannot be negative, got %d", in.HoldingYears)
	}
	if in.DonorAge < 0 || in.DonorAge > 130 {
		return NewValidationError("donor_age", "must be between 0 and 130, got %d", in.DonorAge)
	}
	if in.Donors < 1 || in.Donors > 2 {
		return NewValidationError("donors", "must be 1 or 2, got %d", in.Donors)
	}
	if in.Children < 1 {
		return NewValidationError("children", "must be at least 1, got %d", in.Children)
	}
	return nil
}

// DonationRoute names the compared ways of passing on an asset.
type DonationRoute string

const (
	RouteDirectSale       DonationRoute = "direct_sale"
	RouteDonationThenSale DonationRoute = "donation_then_sale"
)

// DonationResult compares selling directly with donating first.
type DonationResult struct {
	Split             OwnershipSplit  `json:"split"`
	DonatedValue      decimal.Decimal `json:"donated_value"`
	TaxablePerPair    decimal.Decimal `json:"taxable_per_pair"`
	GiftTaxPerPair    decimal.Decimal `json:"gift_tax_per_pair"`
	GiftTaxTotal      decimal.Decimal `json:"gift_tax_total"`
	DirectSaleGain    decimal.Decimal `json:"direct_sale_gain"`
	DirectSaleTax     decimal.Decimal `json:"direct_sale_tax"`
	BareOwnersGain    decimal.Decimal `json:"bare_owners_gain"`
	UsufructuaryGain  decimal.Decimal `json:"usufructuary_gain"`
	PostDonationTax   decimal.Decimal `json:"post_donation_tax"`
	DonationRouteCost decimal.Decimal `json:"donation_route_cost"`
	Saving            decimal.Decimal `json:"saving"`
	Recommended       DonationRoute   `json:"recommended"`
}
