package calculation

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// DonationCalculator values gifts and compares donating before a sale with
// selling directly
type DonationCalculator struct {
	Tables     *domain.RateTables
	RealEstate *RealEstateGainCalculator
	Securities *SecuritiesGainCalculator
}

// NewDonationCalculator creates a donation calculator
func NewDonationCalculator(rt *domain.RateTables) *DonationCalculator {
	return &DonationCalculator{
		Tables:     rt,
		RealEstate: NewRealEstateGainCalculator(rt),
		Securities: NewSecuritiesGainCalculator(rt),
	}
}

// SplitOwnership divides a full-ownership value by the usufruct table. The
// bare value is the remainder, so both parts always sum to the full value.
func (c *DonationCalculator) SplitOwnership(fullValue decimal.Decimal, donorAge int) (domain.OwnershipSplit, error) {
	if fullValue.IsNegative() {
		return domain.OwnershipSplit{}, domain.NewValidationError("full_value", "cannot be negative")
	}
	if donorAge < 0 {
		return domain.OwnershipSplit{}, domain.NewValidationError("donor_age", "cannot be negative, got %d", donorAge)
	}
	pct, err := c.Tables.UsufructPercent(donorAge)
	if err != nil {
		return domain.OwnershipSplit{}, err
	}
	usufruct := percentOf(fullValue, pct)
	return domain.OwnershipSplit{
		FullValue:       fullValue,
		DonorAge:        donorAge,
		UsufructPercent: pct,
		BarePercent:     hundred.Sub(pct),
		UsufructValue:   usufruct,
		BareValue:       fullValue.Sub(usufruct),
	}, nil
}

// GiftTax is the direct-line gift tax on one donor-to-child transfer after
// the allowance.
func (c *DonationCalculator) GiftTax(transfer decimal.Decimal) decimal.Decimal {
	taxable := nonNegative(transfer.Sub(c.Tables.Gift.ChildAllowance))
	return roundEuro(BracketTax(taxable, c.Tables.Gift.Brackets))
}

func (c *DonationCalculator) gainTax(category string, gain decimal.Decimal, holdingYears int) (decimal.Decimal, error) {
	if !gain.IsPositive() {
		return decimal.Zero, nil
	}
	if category == domain.CategoryRealEstate {
		return c.RealEstate.TaxOnGain(gain, holdingYears)
	}
	return c.Securities.FlatTaxOnGain(gain), nil
}

// Calculate compares a direct sale with donating first. Each donor gives to
// each child independently, so the per-pair tax is multiplied by donors ×
// children. After a bare-ownership gift the children's basis is the bare
// value and the donor keeps the original basis on the usufruct share.
func (c *DonationCalculator) Calculate(in domain.DonationInput) (*domain.DonationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	split, err := c.SplitOwnership(in.FullValue, in.DonorAge)
	if err != nil {
		return nil, err
	}

	res := &domain.DonationResult{Split: split, DonatedValue: in.FullValue}
	if in.BareOwnership {
		res.DonatedValue = split.BareValue
	}

	pairs := decimal.NewFromInt(int64(in.Donors * in.Children))
	perPair := res.DonatedValue.Div(pairs)
	res.TaxablePerPair = nonNegative(perPair.Sub(c.Tables.Gift.ChildAllowance))
	res.GiftTaxPerPair = c.GiftTax(perPair)
	res.GiftTaxTotal = res.GiftTaxPerPair.Mul(pairs)

	res.DirectSaleGain = in.SalePrice.Sub(in.AcquisitionValue)
	if res.DirectSaleTax, err = c.gainTax(in.Category, res.DirectSaleGain, in.HoldingYears); err != nil {
		return nil, err
	}

	var bareTax, usufructTax decimal.Decimal
	if in.BareOwnership {
		res.BareOwnersGain = percentOf(in.SalePrice, split.BarePercent).Sub(split.BareValue)
		res.UsufructuaryGain = percentOf(in.SalePrice, split.UsufructPercent).Sub(percentOf(in.AcquisitionValue, split.UsufructPercent))
		if usufructTax, err = c.gainTax(in.Category, res.UsufructuaryGain, in.HoldingYears); err != nil {
			return nil, err
		}
	} else {
		res.BareOwnersGain = in.SalePrice.Sub(in.FullValue)
	}
	if bareTax, err = c.gainTax(in.Category, res.BareOwnersGain, 0); err != nil {
		return nil, err
	}
	res.PostDonationTax = bareTax.Add(usufructTax)
	res.DonationRouteCost = res.GiftTaxTotal.Add(res.PostDonationTax)
	res.Saving = res.DirectSaleTax.Sub(res.DonationRouteCost)

	res.Recommended = domain.RouteDirectSale
	if res.DonationRouteCost.LessThan(res.DirectSaleTax) {
		res.Recommended = domain.RouteDonationThenSale
	}
	return res, nil
}
