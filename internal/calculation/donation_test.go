package calculation

import (
	"errors"
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationCalculator_SplitOwnership(t *testing.T) {
	calc := NewDonationCalculator(tables2025(t))

	tests := []struct {
		age          int
		full         string
		wantUsufruct string
	}{
		{19, "100000", "90"},
		{20, "100000", "90"},
		{21, "100000", "80"},
		{55, "600000", "50"},
		{71, "333333.33", "30"},
		{95, "100000", "10"},
	}
	for _, tt := range tests {
		split, err := calc.SplitOwnership(ds(tt.full), tt.age)
		require.NoError(t, err)
		assert.True(t, split.UsufructPercent.Equal(ds(tt.wantUsufruct)), "age %d: got %s", tt.age, split.UsufructPercent)
		assert.True(t, split.UsufructPercent.Add(split.BarePercent).Equal(d(100)))
		assert.True(t, split.UsufructValue.Add(split.BareValue).Equal(ds(tt.full)), "parts must sum to the full value")
	}

	_, err := calc.SplitOwnership(d(1000), -3)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDonationCalculator_GiftTax(t *testing.T) {
	calc := NewDonationCalculator(tables2025(t))

	assert.True(t, calc.GiftTax(d(75000)).IsZero(), "below the allowance")
	assert.True(t, calc.GiftTax(d(100000)).IsZero())
	assert.True(t, calc.GiftTax(d(150000)).Equal(d(8194)))
	assert.True(t, calc.GiftTax(d(300000)).Equal(d(38194)))
}

func TestDonationCalculator_BareOwnershipBeforeSale(t *testing.T) {
	calc := NewDonationCalculator(tables2025(t))

	res, err := calc.Calculate(domain.DonationInput{
		Category:         domain.CategoryRealEstate,
		FullValue:        d(600000),
		SalePrice:        d(700000),
		AcquisitionValue: d(200000),
		HoldingYears:     10,
		DonorAge:         55,
		Donors:           2,
		Children:         2,
		BareOwnership:    true,
	})
	require.NoError(t, err)

	assert.True(t, res.Split.BareValue.Equal(d(300000)))
	assert.True(t, res.DonatedValue.Equal(d(300000)))
	assert.True(t, res.TaxablePerPair.IsZero())
	assert.True(t, res.GiftTaxTotal.IsZero())

	assert.True(t, res.DirectSaleGain.Equal(d(500000)))
	assert.True(t, res.DirectSaleTax.Equal(d(166405)), "got %s", res.DirectSaleTax)
	assert.True(t, res.BareOwnersGain.Equal(d(50000)))
	assert.True(t, res.UsufructuaryGain.Equal(d(250000)))
	assert.True(t, res.PostDonationTax.Equal(d(18100+79703)), "got %s", res.PostDonationTax)
	assert.True(t, res.Saving.Equal(d(68602)))
	assert.Equal(t, domain.RouteDonationThenSale, res.Recommended)
}

func TestDonationCalculator_FullOwnershipGift(t *testing.T) {
	calc := NewDonationCalculator(tables2025(t))

	in := domain.DonationInput{
		Category:         domain.CategorySecurities,
		FullValue:        d(300000),
		SalePrice:        d(300000),
		AcquisitionValue: d(250000),
		HoldingYears:     4,
		DonorAge:         70,
		Donors:           1,
		Children:         1,
	}
	res, err := calc.Calculate(in)
	require.NoError(t, err)
	assert.True(t, res.DonatedValue.Equal(d(300000)))
	assert.True(t, res.TaxablePerPair.Equal(d(200000)))
	assert.True(t, res.GiftTaxTotal.Equal(d(38194)))
	assert.True(t, res.DirectSaleTax.Equal(d(15000)), "30%% flat tax on 50000")
	assert.True(t, res.BareOwnersGain.IsZero(), "children sell at the donated value")
	assert.True(t, res.Saving.IsNegative())
	assert.Equal(t, domain.RouteDirectSale, res.Recommended)

	// two donors give to two children, four allowances
	in.Donors, in.Children = 2, 2
	res, err = calc.Calculate(in)
	require.NoError(t, err)
	assert.True(t, res.GiftTaxPerPair.IsZero())
	assert.Equal(t, domain.RouteDonationThenSale, res.Recommended)
}

func TestDonationCalculator_Validation(t *testing.T) {
	calc := NewDonationCalculator(tables2025(t))
	valid := domain.DonationInput{
		Category: domain.CategoryRealEstate, FullValue: d(100000), DonorAge: 60, Donors: 1, Children: 1,
	}

	tests := []struct {
		name   string
		mutate func(*domain.DonationInput)
		field  string
	}{
		{"missing category", func(in *domain.DonationInput) { in.Category = "" }, "category"},
		{"three donors", func(in *domain.DonationInput) { in.Donors = 3 }, "donors"},
		{"no children", func(in *domain.DonationInput) { in.Children = 0 }, "children"},
		{"zero value", func(in *domain.DonationInput) { in.FullValue = d(0) }, "full_value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := calc.Calculate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
