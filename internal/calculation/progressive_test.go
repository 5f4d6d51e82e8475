package calculation

import (
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketTax_KnownValues(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets

	tests := []struct {
		name   string
		income decimal.Decimal
		want   decimal.Decimal
	}{
		{"zero", d(0), d(0)},
		{"negative clamps to zero", d(-5000), d(0)},
		{"inside zero bracket", d(10000), d(0)},
		{"first boundary", d(11497), d(0)},
		{"second bracket", d(20000), ds("935.33")},
		{"third bracket", d(30000), ds("2165.48")},
		{"top bracket", d(400000), ds("156733.19")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, BracketTax(tt.income, brackets))
		})
	}
}

func TestBracketTax_MatchesCumulativeShortcut(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets
	for income := int64(0); income <= 400000; income += 997 {
		in := d(income)
		assert.Truef(t, BracketTax(in, brackets).Equal(CumulativeTax(in, brackets)),
			"income %d: walk %s, closed form %s", income, BracketTax(in, brackets), CumulativeTax(in, brackets))
	}
	// exactly on every boundary
	for _, b := range brackets {
		if b.Upper != nil {
			assert.True(t, BracketTax(*b.Upper, brackets).Equal(CumulativeTax(*b.Upper, brackets)))
		}
	}
}

func TestBracketSlices_SumToIncome(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets
	for _, income := range []int64{0, 1, 11497, 11498, 50000, 180294, 1000000} {
		slices := BracketSlices(d(income), brackets)
		require.Len(t, slices, len(brackets))
		var sum, tax decimal.Decimal
		for _, s := range slices {
			assert.False(t, s.TaxableAmount.IsNegative())
			sum = sum.Add(s.TaxableAmount)
			tax = tax.Add(s.Tax)
		}
		assert.True(t, sum.Equal(d(income)), "income %d: slices sum to %s", income, sum)
		assert.True(t, tax.Equal(BracketTax(d(income), brackets)))
	}
}

func TestMarginalRate_BoundaryBelongsToLowerBracket(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets

	assert.True(t, MarginalRate(d(0), brackets).Equal(d(0)))
	assert.True(t, MarginalRate(d(29315), brackets).Equal(d(11)))
	assert.True(t, MarginalRate(ds("29315.01"), brackets).Equal(d(30)))
	assert.True(t, MarginalRate(d(180294), brackets).Equal(d(41)))
	assert.True(t, MarginalRate(d(10000000), brackets).Equal(d(45)))
}

func TestProgressiveTax_MonotonicInIncome(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets
	for _, shares := range []decimal.Decimal{d(1), ds("1.5"), d(2), ds("2.5"), d(3), d(5)} {
		prev := decimal.Zero
		for income := int64(0); income <= 600000; income += 1234 {
			tax := ProgressiveTax(d(income), shares, brackets)
			require.Truef(t, tax.GreaterThanOrEqual(prev), "shares %s income %d: %s < %s", shares, income, tax, prev)
			prev = tax
		}
	}
}

func TestProgressiveTax_SharesDivideIncome(t *testing.T) {
	brackets := tables2025(t).IncomeTax.Brackets

	// two shares on 60000 is twice the single-share tax on 30000
	assertDecimal(t, ds("4330.96"), ProgressiveTax(d(60000), d(2), brackets))
	assert.True(t, ProgressiveTax(d(60000), decimal.Zero, brackets).IsZero())
	assert.True(t, ProgressiveTax(d(-1), d(1), brackets).IsZero())
}

func TestCumulativeTax_CustomSchedule(t *testing.T) {
	top := d(100)
	brackets := []domain.TaxBracket{
		{Lower: d(0), Upper: &top, Rate: d(10)},
		{Lower: d(100), Rate: d(50)},
	}
	assert.True(t, CumulativeTax(d(100), brackets).Equal(d(10)))
	assert.True(t, CumulativeTax(d(150), brackets).Equal(d(35)))
	assert.True(t, BracketTax(d(150), brackets).Equal(d(35)))
}
