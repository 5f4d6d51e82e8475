package calculation

import (
	"errors"
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      string
		months    int
		want      string
	}{
		{"twenty years", 240000, "3.5", 240, "1391.90"},
		{"twenty-five years", 240000, "3.5", 300, "1201.50"},
		{"zero rate", 120000, "0", 240, "500"},
		{"zero principal", 0, "3.5", 240, "0"},
		{"zero principal zero term", 0, "3.5", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyPayment(d(tt.principal), ds(tt.rate), tt.months)
			require.NoError(t, err)
			assert.True(t, got.Equal(ds(tt.want)), "got %s", got)
		})
	}
}

func TestMonthlyPayment_Errors(t *testing.T) {
	_, err := MonthlyPayment(d(100000), ds("3.5"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "term_years")

	_, err = MonthlyPayment(d(-1), ds("3.5"), 120)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestNewLoanSchedule_InterestIdentity(t *testing.T) {
	for _, years := range []int{5, 10, 15, 20, 25} {
		for _, rate := range []string{"1.2", "3.5", "4.85"} {
			loan, err := NewLoanSchedule(d(240000), ds(rate), years)
			require.NoError(t, err)
			gap := loan.MonthlyPayment.Mul(d(int64(loan.Months()))).Sub(loan.Principal).Sub(loan.TotalInterest)
			assert.True(t, gap.Abs().LessThan(ds("0.01")), "%d years at %s%%: gap %s", years, rate, gap)
		}
	}

	loan, err := NewLoanSchedule(d(240000), ds("3.5"), 20)
	require.NoError(t, err)
	assert.True(t, loan.TotalInterest.Equal(ds("94056")))
}

func TestAmortizationByYear(t *testing.T) {
	loan, err := NewLoanSchedule(d(240000), ds("3.5"), 20)
	require.NoError(t, err)

	years := AmortizationByYear(loan)
	require.Len(t, years, 20)
	assert.Equal(t, 1, years[0].Year)
	assert.True(t, years[19].RemainingBalance.IsZero())

	repaid := decimal.Zero
	for i, y := range years {
		repaid = repaid.Add(y.PrincipalPaid)
		if i > 0 {
			assert.True(t, y.RemainingBalance.LessThan(years[i-1].RemainingBalance))
			assert.True(t, y.InterestPaid.LessThan(years[i-1].InterestPaid), "interest shrinks with the balance")
		}
	}
	assert.True(t, repaid.Equal(d(240000)))

	assert.Empty(t, AmortizationByYear(domain.LoanSchedule{}))
}

func TestAcquisitionCalculator_FeeLines(t *testing.T) {
	calc := NewAcquisitionCalculator(tables2025(t))

	lines, err := calc.FeeLines(d(300000), domain.PropertyExisting, domain.FeeRates{})
	require.NoError(t, err)
	require.Len(t, lines, len(domain.FeeNames))
	want := map[string]int64{
		domain.FeeNotary:       2397,
		domain.FeeAgency:       15000,
		domain.FeeRegistration: 13500,
		domain.FeeTransferTax:  3600,
		domain.FeeLandRegistry: 300,
	}
	for _, l := range lines {
		assert.True(t, l.Amount.Equal(d(want[l.Name])), "%s: got %s", l.Name, l.Amount)
		assert.False(t, l.Overridden)
	}

	lines, err = calc.FeeLines(d(300000), domain.PropertyExisting, domain.FeeRates{Agency: decimalPtr(d(0))})
	require.NoError(t, err)
	assert.Equal(t, domain.FeeAgency, lines[1].Name)
	assert.True(t, lines[1].Amount.IsZero())
	assert.True(t, lines[1].Overridden)

	_, err = calc.FeeLines(d(300000), "castle", domain.FeeRates{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLookup))
}

func TestAcquisitionCalculator_Calculate(t *testing.T) {
	calc := NewAcquisitionCalculator(tables2025(t))

	t.Run("financed fees over the debt ceiling", func(t *testing.T) {
		res, err := calc.Calculate(domain.AcquisitionInput{
			Price:                d(300000),
			DownPayment:          d(60000),
			FinanceFees:          true,
			AnnualRatePercent:    ds("3.5"),
			TermYears:            25,
			InsuranceRatePercent: ds("0.3"),
			MonthlyIncome:        d(4000),
		})
		require.NoError(t, err)
		assert.True(t, res.TotalFees.Equal(d(34797)))
		assert.True(t, res.TotalCost.Equal(d(334797)))
		assert.True(t, res.Loan.Principal.Equal(d(274797)))
		assert.True(t, res.Loan.MonthlyPayment.Equal(ds("1375.70")), "got %s", res.Loan.MonthlyPayment)
		assert.True(t, res.MonthlyInsurance.Equal(ds("68.70")))
		assert.True(t, res.MonthlyTotal.Equal(ds("1444.40")))
		assert.True(t, res.DebtRatioPercent.Equal(ds("36.11")), "got %s", res.DebtRatioPercent)
		assert.False(t, res.WithinDebtCeiling)
		assert.Len(t, res.Schedule, 25)
	})

	t.Run("new property within the ceiling", func(t *testing.T) {
		res, err := calc.Calculate(domain.AcquisitionInput{
			Price:                d(300000),
			PropertyType:         domain.PropertyNew,
			DownPayment:          d(60000),
			AnnualRatePercent:    ds("3.5"),
			TermYears:            25,
			InsuranceRatePercent: ds("0.3"),
			MonthlyIncome:        d(5000),
		})
		require.NoError(t, err)
		assert.True(t, res.TotalFees.Equal(d(4842)), "got %s", res.TotalFees)
		assert.True(t, res.Loan.Principal.Equal(d(240000)))
		assert.True(t, res.MonthlyTotal.Equal(ds("1261.50")))
		assert.True(t, res.TotalInsurance.Equal(d(18000)))
		assert.True(t, res.DebtRatioPercent.Equal(ds("25.23")))
		assert.True(t, res.WithinDebtCeiling)
	})

	t.Run("cash purchase", func(t *testing.T) {
		res, err := calc.Calculate(domain.AcquisitionInput{Price: d(150000), DownPayment: d(200000)})
		require.NoError(t, err)
		assert.True(t, res.Loan.Principal.IsZero())
		assert.True(t, res.MonthlyTotal.IsZero())
		assert.True(t, res.WithinDebtCeiling)
		assert.Empty(t, res.Schedule)
	})

	t.Run("borrowing without a term", func(t *testing.T) {
		_, err := calc.Calculate(domain.AcquisitionInput{Price: d(150000), AnnualRatePercent: ds("3")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("unknown property type", func(t *testing.T) {
		_, err := calc.Calculate(domain.AcquisitionInput{Price: d(150000), PropertyType: "castle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "property_type")
	})
}
