package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultRateBook(t *testing.T) {
	book, err := LoadDefaultRateBook()
	require.NoError(t, err)

	assert.Equal(t, []int{2024, 2025}, book.Years())
	assert.Equal(t, 2025, book.Latest().Metadata.TaxYear)

	rt, err := book.ForYear(2024)
	require.NoError(t, err)
	assert.Equal(t, 2023, rt.Metadata.IncomeYear)
	assert.True(t, rt.IncomeTax.Brackets[1].Lower.Equal(decimal.NewFromInt(11294)))

	latest, err := book.Resolve(0)
	require.NoError(t, err)
	assert.Same(t, book.Latest(), latest)
}

func TestRateBook_UnknownYearIsLookupError(t *testing.T) {
	book, err := LoadDefaultRateBook()
	require.NoError(t, err)

	_, err = book.ForYear(1999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLookup))
	assert.False(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "1999")
}

func TestDefaultTables_Contents(t *testing.T) {
	book, err := LoadDefaultRateBook()
	require.NoError(t, err)
	rt := book.Latest()

	assert.Len(t, rt.IncomeTax.Brackets, 5)
	assert.True(t, rt.IncomeTax.Brackets[4].Unbounded())
	assert.True(t, rt.CapitalIncome.FlatTaxRate().Equal(decimal.NewFromInt(30)))

	re, err := rt.Abatement(domain.CategoryRealEstate)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleCumulative, re.IncomeTax.Mode)
	assert.Len(t, re.Social.Bands, 3)

	sec, err := rt.Abatement(domain.CategorySecurities)
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleStep, sec.IncomeTax.Mode)
	assert.True(t, sec.FixedAmount.Equal(decimal.NewFromInt(500000)))

	pct, err := rt.UsufructPercent(55)
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(50)))

	fees, err := rt.FeeDefaults(domain.PropertyExisting)
	require.NoError(t, err)
	require.NotNil(t, fees.Notary)
	assert.Equal(t, "0.799", fees.Notary.String())

	micro, err := rt.Micro(domain.ActivitySales)
	require.NoError(t, err)
	assert.True(t, micro.TurnoverCeiling.Equal(decimal.NewFromInt(188700)))
}

func TestLoadRateBook_ExternalDirectory(t *testing.T) {
	dir := t.TempDir()

	shipped, err := embeddedRates.ReadFile("rates/2025.yaml")
	require.NoError(t, err)
	next := strings.Replace(string(shipped), "tax_year: 2025", "tax_year: 2026", 1)
	next = strings.Replace(next, "half_share_cap: 1791", "half_share_cap: 1807", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026.yaml"), []byte(next), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	book, err := LoadRateBook(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025, 2026}, book.Years())
	assert.Equal(t, 2026, book.Latest().Metadata.TaxYear)
	assert.True(t, book.Latest().IncomeTax.Quotient.HalfShareCap.Equal(decimal.NewFromInt(1807)))

	// the shipped table is untouched
	rt, err := book.ForYear(2025)
	require.NoError(t, err)
	assert.True(t, rt.IncomeTax.Quotient.HalfShareCap.Equal(decimal.NewFromInt(1791)))
}

func TestLoadRateBook_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadRateBook(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("malformed table", func(t *testing.T) {
		dir := t.TempDir()
		bad := "metadata:\n  tax_year: 2030\nincome_tax:\n  brackets:\n    - { lower: 10, rate: 5 }\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "2030.yaml"), []byte(bad), 0o644))
		_, err := LoadRateBook(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2030.yaml")
	})

	t.Run("empty book", func(t *testing.T) {
		_, err := NewRateBook()
		assert.Error(t, err)
	})
}

func TestNewRateBook_Duplicate(t *testing.T) {
	book, err := LoadDefaultRateBook()
	require.NoError(t, err)
	rt := book.Latest()

	_, err = NewRateBook(rt, rt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
