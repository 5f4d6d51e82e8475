package calculation

import (
	"testing"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tables2025(t *testing.T) *domain.RateTables {
	t.Helper()
	book, err := config.LoadDefaultRateBook()
	require.NoError(t, err)
	rt, err := book.ForYear(2025)
	require.NoError(t, err)
	return rt
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ds(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// assertDecimal compares at cent precision; quotient division leaves noise far below a cent.
func assertDecimal(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, want.Round(2).Equal(got.Round(2)), "want %s, got %s %v", want, got, msgAndArgs)
}

var (
	single  = domain.HouseholdProfile{MaritalStatus: domain.Single}
	married = domain.HouseholdProfile{MaritalStatus: domain.Married}
)

func marriedWith(dependents int) domain.HouseholdProfile {
	return domain.HouseholdProfile{MaritalStatus: domain.Married, DependentCount: dependents}
}
