package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(context.Background(), config.DatabaseConfig{
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
}

func regimeRun(label string) (domain.SimulationRequest, domain.SimulationOutcome) {
	req := domain.SimulationRequest{
		Simulator: domain.KindRegime,
		TaxYear:   2025,
		Label:     label,
		Regime: &domain.RegimeInput{
			Gain:      decimal.NewFromInt(10000),
			Household: domain.HouseholdProfile{MaritalStatus: domain.Single},
		},
	}
	out := domain.SimulationOutcome{
		Kind:    domain.KindRegime,
		TaxYear: 2025,
		Label:   label,
		Regime: &domain.RegimeComparison{
			FlatTaxAmount:     decimal.NewFromInt(3000),
			ProgressiveAmount: decimal.NewFromInt(1720),
			ChosenRegime:      domain.RegimeProgressive,
			ChosenAmount:      decimal.NewFromInt(1720),
		},
	}
	return req, out
}

func TestDialectorFor(t *testing.T) {
	assert.Equal(t, "postgres", dialectorFor("postgres://u:p@localhost:5432/taxsim").Name())
	assert.Equal(t, "postgres", dialectorFor("postgresql://localhost/taxsim").Name())
	assert.Equal(t, "sqlite", dialectorFor("taxsim.db").Name())
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{})
	assert.Error(t, err)
}

func TestSimulationRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	assert.True(t, db.HealthCheck(context.Background()))
	repo := NewSimulationRepository(db.DB())
	ctx := context.Background()

	req, out := regimeRun("dividendes 2024")
	saved, err := repo.Create(ctx, req, out, "client@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRegime, found.Kind)
	assert.Equal(t, "client@example.com", found.Email)
	assert.Equal(t, "dividendes 2024", found.Label)
	require.NotNil(t, found.Outcome.Regime)
	assert.True(t, found.Outcome.Regime.ChosenAmount.Equal(decimal.NewFromInt(1720)))
	assert.Equal(t, domain.RegimeProgressive, found.Outcome.Regime.ChosenRegime)
	require.NotNil(t, found.Request.Regime)
	assert.True(t, found.Request.Regime.Gain.Equal(decimal.NewFromInt(10000)))
}

func TestSimulationRepository_NotFound(t *testing.T) {
	repo := NewSimulationRepository(openTestDB(t).DB())

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimulationRepository_ListRecent(t *testing.T) {
	db := openTestDB(t)
	repo := &simulationRepository{db: db.DB(), now: fixedClock()}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		req, out := regimeRun(fmt.Sprintf("run %d", i))
		_, err := repo.Create(ctx, req, out, "")
		require.NoError(t, err)
	}
	other := domain.SimulationOutcome{Kind: domain.KindIncomeTax, TaxYear: 2025}
	_, err := repo.Create(ctx, domain.SimulationRequest{Simulator: domain.KindIncomeTax}, other, "")
	require.NoError(t, err)

	all, err := repo.ListRecent(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, domain.KindIncomeTax, all[0].Kind, "newest first")

	regimes, err := repo.ListRecent(ctx, domain.KindRegime, 2)
	require.NoError(t, err)
	require.Len(t, regimes, 2)
	assert.Equal(t, "run 3", regimes[0].Label)
	assert.Equal(t, "run 2", regimes[1].Label)
}
