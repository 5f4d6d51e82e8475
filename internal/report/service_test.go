package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regimeRequest() domain.SimulationRequest {
	return domain.SimulationRequest{
		Simulator: domain.KindRegime,
		Label:     "dividends",
		Regime: &domain.RegimeInput{
			Gain:      decimal.NewFromInt(10000),
			Household: domain.HouseholdProfile{MaritalStatus: domain.Single},
		},
	}
}

func newTestService(t *testing.T, sender Sender) (*Service, store.SimulationRepository) {
	t.Helper()
	engine, err := calculation.NewCalculationEngine()
	require.NoError(t, err)

	db, err := store.Open(context.Background(), config.DatabaseConfig{
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewSimulationRepository(db.DB())
	svc := NewService(engine, repo, sender, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestService_Generate_WithoutEmail(t *testing.T) {
	sender := NewMockSender()
	svc, repo := newTestService(t, sender)

	res, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest()})
	require.NoError(t, err)

	assert.Equal(t, EmailSkipped, res.EmailStatus)
	assert.Empty(t, sender.Messages())
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF-")))
	assert.Equal(t, "simulation_regime_20250601.pdf", res.Filename)
	require.NotNil(t, res.ID)

	stored, err := repo.FindByID(context.Background(), *res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRegime, stored.Kind)
	assert.Equal(t, "dividends", stored.Label)
	assert.Empty(t, stored.Email)
}

func TestService_Generate_SendsEmail(t *testing.T) {
	sender := NewMockSender()
	svc, repo := newTestService(t, sender)

	res, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest(), Email: "jeanne@example.fr"})
	require.NoError(t, err)

	assert.Equal(t, EmailSent, res.EmailStatus)
	assert.Equal(t, "mock-1", res.EmailID)

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	msg := msgs[0]
	assert.Equal(t, "jeanne@example.fr", msg.To)
	assert.Equal(t, "Flat tax or progressive scale - dividends (tax year 2025)", msg.Subject)
	assert.Contains(t, msg.HTML, "<h2>Regime comparison</h2>")
	assert.Contains(t, msg.Text, "Best regime:")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, res.Filename, msg.Attachments[0].Filename)
	assert.Equal(t, res.PDF, msg.Attachments[0].Content)

	stored, err := repo.FindByID(context.Background(), *res.ID)
	require.NoError(t, err)
	assert.Equal(t, "jeanne@example.fr", stored.Email)
}

func TestService_Generate_EmailFailureIsReported(t *testing.T) {
	sender := NewMockSender()
	sender.SetFailure(errors.New("429 rate limited"), false)
	svc, _ := newTestService(t, sender)

	res, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest(), Email: "jeanne@example.fr"})
	require.NoError(t, err, "delivery failures do not fail the report")

	assert.Equal(t, EmailFailed, res.EmailStatus)
	assert.Contains(t, res.EmailError, "temporary email failure")
	assert.True(t, res.EmailRetryable)
	assert.NotNil(t, res.ID)
	assert.NotEmpty(t, res.PDF)
}

func TestService_Generate_PermanentEmailFailure(t *testing.T) {
	sender := NewMockSender()
	sender.SetFailure(errors.New("422 invalid recipient"), true)
	svc, _ := newTestService(t, sender)

	res, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest(), Email: "jeanne@example.fr"})
	require.NoError(t, err)
	assert.Equal(t, EmailFailed, res.EmailStatus)
	assert.False(t, res.EmailRetryable)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&SendError{Err: errors.New("500")}))
	assert.False(t, retryable(&SendError{Permanent: true, Err: errors.New("401")}))
	assert.True(t, retryable(fmt.Errorf("send: %w", context.DeadlineExceeded)))
}

func TestService_Generate_Errors(t *testing.T) {
	svc, _ := newTestService(t, NewMockSender())

	_, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest(), Email: "not-an-address"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Generate(context.Background(), Request{Simulation: domain.SimulationRequest{Simulator: domain.KindRegime}})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	req := regimeRequest()
	req.TaxYear = 1999
	_, err = svc.Generate(context.Background(), Request{Simulation: req})
	assert.True(t, errors.Is(err, domain.ErrLookup))
}

func TestService_Generate_WithoutRepository(t *testing.T) {
	engine, err := calculation.NewCalculationEngine()
	require.NoError(t, err)
	svc := NewService(engine, nil, nil, zerolog.Nop())

	res, err := svc.Generate(context.Background(), Request{Simulation: regimeRequest(), Email: "jeanne@example.fr"})
	require.NoError(t, err)
	assert.Nil(t, res.ID)
	assert.Equal(t, EmailSent, res.EmailStatus, "the log sender accepts every message")
}
