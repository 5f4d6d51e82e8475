package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/fiscalite/taxsim/internal/breakeven"
	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/compare"
	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/report"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/fiscalite/taxsim/internal/transform"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regimeYAML = `
simulator: regime
tax_year: 2025
label: dividends
regime:
  gain: 10000
  household:
    marital_status: single
`

const freelanceYAML = `
simulator: freelance
tax_year: 2025
freelance:
  activity: services_bnc
  turnover: 60000
  expenses: 5000
  salary_percent: 50
  household:
    marital_status: single
`

func newEngine(t *testing.T) *calculation.CalculationEngine {
	t.Helper()
	engine, err := calculation.NewCalculationEngine()
	require.NoError(t, err)
	return engine
}

func parse(t *testing.T, doc string) *domain.SimulationRequest {
	t.Helper()
	req, err := config.NewInputParser().Parse([]byte(doc))
	require.NoError(t, err)
	return req
}

// TestEndToEndCalculation runs a parsed request through every formatter.
func TestEndToEndCalculation(t *testing.T) {
	engine := newEngine(t)
	req := parse(t, regimeYAML)

	out, err := engine.Run(context.Background(), *req)
	require.NoError(t, err)
	require.NotNil(t, out.Regime)
	assert.Equal(t, domain.RegimeProgressive, out.Regime.ChosenRegime)
	assert.True(t, out.Regime.ChosenAmount.Equal(decimal.NewFromInt(1720)))

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f, err := output.ResolveFormatter(name)
			require.NoError(t, err)
			data, err := f.Format(out)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	f, err := output.ResolveFormatter("json")
	require.NoError(t, err)
	data, err := f.Format(out)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
}

// TestFreelancePipeline checks that compare, break-even and what-if edits
// agree with a direct run.
func TestFreelancePipeline(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)
	req := parse(t, freelanceYAML)

	out, err := engine.Run(ctx, *req)
	require.NoError(t, err)
	require.NotNil(t, out.Freelance)
	assert.Equal(t, domain.StatusMicro, out.Freelance.Best)

	set, err := compare.NewCompareEngine(engine).Compare(ctx, *req.Freelance, compare.CompareOptions{
		BaseStatus: domain.StatusMicro,
		TaxYear:    2025,
	})
	require.NoError(t, err)
	assert.Equal(t, out.Freelance.Best, set.Best)
	micro, _ := out.Freelance.Outcome(domain.StatusMicro)
	assert.True(t, set.BaseResult.NetIncome.Equal(micro.NetIncome))

	results, err := breakeven.NewDefaultSolver(engine).AllTurnoverBreakEvens(ctx, req, domain.StatusMicro,
		decimal.NewFromInt(60000), decimal.NewFromInt(100000))
	require.NoError(t, err)
	require.Len(t, results, 2)

	edited, err := transform.ApplyTransforms(req, []transform.RequestTransform{
		&transform.SetTurnover{Turnover: decimal.NewFromInt(120000)},
	})
	require.NoError(t, err)
	assert.True(t, req.Freelance.Turnover.Equal(decimal.NewFromInt(60000)), "original request must be untouched")

	big, err := engine.Run(ctx, *edited)
	require.NoError(t, err)
	bigMicro, _ := big.Freelance.Outcome(domain.StatusMicro)
	assert.False(t, bigMicro.Eligible)
	assert.NotEqual(t, domain.StatusMicro, big.Freelance.Best)
}

// TestReportPipeline generates, stores and mails a report.
func TestReportPipeline(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t)

	db, err := store.Open(ctx, config.DatabaseConfig{
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	repo := store.NewSimulationRepository(db.DB())
	sender := report.NewMockSender()
	svc := report.NewService(engine, repo, sender, zerolog.Nop())

	res, err := svc.Generate(ctx, report.Request{Simulation: *parse(t, regimeYAML), Email: "client@example.com"})
	require.NoError(t, err)
	assert.Equal(t, report.EmailSent, res.EmailStatus)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF-")))
	require.NotNil(t, res.ID)

	saved, err := repo.FindByID(ctx, *res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRegime, saved.Kind)

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "client@example.com", msgs[0].To)
}

// TestErrorHandling covers the failures a caller can trigger from input.
func TestErrorHandling(t *testing.T) {
	engine := newEngine(t)

	_, err := config.NewInputParser().Parse([]byte("simulator: pension\n"))
	assert.Error(t, err)

	_, err = config.NewInputParser().Parse([]byte(strings.Replace(regimeYAML, "gain:", "gian:", 1)))
	assert.Error(t, err, "unknown fields are rejected")

	req := parse(t, regimeYAML)
	req.TaxYear = 1999
	_, err = engine.Run(context.Background(), *req)
	assert.ErrorIs(t, err, domain.ErrLookup)

	req = parse(t, regimeYAML)
	req.Regime.Gain = decimal.NewFromInt(-1)
	_, err = engine.Run(context.Background(), *req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestDataConsistency reruns the same request and expects identical output.
func TestDataConsistency(t *testing.T) {
	engine := newEngine(t)
	req := parse(t, freelanceYAML)

	first, err := engine.Run(context.Background(), *req)
	require.NoError(t, err)
	f, err := output.ResolveFormatter("csv")
	require.NoError(t, err)
	want, err := f.Format(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := engine.Run(context.Background(), *req)
		require.NoError(t, err)
		got, err := f.Format(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}
