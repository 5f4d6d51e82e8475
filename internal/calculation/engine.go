package calculation

import (
	"context"
	"fmt"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
)

// CalculationEngine dispatches simulation requests to the calculators of the
// requested tax year. It holds no mutable state besides its logger and is
// safe for concurrent use.
type CalculationEngine struct {
	Rates  *config.RateBook
	Logger Logger
}

// NewCalculationEngine creates an engine over the shipped rate tables
func NewCalculationEngine() (*CalculationEngine, error) {
	book, err := config.LoadDefaultRateBook()
	if err != nil {
		return nil, fmt.Errorf("failed to load rate tables: %w", err)
	}
	return NewCalculationEngineWithRates(book), nil
}

// NewCalculationEngineWithRates creates an engine over a given rate book
func NewCalculationEngineWithRates(book *config.RateBook) *CalculationEngine {
	return &CalculationEngine{Rates: book, Logger: NopLogger{}}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Tables returns the rate table of a year, 0 meaning the latest
func (ce *CalculationEngine) Tables(year int) (*domain.RateTables, error) {
	return ce.Rates.Resolve(year)
}

// Run validates a request, resolves its rate table and runs the matching
// simulator. Exactly one result field of the outcome is set.
func (ce *CalculationEngine) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kind, err := domain.ParseKind(string(req.Simulator))
	if err != nil {
		return nil, err
	}
	req.Simulator = kind
	if err := req.Validate(); err != nil {
		ce.Logger.Debugf("rejected %s request: %v", kind, err)
		return nil, err
	}
	rt, err := ce.Rates.Resolve(req.TaxYear)
	if err != nil {
		ce.Logger.Warnf("no rate table for %s request: %v", kind, err)
		return nil, err
	}

	ce.Logger.Debugf("running %s simulation with %d rate table", kind, rt.Metadata.TaxYear)
	out := &domain.SimulationOutcome{Kind: kind, TaxYear: rt.Metadata.TaxYear, Label: req.Label}

	switch kind {
	case domain.KindIncomeTax:
		out.IncomeTax, err = NewIncomeTaxCalculator(rt).Calculate(*req.IncomeTax)
	case domain.KindRealEstateGain:
		out.RealEstateGain, err = NewRealEstateGainCalculator(rt).Calculate(*req.RealEstateGain)
	case domain.KindSecuritiesGain:
		out.SecuritiesGain, err = NewSecuritiesGainCalculator(rt).Calculate(*req.SecuritiesGain)
	case domain.KindRegime:
		out.Regime, err = NewRegimeOptimizer(rt).Calculate(*req.Regime)
	case domain.KindAcquisition:
		out.Acquisition, err = NewAcquisitionCalculator(rt).Calculate(*req.Acquisition)
	case domain.KindDonation:
		out.Donation, err = NewDonationCalculator(rt).Calculate(*req.Donation)
	case domain.KindFreelance:
		out.Freelance, err = NewFreelanceCalculator(rt).Calculate(*req.Freelance)
	default:
		err = domain.NewValidationError("simulator", "unsupported simulator %q", kind)
	}
	if err != nil {
		ce.Logger.Debugf("%s simulation failed: %v", kind, err)
		return nil, err
	}
	ce.Logger.Infof("%s simulation completed for tax year %d", kind, out.TaxYear)
	return out, nil
}
