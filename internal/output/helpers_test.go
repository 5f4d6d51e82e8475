package output

import (
	"context"
	"testing"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func requestFor(kind domain.SimulationKind) domain.SimulationRequest {
	single := domain.HouseholdProfile{MaritalStatus: domain.Single}
	gain := domain.GainInput{AcquisitionValue: d(200000), DisposalValue: d(260000), HoldingYears: 12}
	req := domain.SimulationRequest{Simulator: kind, Label: "Dupont"}
	switch kind {
	case domain.KindIncomeTax:
		req.IncomeTax = &domain.IncomeTaxInput{
			Household:    domain.HouseholdProfile{MaritalStatus: domain.Married, DependentCount: 2},
			SalaryIncome: d(85000),
		}
	case domain.KindRealEstateGain:
		req.RealEstateGain = &domain.RealEstateGainInput{Gain: gain}
	case domain.KindSecuritiesGain:
		req.SecuritiesGain = &domain.SecuritiesGainInput{Gain: gain, Household: single}
	case domain.KindRegime:
		req.Regime = &domain.RegimeInput{Gain: d(10000), Household: single}
	case domain.KindAcquisition:
		req.Acquisition = &domain.AcquisitionInput{
			Price: d(250000), DownPayment: d(50000), AnnualRatePercent: decimal.RequireFromString("3.5"),
			TermYears: 20, MonthlyIncome: d(5000),
		}
	case domain.KindDonation:
		req.Donation = &domain.DonationInput{
			Category: domain.CategoryRealEstate, FullValue: d(400000), SalePrice: d(400000),
			AcquisitionValue: d(150000), HoldingYears: 15, DonorAge: 65, Donors: 2, Children: 2, BareOwnership: true,
		}
	case domain.KindFreelance:
		req.Freelance = &domain.FreelanceInput{
			Activity: domain.ActivityServicesBIC, Turnover: d(50000), SalaryPercent: d(50), Household: single,
		}
	}
	return req
}

// outcomeFor runs the real engine so the formatters see realistic results.
func outcomeFor(t *testing.T, kind domain.SimulationKind) *domain.SimulationOutcome {
	t.Helper()
	engine, err := calculation.NewCalculationEngine()
	require.NoError(t, err)
	out, err := engine.Run(context.Background(), requestFor(kind))
	require.NoError(t, err)
	return out
}
