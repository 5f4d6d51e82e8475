package transform

import (
	"errors"
	"testing"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

func createFreelanceRequest() *domain.SimulationRequest {
	return &domain.SimulationRequest{
		Simulator: domain.KindFreelance,
		TaxYear:   2025,
		Freelance: &domain.FreelanceInput{
			Activity:      domain.ActivityServicesBNC,
			Turnover:      decimal.NewFromInt(60000),
			Expenses:      decimal.NewFromInt(5000),
			SalaryPercent: decimal.NewFromInt(50),
			Household:     domain.HouseholdProfile{MaritalStatus: domain.Single},
		},
	}
}

func TestApplyTransforms_NilRequest(t *testing.T) {
	_, err := ApplyTransforms(nil, []RequestTransform{&SetDependents{Count: 1}})
	if err == nil {
		t.Error("Expected error for nil request, got nil")
	}
}

func TestApplyTransforms_EmptyTransformsCopies(t *testing.T) {
	base := createFreelanceRequest()
	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result == base || result.Freelance == base.Freelance {
		t.Error("Expected a copy of the base request")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createFreelanceRequest()
	result, err := ApplyTransforms(base, []RequestTransform{
		&SetTurnover{Turnover: decimal.NewFromInt(90000)},
		&SetSalaryPercent{Percent: decimal.NewFromInt(30)},
		&SetDependents{Count: 2},
		&SetMaritalStatus{Status: domain.Married},
		&SetTaxYear{Year: 2024},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	f := result.Freelance
	if !f.Turnover.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("Expected turnover 90000, got %s", f.Turnover)
	}
	if !f.SalaryPercent.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected salary percent 30, got %s", f.SalaryPercent)
	}
	if f.Household.DependentCount != 2 || f.Household.MaritalStatus != domain.Married {
		t.Errorf("Expected a married household with 2 children, got %+v", f.Household)
	}
	if result.TaxYear != 2024 {
		t.Errorf("Expected tax year 2024, got %d", result.TaxYear)
	}

	// The base request is untouched.
	if !base.Freelance.Turnover.Equal(decimal.NewFromInt(60000)) || base.Freelance.Household.DependentCount != 0 || base.TaxYear != 2025 {
		t.Errorf("Base request was modified: %+v", base.Freelance)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	tests := []struct {
		name      string
		base      *domain.SimulationRequest
		transform RequestTransform
	}{
		{"negative turnover", createFreelanceRequest(), &SetTurnover{Turnover: decimal.NewFromInt(-1)}},
		{"salary above 100", createFreelanceRequest(), &SetSalaryPercent{Percent: decimal.NewFromInt(101)}},
		{"unknown marital status", createFreelanceRequest(), &SetMaritalStatus{Status: "widowed"}},
		{"holding years on freelance", createFreelanceRequest(), &SetHoldingYears{Years: 10}},
		{"turnover on income tax", &domain.SimulationRequest{Simulator: domain.KindIncomeTax, IncomeTax: &domain.IncomeTaxInput{}}, &SetTurnover{Turnover: decimal.NewFromInt(1)}},
		{"household on acquisition", &domain.SimulationRequest{Simulator: domain.KindAcquisition, Acquisition: &domain.AcquisitionInput{}}, &SetDependents{Count: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyTransforms(tt.base, []RequestTransform{tt.transform})
			if err == nil {
				t.Fatal("Expected validation error")
			}
			var te *TransformError
			if !errors.As(err, &te) {
				t.Errorf("Expected a TransformError, got %T", err)
			}
		})
	}
}

func TestSetHoldingYears(t *testing.T) {
	base := &domain.SimulationRequest{
		Simulator:      domain.KindRealEstateGain,
		RealEstateGain: &domain.RealEstateGainInput{Gain: domain.GainInput{HoldingYears: 3}},
	}
	result, err := ApplyTransforms(base, []RequestTransform{&SetHoldingYears{Years: 22}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.RealEstateGain.Gain.HoldingYears != 22 {
		t.Errorf("Expected 22 holding years, got %d", result.RealEstateGain.Gain.HoldingYears)
	}
	if base.RealEstateGain.Gain.HoldingYears != 3 {
		t.Error("Base request was modified")
	}
}

func TestSetOtherIncome(t *testing.T) {
	base := &domain.SimulationRequest{Simulator: domain.KindRegime, Regime: &domain.RegimeInput{Gain: decimal.NewFromInt(10000)}}
	result, err := ApplyTransforms(base, []RequestTransform{&SetOtherIncome{Amount: decimal.NewFromInt(40000)}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.Regime.OtherIncome.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Expected other income 40000, got %s", result.Regime.OtherIncome)
	}
}
