package transform

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// household returns the household of the request's input block.
func household(req *domain.SimulationRequest) (*domain.HouseholdProfile, error) {
	switch {
	case req.IncomeTax != nil:
		return &req.IncomeTax.Household, nil
	case req.SecuritiesGain != nil:
		return &req.SecuritiesGain.Household, nil
	case req.Regime != nil:
		return &req.Regime.Household, nil
	case req.Freelance != nil:
		return &req.Freelance.Household, nil
	}
	return nil, fmt.Errorf("a %s request has no household", req.Simulator)
}

// otherIncome returns the other-income field of the request's input block.
func otherIncome(req *domain.SimulationRequest) (*decimal.Decimal, error) {
	switch {
	case req.IncomeTax != nil:
		return &req.IncomeTax.OtherIncome, nil
	case req.SecuritiesGain != nil:
		return &req.SecuritiesGain.OtherIncome, nil
	case req.Regime != nil:
		return &req.Regime.OtherIncome, nil
	case req.Freelance != nil:
		return &req.Freelance.OtherIncome, nil
	}
	return nil, fmt.Errorf("a %s request has no other income", req.Simulator)
}

// SetDependents changes the number of dependent children.
type SetDependents struct {
	Count int
}

func (sd *SetDependents) Name() string { return "set_dependents" }

func (sd *SetDependents) Description() string {
	return fmt.Sprintf("Set dependent children to %d", sd.Count)
}

func (sd *SetDependents) Validate(base *domain.SimulationRequest) error {
	if sd.Count < 0 {
		return &TransformError{TransformName: sd.Name(), Operation: "validate", Reason: "count cannot be negative"}
	}
	if _, err := household(base); err != nil {
		return &TransformError{TransformName: sd.Name(), Operation: "validate", Reason: "no household", Err: err}
	}
	return nil
}

func (sd *SetDependents) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	h, err := household(req)
	if err != nil {
		return nil, err
	}
	h.DependentCount = sd.Count
	return req, nil
}

// SetMaritalStatus switches between single and joint filing.
type SetMaritalStatus struct {
	Status domain.MaritalStatus
}

func (sm *SetMaritalStatus) Name() string { return "set_marital_status" }

func (sm *SetMaritalStatus) Description() string {
	return fmt.Sprintf("File as %s", sm.Status)
}

func (sm *SetMaritalStatus) Validate(base *domain.SimulationRequest) error {
	if sm.Status != domain.Single && sm.Status != domain.Married {
		return &TransformError{TransformName: sm.Name(), Operation: "validate", Reason: fmt.Sprintf("unknown marital status %q", sm.Status)}
	}
	if _, err := household(base); err != nil {
		return &TransformError{TransformName: sm.Name(), Operation: "validate", Reason: "no household", Err: err}
	}
	return nil
}

func (sm *SetMaritalStatus) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	h, err := household(req)
	if err != nil {
		return nil, err
	}
	h.MaritalStatus = sm.Status
	return req, nil
}

// SetOtherIncome replaces the household's other taxable income.
type SetOtherIncome struct {
	Amount decimal.Decimal
}

func (so *SetOtherIncome) Name() string { return "set_other_income" }

func (so *SetOtherIncome) Description() string {
	return fmt.Sprintf("Set other taxable income to %s", so.Amount.StringFixed(0))
}

func (so *SetOtherIncome) Validate(base *domain.SimulationRequest) error {
	if so.Amount.IsNegative() {
		return &TransformError{TransformName: so.Name(), Operation: "validate", Reason: "amount cannot be negative"}
	}
	if _, err := otherIncome(base); err != nil {
		return &TransformError{TransformName: so.Name(), Operation: "validate", Reason: "no other income field", Err: err}
	}
	return nil
}

func (so *SetOtherIncome) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	field, err := otherIncome(req)
	if err != nil {
		return nil, err
	}
	*field = so.Amount
	return req, nil
}
