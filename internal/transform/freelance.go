package transform

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

func requireFreelance(name string, base *domain.SimulationRequest) error {
	if base.Freelance == nil {
		return &TransformError{TransformName: name, Operation: "validate", Reason: fmt.Sprintf("a %s request has no freelance input", base.Simulator)}
	}
	return nil
}

// SetTurnover replaces the yearly turnover of a freelance request.
type SetTurnover struct {
	Turnover decimal.Decimal
}

func (st *SetTurnover) Name() string { return "set_turnover" }

func (st *SetTurnover) Description() string {
	return fmt.Sprintf("Set turnover to %s", st.Turnover.StringFixed(0))
}

func (st *SetTurnover) Validate(base *domain.SimulationRequest) error {
	if st.Turnover.IsNegative() {
		return &TransformError{TransformName: st.Name(), Operation: "validate", Reason: "turnover cannot be negative"}
	}
	return requireFreelance(st.Name(), base)
}

func (st *SetTurnover) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	req.Freelance.Turnover = st.Turnover
	return req, nil
}

// SetExpenses replaces the yearly real expenses of a freelance request.
type SetExpenses struct {
	Expenses decimal.Decimal
}

func (se *SetExpenses) Name() string { return "set_expenses" }

func (se *SetExpenses) Description() string {
	return fmt.Sprintf("Set expenses to %s", se.Expenses.StringFixed(0))
}

func (se *SetExpenses) Validate(base *domain.SimulationRequest) error {
	if se.Expenses.IsNegative() {
		return &TransformError{TransformName: se.Name(), Operation: "validate", Reason: "expenses cannot be negative"}
	}
	return requireFreelance(se.Name(), base)
}

func (se *SetExpenses) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	req.Freelance.Expenses = se.Expenses
	return req, nil
}

// SetSalaryPercent changes the share of company profit paid as salary.
type SetSalaryPercent struct {
	Percent decimal.Decimal
}

func (ss *SetSalaryPercent) Name() string { return "set_salary_percent" }

func (ss *SetSalaryPercent) Description() string {
	return fmt.Sprintf("Pay %s%% of company profit as salary", ss.Percent.String())
}

func (ss *SetSalaryPercent) Validate(base *domain.SimulationRequest) error {
	if ss.Percent.IsNegative() || ss.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return &TransformError{TransformName: ss.Name(), Operation: "validate", Reason: "percent must be between 0 and 100"}
	}
	return requireFreelance(ss.Name(), base)
}

func (ss *SetSalaryPercent) Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error) {
	req := Clone(base)
	req.Freelance.SalaryPercent = ss.Percent
	return req, nil
}
