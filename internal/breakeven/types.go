// Package breakeven searches freelance parameters through the calculation
// engine: the turnover at which one status overtakes another, and the
// salary share that maximizes a company owner's net income.
package breakeven

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TurnoverRequest asks for the turnover at which To starts leaving at least
// as much net income as From.
type TurnoverRequest struct {
	Base        *domain.SimulationRequest
	From        domain.FreelanceStatus
	To          domain.FreelanceStatus
	MinTurnover decimal.Decimal // defaults to the expenses, at least 1000
	MaxTurnover decimal.Decimal // defaults to 300000
}

// TurnoverResult is a turnover break-even. Found is false when the ranking
// of the two statuses does not change over the searched range. Turnover is
// the first turnover, within the tolerance, at which the ranking differs
// from the one at MinTurnover; LeaderAbove is the status ahead from there.
// It is From when To only leads at the low end of the range.
type TurnoverResult struct {
	From            domain.FreelanceStatus `json:"from"`
	To              domain.FreelanceStatus `json:"to"`
	MinTurnover     decimal.Decimal        `json:"min_turnover"`
	MaxTurnover     decimal.Decimal        `json:"max_turnover"`
	Found           bool                   `json:"found"`
	Turnover        decimal.Decimal        `json:"turnover"`
	LeaderAbove     domain.FreelanceStatus `json:"leader_above,omitempty"`
	FromOutcome     domain.StatusOutcome   `json:"from_outcome"`
	ToOutcome       domain.StatusOutcome   `json:"to_outcome"`
	Iterations      int                    `json:"iterations"`
	ConvergenceInfo string                 `json:"convergence_info"`
}

// SalaryPoint is the company outcome at one salary share.
type SalaryPoint struct {
	Percent      decimal.Decimal `json:"percent"`
	NetIncome    decimal.Decimal `json:"net_income"`
	TotalCharges decimal.Decimal `json:"total_charges"`
}

// SalaryResult is the salary share that maximizes the company net income.
// Ties keep the lowest share.
type SalaryResult struct {
	Percent    decimal.Decimal `json:"percent"`
	NetIncome  decimal.Decimal `json:"net_income"`
	BaseNet    decimal.Decimal `json:"base_net"`
	Gain       decimal.Decimal `json:"gain"`
	Points     []SalaryPoint   `json:"points"`
	Iterations int             `json:"iterations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // turnover precision in euros
	MaxIterations int
	GridStep      decimal.Decimal // salary share step in percent
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(100),
		MaxIterations: 60,
		GridStep:      decimal.NewFromInt(5),
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
