package breakeven

import (
	"context"
	"fmt"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver runs searches through a calculation engine.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{CalcEngine: calcEngine, Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

func validStatus(s domain.FreelanceStatus) bool {
	switch s {
	case domain.StatusMicro, domain.StatusIndividual, domain.StatusCompany:
		return true
	}
	return false
}

func checkBase(op string, base *domain.SimulationRequest) error {
	if base == nil || base.Freelance == nil {
		return &BreakEvenError{Operation: op, Message: "a freelance request is required"}
	}
	return nil
}

// run simulates base with transforms applied.
func (s *Solver) run(ctx context.Context, base *domain.SimulationRequest, ts ...transform.RequestTransform) (*domain.FreelanceResult, error) {
	req, err := transform.ApplyTransforms(base, ts)
	if err != nil {
		return nil, err
	}
	out, err := s.CalcEngine.Run(ctx, *req)
	if err != nil {
		return nil, err
	}
	return out.Freelance, nil
}

// rank is +1 when to leaves at least as much as from, -1 otherwise. An
// ineligible status always loses.
func rank(res *domain.FreelanceResult, from, to domain.FreelanceStatus) (int, domain.StatusOutcome, domain.StatusOutcome) {
	f, _ := res.Outcome(from)
	t, _ := res.Outcome(to)
	switch {
	case !t.Eligible:
		return -1, f, t
	case !f.Eligible:
		return 1, f, t
	case t.NetIncome.GreaterThanOrEqual(f.NetIncome):
		return 1, f, t
	}
	return -1, f, t
}

// TurnoverBreakEven bisects the turnover range for the point where the
// ranking of From and To flips, in either direction.
func (s *Solver) TurnoverBreakEven(ctx context.Context, req TurnoverRequest) (*TurnoverResult, error) {
	const op = "turnover_break_even"
	if err := checkBase(op, req.Base); err != nil {
		return nil, err
	}
	if !validStatus(req.From) || !validStatus(req.To) || req.From == req.To {
		return nil, &BreakEvenError{Operation: op, Message: fmt.Sprintf("need two different statuses, got %q and %q", req.From, req.To)}
	}

	lo, hi := req.MinTurnover, req.MaxTurnover
	if lo.IsZero() {
		lo = decimal.Max(req.Base.Freelance.Expenses, decimal.NewFromInt(1000))
	}
	if hi.IsZero() {
		hi = decimal.NewFromInt(300000)
	}
	if !lo.LessThan(hi) {
		return nil, &BreakEvenError{Operation: op, Message: fmt.Sprintf("min turnover %s must be below max turnover %s", lo, hi)}
	}

	result := &TurnoverResult{From: req.From, To: req.To, MinTurnover: lo, MaxTurnover: hi}
	probe := func(turnover decimal.Decimal) (int, domain.StatusOutcome, domain.StatusOutcome, error) {
		result.Iterations++
		res, err := s.run(ctx, req.Base, &transform.SetTurnover{Turnover: turnover})
		if err != nil {
			return 0, domain.StatusOutcome{}, domain.StatusOutcome{}, &BreakEvenError{Operation: op, Message: "failed to simulate turnover " + turnover.String(), Cause: err}
		}
		r, f, t := rank(res, req.From, req.To)
		return r, f, t, nil
	}

	loRank, _, _, err := probe(lo)
	if err != nil {
		return nil, err
	}
	hiRank, f, t, err := probe(hi)
	if err != nil {
		return nil, err
	}
	if loRank == hiRank {
		leader := req.To
		if loRank < 0 {
			leader = req.From
		}
		result.ConvergenceInfo = fmt.Sprintf("%s leads over the whole range %s to %s", leader, output.FormatEuro(lo), output.FormatEuro(hi))
		return result, nil
	}

	for hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		if result.Iterations >= s.Options.MaxIterations {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mid := lo.Add(hi).Div(decimal.NewFromInt(2)).Round(0)
		if mid.Equal(lo) || mid.Equal(hi) {
			break
		}
		r, mf, mt, err := probe(mid)
		if err != nil {
			return nil, err
		}
		if r == loRank {
			lo = mid
		} else {
			hi, f, t = mid, mf, mt
		}
	}

	result.Found = true
	result.Turnover = hi
	result.LeaderAbove = req.To
	if hiRank < 0 {
		result.LeaderAbove = req.From
	}
	result.FromOutcome = f
	result.ToOutcome = t
	if result.ConvergenceInfo == "" {
		result.ConvergenceInfo = fmt.Sprintf("Converged within %s", output.FormatEuro(s.Options.Tolerance))
	}
	return result, nil
}

// OptimizeSalaryPercent evaluates the company status over a grid of salary
// shares from 0 to 100 percent.
func (s *Solver) OptimizeSalaryPercent(ctx context.Context, base *domain.SimulationRequest) (*SalaryResult, error) {
	const op = "optimize_salary_percent"
	if err := checkBase(op, base); err != nil {
		return nil, err
	}
	step := s.Options.GridStep
	if !step.IsPositive() {
		return nil, &BreakEvenError{Operation: op, Message: "grid step must be positive"}
	}

	baseRes, err := s.run(ctx, base)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to simulate the base request", Cause: err}
	}
	baseCompany, _ := baseRes.Outcome(domain.StatusCompany)

	result := &SalaryResult{BaseNet: baseCompany.NetIncome}
	hundred := decimal.NewFromInt(100)
	for pct := decimal.Zero; pct.LessThanOrEqual(hundred); pct = pct.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.run(ctx, base, &transform.SetSalaryPercent{Percent: pct})
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to simulate salary share " + pct.String(), Cause: err}
		}
		result.Iterations++
		o, _ := res.Outcome(domain.StatusCompany)
		point := SalaryPoint{Percent: pct, NetIncome: o.NetIncome, TotalCharges: o.TotalCharges}
		result.Points = append(result.Points, point)
		if len(result.Points) == 1 || point.NetIncome.GreaterThan(result.NetIncome) {
			result.Percent = point.Percent
			result.NetIncome = point.NetIncome
		}
	}
	result.Gain = result.NetIncome.Sub(result.BaseNet)
	return result, nil
}
