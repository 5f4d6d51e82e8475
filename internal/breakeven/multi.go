package breakeven

import (
	"context"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
)

// AllTurnoverBreakEvens computes the break-even of every other status
// against base, over the same turnover range.
func (s *Solver) AllTurnoverBreakEvens(ctx context.Context, req *domain.SimulationRequest, base domain.FreelanceStatus, minTurnover, maxTurnover decimal.Decimal) ([]TurnoverResult, error) {
	statuses := []domain.FreelanceStatus{domain.StatusMicro, domain.StatusIndividual, domain.StatusCompany}
	var results []TurnoverResult
	for _, to := range statuses {
		if to == base {
			continue
		}
		res, err := s.TurnoverBreakEven(ctx, TurnoverRequest{
			Base:        req,
			From:        base,
			To:          to,
			MinTurnover: minTurnover,
			MaxTurnover: maxTurnover,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}
