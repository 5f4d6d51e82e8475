package server

import (
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/store"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest  = "bad_request"
	CodeValidation  = "validation_error"
	CodeLookup      = "lookup_error"
	CodeNotFound    = "not_found"
	CodeRateLimited = "rate_limited"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal_error"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// RateTableIndex lists the loaded tax years.
type RateTableIndex struct {
	Years  []int `json:"years"`
	Latest int   `json:"latest"`
}

// SimulationResponse wraps an outcome with its log id, when it was stored.
type SimulationResponse struct {
	ID      string                    `json:"id,omitempty"`
	Outcome *domain.SimulationOutcome `json:"outcome"`
}

// StoredSimulationResponse is a simulation read back from the log.
type StoredSimulationResponse struct {
	ID        string                   `json:"id"`
	Kind      domain.SimulationKind    `json:"kind"`
	TaxYear   int                      `json:"tax_year"`
	Label     string                   `json:"label,omitempty"`
	Email     string                   `json:"email,omitempty"`
	CreatedAt string                   `json:"created_at"`
	Request   domain.SimulationRequest `json:"request"`
	Outcome   domain.SimulationOutcome `json:"outcome"`
}

// SimulationListResponse is a page of recent simulations.
type SimulationListResponse struct {
	Simulations []StoredSimulationResponse `json:"simulations"`
	Count       int                        `json:"count"`
}

// ToStoredSimulationResponse converts a stored simulation to its DTO.
func ToStoredSimulationResponse(s *store.Simulation) StoredSimulationResponse {
	return StoredSimulationResponse{
		ID:        s.ID.String(),
		Kind:      s.Kind,
		TaxYear:   s.TaxYear,
		Label:     s.Label,
		Email:     s.Email,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Request:   s.Request,
		Outcome:   s.Outcome,
	}
}
