package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/google/uuid"
)

// SimulationModel represents the simulations table. Request and outcome are
// stored as JSON text so that one table serves every simulator.
type SimulationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"type:varchar(40);not null;index"`
	TaxYear   int       `gorm:"not null"`
	Label     string    `gorm:"type:varchar(255)"`
	Email     string    `gorm:"type:varchar(255)"`
	Request   string    `gorm:"type:text;not null"`
	Outcome   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the SimulationModel.
func (SimulationModel) TableName() string {
	return "simulations"
}

// Simulation is a stored run with its request and outcome decoded.
type Simulation struct {
	ID        uuid.UUID                `json:"id"`
	Kind      domain.SimulationKind    `json:"kind"`
	TaxYear   int                      `json:"tax_year"`
	Label     string                   `json:"label,omitempty"`
	Email     string                   `json:"email,omitempty"`
	Request   domain.SimulationRequest `json:"request"`
	Outcome   domain.SimulationOutcome `json:"outcome"`
	CreatedAt time.Time                `json:"created_at"`
}

func modelFromSimulation(s *Simulation) (*SimulationModel, error) {
	req, err := json.Marshal(s.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	out, err := json.Marshal(s.Outcome)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outcome: %w", err)
	}
	return &SimulationModel{
		ID:        s.ID,
		Kind:      string(s.Kind),
		TaxYear:   s.TaxYear,
		Label:     s.Label,
		Email:     s.Email,
		Request:   string(req),
		Outcome:   string(out),
		CreatedAt: s.CreatedAt,
	}, nil
}

// ToSimulation decodes the stored JSON columns.
func (m *SimulationModel) ToSimulation() (*Simulation, error) {
	s := &Simulation{
		ID:        m.ID,
		Kind:      domain.SimulationKind(m.Kind),
		TaxYear:   m.TaxYear,
		Label:     m.Label,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
	if err := json.Unmarshal([]byte(m.Request), &s.Request); err != nil {
		return nil, fmt.Errorf("failed to decode request of simulation %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(m.Outcome), &s.Outcome); err != nil {
		return nil, fmt.Errorf("failed to decode outcome of simulation %s: %w", m.ID, err)
	}
	return s, nil
}
