package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no simulation has the requested id.
var ErrNotFound = errors.New("simulation not found")

// SimulationRepository reads and writes stored simulation runs.
type SimulationRepository interface {
	Create(ctx context.Context, req domain.SimulationRequest, out domain.SimulationOutcome, email string) (*Simulation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Simulation, error)
	ListRecent(ctx context.Context, kind domain.SimulationKind, limit int) ([]*Simulation, error)
}

type simulationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSimulationRepository creates a repository over db.
func NewSimulationRepository(db *gorm.DB) SimulationRepository {
	return &simulationRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores a finished run under a fresh id.
func (r *simulationRepository) Create(ctx context.Context, req domain.SimulationRequest, out domain.SimulationOutcome, email string) (*Simulation, error) {
	s := &Simulation{
		ID:        uuid.New(),
		Kind:      out.Kind,
		TaxYear:   out.TaxYear,
		Label:     out.Label,
		Email:     email,
		Request:   req,
		Outcome:   out,
		CreatedAt: r.now(),
	}
	m, err := modelFromSimulation(s)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to store simulation: %w", err)
	}
	return s, nil
}

// FindByID retrieves a stored run.
func (r *simulationRepository) FindByID(ctx context.Context, id uuid.UUID) (*Simulation, error) {
	var m SimulationModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m.ToSimulation()
}

// ListRecent returns the latest runs, newest first. An empty kind lists every simulator.
func (r *simulationRepository) ListRecent(ctx context.Context, kind domain.SimulationKind, limit int) ([]*Simulation, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", string(kind))
	}

	var models []SimulationModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	sims := make([]*Simulation, 0, len(models))
	for i := range models {
		s, err := models[i].ToSimulation()
		if err != nil {
			return nil, err
		}
		sims = append(sims, s)
	}
	return sims, nil
}
