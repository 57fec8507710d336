package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"capprice/internal/domain"
)

// SimulationRepository persists simulations.
type SimulationRepository interface {
	Create(ctx context.Context, sim *domain.Simulation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)
	// List returns a page of simulations, newest first, and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error)
	// ListAfter returns up to limit simulations with an ID greater than after, in ID
	// order. It is used to walk the whole table in batches.
	ListAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Simulation, error)
	UpdateNormalization(ctx context.Context, sim *domain.Simulation) error
	// DeleteOlderThan removes simulations created before cutoff and returns the report
	// keys they referenced.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, int, error)
}
