package port

import (
	"context"
	"time"

	"capprice/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	// GetSimulationStats aggregates simulations created at or after since.
	GetSimulationStats(ctx context.Context, since time.Time) (*domain.SimulationStats, error)
}
