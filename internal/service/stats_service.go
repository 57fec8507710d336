package service

import (
	"context"
	"time"

	"capprice/internal/domain"
	"capprice/internal/port"
)

// StatsService provides aggregate statistics.
type StatsService interface {
	// GetStats aggregates the simulations of the last days days, or all of them when
	// days is not positive.
	GetStats(ctx context.Context, days int) (*domain.SimulationStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	now       func() time.Time
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo, now: time.Now}
}

func (s *statsService) GetStats(ctx context.Context, days int) (*domain.SimulationStats, error) {
	var since time.Time
	if days > 0 {
		since = s.now().UTC().AddDate(0, 0, -days)
	}
	return s.statsRepo.GetSimulationStats(ctx, since)
}
