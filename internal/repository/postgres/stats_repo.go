package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"capprice/internal/domain"
	"capprice/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const simulationStatsQuery = `SELECT
	COUNT(*) AS total_simulations,
	COUNT(report_key) AS with_report,
	COALESCE(SUM(scenario_count), 0) AS total_scenarios,
	COUNT(CASE WHEN tier = 'flat_array' THEN 1 END) AS tier_flat_array,
	COUNT(CASE WHEN tier = 'wrapped_bucket' THEN 1 END) AS tier_wrapped_bucket,
	COUNT(CASE WHEN tier = 'deep_bucket' THEN 1 END) AS tier_deep_bucket,
	COUNT(CASE WHEN tier = 'flat_object' THEN 1 END) AS tier_flat_object,
	MAX(created_at) AS last_simulation_at
FROM simulations WHERE created_at >= $1`

func (r *statsRepo) GetSimulationStats(ctx context.Context, since time.Time) (*domain.SimulationStats, error) {
	var stats domain.SimulationStats
	if err := r.db.GetContext(ctx, &stats, simulationStatsQuery, since); err != nil {
		return nil, fmt.Errorf("statsRepo.GetSimulationStats: %w", err)
	}
	return &stats, nil
}
