package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"capprice/internal/domain"
	"capprice/internal/port"
)

const simulationColumns = `id, form, raw_payload, scenarios, scenario_count, tier, report_key, created_at, updated_at`

type simulationRepo struct {
	db *sqlx.DB
}

// NewSimulationRepo creates a new PostgreSQL-backed SimulationRepository.
func NewSimulationRepo(db *sqlx.DB) port.SimulationRepository {
	return &simulationRepo{db: db}
}

func (r *simulationRepo) Create(ctx context.Context, sim *domain.Simulation) error {
	now := time.Now().UTC()
	sim.CreatedAt = now
	sim.UpdatedAt = now

	query := `INSERT INTO simulations
		(id, form, raw_payload, scenarios, scenario_count, tier, report_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		sim.ID, []byte(sim.Form), []byte(sim.RawPayload), []byte(sim.Scenarios),
		sim.ScenarioCount, sim.Tier, sim.ReportKey, sim.CreatedAt, sim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("simulationRepo.Create: %w", err)
	}
	return nil
}

func (r *simulationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	var sim domain.Simulation
	err := r.db.GetContext(ctx, &sim,
		"SELECT "+simulationColumns+" FROM simulations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSimulationNotFound
		}
		return nil, fmt.Errorf("simulationRepo.GetByID: %w", err)
	}
	return &sim, nil
}

func (r *simulationRepo) List(ctx context.Context, offset, limit int) ([]domain.Simulation, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM simulations"); err != nil {
		return nil, 0, fmt.Errorf("simulationRepo.List count: %w", err)
	}

	var sims []domain.Simulation
	err := r.db.SelectContext(ctx, &sims,
		`SELECT `+simulationColumns+` FROM simulations
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("simulationRepo.List: %w", err)
	}
	return sims, total, nil
}

func (r *simulationRepo) ListAfter(ctx context.Context, after uuid.UUID, limit int) ([]domain.Simulation, error) {
	var sims []domain.Simulation
	err := r.db.SelectContext(ctx, &sims,
		`SELECT `+simulationColumns+` FROM simulations
		 WHERE id > $1 ORDER BY id LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, fmt.Errorf("simulationRepo.ListAfter: %w", err)
	}
	return sims, nil
}

func (r *simulationRepo) UpdateNormalization(ctx context.Context, sim *domain.Simulation) error {
	sim.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE simulations
		 SET scenarios = $1, scenario_count = $2, tier = $3, updated_at = $4
		 WHERE id = $5`,
		[]byte(sim.Scenarios), sim.ScenarioCount, sim.Tier, sim.UpdatedAt, sim.ID)
	if err != nil {
		return fmt.Errorf("simulationRepo.UpdateNormalization: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSimulationNotFound
	}
	return nil
}

func (r *simulationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]string, int, error) {
	var deleted []struct {
		ID        uuid.UUID `db:"id"`
		ReportKey *string   `db:"report_key"`
	}
	err := r.db.SelectContext(ctx, &deleted,
		"DELETE FROM simulations WHERE created_at < $1 RETURNING id, report_key", cutoff)
	if err != nil {
		return nil, 0, fmt.Errorf("simulationRepo.DeleteOlderThan: %w", err)
	}

	var keys []string
	for _, d := range deleted {
		if d.ReportKey != nil && *d.ReportKey != "" {
			keys = append(keys, *d.ReportKey)
		}
	}
	return keys, len(deleted), nil
}
