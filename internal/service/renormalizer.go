package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"capprice/internal/port"
	"capprice/internal/pricing"
)

// RenormalizeStats summarizes one backfill pass.
type RenormalizeStats struct {
	Scanned int
	Updated int
	Failed  int
}

// Renormalizer re-runs the normalizer over stored workflow payloads so changes to the
// extraction rules reach existing simulations.
type Renormalizer struct {
	repo   port.SimulationRepository
	logger *zap.Logger
}

// NewRenormalizer creates a Renormalizer.
func NewRenormalizer(repo port.SimulationRepository, logger *zap.Logger) *Renormalizer {
	return &Renormalizer{repo: repo, logger: logger}
}

// Run walks every simulation in batches of batchSize. Simulations whose scenarios or
// tier change are updated unless dryRun is set. A result with no scenarios never
// replaces stored ones.
func (r *Renormalizer) Run(ctx context.Context, batchSize int, dryRun bool) (RenormalizeStats, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var stats RenormalizeStats
	after := uuid.Nil
	for {
		sims, err := r.repo.ListAfter(ctx, after, batchSize)
		if err != nil {
			return stats, fmt.Errorf("renormalizer.Run: listing after %s: %w", after, err)
		}
		if len(sims) == 0 {
			break
		}

		for i := range sims {
			sim := &sims[i]
			stats.Scanned++

			var req SimulationRequest
			if err := json.Unmarshal(sim.Form, &req); err != nil {
				stats.Failed++
				r.logger.Warn("renormalizer.Run: unreadable form", zap.Stringer("simulation_id", sim.ID), zap.Error(err))
				continue
			}

			result := pricing.Normalize(workflowPayload(sim.RawPayload), req.FormContext())
			if !result.HasScenarios() {
				r.logger.Warn("renormalizer.Run: payload no longer yields scenarios, keeping stored ones",
					zap.Stringer("simulation_id", sim.ID))
				continue
			}

			scenarios, err := json.Marshal(result.Scenarios)
			if err != nil {
				stats.Failed++
				continue
			}
			if result.Tier == sim.Tier && jsonEqual(scenarios, sim.Scenarios) {
				continue
			}

			sim.Scenarios = scenarios
			sim.ScenarioCount = len(result.Scenarios)
			sim.Tier = result.Tier
			stats.Updated++
			if dryRun {
				continue
			}
			if err := r.repo.UpdateNormalization(ctx, sim); err != nil {
				stats.Updated--
				stats.Failed++
				r.logger.Error("renormalizer.Run: update failed", zap.Stringer("simulation_id", sim.ID), zap.Error(err))
			}
		}

		after = sims[len(sims)-1].ID
		if len(sims) < batchSize {
			break
		}
	}

	r.logger.Info("renormalizer.Run: done",
		zap.Int("scanned", stats.Scanned),
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
		zap.Bool("dry_run", dryRun),
	)
	return stats, nil
}

// jsonEqual compares two JSON documents ignoring formatting. jsonb storage does not
// keep the whitespace or member order of what was written.
func jsonEqual(a, b []byte) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	ca, errA := json.Marshal(va)
	cb, errB := json.Marshal(vb)
	return errA == nil && errB == nil && bytes.Equal(ca, cb)
}
