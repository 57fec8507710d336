package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"capprice/internal/config"
	"capprice/internal/metrics"
	"capprice/internal/port"
)

// reportDeleteConcurrency bounds parallel report deletions during a purge.
const reportDeleteConcurrency = 8

// RetentionJob deletes simulations older than the configured retention, along with
// their stored reports.
type RetentionJob struct {
	repo    port.SimulationRepository
	reports port.ReportStore
	cfg     config.RetentionConfig
	metrics *metrics.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewRetentionJob creates a RetentionJob.
func NewRetentionJob(
	repo port.SimulationRepository,
	reports port.ReportStore,
	cfg config.RetentionConfig,
	rec *metrics.Recorder,
	logger *zap.Logger,
) *RetentionJob {
	return &RetentionJob{
		repo:    repo,
		reports: reports,
		cfg:     cfg,
		metrics: rec,
		logger:  logger,
		now:     time.Now,
	}
}

// Schedule registers the job on c. It does nothing when retention is disabled.
func (j *RetentionJob) Schedule(c *cron.Cron) error {
	if !j.cfg.Enabled() {
		j.logger.Info("retentionJob.Schedule: retention disabled")
		return nil
	}
	_, err := c.AddFunc(j.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("retentionJob: run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling retention job %q: %w", j.cfg.Schedule, err)
	}
	j.logger.Info("retentionJob.Schedule: scheduled",
		zap.String("schedule", j.cfg.Schedule), zap.Int("days", j.cfg.Days))
	return nil
}

// Run purges expired simulations once and returns how many were deleted. A report that
// cannot be removed from storage is logged and skipped.
func (j *RetentionJob) Run(ctx context.Context) (int, error) {
	if !j.cfg.Enabled() {
		return 0, nil
	}
	cutoff := j.now().UTC().Add(-j.cfg.MaxAge())

	keys, deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("retentionJob.Run: %w", err)
	}
	var g errgroup.Group
	g.SetLimit(reportDeleteConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			if err := j.reports.Delete(ctx, key); err != nil {
				j.logger.Warn("retentionJob.Run: deleting report failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	j.metrics.Purged(deleted)
	j.logger.Info("retentionJob.Run: purge complete",
		zap.Time("cutoff", cutoff), zap.Int("deleted", deleted), zap.Int("reports", len(keys)))
	return deleted, nil
}
