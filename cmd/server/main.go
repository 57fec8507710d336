package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"capprice/internal/config"
	"capprice/internal/email/noop"
	"capprice/internal/email/ses"
	"capprice/internal/handler"
	"capprice/internal/logging"
	"capprice/internal/metrics"
	"capprice/internal/port"
	"capprice/internal/repository/postgres"
	"capprice/internal/router"
	"capprice/internal/service"
	s3storage "capprice/internal/storage/s3"
	"capprice/internal/workflow/n8n"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	simulationRepo := postgres.NewSimulationRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	reports, err := s3storage.NewReportStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}

	mailer, err := newMailer(ctx, &cfg.Email, logger)
	if err != nil {
		return err
	}
	if cfg.Workflow.WebhookURL == "" {
		logger.Warn("workflow webhook URL is not configured; simulations will fail")
	}
	workflow := n8n.NewClient(&cfg.Workflow, logger)
	recorder := metrics.New(prometheus.DefaultRegisterer)

	// Initialize services
	simulationSvc := service.NewSimulationService(simulationRepo, workflow, reports, mailer, recorder, logger)
	statsSvc := service.NewStatsService(statsRepo)

	scheduler := cron.New()
	retention := service.NewRetentionJob(simulationRepo, reports, cfg.Retention, recorder, logger)
	if err := retention.Schedule(scheduler); err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	// Initialize handlers
	simulationH := handler.NewSimulationHandler(simulationSvc, logger)
	statsH := handler.NewStatsHandler(statsSvc, logger)
	healthH := handler.NewHealthHandler(db)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.Setup(logger, cfg.CORS.AllowedOrigins, simulationH, statsH, healthH)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newMailer(ctx context.Context, cfg *config.EmailConfig, logger *zap.Logger) (port.ReportMailer, error) {
	if cfg.Provider == "ses" {
		mailer, err := ses.NewSESMailer(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES mailer: %w", err)
		}
		return mailer, nil
	}
	return noop.NewNoopMailer(logger), nil
}
