// Command renormalize re-runs the normalizer over every stored workflow payload and
// updates the scenarios and tier of simulations whose result changed.
// Usage: go run ./cmd/renormalize [--batch-size N] [--dry-run]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"capprice/internal/config"
	"capprice/internal/logging"
	"capprice/internal/repository/postgres"
	"capprice/internal/service"
)

var (
	batchSize int
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:           "renormalize",
	Short:         "Re-normalize stored simulations",
	Long:          `Re-runs scenario extraction over the raw workflow payload of every stored simulation.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRenormalize,
}

func init() {
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 100, "simulations read per query")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing them")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "renormalize:", err)
		os.Exit(1)
	}
}

func runRenormalize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := service.NewRenormalizer(postgres.NewSimulationRepo(db), logger).Run(ctx, batchSize, dryRun)
	if err != nil {
		return err
	}

	logger.Info("renormalize finished",
		zap.Int("scanned", stats.Scanned),
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "scanned %d, updated %d, failed %d\n", stats.Scanned, stats.Updated, stats.Failed)
	return nil
}
