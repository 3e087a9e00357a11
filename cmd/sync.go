package cmd

import (
	"context"
	"fmt"

	"game-sync/core/config"
	"game-sync/core/logger"
	"game-sync/core/propstore"
	"game-sync/core/steam"
	"game-sync/core/transport"
	"game-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncDaily       bool
	syncFullRefresh bool
	syncDryRun      bool
)

// syncCmd performs a full library reconciliation run.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the Steam library against the Notion database",
	Long: `Reconcile the full owned-game inventory against the Notion game database.

New titles are created, titles whose last-played timestamp moved are updated,
and everything else is skipped. With --daily, updated titles additionally
append a per-day playtime delta record.

Examples:
  # Full reconciliation
  game-sync sync

  # Reconciliation plus daily playtime records
  game-sync sync --daily

  # Rewrite all enrichment fields on updates
  game-sync sync --full-refresh

  # Log decisions without writing
  game-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDaily, "daily", false, "Append per-day playtime delta records for updated titles")
	syncCmd.Flags().BoolVar(&syncFullRefresh, "full-refresh", false, "Rewrite all enrichment fields on update instead of the minimal subset")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Log decisions without issuing writes")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	runner, l, err := buildRunner(syncDaily, syncFullRefresh, syncDryRun)
	if err != nil {
		return err
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	l.Info("run summary",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("delta_records", summary.DeltaRecords))
	return nil
}

// buildRunner loads configuration and wires the full component stack.
func buildRunner(daily, fullRefresh, dryRun bool) (*sync.Runner, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l)

	opts, err := sync.OptionsFromConfig(cfg.Sync)
	if err != nil {
		return nil, nil, err
	}
	opts.Daily = daily
	opts.FullRefresh = opts.FullRefresh || fullRefresh
	opts.DryRun = dryRun

	tp := transport.NewClient(cfg.Transport, l)
	store := propstore.NewClient(cfg.Store, tp, l)
	catalog := steam.NewClient(cfg.Steam, tp, l)

	runner := sync.NewRunner(catalog, store,
		cfg.Store.GamesDatabaseID, cfg.Store.DailyDatabaseID, opts, l)
	return runner, l, nil
}
