// Package cli provides the command-line interface for Fiscara.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/civita-labs/fiscara-cli/internal/adapters/driven/config/file"
	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/registry"
	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/statistics"
	filestore "github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/file"
	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/sqlite"
	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driving"
	"github.com/civita-labs/fiscara-cli/internal/core/services"
	"github.com/civita-labs/fiscara-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// runJournal is the journal surface the report command reads: past run
// summaries and the current failure reason class per locality.
type runJournal interface {
	Runs(ctx context.Context) ([]sqlite.RunSummary, error)
	FailureReasons(ctx context.Context) (map[string]map[string]domain.FailureReason, error)
}

// Services wired by initServices. Tests swap these for mocks.
var (
	configStore       driven.ConfigStore
	resultStore       driven.ResultStore
	resolverService   driving.Resolver
	aggregatorService driving.Aggregator
	batchRunner       driving.BatchRunner
	journal           runJournal
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "fiscara",
	Short: "Resolve localities to fiscal entities and collect their statistics",
	Long: `Fiscara resolves a catalog of locality names against the public
fiscal entity registry and collects per-locality statistics: the
land-tax revenue figure and the housing-unit count.

Runs are incremental: localities already resolved with data are
skipped, so an interrupted batch picks up where it left off.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.fiscara)")
}

// Execute wires the services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration. Already-set
// services are left alone so tests can inject mocks.
func initServices() error {
	if batchRunner != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = cfg

	logger.Debug("Config loaded from %s", cfg.Path())

	search := registry.NewClient(registry.Config{
		BaseURL: cfg.GetString("registry.base_url"),
	})

	stats := statistics.NewClient(statistics.Config{
		BaseURL: cfg.GetString("statistics.base_url"),
		Dataset: cfg.GetString("statistics.dataset"),
	})

	catalogPath := cfg.GetString("paths.catalog")
	if catalogPath == "" {
		catalogPath = configfile.DefaultPath(configDir, "catalog.json")
	}
	resultsPath := cfg.GetString("paths.results")
	if resultsPath == "" {
		resultsPath = configfile.DefaultPath(configDir, "results.json")
	}

	catalogStore := filestore.NewCatalogStore(catalogPath)
	resultStore = filestore.NewResultStore(resultsPath)

	// The run journal is diagnostic only: a broken journal downgrades
	// to an unjournalled run instead of blocking the batch.
	var checkpoint driven.CheckpointStore
	journalStore, err := sqlite.NewStore(cfg.GetString("paths.data"))
	if err != nil {
		logger.Warn("Run journal unavailable: %v", err)
	} else {
		checkpoint = journalStore
		journal = journalStore
	}

	resolverService = services.NewResolverService(search, cfg.GetInt("batch.search_limit"))
	aggregatorService = services.NewAggregatorService(
		stats,
		stats,
		cfg.GetIntSlice("batch.tax_years"),
		cfg.GetString("batch.revenue_category"),
	)

	paceDelay := time.Duration(cfg.GetInt("batch.pace_delay_ms")) * time.Millisecond
	batchRunner = services.NewBatchOrchestrator(
		catalogStore,
		resultStore,
		resolverService,
		aggregatorService,
		checkpoint,
		paceDelay,
	)

	return nil
}
