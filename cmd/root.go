// Package cmd implements the budgetd CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"budgetd/internal/budget"
	"budgetd/internal/classify"
	"budgetd/internal/config"
	"budgetd/internal/planner"
	"budgetd/internal/remote"
	"budgetd/internal/store"
)

var (
	flagCachePath string
	flagNoCache   bool
	flagAPIURL    string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetd",
	Short: "Offline-first budget planning CLI",
	Long:  "Classify income, allocate daily budgets, and keep a local cache synced with the budget API.",
	RunE:  runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache-path", "", "Override SQLite cache location")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Use an in-memory cache for this invocation")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Override budget API base URL")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// buildPlanner wires the full planning stack from configuration. The
// returned cleanup closes the cache backend.
func buildPlanner(log *logrus.Logger) (*planner.Service, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}
	if flagAPIURL != "" {
		cfg.Sync.APIBaseURL = flagAPIURL
	}

	table := classify.NewTable()
	if cfg.Thresholds.File != "" {
		if err := table.LoadOverrides(cfg.Thresholds.File); err != nil {
			return nil, cfg, nil, fmt.Errorf("loading threshold overrides: %w", err)
		}
	}

	alloc, err := budget.NewAllocator(settingsFromConfig(cfg))
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("building allocator: %w", err)
	}
	gen := budget.NewGenerator(alloc, table)

	st, err := openStore(cfg)
	if err != nil {
		return nil, cfg, nil, err
	}

	var remoteAPI planner.RemoteAPI
	if cfg.Sync.APIBaseURL != "" {
		remoteAPI = remote.NewClient(cfg.Sync.APIBaseURL, cfg.ResourceTimeout())
	}

	p := planner.New(cfg, st, remoteAPI, gen, table, log)
	cleanup := func() { _ = st.Close() }
	return p, cfg, cleanup, nil
}

// openStore picks the cache backend from config. --no-cache forces the
// in-memory backend regardless.
func openStore(cfg config.Config) (store.Store, error) {
	if flagNoCache {
		return store.NewMemory(), nil
	}

	switch cfg.Cache.Backend {
	case "", "sqlite":
		dbPath := config.CachePath()
		if flagCachePath != "" {
			dbPath = flagCachePath
		}
		st, err := store.OpenSQLite(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return st, nil
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		st, err := store.OpenRedis(cfg.Cache.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis cache: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func settingsFromConfig(cfg config.Config) budget.Settings {
	s := budget.Settings{Currency: cfg.General.Currency}
	if cfg.Budget.WeekendMultiplier > 0 {
		s.WeekendMultiplier = decimal.NewFromFloat(cfg.Budget.WeekendMultiplier)
	}
	if cfg.Budget.OverrunTolerance > 0 {
		s.MonthlyOverrunTolerance = decimal.NewFromFloat(cfg.Budget.OverrunTolerance)
	}
	if cfg.Budget.DefaultMonthlyIncome > 0 {
		s.DefaultMonthlyIncome = decimal.NewFromFloat(cfg.Budget.DefaultMonthlyIncome)
	}
	return s
}
