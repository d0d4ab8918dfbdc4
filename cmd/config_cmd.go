package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetd/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:  %s\n", cfg.General.Currency)
	fmt.Printf("    Country:   %s\n", cfg.General.CountryCode)
	if cfg.General.SubregionCode != "" {
		fmt.Printf("    Subregion: %s\n", cfg.General.SubregionCode)
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Weekend multiplier: %.2f\n", cfg.Budget.WeekendMultiplier)
	fmt.Printf("    Overrun tolerance:  %.2f\n", cfg.Budget.OverrunTolerance)
	fmt.Printf("    Default income:     %.2f\n", cfg.Budget.DefaultMonthlyIncome)
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Backend:       %s\n", cfg.Cache.Backend)
	if cfg.Cache.Backend == "redis" {
		fmt.Printf("    Redis:         %s\n", cfg.Cache.RedisAddr)
	} else {
		fmt.Printf("    Path:          %s\n", config.CachePath())
	}
	fmt.Printf("    Dashboard TTL: %s\n", cfg.DashboardTTL())
	fmt.Printf("    Calendar TTL:  %s\n", cfg.CalendarTTL())
	fmt.Printf("    Profile TTL:   %s\n", cfg.ProfileTTL())
	fmt.Println()

	fmt.Println("  [Sync]")
	if cfg.Sync.APIBaseURL != "" {
		fmt.Printf("    API:      %s\n", cfg.Sync.APIBaseURL)
	} else {
		fmt.Println("    API:      not configured (offline mode)")
	}
	fmt.Printf("    Interval: %s\n", cfg.SyncInterval())
	fmt.Printf("    Timeout:  %s\n", cfg.ResourceTimeout())
	fmt.Printf("    Listen:   %s\n", cfg.Sync.ListenAddr)
	fmt.Println()

	if cfg.Thresholds.File != "" {
		fmt.Printf("  Threshold overrides: %s\n", cfg.Thresholds.File)
		fmt.Println()
	}

	fmt.Println("  Run `budgetd setup` to write a config file.")
	return nil
}
