package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetd/internal/config"
)

var (
	flagSetupCurrency  string
	flagSetupCountry   string
	flagSetupSubregion string
	flagSetupAPIURL    string
	flagSetupBackend   string
	flagSetupForce     bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write the config file",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&flagSetupCurrency, "currency", "USD", "Display currency code")
	setupCmd.Flags().StringVar(&flagSetupCountry, "country", "US", "ISO country code")
	setupCmd.Flags().StringVar(&flagSetupSubregion, "subregion", "", "Subregion code (optional)")
	setupCmd.Flags().StringVar(&flagSetupAPIURL, "api-base-url", "", "Budget API base URL (empty for offline mode)")
	setupCmd.Flags().StringVar(&flagSetupBackend, "backend", "sqlite", "Cache backend: sqlite, memory, or redis")
	setupCmd.Flags().BoolVar(&flagSetupForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	if config.Exists() && !flagSetupForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.ConfigPath())
	}

	cfg := config.DefaultConfig()
	cfg.General.Currency = flagSetupCurrency
	cfg.General.CountryCode = flagSetupCountry
	cfg.General.SubregionCode = flagSetupSubregion
	cfg.Sync.APIBaseURL = flagSetupAPIURL
	cfg.Cache.Backend = flagSetupBackend

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("  Wrote %s\n", config.ConfigPath())
	return nil
}
