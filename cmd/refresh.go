package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force one sync pass against the budget API",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(_ *cobra.Command, _ []string) error {
	log := newLogger()
	p, cfg, cleanup, err := buildPlanner(log)
	if err != nil {
		return err
	}
	defer cleanup()

	out := p.RefreshData(3 * cfg.ResourceTimeout())
	if out.Skipped {
		fmt.Println("  Sync already in progress, skipped")
		return nil
	}

	report := func(name string, err error) {
		if err != nil {
			fmt.Printf("  %-9s failed: %v\n", name, err)
			return
		}
		fmt.Printf("  %-9s refreshed\n", name)
	}
	report("profile", out.Profile)
	report("dashboard", out.Dashboard)
	report("calendar", out.Calendar)

	if out.Failed() {
		fmt.Println("  Cached data kept for failed resources.")
	}
	return nil
}
