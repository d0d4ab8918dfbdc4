package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetd/internal/cli"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's budget at a glance",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	log := newLogger()
	p, _, cleanup, err := buildPlanner(log)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, degraded := p.GetDashboardData()
	fmt.Print(cli.RenderDashboard(snap, degraded))
	return nil
}
