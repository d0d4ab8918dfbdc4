package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"budgetd/internal/budget"
	"budgetd/internal/cli"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [year month]",
	Short: "Show the per-day budget plan for a month",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if len(args) == 1 {
		return fmt.Errorf("calendar takes both year and month, or neither")
	}
	if len(args) == 2 {
		y, err := strconv.Atoi(args[0])
		if err != nil || y < 1970 || y > 9999 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		m, err := strconv.Atoi(args[1])
		if err != nil || m < 1 || m > 12 {
			return fmt.Errorf("invalid month %q", args[1])
		}
		year, month = y, time.Month(m)
	}

	log := newLogger()
	p, _, cleanup, err := buildPlanner(log)
	if err != nil {
		return err
	}
	defer cleanup()

	plan, degraded := p.GetCalendarData(year, month)
	if degraded {
		fmt.Println("  (serving locally generated data)")
	}
	fmt.Print(cli.RenderPlan(plan, budget.Categories))
	return nil
}
