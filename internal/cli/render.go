package cli

import (
	"fmt"
	"strings"
	"time"

	"budgetd/internal/model"
)

// Table is a plain-text table with a header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with padded columns.
func (t Table) Render() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if pad := widths[i] - len(cell); pad > 0 && i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(t.Headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteByte('\n')
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// RenderDashboard formats a dashboard snapshot for terminal output.
func RenderDashboard(snap model.DashboardSnapshot, degraded bool) string {
	var b strings.Builder
	b.WriteString("Dashboard")
	if degraded {
		b.WriteString("  (offline data)")
	}
	b.WriteString("\n\n")

	rows := [][]string{
		{"Balance", FormatCents(snap.BalanceCents, snap.Currency)},
		{"Today's budget", FormatCents(snap.TodayBudgetCents, snap.Currency)},
		{"Spent today", FormatCents(snap.TodaySpentCents, snap.Currency)},
		{"Remaining today", FormatCents(snap.TodayRemainingCents(), snap.Currency)},
		{"Month planned", FormatCents(snap.MonthPlannedCents, snap.Currency)},
		{"Month spent", FormatCents(snap.MonthSpentCents, snap.Currency)},
		{"Income tier", snap.Tier.Label()},
	}
	if snap.MonthPlannedCents > 0 {
		used := float64(snap.MonthSpentCents) / float64(snap.MonthPlannedCents)
		rows = append(rows, []string{"Month used", FormatPercent(used)})
	}
	b.WriteString(Table{Headers: []string{"Metric", "Value"}, Rows: rows}.Render())
	return b.String()
}

// RenderPlan formats a monthly plan as a per-day table with category
// columns and a daily total.
func RenderPlan(plan model.MonthlyPlan, categories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s", FormatMonth(plan.Year, plan.Month), plan.Source)
	if plan.Tier != "" {
		fmt.Fprintf(&b, ", %s", plan.Tier.Label())
	}
	b.WriteString("]\n\n")

	headers := append([]string{"Day"}, categories...)
	headers = append(headers, "Total")

	byDay := make(map[string]map[string]int64)
	for _, e := range plan.Entries {
		key := e.Date.Format("2006-01-02")
		day := byDay[key]
		if day == nil {
			day = make(map[string]int64)
			byDay[key] = day
		}
		day[e.Category] += e.PlannedCents
	}

	var rows [][]string
	for day := 1; day <= plan.Days(); day++ {
		date := time.Date(plan.Year, plan.Month, day, 0, 0, 0, 0, time.UTC)
		key := date.Format("2006-01-02")
		cells := []string{fmt.Sprintf("%2d %s", day, FormatDayOfWeek(int(date.Weekday())))}
		var total int64
		for _, cat := range categories {
			cents := byDay[key][cat]
			total += cents
			cells = append(cells, FormatCents(cents, plan.Currency))
		}
		cells = append(cells, FormatCents(total, plan.Currency))
		rows = append(rows, cells)
	}

	b.WriteString(Table{Headers: headers, Rows: rows}.Render())
	fmt.Fprintf(&b, "\nMonth total: %s\n", FormatCents(plan.TotalPlannedCents(), plan.Currency))
	return b.String()
}
