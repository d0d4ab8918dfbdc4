package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"budgetd/internal/model"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCents(123456, "USD"))
	assert.Equal(t, "$0.05", FormatCents(5, "USD"))
	assert.Equal(t, "-$12.00", FormatCents(-1200, "USD"))
	assert.Equal(t, "€3.50", FormatCents(350, "EUR"))
	assert.Equal(t, "CHF 1,000.00", FormatCents(100000, "CHF"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-42,000", FormatNumber(-42000))
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "February 2024", FormatMonth(2024, time.February))
}

func TestTableRender(t *testing.T) {
	out := Table{
		Headers: []string{"Day", "Total"},
		Rows:    [][]string{{"1 Mon", "$10.00"}, {"2 Tue", "$9.50"}},
	}.Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Day")
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "$10.00")
}

func TestRenderPlanTotalsMatch(t *testing.T) {
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	plan := model.MonthlyPlan{
		Year:     2025,
		Month:    time.July,
		Currency: "USD",
		Source:   model.SourceGenerated,
		Tier:     model.TierMiddle,
		Entries: []model.DailyPlanEntry{
			{Date: date, Category: "groceries", PlannedCents: 1200},
			{Date: date, Category: "dining", PlannedCents: 800},
		},
	}

	out := RenderPlan(plan, []string{"groceries", "dining"})
	assert.Contains(t, out, "July 2025")
	assert.Contains(t, out, "Month total: $20.00")
}
