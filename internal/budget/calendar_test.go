package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetd/internal/classify"
	"budgetd/internal/model"
)

func newTestGenerator(t *testing.T, settings Settings) *Generator {
	t.Helper()
	alloc, err := NewAllocator(settings)
	require.NoError(t, err)
	return NewGenerator(alloc, classify.NewTable())
}

func testProfile(income int64) model.UserFinancialProfile {
	return model.UserFinancialProfile{
		MonthlyIncome: decimal.NewFromInt(income),
		CountryCode:   "US",
		SubregionCode: "CA",
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2024, time.April, 30},
		{2024, time.January, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestGenerateCoversEveryDay(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	plan := g.Generate(2024, time.February, testProfile(5000), model.TierLowerMiddle)
	assert.Equal(t, 29, plan.Days())
	assert.Len(t, plan.Entries, 29*len(Categories))

	plan = g.Generate(2023, time.February, testProfile(5000), model.TierLowerMiddle)
	assert.Equal(t, 28, plan.Days())
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	a := g.Generate(2025, time.June, testProfile(5000), model.TierMiddle)
	b := g.Generate(2025, time.June, testProfile(5000), model.TierMiddle)
	assert.Equal(t, a, b)
}

func TestGenerateMarksSourceAndTier(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	plan := g.Generate(2025, time.March, testProfile(5000), model.TierLowerMiddle)
	assert.Equal(t, model.SourceGenerated, plan.Source)
	assert.Equal(t, model.TierLowerMiddle, plan.Tier)
	assert.Equal(t, "USD", plan.Currency)
	for _, e := range plan.Entries {
		assert.Equal(t, model.StatusGood, e.Status)
		assert.Zero(t, e.SpentCents)
	}
}

func TestGenerateZeroIncomeIsNeverAllZero(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	plan := g.Generate(2025, time.May, model.UserFinancialProfile{}, model.TierLow)
	assert.Positive(t, plan.TotalPlannedCents())
}

func TestGenerateCapsWeekendOverrun(t *testing.T) {
	// A 4x weekend multiplier would overshoot the monthly flexible
	// budget by far more than the 30% tolerance without capping.
	g := newTestGenerator(t, Settings{
		WeekendMultiplier: decimal.NewFromInt(4),
	})

	income := decimal.NewFromInt(5000)
	plan := g.Generate(2025, time.March, testProfile(5000), model.TierMiddle)

	budget := g.alloc.MonthlyBudgetCents(income, model.TierMiddle)
	cap := budget + budget*30/100

	// One cent of rounding slack per entry.
	assert.LessOrEqual(t, plan.TotalPlannedCents(), cap+int64(len(plan.Entries)))
}

func TestGenerateModestMultiplierNeedsNoCap(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	income := decimal.NewFromInt(5000)
	plan := g.Generate(2025, time.March, testProfile(5000), model.TierMiddle)

	// Default 1.5x weekends land well inside the tolerance, so weekend
	// entries keep their full boost.
	budget := g.alloc.MonthlyBudgetCents(income, model.TierMiddle)
	assert.Greater(t, plan.TotalPlannedCents(), budget)
	assert.LessOrEqual(t, plan.TotalPlannedCents(), budget+budget*30/100)
}

func TestFallbackPlanIsServable(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	plan := g.Fallback(2025, time.February, nil)
	assert.Equal(t, model.SourceFallback, plan.Source)
	assert.Equal(t, 28, plan.Days())
	assert.Positive(t, plan.TotalPlannedCents())
	assert.Positive(t, plan.TotalSpentCents())
	assert.False(t, plan.Authoritative())
}

func TestFallbackIsSeeded(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	a := g.Fallback(2025, time.April, nil)
	b := g.Fallback(2025, time.April, nil)
	assert.Equal(t, a, b)
}

func TestFallbackDashboard(t *testing.T) {
	g := newTestGenerator(t, Settings{})

	now := time.Date(2025, time.July, 12, 9, 0, 0, 0, time.UTC)
	snap := g.FallbackDashboard(now, nil)

	assert.Positive(t, snap.TodayBudgetCents)
	assert.Positive(t, snap.MonthPlannedCents)
	assert.Equal(t, now, snap.FetchedAt)
	assert.NotEmpty(t, snap.Tier)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, model.StatusGood, StatusFor(0, 1000))
	assert.Equal(t, model.StatusGood, StatusFor(849, 1000))
	assert.Equal(t, model.StatusWarning, StatusFor(850, 1000))
	assert.Equal(t, model.StatusWarning, StatusFor(1000, 1000))
	assert.Equal(t, model.StatusOver, StatusFor(1001, 1000))
	assert.Equal(t, model.StatusOver, StatusFor(5, 0))
	assert.Equal(t, model.StatusGood, StatusFor(0, 0))
}
