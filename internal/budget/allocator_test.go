package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetd/internal/model"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	alloc, err := NewAllocator(Settings{})
	require.NoError(t, err)
	return alloc
}

func TestAllocateSumWithinRoundingTolerance(t *testing.T) {
	alloc := newTestAllocator(t)
	day := DayAttributes{DayOfMonth: 10, DaysInMonth: 30}

	for _, tier := range model.Tiers {
		amounts := alloc.Allocate(decimal.NewFromInt(5000), tier, day)

		var sum int64
		for _, v := range amounts {
			sum += v
		}

		budget := alloc.DayBudgetCents(decimal.NewFromInt(5000), tier, day)
		assert.LessOrEqual(t, sum, budget+int64(len(amounts)),
			"tier %s: category sum %d exceeds day budget %d beyond rounding", tier, sum, budget)
		assert.Greater(t, sum, int64(0))
	}
}

func TestAllocateMinimumFloor(t *testing.T) {
	alloc := newTestAllocator(t)
	day := DayAttributes{DayOfMonth: 1, DaysInMonth: 31}

	// A one-cent income is positive, so it dodges the default-income
	// substitution and exercises the floor directly.
	amounts := alloc.Allocate(decimal.RequireFromString("0.01"), model.TierLow, day)
	for _, category := range Categories {
		assert.GreaterOrEqual(t, amounts[category], int64(1), "category %s", category)
	}
}

func TestAllocateWeekendBoost(t *testing.T) {
	alloc := newTestAllocator(t)
	income := decimal.NewFromInt(4000)

	weekday := alloc.Allocate(income, model.TierMiddle, DayAttributes{DayOfMonth: 3, DaysInMonth: 30})
	weekend := alloc.Allocate(income, model.TierMiddle, DayAttributes{DayOfMonth: 4, DaysInMonth: 30, Weekend: true})

	for _, category := range Categories {
		assert.Greater(t, weekend[category], weekday[category], "category %s", category)
	}
}

func TestAllocateSubstitutesDefaultIncome(t *testing.T) {
	alloc := newTestAllocator(t)
	day := DayAttributes{DayOfMonth: 15, DaysInMonth: 30}

	zero := alloc.Allocate(decimal.Zero, model.TierLow, day)
	negative := alloc.Allocate(decimal.NewFromInt(-900), model.TierLow, day)
	def := alloc.Allocate(alloc.Settings().DefaultMonthlyIncome, model.TierLow, day)

	assert.Equal(t, def, zero)
	assert.Equal(t, def, negative)
}

func TestNewAllocatorRejectsShrinkingWeekends(t *testing.T) {
	_, err := NewAllocator(Settings{
		WeekendMultiplier: decimal.RequireFromString("0.5"),
	})
	require.Error(t, err)
}

func TestWeightsValidate(t *testing.T) {
	assert.Error(t, Weights{"rent": decimal.RequireFromString("0.3")}.Validate())
	assert.Error(t, Weights{"groceries": decimal.RequireFromString("-0.1")}.Validate())
	assert.Error(t, Weights{
		"groceries": decimal.RequireFromString("0.6"),
		"shopping":  decimal.RequireFromString("0.6"),
	}.Validate())
	assert.NoError(t, Weights{"groceries": decimal.RequireFromString("0.4")}.Validate())
}

func TestTierWeightTablesAreValid(t *testing.T) {
	for tier, w := range tierWeights {
		assert.NoError(t, w.Validate(), "tier %s", tier)
		assert.True(t, w.FlexibleShare().LessThanOrEqual(decimal.NewFromInt(1)), "tier %s", tier)
	}
}
