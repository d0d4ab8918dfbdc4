package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetd/internal/classify"
	"budgetd/internal/model"
)

// Generator drives the allocator across every day of a month.
type Generator struct {
	alloc *Allocator
	table *classify.Table
}

// NewGenerator returns a calendar generator over the given allocator
// and threshold table.
func NewGenerator(alloc *Allocator, table *classify.Table) *Generator {
	return &Generator{alloc: alloc, table: table}
}

// DaysInMonth returns the day count for a (year, month), leap years
// included.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Generate builds the full plan for one month. Identical inputs
// produce identical plans: entries are emitted in date order with a
// fixed category order, and nothing on this path is randomized.
//
// Non-positive income is substituted by the allocator's default income
// rather than producing an all-zero plan.
func (g *Generator) Generate(year int, month time.Month, profile model.UserFinancialProfile, tier model.Tier) model.MonthlyPlan {
	days := DaysInMonth(year, month)

	plan := model.MonthlyPlan{
		Year:     year,
		Month:    month,
		Currency: g.alloc.Settings().Currency,
		Source:   model.SourceGenerated,
		Tier:     tier,
		Entries:  make([]model.DailyPlanEntry, 0, days*len(Categories)),
	}

	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		attrs := DayAttributes{
			DayOfMonth:  day,
			DaysInMonth: days,
			Weekend:     date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		}
		amounts := g.alloc.Allocate(profile.MonthlyIncome, tier, attrs)

		for _, category := range Categories {
			planned, ok := amounts[category]
			if !ok {
				continue
			}
			plan.Entries = append(plan.Entries, model.DailyPlanEntry{
				Date:         date,
				Category:     category,
				PlannedCents: planned,
				Status:       model.StatusGood,
			})
		}
	}

	g.capWeekendOverrun(&plan, profile.MonthlyIncome, tier)
	return plan
}

// capWeekendOverrun scales weekend entries down when the weekend
// multiplier pushes the month total past the flexible budget plus the
// configured tolerance. The cap is enforced by scaling rather than by
// refusing the multiplier so weekday allocations stay untouched.
func (g *Generator) capWeekendOverrun(plan *model.MonthlyPlan, income decimal.Decimal, tier model.Tier) {
	budget := g.alloc.MonthlyBudgetCents(income, tier)
	tolerance := g.alloc.Settings().MonthlyOverrunTolerance
	capCents := decimal.NewFromInt(budget).
		Mul(decimal.NewFromInt(1).Add(tolerance)).
		Round(0).IntPart()

	total := plan.TotalPlannedCents()
	if total <= capCents {
		return
	}

	var weekendTotal int64
	for _, e := range plan.Entries {
		if isWeekend(e.Date) {
			weekendTotal += e.PlannedCents
		}
	}
	if weekendTotal == 0 {
		return
	}

	excess := total - capCents
	scaled := weekendTotal - excess
	if scaled < 0 {
		scaled = 0
	}
	factor := decimal.NewFromInt(scaled).Div(decimal.NewFromInt(weekendTotal))

	for i := range plan.Entries {
		if !isWeekend(plan.Entries[i].Date) {
			continue
		}
		amount := decimal.NewFromInt(plan.Entries[i].PlannedCents).Mul(factor).Round(0).IntPart()
		if amount < 1 {
			amount = 1
		}
		plan.Entries[i].PlannedCents = amount
	}
}

func isWeekend(date time.Time) bool {
	return date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
}
