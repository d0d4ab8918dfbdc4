package budget

import (
	"math/rand"
	"time"

	"budgetd/internal/model"
)

// DefaultProfile is the profile assumed when no user data is available
// yet. Income matches the allocator's default substitution.
func (g *Generator) DefaultProfile() model.UserFinancialProfile {
	return model.UserFinancialProfile{
		MonthlyIncome: g.alloc.Settings().DefaultMonthlyIncome,
		CountryCode:   "US",
	}
}

// Fallback synthesizes a servable plan when no cached or persisted
// plan exists. It does no I/O and completes immediately, which is the
// point: consumers get a usable calendar before any network round-trip
// finishes.
//
// The plan is marked SourceFallback so the consistency guard replaces
// it without conflict once real data arrives. Spent amounts carry a
// demo spending simulation; the simulation is seeded from (year,
// month) so even this path is reproducible.
func (g *Generator) Fallback(year int, month time.Month, profile *model.UserFinancialProfile) model.MonthlyPlan {
	p := g.DefaultProfile()
	if profile != nil {
		p = *profile
	}

	tier := g.table.ClassifyProfile(p)
	plan := g.Generate(year, month, p, tier)
	plan.Source = model.SourceFallback

	g.simulateSpending(&plan)
	return plan
}

// FallbackDashboard derives a dashboard snapshot from a fallback plan
// so a cleared cache never serves not-found on the dashboard path.
func (g *Generator) FallbackDashboard(now time.Time, profile *model.UserFinancialProfile) model.DashboardSnapshot {
	plan := g.Fallback(now.Year(), now.Month(), profile)

	var todayBudget, todaySpent int64
	for _, e := range plan.EntriesOn(now) {
		todayBudget += e.PlannedCents
		todaySpent += e.SpentCents
	}

	return model.DashboardSnapshot{
		FetchedAt:         now,
		BalanceCents:      plan.TotalPlannedCents() - plan.TotalSpentCents(),
		TodayBudgetCents:  todayBudget,
		TodaySpentCents:   todaySpent,
		MonthPlannedCents: plan.TotalPlannedCents(),
		MonthSpentCents:   plan.TotalSpentCents(),
		Tier:              plan.Tier,
		Currency:          plan.Currency,
	}
}

// simulateSpending fills spent amounts with plausible demo values,
// between 20% and 130% of plan per entry.
func (g *Generator) simulateSpending(plan *model.MonthlyPlan) {
	rng := rand.New(rand.NewSource(int64(plan.Year)*100 + int64(plan.Month)))
	for i := range plan.Entries {
		ratio := 0.2 + rng.Float64()*1.1
		spent := int64(float64(plan.Entries[i].PlannedCents) * ratio)
		plan.Entries[i].SpentCents = spent
		plan.Entries[i].Status = StatusFor(spent, plan.Entries[i].PlannedCents)
	}
}

// StatusFor grades spending against plan: over past 100%, warning past
// 85%, good otherwise.
func StatusFor(spent, planned int64) model.EntryStatus {
	if planned <= 0 {
		if spent > 0 {
			return model.StatusOver
		}
		return model.StatusGood
	}
	switch {
	case spent > planned:
		return model.StatusOver
	case float64(spent) >= 0.85*float64(planned):
		return model.StatusWarning
	default:
		return model.StatusGood
	}
}
