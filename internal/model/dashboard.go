package model

import "time"

// DashboardSnapshot is the compact state served on the instant
// dashboard path. It is cached as a single blob and replaced wholesale
// on each successful sync.
type DashboardSnapshot struct {
	FetchedAt         time.Time `json:"fetched_at"`
	BalanceCents      int64     `json:"balance_cents"`
	TodayBudgetCents  int64     `json:"today_budget_cents"`
	TodaySpentCents   int64     `json:"today_spent_cents"`
	MonthPlannedCents int64     `json:"month_planned_cents"`
	MonthSpentCents   int64     `json:"month_spent_cents"`
	Tier              Tier      `json:"tier"`
	Currency          string    `json:"currency"`
}

// TodayRemainingCents returns what is left of today's budget, floored at zero.
func (s DashboardSnapshot) TodayRemainingCents() int64 {
	rem := s.TodayBudgetCents - s.TodaySpentCents
	if rem < 0 {
		return 0
	}
	return rem
}
