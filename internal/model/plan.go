package model

import "time"

// EntryStatus tracks how a day's spending compares to its plan.
type EntryStatus string

const (
	StatusGood    EntryStatus = "good"
	StatusWarning EntryStatus = "warning"
	StatusOver    EntryStatus = "over"
)

// PlanSource records where a MonthlyPlan came from. Server-persisted
// plans are authoritative; generated plans are local working copies;
// fallback plans are synthesized placeholders that any real plan may
// replace.
type PlanSource string

const (
	SourceServer    PlanSource = "server"
	SourceGenerated PlanSource = "generated"
	SourceFallback  PlanSource = "fallback"
)

// DailyPlanEntry is one (date, category) cell of a monthly plan.
// Amounts are integer minor currency units. PlannedCents is set at
// plan-build time; SpentCents and Status are updated later by
// transaction recording, not by the planning core.
type DailyPlanEntry struct {
	Date         time.Time   `json:"date"`
	Category     string      `json:"category"`
	PlannedCents int64       `json:"planned_cents"`
	SpentCents   int64       `json:"spent_cents"`
	Status       EntryStatus `json:"status"`
}

// MonthlyPlan is the full per-day, per-category plan for one month.
type MonthlyPlan struct {
	Year     int              `json:"year"`
	Month    time.Month       `json:"month"`
	Currency string           `json:"currency"`
	Source   PlanSource       `json:"source"`
	Tier     Tier             `json:"tier"`
	Entries  []DailyPlanEntry `json:"entries"`
}

// Authoritative reports whether this plan should win over a locally
// generated one for the same month.
func (p MonthlyPlan) Authoritative() bool {
	return p.Source == SourceServer
}

// Days returns the number of distinct dates covered by the plan.
func (p MonthlyPlan) Days() int {
	seen := make(map[string]struct{})
	for _, e := range p.Entries {
		seen[e.Date.Format("2006-01-02")] = struct{}{}
	}
	return len(seen)
}

// TotalPlannedCents sums planned amounts across all entries.
func (p MonthlyPlan) TotalPlannedCents() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.PlannedCents
	}
	return total
}

// TotalSpentCents sums recorded spending across all entries.
func (p MonthlyPlan) TotalSpentCents() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.SpentCents
	}
	return total
}

// EntriesOn returns the plan entries for a single date.
func (p MonthlyPlan) EntriesOn(date time.Time) []DailyPlanEntry {
	y, m, d := date.Date()
	var out []DailyPlanEntry
	for _, e := range p.Entries {
		ey, em, ed := e.Date.Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
