package planner

import (
	"github.com/sirupsen/logrus"

	"budgetd/internal/model"
)

// ResolvePlan decides which plan is authoritative for a month.
//
// A server-persisted plan wins outright: a freshly regenerated calendar
// must never shadow a plan the user committed earlier (the onboarding
// submission path). A fallback plan loses to any real plan. When both
// candidates look committed but disagree on totals, the guard still
// returns the persisted plan and logs a warning, because two
// authoritative plans for one month means an upstream defect.
func (s *Service) ResolvePlan(cached, persisted *model.MonthlyPlan) model.MonthlyPlan {
	switch {
	case cached == nil && persisted == nil:
		return model.MonthlyPlan{}
	case persisted == nil:
		return *cached
	case cached == nil:
		return *persisted
	}

	if cached.Source != model.SourceFallback && plansDiverge(*cached, *persisted) {
		s.log.WithFields(logrus.Fields{
			"year":           persisted.Year,
			"month":          int(persisted.Month),
			"cached_source":  cached.Source,
			"cached_planned": cached.TotalPlannedCents(),
			"server_planned": persisted.TotalPlannedCents(),
		}).Warn("cached and persisted plans diverge; serving persisted plan")
	}

	return *persisted
}

// plansDiverge reports whether two plans for the same month disagree on
// planned amounts.
func plansDiverge(a, b model.MonthlyPlan) bool {
	return a.TotalPlannedCents() != b.TotalPlannedCents() || len(a.Entries) != len(b.Entries)
}
