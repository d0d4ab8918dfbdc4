package planner

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"budgetd/internal/model"
	"budgetd/internal/remote"
	"budgetd/internal/store"
)

// ErrNoRemote indicates no budget API endpoint is configured; sync is a
// local-only deployment no-op.
var ErrNoRemote = errors.New("planner: no remote API configured")

// SyncOutcome reports one sync pass. Each resource carries its own
// error so one slow or failing fetch never hides the others.
type SyncOutcome struct {
	At        time.Time
	Skipped   bool
	Profile   error
	Dashboard error
	Calendar  error
}

// Failed reports whether any resource refresh failed.
func (o SyncOutcome) Failed() bool {
	return o.Profile != nil || o.Dashboard != nil || o.Calendar != nil
}

// SyncOnce refreshes the profile, dashboard, and current-month calendar
// cache entries from the remote API.
//
// Overlap prevention: a pass starting while another is in flight is
// dropped, not queued. A periodic tick can therefore be skipped under
// load; that trade-off is deliberate. Each resource is fetched with its
// own timeout, and a failed fetch leaves the existing cache entry
// untouched (no negative caching).
func (s *Service) SyncOnce(ctx context.Context) SyncOutcome {
	if !s.syncing.CompareAndSwap(false, true) {
		return SyncOutcome{At: s.now(), Skipped: true}
	}
	defer s.syncing.Store(false)

	out := SyncOutcome{At: s.now()}
	if s.remote == nil {
		out.Profile = ErrNoRemote
		out.Dashboard = ErrNoRemote
		out.Calendar = ErrNoRemote
		return out
	}

	out.Profile = s.refreshProfile(ctx)
	out.Dashboard = s.refreshDashboard(ctx)
	out.Calendar = s.refreshCalendar(ctx)
	return out
}

func (s *Service) refreshProfile(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ResourceTimeout())
	defer cancel()

	profile, err := s.remote.GetUserProfile(ctx)
	if err != nil {
		s.log.WithError(err).Debug("profile refresh failed, keeping cached value")
		return err
	}
	s.put(store.KeyProfile, profile, s.cfg.ProfileTTL())
	return nil
}

func (s *Service) refreshDashboard(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ResourceTimeout())
	defer cancel()

	snap, err := s.remote.GetDashboardSnapshot(ctx)
	if err != nil {
		s.log.WithError(err).Debug("dashboard refresh failed, keeping cached value")
		return err
	}
	s.put(store.KeyDashboard, snap, s.cfg.DashboardTTL())
	return nil
}

// refreshCalendar reconciles the current month's plan with the server.
// The persisted plan routes through the consistency guard before it
// overwrites anything, and a server-side not-found keeps whatever is
// cached (there is simply nothing committed yet).
func (s *Service) refreshCalendar(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ResourceTimeout())
	defer cancel()

	now := s.now()
	year, month := now.Year(), now.Month()

	persisted, err := s.remote.GetPersistedPlan(ctx, year, month)
	if errors.Is(err, remote.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.WithError(err).Debug("calendar refresh failed, keeping cached value")
		return err
	}

	resolved := s.ResolvePlan(s.cachedPlan(year, month), &persisted)
	s.put(store.KeyCalendar(year, month), resolved, s.cfg.CalendarTTL())
	return nil
}

// cachedPlan returns the cached plan for a month, or nil on miss or
// corrupt payload.
func (s *Service) cachedPlan(year int, month time.Month) *model.MonthlyPlan {
	payload, found := s.store.Get(store.KeyCalendar(year, month))
	if !found {
		return nil
	}
	var plan model.MonthlyPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil
	}
	return &plan
}
