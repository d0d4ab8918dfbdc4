// Package planner exposes the budget engine to callers: instant reads
// from cache, local generation when the cache is cold, and write-through
// refresh from the remote budget API.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"budgetd/internal/budget"
	"budgetd/internal/classify"
	"budgetd/internal/config"
	"budgetd/internal/model"
	"budgetd/internal/remote"
	"budgetd/internal/store"
)

// RemoteAPI is the collaborator surface of the budget API. Satisfied by
// *remote.Client; faked in tests.
type RemoteAPI interface {
	GetUserProfile(ctx context.Context) (model.UserFinancialProfile, error)
	GetPersistedPlan(ctx context.Context, year int, month time.Month) (model.MonthlyPlan, error)
	GetDashboardSnapshot(ctx context.Context) (model.DashboardSnapshot, error)
}

// Service is the single planning facade per process. It owns the cache
// and the sync state; construct one at startup and pass it by handle.
type Service struct {
	cfg    config.Config
	store  store.Store
	remote RemoteAPI
	gen    *budget.Generator
	table  *classify.Table
	log    *logrus.Logger

	syncing atomic.Bool
	now     func() time.Time
}

// New constructs the planning service. remoteAPI may be nil when no API
// endpoint is configured; every operation then serves cache or local
// generation only.
func New(cfg config.Config, st store.Store, remoteAPI RemoteAPI, gen *budget.Generator, table *classify.Table, log *logrus.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  st,
		remote: remoteAPI,
		gen:    gen,
		table:  table,
		log:    log,
		now:    time.Now,
	}
}

// ClassifyIncome maps a profile onto its income tier.
func (s *Service) ClassifyIncome(profile model.UserFinancialProfile) model.Tier {
	return s.table.ClassifyProfile(profile)
}

// GetDashboardData serves the dashboard snapshot instantly. A cache
// miss or corrupt payload falls back to a locally synthesized snapshot,
// reported via degraded=true.
func (s *Service) GetDashboardData() (model.DashboardSnapshot, bool) {
	if payload, found := s.store.Get(store.KeyDashboard); found {
		var snap model.DashboardSnapshot
		if err := json.Unmarshal(payload, &snap); err == nil {
			return snap, false
		}
		// Corrupt cache payloads are misses; regenerate below.
		s.log.WithField("key", store.KeyDashboard).Warn("corrupt cache payload, regenerating")
	}

	snap := s.gen.FallbackDashboard(s.now(), s.cachedProfile())
	s.put(store.KeyDashboard, snap, s.cfg.DashboardTTL())
	return snap, true
}

// GetCalendarData serves a month's plan instantly. Preference order:
// cached plan, server-persisted plan (short timeout), locally generated
// plan. The caller always gets a full month; degraded=true marks
// anything that skipped the cache-hit path.
func (s *Service) GetCalendarData(year int, month time.Month) (model.MonthlyPlan, bool) {
	key := store.KeyCalendar(year, month)

	if payload, found := s.store.Get(key); found {
		var plan model.MonthlyPlan
		if err := json.Unmarshal(payload, &plan); err == nil {
			return plan, false
		}
		s.log.WithField("key", key).Warn("corrupt cache payload, regenerating")
	}

	if s.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ResourceTimeout())
		persisted, err := s.remote.GetPersistedPlan(ctx, year, month)
		cancel()
		switch {
		case err == nil:
			s.put(key, persisted, s.cfg.CalendarTTL())
			return persisted, true
		case errors.Is(err, remote.ErrNotFound):
			// Nothing committed server-side; generate locally.
		default:
			s.log.WithError(err).Debug("persisted plan fetch failed, generating locally")
		}
	}

	plan := s.generateLocal(year, month)
	s.put(key, plan, s.cfg.CalendarTTL())
	return plan, true
}

// RefreshData runs one best-effort sync pass bounded by timeout. On
// timeout or failure the cache keeps its previous values; callers never
// see an error, only the sync outcome.
func (s *Service) RefreshData(timeout time.Duration) SyncOutcome {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.SyncOnce(ctx)
}

// ClearCache drops every cached entry, then immediately re-seeds the
// dashboard and current month's calendar from fallback data so readers
// never observe not-found after a clear.
func (s *Service) ClearCache() error {
	if err := s.store.Clear(); err != nil {
		return err
	}

	now := s.now()
	snap := s.gen.FallbackDashboard(now, nil)
	s.put(store.KeyDashboard, snap, s.cfg.DashboardTTL())

	plan := s.gen.Fallback(now.Year(), now.Month(), nil)
	s.put(store.KeyCalendar(now.Year(), now.Month()), plan, s.cfg.CalendarTTL())

	s.log.Info("cache cleared and re-seeded with fallback data")
	return nil
}

// SyncState reports the current background sync state.
func (s *Service) SyncState() string {
	if s.syncing.Load() {
		return "syncing"
	}
	return "idle"
}

// generateLocal builds a plan from the cached profile when one exists,
// or from fallback defaults when it doesn't.
func (s *Service) generateLocal(year int, month time.Month) model.MonthlyPlan {
	if profile := s.cachedProfile(); profile != nil {
		tier := s.table.ClassifyProfile(*profile)
		return s.gen.Generate(year, month, *profile, tier)
	}
	return s.gen.Fallback(year, month, nil)
}

// cachedProfile returns the cached user profile, or nil on miss or
// corrupt payload.
func (s *Service) cachedProfile() *model.UserFinancialProfile {
	payload, found := s.store.Get(store.KeyProfile)
	if !found {
		return nil
	}
	var p model.UserFinancialProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil
	}
	return &p
}

// put marshals and stores a payload, logging rather than propagating
// cache write failures: a failed write only costs the next reader a
// regeneration.
func (s *Service) put(key string, v any, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("marshaling cache payload")
		return
	}
	if err := s.store.Set(key, payload, ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Error("writing cache entry")
	}
}
