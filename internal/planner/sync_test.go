package planner

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetd/internal/model"
	"budgetd/internal/remote"
	"budgetd/internal/store"
)

func TestSyncOnceRefreshesAllResources(t *testing.T) {
	f := &fakeRemote{
		profile: model.UserFinancialProfile{
			MonthlyIncome: decimal.NewFromInt(5000),
			CountryCode:   "US",
			HasOnboarded:  true,
		},
		plan: serverPlan(testNow.Year(), testNow.Month()),
		snap: model.DashboardSnapshot{BalanceCents: 123400, Currency: "USD"},
	}
	s, _ := newTestService(t, f)

	out := s.SyncOnce(context.Background())
	require.False(t, out.Skipped)
	assert.NoError(t, out.Profile)
	assert.NoError(t, out.Dashboard)
	assert.NoError(t, out.Calendar)
	assert.False(t, out.Failed())

	payload, found := s.store.Get(store.KeyDashboard)
	require.True(t, found)
	var snap model.DashboardSnapshot
	require.NoError(t, json.Unmarshal(payload, &snap))
	assert.Equal(t, int64(123400), snap.BalanceCents)

	payload, found = s.store.Get(store.KeyCalendar(testNow.Year(), testNow.Month()))
	require.True(t, found)
	var plan model.MonthlyPlan
	require.NoError(t, json.Unmarshal(payload, &plan))
	assert.Equal(t, model.SourceServer, plan.Source)

	_, found = s.store.Get(store.KeyProfile)
	assert.True(t, found)
}

func TestSyncOnceFailureLeavesCacheUntouched(t *testing.T) {
	f := &fakeRemote{
		profileErr: remote.ErrUnavailable,
		planErr:    remote.ErrUnavailable,
		snapErr:    remote.ErrUnavailable,
	}
	s, _ := newTestService(t, f)

	s.put(store.KeyDashboard, model.DashboardSnapshot{BalanceCents: 999}, time.Hour)

	out := s.SyncOnce(context.Background())
	assert.True(t, out.Failed())

	payload, found := s.store.Get(store.KeyDashboard)
	require.True(t, found)
	var snap model.DashboardSnapshot
	require.NoError(t, json.Unmarshal(payload, &snap))
	assert.Equal(t, int64(999), snap.BalanceCents, "failed sync must not overwrite cache")
}

func TestSyncOnceOverlapIsDropped(t *testing.T) {
	f := &fakeRemote{}
	s, _ := newTestService(t, f)

	s.syncing.Store(true)
	out := s.SyncOnce(context.Background())
	assert.True(t, out.Skipped)
	assert.Zero(t, f.planCalls, "skipped sync must not start fetches")
	assert.Equal(t, "syncing", s.SyncState())

	s.syncing.Store(false)
	assert.Equal(t, "idle", s.SyncState())
}

func TestSyncOnceNotFoundPlanKeepsCachedCalendar(t *testing.T) {
	f := &fakeRemote{planErr: remote.ErrNotFound}
	s, _ := newTestService(t, f)

	local := s.gen.Fallback(testNow.Year(), testNow.Month(), nil)
	s.put(store.KeyCalendar(testNow.Year(), testNow.Month()), local, time.Hour)

	out := s.SyncOnce(context.Background())
	assert.NoError(t, out.Calendar)

	cached := s.cachedPlan(testNow.Year(), testNow.Month())
	require.NotNil(t, cached)
	assert.Equal(t, model.SourceFallback, cached.Source)
}

func TestRefreshDataHonorsTimeout(t *testing.T) {
	f := &fakeRemote{delay: 500 * time.Millisecond}
	s, _ := newTestService(t, f)

	start := time.Now()
	out := s.RefreshData(30 * time.Millisecond)
	elapsed := time.Since(start)

	assert.True(t, out.Failed())
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestSyncOnceWithoutRemote(t *testing.T) {
	s, _ := newTestService(t, nil)

	out := s.SyncOnce(context.Background())
	assert.ErrorIs(t, out.Profile, ErrNoRemote)
	assert.ErrorIs(t, out.Dashboard, ErrNoRemote)
	assert.ErrorIs(t, out.Calendar, ErrNoRemote)
}
