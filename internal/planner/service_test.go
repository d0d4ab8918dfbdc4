package planner

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetd/internal/budget"
	"budgetd/internal/classify"
	"budgetd/internal/config"
	"budgetd/internal/model"
	"budgetd/internal/remote"
	"budgetd/internal/store"
)

var testNow = time.Date(2025, time.July, 12, 9, 30, 0, 0, time.UTC)

// fakeRemote implements RemoteAPI with canned responses.
type fakeRemote struct {
	profile    model.UserFinancialProfile
	profileErr error
	plan       model.MonthlyPlan
	planErr    error
	snap       model.DashboardSnapshot
	snapErr    error

	delay     time.Duration
	planCalls int
}

func (f *fakeRemote) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return remote.ErrUnavailable
	}
}

func (f *fakeRemote) GetUserProfile(ctx context.Context) (model.UserFinancialProfile, error) {
	if err := f.wait(ctx); err != nil {
		return model.UserFinancialProfile{}, err
	}
	return f.profile, f.profileErr
}

func (f *fakeRemote) GetPersistedPlan(ctx context.Context, year int, month time.Month) (model.MonthlyPlan, error) {
	f.planCalls++
	if err := f.wait(ctx); err != nil {
		return model.MonthlyPlan{}, err
	}
	return f.plan, f.planErr
}

func (f *fakeRemote) GetDashboardSnapshot(ctx context.Context) (model.DashboardSnapshot, error) {
	if err := f.wait(ctx); err != nil {
		return model.DashboardSnapshot{}, err
	}
	return f.snap, f.snapErr
}

func newTestService(t *testing.T, remoteAPI RemoteAPI) (*Service, *logtest.Hook) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	hook := logtest.NewLocal(log)

	alloc, err := budget.NewAllocator(budget.Settings{})
	require.NoError(t, err)
	table := classify.NewTable()
	gen := budget.NewGenerator(alloc, table)

	s := New(config.DefaultConfig(), store.NewMemory(), remoteAPI, gen, table, log)
	s.now = func() time.Time { return testNow }
	return s, hook
}

func serverPlan(year int, month time.Month) model.MonthlyPlan {
	return model.MonthlyPlan{
		Year:     year,
		Month:    month,
		Currency: "USD",
		Source:   model.SourceServer,
		Tier:     model.TierMiddle,
		Entries: []model.DailyPlanEntry{
			{Date: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), Category: "groceries", PlannedCents: 1200},
		},
	}
}

func TestGetDashboardDataColdThenWarm(t *testing.T) {
	s, _ := newTestService(t, nil)

	snap, degraded := s.GetDashboardData()
	assert.True(t, degraded)
	assert.Positive(t, snap.TodayBudgetCents)

	// The fallback snapshot was cached; the second read is a clean hit.
	again, degraded := s.GetDashboardData()
	assert.False(t, degraded)
	assert.Equal(t, snap.MonthPlannedCents, again.MonthPlannedCents)
}

func TestGetDashboardDataCorruptPayload(t *testing.T) {
	s, _ := newTestService(t, nil)
	require.NoError(t, s.store.Set(store.KeyDashboard, []byte("{not json"), time.Hour))

	snap, degraded := s.GetDashboardData()
	assert.True(t, degraded)
	assert.Positive(t, snap.MonthPlannedCents)
}

func TestGetCalendarDataOfflineServesFallbackFast(t *testing.T) {
	s, _ := newTestService(t, nil)
	require.NoError(t, s.store.Clear())

	start := time.Now()
	plan, degraded := s.GetCalendarData(2025, time.February)
	elapsed := time.Since(start)

	assert.True(t, degraded)
	assert.Equal(t, 28, plan.Days())
	assert.Positive(t, plan.TotalPlannedCents())
	assert.Less(t, elapsed, 100*time.Millisecond)

	// The generated plan is now cached.
	cached, degraded := s.GetCalendarData(2025, time.February)
	assert.False(t, degraded)
	assert.Equal(t, plan.TotalPlannedCents(), cached.TotalPlannedCents())
}

func TestGetCalendarDataPrefersPersistedPlan(t *testing.T) {
	f := &fakeRemote{plan: serverPlan(2025, time.March)}
	s, _ := newTestService(t, f)

	plan, degraded := s.GetCalendarData(2025, time.March)
	assert.True(t, degraded)
	assert.Equal(t, model.SourceServer, plan.Source)
	assert.Equal(t, int64(1200), plan.TotalPlannedCents())
}

func TestGetCalendarDataRemoteDownGeneratesLocally(t *testing.T) {
	f := &fakeRemote{planErr: remote.ErrUnavailable}
	s, _ := newTestService(t, f)

	plan, degraded := s.GetCalendarData(2025, time.March)
	assert.True(t, degraded)
	assert.Equal(t, model.SourceFallback, plan.Source)
	assert.Equal(t, 31, plan.Days())
}

func TestGetCalendarDataUsesCachedProfile(t *testing.T) {
	s, _ := newTestService(t, nil)

	profile := model.UserFinancialProfile{
		MonthlyIncome: decimal.NewFromInt(5000),
		CountryCode:   "US",
		SubregionCode: "CA",
	}
	s.put(store.KeyProfile, profile, time.Hour)

	plan, degraded := s.GetCalendarData(2025, time.March)
	assert.True(t, degraded)
	assert.Equal(t, model.SourceGenerated, plan.Source)
	assert.Equal(t, model.TierLowerMiddle, plan.Tier)
}

func TestClearCacheReseedsCoreKeys(t *testing.T) {
	s, _ := newTestService(t, nil)
	require.NoError(t, s.ClearCache())

	_, found := s.store.Get(store.KeyDashboard)
	assert.True(t, found)
	_, found = s.store.Get(store.KeyCalendar(testNow.Year(), testNow.Month()))
	assert.True(t, found)
}

func TestClassifyIncome(t *testing.T) {
	s, _ := newTestService(t, nil)

	tier := s.ClassifyIncome(model.UserFinancialProfile{
		MonthlyIncome: decimal.NewFromInt(5000),
		CountryCode:   "US",
		SubregionCode: "MS",
	})
	assert.Equal(t, model.TierMiddle, tier)
}
