// Package daemon runs the background sync scheduler and the local HTTP
// API that UI processes read from.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"budgetd/internal/config"
	"budgetd/internal/planner"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastSyncAt      time.Time `json:"last_sync_at"`
	SyncIntervalSec int       `json:"sync_interval_sec"`
	SyncCount       int64     `json:"sync_count"`
	SkippedCount    int64     `json:"skipped_count"`
	LastError       string    `json:"last_error,omitempty"`
	State           string    `json:"state"`
}

// Service owns the periodic sync schedule and the local API server.
type Service struct {
	planner *planner.Service
	cfg     config.Config
	log     *logrus.Logger

	cron   *cron.Cron
	stopMu sync.Mutex

	mu           sync.RWMutex
	startedAt    time.Time
	lastSyncAt   time.Time
	syncCount    int64
	skippedCount int64
	lastError    string
}

// New returns a daemon service over the given planner.
func New(p *planner.Service, cfg config.Config, log *logrus.Logger) *Service {
	return &Service{
		planner:   p,
		cfg:       cfg,
		log:       log,
		startedAt: time.Now(),
	}
}

// Start begins an immediate sync attempt followed by the fixed-period
// schedule. Calling Start on a started service is a no-op.
func (s *Service) Start() {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.cron != nil {
		return
	}

	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.cfg.SyncInterval())
	if _, err := s.cron.AddFunc(spec, s.syncTick); err != nil {
		// Only reachable with a malformed interval; fall back to the
		// immediate pass and log it.
		s.log.WithError(err).Error("scheduling periodic sync")
	}
	s.cron.Start()

	go s.syncTick()
}

// Stop cancels future sync attempts. Idempotent; in-flight resource
// fetches finish and write through the normal synchronized path.
func (s *Service) Stop() {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cron = nil
}

// ForceSync performs a best-effort immediate refresh bounded by
// timeout. It returns the sync outcome; on failure callers keep serving
// the previous cached values.
func (s *Service) ForceSync(timeout time.Duration) planner.SyncOutcome {
	out := s.planner.RefreshData(timeout)
	s.record(out)
	return out
}

// syncTick is the periodic entry point. An overlapping tick is dropped
// inside SyncOnce and only counted here.
func (s *Service) syncTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*s.cfg.ResourceTimeout())
	defer cancel()
	s.record(s.planner.SyncOnce(ctx))
}

func (s *Service) record(out planner.SyncOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out.Skipped {
		s.skippedCount++
		return
	}
	s.syncCount++
	s.lastSyncAt = out.At
	s.lastError = ""
	if out.Failed() {
		s.lastError = firstError(out).Error()
	}
}

func firstError(out planner.SyncOutcome) error {
	for _, err := range []error{out.Profile, out.Dashboard, out.Calendar} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Run starts the scheduler and serves the local API until ctx is
// canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Sync.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.Start()
	s.log.WithField("addr", s.cfg.Sync.ListenAddr).Info("budgetd daemon listening")

	select {
	case <-ctx.Done():
		s.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		s.Stop()
		return fmt.Errorf("daemon http server: %w", err)
	}
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastSyncAt:      s.lastSyncAt,
		SyncIntervalSec: int(s.cfg.SyncInterval().Seconds()),
		SyncCount:       s.syncCount,
		SkippedCount:    s.skippedCount,
		LastError:       s.lastError,
		State:           s.planner.SyncState(),
	}
}
