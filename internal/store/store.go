// Package store provides the TTL key/value cache backing the
// offline-first data path.
package store

import (
	"fmt"
	"time"
)

// Well-known cache keys. Calendar keys are per-month.
const (
	KeyDashboard = "dashboard"
	KeyProfile   = "profile"
)

// KeyCalendar returns the cache key for one month's plan.
func KeyCalendar(year int, month time.Month) string {
	return fmt.Sprintf("calendar:%04d:%02d", year, int(month))
}

// Store is a named-blob cache with per-entry TTL. Get on an expired
// entry behaves as not-found (lazy expiry); storage errors on the read
// path also surface as misses so callers always fall through to
// regeneration instead of failing.
//
// Implementations are safe for concurrent use from the request path
// and the background sync path.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, payload []byte, ttl time.Duration) error
	Invalidate(key string) error
	Clear() error
	Close() error
}
