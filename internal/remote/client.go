// Package remote is the client for the budget API, the source of truth
// the local cache reconciles against.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"budgetd/internal/model"
)

const (
	defaultTimeout = 6 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrNotFound indicates the resource does not exist server-side.
	// For plans this is a normal outcome, not a failure.
	ErrNotFound = errors.New("remote: not found")
	// ErrUnavailable indicates a timeout or connection failure. Callers
	// recover by serving cached or fallback data.
	ErrUnavailable = errors.New("remote: unavailable")
)

// Client fetches profile, plan, and dashboard data from the budget API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the given base URL. A non-positive
// timeout falls back to the default per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{},
	}
}

// GetUserProfile fetches the user's income and location profile.
func (c *Client) GetUserProfile(ctx context.Context) (model.UserFinancialProfile, error) {
	var p model.UserFinancialProfile
	body, err := c.get(ctx, "/v1/profile")
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return p, fmt.Errorf("remote: parsing profile: %w", err)
	}
	return p, nil
}

// GetPersistedPlan fetches the server-persisted plan for a month.
// Plans returned here are authoritative: they are marked SourceServer
// regardless of what the wire payload claims.
func (c *Client) GetPersistedPlan(ctx context.Context, year int, month time.Month) (model.MonthlyPlan, error) {
	var plan model.MonthlyPlan
	body, err := c.get(ctx, fmt.Sprintf("/v1/plans/%04d/%02d", year, int(month)))
	if err != nil {
		return plan, err
	}
	if err := json.Unmarshal(body, &plan); err != nil {
		return plan, fmt.Errorf("remote: parsing plan: %w", err)
	}
	plan.Source = model.SourceServer
	return plan, nil
}

// GetDashboardSnapshot fetches the server's dashboard state.
func (c *Client) GetDashboardSnapshot(ctx context.Context) (model.DashboardSnapshot, error) {
	var snap model.DashboardSnapshot
	body, err := c.get(ctx, "/v1/dashboard")
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(body, &snap); err != nil {
		return snap, fmt.Errorf("remote: parsing dashboard: %w", err)
	}
	return snap, nil
}

// get performs a GET with the per-call timeout and returns the body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("remote: reading response: %w", err)
	}
	return body, nil
}
