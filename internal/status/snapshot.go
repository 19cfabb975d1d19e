// Package status holds the live view of every configured service and the
// engine that keeps it fresh.
//
// The cache is the single source of truth for display: readers always get a
// complete snapshot per service, writers go through a begin/complete fetch
// contract that keeps known-good data visible across transient failures.
package status

import (
	"time"

	"github.com/rileyhilliard/rdash/internal/render"
)

// Snapshot is the displayable state of one service at a point in time.
// It is a value type; cache reads hand out copies, never shared pointers.
type Snapshot struct {
	ServiceID string
	Name      string
	Type      string

	State      render.ServiceState
	ServiceURL string

	// LatestDeploy is nil until a fetch succeeds for a service that has
	// deployed at least once.
	LatestDeploy *render.Deploy

	// LastFetchedAt is when the most recent fetch attempt finished,
	// successful or not. Zero until the first attempt completes.
	LastFetchedAt time.Time

	// LastSuccessAt is when data was last refreshed successfully. Together
	// with LastFetchedAt it distinguishes stale-but-good data from data
	// that has never loaded.
	LastSuccessAt time.Time

	// LastError is the failure from the most recent attempt, nil after a
	// success. State and deploy fields keep their last good values while
	// LastError is set.
	LastError error

	// InFlight is true while a fetch for this service is running.
	InFlight bool
}

// HasData reports whether at least one fetch has ever succeeded.
func (s Snapshot) HasData() bool {
	return !s.LastSuccessAt.IsZero()
}

// Stale reports whether the last good data is older than maxAge.
func (s Snapshot) Stale(maxAge time.Duration, now time.Time) bool {
	if !s.HasData() {
		return false
	}
	return now.Sub(s.LastSuccessAt) > maxAge
}
