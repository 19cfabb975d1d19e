package status

import (
	"sync"
	"time"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/render"
)

// Cache holds the latest snapshot per configured service. All methods are
// safe for concurrent use.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewCache seeds a cache with one placeholder snapshot per configured
// service so the dashboard can render the full list before any fetch lands.
func NewCache(services []config.Service) *Cache {
	snapshots := make(map[string]Snapshot, len(services))
	for _, svc := range services {
		snapshots[svc.ID] = Snapshot{
			ServiceID: svc.ID,
			Name:      svc.Name,
			State:     render.StateUnknown,
		}
	}
	return &Cache{snapshots: snapshots}
}

// Get returns a copy of the snapshot for a service id. Unknown ids get a
// zero-value snapshot in the unknown state rather than an error.
func (c *Cache) Get(serviceID string) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if snap, ok := c.snapshots[serviceID]; ok {
		return snap
	}
	return Snapshot{ServiceID: serviceID, State: render.StateUnknown}
}

// All returns copies of every snapshot, keyed by service id.
func (c *Cache) All() map[string]Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Snapshot, len(c.snapshots))
	for id, snap := range c.snapshots {
		out[id] = snap
	}
	return out
}

// BeginFetch marks a service as in flight. Returns false when a fetch for
// that id is already running; the caller must then skip the fetch entirely.
// This is the per-service duplicate-fetch gate.
func (c *Cache) BeginFetch(serviceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshots[serviceID]
	if snap.InFlight {
		return false
	}
	if snap.ServiceID == "" {
		snap.ServiceID = serviceID
		snap.State = render.StateUnknown
	}
	snap.InFlight = true
	c.snapshots[serviceID] = snap
	return true
}

// CompleteFetch records the outcome of a fetch started with BeginFetch and
// clears the in-flight flag. On success the service fields are replaced and
// LastError cleared. On failure only LastFetchedAt and LastError change;
// known-good state, URL, and deploy data stay visible.
func (c *Cache) CompleteFetch(serviceID string, result *render.ServiceStatus, fetchErr error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshots[serviceID]
	snap.ServiceID = serviceID
	snap.InFlight = false
	snap.LastFetchedAt = now

	if fetchErr != nil {
		snap.LastError = fetchErr
		c.snapshots[serviceID] = snap
		return
	}

	snap.Name = result.Service.Name
	snap.Type = result.Service.Type
	snap.State = result.Service.State
	snap.ServiceURL = result.Service.URL
	snap.LatestDeploy = result.LatestDeploy
	snap.LastSuccessAt = now
	snap.LastError = nil
	c.snapshots[serviceID] = snap
}
