package status

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
)

// Fetcher is the slice of the API client the engine needs. Tests substitute
// a fake.
type Fetcher interface {
	GetServiceWithDeploy(ctx context.Context, serviceID string) (*render.ServiceStatus, error)
}

// Engine periodically refreshes the cache for every configured service.
//
// One scheduler goroutine owns the cycle cadence. A refresh cycle fans out
// one goroutine per service and waits for all of them, so at most one cycle
// runs at a time. Manual triggers that arrive mid-cycle coalesce into a
// single follow-up cycle.
type Engine struct {
	cache    *Cache
	fetcher  Fetcher
	services []config.Service
	interval time.Duration
	log      logger.Logger

	trigger chan struct{}

	mu             sync.Mutex
	lastCycleStart time.Time
}

// NewEngine creates an engine over the given cache and service list.
func NewEngine(cache *Cache, fetcher Fetcher, services []config.Service, interval time.Duration, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	return &Engine{
		cache:    cache,
		fetcher:  fetcher,
		services: services,
		interval: interval,
		log:      log,
		// Capacity one: a trigger during a cycle is remembered, further
		// triggers during the same cycle collapse into it.
		trigger: make(chan struct{}, 1),
	}
}

// Start runs the refresh loop until ctx is canceled. It runs one cycle
// immediately, then one per interval or manual trigger. Blocks; run it on
// its own goroutine.
func (e *Engine) Start(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.runCycle(ctx)
		case <-e.trigger:
			e.runCycle(ctx)
			// A manual refresh restarts the cadence so the next automatic
			// cycle is a full interval away.
			ticker.Reset(e.interval)
		}
	}
}

// TriggerRefresh requests an immediate refresh cycle. Never blocks: if a
// follow-up cycle is already pending the request coalesces into it.
func (e *Engine) TriggerRefresh() {
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// TimeSinceLastCycleStart reports how long ago the current or most recent
// cycle began. Returns false before the first cycle.
func (e *Engine) TimeSinceLastCycleStart() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastCycleStart.IsZero() {
		return 0, false
	}
	return time.Since(e.lastCycleStart), true
}

// Interval returns the configured refresh interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// runCycle fetches every service concurrently and waits for completion.
// Services whose previous fetch is still in flight are skipped; each fetch
// failure lands in that service's snapshot without affecting the others.
func (e *Engine) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	e.lastCycleStart = time.Now()
	e.mu.Unlock()

	var wg sync.WaitGroup
	for _, svc := range e.services {
		if !e.cache.BeginFetch(svc.ID) {
			e.log.Debug("skipping %s: fetch already in flight", svc.ID)
			continue
		}

		wg.Add(1)
		go func(serviceID string) {
			defer wg.Done()
			result, err := e.fetcher.GetServiceWithDeploy(ctx, serviceID)
			if err != nil {
				e.log.Debug("fetch failed for %s: %v", serviceID, err)
			}
			e.cache.CompleteFetch(serviceID, result, err)
		}(svc.ID)
	}
	wg.Wait()
}

// FetchOne refreshes a single service synchronously, outside the cycle
// cadence. Used by one-shot status queries. Returns the resulting snapshot.
func (e *Engine) FetchOne(ctx context.Context, serviceID string) Snapshot {
	if !e.cache.BeginFetch(serviceID) {
		return e.cache.Get(serviceID)
	}
	result, err := e.fetcher.GetServiceWithDeploy(ctx, serviceID)
	e.cache.CompleteFetch(serviceID, result, err)
	return e.cache.Get(serviceID)
}
