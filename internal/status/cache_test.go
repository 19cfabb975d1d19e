package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/render"
)

func testServices() []config.Service {
	return []config.Service{
		{ID: "srv-1", Name: "Chat API", Aliases: []string{"chat"}, Priority: 1},
		{ID: "srv-2", Name: "Auth", Aliases: []string{"auth"}, Priority: 1},
	}
}

func goodResult(state render.ServiceState) *render.ServiceStatus {
	return &render.ServiceStatus{
		Service: render.Service{
			ID:    "srv-1",
			Name:  "Chat API",
			Type:  "web_service",
			State: state,
			URL:   "https://chat.example.com",
		},
		LatestDeploy: &render.Deploy{ID: "dep-1", State: render.DeployLive},
	}
}

func TestNewCacheSeedsPlaceholders(t *testing.T) {
	cache := NewCache(testServices())

	snap := cache.Get("srv-1")
	assert.Equal(t, "Chat API", snap.Name)
	assert.Equal(t, render.StateUnknown, snap.State)
	assert.False(t, snap.HasData())
}

func TestGetUnknownID(t *testing.T) {
	cache := NewCache(testServices())

	snap := cache.Get("srv-nope")
	assert.Equal(t, "srv-nope", snap.ServiceID)
	assert.Equal(t, render.StateUnknown, snap.State)
	assert.False(t, snap.InFlight)
}

func TestBeginFetchGate(t *testing.T) {
	cache := NewCache(testServices())

	require.True(t, cache.BeginFetch("srv-1"))
	// Second begin for the same id must be refused while the first is open.
	assert.False(t, cache.BeginFetch("srv-1"))
	// Other ids are unaffected.
	assert.True(t, cache.BeginFetch("srv-2"))

	cache.CompleteFetch("srv-1", goodResult(render.StateRunning), nil)
	assert.True(t, cache.BeginFetch("srv-1"))
}

func TestCompleteFetchSuccess(t *testing.T) {
	cache := NewCache(testServices())
	require.True(t, cache.BeginFetch("srv-1"))

	cache.CompleteFetch("srv-1", goodResult(render.StateRunning), nil)

	snap := cache.Get("srv-1")
	assert.Equal(t, render.StateRunning, snap.State)
	assert.Equal(t, "https://chat.example.com", snap.ServiceURL)
	require.NotNil(t, snap.LatestDeploy)
	assert.False(t, snap.InFlight)
	assert.NoError(t, snap.LastError)
	assert.True(t, snap.HasData())
	assert.False(t, snap.LastFetchedAt.IsZero())
	assert.False(t, snap.LastSuccessAt.IsZero())
}

func TestCompleteFetchFailurePreservesKnownGoodData(t *testing.T) {
	cache := NewCache(testServices())

	require.True(t, cache.BeginFetch("srv-1"))
	cache.CompleteFetch("srv-1", goodResult(render.StateRunning), nil)
	successAt := cache.Get("srv-1").LastSuccessAt

	require.True(t, cache.BeginFetch("srv-1"))
	fetchErr := &render.APIError{Kind: render.KindTimeout, Message: "request exceeded 10s"}
	cache.CompleteFetch("srv-1", nil, fetchErr)

	snap := cache.Get("srv-1")
	// Failure annotates; it never blanks what was known good.
	assert.Equal(t, render.StateRunning, snap.State)
	assert.Equal(t, "https://chat.example.com", snap.ServiceURL)
	require.NotNil(t, snap.LatestDeploy)
	assert.Equal(t, fetchErr, snap.LastError)
	assert.Equal(t, successAt, snap.LastSuccessAt)
	assert.True(t, snap.LastFetchedAt.After(successAt) || snap.LastFetchedAt.Equal(successAt))
	assert.False(t, snap.InFlight)
}

func TestCompleteFetchSuccessClearsError(t *testing.T) {
	cache := NewCache(testServices())

	require.True(t, cache.BeginFetch("srv-1"))
	cache.CompleteFetch("srv-1", nil, &render.APIError{Kind: render.KindNetwork, Message: "request failed"})
	require.Error(t, cache.Get("srv-1").LastError)

	require.True(t, cache.BeginFetch("srv-1"))
	cache.CompleteFetch("srv-1", goodResult(render.StateRunning), nil)
	assert.NoError(t, cache.Get("srv-1").LastError)
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache(testServices())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if cache.BeginFetch("srv-1") {
				cache.CompleteFetch("srv-1", goodResult(render.StateRunning), nil)
			}
		}()
		go func() {
			defer wg.Done()
			_ = cache.Get("srv-1")
			_ = cache.All()
		}()
	}
	wg.Wait()

	snap := cache.Get("srv-1")
	assert.False(t, snap.InFlight)
}

func TestSnapshotStale(t *testing.T) {
	now := time.Now()
	snap := Snapshot{LastSuccessAt: now.Add(-2 * time.Minute)}

	assert.True(t, snap.Stale(time.Minute, now))
	assert.False(t, snap.Stale(5*time.Minute, now))
	// Never-loaded snapshots are not stale, they are empty.
	assert.False(t, Snapshot{}.Stale(time.Minute, now))
}
