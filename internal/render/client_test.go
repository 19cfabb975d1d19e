package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key",
		WithBaseURL(server.URL),
		WithRetryInterval(time.Millisecond),
		WithTimeout(2*time.Second),
	)
}

func TestGetService(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-1", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"srv-1","name":"Chat API","type":"web_service","status":"available","serviceDetails":{"url":"https://chat.example.com"}}`))
	}))

	svc, err := client.GetService(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", svc.ID)
	assert.Equal(t, "Chat API", svc.Name)
	assert.Equal(t, StateRunning, svc.State)
	assert.Equal(t, "https://chat.example.com", svc.URL)
}

func TestGetServiceEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"service":{"id":"srv-1","name":"Chat API","status":"suspended"}}`))
	}))

	svc, err := client.GetService(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, StateSuspended, svc.State)
}

func TestGetServiceRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id":"srv-1","name":"Chat API","status":"available"}`))
	}))

	svc, err := client.GetService(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "srv-1", svc.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetServiceRetriesOnlyOnce(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.GetService(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetServiceDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetService(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAuthFailure))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetServiceNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetService(context.Background(), "srv-gone")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindAuthFailure))
}

func TestGetServiceRateLimited(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.GetService(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindRateLimited))
	// Rate limiting is transient, so it gets the single retry.
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetServiceTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	client.timeout = 20 * time.Millisecond

	_, err := client.GetService(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout))
}

func TestGetServiceMalformedJSON(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"id": nope`))
	}))

	_, err := client.GetService(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMalformed))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetServiceMissingID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"no id here"}`))
	}))

	_, err := client.GetService(context.Background(), "srv-1")
	assert.True(t, IsKind(err, KindMalformed))
}

func TestGetLatestDeploy(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-1/deploys", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"deploy":{"id":"dep-1","status":"live","commit":{"id":"abc123","message":"fix login"},"createdAt":"2026-08-29T10:00:00Z"}}]`))
	}))

	deploy, err := client.GetLatestDeploy(context.Background(), "srv-1")
	require.NoError(t, err)
	require.NotNil(t, deploy)
	assert.Equal(t, "dep-1", deploy.ID)
	assert.Equal(t, DeployLive, deploy.State)
	assert.Equal(t, "abc123", deploy.CommitRef)
	assert.Equal(t, "fix login", deploy.CommitMessage)
	assert.Nil(t, deploy.FinishedAt)
}

func TestGetLatestDeployNeverDeployed(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	deploy, err := client.GetLatestDeploy(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Nil(t, deploy)
}

func TestGetLatestDeployWrappedListing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"deploys":[{"id":"dep-2","status":"build_in_progress","createdAt":"2026-08-29T10:00:00Z"}]}`))
	}))

	deploy, err := client.GetLatestDeploy(context.Background(), "srv-1")
	require.NoError(t, err)
	require.NotNil(t, deploy)
	assert.Equal(t, DeployBuilding, deploy.State)
	assert.True(t, deploy.State.InProgress())
}

func TestGetServiceWithDeploy(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/srv-1":
			w.Write([]byte(`{"id":"srv-1","name":"Chat API","status":"available"}`))
		case "/services/srv-1/deploys":
			w.Write([]byte(`[{"id":"dep-1","status":"live","createdAt":"2026-08-29T10:00:00Z"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	status, err := client.GetServiceWithDeploy(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, StateRunning, status.Service.State)
	require.NotNil(t, status.LatestDeploy)
	assert.Equal(t, "dep-1", status.LatestDeploy.ID)
}

func TestGetServiceWithDeployPromotesInProgress(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/srv-1":
			w.Write([]byte(`{"id":"srv-1","name":"Chat API","status":"available"}`))
		case "/services/srv-1/deploys":
			w.Write([]byte(`[{"id":"dep-1","status":"update_in_progress","createdAt":"2026-08-29T10:00:00Z"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	status, err := client.GetServiceWithDeploy(context.Background(), "srv-1")
	require.NoError(t, err)
	// A running service with a deploy underway shows as deploying.
	assert.Equal(t, StateDeploying, status.Service.State)
}

func TestGetServiceWithDeployFailsWhenDeployFails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/services/srv-1":
			w.Write([]byte(`{"id":"srv-1","name":"Chat API","status":"available"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))

	_, err := client.GetServiceWithDeploy(context.Background(), "srv-1")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAuthFailure))
}

func TestListServices(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services", r.URL.Path)
		w.Write([]byte(`[{"service":{"id":"srv-1","name":"Chat API","status":"available"}},{"service":{"id":"srv-2","name":"Auth","status":"suspended"}}]`))
	}))

	services, err := client.ListServices(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "srv-1", services[0].ID)
	assert.Equal(t, StateSuspended, services[1].State)
}

func TestDashboardURL(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{"", "https://dashboard.render.com/web/srv-1"},
		{"settings", "https://dashboard.render.com/web/srv-1"},
		{"logs", "https://dashboard.render.com/web/srv-1/logs"},
		{"events", "https://dashboard.render.com/web/srv-1/events"},
		{"deploys", "https://dashboard.render.com/web/srv-1/deploys"},
	}
	for _, tt := range tests {
		got, err := DashboardURL("srv-1", tt.action)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := DashboardURL("srv-1", "metrics")
	assert.Error(t, err)
}

func TestErrorKindTransient(t *testing.T) {
	assert.True(t, KindRateLimited.Transient())
	assert.True(t, KindNetwork.Transient())
	assert.True(t, KindTimeout.Transient())
	assert.False(t, KindAuthFailure.Transient())
	assert.False(t, KindNotFound.Transient())
	assert.False(t, KindMalformed.Transient())
}

func TestParseServiceState(t *testing.T) {
	assert.Equal(t, StateRunning, parseServiceState("available"))
	assert.Equal(t, StateFailed, parseServiceState("unavailable"))
	assert.Equal(t, StateUnknown, parseServiceState("something_new"))
}
