// Package render is a client for the Render REST API, covering the two read
// endpoints the dashboard needs: service detail and latest deployment.
//
// Failures are classified into an APIError taxonomy (see errors.go).
// Transient failures (network, timeout, rate limit, 5xx) are retried exactly
// once with a fixed short backoff; terminal failures (auth, not found,
// contract violations) surface immediately.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/rileyhilliard/rdash/internal/logger"
)

// DefaultBaseURL is the production Render API endpoint.
const DefaultBaseURL = "https://api.render.com/v1"

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 500 * time.Millisecond

	// maxAttempts is the initial attempt plus one retry for transient errors.
	maxAttempts = 2

	maxResponseBodySize = 1 << 20 // 1MB
)

// Client talks to the Render API with bearer authentication.
// Safe for concurrent use: the synchronization engine issues fetches for
// different service ids from separate goroutines through one shared Client.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	timeout       time.Duration
	retryInterval time.Duration
	log           logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithRetryInterval overrides the fixed backoff between the first attempt
// and the single retry.
func WithRetryInterval(interval time.Duration) Option {
	return func(c *Client) { c.retryInterval = interval }
}

// WithLogger sets the logger for request debugging.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Render API client with the given bearer credential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		baseURL:       DefaultBaseURL,
		apiKey:        apiKey,
		timeout:       defaultTimeout,
		retryInterval: defaultRetryInterval,
		log:           logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// GetService fetches the service record and its current state.
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	raw, err := c.getJSON(ctx, "/services/"+url.PathEscape(serviceID), nil)
	if err != nil {
		return nil, err
	}

	// The service payload may arrive wrapped in a {"service": ...} envelope.
	var envelope struct {
		Service json.RawMessage `json:"service"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Service) > 0 {
		raw = envelope.Service
	}

	var payload struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Type           string `json:"type"`
		Status         string `json:"status"`
		ServiceDetails struct {
			URL string `json:"url"`
		} `json:"serviceDetails"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &APIError{Kind: KindMalformed, Message: "service payload is not valid JSON", Cause: err}
	}
	if payload.ID == "" {
		return nil, &APIError{Kind: KindMalformed, Message: "service payload is missing the id field"}
	}

	name := payload.Name
	if name == "" {
		name = serviceID
	}

	return &Service{
		ID:    payload.ID,
		Name:  name,
		Type:  payload.Type,
		State: parseServiceState(payload.Status),
		URL:   payload.ServiceDetails.URL,
	}, nil
}

// GetLatestDeploy fetches the most recent deployment for a service.
// Returns (nil, nil) when the service has never deployed; that is an empty
// result, not an error.
func (c *Client) GetLatestDeploy(ctx context.Context, serviceID string) (*Deploy, error) {
	raw, err := c.getJSON(ctx, "/services/"+url.PathEscape(serviceID)+"/deploys", url.Values{"limit": {"1"}})
	if err != nil {
		return nil, err
	}

	// Deploy listings may arrive as a bare array or wrapped in {"deploys": [...]}.
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		var envelope struct {
			Deploys []json.RawMessage `json:"deploys"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, &APIError{Kind: KindMalformed, Message: "deploy listing is not valid JSON", Cause: err}
		}
		list = envelope.Deploys
	}
	if len(list) == 0 {
		return nil, nil
	}

	entry := list[0]

	// Individual entries may themselves be wrapped in {"deploy": ...}.
	var entryEnvelope struct {
		Deploy json.RawMessage `json:"deploy"`
	}
	if err := json.Unmarshal(entry, &entryEnvelope); err == nil && len(entryEnvelope.Deploy) > 0 {
		entry = entryEnvelope.Deploy
	}

	var payload struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Commit struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		} `json:"commit"`
		CreatedAt  time.Time  `json:"createdAt"`
		FinishedAt *time.Time `json:"finishedAt"`
	}
	if err := json.Unmarshal(entry, &payload); err != nil {
		return nil, &APIError{Kind: KindMalformed, Message: "deploy payload is not valid JSON", Cause: err}
	}
	if payload.ID == "" {
		return nil, &APIError{Kind: KindMalformed, Message: "deploy payload is missing the id field"}
	}

	return &Deploy{
		ID:            payload.ID,
		State:         parseDeployState(payload.Status),
		CommitRef:     payload.Commit.ID,
		CommitMessage: payload.Commit.Message,
		StartedAt:     payload.CreatedAt,
		FinishedAt:    payload.FinishedAt,
	}, nil
}

// GetServiceWithDeploy fetches the service record and its latest deployment
// as one combined result. Both calls must succeed; either failure fails the
// combined operation with that call's error. An in-progress latest deploy
// promotes the service state to deploying.
func (c *Client) GetServiceWithDeploy(ctx context.Context, serviceID string) (*ServiceStatus, error) {
	svc, err := c.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	deploy, err := c.GetLatestDeploy(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if deploy != nil && deploy.State.InProgress() {
		svc.State = StateDeploying
	}

	return &ServiceStatus{Service: *svc, LatestDeploy: deploy}, nil
}

// ListServices fetches all services visible to the credential. Used by
// 'rdash service add' to search the account by name.
func (c *Client) ListServices(ctx context.Context, limit int) ([]Service, error) {
	raw, err := c.getJSON(ctx, "/services", url.Values{"limit": {fmt.Sprintf("%d", limit)}})
	if err != nil {
		return nil, err
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		var envelope struct {
			Services []json.RawMessage `json:"services"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, &APIError{Kind: KindMalformed, Message: "service listing is not valid JSON", Cause: err}
		}
		list = envelope.Services
	}

	services := make([]Service, 0, len(list))
	for _, entry := range list {
		var entryEnvelope struct {
			Service json.RawMessage `json:"service"`
		}
		if err := json.Unmarshal(entry, &entryEnvelope); err == nil && len(entryEnvelope.Service) > 0 {
			entry = entryEnvelope.Service
		}

		var payload struct {
			ID             string `json:"id"`
			Name           string `json:"name"`
			Type           string `json:"type"`
			Status         string `json:"status"`
			ServiceDetails struct {
				URL string `json:"url"`
			} `json:"serviceDetails"`
		}
		if err := json.Unmarshal(entry, &payload); err != nil || payload.ID == "" {
			continue
		}

		services = append(services, Service{
			ID:    payload.ID,
			Name:  payload.Name,
			Type:  payload.Type,
			State: parseServiceState(payload.Status),
			URL:   payload.ServiceDetails.URL,
		})
	}

	return services, nil
}

// getJSON performs a GET with the one-retry policy and returns the raw body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	operation := func() (json.RawMessage, error) {
		raw, err := c.getOnce(ctx, path, query)
		if err != nil {
			if apiErr, ok := AsAPIError(err); !ok || !apiErr.Transient() {
				return nil, backoff.Permanent(err)
			}
			c.log.Debug("transient error on %s, will retry once: %v", path, err)
			return nil, err
		}
		return raw, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(maxAttempts),
	)
}

// getOnce performs a single GET attempt with the fixed per-call timeout.
func (c *Client) getOnce(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Kind: KindMalformed, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &APIError{Kind: KindTimeout, Message: fmt.Sprintf("request exceeded %s", c.timeout), Cause: err}
		}
		return nil, &APIError{Kind: KindNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &APIError{Kind: KindTimeout, Message: fmt.Sprintf("request exceeded %s", c.timeout), Cause: err}
		}
		return nil, &APIError{Kind: KindNetwork, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, string(body))
	}

	return body, nil
}
