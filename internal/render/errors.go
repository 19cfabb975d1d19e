package render

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an API failure for retry and display decisions.
type ErrorKind int

const (
	// KindAuthFailure is a 401/403 from the API. Never retried.
	KindAuthFailure ErrorKind = iota
	// KindNotFound signals a misconfigured or deleted service id. Never retried.
	KindNotFound
	// KindRateLimited is a 429. Retried once.
	KindRateLimited
	// KindNetwork covers transport failures and 5xx responses. Retried once.
	KindNetwork
	// KindTimeout is a request that exceeded the per-call timeout. Retried once.
	KindTimeout
	// KindMalformed means the response violated the API contract. Never retried.
	KindMalformed
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthFailure:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Transient reports whether a failure of this kind is likely to succeed on
// an immediate retry.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindRateLimited, KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// APIError is a classified failure from the Render API.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // zero when the request never got a response
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Transient reports whether this error should be retried.
func (e *APIError) Transient() bool {
	return e.Kind.Transient()
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind == kind
	}
	return false
}

// classifyStatus maps an HTTP status code to an APIError.
func classifyStatus(statusCode int, body string) *APIError {
	switch {
	case statusCode == 401 || statusCode == 403:
		return &APIError{
			Kind:       KindAuthFailure,
			StatusCode: statusCode,
			Message:    "authentication failed - check your Render API key",
		}
	case statusCode == 404:
		return &APIError{
			Kind:       KindNotFound,
			StatusCode: statusCode,
			Message:    "resource not found",
		}
	case statusCode == 429:
		return &APIError{
			Kind:       KindRateLimited,
			StatusCode: statusCode,
			Message:    "rate limit exceeded",
		}
	case statusCode >= 500:
		return &APIError{
			Kind:       KindNetwork,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("server error: %s", truncateBody(body)),
		}
	default:
		// Remaining 4xx responses mean we sent something the API contract
		// does not allow; retrying cannot help.
		return &APIError{
			Kind:       KindMalformed,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected response: %s", truncateBody(body)),
		}
	}
}

// truncateBody keeps error messages readable when the API returns a page of HTML.
func truncateBody(body string) string {
	const max = 120
	if len(body) > max {
		return body[:max] + "..."
	}
	if body == "" {
		return "(empty body)"
	}
	return body
}
