// Package apierr defines the error taxonomy shared by the session layer,
// the per-service API builders, and the action dispatcher. Callers match
// with errors.As / errors.Is; every error renders to a short status-line
// message via Error().
package apierr

import "fmt"

// HTTPError is a transport-level failure (DNS, timeout, connection reset),
// distinct from a non-2xx API response.
type HTTPError struct {
	Err error
}

func (e *HTTPError) Error() string { return fmt.Sprintf("http request failed: %v", e.Err) }
func (e *HTTPError) Unwrap() error { return e.Err }

// JSONError is a malformed response body from an endpoint that returned 2xx.
type JSONError struct {
	Err error
}

func (e *JSONError) Error() string { return fmt.Sprintf("json parse error: %v", e.Err) }
func (e *JSONError) Unwrap() error { return e.Err }

// IOError is a local persistence failure (reading or writing the account store).
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// ConfigError reports an invalid, missing, or unparseable account store,
// or a reference to an unknown account.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "config error: " + e.Message }

// AuthError means the identity provider rejected a token refresh.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return "auth error: " + e.Message }

// APIError is any non-2xx resource-endpoint response not covered by a more
// specific type. Body carries the raw response for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string { return fmt.Sprintf("api error (%d): %s", e.Status, e.Body) }

// NotFoundError is a 404 from a resource endpoint.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return "not found: " + e.Message }

// RateLimitedError is a 429. It is signaled to the caller, never retried
// automatically.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfterSeconds)
}

// OtherError is the dispatch-level catch-all (unknown action, bad field value).
type OtherError struct {
	Message string
}

func (e *OtherError) Error() string { return e.Message }

func Configf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

func Otherf(format string, args ...any) error {
	return &OtherError{Message: fmt.Sprintf(format, args...)}
}
