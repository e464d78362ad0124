// Package fetch drives the paginated order crawl against the remote
// shop API and assembles the raw JSON feed into domain entities.
package fetch

import (
	"errors"
	"fmt"
)

// ErrFetchInFlight is returned by Runner.Start while a fetch is
// already running. Refreshes never run concurrently.
var ErrFetchInFlight = errors.New("a fetch is already in flight")

// NetworkError is a transport failure or a non-2xx response that is
// not an authentication problem. No partial dataset is committed.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the credentials were rejected. Surfaced distinctly
// so the caller can prompt for settings re-entry.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credentials rejected by remote (status %d)", e.StatusCode)
}

// ParseError is a malformed response body. A single bad page aborts
// the whole fetch.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedRecordError is an order record missing a required field or
// holding a value of the wrong kind. Records are rejected, never
// defaulted; a single bad record invalidates the fetch since
// committing a partial dataset could mask data loss.
type MalformedRecordError struct {
	Field  string
	Reason string
	Err    error // set when a domain constraint, not a field shape, failed
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed order record: %v", e.Err)
	}
	return fmt.Sprintf("malformed order record: field %q %s", e.Field, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// IsAuthError reports whether err wraps an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
