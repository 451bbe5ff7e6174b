package hmc

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrEndpointRequired  = errors.New("endpoint is required")
	ErrNotSubmitted      = errors.New("job has not been submitted")
	ErrAlreadySubmitted  = errors.New("job has already been submitted")
	ErrNoSelfLink        = errors.New("entity has no self link")
	ErrNoSessionManager  = errors.New("no session manager configured")
	ErrInvalidMaxAttempt = errors.New("maxAttempts must be at least 1")
)

// ProtocolError reports a response that could not be decoded into the shape
// the protocol promises: a missing type indicator, a malformed timestamp, a
// logon response without a token, a job acceptance without a location. It is
// always fatal and never retried.
type ProtocolError struct {
	Op     string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s: %s", e.Op, e.Detail)
}

// AuthenticationError reports a request rejected as unauthenticated after the
// single automatic re-logon attempt.
type AuthenticationError struct {
	Endpoint string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected by %s", e.Endpoint)
}

// ConflictError reports an optimistic-concurrency update that still hit a
// version conflict after its attempt budget was exhausted.
type ConflictError struct {
	Location string
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict updating %s after %d attempts", e.Location, e.Attempts)
}

// JobFailedError reports a job that reached a terminal state other than
// COMPLETED_OK. It carries the last polled status snapshot.
type JobFailedError struct {
	State   JobState
	Message string
	Results map[string]string
}

func (e *JobFailedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("job finished with state %s: %s", e.State, e.Message)
	}

	return fmt.Sprintf("job finished with state %s", e.State)
}

// APIError represents a non-2xx response that is not a version conflict and
// not an authentication rejection.
type APIError struct {
	StatusCode int
	Reason     string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status: %d): %s", e.Reason, e.StatusCode, e.Detail)
	}

	return fmt.Sprintf("%s (status: %d)", e.Reason, e.StatusCode)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}

// IsUnauthorized checks if the error is an authentication rejection.
func IsUnauthorized(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsConflict checks if the error is a version conflict.
func IsConflict(err error) bool {
	conflictErr := &ConflictError{}

	return errors.As(err, &conflictErr)
}

// IsJobFailed checks if the error is a failed job.
func IsJobFailed(err error) bool {
	jobErr := &JobFailedError{}

	return errors.As(err, &jobErr)
}
