package hmc

import (
	"context"
	"time"
)

// JobState is the console-reported state of an asynchronous job, plus the
// synthetic TIMEDOUT value produced when a wait deadline elapses before the
// job leaves its in-progress states.
type JobState string

const (
	JobStateNotStarted             JobState = "NOT_STARTED"
	JobStateRunning                JobState = "RUNNING"
	JobStateCompletedOK            JobState = "COMPLETED_OK"
	JobStateCompletedWithWarnings  JobState = "COMPLETED_WITH_WARNINGS"
	JobStateCompletedWithError     JobState = "COMPLETED_WITH_ERROR"
	JobStateFailedBeforeCompletion JobState = "FAILED_BEFORE_COMPLETION"

	// JobStateTimedout is synthesized client-side by Wait. It does not imply
	// the remote operation stopped.
	JobStateTimedout JobState = "TIMEDOUT"
)

// InProgress reports whether the state is one the console will still move
// out of on its own.
func (s JobState) InProgress() bool {
	return s == JobStateRunning || s == JobStateNotStarted
}

// JobStatus is one polled snapshot of a job: its state, the optional
// exception message, and the result-parameter mapping.
type JobStatus struct {
	JobID   string
	State   JobState
	Message string
	Results map[string]string
}

// Job drives one asynchronous remote operation through its lifecycle:
// Submit, Poll, Wait, Release, or Run for the whole sequence with
// guaranteed release. Poll, Wait, and Release before Submit return
// ErrNotSubmitted: that is a programming error, not a transient condition.
//
// A Job is not safe for concurrent use; callers sharing one must
// synchronize externally.
type Job interface {
	// Submit sends the job request and records the server-assigned poll
	// location from the acceptance response.
	Submit(ctx context.Context) error
	// Poll fetches the job's current representation, caches the status
	// snapshot, and returns the state.
	Poll(ctx context.Context) (JobState, error)
	// Wait polls until the state leaves {RUNNING, NOT_STARTED} or timeout
	// elapses, returning JobStateTimedout in the latter case. An interval of
	// 0 enables adaptive backoff: 1s doubling per poll up to 30s; any other
	// interval is used unchanged.
	Wait(ctx context.Context, timeout, interval time.Duration) (JobState, error)
	// Release deletes the job resource on the console.
	Release(ctx context.Context) error
	// Run is Submit + Wait + Release, releasing on every exit path. Any
	// terminal state other than COMPLETED_OK is returned as *JobFailedError.
	Run(ctx context.Context, timeout, interval time.Duration) error

	// State returns the most recently polled state, "" before the first poll.
	State() JobState
	// Status returns the most recent status snapshot, nil before the first
	// poll.
	Status() *JobStatus
	// Results returns the result-parameter mapping from the most recent
	// poll.
	Results() map[string]string
}
