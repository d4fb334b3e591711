package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
)

// State is a job's position in its lifecycle. Transitions are monotonic:
// Queued -> Running -> (Completed | Failed | Cancelled), or Queued ->
// Cancelled for a job cancelled before it ever starts. No state is ever
// revisited.
type State string

const (
	StateQueued    State = "Queued"
	StateRunning   State = "Running"
	StateCompleted State = "Completed"
	StateFailed    State = "Failed"
	StateCancelled State = "Cancelled"
)

func (s State) terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// Task is the unit of work a job runs; ctx is cancelled when the job's
// cancellation token fires or its deadline expires.
type Task func(ctx context.Context) (any, error)

// Result carries a completed job's outcome back to its submitter.
type Result struct {
	JobID     string
	Value     any
	Err       error
	State     State
	QueuedAt  time.Time
	StartedAt time.Time
	EndedAt   time.Time
}

// Job is a single scheduled unit of work: a classical job carries a
// ClassPriority, a quantum-execution job a QuantumPriority. Exactly one of
// the two is meaningful per job, selected by IsQuantum.
type Job struct {
	ID          string
	IsQuantum   bool
	ClassPrio   ClassPriority
	QuantumPrio QuantumPriority
	Task        Task

	seq    uint64 // insertion order, for FIFO tie-break within a priority tier
	token  *CancelToken
	result chan Result

	mu          sync.Mutex
	status      State
	queuedAt    time.Time
	startedAt   time.Time
	completedAt time.Time
}

// rank returns the job's priority as a single comparable integer, higher
// sorts first. Quantum jobs and classical jobs are ranked within their own
// priority space shifted apart so quantum jobs never starve behind
// classical ones of equal nominal tier, matching the domain's split
// scheduling classes.
func (j *Job) rank() int {
	if j.IsQuantum {
		return 100 + int(j.QuantumPrio)
	}
	return int(j.ClassPrio)
}

// Status returns the job's current lifecycle state.
func (j *Job) Status() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Token returns the job's cancellation token.
func (j *Job) Token() *CancelToken { return j.token }

// Cancel sets the job's cancellation token. A queued job is discarded
// without starting; a running job observes cancellation at its next
// checkpoint; a finished job is unaffected.
func (j *Job) Cancel() { j.token.Cancel() }

// markQueued stamps the job as queued. Called once at submission.
func (j *Job) markQueued() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = StateQueued
	j.queuedAt = time.Now()
}

// markStarted transitions Queued -> Running, stamping startedAt. Returns
// false if the job is not in Queued (already cancelled or started).
func (j *Job) markStarted() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status != StateQueued {
		return false
	}
	j.status = StateRunning
	j.startedAt = time.Now()
	return true
}

// markFinished transitions into a terminal state, stamping completedAt.
// Repeated finishes are no-ops, so completion is idempotent.
func (j *Job) markFinished(to State) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.terminal() || !to.terminal() {
		return false
	}
	j.status = to
	j.completedAt = time.Now()
	return true
}

// Result blocks until the job completes (or ctx is cancelled) and returns
// its outcome.
func (j *Job) Result(ctx context.Context) (Result, error) {
	select {
	case r := <-j.result:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// ResultTimeout blocks up to d for the job's outcome. On expiry it sets
// the job's cancellation token (the worker observes it at the next shot
// boundary) and returns a Timeout error.
func (j *Job) ResultTimeout(d time.Duration) (Result, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case r := <-j.result:
		return r, nil
	case <-timer.C:
		j.Cancel()
		return Result{}, errs.Timeout(d.Milliseconds())
	}
}
