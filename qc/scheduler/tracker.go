package scheduler

import (
	"sync"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
)

// Tracker is the quantum-job lifecycle table: a FIFO-stable priority queue
// of not-yet-started jobs and a running set bounded by maxRunning.
// StartNextQuantumJob and CompleteQuantumJob are each atomic under the
// tracker's lock; completion is idempotent.
type Tracker struct {
	mu         sync.Mutex
	maxRunning int
	queue      *priorityQueue
	running    map[string]*Job
}

func NewTracker(maxRunning int) *Tracker {
	if maxRunning <= 0 {
		maxRunning = 1
	}
	return &Tracker{
		maxRunning: maxRunning,
		queue:      newPriorityQueue(),
		running:    make(map[string]*Job),
	}
}

// Enqueue stamps j as queued and inserts it by priority (FIFO among
// equals).
func (t *Tracker) Enqueue(j *Job) {
	j.markQueued()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue.push(j)
}

// StartNextQuantumJob atomically observes the running count and, if below
// the cap, pops the highest-priority head, stamps it started, and inserts
// it into the running set. Returns nil when the cap is reached or the
// queue is empty. Jobs cancelled while queued are discarded without
// starting: their result is posted as Cancelled and the next head is
// considered.
func (t *Tracker) StartNextQuantumJob() *Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.running) >= t.maxRunning {
		return nil
	}
	for {
		j, ok := t.queue.pop()
		if !ok {
			return nil
		}
		if j.token != nil && j.token.IsCancelled() {
			j.markFinished(StateCancelled)
			j.mu.Lock()
			r := Result{
				JobID:    j.ID,
				Err:      errs.Cancelled("scheduler: job cancelled before start"),
				State:    StateCancelled,
				QueuedAt: j.queuedAt,
				EndedAt:  j.completedAt,
			}
			j.mu.Unlock()
			if j.result != nil {
				j.result <- r
			}
			continue
		}
		j.markStarted()
		t.running[j.ID] = j
		return j
	}
}

// CompleteQuantumJob removes id from the running set and transitions it to
// the given terminal state, stamping completedAt. Repeated completion of
// the same id is a no-op after the first; the return value reports whether
// this call performed the completion.
func (t *Tracker) CompleteQuantumJob(id string, to State) bool {
	t.mu.Lock()
	j, ok := t.running[id]
	if ok {
		delete(t.running, id)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	return j.markFinished(to)
}

// RunningCount returns the size of the running set.
func (t *Tracker) RunningCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// QueuedCount returns the number of jobs waiting to start.
func (t *Tracker) QueuedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queue.len()
}
