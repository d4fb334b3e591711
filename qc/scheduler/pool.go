package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/obslog"
	"github.com/google/uuid"
)

// Scheduler is a bounded worker pool draining two FIFO-stable priority
// queues — the quantum-job queue behind a Tracker with its own running-set
// cap, and a classical queue — the same goroutine-plus-shared-state shape
// the simulator package uses for RunParallelStatic, generalized from a
// one-shot fan-out into a long-lived pool with cancellable, prioritized
// jobs.
type Scheduler struct {
	mu        sync.Mutex
	cond      *sync.Cond
	classical *priorityQueue
	tracker   *Tracker
	closed    bool

	workers int
	wg      sync.WaitGroup
	log     *obslog.Logger
}

// New builds a Scheduler sized from cfg's scheduler.max_concurrent_jobs
// (worker count) and scheduler.max_concurrent_quantum_jobs (running-set
// cap for quantum jobs).
func New(cfg *config.Config, log *obslog.Logger) *Scheduler {
	workers := cfg.GetInt("scheduler.max_concurrent_jobs")
	if workers <= 0 {
		workers = 4
	}
	maxQuantum := cfg.GetInt("scheduler.max_concurrent_quantum_jobs")
	if maxQuantum <= 0 {
		maxQuantum = workers
	}
	s := &Scheduler{
		classical: newPriorityQueue(),
		tracker:   NewTracker(maxQuantum),
		workers:   workers,
		log:       log.SpawnForService("scheduler"),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Start launches the pool's worker goroutines. Call Shutdown to stop them.
func (s *Scheduler) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.runWorker()
	}
}

// Shutdown stops accepting new jobs, wakes all workers so they observe
// closure, and waits for in-flight jobs to finish. Queued jobs still drain
// before the workers exit.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
	s.wg.Wait()
}

// wake re-checks worker wait conditions after external state (the
// tracker's running set) changed. Broadcasting under the pool lock closes
// the window where a worker has tested the condition but not yet
// suspended.
func (s *Scheduler) wake() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Scheduler) runWorker() {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		var job *Job
		quantum := false
		for {
			if j := s.tracker.StartNextQuantumJob(); j != nil {
				job, quantum = j, true
				break
			}
			if j, ok := s.classical.pop(); ok {
				job = j
				break
			}
			if s.closed {
				s.mu.Unlock()
				return
			}
			s.cond.Wait()
		}
		s.mu.Unlock()

		s.runJob(job, quantum)
	}
}

func (s *Scheduler) runJob(job *Job, quantum bool) {
	defer s.wake()

	if !quantum {
		// Quantum jobs cancelled while queued are discarded inside the
		// tracker; classical ones are handled here.
		if job.token.IsCancelled() {
			job.markFinished(StateCancelled)
			s.post(job, Result{
				JobID: job.ID,
				Err:   errs.Cancelled("scheduler: job cancelled before start"),
				State: StateCancelled,
			})
			return
		}
		job.markStarted()
	}
	s.log.Logger.Debug().Str("jobID", job.ID).Int("rank", job.rank()).Msg("job started")

	// Bridge the job's cancellation token onto the task context so the
	// task observes cancellation at its next checkpoint.
	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan struct{})
	go func() {
		select {
		case <-job.token.Done():
			cancel()
		case <-stop:
		}
	}()

	value, err := job.Task(ctx)
	close(stop)
	cancel()

	state := StateCompleted
	switch {
	case job.token.IsCancelled():
		state = StateCancelled
		if err == nil {
			err = errs.Cancelled("scheduler: job cancelled")
		}
	case err != nil:
		state = StateFailed
	}

	if quantum {
		s.tracker.CompleteQuantumJob(job.ID, state)
	} else {
		job.markFinished(state)
	}
	s.post(job, Result{JobID: job.ID, Value: value, Err: err, State: state})
	s.log.Logger.Debug().Str("jobID", job.ID).Str("state", string(state)).Msg("job finished")
}

// post stamps the result with the job's lifecycle timestamps and delivers
// it on the one-shot result channel.
func (s *Scheduler) post(job *Job, r Result) {
	job.mu.Lock()
	r.QueuedAt = job.queuedAt
	r.StartedAt = job.startedAt
	r.EndedAt = job.completedAt
	job.mu.Unlock()
	job.result <- r
}

// submit enqueues job and returns it with its result channel and
// cancellation token ready.
func (s *Scheduler) submit(job *Job) (*Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.token = NewCancelToken()
	job.result = make(chan Result, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errs.InvalidParameter("scheduler: pool is shut down")
	}
	if job.IsQuantum {
		s.tracker.Enqueue(job)
	} else {
		job.markQueued()
		s.classical.push(job)
	}
	s.mu.Unlock()
	s.cond.Signal()
	return job, nil
}

// SubmitClassical enqueues a classical task at the given priority.
func (s *Scheduler) SubmitClassical(prio ClassPriority, task Task) (*Job, error) {
	return s.submit(&Job{ClassPrio: prio, Task: task})
}

// SubmitQuantum enqueues a quantum-execution task at the given priority.
func (s *Scheduler) SubmitQuantum(prio QuantumPriority, task Task) (*Job, error) {
	return s.submit(&Job{IsQuantum: true, QuantumPrio: prio, Task: task})
}

// ExecuteWithTimeout submits task at the given quantum priority and blocks
// until it completes or the timeout expires. On expiry the job's
// cancellation token is set (the worker observes it at its next
// checkpoint) and a Timeout error is returned.
func (s *Scheduler) ExecuteWithTimeout(prio QuantumPriority, timeout time.Duration, task Task) (Result, error) {
	job, err := s.SubmitQuantum(prio, task)
	if err != nil {
		return Result{}, err
	}
	return job.ResultTimeout(timeout)
}

// QuantumRunning returns the number of quantum jobs currently executing.
func (s *Scheduler) QuantumRunning() int { return s.tracker.RunningCount() }

// QueueDepth returns the number of jobs currently waiting to run.
func (s *Scheduler) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classical.len() + s.tracker.QueuedCount()
}
