package stream

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/metrics"
)

// Subscriber is the caller-facing handle returned by Subscribe: an ID to
// Unsubscribe with and the mailbox's receive end.
type Subscriber struct {
	ID string
	Ch <-chan Message
}

// job is one circuit execution's broadcaster state: replay buffer,
// aggregator, backpressure governor, and subscriber registry, guarded by
// its own reader/writer lock.
type job struct {
	id         string
	totalShots int

	replay  *replayBuffer
	agg     *aggregator
	bp      *backpressureGovernor
	started time.Time

	mu          sync.RWMutex
	subscribers map[string]*mailbox
	completed   bool
}

// Fabric owns every active job's broadcaster state.
type Fabric struct {
	replayCapacity        int
	backpressureThreshold int
	mailboxCapacity       int
	statsInterval         int

	mu   sync.RWMutex
	jobs map[string]*job
}

// Config bundles the fabric's capacity knobs, sourced from
// internal/config's stream.* namespace.
type Config struct {
	ReplayCapacity         int
	BackpressureThreshold  int
	MailboxCapacity        int
	StatsEmitIntervalShots int
}

func New(cfg Config) *Fabric {
	return &Fabric{
		replayCapacity:        cfg.ReplayCapacity,
		backpressureThreshold: cfg.BackpressureThreshold,
		mailboxCapacity:       cfg.MailboxCapacity,
		statsInterval:         cfg.StatsEmitIntervalShots,
		jobs:                  make(map[string]*job),
	}
}

// StartJob registers a new broadcaster for jobID and emits its JobStarted
// message to the replay buffer (there are no subscribers yet to fan out
// to).
func (f *Fabric) StartJob(jobID, circuitID string, totalShots int, timestampNS int64) {
	j := &job{
		id:          jobID,
		totalShots:  totalShots,
		replay:      newReplayBuffer(f.replayCapacity),
		agg:         newAggregator(f.statsInterval),
		bp:          newBackpressureGovernor(f.backpressureThreshold),
		started:     time.Now(),
		subscribers: make(map[string]*mailbox),
	}
	f.mu.Lock()
	f.jobs[jobID] = j
	f.mu.Unlock()
	metrics.JobsByStatus.WithLabelValues("active").Inc()

	j.replay.push(Message{
		Tag: TagJobStarted,
		JobStarted: &JobStarted{
			JobID:       jobID,
			CircuitID:   circuitID,
			TotalShots:  totalShots,
			TimestampNS: timestampNS,
		},
	})
}

func (f *Fabric) getJob(jobID string) (*job, error) {
	f.mu.RLock()
	j, ok := f.jobs[jobID]
	f.mu.RUnlock()
	if !ok {
		return nil, errs.Execution(errs.CodeJobNotFound, "stream: job "+jobID+" not found")
	}
	return j, nil
}

// PublishMeasurement implements the fabric's core publish algorithm:
// backpressure acquire, replay append, aggregator fold, fan-out, and a
// conditional statistics fan-out.
func (f *Fabric) PublishMeasurement(jobID string, shotIndex int, bitstring string, timestampNS int64) error {
	j, err := f.getJob(jobID)
	if err != nil {
		return err
	}

	j.mu.RLock()
	completed := j.completed
	j.mu.RUnlock()
	if completed {
		return errs.Execution(errs.CodeJobNotFound, "stream: job "+jobID+" already completed")
	}

	j.bp.acquire()
	defer j.bp.release()

	msg := j.replay.push(Message{
		Tag: TagMeasurementEvent,
		MeasurementEvent: &MeasurementEvent{
			JobID:       jobID,
			ShotIndex:   shotIndex,
			Bitstring:   bitstring,
			TimestampNS: timestampNS,
		},
	})
	statsDue := j.agg.add(bitstring)

	f.fanOut(j, msg, func(sub Subscription) bool { return sub.IncludeMeasurements })

	if statsDue {
		stats := j.agg.snapshot(jobID, j.totalShots)
		statsMsg := j.replay.push(Message{Tag: TagStatisticsUpdate, StatisticsUpdate: &stats})
		f.fanOut(j, statsMsg, func(sub Subscription) bool { return sub.IncludeStats })
	}

	return nil
}

// fanOut delivers msg to every subscriber for which want returns true,
// using a non-blocking send per mailbox so one slow subscriber never
// blocks another.
func (f *Fabric) fanOut(j *job, msg Message, want func(Subscription) bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, m := range j.subscribers {
		if want(m.sub) {
			m.trySend(msg)
		}
	}
}

// Subscribe allocates a mailbox, replays the job's current buffer into it
// (best-effort; stops early if the mailbox fills), and registers the
// subscriber.
func (f *Fabric) Subscribe(jobID string, sub Subscription) (Subscriber, error) {
	j, err := f.getJob(jobID)
	if err != nil {
		return Subscriber{}, err
	}

	id := uuid.NewString()
	m := newMailbox(id, sub, f.mailboxCapacity)

	for _, msg := range j.replay.getAll() {
		if !wantsMessage(msg.Tag, sub) {
			continue
		}
		if !m.trySend(msg) {
			break
		}
	}

	j.mu.Lock()
	j.subscribers[id] = m
	j.mu.Unlock()

	return Subscriber{ID: id, Ch: m.Receive()}, nil
}

func wantsMessage(tag MessageTag, sub Subscription) bool {
	switch tag {
	case TagMeasurementEvent:
		return sub.IncludeMeasurements
	case TagStatisticsUpdate:
		return sub.IncludeStats
	default:
		return true
	}
}

// Unsubscribe removes a subscriber from a job. It is a no-op if either the
// job or the subscriber is already gone.
func (f *Fabric) Unsubscribe(jobID, subscriberID string) {
	j, err := f.getJob(jobID)
	if err != nil {
		return
	}
	j.mu.Lock()
	delete(j.subscribers, subscriberID)
	j.mu.Unlock()
}

// CompleteJob fans out a JobCompleted message and marks the job closed;
// subsequent publishes for it fail with JobNotFound-equivalent errors.
func (f *Fabric) CompleteJob(jobID string, elapsedMS int64) error {
	j, err := f.getJob(jobID)
	if err != nil {
		return err
	}

	final := j.agg.snapshot(jobID, j.totalShots)
	msg := j.replay.push(Message{
		Tag: TagJobCompleted,
		JobCompleted: &JobCompleted{
			JobID:      jobID,
			TotalShots: j.totalShots,
			ElapsedMS:  elapsedMS,
			Final:      final,
		},
	})

	j.mu.Lock()
	j.completed = true
	j.mu.Unlock()
	metrics.JobsByStatus.WithLabelValues("active").Dec()
	metrics.JobsByStatus.WithLabelValues("completed").Inc()

	f.fanOut(j, msg, func(Subscription) bool { return true })
	return nil
}

// PublishError fans out an Error message for jobID (which may be empty for
// a fabric-wide error).
func (f *Fabric) PublishError(jobID, code, message string) {
	j, err := f.getJob(jobID)
	if err != nil {
		return
	}
	msg := j.replay.push(Message{Tag: TagError, Error: &ErrorPayload{JobID: jobID, Code: code, Message: message}})
	f.fanOut(j, msg, func(Subscription) bool { return true })
}

// Pressure returns the fraction of a job's backpressure threshold in use.
func (f *Fabric) Pressure(jobID string) (float64, error) {
	j, err := f.getJob(jobID)
	if err != nil {
		return 0, err
	}
	return j.bp.pressure(), nil
}

// GetSince returns jobID's replay-buffer suffix after seq, for a
// reconnecting subscriber resuming from a known offset.
func (f *Fabric) GetSince(jobID string, seq uint64) ([]Message, error) {
	j, err := f.getJob(jobID)
	if err != nil {
		return nil, err
	}
	return j.replay.getSince(seq), nil
}
