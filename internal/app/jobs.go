package app

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/scheduler"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/stream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// jobStore maps the fabric's job handle to the scheduler's job, so status
// and cancellation requests can reach a submission after the HTTP call
// that created it has returned.
type jobStore struct {
	mu sync.RWMutex
	m  map[string]*scheduler.Job
}

func newJobStore() *jobStore {
	return &jobStore{m: make(map[string]*scheduler.Job)}
}

func (s *jobStore) put(id string, j *scheduler.Job) {
	s.mu.Lock()
	s.m[id] = j
	s.mu.Unlock()
}

func (s *jobStore) get(id string) (*scheduler.Job, bool) {
	s.mu.RLock()
	j, ok := s.m[id]
	s.mu.RUnlock()
	return j, ok
}

// SubmitCircuit is the handler for POST /api/v1/circuits: it accepts the
// same circuit payload as /api/execute but runs it asynchronously as a
// quantum job, streaming measurements through the fabric. The response
// carries the job handle the caller polls or subscribes with.
func (a *appServer) SubmitCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req CircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Circuit.Qubits <= 0 || req.Circuit.Qubits > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid qubit count (1-10 allowed)"})
		return
	}
	if req.Shots <= 0 || req.Shots > 100000 {
		req.Shots = 1024
	}
	if req.Backend == "" {
		req.Backend = "auto"
	}

	circ, err := a.buildCircuitFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": errs.WireCode(err), "error": "Failed to build circuit: " + err.Error()})
		return
	}

	jobID := uuid.NewString()
	circuitID := uuid.NewString()
	shots := req.Shots
	backend := req.Backend
	a.fabric.StartJob(jobID, circuitID, shots, time.Now().UnixNano())

	job, err := a.sched.SubmitQuantum(scheduler.QuantumNormal, func(ctx context.Context) (any, error) {
		started := time.Now()
		counts, err := a.engine.ExecuteWithContext(ctx, circ, shots, backend, func(shotIndex int, bitstring string) {
			_ = a.fabric.PublishMeasurement(jobID, shotIndex, bitstring, time.Now().UnixNano())
		})
		if err != nil {
			a.fabric.PublishError(jobID, errs.WireCode(err), err.Error())
			return nil, err
		}
		if err := a.fabric.CompleteJob(jobID, time.Since(started).Milliseconds()); err != nil {
			return counts, err
		}
		return counts, nil
	})
	if err != nil {
		l.Error().Err(err).Msg("submitting job failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler rejected the job: " + err.Error()})
		return
	}
	a.jobs.put(jobID, job)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":     jobID,
		"circuit_id": circuitID,
		"shots":      shots,
		"backend":    backend,
	})
}

// JobStatus is the handler for GET /api/v1/jobs/:id.
func (a *appServer) JobStatus(c *gin.Context) {
	id := c.Param("id")
	job, ok := a.jobs.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": id, "status": string(job.Status())})
}

// CancelJob is the handler for DELETE /api/v1/jobs/:id: it sets the job's
// cancellation token; a queued job never starts, a running one stops at
// its next shot boundary.
func (a *appServer) CancelJob(c *gin.Context) {
	id := c.Param("id")
	job, ok := a.jobs.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	job.Cancel()
	c.JSON(http.StatusOK, gin.H{"job_id": id, "status": string(job.Status())})
}

// StreamJob is the handler for GET /api/v1/jobs/:id/stream: it subscribes
// to the job's fabric broadcaster and relays its messages as server-sent
// events until the job completes or the client disconnects.
func (a *appServer) StreamJob(c *gin.Context) {
	id := c.Param("id")
	sub, err := a.fabric.Subscribe(id, stream.Subscription{
		IncludeMeasurements: c.DefaultQuery("measurements", "true") == "true",
		IncludeStats:        c.DefaultQuery("stats", "true") == "true",
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	defer a.fabric.Unsubscribe(id, sub.ID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-sub.Ch:
			if !ok {
				return false
			}
			c.SSEvent(string(msg.Tag), msg)
			return msg.Tag != stream.TagJobCompleted
		case <-c.Request.Context().Done():
			return false
		}
	})
}
