package stream

import (
	"sync"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/metrics"
)

// backpressureGovernor bounds the number of in-flight publishes for a job:
// acquire suspends while the pending count is at threshold, release
// decrements and wakes one waiter.
type backpressureGovernor struct {
	mu        sync.Mutex
	cond      *sync.Cond
	pending   int
	threshold int
}

func newBackpressureGovernor(threshold int) *backpressureGovernor {
	if threshold <= 0 {
		threshold = 1
	}
	g := &backpressureGovernor{threshold: threshold}
	g.cond = sync.NewCond(&g.mu)
	return g
}

func (g *backpressureGovernor) acquire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.pending >= g.threshold {
		g.cond.Wait()
	}
	g.pending++
	metrics.BackpressurePending.Inc()
}

func (g *backpressureGovernor) release() {
	g.mu.Lock()
	g.pending--
	g.mu.Unlock()
	g.cond.Signal()
	metrics.BackpressurePending.Dec()
}

// pressure returns the current fraction of threshold in use.
func (g *backpressureGovernor) pressure() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.pending) / float64(g.threshold)
}
