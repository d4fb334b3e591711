package stream

import (
	"sync"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/metrics"
)

// replayBuffer is a bounded FIFO history of a job's wire messages: push
// evicts the oldest entry once full, get_since returns everything after a
// given sequence number (the full buffer if seq predates the oldest
// retained entry).
type replayBuffer struct {
	mu       sync.RWMutex
	messages []Message
	capacity int
	nextSeq  uint64
}

func newReplayBuffer(capacity int) *replayBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &replayBuffer{capacity: capacity}
}

// push assigns the next sequence number to msg, appends it, and evicts the
// oldest entry if the buffer is at capacity. Returns the stamped message.
func (r *replayBuffer) push(msg Message) Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	msg.Sequence = r.nextSeq
	r.messages = append(r.messages, msg)
	if len(r.messages) > r.capacity {
		r.messages = r.messages[1:]
		metrics.ReplayDroppedTotal.Inc()
	}
	return msg
}

// getAll returns a snapshot of every retained message in insertion order.
func (r *replayBuffer) getAll() []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// getSince returns the suffix whose sequence numbers exceed seq. If seq
// predates the oldest retained message, the full buffer is returned.
func (r *replayBuffer) getSince(seq uint64) []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.messages) == 0 {
		return nil
	}
	oldest := r.messages[0].Sequence
	if seq < oldest {
		out := make([]Message, len(r.messages))
		copy(out, r.messages)
		return out
	}
	var out []Message
	for _, m := range r.messages {
		if m.Sequence > seq {
			out = append(out, m)
		}
	}
	return out
}
