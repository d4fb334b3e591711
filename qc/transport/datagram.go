package transport

import (
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// DatagramChannel is unreliable and unordered: Send returns as soon as the
// message is handed to the outbound buffer, subject to overflow policy and
// a rate.Limiter shaping the send rate.
type DatagramChannel struct {
	limiter *rate.Limiter
	policy  OverflowPolicy
	bufSize int

	mu  sync.Mutex
	buf []Envelope

	sent        atomic.Int64
	receivedAck atomic.Int64
	dropped     atomic.Int64
	outOfOrder  atomic.Int64
	duplicate   atomic.Int64

	nextSeq     atomic.Uint64
	lastSeqSeen int64
	seenSeqs    map[uint64]bool
}

// NewDatagramChannel builds a channel shaped to ratePerSec messages/sec
// (burst of int(ratePerSec)+1) with bufSize outbound capacity under policy.
func NewDatagramChannel(ratePerSec float64, bufSize int, policy OverflowPolicy) *DatagramChannel {
	if bufSize <= 0 {
		bufSize = 1
	}
	return &DatagramChannel{
		limiter:     rate.NewLimiter(rate.Limit(ratePerSec), int(ratePerSec)+1),
		policy:      policy,
		bufSize:     bufSize,
		lastSeqSeen: -1,
		seenSeqs:    make(map[uint64]bool),
	}
}

// Send enqueues payload at the given priority, assigning it the channel's
// next monotonic sequence number, and returns immediately. If the rate
// limiter is currently exhausted the message is accepted into the buffer
// anyway (limiting governs I/O pacing, not admission) unless the buffer is
// full, in which case the configured overflow policy applies.
func (c *DatagramChannel) Send(payload []byte, prio Priority) Envelope {
	seq := c.nextSeq.Add(1)
	env := Envelope{Payload: payload, Priority: prio, Sequence: seq}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.buf) >= c.bufSize {
		switch c.policy {
		case DropOldest:
			c.buf = c.buf[1:]
		case DropLowestPriority:
			if idx := lowestPriorityIndex(c.buf); idx >= 0 && c.buf[idx].Priority < prio {
				c.buf = append(c.buf[:idx], c.buf[idx+1:]...)
			} else {
				c.dropped.Add(1)
				return env
			}
		case DropNewest:
			c.dropped.Add(1)
			return env
		case NeverDrop:
			// fall through and grow the buffer unbounded
		}
	}

	c.buf = append(c.buf, env)
	c.sent.Add(1)
	return env
}

func lowestPriorityIndex(buf []Envelope) int {
	if len(buf) == 0 {
		return -1
	}
	idx := 0
	for i, e := range buf {
		if e.Priority < buf[idx].Priority {
			idx = i
		}
	}
	return idx
}

// Drain pops up to max envelopes ready to be written to the wire,
// respecting the rate limiter's current allowance.
func (c *DatagramChannel) Drain(max int) []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := max
	if n > len(c.buf) {
		n = len(c.buf)
	}
	out := make([]Envelope, 0, n)
	for len(out) < n && c.limiter.Allow() {
		out = append(out, c.buf[0])
		c.buf = c.buf[1:]
	}
	return out
}

// Ack records a received-acknowledgement and checks it for duplication or
// out-of-order arrival.
func (c *DatagramChannel) Ack(seq uint64) {
	c.receivedAck.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seenSeqs[seq] {
		c.duplicate.Add(1)
		return
	}
	c.seenSeqs[seq] = true
	if int64(seq) < c.lastSeqSeen {
		c.outOfOrder.Add(1)
	} else {
		c.lastSeqSeen = int64(seq)
	}
}

// Stats is a point-in-time snapshot of the channel's delivery counters.
type Stats struct {
	Sent        int64
	ReceivedAck int64
	Dropped     int64
	OutOfOrder  int64
	Duplicate   int64
	LossRate    float64
}

func (c *DatagramChannel) Stats() Stats {
	sent := c.sent.Load()
	acked := c.receivedAck.Load()
	loss := 0.0
	if sent > 0 {
		loss = 1 - float64(acked)/float64(sent)
	}
	return Stats{
		Sent:        sent,
		ReceivedAck: acked,
		Dropped:     c.dropped.Load(),
		OutOfOrder:  c.outOfOrder.Load(),
		Duplicate:   c.duplicate.Load(),
		LossRate:    loss,
	}
}
