package transport

import (
	"sync"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/metrics"
	"golang.org/x/time/rate"
)

// ModeEvaluator periodically inspects a datagram channel's loss rate and
// switches between Datagram, Stream, and Hybrid modes. A rate.Limiter
// allowing one token per evaluation window enforces that it never flaps
// faster than that window, in place of a hand-rolled ticker-debounce.
type ModeEvaluator struct {
	datagram *DatagramChannel
	limiter  *rate.Limiter

	upgradeThreshold   float64
	downgradeThreshold float64

	mu          sync.Mutex
	mode        Mode
	switchCount int
}

// NewModeEvaluator builds an evaluator starting in ModeDatagram, switching
// per upgradeThreshold/downgradeThreshold loss rates, never more often
// than once per window.
func NewModeEvaluator(datagram *DatagramChannel, upgradeThreshold, downgradeThreshold float64, window time.Duration) *ModeEvaluator {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &ModeEvaluator{
		datagram:           datagram,
		limiter:            rate.NewLimiter(rate.Every(window), 1),
		upgradeThreshold:   upgradeThreshold,
		downgradeThreshold: downgradeThreshold,
		mode:               ModeDatagram,
	}
}

// Evaluate inspects the current loss rate and applies a mode switch if the
// evaluation window allows one and the loss rate crosses a threshold.
// Returns the (possibly unchanged) mode in effect afterward.
func (e *ModeEvaluator) Evaluate() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.limiter.Allow() {
		return e.mode
	}

	loss := e.datagram.Stats().LossRate
	metrics.TransportLossRate.Set(loss)
	switch e.mode {
	case ModeDatagram:
		if loss > e.upgradeThreshold {
			e.mode = ModeStream
			e.switchCount++
		}
	case ModeStream:
		if loss < e.downgradeThreshold {
			e.mode = ModeDatagram
			e.switchCount++
		}
	case ModeHybrid:
		// Hybrid stays put; critical messages always go on the stream
		// channel regardless of loss, handled by the caller's routing.
	}
	return e.mode
}

// Mode returns the evaluator's current mode without forcing a re-evaluation.
func (e *ModeEvaluator) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetHybrid pins the evaluator to Hybrid mode until explicitly changed.
func (e *ModeEvaluator) SetHybrid() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = ModeHybrid
}

// SwitchCount returns the number of mode transitions observed so far.
func (e *ModeEvaluator) SwitchCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.switchCount
}

// Route decides which channel(s) env should go out on for the evaluator's
// current mode: Datagram and Stream route exclusively, Hybrid sends
// critical messages on both and everything else on the datagram channel
// only.
func (e *ModeEvaluator) Route(env Envelope) (useDatagram, useStream bool) {
	switch e.Mode() {
	case ModeDatagram:
		return true, false
	case ModeStream:
		return false, true
	default: // ModeHybrid
		if env.Priority == PriorityCritical {
			return true, true
		}
		return true, false
	}
}
