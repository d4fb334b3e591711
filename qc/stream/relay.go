package stream

import (
	"context"
	"encoding/json"

	"github.com/WeaveITMeta/Quantum-Operating-System/qc/transport"
)

// TransportRelay forwards one job's streaming messages onto the hybrid
// transport: messages route per the evaluator's current mode, and
// JobCompleted/Error messages are tagged critical so Hybrid mode
// duplicates them onto the reliable stream channel.
type TransportRelay struct {
	fabric    *Fabric
	evaluator *transport.ModeEvaluator
	datagram  *transport.DatagramChannel
	reliable  *transport.StreamChannel
}

func NewTransportRelay(f *Fabric, ev *transport.ModeEvaluator, dg *transport.DatagramChannel, st *transport.StreamChannel) *TransportRelay {
	return &TransportRelay{fabric: f, evaluator: ev, datagram: dg, reliable: st}
}

// Run subscribes to jobID and forwards its messages until it has forwarded
// the job's JobCompleted message or ctx is cancelled. The evaluator
// is prodded after every forward so mode switches track the observed loss
// rate without a separate timer goroutine.
func (r *TransportRelay) Run(ctx context.Context, jobID string, sub Subscription) error {
	s, err := r.fabric.Subscribe(jobID, sub)
	if err != nil {
		return err
	}
	defer r.fabric.Unsubscribe(jobID, s.ID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-s.Ch:
			if !ok {
				return nil
			}
			if err := r.forward(ctx, msg); err != nil {
				return err
			}
			r.evaluator.Evaluate()
			if msg.Tag == TagJobCompleted {
				return nil
			}
		}
	}
}

func (r *TransportRelay) forward(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	prio := transport.PriorityNormal
	if msg.Tag == TagJobCompleted || msg.Tag == TagError {
		prio = transport.PriorityCritical
	}
	env := transport.Envelope{Payload: payload, Priority: prio}
	useDatagram, useStream := r.evaluator.Route(env)
	if useDatagram {
		r.datagram.Send(payload, prio)
	}
	if useStream {
		return r.reliable.SendAwait(ctx, env)
	}
	return nil
}
