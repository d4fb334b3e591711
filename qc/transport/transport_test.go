package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatagramSendAssignsMonotonicSequence(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	e1 := d.Send([]byte("a"), PriorityNormal)
	e2 := d.Send([]byte("b"), PriorityNormal)
	assert.Equal(t, e1.Sequence+1, e2.Sequence)
}

func TestDatagramDropOldestEvictsUnderOverflow(t *testing.T) {
	d := NewDatagramChannel(1000, 2, DropOldest)
	d.Send([]byte("a"), PriorityNormal)
	d.Send([]byte("b"), PriorityNormal)
	d.Send([]byte("c"), PriorityNormal)
	drained := d.Drain(10)
	require.Len(t, drained, 2)
	assert.Equal(t, []byte("b"), drained[0].Payload)
	assert.Equal(t, []byte("c"), drained[1].Payload)
}

func TestDatagramDropNewestRejectsIncomingUnderOverflow(t *testing.T) {
	d := NewDatagramChannel(1000, 1, DropNewest)
	d.Send([]byte("a"), PriorityNormal)
	d.Send([]byte("b"), PriorityNormal)
	drained := d.Drain(10)
	require.Len(t, drained, 1)
	assert.Equal(t, []byte("a"), drained[0].Payload)
	assert.EqualValues(t, 1, d.Stats().Dropped)
}

func TestDatagramLossRateReflectsUnackedSends(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	e1 := d.Send([]byte("a"), PriorityNormal)
	d.Send([]byte("b"), PriorityNormal)
	d.Ack(e1.Sequence)
	assert.InDelta(t, 0.5, d.Stats().LossRate, 1e-9)
}

func TestDatagramAckDetectsDuplicate(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	e1 := d.Send([]byte("a"), PriorityNormal)
	d.Ack(e1.Sequence)
	d.Ack(e1.Sequence)
	assert.EqualValues(t, 1, d.Stats().Duplicate)
}

func TestStreamChannelSendAwaitRespectsContextCancellation(t *testing.T) {
	s := NewStreamChannel(1)
	require.NoError(t, s.SendAwait(context.Background(), Envelope{Payload: []byte("a")}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.SendAwait(ctx, Envelope{Payload: []byte("b")}) // mailbox already full
	assert.Error(t, err)
}

func TestModeEvaluatorUpgradesOnHighLoss(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	for i := 0; i < 10; i++ {
		d.Send([]byte("x"), PriorityNormal)
	}
	// ack only 1 of 10 sends -> 90% loss
	d.Ack(1)

	e := NewModeEvaluator(d, 0.05, 0.01, time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	mode := e.Evaluate()
	assert.Equal(t, ModeStream, mode)
	assert.Equal(t, 1, e.SwitchCount())
}

func TestModeEvaluatorNeverFlapsFasterThanWindow(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	e := NewModeEvaluator(d, 0.05, 0.01, time.Hour)
	e.Evaluate()
	got := e.Evaluate() // second call within the window: limiter denies, no change
	assert.Equal(t, ModeDatagram, got)
}

func TestHybridModeRoutesCriticalOnBothChannels(t *testing.T) {
	d := NewDatagramChannel(1000, 8, DropOldest)
	e := NewModeEvaluator(d, 0.05, 0.01, time.Hour)
	e.SetHybrid()

	useDg, useStream := e.Route(Envelope{Priority: PriorityCritical})
	assert.True(t, useDg)
	assert.True(t, useStream)

	useDg, useStream = e.Route(Envelope{Priority: PriorityNormal})
	assert.True(t, useDg)
	assert.False(t, useStream)
}

func TestUDPBindSendRecvRoundTrip(t *testing.T) {
	server, err := Bind("127.0.0.1:0", UDPConfig{SendBufferBytes: 1 << 16, RecvBufferBytes: 1 << 16})
	require.NoError(t, err)
	defer server.Close()

	client, err := Bind("127.0.0.1:0", UDPConfig{})
	require.NoError(t, err)
	defer client.Close()

	serverAddr := server.LocalAddr().(*net.UDPAddr)
	_, err = client.SendTo([]byte("ping"), serverAddr)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, _, err := server.RecvFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}
