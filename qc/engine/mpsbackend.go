package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/mps"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

func mpsDefaultConfig() mps.Config { return mps.DefaultConfig }

// mpsBackend simulates via the matrix-product-state chain, applying
// each gate directly against the chain and contracting to a dense buffer
// once per circuit to drive sampling.
type mpsBackend struct {
	cfg mps.Config
	rng *rand.Rand
}

// NewMPSBackend returns an MPS backend bounded by cfg.
func NewMPSBackend(cfg mps.Config) Backend {
	return &mpsBackend{cfg: cfg, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *mpsBackend) Name() string { return "mps" }

func (m *mpsBackend) buildBuffer(c circuit.Circuit) (*state.Buffer, error) {
	chain := mps.Zero(c.Qubits(), m.cfg)
	for _, op := range c.Operations() {
		if op.G.Name() == "MEASURE" {
			continue
		}
		if err := chain.ApplyGate(op.G, op.Qubits); err != nil {
			return nil, err
		}
	}
	return chain.ToDense(), nil
}

func (m *mpsBackend) StateVector(c circuit.Circuit) (*state.Buffer, error) {
	return m.buildBuffer(c)
}

func (m *mpsBackend) RunShots(ctx context.Context, c circuit.Circuit, shots int, emit SampleFunc) (map[string]int, error) {
	if shots <= 0 {
		return nil, errs.Execution(errs.CodeInvalidShotCount, "mps: shots must be positive")
	}
	measures := measuredQubits(c)
	if len(measures) == 0 {
		return nil, errs.Measurement(errs.CodeNoMeasurements, "mps: circuit has no MEASURE operations")
	}
	buf, err := m.buildBuffer(c)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for s := 0; s < shots; s++ {
		if err := ctx.Err(); err != nil {
			return counts, errs.Wrap(errs.KindExecution, errs.CodeExecutionCancelled, "mps: execution cancelled at shot boundary", err)
		}
		idx := buf.Sample(m.rng.Float64())
		full := state.Bitstring(idx, c.Qubits())
		outcome := projectOutcome(full, measures, c.Clbits())
		counts[outcome]++
		if emit != nil {
			emit(s, outcome)
		}
	}
	return counts, nil
}
