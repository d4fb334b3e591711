package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/kernel"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

// denseBackend simulates via the full 2^n amplitude buffer, applying
// every non-measurement gate as a unitary kernel and sampling the final
// distribution once per shot.
type denseBackend struct {
	rng *rand.Rand
}

// NewDenseBackend returns a dense backend seeded from the current time.
func NewDenseBackend() Backend {
	return &denseBackend{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewDenseBackendSeeded returns a dense backend with a deterministic RNG,
// for reproducible tests.
func NewDenseBackendSeeded(seed int64) Backend {
	return &denseBackend{rng: rand.New(rand.NewSource(seed))}
}

func (d *denseBackend) Name() string { return "dense" }

func (d *denseBackend) buildBuffer(c circuit.Circuit) (*state.Buffer, error) {
	buf := state.Zero(c.Qubits())
	for _, op := range c.Operations() {
		if op.G.Name() == "MEASURE" {
			continue
		}
		if err := kernel.Apply(buf, op.G, op.Qubits); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (d *denseBackend) StateVector(c circuit.Circuit) (*state.Buffer, error) {
	return d.buildBuffer(c)
}

func (d *denseBackend) RunShots(ctx context.Context, c circuit.Circuit, shots int, emit SampleFunc) (map[string]int, error) {
	if shots <= 0 {
		return nil, errs.Execution(errs.CodeInvalidShotCount, "dense: shots must be positive")
	}
	measures := measuredQubits(c)
	if len(measures) == 0 {
		return nil, errs.Measurement(errs.CodeNoMeasurements, "dense: circuit has no MEASURE operations")
	}
	buf, err := d.buildBuffer(c)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for s := 0; s < shots; s++ {
		if err := ctx.Err(); err != nil {
			return counts, errs.Wrap(errs.KindExecution, errs.CodeExecutionCancelled, "dense: execution cancelled at shot boundary", err)
		}
		idx := buf.Sample(d.rng.Float64())
		full := state.Bitstring(idx, c.Qubits())
		outcome := projectOutcome(full, measures, c.Clbits())
		counts[outcome]++
		if emit != nil {
			emit(s, outcome)
		}
	}
	return counts, nil
}
