package engine

import (
	"context"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/simulator"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/simulator/itsu"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

// itsuBackend wraps the itsubaki/q-backed one-shot runner, replaying the
// circuit once per shot since the runner has no notion of a reusable
// pre-measurement state.
type itsuBackend struct {
	runner *itsu.ItsuOneShotRunner
}

// NewItsuBackend returns a backend driven by the itsubaki/q simulator. It
// does not support parametrized gates or StateVector access.
func NewItsuBackend() Backend {
	return &itsuBackend{runner: itsu.NewItsuOneShotRunner()}
}

func (i *itsuBackend) Name() string { return "itsu" }

func (i *itsuBackend) StateVector(c circuit.Circuit) (*state.Buffer, error) {
	return nil, errs.Backend(errs.CodeNotAvailable, "itsu: backend exposes no accessible state vector")
}

// RunShots distributes shots over the simulator's static worker pool. The
// pool runs each partition to completion, so ctx is only checked before
// the run starts, not per shot.
func (i *itsuBackend) RunShots(ctx context.Context, c circuit.Circuit, shots int, emit SampleFunc) (map[string]int, error) {
	if shots <= 0 {
		return nil, errs.Execution(errs.CodeInvalidShotCount, "itsu: shots must be positive")
	}
	if len(measuredQubits(c)) == 0 {
		return nil, errs.Measurement(errs.CodeNoMeasurements, "itsu: circuit has no MEASURE operations")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.KindExecution, errs.CodeExecutionCancelled, "itsu: execution cancelled", err)
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{
		Shots:  shots,
		Runner: i.runner,
		Emit:   emit,
	})
	counts, err := sim.RunParallelStatic(c)
	if err != nil {
		return nil, errs.Wrap(errs.KindExecution, errs.CodeJobFailed, "itsu: shot execution failed", err)
	}
	return counts, nil
}
