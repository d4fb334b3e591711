package engine

import (
	"context"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/obslog"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
)

// CircuitBuilderFunc rebuilds a parametrized circuit from a fresh parameter
// vector, letting Gradient shift one parameter at a time without the
// engine knowing anything about ansatz shape.
type CircuitBuilderFunc func(params []float64) (circuit.Circuit, error)

const paramShift = 1.5707963267948966 // pi/2

// Engine resolves a named (or "auto") backend and drives shot execution,
// expectation values, and parameter-shift gradients over it.
type Engine struct {
	registry *BackendRegistry
	cfg      *config.Config
	log      *obslog.Logger
}

// New builds an Engine against the package-default backend registry.
func New(cfg *config.Config, log *obslog.Logger) *Engine {
	return &Engine{registry: defaultRegistry, cfg: cfg, log: log.SpawnForService("engine")}
}

func (e *Engine) resolveBackend(name string, qubits int) (Backend, error) {
	if name == "" || name == "auto" {
		if qubits <= e.cfg.GetInt("engine.max_dense_qubits") {
			name = "dense"
		} else {
			name = "mps"
		}
	}
	b, err := e.registry.Create(name)
	if err != nil {
		return nil, errs.Wrap(errs.KindExecution, errs.CodeBackendUnavailable, "engine: backend unavailable", err)
	}
	return b, nil
}

// Execute runs c for shots shots on the named (or "auto") backend,
// returning aggregate bitstring counts.
func (e *Engine) Execute(c circuit.Circuit, shots int, backendName string) (map[string]int, error) {
	return e.ExecuteWithContext(context.Background(), c, shots, backendName, nil)
}

// ExecuteWithCallback is Execute but additionally invokes emit once per
// shot, letting a streaming fabric observe samples as they are produced.
func (e *Engine) ExecuteWithCallback(c circuit.Circuit, shots int, backendName string, emit SampleFunc) (map[string]int, error) {
	return e.ExecuteWithContext(context.Background(), c, shots, backendName, emit)
}

// ExecuteWithContext is the full execution entry point: ctx cancellation
// is observed at shot boundaries (a scheduler-cancelled job stops sampling
// without interrupting an in-flight gate application), and emit, if
// non-nil, fires once per shot in shot-index order.
func (e *Engine) ExecuteWithContext(ctx context.Context, c circuit.Circuit, shots int, backendName string, emit SampleFunc) (map[string]int, error) {
	if c.Qubits() <= 0 {
		return nil, errs.InvalidParameter("engine: circuit must have at least one qubit")
	}
	b, err := e.resolveBackend(backendName, c.Qubits())
	if err != nil {
		return nil, err
	}
	counts, err := b.RunShots(ctx, c, shots, emit)
	if err != nil {
		return nil, err
	}
	e.log.Logger.Debug().Str("backend", b.Name()).Int("shots", shots).Int("outcomes", len(counts)).Msg("executed circuit")
	return counts, nil
}

// Expectation evaluates obs against c's ideal (measurement-free) final
// state on the named (or "auto") backend.
func (e *Engine) Expectation(c circuit.Circuit, obs Observable, backendName string) (float64, error) {
	b, err := e.resolveBackend(backendName, c.Qubits())
	if err != nil {
		return 0, err
	}
	buf, err := b.StateVector(c)
	if err != nil {
		return 0, err
	}
	return obs.Expectation(buf), nil
}

// Gradient computes the parameter-shift gradient of obs's expectation with
// respect to each entry of params, rebuilding the circuit via build at
// params shifted by +-pi/2 per entry.
func (e *Engine) Gradient(build CircuitBuilderFunc, params []float64, obs Observable, backendName string) ([]float64, error) {
	grad := make([]float64, len(params))
	shifted := append([]float64(nil), params...)
	for i := range params {
		original := shifted[i]

		shifted[i] = original + paramShift
		cPlus, err := build(shifted)
		if err != nil {
			return nil, errs.Wrap(errs.KindExecution, errs.CodeGradientFailed, "engine: gradient build at +shift failed", err)
		}
		ePlus, err := e.Expectation(cPlus, obs, backendName)
		if err != nil {
			return nil, errs.Wrap(errs.KindExecution, errs.CodeGradientFailed, "engine: gradient expectation at +shift failed", err)
		}

		shifted[i] = original - paramShift
		cMinus, err := build(shifted)
		if err != nil {
			return nil, errs.Wrap(errs.KindExecution, errs.CodeGradientFailed, "engine: gradient build at -shift failed", err)
		}
		eMinus, err := e.Expectation(cMinus, obs, backendName)
		if err != nil {
			return nil, errs.Wrap(errs.KindExecution, errs.CodeGradientFailed, "engine: gradient expectation at -shift failed", err)
		}

		shifted[i] = original
		grad[i] = (ePlus - eMinus) / 2
	}
	return grad, nil
}
