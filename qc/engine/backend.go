// Package engine implements the execution engine: shot sampling,
// expectation values, and parameter-shift gradients driven over one of
// three pluggable backends (dense state vector, matrix-product state, or
// the itsubaki/q-backed simulator), selected explicitly or by an "auto"
// policy keyed on qubit count.
package engine

import (
	"context"

	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

// SampleFunc receives one shot's classical outcome as it is produced,
// letting a caller (the streaming fabric's broadcaster) observe samples
// without the engine depending on it.
type SampleFunc func(shotIndex int, bitstring string)

// Backend executes a validated circuit either for shot-based sampling or,
// where supported, to the full state vector for expectation/gradient
// evaluation.
type Backend interface {
	Name() string

	// RunShots executes c for the given number of shots, returning the
	// aggregate bitstring counts. emit, if non-nil, is called once per
	// shot as it completes. Cancellation of ctx is observed at shot
	// boundaries; in-flight gate applications are never interrupted.
	RunShots(ctx context.Context, c circuit.Circuit, shots int, emit SampleFunc) (map[string]int, error)

	// StateVector returns the circuit's final amplitude vector, ignoring
	// any MEASURE operations (an ideal, measurement-free simulation).
	// Backends that cannot materialize a state vector (e.g. itsu) return
	// a Backend/NotAvailable error.
	StateVector(c circuit.Circuit) (*state.Buffer, error)
}

// measuredQubits walks c's operations and returns the qubit->classical-bit
// mapping established by its MEASURE instructions.
func measuredQubits(c circuit.Circuit) map[int]int {
	m := make(map[int]int)
	for _, op := range c.Operations() {
		if op.G.Name() == "MEASURE" {
			m[op.Qubits[0]] = op.Cbit
		}
	}
	return m
}

// projectOutcome renders a full n-qubit basis bitstring down to the
// circuit's classical register, per its MEASURE mapping; classical bits
// with no corresponding measurement default to '0'.
func projectOutcome(fullBitstring string, measures map[int]int, clbits int) string {
	out := make([]byte, clbits)
	for i := range out {
		out[i] = '0'
	}
	for q, cb := range measures {
		if cb >= 0 && cb < clbits {
			out[cb] = fullBitstring[q]
		}
	}
	return string(out)
}
