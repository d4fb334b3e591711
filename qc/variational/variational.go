// Package variational builds parametrized circuit templates whose
// structure is fixed but whose gate angles are supplied at call time —
// the hardware-efficient ansatz and QAOA. The execution engine's tests
// exercise the hardware-efficient ansatz.
package variational

import (
	"fmt"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/builder"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
)

// HardwareEfficientParamCount returns the number of parameters a
// HardwareEfficientAnsatz of the given qubit count and layer count expects:
// a Ry and an Rz per qubit per layer, plus one closing Ry per qubit.
func HardwareEfficientParamCount(qubits, layers int) int {
	return qubits*layers*2 + qubits
}

// HardwareEfficientAnsatz builds L layers of per-qubit Ry+Rz rotations
// followed by a ladder of nearest-neighbor CNOT entanglers, closed off by
// one final per-qubit Ry layer. Params must have exactly
// HardwareEfficientParamCount(qubits, layers) entries, laid out
// layer-major: for each layer, all Ry angles then all Rz angles, and
// finally the closing Ry angles. A wrong-length parameter vector is a
// programmer error and panics at construction.
func HardwareEfficientAnsatz(qubits, layers int, params []float64) (circuit.Circuit, error) {
	want := HardwareEfficientParamCount(qubits, layers)
	if len(params) != want {
		panic(fmt.Sprintf("variational: hardware-efficient ansatz expects %d parameters, got %d", want, len(params)))
	}
	if qubits <= 0 {
		return nil, errs.Circuit(errs.CodeEmptyCircuit, "hardware-efficient ansatz: qubits must be positive")
	}

	b := builder.New(builder.Q(qubits), builder.C(qubits))
	idx := 0
	for l := 0; l < layers; l++ {
		for q := 0; q < qubits; q++ {
			b.Ry(q, params[idx])
			idx++
		}
		for q := 0; q < qubits; q++ {
			b.Rz(q, params[idx])
			idx++
		}
		for q := 0; q < qubits-1; q++ {
			b.CNOT(q, q+1)
		}
	}
	for q := 0; q < qubits; q++ {
		b.Ry(q, params[idx])
		idx++
	}
	for q := 0; q < qubits; q++ {
		b.Measure(q, q)
	}
	return b.BuildCircuit()
}

// Edge is one term of a QAOA cost Hamiltonian: a ZZ interaction between
// two qubits.
type Edge struct {
	A, B int
}

// QAOAParamCount returns the number of parameters a QAOA circuit of the
// given repetition depth expects: one gamma (cost angle) and one beta
// (mixer angle) per repetition.
func QAOAParamCount(reps int) int { return 2 * reps }

// QAOA builds the standard Quantum Approximate Optimization Algorithm
// circuit for a cost Hamiltonian given as a list of ZZ edges: an initial
// transverse-field layer of Hadamards, then reps repetitions of a cost
// layer (controlled-phase(2*gamma) on every edge) and a mixer layer
// (Rx(2*beta) on every qubit). Params must have exactly
// QAOAParamCount(reps) entries, ordered (gamma_0, beta_0, gamma_1,
// beta_1, ...); a wrong-length parameter vector is a programmer error
// and panics at construction.
func QAOA(qubits int, edges []Edge, reps int, params []float64) (circuit.Circuit, error) {
	want := QAOAParamCount(reps)
	if len(params) != want {
		panic(fmt.Sprintf("variational: qaoa expects %d parameters, got %d", want, len(params)))
	}
	for _, e := range edges {
		if e.A < 0 || e.A >= qubits || e.B < 0 || e.B >= qubits || e.A == e.B {
			return nil, errs.Circuit(errs.CodeInvalidQubitIndex,
				fmt.Sprintf("qaoa: edge (%d,%d) invalid for %d qubits", e.A, e.B, qubits))
		}
	}

	b := builder.New(builder.Q(qubits), builder.C(qubits))
	for q := 0; q < qubits; q++ {
		b.H(q)
	}
	for r := 0; r < reps; r++ {
		gamma := params[2*r]
		beta := params[2*r+1]
		for _, e := range edges {
			b.CPhase(e.A, e.B, 2*gamma)
		}
		for q := 0; q < qubits; q++ {
			b.Rx(q, 2*beta)
		}
	}
	for q := 0; q < qubits; q++ {
		b.Measure(q, q)
	}
	return b.BuildCircuit()
}
