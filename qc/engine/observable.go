package engine

import "github.com/WeaveITMeta/Quantum-Operating-System/qc/state"

// Term is a single coefficient * Z_{q0}⊗Z_{q1}⊗... Pauli-product, the only
// Hamiltonian shape this engine can evaluate (see DESIGN.md). An empty
// ZQubits is the identity term.
type Term struct {
	Coefficient float64
	ZQubits     []int
}

// Observable is a weighted sum of Z/identity Pauli-product terms.
type Observable struct {
	Terms []Term
}

// Expectation evaluates o against buf, the final amplitude buffer of a
// measurement-free circuit run.
func (o Observable) Expectation(buf *state.Buffer) float64 {
	var total float64
	for _, t := range o.Terms {
		total += t.Coefficient * buf.ExpectationZProduct(t.ZQubits)
	}
	return total
}
