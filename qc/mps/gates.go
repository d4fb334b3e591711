package mps

import (
	"math"
	"math/cmplx"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/gate"
)

// ApplyGate dispatches g onto the chain at the given absolute qubit
// indices. Only single-qubit gates and two-qubit gates on adjacent sites
// are supported directly; a caller applying a two-qubit gate to
// non-adjacent qubits must first route it through SWAP gates, the same
// convention most MPS simulators use.
func (c *Chain) ApplyGate(g gate.Gate, qubits []int) error {
	if pg, ok := g.(gate.Parametrized); ok {
		switch pg.Name() {
		case "RX":
			c.ApplySingle(qubits[0], rxMatrix(pg.Theta()))
			return nil
		case "RY":
			c.ApplySingle(qubits[0], ryMatrix(pg.Theta()))
			return nil
		case "RZ":
			c.ApplySingle(qubits[0], rzMatrix(pg.Theta()))
			return nil
		case "CPHASE":
			return c.applyAdjacentOrFail(qubits[0], qubits[1], cPhaseMatrix(pg.Theta()))
		}
		return errs.Circuit(errs.CodeConstructionFailed, "mps: unknown parametrized gate "+pg.Name())
	}

	switch g.Name() {
	case "H":
		c.ApplySingle(qubits[0], hadamardMatrix())
	case "X":
		c.ApplySingle(qubits[0], pauliXMatrix())
	case "Y":
		c.ApplySingle(qubits[0], pauliYMatrix())
	case "Z":
		c.ApplySingle(qubits[0], pauliZMatrix())
	case "S":
		c.ApplySingle(qubits[0], phaseMatrix(math.Pi/2))
	case "CNOT":
		return c.applyAdjacentOrFail(qubits[0], qubits[1], cnotMatrix())
	case "CZ":
		return c.applyAdjacentOrFail(qubits[0], qubits[1], cPhaseMatrix(math.Pi))
	case "SWAP":
		return c.applyAdjacentOrFail(qubits[0], qubits[1], swapMatrix())
	default:
		return errs.Circuit(errs.CodeConstructionFailed, "mps: unsupported gate for MPS backend: "+g.Name())
	}
	return nil
}

func (c *Chain) applyAdjacentOrFail(a, b int, m [4][4]complex128) error {
	if b == a+1 {
		return c.ApplyAdjacentTwoQubit(a, m)
	}
	if a == b+1 {
		return c.ApplyAdjacentTwoQubit(b, swapOperands(m))
	}
	return errs.Backend(errs.CodeMpsTruncationError, "mps: two-qubit gate requires adjacent qubits")
}

// swapOperands re-indexes a two-qubit gate matrix for operands applied in
// reversed (b,a) order instead of (a,b).
func swapOperands(m [4][4]complex128) [4][4]complex128 {
	var out [4][4]complex128
	perm := func(x int) int { return (x&1)<<1 | (x >> 1) }
	for r := 0; r < 4; r++ {
		for col := 0; col < 4; col++ {
			out[perm(r)][perm(col)] = m[r][col]
		}
	}
	return out
}

func hadamardMatrix() [2][2]complex128 {
	inv := complex(1/math.Sqrt2, 0)
	return [2][2]complex128{{inv, inv}, {inv, -inv}}
}
func pauliXMatrix() [2][2]complex128 { return [2][2]complex128{{0, 1}, {1, 0}} }
func pauliYMatrix() [2][2]complex128 {
	return [2][2]complex128{{0, complex(0, -1)}, {complex(0, 1), 0}}
}
func pauliZMatrix() [2][2]complex128 { return [2][2]complex128{{1, 0}, {0, -1}} }
func phaseMatrix(theta float64) [2][2]complex128 {
	return [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}
func rxMatrix(theta float64) [2][2]complex128 {
	cth := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return [2][2]complex128{{cth, s}, {s, cth}}
}
func ryMatrix(theta float64) [2][2]complex128 {
	cth := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return [2][2]complex128{{cth, -s}, {s, cth}}
}
func rzMatrix(theta float64) [2][2]complex128 {
	return [2][2]complex128{{cmplx.Exp(complex(0, -theta/2)), 0}, {0, cmplx.Exp(complex(0, theta/2))}}
}

// cnotMatrix, cPhaseMatrix, swapMatrix are indexed [out_a*2+out_b][in_a*2+in_b]
// with qubit a the control (for CNOT/CPHASE) at the more significant position.
func cnotMatrix() [4][4]complex128 {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}
func cPhaseMatrix(theta float64) [4][4]complex128 {
	ph := cmplx.Exp(complex(0, theta))
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, ph},
	}
}
func swapMatrix() [4][4]complex128 {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}
}
