// Package kernel implements the in-place gate-application procedures
// that the execution engine drives over a qc/state.Buffer. Each kernel
// iterates the 2^n basis indices and touches only the pairs that differ in
// the gate's target bit(s); iteration always walks indices with the
// target bit clear and updates both halves of the pair once, so no
// updated amplitude is read again within the same pass.
package kernel

import (
	"math"
	"math/cmplx"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/gate"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/state"
)

func bitOf(n, q int) uint { return uint(n - 1 - q) }

// Apply dispatches g onto b at the given absolute qubit indices (already
// validated by the caller — the circuit IR guarantees indices are in range
// and, for multi-qubit gates, pairwise distinct).
func Apply(b *state.Buffer, g gate.Gate, qubits []int) error {
	switch gg := g.(type) {
	case gate.Parametrized:
		switch gg.Name() {
		case "RX":
			Rx(b, qubits[0], gg.Theta())
		case "RY":
			Ry(b, qubits[0], gg.Theta())
		case "RZ":
			Rz(b, qubits[0], gg.Theta())
		case "CPHASE":
			CPhase(b, qubits[0], qubits[1], gg.Theta())
		default:
			return errs.Circuit(errs.CodeConstructionFailed, "kernel: unknown parametrized gate "+gg.Name())
		}
		return nil
	}

	switch g.Name() {
	case "H":
		Hadamard(b, qubits[0])
	case "X":
		PauliX(b, qubits[0])
	case "Y":
		PauliY(b, qubits[0])
	case "Z":
		PauliZ(b, qubits[0])
	case "S":
		Phase(b, qubits[0], math.Pi/2)
	case "CNOT":
		CNOT(b, qubits[0], qubits[1])
	case "CZ":
		CPhase(b, qubits[0], qubits[1], math.Pi)
	case "SWAP":
		Swap(b, qubits[0], qubits[1])
	case "TOFFOLI":
		Toffoli(b, qubits[0], qubits[1], qubits[2])
	case "FREDKIN":
		Fredkin(b, qubits[0], qubits[1], qubits[2])
	case "MEASURE":
		// Measurement is handled by the execution engine (collapses /
		// samples), not by the in-place kernel dispatcher.
		return errs.Circuit(errs.CodeConstructionFailed, "kernel: MEASURE is not an in-place gate kernel")
	default:
		return errs.Circuit(errs.CodeConstructionFailed, "kernel: unsupported gate "+g.Name())
	}
	return nil
}

// Hadamard applies H on qubit q: a' = (a+b)/sqrt2, b' = (a-b)/sqrt2.
func Hadamard(b *state.Buffer, q int) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	inv := complex(1/math.Sqrt2, 0)
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			continue
		}
		j := i | int(mask)
		a, bb := amps[i], amps[j]
		amps[i] = (a + bb) * inv
		amps[j] = (a - bb) * inv
	}
}

// PauliX swaps the amplitudes at the paired indices for qubit q.
func PauliX(b *state.Buffer, q int) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			continue
		}
		j := i | int(mask)
		amps[i], amps[j] = amps[j], amps[i]
	}
}

// PauliY: a' = i*b, b' = -i*a.
func PauliY(b *state.Buffer, q int) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			continue
		}
		j := i | int(mask)
		a, bb := amps[i], amps[j]
		amps[i] = complex(0, 1) * bb
		amps[j] = complex(0, -1) * a
	}
}

// PauliZ negates amplitudes where bit-q = 1.
func PauliZ(b *state.Buffer, q int) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			amps[i] = -amps[i]
		}
	}
}

// Phase multiplies amplitudes where bit-q = 1 by e^(i*theta) (S = Phase(pi/2)).
func Phase(b *state.Buffer, q int, theta float64) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	ph := cmplx.Exp(complex(0, theta))
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			amps[i] *= ph
		}
	}
}

// Rx applies the 2x2 unitary with cos(theta/2) on the diagonal and
// -i*sin(theta/2) off-diagonal.
func Rx(b *state.Buffer, q int, theta float64) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			continue
		}
		j := i | int(mask)
		a, bb := amps[i], amps[j]
		amps[i] = c*a + s*bb
		amps[j] = s*a + c*bb
	}
}

// Ry applies a real 2x2 rotation by theta/2.
func Ry(b *state.Buffer, q int, theta float64) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			continue
		}
		j := i | int(mask)
		a, bb := amps[i], amps[j]
		amps[i] = c*a - s*bb
		amps[j] = s*a + c*bb
	}
}

// Rz multiplies by e^(-i*theta/2) where bit-q=0, e^(+i*theta/2) where bit-q=1.
func Rz(b *state.Buffer, q int, theta float64) {
	n := b.Qubits()
	bit := bitOf(n, q)
	mask := uint(1) << bit
	neg := cmplx.Exp(complex(0, -theta/2))
	pos := cmplx.Exp(complex(0, theta/2))
	amps := b.Slice()
	for i := range amps {
		if uint(i)&mask != 0 {
			amps[i] *= pos
		} else {
			amps[i] *= neg
		}
	}
}

// CNOT swaps a_i <-> a_j iff bit-c=1 and bit-t=0.
func CNOT(b *state.Buffer, c, t int) {
	n := b.Qubits()
	cbit, tbit := bitOf(n, c), bitOf(n, t)
	cmask, tmask := uint(1)<<cbit, uint(1)<<tbit
	amps := b.Slice()
	for i := range amps {
		u := uint(i)
		if u&cmask == 0 || u&tmask != 0 {
			continue
		}
		j := i | int(tmask)
		amps[i], amps[j] = amps[j], amps[i]
	}
}

// CPhase multiplies by e^(i*theta) iff bit-c=1 and bit-t=1.
func CPhase(b *state.Buffer, c, t int, theta float64) {
	n := b.Qubits()
	cbit, tbit := bitOf(n, c), bitOf(n, t)
	cmask, tmask := uint(1)<<cbit, uint(1)<<tbit
	ph := cmplx.Exp(complex(0, theta))
	amps := b.Slice()
	for i := range amps {
		u := uint(i)
		if u&cmask != 0 && u&tmask != 0 {
			amps[i] *= ph
		}
	}
}

// Swap exchanges amplitudes differing only in bits a,b when bit-a=1, bit-b=0.
func Swap(b *state.Buffer, qa, qb int) {
	n := b.Qubits()
	abit, bbit := bitOf(n, qa), bitOf(n, qb)
	amask, bmask := uint(1)<<abit, uint(1)<<bbit
	amps := b.Slice()
	for i := range amps {
		u := uint(i)
		if u&amask == 0 || u&bmask != 0 {
			continue
		}
		j := (i &^ int(amask)) | int(bmask)
		amps[i], amps[j] = amps[j], amps[i]
	}
}

// Toffoli swaps a_i <-> a_j iff bit-c1=1, bit-c2=1, bit-t=0.
func Toffoli(b *state.Buffer, c1, c2, t int) {
	n := b.Qubits()
	c1bit, c2bit, tbit := bitOf(n, c1), bitOf(n, c2), bitOf(n, t)
	c1mask, c2mask, tmask := uint(1)<<c1bit, uint(1)<<c2bit, uint(1)<<tbit
	amps := b.Slice()
	for i := range amps {
		u := uint(i)
		if u&c1mask == 0 || u&c2mask == 0 || u&tmask != 0 {
			continue
		}
		j := i | int(tmask)
		amps[i], amps[j] = amps[j], amps[i]
	}
}

// Fredkin (controlled-SWAP) uses the standard decomposition CNOT(b,a);
// Toffoli(ctrl,a,b); CNOT(b,a).
func Fredkin(b *state.Buffer, ctrl, a, t int) {
	CNOT(b, t, a)
	Toffoli(b, ctrl, a, t)
	CNOT(b, t, a)
}
