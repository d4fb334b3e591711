// Package state owns the dense amplitude array that the gate kernels
// mutate in place: a contiguous vector of 2^n complex128 values plus the
// qubit count n. Qubit q maps to bit position n-1-q of the basis index
// (most-significant bit = qubit 0), per the indexing convention every
// other package in this module assumes.
package state

import (
	"math"
	"math/bits"

	"github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"
)

// Buffer is the owning worker's exclusive amplitude array. It is never
// shared across goroutines while a circuit is executing against it.
type Buffer struct {
	amps   []complex128
	qubits int
}

// Zero constructs the |0...0> state for n qubits.
func Zero(n int) *Buffer {
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &Buffer{amps: amps, qubits: n}
}

// One constructs the |1...1> state for n qubits.
func One(n int) *Buffer {
	amps := make([]complex128, 1<<uint(n))
	amps[len(amps)-1] = 1
	return &Buffer{amps: amps, qubits: n}
}

// FromAmplitudes builds a buffer directly from a caller-supplied amplitude
// vector. The length must be a power of two; this is a programmer error
// (fatal), not an input error, since it can only come from a hand-built
// test fixture or a backend-conversion bug.
func FromAmplitudes(amps []complex128) *Buffer {
	n := len(amps)
	if n == 0 || n&(n-1) != 0 {
		panic("state: FromAmplitudes requires a power-of-two length")
	}
	cp := make([]complex128, n)
	copy(cp, amps)
	return &Buffer{amps: cp, qubits: bits.TrailingZeros(uint(n))}
}

// Qubits returns the qubit count n.
func (b *Buffer) Qubits() int { return b.qubits }

// Dim returns 2^n, the amplitude vector's length.
func (b *Buffer) Dim() int { return len(b.amps) }

// At returns the amplitude at basis index i.
func (b *Buffer) At(i int) complex128 { return b.amps[i] }

// Set writes the amplitude at basis index i in place.
func (b *Buffer) Set(i int, v complex128) { b.amps[i] = v }

// Swap exchanges the amplitudes at indices i and j in place.
func (b *Buffer) Swap(i, j int) { b.amps[i], b.amps[j] = b.amps[j], b.amps[i] }

// Slice borrows the backing amplitude array for kernels that need direct
// iteration; the exclusive variant is intended for the one worker driving
// gate application, the read-only variant for sampling/inspection code.
func (b *Buffer) Slice() []complex128   { return b.amps }
func (b *Buffer) SliceRO() []complex128 { return b.amps }

// Normalize rescales amplitudes so the squared-magnitude sum is 1,
// provided that sum currently exceeds 1e-15 (an all-but-zero state is left
// untouched rather than dividing by ~0).
func (b *Buffer) Normalize() {
	var sum float64
	for _, a := range b.amps {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	if sum <= 1e-15 {
		return
	}
	norm := complex(1/math.Sqrt(sum), 0)
	for i := range b.amps {
		b.amps[i] *= norm
	}
}

// Inner computes <b|other>, the Hermitian inner product. Dimension
// mismatch is a fatal programmer error: two buffers for the same circuit
// always share a dimension, so a mismatch means a backend/conversion bug.
func (b *Buffer) Inner(other *Buffer) complex128 {
	if len(b.amps) != len(other.amps) {
		panic("state: Inner dimension mismatch")
	}
	var sum complex128
	for i, a := range b.amps {
		sum += cmplxConj(a) * other.amps[i]
	}
	return sum
}

func cmplxConj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// Probabilities returns the squared-magnitude distribution over basis
// states.
func (b *Buffer) Probabilities() []float64 {
	p := make([]float64, len(b.amps))
	for i, a := range b.amps {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}

// ExpectationZ computes <Z_q>: +prob for basis states with bit-q = 0,
// -prob for bit-q = 1.
func (b *Buffer) ExpectationZ(q int) float64 {
	bit := uint(b.qubits - 1 - q)
	var exp float64
	for i, a := range b.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if (uint(i)>>bit)&1 == 0 {
			exp += p
		} else {
			exp -= p
		}
	}
	return exp
}

// ExpectationZProduct computes the expectation of a product of Z operators
// over the given qubits: +prob for basis states with an even number of
// those qubits set, -prob for an odd number. An empty qubit list is the
// identity operator and always evaluates to 1.
func (b *Buffer) ExpectationZProduct(qubits []int) float64 {
	if len(qubits) == 0 {
		return 1
	}
	bits := make([]uint, len(qubits))
	for i, q := range qubits {
		bits[i] = uint(b.qubits - 1 - q)
	}
	var exp float64
	for i, a := range b.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		parity := 0
		for _, bit := range bits {
			parity ^= int((uint(i) >> bit) & 1)
		}
		if parity == 0 {
			exp += p
		} else {
			exp -= p
		}
	}
	return exp
}

// Sample performs deterministic cumulative-selection measurement against a
// caller-supplied uniform draw u in [0,1): it walks the probability
// distribution and returns the first basis index whose cumulative mass
// exceeds u. The state is not collapsed — callers that need repeated
// sampling from the same final state (shot-based simulation) call this
// once per shot against the unmodified buffer.
func (b *Buffer) Sample(u float64) int {
	var cum float64
	last := len(b.amps) - 1
	for i, a := range b.amps {
		cum += real(a)*real(a) + imag(a)*imag(a)
		if u < cum || i == last {
			return i
		}
	}
	return last
}

// Bitstring renders basis index i as an n-character string, most
// significant bit (qubit 0) first, matching the wire convention.
func Bitstring(i, n int) string {
	buf := make([]byte, n)
	for q := 0; q < n; q++ {
		bit := uint(n - 1 - q)
		if (uint(i)>>bit)&1 == 1 {
			buf[q] = '1'
		} else {
			buf[q] = '0'
		}
	}
	return string(buf)
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	cp := make([]complex128, len(b.amps))
	copy(cp, b.amps)
	return &Buffer{amps: cp, qubits: b.qubits}
}

// RequireDim panics (programmer error) if the buffer's dimension does not
// match 2^n for the given qubit count; used by callers that accept a
// buffer produced elsewhere (e.g. MPS-to-dense conversion).
func RequireDim(b *Buffer, n int) {
	if b.Dim() != 1<<uint(n) {
		panic(errs.Backend(errs.CodeStateVectorFailed, "state buffer dimension mismatch").Error())
	}
}
