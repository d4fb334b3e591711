package kernel

import "github.com/WeaveITMeta/Quantum-Operating-System/qc/state"

// Sparse stores only amplitudes whose squared magnitude exceeds
// sparsityThreshold, for circuits whose final state stays close to a small
// support set (e.g. deep Clifford circuits). It is a read/convert-only
// auxiliary view, not a mutation target: gate kernels run against a dense
// state.Buffer and the sparse form is derived afterward for compact
// transmission or inspection.
type Sparse struct {
	Qubits    int
	Threshold float64
	Amps      map[int]complex128
}

// FromDense extracts the amplitudes above threshold from a dense buffer.
func FromDense(b *state.Buffer, threshold float64) *Sparse {
	s := &Sparse{Qubits: b.Qubits(), Threshold: threshold, Amps: make(map[int]complex128)}
	amps := b.SliceRO()
	for i, a := range amps {
		mag2 := real(a)*real(a) + imag(a)*imag(a)
		if mag2 > threshold {
			s.Amps[i] = a
		}
	}
	return s
}

// ToDense rebuilds a dense buffer from the sparse representation, leaving
// every index not present in Amps at zero.
func (s *Sparse) ToDense() *state.Buffer {
	amps := make([]complex128, 1<<uint(s.Qubits))
	for i, a := range s.Amps {
		amps[i] = a
	}
	return state.FromAmplitudes(amps)
}

// Len reports the number of amplitudes retained above the threshold.
func (s *Sparse) Len() int { return len(s.Amps) }
