package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroState(t *testing.T) {
	b := Zero(2)
	require.Equal(t, 4, b.Dim())
	assert.Equal(t, complex(1, 0), b.At(0))
	for i := 1; i < 4; i++ {
		assert.Equal(t, complex(0, 0), b.At(i))
	}
}

func TestFromAmplitudesRejectsNonPowerOfTwo(t *testing.T) {
	assert.Panics(t, func() {
		FromAmplitudes([]complex128{1, 0, 0})
	})
}

func TestNormalizePreservesNormalizedState(t *testing.T) {
	b := FromAmplitudes([]complex128{complex(1 / math.Sqrt2, 0), complex(1 / math.Sqrt2, 0)})
	b.Normalize()
	var sum float64
	for _, p := range b.Probabilities() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-10)
}

func TestExpectationZOnZeroState(t *testing.T) {
	b := Zero(1)
	assert.InDelta(t, 1.0, b.ExpectationZ(0), 1e-12)
}

func TestExpectationZOnOneState(t *testing.T) {
	b := One(1)
	assert.InDelta(t, -1.0, b.ExpectationZ(0), 1e-12)
}

func TestBitstringConvention(t *testing.T) {
	// basis index 1 on 2 qubits is binary 01 -> qubit0=0, qubit1=1
	assert.Equal(t, "01", Bitstring(1, 2))
	assert.Equal(t, "10", Bitstring(2, 2))
}

func TestSampleCumulativeSelection(t *testing.T) {
	b := FromAmplitudes([]complex128{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)})
	assert.Equal(t, 0, b.Sample(0.0))
	assert.Equal(t, 1, b.Sample(0.999))
}

func TestInnerProductDimensionMismatchPanics(t *testing.T) {
	a := Zero(1)
	b := Zero(2)
	assert.Panics(t, func() { a.Inner(b) })
}

func TestExpectationZProductIdentityIsOne(t *testing.T) {
	b := Zero(2)
	assert.InDelta(t, 1.0, b.ExpectationZProduct(nil), 1e-12)
}

func TestExpectationZProductOnBellState(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	b := FromAmplitudes([]complex128{inv, 0, 0, inv}) // (|00>+|11>)/sqrt2
	assert.InDelta(t, 1.0, b.ExpectationZProduct([]int{0, 1}), 1e-10)
	assert.InDelta(t, 0.0, b.ExpectationZProduct([]int{0}), 1e-10)
}

func TestInnerProductOfIdenticalStateIsOne(t *testing.T) {
	b := Zero(2)
	got := b.Inner(b)
	assert.InDelta(t, 1.0, real(got), 1e-12)
	assert.InDelta(t, 0.0, imag(got), 1e-12)
}
