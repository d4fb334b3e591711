package mps

import (
	"testing"

	"github.com/WeaveITMeta/Quantum-Operating-System/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroStateToDense(t *testing.T) {
	c := Zero(2, DefaultConfig)
	b := c.ToDense()
	require.Equal(t, 4, b.Dim())
	assert.InDelta(t, 1.0, real(b.At(0)), 1e-10)
}

func TestBellStateViaMPS(t *testing.T) {
	c := Zero(2, DefaultConfig)
	require.NoError(t, c.ApplyGate(gate.H(), []int{0}))
	require.NoError(t, c.ApplyGate(gate.CNOT(), []int{0, 1}))

	b := c.ToDense()
	probs := b.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-8)
	assert.InDelta(t, 0.0, probs[1], 1e-8)
	assert.InDelta(t, 0.0, probs[2], 1e-8)
	assert.InDelta(t, 0.5, probs[3], 1e-8)
}

func TestHadamardChainMatchesProductState(t *testing.T) {
	c := Zero(3, DefaultConfig)
	for q := 0; q < 3; q++ {
		require.NoError(t, c.ApplyGate(gate.H(), []int{q}))
	}
	b := c.ToDense()
	for _, p := range b.Probabilities() {
		assert.InDelta(t, 1.0/8, p, 1e-8)
	}
}

func TestMaxBondDimCapRejectsEntanglingGate(t *testing.T) {
	cfg := Config{MaxBondDim: 1, TruncationThreshold: 1e-6}
	c := Zero(2, cfg)
	require.NoError(t, c.ApplyGate(gate.H(), []int{0}))
	err := c.ApplyGate(gate.CNOT(), []int{0, 1})
	// entangling CNOT after H needs bond dim 2; capped at 1 this must fail.
	assert.Error(t, err)
}
