package gate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedGateVocabulary(t *testing.T) {
	tests := []struct {
		name       string
		gate       Gate
		wantName   string
		wantSpan   int
		wantSymbol string
		wantTgts   []int
		wantCtrls  []int
	}{
		{"Hadamard", H(), "H", 1, "H", []int{0}, []int{}},
		{"PauliX", X(), "X", 1, "X", []int{0}, []int{}},
		{"PauliY", Y(), "Y", 1, "Y", []int{0}, []int{}},
		{"PauliZ", Z(), "Z", 1, "Z", []int{0}, []int{}},
		{"PhaseS", S(), "S", 1, "S", []int{0}, []int{}},
		{"Measure", Measure(), "MEASURE", 1, "M", []int{0}, []int{}},
		{"SWAP", Swap(), "SWAP", 2, "×", []int{0, 1}, []int{}},
		{"CNOT", CNOT(), "CNOT", 2, "⊕", []int{1}, []int{0}},
		{"CZ", CZ(), "CZ", 2, "●", []int{1}, []int{0}},
		{"Toffoli", Toffoli(), "TOFFOLI", 3, "T", []int{2}, []int{0, 1}},
		{"Fredkin", Fredkin(), "FREDKIN", 3, "F", []int{1, 2}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.gate.Name())
			assert.Equal(t, tt.wantSpan, tt.gate.QubitSpan())
			assert.Equal(t, tt.wantSymbol, tt.gate.DrawSymbol())
			assert.Equal(t, tt.wantTgts, tt.gate.Targets())
			assert.Equal(t, tt.wantCtrls, tt.gate.Controls())
		})
	}
}

func TestFixedGatesAreSingletons(t *testing.T) {
	assert.Same(t, H(), H())
	assert.Same(t, CNOT(), CNOT())
	assert.Same(t, Toffoli(), Toffoli())
}

func TestParametrizedGatesCarryTheta(t *testing.T) {
	tests := []struct {
		name     string
		gate     Parametrized
		wantName string
		wantSpan int
	}{
		{"Rx", Rx(0.25), "RX", 1},
		{"Ry", Ry(0.5), "RY", 1},
		{"Rz", Rz(0.75), "RZ", 1},
		{"CPhase", CPhase(math.Pi / 3), "CPHASE", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.gate.Name())
			assert.Equal(t, tt.wantSpan, tt.gate.QubitSpan())
		})
	}

	assert.InDelta(t, 0.25, Rx(0.25).Theta(), 1e-15)
	assert.InDelta(t, math.Pi/3, CPhase(math.Pi/3).Theta(), 1e-15)
}

func TestCPhaseConvention(t *testing.T) {
	// control at relative index 0, target at 1, same as CNOT/CZ
	g := CPhase(0.1)
	assert.Equal(t, []int{0}, g.Controls())
	assert.Equal(t, []int{1}, g.Targets())
}

func TestFactoryResolvesAliases(t *testing.T) {
	cases := []struct {
		alias string
		want  Gate
	}{
		{"h", H()},
		{" H ", H()}, // trimmed and case-folded
		{"x", X()},
		{"y", Y()},
		{"z", Z()},
		{"s", S()},
		{"swap", Swap()},
		{"SWAP", Swap()},
		{"cx", CNOT()},
		{"cnot", CNOT()},
		{"cz", CZ()},
		{"t", Toffoli()},
		{"toffoli", Toffoli()},
		{"ccx", Toffoli()},
		{"fredkin", Fredkin()},
		{"cswap", Fredkin()},
		{"m", Measure()},
		{"measure", Measure()},
		{"meas", Measure()},
	}
	for _, tc := range cases {
		t.Run("alias_"+tc.alias, func(t *testing.T) {
			g, err := Factory(tc.alias)
			require.NoError(t, err)
			assert.Same(t, tc.want, g)
		})
	}
}

func TestFactoryRejectsUnknownGate(t *testing.T) {
	g, err := Factory("sycamore")
	assert.Nil(t, g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownGate{"sycamore"})
	assert.Contains(t, err.Error(), "sycamore")
}
