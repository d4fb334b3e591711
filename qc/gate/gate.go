package gate

import "strings"

// Gate is the *minimal* contract each quantum gate must fulfil.
// The interface is tiny on purpose so optimisers and simulators
// can depend on it without pulling in graphical or param APIs.
type Gate interface {
	Name() string       // canonical name e.g. "H", "CNOT"
	QubitSpan() int     // how many qubits it acts on
	DrawSymbol() string // single-char/fallback symbol used by renderers
	Targets() []int     // Relative indices of target qubits (within the span)
	Controls() []int    // Relative indices of control qubits (within the span)
}

// Parametrized is implemented by gates that carry a continuous rotation
// angle (Rx, Ry, Rz, controlled-phase). Unlike the fixed singleton gates,
// these are constructed per use since each use may carry a different
// angle; they remain immutable once built.
type Parametrized interface {
	Gate
	Theta() float64
}

// Factory returns an immutable gate by many common aliases. Parametrized
// gates are not resolvable through Factory since they require an angle;
// callers build those directly (gate.Rx(theta), etc.).
//
//	g, _ := gate.Factory("cx")  // -> same instance as CNOT()
func Factory(name string) (Gate, error) {
	switch norm(name) {
	case "h":
		return H(), nil
	case "x":
		return X(), nil
	case "y":
		return Y(), nil
	case "z":
		return Z(), nil
	case "s":
		return S(), nil
	case "swap":
		return Swap(), nil
	case "cx", "cnot":
		return CNOT(), nil
	case "cz":
		return CZ(), nil
	case "t", "toffoli", "ccx":
		return Toffoli(), nil
	case "fredkin", "cswap":
		return Fredkin(), nil
	case "m", "measure", "meas":
		return Measure(), nil
	}
	return nil, ErrUnknownGate{name}
}

// ErrUnknownGate is returned by Factory when the label isn't recognised.
type ErrUnknownGate struct{ Name string }

func (e ErrUnknownGate) Error() string { return "qcircuit: unknown gate " + e.Name }

// helpers --------------------------------------------------------------

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
