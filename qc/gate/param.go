package gate

// 1-qubit rotation gate carrying a continuous angle: Rx, Ry, Rz.
type rot1 struct {
	name  string
	theta float64
}

func (g rot1) Name() string       { return g.name }
func (g rot1) QubitSpan() int     { return 1 }
func (g rot1) DrawSymbol() string { return g.name }
func (g rot1) Targets() []int     { return []int{0} }
func (g rot1) Controls() []int    { return []int{} }
func (g rot1) Theta() float64     { return g.theta }

// Rx returns an Rx(theta) gate: cos(theta/2) on the diagonal, -i*sin(theta/2)
// off-diagonal.
func Rx(theta float64) Parametrized { return rot1{"RX", theta} }

// Ry returns an Ry(theta) gate: a real 2x2 rotation by theta/2.
func Ry(theta float64) Parametrized { return rot1{"RY", theta} }

// Rz returns an Rz(theta) gate: multiplies by e^(-i*theta/2) where bit-q=0,
// e^(+i*theta/2) where bit-q=1.
func Rz(theta float64) Parametrized { return rot1{"RZ", theta} }

// 2-qubit controlled-phase gate: multiplies by e^(i*theta) iff both the
// control and target bits are 1.
type cphase struct {
	theta             float64
	targets, controls []int
}

func (g cphase) Name() string       { return "CPHASE" }
func (g cphase) QubitSpan() int     { return 2 }
func (g cphase) DrawSymbol() string { return "P" }
func (g cphase) Targets() []int     { return g.targets }
func (g cphase) Controls() []int    { return g.controls }
func (g cphase) Theta() float64     { return g.theta }

// CPhase returns a controlled-phase(theta) gate with control at relative
// index 0 and target at relative index 1, matching the CNOT/CZ convention.
func CPhase(theta float64) Parametrized {
	return cphase{theta: theta, targets: []int{1}, controls: []int{0}}
}
