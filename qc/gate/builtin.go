package gate

// fixed is an immutable gate whose unitary action carries no parameters.
// Every fixed gate is a package-level singleton, so optimizer passes can
// compare gates by pointer instead of by name.
type fixed struct {
	name     string
	symbol   string
	span     int
	targets  []int
	controls []int
}

func (g *fixed) Name() string       { return g.name }
func (g *fixed) QubitSpan() int     { return g.span }
func (g *fixed) DrawSymbol() string { return g.symbol }
func (g *fixed) Targets() []int     { return g.targets }
func (g *fixed) Controls() []int    { return g.controls }

// meas is the measurement pseudo-gate: one qubit in, one classical bit
// out. It is applied by the execution engine (sample/collapse), never by
// a unitary kernel.
type meas struct{}

func (meas) Name() string       { return "MEASURE" }
func (meas) QubitSpan() int     { return 1 }
func (meas) DrawSymbol() string { return "M" }
func (meas) Targets() []int     { return []int{0} }
func (meas) Controls() []int    { return []int{} }

func single(name, symbol string) *fixed {
	return &fixed{name: name, symbol: symbol, span: 1, targets: []int{0}, controls: []int{}}
}

var (
	hGate = single("H", "H")
	xGate = single("X", "X")
	yGate = single("Y", "Y")
	zGate = single("Z", "Z")
	sGate = single("S", "S")

	// two-qubit: relative index 0 is the control for CNOT/CZ
	swapG  = &fixed{name: "SWAP", symbol: "×", span: 2, targets: []int{0, 1}, controls: []int{}}
	cnotG  = &fixed{name: "CNOT", symbol: "⊕", span: 2, targets: []int{1}, controls: []int{0}}
	czGate = &fixed{name: "CZ", symbol: "●", span: 2, targets: []int{1}, controls: []int{0}}

	// three-qubit
	toffG = &fixed{name: "TOFFOLI", symbol: "T", span: 3, targets: []int{2}, controls: []int{0, 1}}
	fredG = &fixed{name: "FREDKIN", symbol: "F", span: 3, targets: []int{1, 2}, controls: []int{0}}

	measG = &meas{}
)

// Accessors return the shared immutable singleton for each fixed gate.
func H() Gate       { return hGate }
func X() Gate       { return xGate }
func Y() Gate       { return yGate }
func Z() Gate       { return zGate }
func S() Gate       { return sGate }
func Swap() Gate    { return swapG }
func CNOT() Gate    { return cnotG }
func CZ() Gate      { return czGate }
func Toffoli() Gate { return toffG }
func Fredkin() Gate { return fredG }
func Measure() Gate { return measG }
