package renderer

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/circuit"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/gate"
)

// GGPNG renders a circuit's wire diagram to a PNG using fogleman/gg.
type GGPNG struct{ Cell float64 }

// NewRenderer returns a renderer that emits lossless PNGs at the given
// cell size in pixels.
func NewRenderer(cellPx int) GGPNG { return GGPNG{Cell: float64(cellPx)} }

func (r GGPNG) Render(c circuit.Circuit) (image.Image, error) {
	steps := c.MaxStep() + 1
	if steps < 1 {
		steps = 1
	}
	w := int(float64(steps) * r.Cell)
	h := int(float64(c.Qubits()) * r.Cell)
	if h <= 0 {
		h = int(r.Cell)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for i := 0; i < c.Qubits(); i++ {
		y := r.y(i)
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	for _, op := range c.Operations() {
		if err := r.drawOp(dc, op); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

func (r GGPNG) drawOp(dc *gg.Context, op circuit.Operation) error {
	switch op.G.Name() {
	case "H", "X", "Y", "Z", "S":
		r.drawBoxGate(dc, op)
	case "CNOT":
		r.drawControlTarget(dc, op, 2)
	case "CZ":
		r.drawControlControl(dc, op)
	case "FREDKIN":
		r.drawFredkin(dc, op)
	case "SWAP":
		r.drawSwap(dc, op)
	case "TOFFOLI":
		r.drawToffoli(dc, op)
	case "MEASURE":
		r.drawMeasurement(dc, op)
	default:
		g, ok := op.G.(gate.Gate)
		if !ok || g.QubitSpan() != 1 {
			return fmt.Errorf("renderer: unsupported or unknown gate type %q", op.G.Name())
		}
		r.drawBoxGate(dc, op)
	}
	return nil
}

func (r GGPNG) Save(path string, c circuit.Circuit) error {
	img, err := r.Render(c)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (r GGPNG) x(step int) float64 { return float64(step)*r.Cell + r.Cell/2 }
func (r GGPNG) y(line int) float64 { return float64(line)*r.Cell + r.Cell/2 }

func (r GGPNG) drawBoxGate(dc *gg.Context, op circuit.Operation) {
	if op.Line < 0 {
		return
	}
	x, y := r.x(op.TimeStep), r.y(op.Line)
	size := r.Cell * .7
	dc.DrawRectangle(x-size/2, y-size/2, size, size)
	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.DrawStringAnchored(op.G.DrawSymbol(), x, y, 0.5, 0.5)
}

// drawControlTarget draws a control dot joined to a target-⊕ symbol, the
// CNOT/Toffoli target convention. wantQubits lets callers validate their
// own qubit-count invariant before calling in.
func (r GGPNG) drawControlTarget(dc *gg.Context, op circuit.Operation, wantQubits int) {
	if len(op.Qubits) != wantQubits {
		return
	}
	x := r.x(op.TimeStep)
	controlLine, targetLine := op.Qubits[0], op.Qubits[len(op.Qubits)-1]

	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, r.y(controlLine), r.Cell*0.12)
	dc.Fill()
	dc.DrawLine(x, r.y(controlLine), x, r.y(targetLine))
	dc.Stroke()
	r.drawTargetSymbol(dc, x, r.y(targetLine))
}

func (r GGPNG) drawTargetSymbol(dc *gg.Context, x, y float64) {
	dc.DrawCircle(x, y, r.Cell*0.18)
	dc.Stroke()
	dc.DrawLine(x-r.Cell*0.18, y, x+r.Cell*0.18, y)
	dc.Stroke()
	dc.DrawLine(x, y-r.Cell*0.18, x, y+r.Cell*0.18)
	dc.Stroke()
}

func (r GGPNG) drawToffoli(dc *gg.Context, op circuit.Operation) {
	if len(op.Qubits) != 3 {
		return
	}
	x := r.x(op.TimeStep)
	ctrl1, ctrl2, target := op.Qubits[0], op.Qubits[1], op.Qubits[2]

	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, r.y(ctrl1), r.Cell*0.12)
	dc.Fill()
	dc.DrawCircle(x, r.y(ctrl2), r.Cell*0.12)
	dc.Fill()
	r.drawVerticalSpan(dc, x, ctrl1, ctrl2, target)
	r.drawTargetSymbol(dc, x, r.y(target))
}

func (r GGPNG) drawMeasurement(dc *gg.Context, op circuit.Operation) {
	if op.Line < 0 {
		return
	}
	x, y := r.x(op.TimeStep), r.y(op.Line)
	rad := r.Cell * 0.25
	dc.SetRGB(0, 0, 0)
	dc.NewSubPath()
	dc.DrawArc(x, y, rad, math.Pi, 2*math.Pi)
	dc.ClosePath()
	dc.Stroke()
	dc.MoveTo(x, y)
	dc.LineTo(x+rad*0.8, y-rad*0.8)
	dc.Stroke()
	dc.DrawStringAnchored("M", x+rad*1.6, y-rad*0.4, 0.0, 0.5)
}

func (r GGPNG) drawControlControl(dc *gg.Context, op circuit.Operation) {
	if len(op.Qubits) != 2 {
		return
	}
	x := r.x(op.TimeStep)
	yCtrl, yTgt := r.y(op.Qubits[0]), r.y(op.Qubits[1])

	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, yCtrl, r.Cell*0.12)
	dc.Fill()
	dc.DrawCircle(x, yTgt, r.Cell*0.12)
	dc.Fill()
	dc.DrawLine(x, yCtrl, x, yTgt)
	dc.Stroke()
}

func (r GGPNG) drawSwap(dc *gg.Context, op circuit.Operation) {
	if len(op.Qubits) != 2 {
		return
	}
	x := r.x(op.TimeStep)
	y1, y2 := r.y(op.Qubits[0]), r.y(op.Qubits[1])

	dc.SetRGB(0, 0, 0)
	r.drawSwapCross(dc, x, y1)
	r.drawSwapCross(dc, x, y2)
	dc.SetLineWidth(1)
	dc.DrawLine(x, y1, x, y2)
	dc.Stroke()
}

func (r GGPNG) drawSwapCross(dc *gg.Context, x, y float64) {
	d := r.Cell * 0.18
	dc.DrawLine(x-d, y-d, x+d, y+d)
	dc.Stroke()
	dc.DrawLine(x-d, y+d, x+d, y-d)
	dc.Stroke()
}

func (r GGPNG) drawFredkin(dc *gg.Context, op circuit.Operation) {
	if len(op.Qubits) != 3 {
		return
	}
	x := r.x(op.TimeStep)
	control, target1, target2 := op.Qubits[0], op.Qubits[1], op.Qubits[2]

	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(x, r.y(control), r.Cell*0.12)
	dc.Fill()
	r.drawVerticalSpan(dc, x, control, target1, target2)
	r.drawSwapCross(dc, x, r.y(target1))
	r.drawSwapCross(dc, x, r.y(target2))
}

// drawVerticalSpan draws the connecting wire between the min and max of a
// set of qubit lines, used by the multi-qubit gate symbols above.
func (r GGPNG) drawVerticalSpan(dc *gg.Context, x float64, lines ...int) {
	lo, hi := lines[0], lines[0]
	for _, l := range lines[1:] {
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	dc.DrawLine(x, r.y(lo), x, r.y(hi))
	dc.Stroke()
}
