// Package circuit is the immutable, layout-annotated view of a validated
// gate DAG: operations in topological order, each stamped with the
// timestep column and primary wire line the renderer and engine iterate
// by.
package circuit

import (
	"sort"

	"github.com/WeaveITMeta/Quantum-Operating-System/qc/dag"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/gate"
)

// Operation is one gate application with absolute operands and layout
// info.
type Operation struct {
	G        gate.Gate
	Qubits   []int     // absolute qubit indices
	Cbit     int       // absolute classical bit index, -1 if none
	Params   []float64 // continuous gate parameters, nil for fixed gates
	TimeStep int       // layout column
	Line     int       // layout primary line (minimum qubit index)
}

type Circuit interface {
	Qubits() int
	Clbits() int
	Operations() []Operation // topological order with layout info
	Depth() int              // MaxStep() + 1
	MaxStep() int
}

type circuit struct {
	d   dag.DAGReader
	ops []Operation
}

// FromDAG freezes a validated DAG into a Circuit. Each node's timestep is
// one past the deepest of its parents; nodes sharing a timestep are
// ordered by their lowest qubit line so rendering is deterministic.
func FromDAG(d dag.DAGReader) Circuit {
	nodes := d.Operations()
	ops := make([]Operation, len(nodes))
	step := make(map[dag.NodeID]int, len(nodes))

	for i, n := range nodes {
		ts := 0
		for _, pID := range n.Parents() {
			if s, ok := step[pID]; ok && s+1 > ts {
				ts = s + 1
			}
		}
		step[n.ID] = ts

		line := -1
		for _, q := range n.Qubits {
			if line < 0 || q < line {
				line = q
			}
		}

		var params []float64
		if len(n.Params) > 0 {
			params = append([]float64(nil), n.Params...)
		}
		ops[i] = Operation{
			G:        n.G,
			Qubits:   append([]int(nil), n.Qubits...),
			Cbit:     n.Cbit,
			Params:   params,
			TimeStep: ts,
			Line:     line,
		}
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].TimeStep != ops[j].TimeStep {
			return ops[i].TimeStep < ops[j].TimeStep
		}
		return ops[i].Line < ops[j].Line
	})

	return &circuit{d: d, ops: ops}
}

func (c *circuit) Qubits() int { return c.d.Qubits() }
func (c *circuit) Clbits() int { return c.d.Clbits() }

func (c *circuit) Depth() int { return c.MaxStep() + 1 }

// MaxStep returns the highest timestep index in use, or -1 for a circuit
// with no operations (so Depth reports 0).
func (c *circuit) MaxStep() int {
	max := -1
	for _, o := range c.ops {
		if o.TimeStep > max {
			max = o.TimeStep
		}
	}
	return max
}

// Operations returns the cached, layout-sorted operation list.
func (c *circuit) Operations() []Operation {
	return c.ops
}
