package main

import (
	"slices"
	"strings"

	"zxdeck/dag"
	"zxdeck/zxpass"
)

// role is what a gate draws on one of its wires.
type role int

const (
	roleBox     role = iota // boxed gate name
	roleControl             // ●
	roleXor                 // ⊕
	roleSwap                // ×
)

// controlledNames are catalog gates drawn as one control and a boxed target.
var controlledNames = map[string]string{
	"cy": "Y", "ch": "H", "csx": "√X",
	"crx": "RX", "cry": "RY", "crz": "RZ",
	"cp": "P", "cphase": "P", "cu1": "U1", "cu3": "U3", "cu": "U",
}

// Gate is one DAG operation placed on the display grid.
type Gate struct {
	Node    *dag.OpNode
	Qubits  []int // flat operand indices
	Clbits  []int
	Roles   []role // aligned with Qubits
	Label   string
	Step    int
	Segment int  // index of the enclosing segment, -1 if unknown
	InRun   bool // part of an optimized Run
}

func (g *Gate) span() (lo, hi int) {
	lo, hi = slices.Min(g.Qubits), slices.Max(g.Qubits)
	return
}

func (g *Gate) isMeasure() bool { return g.Node.Op.Name == "measure" }
func (g *Gate) isBarrier() bool { return g.Node.Op.Name == "barrier" }

func (g *Gate) roleOn(qubit int) (role, bool) {
	i := slices.Index(g.Qubits, qubit)
	if i < 0 {
		return 0, false
	}
	return g.Roles[i], true
}

type cellKey struct{ step, qubit int }

// Circuit is the grid view of a DAG: operations packed into steps as early
// as their wires allow.
type Circuit struct {
	NumQubits int
	NumCbits  int
	Gates     []Gate
	MaxSteps  int

	cells map[cellKey]int // gate index occupying the cell
}

// NewCircuit lays out d. Operations are coloured by the segment the pass
// would place them in; if segmentation fails every gate is left unsegmented.
func NewCircuit(d *dag.DAGCircuit) *Circuit {
	c := &Circuit{cells: make(map[cellKey]int)}
	if d == nil {
		return c
	}
	c.NumQubits, c.NumCbits = d.NumQubits(), d.NumClbits()

	qindex := make(map[*dag.Qubit]int, d.NumQubits())
	for i, q := range d.Qubits() {
		qindex[q] = i
	}
	cindex := make(map[*dag.Clbit]int, d.NumClbits())
	for i, b := range d.Clbits() {
		cindex[b] = i
	}
	segOf, runOf := segmentIndex(d)

	qfree := make([]int, c.NumQubits)
	cfree := make([]int, c.NumCbits)
	for _, node := range d.TopologicalOpNodes() {
		g := Gate{
			Node:    node,
			Label:   gateDisplayName(node.Op.Name),
			Segment: -1,
		}
		for _, q := range node.Qargs {
			g.Qubits = append(g.Qubits, qindex[q])
		}
		for _, b := range node.Cargs {
			g.Clbits = append(g.Clbits, cindex[b])
		}
		if s, ok := segOf[node.ID]; ok {
			g.Segment = s
			g.InRun = runOf[node.ID]
		}
		if len(g.Qubits) == 0 {
			continue
		}
		g.Roles, g.Label = gateRoles(node.Op.Name, len(g.Qubits), g.Label)

		// Every qubit the gate's drawing crosses is blocked for the step.
		lo, hi := g.span()
		if g.isMeasure() {
			hi = c.NumQubits - 1
		}
		step := 0
		for q := lo; q <= hi; q++ {
			step = max(step, qfree[q])
		}
		clbits := append(slices.Clone(g.Clbits), conditionClbits(node, cindex)...)
		for _, b := range clbits {
			step = max(step, cfree[b])
		}
		g.Step = step
		for q := lo; q <= hi; q++ {
			qfree[q] = step + 1
		}
		for _, b := range clbits {
			cfree[b] = step + 1
		}

		idx := len(c.Gates)
		c.Gates = append(c.Gates, g)
		for q := lo; q <= hi; q++ {
			c.cells[cellKey{step, q}] = idx
		}
		c.MaxSteps = max(c.MaxSteps, step+1)
	}
	return c
}

func conditionClbits(node *dag.OpNode, cindex map[*dag.Clbit]int) []int {
	if node.Op.Condition == nil {
		return nil
	}
	var out []int
	for _, b := range node.Op.Condition.Clbits() {
		out = append(out, cindex[b])
	}
	return out
}

// segmentIndex maps node IDs to their segment index and whether that
// segment is a Run.
func segmentIndex(d *dag.DAGCircuit) (map[int]int, map[int]bool) {
	segOf := make(map[int]int)
	runOf := make(map[int]bool)
	segments, err := zxpass.SegmentDAG(d, zxpass.NewLayout(d))
	if err != nil {
		return segOf, runOf
	}
	for i, s := range segments {
		switch s := s.(type) {
		case *zxpass.Run:
			for _, n := range s.Nodes {
				segOf[n.ID] = i
				runOf[n.ID] = true
			}
		case *zxpass.Passthrough:
			segOf[s.Node.ID] = i
		}
	}
	return segOf, runOf
}

// gateRoles decides how each operand is drawn and the label of the boxed
// part.
func gateRoles(name string, n int, label string) ([]role, string) {
	roles := make([]role, n)
	switch name {
	case "cx", "ccx":
		for i := range n - 1 {
			roles[i] = roleControl
		}
		roles[n-1] = roleXor
	case "cz", "ccz":
		for i := range roles {
			roles[i] = roleControl
		}
	case "swap":
		for i := range roles {
			roles[i] = roleSwap
		}
	case "cswap":
		roles[0] = roleControl
		for i := 1; i < n; i++ {
			roles[i] = roleSwap
		}
	default:
		if base, ok := controlledNames[name]; ok && n == 2 {
			roles[0] = roleControl
			return roles, base
		}
	}
	return roles, label
}

// GetGateAt returns the gate drawn at (step, qubit), if any.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	idx, ok := c.cells[cellKey{step, qubit}]
	if !ok {
		return nil
	}
	return &c.Gates[idx]
}

// GetMeasureAtStep returns the classical bit written by a measurement at
// step, or -1.
func (c *Circuit) GetMeasureAtStep(step int) int {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.isMeasure() && len(g.Clbits) > 0 {
			return g.Clbits[0]
		}
	}
	return -1
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate         *Gate
	role         role
	operand      bool // qubit is one of the gate's operands
	vertAbove    bool
	vertBelow    bool
	passThrough  bool
	measureBelow bool
	isBarrier    bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo
	g := c.GetGateAt(step, qubit)
	if g == nil {
		return info
	}
	info.gate = g
	if g.isBarrier() {
		info.isBarrier = slices.Contains(g.Qubits, qubit)
		return info
	}

	r, ok := g.roleOn(qubit)
	info.role, info.operand = r, ok
	lo, hi := g.span()
	if len(g.Qubits) > 1 {
		info.vertAbove = qubit > lo && qubit <= hi
		info.vertBelow = qubit >= lo && qubit < hi
		info.passThrough = !ok && qubit > lo && qubit < hi
	}
	if g.isMeasure() && qubit > g.Qubits[0] {
		info.measureBelow = true
	}
	return info
}

// gateDisplayName returns a short display name for an operation.
func gateDisplayName(name string) string {
	switch name {
	case "measure":
		return "M"
	case "reset":
		return "|0⟩"
	case "sdg":
		return "S†"
	case "tdg":
		return "T†"
	case "sx":
		return "√X"
	case "sxdg":
		return "√X†"
	case "id":
		return "I"
	default:
		return strings.ToUpper(name)
	}
}
