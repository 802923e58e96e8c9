package zx

import "slices"

// vertex is a gate placed on the wire graph. prev and next are aligned with
// gate.Qubits: prev[i] is the previous gate on wire gate.Qubits[i].
type vertex struct {
	id      int
	gate    Gate
	prev    []*vertex
	next    []*vertex
	removed bool
}

// wire returns the operand position of qubit q, or -1.
func (v *vertex) wire(q int) int {
	return slices.Index(v.gate.Qubits, q)
}

// Graph is the wire-graph form of a circuit: every gate is linked to its
// neighbours on each qubit it touches.
type Graph struct {
	qubits   int
	vertices []*vertex
	inputs   []*vertex // first gate on each wire
	outputs  []*vertex // last gate on each wire
}

// ToGraph converts a circuit to its wire graph.
func ToGraph(c *Circuit) *Graph {
	g := &Graph{
		qubits:  c.qubits,
		inputs:  make([]*vertex, c.qubits),
		outputs: make([]*vertex, c.qubits),
	}
	for i, gate := range c.gates {
		v := &vertex{
			id:   i,
			gate: gate.Clone(),
			prev: make([]*vertex, len(gate.Qubits)),
			next: make([]*vertex, len(gate.Qubits)),
		}
		for w, q := range gate.Qubits {
			last := g.outputs[q]
			if last == nil {
				g.inputs[q] = v
			} else {
				last.next[last.wire(q)] = v
				v.prev[w] = last
			}
			g.outputs[q] = v
		}
		g.vertices = append(g.vertices, v)
	}
	return g
}

// remove unlinks v, joining its neighbours on every wire.
func (g *Graph) remove(v *vertex) {
	for w, q := range v.gate.Qubits {
		p, n := v.prev[w], v.next[w]
		if p != nil {
			p.next[p.wire(q)] = n
		} else {
			g.inputs[q] = n
		}
		if n != nil {
			n.prev[n.wire(q)] = p
		} else {
			g.outputs[q] = p
		}
	}
	v.removed = true
}

// successor returns the gate following v on all of v's wires, or nil when
// the wires diverge.
func (v *vertex) successor() *vertex {
	n := v.next[0]
	if n == nil {
		return nil
	}
	for w, q := range v.gate.Qubits {
		if v.next[w] != n || n.prev[n.wire(q)] != v {
			return nil
		}
	}
	if len(n.gate.Qubits) != len(v.gate.Qubits) {
		return nil
	}
	return n
}

// Extract emits the live gates as a circuit. Rewrites only ever delete gates
// or merge a gate into its direct wire predecessor, so the original gate order
// restricted to the survivors is a valid causal order.
func Extract(g *Graph) (*Circuit, error) {
	c := NewCircuit(g.qubits)
	for _, v := range g.vertices {
		if v.removed {
			continue
		}
		if err := c.AddGate(v.gate); err != nil {
			return nil, err
		}
	}
	return c, nil
}
