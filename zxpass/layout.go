package zxpass

import "zxdeck/dag"

// Layout enumerates a DAG's qubits as flat 0-based indices, in declaration
// order. The same layout must be used in both translation directions.
type Layout struct {
	qubits []*dag.Qubit
	index  map[*dag.Qubit]int
}

func NewLayout(d *dag.DAGCircuit) *Layout {
	qubits := d.Qubits()
	index := make(map[*dag.Qubit]int, len(qubits))
	for i, q := range qubits {
		index[q] = i
	}
	return &Layout{qubits: qubits, index: index}
}

// Size returns the number of qubits.
func (l *Layout) Size() int { return len(l.qubits) }

// Index returns the flat index of q.
func (l *Layout) Index(q *dag.Qubit) (int, bool) {
	i, ok := l.index[q]
	return i, ok
}

// Qubit returns the wire at flat index i.
func (l *Layout) Qubit(i int) (*dag.Qubit, bool) {
	if i < 0 || i >= len(l.qubits) {
		return nil, false
	}
	return l.qubits[i], true
}
