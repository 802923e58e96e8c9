package dag

import (
	"slices"

	"github.com/pkg/errors"
)

var (
	ErrUnknownWire   = errors.New("wire not declared in circuit")
	ErrDuplicateWire = errors.New("wire used twice by one operation")
	ErrDuplicateBit  = errors.New("wire already declared in circuit")
)

// Operation is the kind-level description of a node: what it does, not where.
type Operation struct {
	Name      string     // Lower-case operation name: "h", "cx", "measure", ...
	Params    []float64  // Numeric parameters in radians
	Condition *Condition // Classical control (nil if none)
}

// Conditioned reports whether the operation carries a classical condition.
func (op Operation) Conditioned() bool {
	return op.Condition != nil
}

// OpNode represents an operation in the circuit as a node in a DAG.
// Dependencies represent ordering constraints - an operation cannot execute
// before the operations that touched the same wires earlier.
type OpNode struct {
	ID           int       // Unique, increasing in insertion order
	Op           Operation // The operation applied
	Qargs        []*Qubit  // Ordered qubit operands
	Cargs        []*Clbit  // Ordered classical operands
	Dependencies []int     // IDs of nodes that must execute before this one
}

// DAGCircuit represents a quantum circuit as a Directed Acyclic Graph over
// qubit and classical-bit wires.
type DAGCircuit struct {
	qregs  []*QuantumRegister
	cregs  []*ClassicalRegister
	qubits []*Qubit
	clbits []*Clbit

	qubitSet map[*Qubit]struct{}
	clbitSet map[*Clbit]struct{}

	nodes []*OpNode

	// Last node touching each wire, for dependency tracking
	lastOnQubit map[*Qubit]int
	lastOnClbit map[*Clbit]int
}

// New creates a new empty DAGCircuit.
func New() *DAGCircuit {
	return &DAGCircuit{
		qubitSet:    make(map[*Qubit]struct{}),
		clbitSet:    make(map[*Clbit]struct{}),
		lastOnQubit: make(map[*Qubit]int),
		lastOnClbit: make(map[*Clbit]int),
	}
}

// AddQReg declares a quantum register and all of its qubits.
func (d *DAGCircuit) AddQReg(reg *QuantumRegister) error {
	for _, q := range reg.Bits {
		if _, ok := d.qubitSet[q]; ok {
			return errors.Wrapf(ErrDuplicateBit, "qreg %s: %s", reg.Name, q)
		}
	}
	d.qregs = append(d.qregs, reg)
	return d.AddQubits(reg.Bits...)
}

// AddCReg declares a classical register and all of its bits.
func (d *DAGCircuit) AddCReg(reg *ClassicalRegister) error {
	for _, c := range reg.Bits {
		if _, ok := d.clbitSet[c]; ok {
			return errors.Wrapf(ErrDuplicateBit, "creg %s: %s", reg.Name, c)
		}
	}
	d.cregs = append(d.cregs, reg)
	return d.AddClbits(reg.Bits...)
}

// AddQubits declares qubit wires. The wire objects are kept as given.
func (d *DAGCircuit) AddQubits(qubits ...*Qubit) error {
	for _, q := range qubits {
		if _, ok := d.qubitSet[q]; ok {
			return errors.Wrapf(ErrDuplicateBit, "qubit %s", q)
		}
		d.qubitSet[q] = struct{}{}
		d.qubits = append(d.qubits, q)
	}
	return nil
}

// AddClbits declares classical wires.
func (d *DAGCircuit) AddClbits(clbits ...*Clbit) error {
	for _, c := range clbits {
		if _, ok := d.clbitSet[c]; ok {
			return errors.Wrapf(ErrDuplicateBit, "clbit %s", c)
		}
		d.clbitSet[c] = struct{}{}
		d.clbits = append(d.clbits, c)
	}
	return nil
}

// QRegs returns the declared quantum registers in declaration order.
func (d *DAGCircuit) QRegs() []*QuantumRegister { return slices.Clone(d.qregs) }

// CRegs returns the declared classical registers in declaration order.
func (d *DAGCircuit) CRegs() []*ClassicalRegister { return slices.Clone(d.cregs) }

// Qubits returns all qubit wires in declaration order.
func (d *DAGCircuit) Qubits() []*Qubit { return slices.Clone(d.qubits) }

// Clbits returns all classical wires in declaration order.
func (d *DAGCircuit) Clbits() []*Clbit { return slices.Clone(d.clbits) }

// NumQubits returns the number of qubit wires.
func (d *DAGCircuit) NumQubits() int { return len(d.qubits) }

// NumClbits returns the number of classical wires.
func (d *DAGCircuit) NumClbits() int { return len(d.clbits) }

// ApplyOperationBack appends an operation after everything already on its
// wires. Classical bits read by the operation's condition are wires too.
func (d *DAGCircuit) ApplyOperationBack(op Operation, qargs []*Qubit, cargs []*Clbit) (*OpNode, error) {
	seenQ := make(map[*Qubit]bool, len(qargs))
	for _, q := range qargs {
		if _, ok := d.qubitSet[q]; !ok {
			return nil, errors.Wrapf(ErrUnknownWire, "%s: qubit %s", op.Name, q)
		}
		if seenQ[q] {
			return nil, errors.Wrapf(ErrDuplicateWire, "%s: qubit %s", op.Name, q)
		}
		seenQ[q] = true
	}

	clbitsUsed := make([]*Clbit, 0, len(cargs))
	seenC := make(map[*Clbit]bool, len(cargs))
	for _, c := range cargs {
		if _, ok := d.clbitSet[c]; !ok {
			return nil, errors.Wrapf(ErrUnknownWire, "%s: clbit %s", op.Name, c)
		}
		if seenC[c] {
			return nil, errors.Wrapf(ErrDuplicateWire, "%s: clbit %s", op.Name, c)
		}
		seenC[c] = true
		clbitsUsed = append(clbitsUsed, c)
	}
	for _, c := range op.Condition.Clbits() {
		if _, ok := d.clbitSet[c]; !ok {
			return nil, errors.Wrapf(ErrUnknownWire, "%s: condition on %s", op.Name, c)
		}
		if !seenC[c] {
			seenC[c] = true
			clbitsUsed = append(clbitsUsed, c)
		}
	}

	node := &OpNode{
		ID:           len(d.nodes),
		Op:           op,
		Qargs:        slices.Clone(qargs),
		Cargs:        slices.Clone(cargs),
		Dependencies: []int{},
	}

	// Establish dependencies on the previous operation of every wire used
	depSet := make(map[int]bool)
	for _, q := range qargs {
		if lastID, ok := d.lastOnQubit[q]; ok {
			depSet[lastID] = true
		}
	}
	for _, c := range clbitsUsed {
		if lastID, ok := d.lastOnClbit[c]; ok {
			depSet[lastID] = true
		}
	}
	for depID := range depSet {
		node.Dependencies = append(node.Dependencies, depID)
	}
	slices.Sort(node.Dependencies)

	d.nodes = append(d.nodes, node)
	for _, q := range qargs {
		d.lastOnQubit[q] = node.ID
	}
	for _, c := range clbitsUsed {
		d.lastOnClbit[c] = node.ID
	}
	return node, nil
}

// Nodes returns all operation nodes in insertion order.
func (d *DAGCircuit) Nodes() []*OpNode { return slices.Clone(d.nodes) }

// Node returns the node with the given ID.
func (d *DAGCircuit) Node(id int) (*OpNode, bool) {
	if id < 0 || id >= len(d.nodes) {
		return nil, false
	}
	return d.nodes[id], true
}

// TopologicalOpNodes returns operation nodes in topological order
// (respecting dependencies). Ties are broken by insertion order.
func (d *DAGCircuit) TopologicalOpNodes() []*OpNode {
	visited := make([]bool, len(d.nodes))
	result := make([]*OpNode, 0, len(d.nodes))

	var visit func(id int)
	visit = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true

		node := d.nodes[id]
		for _, depID := range node.Dependencies {
			visit(depID)
		}
		result = append(result, node)
	}

	for id := range d.nodes {
		visit(id)
	}
	return result
}

// CopyEmpty returns a circuit with the same registers and the very same wire
// objects, but no operations.
func (d *DAGCircuit) CopyEmpty() *DAGCircuit {
	out := New()
	out.qregs = slices.Clone(d.qregs)
	out.cregs = slices.Clone(d.cregs)
	out.qubits = slices.Clone(d.qubits)
	out.clbits = slices.Clone(d.clbits)
	for _, q := range d.qubits {
		out.qubitSet[q] = struct{}{}
	}
	for _, c := range d.clbits {
		out.clbitSet[c] = struct{}{}
	}
	return out
}
