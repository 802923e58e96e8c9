package dag

import "fmt"

// Qubit is a quantum wire. Identity is the pointer: two Qubits with the same
// register and index are still different wires.
type Qubit struct {
	Register *QuantumRegister // nil for a loose qubit
	Index    int              // Position inside Register
}

func (q *Qubit) String() string {
	if q.Register == nil {
		return fmt.Sprintf("qubit[%d]", q.Index)
	}
	return fmt.Sprintf("%s[%d]", q.Register.Name, q.Index)
}

// Clbit is a classical wire.
type Clbit struct {
	Register *ClassicalRegister
	Index    int
}

func (c *Clbit) String() string {
	if c.Register == nil {
		return fmt.Sprintf("clbit[%d]", c.Index)
	}
	return fmt.Sprintf("%s[%d]", c.Register.Name, c.Index)
}

// QuantumRegister is an ordered, named collection of qubits.
type QuantumRegister struct {
	Name string
	Bits []*Qubit
}

// NewQuantumRegister creates a register owning size fresh qubits.
func NewQuantumRegister(name string, size int) *QuantumRegister {
	reg := &QuantumRegister{Name: name, Bits: make([]*Qubit, size)}
	for i := range size {
		reg.Bits[i] = &Qubit{Register: reg, Index: i}
	}
	return reg
}

// Size returns the number of qubits in the register.
func (r *QuantumRegister) Size() int { return len(r.Bits) }

// ClassicalRegister is an ordered, named collection of classical bits.
type ClassicalRegister struct {
	Name string
	Bits []*Clbit
}

// NewClassicalRegister creates a register owning size fresh classical bits.
func NewClassicalRegister(name string, size int) *ClassicalRegister {
	reg := &ClassicalRegister{Name: name, Bits: make([]*Clbit, size)}
	for i := range size {
		reg.Bits[i] = &Clbit{Register: reg, Index: i}
	}
	return reg
}

// Size returns the number of bits in the register.
func (r *ClassicalRegister) Size() int { return len(r.Bits) }

// Condition gates an operation on classical state. Exactly one of Register
// and Bit is set.
type Condition struct {
	Register *ClassicalRegister
	Bit      *Clbit
	Value    int
}

// Clbits returns the classical wires the condition reads.
func (c *Condition) Clbits() []*Clbit {
	if c == nil {
		return nil
	}
	if c.Bit != nil {
		return []*Clbit{c.Bit}
	}
	if c.Register != nil {
		return c.Register.Bits
	}
	return nil
}

func (c *Condition) String() string {
	if c.Bit != nil {
		return fmt.Sprintf("%s==%d", c.Bit, c.Value)
	}
	return fmt.Sprintf("%s==%d", c.Register.Name, c.Value)
}
