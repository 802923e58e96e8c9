package dag

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBellDAG(t *testing.T) (*DAGCircuit, *QuantumRegister, *ClassicalRegister) {
	t.Helper()
	qr := NewQuantumRegister("q", 2)
	cr := NewClassicalRegister("c", 2)
	d := New()
	require.NoError(t, d.AddQReg(qr))
	require.NoError(t, d.AddCReg(cr))
	return d, qr, cr
}

func TestApplyOperationBackDependencies(t *testing.T) {
	d, qr, cr := newBellDAG(t)

	h, err := d.ApplyOperationBack(Operation{Name: "h"}, []*Qubit{qr.Bits[0]}, nil)
	require.NoError(t, err)
	x, err := d.ApplyOperationBack(Operation{Name: "x"}, []*Qubit{qr.Bits[1]}, nil)
	require.NoError(t, err)
	cx, err := d.ApplyOperationBack(Operation{Name: "cx"}, []*Qubit{qr.Bits[0], qr.Bits[1]}, nil)
	require.NoError(t, err)
	m, err := d.ApplyOperationBack(Operation{Name: "measure"}, []*Qubit{qr.Bits[0]}, []*Clbit{cr.Bits[0]})
	require.NoError(t, err)
	cond, err := d.ApplyOperationBack(
		Operation{Name: "z", Condition: &Condition{Bit: cr.Bits[0], Value: 1}},
		[]*Qubit{qr.Bits[1]}, nil)
	require.NoError(t, err)

	assert.Empty(t, h.Dependencies)
	assert.Empty(t, x.Dependencies)
	assert.Equal(t, []int{h.ID, x.ID}, cx.Dependencies)
	assert.Equal(t, []int{cx.ID}, m.Dependencies)
	// The conditioned gate reads c[0], so it follows the measurement.
	assert.Equal(t, []int{cx.ID, m.ID}, cond.Dependencies)
}

func TestApplyOperationBackRejectsBadWires(t *testing.T) {
	d, qr, _ := newBellDAG(t)
	stray := NewQuantumRegister("r", 1)

	_, err := d.ApplyOperationBack(Operation{Name: "h"}, []*Qubit{stray.Bits[0]}, nil)
	assert.True(t, errors.Is(err, ErrUnknownWire))

	_, err = d.ApplyOperationBack(Operation{Name: "cx"}, []*Qubit{qr.Bits[0], qr.Bits[0]}, nil)
	assert.True(t, errors.Is(err, ErrDuplicateWire))

	other := NewClassicalRegister("k", 1)
	_, err = d.ApplyOperationBack(
		Operation{Name: "x", Condition: &Condition{Register: other, Value: 1}},
		[]*Qubit{qr.Bits[0]}, nil)
	assert.True(t, errors.Is(err, ErrUnknownWire))

	assert.True(t, errors.Is(d.AddQReg(qr), ErrDuplicateBit))
}

func TestTopologicalOpNodesFollowsWires(t *testing.T) {
	d, qr, _ := newBellDAG(t)
	names := []string{"h", "t", "s"}
	for _, name := range names {
		_, err := d.ApplyOperationBack(Operation{Name: name}, []*Qubit{qr.Bits[0]}, nil)
		require.NoError(t, err)
	}
	_, err := d.ApplyOperationBack(Operation{Name: "cx"}, []*Qubit{qr.Bits[1], qr.Bits[0]}, nil)
	require.NoError(t, err)

	order := d.TopologicalOpNodes()
	require.Len(t, order, 4)
	pos := make(map[int]int)
	for i, node := range order {
		pos[node.ID] = i
	}
	for _, node := range order {
		for _, dep := range node.Dependencies {
			assert.Less(t, pos[dep], pos[node.ID], "node %d before dependency %d", node.ID, dep)
		}
	}
	assert.Equal(t, "cx", order[3].Op.Name)
}

func TestCopyEmptyReusesWires(t *testing.T) {
	d, qr, cr := newBellDAG(t)
	_, err := d.ApplyOperationBack(Operation{Name: "h"}, []*Qubit{qr.Bits[0]}, nil)
	require.NoError(t, err)

	out := d.CopyEmpty()
	assert.Equal(t, 0, len(out.Nodes()))
	assert.Equal(t, d.QRegs(), out.QRegs())
	assert.Equal(t, d.CRegs(), out.CRegs())
	for i, q := range out.Qubits() {
		assert.Same(t, qr.Bits[i], q)
	}
	for i, c := range out.Clbits() {
		assert.Same(t, cr.Bits[i], c)
	}

	// Wires of the source circuit are usable on the copy.
	_, err = out.ApplyOperationBack(Operation{Name: "x"}, []*Qubit{qr.Bits[1]}, nil)
	require.NoError(t, err)
	assert.Len(t, d.Nodes(), 1)
}

func TestSizeAndDepth(t *testing.T) {
	d, qr, cr := newBellDAG(t)
	apply := func(op Operation, qargs []*Qubit, cargs []*Clbit) {
		_, err := d.ApplyOperationBack(op, qargs, cargs)
		require.NoError(t, err)
	}
	apply(Operation{Name: "h"}, []*Qubit{qr.Bits[0]}, nil)
	apply(Operation{Name: "x"}, []*Qubit{qr.Bits[1]}, nil)
	apply(Operation{Name: "barrier"}, qr.Bits, nil)
	apply(Operation{Name: "cx"}, []*Qubit{qr.Bits[0], qr.Bits[1]}, nil)
	apply(Operation{Name: "measure"}, []*Qubit{qr.Bits[1]}, []*Clbit{cr.Bits[1]})

	assert.Equal(t, 4, d.Size())
	assert.Equal(t, 3, d.Depth())
	assert.Equal(t, map[string]int{"h": 1, "x": 1, "barrier": 1, "cx": 1, "measure": 1}, d.CountOps())
}
