package sim

import (
	"math/cmplx"

	"github.com/pkg/errors"

	"zxdeck/dag"
)

var ErrNonUnitary = errors.New("circuit is not unitary")

// Op is one gate application on flat qubit indices.
type Op struct {
	Name   string
	Params []float64
	Qubits []int
}

// Ops flattens a DAG into gate applications in topological order. Barriers
// and measurements are skipped. Conditioned operations are skipped unless
// strict is set, in which case they, along with measurements and resets,
// yield ErrNonUnitary.
func Ops(d *dag.DAGCircuit, strict bool) ([]Op, error) {
	index := make(map[*dag.Qubit]int, d.NumQubits())
	for i, q := range d.Qubits() {
		index[q] = i
	}
	var ops []Op
	for _, n := range d.TopologicalOpNodes() {
		switch {
		case n.Op.Name == "barrier":
			continue
		case n.Op.Name == "measure" || n.Op.Name == "reset" || n.Op.Conditioned():
			if strict {
				return nil, errors.Wrapf(ErrNonUnitary, "node %d: %s", n.ID, n.Op.Name)
			}
			if n.Op.Name != "reset" || n.Op.Conditioned() {
				continue
			}
		}
		qubits := make([]int, len(n.Qargs))
		for i, q := range n.Qargs {
			qubits[i] = index[q]
		}
		ops = append(ops, Op{Name: n.Op.Name, Params: n.Op.Params, Qubits: qubits})
	}
	return ops, nil
}

// Run applies ops to s in order.
func (s *StateVector) Run(ops []Op) error {
	for _, op := range ops {
		if err := s.ApplyOperation(op.Name, op.Params, op.Qubits); err != nil {
			return err
		}
	}
	return nil
}

// Simulate runs the DAG from |0...0>.
func Simulate(d *dag.DAGCircuit) (*StateVector, error) {
	ops, err := Ops(d, false)
	if err != nil {
		return nil, err
	}
	s := NewStateVector(max(d.NumQubits(), 1))
	if err := s.Run(ops); err != nil {
		return nil, err
	}
	return s, nil
}

// Unitary returns the matrix of ops over n qubits, column by column.
func Unitary(n int, ops []Op) ([][]Complex, error) {
	dim := 1 << n
	cols := make([][]Complex, dim)
	for k := range dim {
		s := NewBasisState(n, k)
		if err := s.Run(ops); err != nil {
			return nil, err
		}
		cols[k] = s.Amplitudes
	}
	return cols, nil
}

// EquivalentOps reports whether two gate sequences over n qubits implement
// the same unitary up to a global phase.
func EquivalentOps(n int, a, b []Op, tol float64) (bool, error) {
	ua, err := Unitary(n, a)
	if err != nil {
		return false, err
	}
	ub, err := Unitary(n, b)
	if err != nil {
		return false, err
	}
	var phase Complex
	for k := range ua {
		for i := range ua[k] {
			if phase == 0 && cmplx.Abs(ua[k][i]) > tol {
				phase = ub[k][i] / ua[k][i]
				if d := cmplx.Abs(phase) - 1; d > tol || d < -tol {
					return false, nil
				}
			}
			if cmplx.Abs(ub[k][i]-phase*ua[k][i]) > tol {
				return false, nil
			}
		}
	}
	return true, nil
}

// Equivalent reports whether two DAGs over the same qubit count implement the
// same unitary up to a global phase.
func Equivalent(a, b *dag.DAGCircuit, tol float64) (bool, error) {
	if a.NumQubits() != b.NumQubits() {
		return false, nil
	}
	opsA, err := Ops(a, true)
	if err != nil {
		return false, err
	}
	opsB, err := Ops(b, true)
	if err != nil {
		return false, err
	}
	return EquivalentOps(a.NumQubits(), opsA, opsB, tol)
}
