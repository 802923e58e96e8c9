package zxpass

import (
	"github.com/pkg/errors"

	"zxdeck/dag"
	"zxdeck/zx"
)

var (
	ErrArityMismatch   = errors.New("operand count does not match gate")
	ErrUnsupportedGate = errors.New("unsupported gate")
	ErrQubitOutOfRange = errors.New("qubit index outside layout")
	ErrNoCircuit       = zx.ErrNoCircuit
)

// Instruction is one operation to re-apply to a DAG.
type Instruction struct {
	Op    dag.Operation
	Qargs []*dag.Qubit
}

// checkArity verifies a node's operands against its catalog entry.
func checkArity(node *dag.OpNode, e Entry) error {
	if len(node.Qargs) != e.NumQubits {
		return errors.Wrapf(ErrArityMismatch, "expected %d qubits for gate %s, got %d",
			e.NumQubits, e.Name, len(node.Qargs))
	}
	if len(node.Op.Params) != e.NumParams {
		return errors.Wrapf(ErrArityMismatch, "expected %d parameters for gate %s, got %d",
			e.NumParams, e.Name, len(node.Op.Params))
	}
	if len(node.Cargs) != 0 {
		return errors.Wrapf(ErrArityMismatch, "gate %s takes no classical bits, got %d",
			e.Name, len(node.Cargs))
	}
	return nil
}

// TranslateNode converts one catalog operation to a reduced-IR gate.
// Parameters in radians become phases in multiples of π.
func TranslateNode(node *dag.OpNode, e Entry, layout *Layout) (zx.Gate, error) {
	if err := checkArity(node, e); err != nil {
		return zx.Gate{}, err
	}
	qubits := make([]int, len(node.Qargs))
	for i, q := range node.Qargs {
		idx, ok := layout.Index(q)
		if !ok {
			return zx.Gate{}, errors.Wrapf(ErrQubitOutOfRange, "gate %s: qubit %s", e.Name, q)
		}
		qubits[i] = idx
	}
	phases := make([]zx.Phase, len(node.Op.Params))
	for i, p := range node.Op.Params {
		phases[i] = zx.PhaseFromRadians(p)
	}
	g, err := e.NewGate(qubits, phases)
	if err != nil {
		return zx.Gate{}, errors.Wrapf(err, "gate %s", e.Name)
	}
	return g, nil
}

// TranslateRun converts a sequence of unconditioned catalog operations into a
// circuit sized to the whole layout.
func TranslateRun(nodes []*dag.OpNode, layout *Layout) (*zx.Circuit, error) {
	c := zx.NewCircuit(layout.Size())
	for _, node := range nodes {
		e, ok := Lookup(node.Op.Name)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedGate, "%s", node.Op.Name)
		}
		g, err := TranslateNode(node, e, layout)
		if err != nil {
			return nil, err
		}
		if err := c.AddGate(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// TranslateBack converts a reduced-IR circuit into DAG instructions. Each
// gate's name is its adjoint-aware label; operands are read controls first.
func TranslateBack(c *zx.Circuit, layout *Layout) ([]Instruction, error) {
	out := make([]Instruction, 0, c.Len())
	for _, g := range c.Gates() {
		name := g.Label()
		e, ok := Lookup(name)
		if !ok || e.Kind != g.Kind || e.Adjoint != g.Adjoint {
			return nil, errors.Wrapf(ErrUnsupportedGate, "%s", name)
		}
		if len(g.Qubits) != e.NumQubits || len(g.Phases) != e.NumParams {
			return nil, errors.Wrapf(ErrArityMismatch, "gate %s: %d qubits, %d phases",
				name, len(g.Qubits), len(g.Phases))
		}
		qargs := make([]*dag.Qubit, len(g.Qubits))
		for i, idx := range g.Qubits {
			q, ok := layout.Qubit(idx)
			if !ok {
				return nil, errors.Wrapf(ErrQubitOutOfRange, "gate %s: index %d of %d",
					name, idx, layout.Size())
			}
			qargs[i] = q
		}
		params := make([]float64, len(g.Phases))
		for i, p := range g.Phases {
			params[i] = p.Radians()
		}
		out = append(out, Instruction{Op: e.NewOperation(params), Qargs: qargs})
	}
	return out, nil
}
