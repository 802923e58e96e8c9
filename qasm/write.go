package qasm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"zxdeck/dag"
)

var ErrLooseWire = errors.New("wire has no register")

// Write renders the DAG as OpenQASM 2.0 text, operations in topological
// order.
func Write(d *dag.DAGCircuit) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	for _, reg := range d.QRegs() {
		fmt.Fprintf(&sb, "qreg %s[%d];\n", reg.Name, reg.Size())
	}
	for _, reg := range d.CRegs() {
		fmt.Fprintf(&sb, "creg %s[%d];\n", reg.Name, reg.Size())
	}
	if d.NumQubits() > 0 || d.NumClbits() > 0 {
		sb.WriteString("\n")
	}
	for _, node := range d.TopologicalOpNodes() {
		line, err := Statement(node)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Statement renders one node as a QASM statement.
func Statement(node *dag.OpNode) (string, error) {
	var sb strings.Builder
	if c := node.Op.Condition; c != nil {
		switch {
		case c.Bit != nil:
			if c.Bit.Register == nil {
				return "", errors.Wrapf(ErrLooseWire, "condition on %s", c.Bit)
			}
			fmt.Fprintf(&sb, "if(%s[%d]==%d) ", c.Bit.Register.Name, c.Bit.Index, c.Value)
		default:
			fmt.Fprintf(&sb, "if(%s==%d) ", c.Register.Name, c.Value)
		}
	}

	if node.Op.Name == "measure" && len(node.Qargs) == 1 && len(node.Cargs) == 1 {
		q, c := node.Qargs[0], node.Cargs[0]
		if q.Register == nil || c.Register == nil {
			return "", errors.Wrapf(ErrLooseWire, "measure %s -> %s", q, c)
		}
		fmt.Fprintf(&sb, "measure %s -> %s;", q, c)
		return sb.String(), nil
	}

	sb.WriteString(node.Op.Name)
	if len(node.Op.Params) > 0 {
		parts := make([]string, len(node.Op.Params))
		for i, v := range node.Op.Params {
			parts[i] = FormatParam(v)
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
	}
	for i, q := range node.Qargs {
		if q.Register == nil {
			return "", errors.Wrapf(ErrLooseWire, "%s on %s", node.Op.Name, q)
		}
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(q.String())
	}
	sb.WriteString(";")
	return sb.String(), nil
}
