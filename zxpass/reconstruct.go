package zxpass

import (
	"github.com/pkg/errors"

	"zxdeck/dag"
)

// Reconstruct builds a new DAG over the original's registers and wires from
// optimized segments. Passthrough nodes are re-applied unchanged; each Run's
// circuit is translated back and applied in order.
func Reconstruct(segments []Segment, original *dag.DAGCircuit, layout *Layout) (*dag.DAGCircuit, error) {
	out := original.CopyEmpty()
	for _, s := range segments {
		switch s := s.(type) {
		case *Passthrough:
			n := s.Node
			if _, err := out.ApplyOperationBack(n.Op, n.Qargs, n.Cargs); err != nil {
				return nil, errors.Wrapf(err, "passthrough %s", n.Op.Name)
			}
		case *Run:
			instrs, err := TranslateBack(s.Circuit, layout)
			if err != nil {
				return nil, err
			}
			for _, in := range instrs {
				if _, err := out.ApplyOperationBack(in.Op, in.Qargs, nil); err != nil {
					return nil, errors.Wrapf(err, "gate %s", in.Op.Name)
				}
			}
		}
	}
	return out, nil
}
