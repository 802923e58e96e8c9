package zxpass

import (
	"zxdeck/dag"
	"zxdeck/zx"
)

// Segment is a Run or a Passthrough.
type Segment interface {
	isSegment()
}

// Run is a maximal stretch of unconditioned catalog operations together with
// its reduced-IR translation.
type Run struct {
	Nodes   []*dag.OpNode
	Circuit *zx.Circuit
}

// Passthrough is a single operation kept verbatim.
type Passthrough struct {
	Node *dag.OpNode
}

func (*Run) isSegment()         {}
func (*Passthrough) isSegment() {}

// SegmentDAG splits the DAG's operations, in topological order, into Runs
// and Passthroughs. Operations with a classical condition are never placed
// in a Run, even when their name is in the catalog.
func SegmentDAG(d *dag.DAGCircuit, layout *Layout) ([]Segment, error) {
	var (
		segments []Segment
		pending  []*dag.OpNode
	)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		c, err := TranslateRun(pending, layout)
		if err != nil {
			return err
		}
		segments = append(segments, &Run{Nodes: pending, Circuit: c})
		pending = nil
		return nil
	}
	for _, node := range d.TopologicalOpNodes() {
		if _, ok := Lookup(node.Op.Name); ok && !node.Op.Conditioned() {
			pending = append(pending, node)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		segments = append(segments, &Passthrough{Node: node})
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return segments, nil
}

// Operations flattens segments back into their source operations, in order.
func Operations(segments []Segment) []*dag.OpNode {
	var nodes []*dag.OpNode
	for _, s := range segments {
		switch s := s.(type) {
		case *Run:
			nodes = append(nodes, s.Nodes...)
		case *Passthrough:
			nodes = append(nodes, s.Node)
		}
	}
	return nodes
}
