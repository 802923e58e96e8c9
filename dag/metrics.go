package dag

// Size returns the number of operations, not counting barriers.
func (d *DAGCircuit) Size() int {
	n := 0
	for _, node := range d.nodes {
		if node.Op.Name != "barrier" {
			n++
		}
	}
	return n
}

// Depth returns the length of the longest wire path through the circuit,
// not counting barriers.
func (d *DAGCircuit) Depth() int {
	qubitDepth := make(map[*Qubit]int)
	clbitDepth := make(map[*Clbit]int)
	depth := 0

	for _, node := range d.TopologicalOpNodes() {
		level := 0
		for _, q := range node.Qargs {
			level = max(level, qubitDepth[q])
		}
		for _, c := range node.Cargs {
			level = max(level, clbitDepth[c])
		}
		for _, c := range node.Op.Condition.Clbits() {
			level = max(level, clbitDepth[c])
		}
		if node.Op.Name != "barrier" {
			level++
		}

		for _, q := range node.Qargs {
			qubitDepth[q] = level
		}
		for _, c := range node.Cargs {
			clbitDepth[c] = level
		}
		for _, c := range node.Op.Condition.Clbits() {
			clbitDepth[c] = level
		}
		depth = max(depth, level)
	}
	return depth
}

// CountOps returns how many times each operation name occurs.
func (d *DAGCircuit) CountOps() map[string]int {
	counts := make(map[string]int)
	for _, node := range d.nodes {
		counts[node.Op.Name]++
	}
	return counts
}
