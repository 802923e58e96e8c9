package zxpass

import (
	"testing"

	"github.com/stretchr/testify/require"

	"zxdeck/dag"
	"zxdeck/qasm"
	"zxdeck/sim"
)

func parse(t *testing.T, src string) *dag.DAGCircuit {
	t.Helper()
	d, err := qasm.Parse(src)
	require.NoError(t, err)
	return d
}

func opNames(nodes []*dag.OpNode) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Op.Name
	}
	return names
}

func requireEquivalent(t *testing.T, a, b *dag.DAGCircuit) {
	t.Helper()
	ok, err := sim.Equivalent(a, b, 1e-9)
	require.NoError(t, err)
	require.True(t, ok, "circuits differ")
}
