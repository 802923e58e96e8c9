package passmanager

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zxdeck/dag"
)

// appendPass copies the circuit and appends one gate on the first qubit.
type appendPass struct {
	gate string
	err  error
}

func (p appendPass) Name() string { return "append-" + p.gate }

func (p appendPass) Run(d *dag.DAGCircuit) (*dag.DAGCircuit, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := d.CopyEmpty()
	for _, n := range d.TopologicalOpNodes() {
		if _, err := out.ApplyOperationBack(n.Op, n.Qargs, n.Cargs); err != nil {
			return nil, err
		}
	}
	_, err := out.ApplyOperationBack(dag.Operation{Name: p.gate}, d.Qubits()[:1], nil)
	return out, err
}

func newDAG(t *testing.T) *dag.DAGCircuit {
	t.Helper()
	d := dag.New()
	require.NoError(t, d.AddQReg(dag.NewQuantumRegister("q", 1)))
	return d
}

func TestPassManagerRunsInOrder(t *testing.T) {
	pm := New(nil, appendPass{gate: "h"})
	pm.Append(appendPass{gate: "t"})
	require.Len(t, pm.Passes(), 2)

	in := newDAG(t)
	out, err := pm.Run(in)
	require.NoError(t, err)

	var names []string
	for _, n := range out.TopologicalOpNodes() {
		names = append(names, n.Op.Name)
	}
	assert.Equal(t, []string{"h", "t"}, names)
	assert.Empty(t, in.Nodes())
}

func TestPassManagerStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	pm := New(nil, appendPass{gate: "h"}, appendPass{gate: "x", err: boom}, appendPass{gate: "t"})
	_, err := pm.Run(newDAG(t))
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "append-x")
}

type stubPlugin struct{ tag string }

func (s stubPlugin) PassManager(Config) (*PassManager, error) {
	return New(nil, appendPass{gate: s.tag}), nil
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(StageOptimization, "zx", "1.0.0", stubPlugin{"a"}))
	require.NoError(t, r.Register(StageOptimization, "zx", "1.2.0", stubPlugin{"b"}))
	require.NoError(t, r.Register(StageOptimization, "other", "0.1.0", stubPlugin{"c"}))
	require.NoError(t, r.Register(StageLayout, "zx", "9.0.0", stubPlugin{"d"}))

	p, v, err := r.Lookup(StageOptimization, "zx", "")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v.String())
	assert.Equal(t, stubPlugin{"b"}, p)

	p, v, err = r.Lookup(StageOptimization, "ZX", "~1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v.String())
	assert.Equal(t, stubPlugin{"a"}, p)

	_, _, err = r.Lookup(StageOptimization, "zx", ">=2")
	assert.True(t, errors.Is(err, ErrPluginNotFound))
	_, _, err = r.Lookup(StageRouting, "zx", "")
	assert.True(t, errors.Is(err, ErrPluginNotFound))
	_, _, err = r.Lookup(StageOptimization, "zx", "not a constraint")
	assert.Error(t, err)

	infos := r.Plugins(StageOptimization)
	require.Len(t, infos, 3)
	assert.Equal(t, "other", infos[0].Name)
	assert.Equal(t, "zx", infos[1].Name)
	assert.Equal(t, "1.2.0", infos[1].Version.String())
	assert.Equal(t, "1.0.0", infos[2].Version.String())
}

func TestRegistryRejectsDuplicatesAndBadVersions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(StageOptimization, "zx", "1.0.0", stubPlugin{}))
	err := r.Register(StageOptimization, "zx", "1.0.0", stubPlugin{})
	assert.True(t, errors.Is(err, ErrDuplicatePlugin))
	assert.Error(t, r.Register(StageOptimization, "zx", "one", stubPlugin{}))
}
