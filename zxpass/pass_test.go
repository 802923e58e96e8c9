package zxpass

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"zxdeck/dag"
	"zxdeck/passmanager"
	"zxdeck/qasm"
	"zxdeck/zx"
)

func TestPassName(t *testing.T) {
	assert.Equal(t, "ZXPass", New().Name())
}

func TestBellStateIdentityOptimizer(t *testing.T) {
	d := parse(t, "qreg q[2];\nh q[0];\ncx q[0], q[1];\n")
	out, err := New(WithOptimizer(zx.Identity)).Run(d)
	require.NoError(t, err)

	nodes := out.TopologicalOpNodes()
	require.Equal(t, []string{"h", "cx"}, opNames(nodes))
	qubits := d.Qubits()
	assert.Equal(t, []*dag.Qubit{qubits[0]}, nodes[0].Qargs)
	assert.Equal(t, []*dag.Qubit{qubits[0], qubits[1]}, nodes[1].Qargs)
	requireEquivalent(t, d, out)
}

func TestFullReducePreservesEquivalence(t *testing.T) {
	sources := []string{
		"qreg q[2];\nh q[0];\nh q[0];\ncx q[0], q[1];\nt q[1];\nt q[1];\nsdg q[1];\n",
		"qreg a[1];\nqreg b[2];\nccx a[0], b[0], b[1];\nrx(pi/3) b[1];\nrx(-pi/3) b[1];\nccx a[0], b[0], b[1];\nz b[0];\np(pi/2) b[0];\n",
		"qreg q[3];\ncp(pi/4) q[0], q[2];\ncu1(-pi/4) q[2], q[0];\nswap q[0], q[1];\nswap q[1], q[0];\nry(0.3) q[2];\nry(0.4) q[2];\ncu(0.1, 0.2, 0.3, 0.4) q[1], q[2];\n",
		"qreg q[2];\nu3(0.1, 0.2, 0.3) q[0];\nu2(0.4, 0.5) q[1];\nrzz(0.7) q[0], q[1];\nrxx(0.2) q[1], q[0];\ncsx q[0], q[1];\nsx q[0];\nsxdg q[0];\n",
	}
	for _, src := range sources {
		d := parse(t, src)
		out, report, err := New().RunWithReport(d)
		require.NoError(t, err)
		requireEquivalent(t, d, out)
		assert.LessOrEqual(t, report.GatesOut, report.GatesIn)
	}
}

func TestFullReduceShrinksCircuit(t *testing.T) {
	d := parse(t, "qreg q[2];\nh q[0];\nh q[0];\ncx q[0], q[1];\ncx q[0], q[1];\nt q[1];\nt q[1];\n")
	out, report, err := New().RunWithReport(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, opNames(out.TopologicalOpNodes()))
	assert.Equal(t, 6, report.GatesIn)
	assert.Equal(t, 1, report.GatesOut)
	assert.Equal(t, 2, report.TCountIn)
	assert.Equal(t, 0, report.TCountOut)
	assert.Equal(t, 1, report.Runs)
	assert.Equal(t, 1, report.SizeOut)
}

func TestMeasurementsStayInPlace(t *testing.T) {
	src := `qreg q[2];
creg c[2];
h q[0];
h q[0];
x q[1];
measure q[1] -> c[1];
if(c[1]==1) x q[0];
if(c[1]==1) x q[0];
s q[0];
sdg q[0];
measure q[0] -> c[0];
`
	d := parse(t, src)
	out, report, err := New().RunWithReport(d)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"x", "measure", "x", "x", "measure"},
		opNames(out.TopologicalOpNodes()))
	assert.Equal(t, 2, report.Runs)
	assert.Equal(t, 4, report.Passthroughs)

	// Conditioned gates keep their condition objects.
	nodes := out.TopologicalOpNodes()
	orig := d.TopologicalOpNodes()
	assert.Same(t, orig[4].Op.Condition, nodes[2].Op.Condition)
	assert.Equal(t, orig[3].Cargs, nodes[1].Cargs)
}

func TestRegistersAreReused(t *testing.T) {
	d := parse(t, "qreg a[1];\nqreg b[2];\ncreg c[3];\nh a[0];\nmeasure b[1] -> c[2];\n")
	out, err := New().Run(d)
	require.NoError(t, err)
	assert.Equal(t, d.QRegs(), out.QRegs())
	assert.Equal(t, d.CRegs(), out.CRegs())
	for i, q := range d.Qubits() {
		assert.Same(t, q, out.Qubits()[i])
	}
	for i, c := range d.Clbits() {
		assert.Same(t, c, out.Clbits()[i])
	}
}

func TestEmptyDAGIsReturnedAsIs(t *testing.T) {
	d := parse(t, "qreg q[3];\ncreg c[1];\n")
	out, report, err := New().RunWithReport(d)
	require.NoError(t, err)
	assert.Same(t, d, out)
	assert.Equal(t, 0, report.Runs)
	assert.Empty(t, report.Segments)
}

func TestOpaqueOnlyDAGUnchanged(t *testing.T) {
	src := "qreg q[2];\ncreg c[2];\nfoo q[0];\nbarrier q[0], q[1];\nmeasure q[1] -> c[1];\nreset q[0];\n"
	d := parse(t, src)
	out, report, err := New().RunWithReport(d)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Runs)

	want, err := qasm.Write(d)
	require.NoError(t, err)
	got, err := qasm.Write(out)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOptimizerErrorIsReturnedUnchanged(t *testing.T) {
	boom := errors.New("optimizer exploded")
	calls := 0
	failing := func(*zx.Circuit) (*zx.Circuit, error) {
		calls++
		return nil, boom
	}
	d := parse(t, "qreg q[1];\ncreg c[1];\nh q[0];\nmeasure q[0] -> c[0];\nh q[0];\n")
	out, err := New(WithOptimizer(failing), WithLogger(zaptest.NewLogger(t))).Run(d)
	assert.Nil(t, out)
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestBadOptimizerOutputIsFatal(t *testing.T) {
	grow := func(c *zx.Circuit) (*zx.Circuit, error) {
		out := zx.NewCircuit(c.Qubits() + 1)
		err := out.AddGate(zx.Gate{Kind: zx.HAD, Qubits: []int{c.Qubits()}})
		return out, err
	}
	d := parse(t, "qreg q[1];\nh q[0];\n")
	_, err := New(WithOptimizer(grow)).Run(d)
	assert.True(t, errors.Is(err, ErrQubitOutOfRange))
}

func TestMissingOptimizerOutputIsFatal(t *testing.T) {
	empty := func(*zx.Circuit) (*zx.Circuit, error) { return nil, nil }
	d := parse(t, "qreg q[1];\nh q[0];\n")
	out, err := New(WithOptimizer(empty)).Run(d)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrNoCircuit))

	cached, err := zx.NewCachedOptimizer(empty, 2)
	require.NoError(t, err)
	_, err = New(WithOptimizer(cached)).Run(d)
	assert.True(t, errors.Is(err, ErrNoCircuit))
}

func TestArityMismatchAbortsPass(t *testing.T) {
	d := parse(t, "qreg q[2];\nh q[0];\nrx q[1];\n")
	out, err := New().Run(d)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrArityMismatch))
}

func TestPassDoesNotMutateInput(t *testing.T) {
	d := parse(t, "qreg q[1];\nh q[0];\nh q[0];\n")
	before, err := qasm.Write(d)
	require.NoError(t, err)

	p := New()
	for range 2 {
		out, err := p.Run(d)
		require.NoError(t, err)
		assert.Empty(t, out.Nodes())
	}
	after, err := qasm.Write(d)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPassIsSafeForConcurrentUse(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := qasm.Parse("qreg q[2];\nh q[0];\ncx q[0], q[1];\ncx q[0], q[1];\n")
			if !assert.NoError(t, err) {
				return
			}
			out, err := p.Run(d)
			if assert.NoError(t, err) {
				assert.Equal(t, []string{"h"}, opNames(out.TopologicalOpNodes()))
			}
		}()
	}
	wg.Wait()
}

func TestPluginIsRegistered(t *testing.T) {
	plugin, version, err := passmanager.Default.Lookup(passmanager.StageOptimization, PluginName, "^1")
	require.NoError(t, err)
	assert.Equal(t, PluginVersion, version.String())

	d := parse(t, "qreg q[1];\nh q[0];\nh q[0];\nt q[0];\nt q[0];\n")

	cases := []struct {
		cfg  passmanager.Config
		want []string
	}{
		{passmanager.Config{}, []string{"h", "h", "t", "t"}},
		{passmanager.Config{OptimizationLevel: 0}, []string{"h", "h", "t", "t"}},
		{passmanager.Config{OptimizationLevel: 1}, []string{"t", "t"}},
		{passmanager.Config{OptimizationLevel: 2}, []string{"p"}},
		{passmanager.Config{OptimizationLevel: 0, Options: map[string]string{"rules": "fuse_z"}}, []string{"h", "h", "p"}},
		{passmanager.Config{OptimizationLevel: 3, Options: map[string]string{"cache_size": "8"}}, []string{"p"}},
	}
	for _, tc := range cases {
		pm, err := plugin.PassManager(tc.cfg)
		require.NoError(t, err)
		require.Len(t, pm.Passes(), 1)
		assert.Equal(t, Name, pm.Passes()[0].Name())

		out, err := pm.Run(d)
		require.NoError(t, err)
		assert.Equal(t, tc.want, opNames(out.TopologicalOpNodes()))
	}

	_, err = plugin.PassManager(passmanager.Config{Options: map[string]string{"rules": "nope"}})
	assert.True(t, errors.Is(err, zx.ErrUnknownRule))
	_, err = plugin.PassManager(passmanager.Config{Options: map[string]string{"max_rounds": "-1"}})
	assert.Error(t, err)
}
