package zxpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmentKinds(segments []Segment) []string {
	kinds := make([]string, len(segments))
	for i, s := range segments {
		switch s.(type) {
		case *Run:
			kinds[i] = "run"
		case *Passthrough:
			kinds[i] = "passthrough"
		}
	}
	return kinds
}

func TestSegmentMeasureSplitsRuns(t *testing.T) {
	d := parse(t, "qreg q[1];\ncreg c[1];\nh q[0];\nmeasure q[0] -> c[0];\nh q[0];\n")
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)

	require.Equal(t, []string{"run", "passthrough", "run"}, segmentKinds(segments))
	assert.Equal(t, []string{"h"}, opNames(segments[0].(*Run).Nodes))
	assert.Equal(t, "measure", segments[1].(*Passthrough).Node.Op.Name)
	assert.Equal(t, []string{"h"}, opNames(segments[2].(*Run).Nodes))
	assert.Equal(t, 1, segments[0].(*Run).Circuit.Len())
}

func TestSegmentConditionedGateIsPassthrough(t *testing.T) {
	d := parse(t, "qreg q[1];\ncreg c[1];\nif(c==0) h q[0];\n")
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)
	require.Equal(t, []string{"passthrough"}, segmentKinds(segments))
	assert.NotNil(t, segments[0].(*Passthrough).Node.Op.Condition)
}

func TestSegmentConditionedGateBetweenRuns(t *testing.T) {
	d := parse(t, `qreg q[2];
creg c[2];
x q[0];
x q[0];
if(c[1]==1) x q[0];
x q[0];
cx q[0], q[1];
`)
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)
	require.Equal(t, []string{"run", "passthrough", "run"}, segmentKinds(segments))
	assert.Equal(t, []string{"x", "x"}, opNames(segments[0].(*Run).Nodes))
	assert.Equal(t, []string{"x", "cx"}, opNames(segments[2].(*Run).Nodes))
}

func TestSegmentationIsComplete(t *testing.T) {
	d := parse(t, `qreg q[3];
qreg r[1];
creg c[2];
h q[0];
cx q[0], q[1];
barrier q[0], q[1], q[2];
foo q[2];
t q[2];
measure q[1] -> c[0];
if(c==1) rz(pi/4) r[0];
ccx q[0], q[1], r[0];
reset q[0];
`)
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)
	assert.Equal(t, d.TopologicalOpNodes(), Operations(segments))

	for _, s := range segments {
		if run, ok := s.(*Run); ok {
			assert.Equal(t, 4, run.Circuit.Qubits())
			assert.Equal(t, len(run.Nodes), run.Circuit.Len())
		}
	}
}

func TestSegmentRunMatchesTranslateRun(t *testing.T) {
	d := parse(t, "qreg q[2];\ncreg c[1];\nh q[0];\ncx q[0], q[1];\nmeasure q[1] -> c[0];\nrz(0.5) q[1];\ncz q[1], q[0];\n")
	layout := NewLayout(d)
	segments, err := SegmentDAG(d, layout)
	require.NoError(t, err)
	runs := 0
	for _, s := range segments {
		run, ok := s.(*Run)
		if !ok {
			continue
		}
		runs++
		c, err := TranslateRun(run.Nodes, layout)
		require.NoError(t, err)
		assert.Equal(t, c.Fingerprint(), run.Circuit.Fingerprint())
	}
	assert.Equal(t, 2, runs)
}

func TestSegmentOnlyOpaqueOps(t *testing.T) {
	d := parse(t, "qreg q[2];\ncreg c[2];\nfoo q[0];\nbarrier q[0], q[1];\nmeasure q[1] -> c[1];\n")
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)
	assert.Equal(t, []string{"passthrough", "passthrough", "passthrough"}, segmentKinds(segments))
}

func TestSegmentEmptyDAG(t *testing.T) {
	d := parse(t, "qreg q[2];\n")
	segments, err := SegmentDAG(d, NewLayout(d))
	require.NoError(t, err)
	assert.Empty(t, segments)
	assert.Empty(t, Operations(segments))
}
