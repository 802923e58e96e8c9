package zxpass

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPrint(t *testing.T) {
	d := parse(t, "qreg q[1];\ncreg c[1];\nh q[0];\nt q[0];\nt q[0];\nmeasure q[0] -> c[0];\n")
	_, report, err := New().RunWithReport(d)
	require.NoError(t, err)
	require.Len(t, report.Segments, 2)
	assert.Equal(t, SegmentInfo{Kind: "run", Ops: []string{"h", "t", "t"}, GatesIn: 3, GatesOut: 2}, report.Segments[0])
	assert.Equal(t, "passthrough", report.Segments[1].Kind)

	var buf bytes.Buffer
	report.Print(&buf)
	out := buf.String()
	for _, want := range []string{"t-count", "depth", "h t t", "passthrough", "1 runs, 1 passthroughs"} {
		assert.Contains(t, out, want)
	}
}

func TestSummarizeOps(t *testing.T) {
	ops := strings.Fields("h h h h h h h h")
	assert.Equal(t, "h h h … (+5)", summarizeOps(ops, 3))
	assert.Equal(t, "h h", summarizeOps(ops[:2], 3))
}
