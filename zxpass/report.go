package zxpass

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/markkurossi/tabulate"
)

// SegmentInfo summarizes one segment of a pass invocation.
type SegmentInfo struct {
	Kind     string   `json:"kind"` // "run" or "passthrough"
	Ops      []string `json:"ops"`
	GatesIn  int      `json:"gates_in"`
	GatesOut int      `json:"gates_out"`
}

// Report describes what one pass invocation did.
type Report struct {
	Segments     []SegmentInfo `json:"segments"`
	Runs         int           `json:"runs"`
	Passthroughs int           `json:"passthroughs"`
	GatesIn      int           `json:"gates_in"`
	GatesOut     int           `json:"gates_out"`
	TCountIn     int           `json:"t_count_in"`
	TCountOut    int           `json:"t_count_out"`
	SizeIn       int           `json:"size_in"`
	SizeOut      int           `json:"size_out"`
	DepthIn      int           `json:"depth_in"`
	DepthOut     int           `json:"depth_out"`
	Duration     time.Duration `json:"duration_ns"`
}

// Table renders the per-segment breakdown.
func (r *Report) Table() *tabulate.Tabulate {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("#").SetAlign(tabulate.MR)
	tab.Header("Segment").SetAlign(tabulate.ML)
	tab.Header("Operations").SetAlign(tabulate.ML)
	tab.Header("In").SetAlign(tabulate.MR)
	tab.Header("Out").SetAlign(tabulate.MR)

	for i, s := range r.Segments {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", i))
		row.Column(s.Kind)
		row.Column(summarizeOps(s.Ops, 6))
		row.Column(fmt.Sprintf("%d", s.GatesIn))
		row.Column(fmt.Sprintf("%d", s.GatesOut))
	}
	return tab
}

// Summary renders the before/after comparison.
func (r *Report) Summary() *tabulate.Tabulate {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Metric").SetAlign(tabulate.ML)
	tab.Header("Before").SetAlign(tabulate.MR)
	tab.Header("After").SetAlign(tabulate.MR)

	add := func(name string, before, after int) {
		row := tab.Row()
		row.Column(name)
		row.Column(fmt.Sprintf("%d", before))
		row.Column(fmt.Sprintf("%d", after))
	}
	add("size", r.SizeIn, r.SizeOut)
	add("depth", r.DepthIn, r.DepthOut)
	add("run gates", r.GatesIn, r.GatesOut)
	add("t-count", r.TCountIn, r.TCountOut)
	return tab
}

// Print writes both tables to w.
func (r *Report) Print(w io.Writer) {
	r.Summary().Print(w)
	fmt.Fprintf(w, "%d runs, %d passthroughs in %s\n", r.Runs, r.Passthroughs, r.Duration)
	if len(r.Segments) > 0 {
		r.Table().Print(w)
	}
}

func summarizeOps(ops []string, limit int) string {
	if len(ops) <= limit {
		return strings.Join(ops, " ")
	}
	return fmt.Sprintf("%s … (+%d)", strings.Join(ops[:limit], " "), len(ops)-limit)
}
