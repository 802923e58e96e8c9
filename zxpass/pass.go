// Package zxpass rewrites the gate-level parts of an operation DAG through
// the reduced ZX gate IR. Maximal runs of unconditioned catalog gates are
// translated, optimized, and translated back; every other operation is
// kept verbatim in its original position.
package zxpass

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"zxdeck/dag"
	"zxdeck/zx"
)

// Name is the stable name of the pass.
const Name = "ZXPass"

// Pass is immutable after New and safe for concurrent use; all working
// state lives in a single call.
type Pass struct {
	optimizer zx.Optimizer
	logger    *zap.Logger
}

type Option func(*Pass)

// WithOptimizer replaces the default zx.FullReduce optimizer.
func WithOptimizer(opt zx.Optimizer) Option {
	return func(p *Pass) {
		if opt != nil {
			p.optimizer = opt
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pass) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func New(opts ...Option) *Pass {
	p := &Pass{
		optimizer: zx.FullReduce,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pass) Name() string { return Name }

// Run returns a new DAG with every Run optimized. The input is not modified.
func (p *Pass) Run(d *dag.DAGCircuit) (*dag.DAGCircuit, error) {
	out, _, err := p.RunWithReport(d)
	return out, err
}

// RunWithReport is Run plus a description of the segmentation and gate
// counts. Errors from the optimizer are returned as is.
func (p *Pass) RunWithReport(d *dag.DAGCircuit) (*dag.DAGCircuit, *Report, error) {
	start := time.Now()
	status := "error"
	defer func() {
		passesTotal.WithLabelValues(status).Inc()
		passDuration.Observe(time.Since(start).Seconds())
	}()

	layout := NewLayout(d)
	segments, err := SegmentDAG(d, layout)
	if err != nil {
		p.logger.Warn("segmentation failed", zap.Error(err))
		return nil, nil, err
	}

	report := &Report{SizeIn: d.Size(), DepthIn: d.Depth()}
	if len(segments) == 0 {
		status = "empty"
		report.SizeOut, report.DepthOut = report.SizeIn, report.DepthIn
		report.Duration = time.Since(start)
		return d, report, nil
	}

	optimized := make([]Segment, len(segments))
	for i, s := range segments {
		switch s := s.(type) {
		case *Passthrough:
			optimized[i] = s
			report.Passthroughs++
			passthroughsTotal.Inc()
			report.Segments = append(report.Segments, SegmentInfo{
				Kind: "passthrough",
				Ops:  []string{s.Node.Op.Name},
			})
		case *Run:
			c, err := p.optimizer(s.Circuit)
			if err != nil {
				p.logger.Warn("optimizer failed", zap.Int("segment", i), zap.Error(err))
				return nil, nil, err
			}
			if c == nil {
				err := errors.Wrapf(ErrNoCircuit, "segment %d", i)
				p.logger.Warn("optimizer failed", zap.Int("segment", i), zap.Error(err))
				return nil, nil, err
			}
			optimized[i] = &Run{Nodes: s.Nodes, Circuit: c}
			report.Runs++
			report.GatesIn += s.Circuit.Len()
			report.GatesOut += c.Len()
			report.TCountIn += s.Circuit.TCount()
			report.TCountOut += c.TCount()
			runsOptimizedTotal.Inc()
			gatesTotal.WithLabelValues("in").Add(float64(s.Circuit.Len()))
			gatesTotal.WithLabelValues("out").Add(float64(c.Len()))

			ops := make([]string, len(s.Nodes))
			for j, n := range s.Nodes {
				ops[j] = n.Op.Name
			}
			report.Segments = append(report.Segments, SegmentInfo{
				Kind:     "run",
				Ops:      ops,
				GatesIn:  s.Circuit.Len(),
				GatesOut: c.Len(),
			})
			p.logger.Debug("run optimized",
				zap.Int("segment", i),
				zap.Int("gates_in", s.Circuit.Len()),
				zap.Int("gates_out", c.Len()),
			)
		}
	}

	out, err := Reconstruct(optimized, d, layout)
	if err != nil {
		p.logger.Warn("reconstruction failed", zap.Error(err))
		return nil, nil, err
	}

	status = "success"
	report.SizeOut = out.Size()
	report.DepthOut = out.Depth()
	report.Duration = time.Since(start)
	p.logger.Info("pass done",
		zap.Int("runs", report.Runs),
		zap.Int("passthroughs", report.Passthroughs),
		zap.Int("gates_in", report.GatesIn),
		zap.Int("gates_out", report.GatesOut),
		zap.Duration("took", report.Duration),
	)
	return out, report, nil
}
