// Package passmanager is the host-side surface transpiler passes plug into:
// a sequential pass manager and a registry of stage plugins.
package passmanager

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"zxdeck/dag"
)

// Pass transforms a DAG. Implementations must not mutate their input.
type Pass interface {
	Name() string
	Run(d *dag.DAGCircuit) (*dag.DAGCircuit, error)
}

// PassManager runs passes in order, feeding each the previous output.
type PassManager struct {
	passes []Pass
	logger *zap.Logger
}

func New(logger *zap.Logger, passes ...Pass) *PassManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PassManager{passes: passes, logger: logger}
}

// Append adds a pass to the end of the pipeline.
func (pm *PassManager) Append(p Pass) {
	pm.passes = append(pm.passes, p)
}

// Passes returns the pipeline in run order.
func (pm *PassManager) Passes() []Pass {
	out := make([]Pass, len(pm.passes))
	copy(out, pm.passes)
	return out
}

// Run executes every pass. The first failure aborts the pipeline.
func (pm *PassManager) Run(d *dag.DAGCircuit) (*dag.DAGCircuit, error) {
	for _, p := range pm.passes {
		start := time.Now()
		out, err := p.Run(d)
		if err != nil {
			pm.logger.Error("pass failed", zap.String("pass", p.Name()), zap.Error(err))
			return nil, errors.Wrapf(err, "pass %s", p.Name())
		}
		pm.logger.Debug("pass done",
			zap.String("pass", p.Name()),
			zap.Int("size_in", d.Size()),
			zap.Int("size_out", out.Size()),
			zap.Duration("took", time.Since(start)),
		)
		d = out
	}
	return d, nil
}
