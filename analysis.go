package main

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"zxdeck/config"
	"zxdeck/dag"
	"zxdeck/passmanager"
	"zxdeck/qasm"
	"zxdeck/sim"
	"zxdeck/zxpass"
)

const equivalenceTol = 1e-6

// reporter is implemented by passes that describe what they did.
type reporter interface {
	RunWithReport(d *dag.DAGCircuit) (*dag.DAGCircuit, *zxpass.Report, error)
}

// analyzer runs the configured optimization plugin over QASM sources.
type analyzer struct {
	cfg      config.OptimizerConfig
	registry *passmanager.Registry
	pm       *passmanager.PassManager
	version  *semver.Version
	maxSim   int
	logger   *zap.Logger
}

func newAnalyzer(cfg config.OptimizerConfig, registry *passmanager.Registry, maxSim int, logger *zap.Logger) (*analyzer, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pm, version, err := cfg.PassManager(registry, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("optimizer plugin loaded",
		zap.String("plugin", cfg.Plugin),
		zap.String("version", version.String()),
		zap.Int("level", *cfg.Level),
		zap.Strings("rules", cfg.Rules),
	)
	return &analyzer{
		cfg:      cfg,
		registry: registry,
		pm:       pm,
		version:  version,
		maxSim:   maxSim,
		logger:   logger,
	}, nil
}

// reconfigure returns an analyzer for cfg sharing the registry and logger.
func (a *analyzer) reconfigure(cfg config.OptimizerConfig) (*analyzer, error) {
	return newAnalyzer(cfg, a.registry, a.maxSim, a.logger)
}

// analysis is the outcome of optimizing one QASM source.
type analysis struct {
	source    string
	original  *dag.DAGCircuit
	optimized *dag.DAGCircuit
	report    *zxpass.Report
	output    string // optimized circuit as QASM

	// Only set for circuits narrow enough to simulate.
	probs      []sim.QubitProbability
	equivalent *bool

	err error
}

func (a *analyzer) analyze(src string) *analysis {
	res := &analysis{source: src}

	d, err := qasm.Parse(src)
	if err != nil {
		res.err = errors.Wrap(err, "parse")
		return res
	}
	res.original = d

	res.optimized, res.report, err = a.run(d)
	if err != nil {
		res.err = err
		return res
	}

	res.output, err = qasm.Write(res.optimized)
	if err != nil {
		res.err = errors.Wrap(err, "write")
		return res
	}

	if d.NumQubits() > 0 && d.NumQubits() <= a.maxSim {
		a.simulate(res)
	}
	return res
}

// run drives the pass manager, collecting the report when the pipeline's
// last pass can provide one.
func (a *analyzer) run(d *dag.DAGCircuit) (*dag.DAGCircuit, *zxpass.Report, error) {
	passes := a.pm.Passes()
	if len(passes) == 1 {
		if r, ok := passes[0].(reporter); ok {
			out, report, err := r.RunWithReport(d)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "pass %s", passes[0].Name())
			}
			return out, report, nil
		}
	}
	out, err := a.pm.Run(d)
	if err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}

func (a *analyzer) simulate(res *analysis) {
	state, err := sim.Simulate(res.optimized)
	if err != nil {
		a.logger.Debug("simulation skipped", zap.Error(err))
		return
	}
	res.probs = state.GetQubitProbabilities()

	ok, err := sim.Equivalent(res.original, res.optimized, equivalenceTol)
	if err != nil {
		// Measurements and conditions have no unitary to compare.
		if !errors.Is(err, sim.ErrNonUnitary) {
			a.logger.Debug("equivalence check failed", zap.Error(err))
		}
		return
	}
	res.equivalent = &ok
	if !ok {
		a.logger.Warn("optimized circuit is not equivalent to the original")
	}
}
