package zxpass

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"zxdeck/passmanager"
	"zxdeck/zx"
)

const (
	PluginName    = "zxpass"
	PluginVersion = "1.0.0"
)

// Plugin exposes the pass as an optimization-stage plugin.
//
// Optimization level 0 uses the identity optimizer, level 1 only cancels
// inverse pairs and drops trivial rotations, and higher levels run every
// rule. The zero Config is level 0, so a host that never sets a level gets
// the pass's segmentation and reconstruction with no rewriting; ask for
// level 2 or higher to fully reduce.
//
// Options: "rules" (comma-separated rule names, overrides the level),
// "max_rounds", and "cache_size" (memoize optimizer results).
type Plugin struct{}

func (Plugin) PassManager(cfg passmanager.Config) (*passmanager.PassManager, error) {
	opt, err := optimizerFor(cfg)
	if err != nil {
		return nil, err
	}
	pass := New(WithOptimizer(opt), WithLogger(cfg.Logger))
	return passmanager.New(cfg.Logger, pass), nil
}

// LevelRules returns the rewrite rules an optimization level enables.
func LevelRules(level int) zx.Rule {
	switch {
	case level <= 0:
		return 0
	case level == 1:
		return zx.RuleCancelInverses | zx.RuleDropIdentity
	}
	return zx.AllRules
}

func optimizerFor(cfg passmanager.Config) (zx.Optimizer, error) {
	opts := zx.SimplifyOptions{Rules: LevelRules(cfg.OptimizationLevel)}

	if v := cfg.Options["rules"]; v != "" {
		rules, err := zx.ParseRules(strings.Split(v, ","))
		if err != nil {
			return nil, err
		}
		opts.Rules = rules
	}
	if v := cfg.Options["max_rounds"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Errorf("zxpass: bad max_rounds %q", v)
		}
		opts.MaxRounds = n
	}

	var opt zx.Optimizer = zx.Identity
	if opts.Rules != 0 {
		opt = zx.Reduce(opts)
	}
	if v := cfg.Options["cache_size"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Errorf("zxpass: bad cache_size %q", v)
		}
		if n > 0 {
			return zx.NewCachedOptimizer(opt, n)
		}
	}
	return opt, nil
}

func init() {
	if err := passmanager.Register(passmanager.StageOptimization, PluginName, PluginVersion, Plugin{}); err != nil {
		panic(err)
	}
}
