package config

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"zxdeck/passmanager"
	"zxdeck/zx"
)

const (
	defaultPlugin = "zxpass"
	defaultLevel  = 2
	maxLevel      = 3
)

type OptimizerConfig struct {
	// Optimization-stage plugin to run
	Plugin string `yaml:"plugin"`
	// Semver constraint the plugin version must satisfy; empty accepts any
	Version string `yaml:"version"`
	// 0 = no rewriting, 1 = cancellation only, 2+ = every rule
	Level *int `yaml:"level"`
	// Explicit rule list; overrides Level
	Rules []string `yaml:"rules"`
	// Upper bound on rewrite sweeps; 0 runs to fixpoint
	MaxRounds int `yaml:"maxRounds"`
	// Number of optimized runs to memoize; 0 disables the cache
	CacheSize int `yaml:"cacheSize"`
}

func (c OptimizerConfig) WithDefaults() OptimizerConfig {
	cpy := c
	if cpy.Plugin == "" {
		cpy.Plugin = defaultPlugin
	}
	if cpy.Level == nil {
		level := defaultLevel
		cpy.Level = &level
	}
	return cpy
}

func (c OptimizerConfig) Validate() error {
	if c.Level != nil && (*c.Level < 0 || *c.Level > maxLevel) {
		return errors.Errorf("optimizer level %d outside 0..%d", *c.Level, maxLevel)
	}
	if len(c.Rules) > 0 {
		if _, err := zx.ParseRules(c.Rules); err != nil {
			return err
		}
	}
	if c.MaxRounds < 0 {
		return errors.Errorf("optimizer maxRounds %d is negative", c.MaxRounds)
	}
	if c.CacheSize < 0 {
		return errors.Errorf("optimizer cacheSize %d is negative", c.CacheSize)
	}
	if c.Version != "" {
		if _, err := semver.NewConstraint(c.Version); err != nil {
			return errors.Wrap(err, "optimizer version")
		}
	}
	return nil
}

// PluginConfig translates the section into the config handed to a stage
// plugin.
func (c OptimizerConfig) PluginConfig(logger *zap.Logger) passmanager.Config {
	cfg := passmanager.Config{
		OptimizationLevel: defaultLevel,
		Options:           make(map[string]string),
		Logger:            logger,
	}
	if c.Level != nil {
		cfg.OptimizationLevel = *c.Level
	}
	if len(c.Rules) > 0 {
		cfg.Options["rules"] = strings.Join(c.Rules, ",")
	}
	if c.MaxRounds > 0 {
		cfg.Options["max_rounds"] = strconv.Itoa(c.MaxRounds)
	}
	if c.CacheSize > 0 {
		cfg.Options["cache_size"] = strconv.Itoa(c.CacheSize)
	}
	return cfg
}

// PassManager looks up the configured plugin in the registry and builds its
// pass manager.
func (c OptimizerConfig) PassManager(r *passmanager.Registry, logger *zap.Logger) (*passmanager.PassManager, *semver.Version, error) {
	plugin, version, err := r.Lookup(passmanager.StageOptimization, c.Plugin, c.Version)
	if err != nil {
		return nil, nil, err
	}
	pm, err := plugin.PassManager(c.PluginConfig(logger))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "plugin %s", c.Plugin)
	}
	return pm, version, nil
}
