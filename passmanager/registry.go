package passmanager

import (
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrPluginNotFound  = errors.New("stage plugin not found")
	ErrDuplicatePlugin = errors.New("stage plugin already registered")
)

// Stage names a point in the transpilation pipeline.
type Stage string

const (
	StageInit         Stage = "init"
	StageLayout       Stage = "layout"
	StageRouting      Stage = "routing"
	StageTranslation  Stage = "translation"
	StageOptimization Stage = "optimization"
	StageScheduling   Stage = "scheduling"
)

// Config is handed to a plugin when it builds its pass manager.
type Config struct {
	OptimizationLevel int
	Options           map[string]string
	Logger            *zap.Logger
}

// StagePlugin builds the passes for one stage.
type StagePlugin interface {
	PassManager(cfg Config) (*PassManager, error)
}

// PluginInfo describes a registered plugin.
type PluginInfo struct {
	Stage   Stage
	Name    string
	Version *semver.Version
}

type registration struct {
	version *semver.Version
	plugin  StagePlugin
}

type key struct {
	stage Stage
	name  string
}

// Registry maps (stage, name) to plugins, several versions each.
type Registry struct {
	mu      sync.RWMutex
	plugins map[key][]registration
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[key][]registration)}
}

// Default is the process-wide registry plugins add themselves to at init.
var Default = NewRegistry()

// Register adds a plugin under stage and name at the given version.
func (r *Registry) Register(stage Stage, name, version string, p StagePlugin) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(err, "plugin %s/%s", stage, name)
	}
	k := key{stage, strings.ToLower(name)}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.plugins[k] {
		if reg.version.Equal(v) {
			return errors.Wrapf(ErrDuplicatePlugin, "%s/%s@%s", stage, name, v)
		}
	}
	regs := append(r.plugins[k], registration{version: v, plugin: p})
	slices.SortFunc(regs, func(a, b registration) int { return b.version.Compare(a.version) })
	r.plugins[k] = regs
	return nil
}

// Lookup returns the newest plugin whose version satisfies constraint. An
// empty constraint accepts any version.
func (r *Registry) Lookup(stage Stage, name, constraint string) (StagePlugin, *semver.Version, error) {
	var c *semver.Constraints
	if constraint != "" {
		cc, err := semver.NewConstraint(constraint)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "plugin %s/%s", stage, name)
		}
		c = cc
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	regs, ok := r.plugins[key{stage, strings.ToLower(name)}]
	if !ok {
		return nil, nil, errors.Wrapf(ErrPluginNotFound, "%s/%s", stage, name)
	}
	for _, reg := range regs {
		if c == nil || c.Check(reg.version) {
			return reg.plugin, reg.version, nil
		}
	}
	return nil, nil, errors.Wrapf(ErrPluginNotFound, "%s/%s matching %q", stage, name, constraint)
}

// Plugins lists the plugins registered for a stage, sorted by name and
// then newest version first.
func (r *Registry) Plugins(stage Stage) []PluginInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []PluginInfo
	for k, regs := range r.plugins {
		if k.stage != stage {
			continue
		}
		for _, reg := range regs {
			out = append(out, PluginInfo{Stage: stage, Name: k.name, Version: reg.version})
		}
	}
	slices.SortFunc(out, func(a, b PluginInfo) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return b.Version.Compare(a.Version)
	})
	return out
}

// Register adds a plugin to the Default registry.
func Register(stage Stage, name, version string, p StagePlugin) error {
	return Default.Register(stage, name, version, p)
}
