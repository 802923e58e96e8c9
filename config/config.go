// Package config loads the zxdeck YAML configuration.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Logger    *LogConfig      `yaml:"logger"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	UI        UIConfig        `yaml:"ui"`
}

type MetricsConfig struct {
	// Address to serve /metrics on; empty disables the endpoint
	ListenAddr string `yaml:"listenAddr"`
}

const defaultMaxSimQubits = 10

type UIConfig struct {
	ShowProbabilities bool `yaml:"showProbabilities"`
	// Circuits wider than this are not simulated in the UI
	MaxSimQubits int `yaml:"maxSimQubits"`
}

func (c UIConfig) WithDefaults() UIConfig {
	cpy := c
	if cpy.MaxSimQubits == 0 {
		cpy.MaxSimQubits = defaultMaxSimQubits
	}
	return cpy
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	cpy.Optimizer = c.Optimizer.WithDefaults()
	cpy.UI = c.UI.WithDefaults()
	if c.Logger != nil {
		l := c.Logger.WithDefaults()
		cpy.Logger = &l
	}
	return cpy
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	return c.Optimizer.Validate()
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
