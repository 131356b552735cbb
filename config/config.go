// Package config loads and saves simulation settings as YAML
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/atlascore/component"
	"github.com/lixenwraith/atlascore/physics"
)

// Runner holds options for the demo runner
type Runner struct {
	Scenario string `yaml:"scenario"`
	FPS      int    `yaml:"fps"`
	Workers  int    `yaml:"workers"` // <= 0 uses GOMAXPROCS
	Frames   int    `yaml:"frames"`  // Headless frame count
	Headless bool   `yaml:"headless"`
	Sound    bool   `yaml:"sound"`
	Debug    bool   `yaml:"debug"`
}

// Config is the root document
type Config struct {
	Physics     physics.Settings            `yaml:"physics"`
	Environment component.EnvironmentForces `yaml:"environment"`
	Runner      Runner                      `yaml:"runner"`

	// Source is the file Load read, empty when the defaults were used
	Source string `yaml:"-"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Physics:     physics.DefaultSettings(),
		Environment: component.DefaultEnvironment(),
		Runner: Runner{
			Scenario: "pendulum",
			FPS:      60,
			Frames:   600,
		},
	}
}

// Load reads path over the defaults; a missing file yields Default() with an empty Source
// Fields absent from the file keep their default values
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config %s", path)
	}
	cfg.Source = path
	return cfg, nil
}

// Save writes cfg to path, creating parent directories
func Save(path string, cfg Config) error {
	cfg.Source = ""
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create config dir %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// Validate rejects values the runner cannot use
// Solver knobs are not checked here, the pipeline normalizes them
func (c *Config) Validate() error {
	if c.Runner.FPS <= 0 {
		return errors.Errorf("runner.fps must be positive, got %d", c.Runner.FPS)
	}
	if c.Runner.Frames < 0 {
		return errors.Errorf("runner.frames must not be negative, got %d", c.Runner.Frames)
	}
	return nil
}
