package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dusk-indust/compose/internal/expand"
	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/validate"
	"gopkg.in/yaml.v3"
)

// DefaultConcurrency bounds how many compositions a batch run processes at
// once.
const DefaultConcurrency = 4

// ProjectConfig holds pipeline settings loaded from compose.yml.
type ProjectConfig struct {
	GridUnit      float64           `yaml:"gridUnit,omitempty"`
	MinOperations int               `yaml:"minOperations,omitempty"`
	PassThreshold int               `yaml:"passThreshold,omitempty"`
	Weights       *validate.Weights `yaml:"weights,omitempty"`
	Concurrency   int               `yaml:"concurrency,omitempty"`
	SkipExpansion bool              `yaml:"skipExpansion,omitempty"`
	SkipLayout    bool              `yaml:"skipLayout,omitempty"`
	Verbose       bool              `yaml:"verbose,omitempty"`
}

// Load attempts to read compose.yml or compose.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"compose.yml", "compose.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Validate rejects values that cannot be defaulted sensibly.
func (c *ProjectConfig) Validate() error {
	if c.GridUnit < 0 || c.GridUnit > 0.5 {
		return fmt.Errorf("gridUnit must be in (0, 0.5], got %g", c.GridUnit)
	}
	if c.MinOperations < 0 {
		return fmt.Errorf("minOperations must not be negative, got %d", c.MinOperations)
	}
	if c.PassThreshold < 0 || c.PassThreshold > 100 {
		return fmt.Errorf("passThreshold must be in [0, 100], got %d", c.PassThreshold)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Unit returns the grid unit, defaulting to 0.05.
func (c *ProjectConfig) Unit() float64 {
	if c.GridUnit == 0 {
		return grid.DefaultUnit
	}
	return c.GridUnit
}

// MinOps returns the expansion threshold, defaulting to 25.
func (c *ProjectConfig) MinOps() int {
	if c.MinOperations == 0 {
		return expand.DefaultMinOperations
	}
	return c.MinOperations
}

// Threshold returns the passing score, defaulting to 70.
func (c *ProjectConfig) Threshold() int {
	if c.PassThreshold == 0 {
		return validate.DefaultPassThreshold
	}
	return c.PassThreshold
}

// ScoreWeights returns the configured weights or the defaults.
func (c *ProjectConfig) ScoreWeights() validate.Weights {
	if c.Weights == nil {
		return validate.DefaultWeights
	}
	return *c.Weights
}

// Workers returns the batch concurrency, defaulting to 4.
func (c *ProjectConfig) Workers() int {
	if c.Concurrency == 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}
