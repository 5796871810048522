// Package config loads the pipeline configuration from yaml or json files
// with UGS_ environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gastrade/ugs-auction/core/model"
)

// Config is the full pipeline configuration.
type Config struct {
	Facility model.Facility `json:"facility"`
	Solver   SolverConfig   `json:"solver"`
	Bid      BidConfig      `json:"bid"`
	Output   OutputConfig   `json:"output"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration from path. An empty path yields the
// defaults, still subject to environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides, e.g. UGS_SOLVER__ENGINE=grid.
	if err := k.Load(env.Provider("UGS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ugs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Facility.SetDefaults()
	c.Solver.SetDefaults()
	c.Bid.SetDefaults()
	c.Output.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Facility.Validate(); err != nil {
		return fmt.Errorf("facility: %w", err)
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.Bid.Validate(); err != nil {
		return fmt.Errorf("bid: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
