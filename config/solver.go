package config

import (
	"fmt"
	"time"

	"github.com/gastrade/ugs-auction/core/optimizer"
)

// SolverConfig tunes the optimization engine.
type SolverConfig struct {
	// Engine selects the solve strategy: "simplex" or "grid".
	Engine string `json:"engine"`
	// TimeoutSeconds bounds the solve; zero disables the limit.
	TimeoutSeconds int `json:"timeout_seconds"`
	// MaxNodes bounds the branch-and-bound search; zero keeps the engine
	// default.
	MaxNodes int `json:"max_nodes"`
	// Tolerance is the simplex convergence tolerance; zero keeps the engine
	// default.
	Tolerance float64 `json:"tolerance"`
	// GridSteps sets the storage discretization of the grid engine; zero
	// keeps the engine default.
	GridSteps int `json:"grid_steps"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Engine == "" {
		c.Engine = optimizer.EngineSimplex
	}
}

// Validate checks the engine name and numeric ranges.
func (c SolverConfig) Validate() error {
	if c.Engine != optimizer.EngineSimplex && c.Engine != optimizer.EngineGrid {
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.TimeoutSeconds < 0 || c.MaxNodes < 0 || c.GridSteps < 0 {
		return fmt.Errorf("timeout, node and grid limits must be non-negative")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	return nil
}

// Options translates the section into engine options.
func (c SolverConfig) Options() optimizer.Options {
	return optimizer.Options{
		Engine:    c.Engine,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
		MaxNodes:  c.MaxNodes,
		Tolerance: c.Tolerance,
		GridSteps: c.GridSteps,
	}
}
