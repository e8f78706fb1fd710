package solver

import (
	"fmt"
	"math"

	coresolver "github.com/induplan/pathopt/core/solver"
)

// Config selects and tunes the LP engine.
type Config struct {
	Engine    string  `json:"engine"`
	Tolerance float64 `json:"tolerance"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Engine == "" {
		c.Engine = "simplex"
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-7
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Engine == "" {
		return fmt.Errorf("solver: engine not set")
	}
	if math.IsNaN(c.Tolerance) || c.Tolerance <= 0 || c.Tolerance >= 1e-2 {
		return fmt.Errorf("solver: tolerance out of range: %v", c.Tolerance)
	}
	return nil
}

// New builds the engine named by the configuration.
func New(cfg Config) (coresolver.Solver, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Engine {
	case "simplex":
		return NewSimplex(cfg.Tolerance), nil
	default:
		return nil, fmt.Errorf("solver: unknown engine %q", cfg.Engine)
	}
}
