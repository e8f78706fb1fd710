package optimize

import (
	"fmt"
	"math"

	"github.com/induplan/pathopt/core/model"
)

// Config holds the planning parameters of a run. NumTechnologies is an
// optional guard against datasets authored for a different technology set;
// zero leaves it unchecked.
type Config struct {
	StartYear       int              `json:"start_year"`
	EndYear         int              `json:"end_year"`
	DiscountRate    float64          `json:"discount_rate"`
	Scenarios       []model.Scenario `json:"scenarios"`
	NumTechnologies int              `json:"num_technologies"`
}

// Validate checks the run parameters.
func (c Config) Validate() error {
	if c.StartYear <= 0 || c.EndYear <= 0 {
		return fmt.Errorf("plan: years must be positive, got %d..%d", c.StartYear, c.EndYear)
	}
	if c.StartYear > c.EndYear {
		return fmt.Errorf("plan: start year %d after end year %d", c.StartYear, c.EndYear)
	}
	if math.IsNaN(c.DiscountRate) || math.IsInf(c.DiscountRate, 0) || c.DiscountRate < 0 {
		return fmt.Errorf("plan: discount rate must be non-negative, got %v", c.DiscountRate)
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("plan: at least one scenario required")
	}
	if n := model.Technologies().Len(); c.NumTechnologies != 0 && c.NumTechnologies != n {
		return fmt.Errorf("plan: num_technologies is %d, technology set has %d", c.NumTechnologies, n)
	}
	seen := make(map[model.Scenario]struct{}, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if s == "" {
			return fmt.Errorf("plan: empty scenario name")
		}
		if _, ok := seen[s]; ok {
			return fmt.Errorf("plan: duplicate scenario %q", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// Horizon returns the inclusive year range of the plan.
func (c Config) Horizon() model.Horizon {
	return model.Horizon{Start: c.StartYear, End: c.EndYear}
}
