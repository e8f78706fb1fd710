// Package lookup defines the read side of the planning datasets. The
// optimizer consumes prices, rates and intensities exclusively through the
// Provider interface so that CSV files, in-memory fixtures or future remote
// stores are interchangeable.
package lookup

import (
	"errors"
	"fmt"

	"github.com/induplan/pathopt/core/model"
)

// Provider serves the dataset values the planner needs. Implementations must
// return a NotFoundError for absent entries, never a silent default.
type Provider interface {
	// CarbonPrice returns the carbon price for year under scenario.
	CarbonPrice(year int, scenario model.Scenario) (float64, error)
	// AllowanceFraction returns the share of carbon cost covered by free
	// allowances in year.
	AllowanceFraction(year int) (float64, error)
	// EmissionIntensity returns emissions per unit of capacity for tech in
	// year.
	EmissionIntensity(year int, tech model.Technology) (float64, error)
	// AbatementCost returns the marginal abatement cost for tech in year.
	AbatementCost(year int, tech model.Technology) (float64, error)
	// Facilities returns the facilities in dataset order.
	Facilities() ([]model.Facility, error)
}

// NotFoundError reports a missing dataset entry.
type NotFoundError struct {
	Table string
	Year  int
	Key   string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: no entry for year %d", e.Table, e.Year)
	}
	return fmt.Sprintf("%s: no entry for year %d key %q", e.Table, e.Year, e.Key)
}

// IsNotFound reports whether err wraps a missing dataset entry.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
