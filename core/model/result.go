package model

import "time"

// Scenario names a carbon price trajectory.
type Scenario string

// Status describes the outcome of one scenario solve.
type Status int

const (
	// StatusNotSolved marks scenarios whose solve failed or never ran.
	StatusNotSolved Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "not_solved"
	}
}

// HasObjective reports whether the status carries a meaningful objective
// value and decision set.
func (s Status) HasObjective() bool { return s == StatusOptimal || s == StatusFeasible }

// FacilityYear addresses one cell of a transition plan.
type FacilityYear struct {
	Facility int
	Year     int
}

// ScenarioResult is the outcome of solving the plan under one carbon price
// trajectory. Objective and Decisions are only populated when the status
// reports an objective.
type ScenarioResult struct {
	Scenario  Scenario
	Status    Status
	Objective float64
	Decisions map[FacilityYear]Technology
	Runtime   time.Duration
}

// Technology returns the technology chosen for facility in year.
func (r ScenarioResult) Technology(facility, year int) (Technology, bool) {
	t, ok := r.Decisions[FacilityYear{Facility: facility, Year: year}]
	return t, ok
}
