package metrics

import (
	"time"

	"github.com/induplan/pathopt/core/model"
)

// ScenarioSolve is the per-scenario record emitted after each solve.
type ScenarioSolve struct {
	RunID      string
	Scenario   model.Scenario
	Status     model.Status
	Objective  float64
	Runtime    time.Duration
	Facilities int
	Variables  int
	Time       time.Time
}

// Sink records solve outcomes for observability purposes.
type Sink interface {
	RecordScenarioSolve(ev ScenarioSolve) error
}

// EmissionPoint is one year of an emission trajectory.
type EmissionPoint struct {
	RunID    string
	Scenario model.Scenario
	Year     int
	Total    float64
	Time     time.Time
}

// EmissionRecorder is implemented by sinks able to record emission
// trajectories.
type EmissionRecorder interface {
	RecordEmissionPath(points []EmissionPoint) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordScenarioSolve(ScenarioSolve) error { return nil }

// Ensure NopSink implements EmissionRecorder.
func (NopSink) RecordEmissionPath([]EmissionPoint) error { return nil }
