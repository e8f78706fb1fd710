// Package events defines the progress events the runner publishes on the
// run bus. Subscribers receive them as plain values and type-switch on the
// concrete event.
package events

import (
	"time"

	"github.com/induplan/pathopt/core/model"
)

// ScenarioStarted is published when the runner begins a scenario solve.
type ScenarioStarted struct {
	RunID    string
	Scenario model.Scenario
}

// ScenarioCompleted is published after a scenario solve finishes, whatever
// its status.
type ScenarioCompleted struct {
	RunID     string
	Scenario  model.Scenario
	Status    model.Status
	Objective float64
	Runtime   time.Duration
}

// RunCompleted is published once after the last scenario.
type RunCompleted struct {
	RunID     string
	Scenarios int
	Elapsed   time.Duration
}
