// Package notify defines the run summary published to external consumers
// once a batch finishes.
package notify

import (
	"context"
	"time"

	"github.com/induplan/pathopt/core/model"
)

// ScenarioSummary is one scenario line of a run summary. Objective is nil
// when the status does not report one.
type ScenarioSummary struct {
	Scenario  model.Scenario `json:"scenario"`
	Status    string         `json:"status"`
	Objective *float64       `json:"objective,omitempty"`
}

// RunSummary describes a completed run.
type RunSummary struct {
	RunID       string            `json:"run_id"`
	CompletedAt time.Time         `json:"completed_at"`
	Scenarios   []ScenarioSummary `json:"scenarios"`
}

// Publisher delivers run summaries to an external channel such as an MQTT
// topic.
type Publisher interface {
	PublishRunSummary(ctx context.Context, s RunSummary) error
	Close() error
}

// Summarize converts a result set into a summary, keeping the given
// scenario order.
func Summarize(runID string, order []model.Scenario, results map[model.Scenario]model.ScenarioResult, at time.Time) RunSummary {
	sum := RunSummary{RunID: runID, CompletedAt: at}
	for _, sc := range order {
		res := results[sc]
		line := ScenarioSummary{Scenario: sc, Status: res.Status.String()}
		if res.Status.HasObjective() {
			v := res.Objective
			line.Objective = &v
		}
		sum.Scenarios = append(sum.Scenarios, line)
	}
	return sum
}
