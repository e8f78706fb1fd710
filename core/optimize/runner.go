package optimize

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/induplan/pathopt/core/events"
	"github.com/induplan/pathopt/core/logger"
	"github.com/induplan/pathopt/core/metrics"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/solver"
	"github.com/induplan/pathopt/internal/eventbus"
)

// binaryTol is the largest distance from 1 a relaxed binary value may have
// to count as active during decision extraction.
const binaryTol = 1e-6

// Batch collects the results of one run across all scenarios.
type Batch struct {
	RunID     string
	Scenarios []model.Scenario
	Results   map[model.Scenario]model.ScenarioResult
	Started   time.Time
	Elapsed   time.Duration
}

// Runner solves the plan template once per scenario.
type Runner struct {
	model    *Model
	composer *Composer
	engine   solver.Solver
	sink     metrics.Sink
	bus      *eventbus.Bus[any]
	log      logger.Logger
}

// NewRunner wires a runner. sink, bus and logg may be nil.
func NewRunner(m *Model, c *Composer, engine solver.Solver, sink metrics.Sink, bus *eventbus.Bus[any], logg logger.Logger) *Runner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if logg == nil {
		logg = logger.NopLogger{}
	}
	return &Runner{model: m, composer: c, engine: engine, sink: sink, bus: bus, log: logg}
}

// Solve runs every scenario in order against the shared template. Scenario
// infeasibility and engine failures become per-scenario statuses; a missing
// dataset entry aborts the whole run.
func (r *Runner) Solve(ctx context.Context, scenarios []model.Scenario) (*Batch, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("solve: no scenarios")
	}
	batch := &Batch{
		RunID:     uuid.NewString(),
		Scenarios: append([]model.Scenario(nil), scenarios...),
		Results:   make(map[model.Scenario]model.ScenarioResult, len(scenarios)),
		Started:   time.Now(),
	}
	r.log.Infof("run %s: %d scenarios over %d columns, %d rows",
		batch.RunID, len(scenarios), r.model.Cols(), r.model.Rows())

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solve: %w", err)
		}
		r.publish(events.ScenarioStarted{RunID: batch.RunID, Scenario: sc})
		obj, err := r.composer.Objective(sc)
		if err != nil {
			return nil, err
		}
		res := r.solveScenario(ctx, sc, obj)
		batch.Results[sc] = res
		r.record(batch.RunID, res)
		r.publish(events.ScenarioCompleted{
			RunID:     batch.RunID,
			Scenario:  sc,
			Status:    res.Status,
			Objective: res.Objective,
			Runtime:   res.Runtime,
		})
	}

	batch.Elapsed = time.Since(batch.Started)
	r.publish(events.RunCompleted{RunID: batch.RunID, Scenarios: len(scenarios), Elapsed: batch.Elapsed})
	r.log.Infof("run %s completed in %s", batch.RunID, batch.Elapsed)
	return batch, nil
}

func (r *Runner) solveScenario(ctx context.Context, sc model.Scenario, obj []float64) model.ScenarioResult {
	start := time.Now()
	sol, err := r.engine.Solve(ctx, r.model.Problem(obj))
	elapsed := time.Since(start)
	res := model.ScenarioResult{Scenario: sc, Status: model.StatusNotSolved, Runtime: elapsed}
	if err != nil {
		r.log.Errorf("scenario %s: engine: %v", sc, err)
		return res
	}
	switch {
	case sol.Status == model.StatusInfeasible:
		res.Status = model.StatusInfeasible
		r.log.Warnf("scenario %s: infeasible", sc)
	case sol.Status.HasObjective():
		dec, err := r.extract(sol.Values)
		if err != nil {
			r.log.Errorf("scenario %s: extract: %v", sc, err)
			return res
		}
		res.Status = sol.Status
		res.Objective = sol.Objective
		res.Decisions = dec
		r.log.Infof("scenario %s: %s, objective %.4f in %s", sc, sol.Status, sol.Objective, elapsed)
	default:
		r.log.Errorf("scenario %s: engine returned status %s without error", sc, sol.Status)
	}
	return res
}

// extract reads the chosen technology for every facility-year pair from the
// solution vector, requiring exactly one active column per pair.
func (r *Runner) extract(values []float64) (map[model.FacilityYear]model.Technology, error) {
	ix := r.model.Index
	if len(values) != ix.Cols() {
		return nil, fmt.Errorf("solution has %d values for %d columns", len(values), ix.Cols())
	}
	dec := make(map[model.FacilityYear]model.Technology, len(r.model.Facilities)*r.model.Horizon.Years())
	for i := range r.model.Facilities {
		for y := r.model.Horizon.Start; y <= r.model.Horizon.End; y++ {
			chosen := model.Technology(-1)
			for t := 0; t < r.model.Techs.Len(); t++ {
				v := values[ix.Col(i, model.Technology(t), y)]
				if v < 1-binaryTol {
					continue
				}
				if chosen >= 0 {
					return nil, fmt.Errorf("facility %d year %d: multiple active technologies", i, y)
				}
				chosen = model.Technology(t)
			}
			if chosen < 0 {
				return nil, fmt.Errorf("facility %d year %d: no active technology", i, y)
			}
			dec[model.FacilityYear{Facility: i, Year: y}] = chosen
		}
	}
	return dec, nil
}

func (r *Runner) record(runID string, res model.ScenarioResult) {
	ev := metrics.ScenarioSolve{
		RunID:      runID,
		Scenario:   res.Scenario,
		Status:     res.Status,
		Objective:  res.Objective,
		Runtime:    res.Runtime,
		Facilities: len(r.model.Facilities),
		Variables:  r.model.Cols(),
		Time:       time.Now(),
	}
	if err := r.sink.RecordScenarioSolve(ev); err != nil {
		r.log.Warnf("metrics: %v", err)
	}
}

func (r *Runner) publish(e any) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}
