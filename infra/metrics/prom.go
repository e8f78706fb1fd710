package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/induplan/pathopt/core/metrics"
)

// PromSink records solve outcomes in Prometheus metrics.
type PromSink struct {
	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	objective *prometheus.GaugeVec
	emissions *prometheus.GaugeVec
}

// NewPromSink registers planner metrics on the default Prometheus
// registerer. The scrape endpoint is served separately, see StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_scenario_solves_total",
		Help: "Total number of scenario solves",
	}, []string{"scenario", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_solve_duration_seconds",
		Help:    "Time spent solving a scenario",
		Buckets: prometheus.DefBuckets,
	}, []string{"scenario"})
	objective := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_objective_cost",
		Help: "Discounted transition cost of the last solve",
	}, []string{"scenario"})
	emissions := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_emissions_tonnes",
		Help: "Emissions per year of the last solved plan",
	}, []string{"scenario", "year"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(objective); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			objective = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(emissions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			emissions = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{solves: solves, duration: duration, objective: objective, emissions: emissions}, nil
}

// RecordScenarioSolve counts the solve and tracks its duration and cost.
func (s *PromSink) RecordScenarioSolve(ev coremetrics.ScenarioSolve) error {
	sc := string(ev.Scenario)
	s.solves.WithLabelValues(sc, ev.Status.String()).Inc()
	s.duration.WithLabelValues(sc).Observe(ev.Runtime.Seconds())
	if ev.Status.HasObjective() {
		s.objective.WithLabelValues(sc).Set(ev.Objective)
	}
	return nil
}

// RecordEmissionPath exposes the yearly emissions of the last solved plan.
func (s *PromSink) RecordEmissionPath(points []coremetrics.EmissionPoint) error {
	for _, p := range points {
		s.emissions.WithLabelValues(string(p.Scenario), strconv.Itoa(p.Year)).Set(p.Total)
	}
	return nil
}
