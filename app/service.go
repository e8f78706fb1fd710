// Package app assembles the planner from its configuration.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/induplan/pathopt/config"
	"github.com/induplan/pathopt/core/emissions"
	"github.com/induplan/pathopt/core/events"
	"github.com/induplan/pathopt/core/lookup"
	coremetrics "github.com/induplan/pathopt/core/metrics"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/notify"
	"github.com/induplan/pathopt/core/optimize"
	"github.com/induplan/pathopt/infra/dataset"
	"github.com/induplan/pathopt/infra/logger"
	inframetrics "github.com/induplan/pathopt/infra/metrics"
	"github.com/induplan/pathopt/infra/mqtt"
	"github.com/induplan/pathopt/infra/solver"
	"github.com/induplan/pathopt/internal/eventbus"
	"github.com/induplan/pathopt/pkg/export"
)

// Service orchestrates a planning run: dataset, model, engine, sinks and
// exports.
type Service struct {
	cfg       *config.Config
	data      lookup.Provider
	model     *optimize.Model
	runner    *optimize.Runner
	bus       *eventbus.Bus[any]
	sink      coremetrics.Sink
	announcer notify.Publisher
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	techs := model.Technologies()
	tables, err := dataset.Load(cfg.Dataset, techs)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	facilities, err := tables.Facilities()
	if err != nil {
		return nil, fmt.Errorf("facilities: %w", err)
	}
	m, err := optimize.BuildModel(cfg.Plan, facilities, techs, logger.New("builder"))
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	composer := optimize.NewComposer(tables, m, cfg.Plan.DiscountRate)

	engine, err := solver.New(cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New[any]()
	runner := optimize.NewRunner(m, composer, engine, sink, bus, logger.New("runner"))

	svc := &Service{
		cfg:    cfg,
		data:   tables,
		model:  m,
		runner: runner,
		bus:    bus,
		sink:   sink,
		log:    logg,
	}
	if cfg.MQTT.Enabled {
		ann, err := mqtt.NewAnnouncer(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt announcer: %w", err)
		}
		svc.announcer = ann
	}
	return svc, nil
}

// Run solves every configured scenario, writes the artifacts and publishes
// the run summary.
func (s *Service) Run(ctx context.Context) error {
	progress := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.logProgress(progress)
	}()

	if addr := s.cfg.Metrics.ServeAddr; addr != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	batch, err := s.runner.Solve(ctx, s.cfg.Plan.Scenarios)
	s.bus.Unsubscribe(progress)
	<-done
	if err != nil {
		return err
	}

	paths, err := s.emissionPaths(batch)
	if err != nil {
		return err
	}
	s.recordEmissions(batch, paths)
	if err := s.writeArtifacts(batch, paths); err != nil {
		return err
	}

	if s.announcer != nil {
		sum := notify.Summarize(batch.RunID, batch.Scenarios, batch.Results, time.Now())
		if err := s.announcer.PublishRunSummary(ctx, sum); err != nil {
			s.log.Errorf("announce run: %v", err)
		}
	}
	return nil
}

// logProgress mirrors run events into the service log.
func (s *Service) logProgress(ch <-chan any) {
	for e := range ch {
		switch ev := e.(type) {
		case events.ScenarioStarted:
			s.log.Infof("scenario %s: solving", ev.Scenario)
		case events.ScenarioCompleted:
			if ev.Status.HasObjective() {
				s.log.Infof("scenario %s: %s, objective %.2f in %s", ev.Scenario, ev.Status, ev.Objective, ev.Runtime)
			} else {
				s.log.Warnf("scenario %s: %s in %s", ev.Scenario, ev.Status, ev.Runtime)
			}
		case events.RunCompleted:
			s.log.Infof("run %s: %d scenarios in %s", ev.RunID, ev.Scenarios, ev.Elapsed)
		}
	}
}

// emissionPaths derives the yearly emission trajectory of every solved
// scenario.
func (s *Service) emissionPaths(batch *optimize.Batch) (map[model.Scenario][]emissions.YearTotal, error) {
	paths := make(map[model.Scenario][]emissions.YearTotal)
	for _, sc := range batch.Scenarios {
		res := batch.Results[sc]
		if !res.Status.HasObjective() {
			continue
		}
		path, err := emissions.Path(s.data, s.model.Facilities, s.model.Horizon, res)
		if err != nil {
			return nil, fmt.Errorf("emission path %q: %w", sc, err)
		}
		paths[sc] = path
	}
	return paths, nil
}

// recordEmissions forwards trajectories to sinks able to store them.
func (s *Service) recordEmissions(batch *optimize.Batch, paths map[model.Scenario][]emissions.YearTotal) {
	rec, ok := s.sink.(coremetrics.EmissionRecorder)
	if !ok {
		return
	}
	now := time.Now()
	for _, sc := range batch.Scenarios {
		path, ok := paths[sc]
		if !ok {
			continue
		}
		points := make([]coremetrics.EmissionPoint, len(path))
		for i, p := range path {
			points[i] = coremetrics.EmissionPoint{
				RunID:    batch.RunID,
				Scenario: sc,
				Year:     p.Year,
				Total:    p.Total,
				Time:     now,
			}
		}
		if err := rec.RecordEmissionPath(points); err != nil {
			s.log.Errorf("record emissions %q: %v", sc, err)
		}
	}
}

// writeArtifacts renders the batch into the export directory.
func (s *Service) writeArtifacts(batch *optimize.Batch, paths map[model.Scenario][]emissions.YearTotal) error {
	cfg := s.cfg.Export
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("export dir: %w", err)
	}
	techs := s.model.Techs

	for _, sc := range batch.Scenarios {
		res := batch.Results[sc]
		if !res.Status.HasObjective() {
			s.log.Warnf("scenario %s: no plan to export (%s)", sc, res.Status)
			continue
		}
		if cfg.Has("csv") {
			name := fmt.Sprintf("decisions_%s.csv", sc)
			if err := s.writeFile(filepath.Join(cfg.Dir, name), func(f *os.File) error {
				return export.WriteDecisionsCSV(f, res, techs)
			}); err != nil {
				return err
			}
			name = fmt.Sprintf("emission_path_%s.csv", sc)
			if err := s.writeFile(filepath.Join(cfg.Dir, name), func(f *os.File) error {
				return export.WriteEmissionPathCSV(f, paths[sc])
			}); err != nil {
				return err
			}
		}
		if cfg.Has("json") {
			name := fmt.Sprintf("decisions_%s.json", sc)
			if err := s.writeFile(filepath.Join(cfg.Dir, name), func(f *os.File) error {
				return export.WriteDecisionsJSON(f, res, techs)
			}); err != nil {
				return err
			}
		}
	}

	sum := notify.Summarize(batch.RunID, batch.Scenarios, batch.Results, time.Now())
	if cfg.Has("csv") {
		if err := s.writeFile(filepath.Join(cfg.Dir, "npv_results_summary.csv"), func(f *os.File) error {
			return export.WriteSummaryCSV(f, sum)
		}); err != nil {
			return err
		}
		if len(paths) > 0 {
			if err := s.writeFile(filepath.Join(cfg.Dir, "emission_paths.csv"), func(f *os.File) error {
				return export.WriteEmissionTableCSV(f, batch.Scenarios, paths)
			}); err != nil {
				return err
			}
		}
	}
	if cfg.Has("json") {
		if err := s.writeFile(filepath.Join(cfg.Dir, "npv_results_summary.json"), func(f *os.File) error {
			return export.WriteSummaryJSON(f, sum)
		}); err != nil {
			return err
		}
	}
	s.log.Infof("artifacts written to %s", cfg.Dir)
	return nil
}

func (s *Service) writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.announcer != nil {
		return s.announcer.Close()
	}
	return nil
}
