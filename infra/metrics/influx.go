package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/induplan/pathopt/core/metrics"
	"github.com/induplan/pathopt/infra/logger"
)

// InfluxSink writes solve outcomes to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScenarioSolve writes the solve outcome as a line protocol point.
func (s *InfluxSink) RecordScenarioSolve(ev coremetrics.ScenarioSolve) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("scenario_solve").
		AddTag("scenario", string(ev.Scenario)).
		AddTag("status", ev.Status.String()).
		AddTag("run_id", ev.RunID).
		AddField("runtime_ms", round3(ev.Runtime.Seconds()*1000)).
		AddField("facilities", ev.Facilities).
		AddField("variables", ev.Variables)
	if ev.Status.HasObjective() {
		p = p.AddField("objective_cost", round3(ev.Objective))
	}
	p.SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEmissionPath writes one point per year of the trajectory.
func (s *InfluxSink) RecordEmissionPath(points []coremetrics.EmissionPoint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, pt := range points {
		p := write.NewPointWithMeasurement("emission_point").
			AddTag("scenario", string(pt.Scenario)).
			AddTag("year", strconv.Itoa(pt.Year)).
			AddTag("run_id", pt.RunID).
			AddField("total_tonnes", round3(pt.Total)).
			SetTime(pt.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
