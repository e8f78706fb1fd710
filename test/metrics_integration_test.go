package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/infra/metrics"
)

func TestMetricsHTTPExposure(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	scenarios := []model.Scenario{"base", "high"}
	rig := newPlannerRig(t, scenarios, sink, nil)
	if _, err := rig.runner.Solve(context.Background(), scenarios); err != nil {
		t.Fatalf("solve: %v", err)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	out := string(body)
	for _, want := range []string{
		`planner_scenario_solves_total{scenario="base",status="optimal"} 1`,
		`planner_scenario_solves_total{scenario="high",status="optimal"} 1`,
		`planner_objective_cost{scenario="base"}`,
		"planner_solve_duration_seconds_count",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}
