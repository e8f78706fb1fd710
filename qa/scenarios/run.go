package scenarios

import (
	"context"
	"math"
	"testing"

	"github.com/induplan/pathopt/core/logger"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/optimize"
	"github.com/induplan/pathopt/infra/solver"
)

// RunCase solves the fixture with the real builder and engine and checks
// the outcome against its expectations.
func RunCase(t *testing.T, c *Case) {
	techs := model.Technologies()
	data, err := c.Provider(techs)
	if err != nil {
		t.Fatalf("case %s: provider: %v", c.Name, err)
	}
	facilities, err := data.Facilities()
	if err != nil {
		t.Fatalf("case %s: facilities: %v", c.Name, err)
	}

	sc := model.Scenario(c.Scenario)
	cfg := optimize.Config{
		StartYear:    c.StartYear,
		EndYear:      c.EndYear,
		DiscountRate: c.DiscountRate,
		Scenarios:    []model.Scenario{sc},
	}
	m, err := optimize.BuildModel(cfg, facilities, techs, logger.NopLogger{})
	if err != nil {
		t.Fatalf("case %s: build: %v", c.Name, err)
	}
	composer := optimize.NewComposer(data, m, cfg.DiscountRate)
	runner := optimize.NewRunner(m, composer, solver.NewSimplex(0), nil, nil, logger.NopLogger{})

	batch, err := runner.Solve(context.Background(), cfg.Scenarios)
	if err != nil {
		t.Fatalf("case %s: solve: %v", c.Name, err)
	}
	res := batch.Results[sc]

	if res.Status.String() != c.Expected.Status {
		t.Errorf("case %s: status %s, want %s", c.Name, res.Status, c.Expected.Status)
	}
	if c.Expected.Objective != nil {
		if math.Abs(res.Objective-*c.Expected.Objective) > 1e-6 {
			t.Errorf("case %s: objective %v, want %v", c.Name, res.Objective, *c.Expected.Objective)
		}
	}
	for _, choice := range c.Expected.Choices {
		want, ok := techs.Lookup(choice.Technology)
		if !ok {
			t.Fatalf("case %s: unknown expected technology %q", c.Name, choice.Technology)
		}
		got, ok := res.Technology(choice.Facility, choice.Year)
		if !ok {
			t.Errorf("case %s: no decision for facility %d year %d", c.Name, choice.Facility, choice.Year)
			continue
		}
		if got != want {
			t.Errorf("case %s: facility %d year %d chose %s, want %s",
				c.Name, choice.Facility, choice.Year, techs.Name(got), choice.Technology)
		}
	}
}
