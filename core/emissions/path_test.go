package emissions

import (
	"math"
	"testing"

	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
)

type intensityData struct {
	intensity map[model.Technology]map[int]float64
}

func (d *intensityData) CarbonPrice(int, model.Scenario) (float64, error) { return 0, nil }
func (d *intensityData) AllowanceFraction(int) (float64, error)           { return 0, nil }
func (d *intensityData) AbatementCost(int, model.Technology) (float64, error) {
	return 0, nil
}
func (d *intensityData) Facilities() ([]model.Facility, error) { return nil, nil }

func (d *intensityData) EmissionIntensity(year int, tech model.Technology) (float64, error) {
	if v, ok := d.intensity[tech][year]; ok {
		return v, nil
	}
	return 0, &lookup.NotFoundError{Table: "tech_emission", Year: year}
}

func TestPath(t *testing.T) {
	techs := model.Technologies()
	base := techs.Baseline()
	lc := techs.LowCarbon()
	data := &intensityData{intensity: map[model.Technology]map[int]float64{
		base: {2024: 2.0, 2025: 2.0},
		lc:   {2024: 0.1, 2025: 0.1},
	}}
	facilities := []model.Facility{
		{Capacity: 100, EndOfLife: 2025},
		{Capacity: 50, EndOfLife: 2040},
	}
	h := model.Horizon{Start: 2024, End: 2025}
	res := model.ScenarioResult{
		Scenario: "base",
		Status:   model.StatusOptimal,
		Decisions: map[model.FacilityYear]model.Technology{
			{Facility: 0, Year: 2024}: base,
			{Facility: 1, Year: 2024}: base,
			{Facility: 0, Year: 2025}: lc,
			{Facility: 1, Year: 2025}: base,
		},
	}
	path, err := Path(data, facilities, h, res)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("path length: %d", len(path))
	}
	if path[0].Year != 2024 || math.Abs(path[0].Total-300) > 1e-9 {
		t.Errorf("2024: %+v", path[0])
	}
	if path[1].Year != 2025 || math.Abs(path[1].Total-110) > 1e-9 {
		t.Errorf("2025: %+v", path[1])
	}
}

func TestPathRequiresDecisions(t *testing.T) {
	data := &intensityData{}
	h := model.Horizon{Start: 2024, End: 2024}
	facilities := []model.Facility{{Capacity: 1, EndOfLife: 2030}}

	res := model.ScenarioResult{Scenario: "base", Status: model.StatusInfeasible}
	if _, err := Path(data, facilities, h, res); err == nil {
		t.Error("expected error for infeasible result")
	}

	res = model.ScenarioResult{Scenario: "base", Status: model.StatusOptimal}
	if _, err := Path(data, facilities, h, res); err == nil {
		t.Error("expected error for missing decisions")
	}
}

func TestPathMissingIntensity(t *testing.T) {
	techs := model.Technologies()
	data := &intensityData{intensity: map[model.Technology]map[int]float64{}}
	h := model.Horizon{Start: 2024, End: 2024}
	facilities := []model.Facility{{Capacity: 1, EndOfLife: 2030}}
	res := model.ScenarioResult{
		Scenario: "base",
		Status:   model.StatusOptimal,
		Decisions: map[model.FacilityYear]model.Technology{
			{Facility: 0, Year: 2024}: techs.Baseline(),
		},
	}
	_, err := Path(data, facilities, h, res)
	if err == nil {
		t.Fatal("expected missing intensity error")
	}
	if !lookup.IsNotFound(err) {
		t.Fatalf("error does not wrap NotFoundError: %v", err)
	}
}
