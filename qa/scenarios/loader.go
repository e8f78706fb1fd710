// Package scenarios runs YAML-defined planning cases end to end against
// the real model builder and simplex engine.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/infra/dataset"
)

type FacilityDef struct {
	Capacity  float64 `yaml:"capacity"`
	EndOfLife int     `yaml:"end_of_life_year"`
}

type ChoiceDef struct {
	Facility   int    `yaml:"facility"`
	Year       int    `yaml:"year"`
	Technology string `yaml:"technology"`
}

type Expected struct {
	Status    string      `yaml:"status"`
	Objective *float64    `yaml:"objective,omitempty"`
	Choices   []ChoiceDef `yaml:"choices,omitempty"`
}

// Case is one planning fixture: a dataset, a horizon and the plan the
// solver must find for it.
type Case struct {
	Name         string                     `yaml:"name"`
	Description  string                     `yaml:"description,omitempty"`
	StartYear    int                        `yaml:"start_year"`
	EndYear      int                        `yaml:"end_year"`
	DiscountRate float64                    `yaml:"discount_rate"`
	Scenario     string                     `yaml:"scenario"`
	Facilities   []FacilityDef              `yaml:"facilities"`
	Prices       map[int]float64            `yaml:"prices"`
	Allowance    map[int]float64            `yaml:"allowance"`
	Intensity    map[string]map[int]float64 `yaml:"intensity"`
	MAC          map[string]map[int]float64 `yaml:"mac"`
	Expected     Expected                   `yaml:"expected"`
}

func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Provider converts the fixture tables into an in-memory lookup provider,
// resolving technology names against the given set.
func (c *Case) Provider(techs model.TechnologySet) (*dataset.Memory, error) {
	facilities := make([]model.Facility, len(c.Facilities))
	for i, f := range c.Facilities {
		facilities[i] = model.Facility{Capacity: f.Capacity, EndOfLife: f.EndOfLife}
	}
	intensity, err := byTech(c.Intensity, techs)
	if err != nil {
		return nil, fmt.Errorf("intensity: %w", err)
	}
	mac, err := byTech(c.MAC, techs)
	if err != nil {
		return nil, fmt.Errorf("mac: %w", err)
	}
	return &dataset.Memory{
		FacilityList: facilities,
		Prices:       map[model.Scenario]map[int]float64{model.Scenario(c.Scenario): c.Prices},
		Allowance:    c.Allowance,
		Intensity:    intensity,
		MAC:          mac,
	}, nil
}

func byTech(in map[string]map[int]float64, techs model.TechnologySet) (map[model.Technology]map[int]float64, error) {
	out := make(map[model.Technology]map[int]float64, len(in))
	for name, series := range in {
		tech, ok := techs.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown technology %q", name)
		}
		out[tech] = series
	}
	return out, nil
}
