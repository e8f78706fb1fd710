package dataset

import (
	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
)

// Memory is an in-memory lookup.Provider for fixtures and tests.
type Memory struct {
	FacilityList []model.Facility
	Prices       map[model.Scenario]map[int]float64
	Allowance    map[int]float64
	Intensity    map[model.Technology]map[int]float64
	MAC          map[model.Technology]map[int]float64
}

// CarbonPrice returns the price for year under sc.
func (m *Memory) CarbonPrice(year int, sc model.Scenario) (float64, error) {
	if v, ok := m.Prices[sc][year]; ok {
		return v, nil
	}
	return 0, &lookup.NotFoundError{Table: "carbon_price", Year: year, Key: string(sc)}
}

// AllowanceFraction returns the free allowance share for year.
func (m *Memory) AllowanceFraction(year int) (float64, error) {
	if v, ok := m.Allowance[year]; ok {
		return v, nil
	}
	return 0, &lookup.NotFoundError{Table: "allowance_rate", Year: year}
}

// EmissionIntensity returns the intensity of tech in year.
func (m *Memory) EmissionIntensity(year int, tech model.Technology) (float64, error) {
	if v, ok := m.Intensity[tech][year]; ok {
		return v, nil
	}
	return 0, &lookup.NotFoundError{Table: "tech_emission", Year: year}
}

// AbatementCost returns the marginal abatement cost of tech in year.
func (m *Memory) AbatementCost(year int, tech model.Technology) (float64, error) {
	if v, ok := m.MAC[tech][year]; ok {
		return v, nil
	}
	return 0, &lookup.NotFoundError{Table: "tech_mac", Year: year}
}

// Facilities returns the configured facilities.
func (m *Memory) Facilities() ([]model.Facility, error) {
	return append([]model.Facility(nil), m.FacilityList...), nil
}
