// Package dataset loads the planning inputs. The CSV layout mirrors the
// reference datasets: one facility table, one carbon price table with a
// column per scenario, per-technology emission and abatement cost tables
// and a free allowance table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
)

// Tables serves the planner's lookups from CSV files loaded into memory.
type Tables struct {
	techs      model.TechnologySet
	facilities []model.Facility
	prices     map[int]map[model.Scenario]float64
	allowance  map[int]float64
	intensity  map[int][]float64
	mac        map[int][]float64
	scenarios  []model.Scenario
}

// Load reads the dataset files from cfg.Dir. Technology columns are matched
// to the set by name, so column order in the files does not matter.
func Load(cfg Config, techs model.TechnologySet) (*Tables, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if techs.Len() == 0 {
		return nil, fmt.Errorf("dataset: empty technology set")
	}

	facilities, err := loadFacilities(filepath.Join(cfg.Dir, cfg.FacilityFile))
	if err != nil {
		return nil, err
	}
	prices, scenarios, err := loadPrices(filepath.Join(cfg.Dir, cfg.CarbonFile))
	if err != nil {
		return nil, err
	}
	intensity, err := loadTechTable(filepath.Join(cfg.Dir, cfg.EmissionFile), techs)
	if err != nil {
		return nil, err
	}
	mac, err := loadTechTable(filepath.Join(cfg.Dir, cfg.MACFile), techs)
	if err != nil {
		return nil, err
	}
	allowance, err := loadAllowance(filepath.Join(cfg.Dir, cfg.AllowanceFile))
	if err != nil {
		return nil, err
	}

	return &Tables{
		techs:      techs,
		facilities: facilities,
		prices:     prices,
		allowance:  allowance,
		intensity:  intensity,
		mac:        mac,
		scenarios:  scenarios,
	}, nil
}

// CarbonPrice returns the price for year under sc.
func (t *Tables) CarbonPrice(year int, sc model.Scenario) (float64, error) {
	yearly, ok := t.prices[year]
	if !ok {
		return 0, &lookup.NotFoundError{Table: "carbon_price", Year: year, Key: string(sc)}
	}
	v, ok := yearly[sc]
	if !ok {
		return 0, &lookup.NotFoundError{Table: "carbon_price", Year: year, Key: string(sc)}
	}
	return v, nil
}

// AllowanceFraction returns the free allowance share for year.
func (t *Tables) AllowanceFraction(year int) (float64, error) {
	v, ok := t.allowance[year]
	if !ok {
		return 0, &lookup.NotFoundError{Table: "allowance_rate", Year: year}
	}
	return v, nil
}

// EmissionIntensity returns the intensity of tech in year.
func (t *Tables) EmissionIntensity(year int, tech model.Technology) (float64, error) {
	vals, ok := t.intensity[year]
	if !ok || int(tech) < 0 || int(tech) >= len(vals) {
		return 0, &lookup.NotFoundError{Table: "tech_emission", Year: year, Key: t.techs.Name(tech)}
	}
	return vals[tech], nil
}

// AbatementCost returns the marginal abatement cost of tech in year.
func (t *Tables) AbatementCost(year int, tech model.Technology) (float64, error) {
	vals, ok := t.mac[year]
	if !ok || int(tech) < 0 || int(tech) >= len(vals) {
		return 0, &lookup.NotFoundError{Table: "tech_mac", Year: year, Key: t.techs.Name(tech)}
	}
	return vals[tech], nil
}

// Facilities returns the facilities in file order.
func (t *Tables) Facilities() ([]model.Facility, error) {
	return append([]model.Facility(nil), t.facilities...), nil
}

// Scenarios returns the price scenarios present in the dataset, in column
// order.
func (t *Tables) Scenarios() []model.Scenario {
	return append([]model.Scenario(nil), t.scenarios...)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", filepath.Base(path), err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s: no data rows", filepath.Base(path))
	}
	return records, nil
}

func headerIndex(header []string) map[string]int {
	ix := make(map[string]int, len(header))
	for i, h := range header {
		ix[strings.TrimSpace(h)] = i
	}
	return ix
}

func parseFloat(base string, row int, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("dataset %s row %d: %s: %w", base, row, field, err)
	}
	return v, nil
}

func parseYear(base string, row int, s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("dataset %s row %d: year: %w", base, row, err)
	}
	return y, nil
}

func loadFacilities(path string) ([]model.Facility, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	ix := headerIndex(records[0])
	capCol, ok := ix["capacity"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing capacity column", base)
	}
	eolCol, ok := ix["end_of_life_year"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing end_of_life_year column", base)
	}
	out := make([]model.Facility, 0, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2
		capv, err := parseFloat(base, row, "capacity", rec[capCol])
		if err != nil {
			return nil, err
		}
		eol, err := strconv.Atoi(strings.TrimSpace(rec[eolCol]))
		if err != nil {
			return nil, fmt.Errorf("dataset %s row %d: end_of_life_year: %w", base, row, err)
		}
		f := model.Facility{Capacity: capv, EndOfLife: eol}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("dataset %s row %d: %w", base, row, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func loadPrices(path string) (map[int]map[model.Scenario]float64, []model.Scenario, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	base := filepath.Base(path)
	header := records[0]
	if strings.TrimSpace(header[0]) != "year" {
		return nil, nil, fmt.Errorf("dataset %s: first column must be year, got %q", base, header[0])
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("dataset %s: no scenario columns", base)
	}
	scenarios := make([]model.Scenario, 0, len(header)-1)
	for _, h := range header[1:] {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, nil, fmt.Errorf("dataset %s: empty scenario column name", base)
		}
		scenarios = append(scenarios, model.Scenario(name))
	}
	prices := make(map[int]map[model.Scenario]float64, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2
		year, err := parseYear(base, row, rec[0])
		if err != nil {
			return nil, nil, err
		}
		if _, ok := prices[year]; ok {
			return nil, nil, fmt.Errorf("dataset %s: duplicate year %d", base, year)
		}
		yearly := make(map[model.Scenario]float64, len(scenarios))
		for j, sc := range scenarios {
			v, err := parseFloat(base, row, string(sc), rec[j+1])
			if err != nil {
				return nil, nil, err
			}
			yearly[sc] = v
		}
		prices[year] = yearly
	}
	return prices, scenarios, nil
}

func loadTechTable(path string, techs model.TechnologySet) (map[int][]float64, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	ix := headerIndex(records[0])
	if _, ok := ix["year"]; !ok {
		return nil, fmt.Errorf("dataset %s: missing year column", base)
	}
	yearCol := ix["year"]
	cols := make([]int, techs.Len())
	for t, name := range techs.Names() {
		c, ok := ix[name]
		if !ok {
			return nil, fmt.Errorf("dataset %s: missing column %q", base, name)
		}
		cols[t] = c
	}
	out := make(map[int][]float64, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2
		year, err := parseYear(base, row, rec[yearCol])
		if err != nil {
			return nil, err
		}
		if _, ok := out[year]; ok {
			return nil, fmt.Errorf("dataset %s: duplicate year %d", base, year)
		}
		vals := make([]float64, techs.Len())
		for t, c := range cols {
			v, err := parseFloat(base, row, techs.Name(model.Technology(t)), rec[c])
			if err != nil {
				return nil, err
			}
			vals[t] = v
		}
		out[year] = vals
	}
	return out, nil
}

func loadAllowance(path string) (map[int]float64, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	ix := headerIndex(records[0])
	yearCol, ok := ix["year"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing year column", base)
	}
	rateCol, ok := ix["allow_rate"]
	if !ok {
		return nil, fmt.Errorf("dataset %s: missing allow_rate column", base)
	}
	out := make(map[int]float64, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2
		year, err := parseYear(base, row, rec[yearCol])
		if err != nil {
			return nil, err
		}
		if _, ok := out[year]; ok {
			return nil, fmt.Errorf("dataset %s: duplicate year %d", base, year)
		}
		v, err := parseFloat(base, row, "allow_rate", rec[rateCol])
		if err != nil {
			return nil, err
		}
		out[year] = v
	}
	return out, nil
}
