// Package export renders solved plans as CSV and JSON artifacts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/induplan/pathopt/core/emissions"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/notify"
)

// Decision is one facility-year choice of a solved plan.
type Decision struct {
	Facility   int    `json:"facility"`
	Year       int    `json:"year"`
	Technology string `json:"technology"`
}

// Decisions flattens a result into rows ordered by facility then year.
func Decisions(res model.ScenarioResult, techs model.TechnologySet) []Decision {
	rows := make([]Decision, 0, len(res.Decisions))
	for fy, tech := range res.Decisions {
		rows = append(rows, Decision{Facility: fy.Facility, Year: fy.Year, Technology: techs.Name(tech)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Facility != rows[j].Facility {
			return rows[i].Facility < rows[j].Facility
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// WriteDecisionsCSV writes the chosen technology per facility and year.
func WriteDecisionsCSV(w io.Writer, res model.ScenarioResult, techs model.TechnologySet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"facility", "year", "technology"}); err != nil {
		return err
	}
	for _, d := range Decisions(res, techs) {
		rec := []string{strconv.Itoa(d.Facility), strconv.Itoa(d.Year), d.Technology}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDecisionsJSON writes the decisions to w in JSON format.
func WriteDecisionsJSON(w io.Writer, res model.ScenarioResult, techs model.TechnologySet) error {
	enc := json.NewEncoder(w)
	return enc.Encode(Decisions(res, techs))
}

// WriteEmissionPathCSV writes one emission trajectory.
func WriteEmissionPathCSV(w io.Writer, path []emissions.YearTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "total_emissions"}); err != nil {
		return err
	}
	for _, p := range path {
		rec := []string{strconv.Itoa(p.Year), strconv.FormatFloat(p.Total, 'f', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEmissionTableCSV writes the trajectories of several scenarios side by
// side, one column per scenario. Years missing from a scenario are left
// blank.
func WriteEmissionTableCSV(w io.Writer, order []model.Scenario, paths map[model.Scenario][]emissions.YearTotal) error {
	byYear := make(map[int]map[model.Scenario]float64)
	for sc, path := range paths {
		for _, p := range path {
			if byYear[p.Year] == nil {
				byYear[p.Year] = make(map[model.Scenario]float64)
			}
			byYear[p.Year][sc] = p.Total
		}
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(order)+1)
	header = append(header, "year")
	for _, sc := range order {
		header = append(header, string(sc))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, y := range years {
		rec := make([]string, 0, len(order)+1)
		rec = append(rec, strconv.Itoa(y))
		for _, sc := range order {
			if v, ok := byYear[y][sc]; ok {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one line per scenario of a run summary. The
// objective column stays blank for scenarios without one.
func WriteSummaryCSV(w io.Writer, sum notify.RunSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scenario", "status", "objective_value"}); err != nil {
		return err
	}
	for _, sc := range sum.Scenarios {
		obj := ""
		if sc.Objective != nil {
			obj = strconv.FormatFloat(*sc.Objective, 'f', -1, 64)
		}
		rec := []string{string(sc.Scenario), sc.Status, obj}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryJSON writes the run summary to w in JSON format.
func WriteSummaryJSON(w io.Writer, sum notify.RunSummary) error {
	enc := json.NewEncoder(w)
	return enc.Encode(sum)
}
