// Package emissions derives emission trajectories from solved plans.
package emissions

import (
	"fmt"

	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
)

// YearTotal is the summed emissions of all facilities in one year.
type YearTotal struct {
	Year  int
	Total float64
}

// Path computes the yearly emission trajectory implied by a solved result:
// for every year, the sum over facilities of capacity times the intensity
// of the chosen technology. The result must carry decisions.
func Path(data lookup.Provider, facilities []model.Facility, h model.Horizon, res model.ScenarioResult) ([]YearTotal, error) {
	if !res.Status.HasObjective() {
		return nil, fmt.Errorf("emissions: scenario %s has status %s", res.Scenario, res.Status)
	}
	path := make([]YearTotal, 0, h.Years())
	for y := h.Start; y <= h.End; y++ {
		var total float64
		for i, f := range facilities {
			tech, ok := res.Technology(i, y)
			if !ok {
				return nil, fmt.Errorf("emissions: no decision for facility %d in %d", i, y)
			}
			emi, err := data.EmissionIntensity(y, tech)
			if err != nil {
				return nil, fmt.Errorf("emissions year %d: %w", y, err)
			}
			total += f.Capacity * emi
		}
		path = append(path, YearTotal{Year: y, Total: total})
	}
	return path, nil
}
