package optimize

import (
	"errors"
	"fmt"
	"math"

	"github.com/induplan/pathopt/core/lookup"
	"github.com/induplan/pathopt/core/model"
)

// ErrIncomplete marks a scenario objective aborted by a missing dataset
// entry. The runner treats it as fatal for the whole batch.
var ErrIncomplete = errors.New("incomplete dataset")

func incomplete(sc model.Scenario, year int, err error) error {
	return fmt.Errorf("objective %q year %d: %w: %w", sc, year, ErrIncomplete, err)
}

// Composer prices the model's decision columns under a carbon price
// scenario. The cost of choosing a technology is its carbon cost net of
// free allowances plus the abatement spend relative to the baseline route,
// discounted to the start year.
type Composer struct {
	data lookup.Provider
	m    *Model
	rate float64
}

// NewComposer creates a Composer reading prices and intensities from data.
func NewComposer(data lookup.Provider, m *Model, discountRate float64) *Composer {
	return &Composer{data: data, m: m, rate: discountRate}
}

// Discount returns the factor applied to costs in year.
func (c *Composer) Discount(year int) float64 {
	return 1 / math.Pow(1+c.rate, float64(year-c.m.Horizon.Start))
}

func cellCost(capacity, price, allow, baseIntensity, intensity, mac float64) float64 {
	carbon := capacity * intensity * price
	abatement := capacity * (baseIntensity - intensity) * mac
	return carbon - carbon*allow + abatement
}

// Objective assembles the discounted cost vector for one scenario. A missing
// dataset entry aborts composition with the wrapped lookup error.
func (c *Composer) Objective(sc model.Scenario) ([]float64, error) {
	obj := make([]float64, c.m.Index.Cols())
	techs := c.m.Techs
	for y := c.m.Horizon.Start; y <= c.m.Horizon.End; y++ {
		price, err := c.data.CarbonPrice(y, sc)
		if err != nil {
			return nil, incomplete(sc, y, err)
		}
		allow, err := c.data.AllowanceFraction(y)
		if err != nil {
			return nil, incomplete(sc, y, err)
		}
		base, err := c.data.EmissionIntensity(y, techs.Baseline())
		if err != nil {
			return nil, incomplete(sc, y, err)
		}
		disc := c.Discount(y)
		for t := 0; t < techs.Len(); t++ {
			tech := model.Technology(t)
			emi, err := c.data.EmissionIntensity(y, tech)
			if err != nil {
				return nil, incomplete(sc, y, err)
			}
			mac, err := c.data.AbatementCost(y, tech)
			if err != nil {
				return nil, incomplete(sc, y, err)
			}
			for i, f := range c.m.Facilities {
				obj[c.m.Index.Col(i, tech, y)] = cellCost(f.Capacity, price, allow, base, emi, mac) * disc
			}
		}
	}
	return obj, nil
}

// Coefficient prices a single decision cell. It returns the same value
// Objective writes for that column.
func (c *Composer) Coefficient(facility int, tech model.Technology, year int, sc model.Scenario) (float64, error) {
	if facility < 0 || facility >= len(c.m.Facilities) {
		return 0, fmt.Errorf("coefficient: facility %d out of range", facility)
	}
	if !c.m.Horizon.Contains(year) {
		return 0, fmt.Errorf("coefficient: year %d outside horizon %d..%d", year, c.m.Horizon.Start, c.m.Horizon.End)
	}
	price, err := c.data.CarbonPrice(year, sc)
	if err != nil {
		return 0, incomplete(sc, year, err)
	}
	allow, err := c.data.AllowanceFraction(year)
	if err != nil {
		return 0, incomplete(sc, year, err)
	}
	base, err := c.data.EmissionIntensity(year, c.m.Techs.Baseline())
	if err != nil {
		return 0, incomplete(sc, year, err)
	}
	emi, err := c.data.EmissionIntensity(year, tech)
	if err != nil {
		return 0, incomplete(sc, year, err)
	}
	mac, err := c.data.AbatementCost(year, tech)
	if err != nil {
		return 0, incomplete(sc, year, err)
	}
	f := c.m.Facilities[facility]
	return cellCost(f.Capacity, price, allow, base, emi, mac) * c.Discount(year), nil
}

// EvaluateDecisions prices an existing decision set under sc. It lets
// callers compare a plan across scenarios without re-solving.
func (c *Composer) EvaluateDecisions(dec map[model.FacilityYear]model.Technology, sc model.Scenario) (float64, error) {
	var total float64
	for fy, tech := range dec {
		v, err := c.Coefficient(fy.Facility, tech, fy.Year, sc)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
