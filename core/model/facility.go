package model

import (
	"fmt"
	"math"
)

// Facility is one production site in the plan. Facilities are identified by
// their row position in the input dataset.
type Facility struct {
	Capacity  float64 `json:"capacity"`
	EndOfLife int     `json:"end_of_life_year"`
}

// Validate checks the physical plausibility of the record.
func (f Facility) Validate() error {
	if math.IsNaN(f.Capacity) || math.IsInf(f.Capacity, 0) || f.Capacity <= 0 {
		return fmt.Errorf("capacity must be a positive finite number, got %v", f.Capacity)
	}
	if f.EndOfLife <= 0 {
		return fmt.Errorf("end of life year must be positive, got %d", f.EndOfLife)
	}
	return nil
}
