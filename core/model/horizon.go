package model

import "fmt"

// Horizon is the inclusive range of years a plan covers.
type Horizon struct {
	Start int `json:"start_year"`
	End   int `json:"end_year"`
}

// Validate checks that the horizon is non-empty.
func (h Horizon) Validate() error {
	if h.Start > h.End {
		return fmt.Errorf("start year %d after end year %d", h.Start, h.End)
	}
	return nil
}

// Years returns the number of years in the horizon.
func (h Horizon) Years() int { return h.End - h.Start + 1 }

// Contains reports whether y falls inside the horizon.
func (h Horizon) Contains(y int) bool { return y >= h.Start && y <= h.End }

// Offset returns the zero-based position of y relative to the start year.
func (h Horizon) Offset(y int) int { return y - h.Start }
