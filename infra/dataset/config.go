package dataset

import "fmt"

// Config locates the CSV dataset on disk.
type Config struct {
	Dir           string `json:"dir"`
	FacilityFile  string `json:"facility_file"`
	CarbonFile    string `json:"carbon_price_file"`
	EmissionFile  string `json:"emission_file"`
	MACFile       string `json:"mac_file"`
	AllowanceFile string `json:"allowance_file"`
}

// SetDefaults fills unset file names with the standard dataset layout.
func (c *Config) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data"
	}
	if c.FacilityFile == "" {
		c.FacilityFile = "facility.csv"
	}
	if c.CarbonFile == "" {
		c.CarbonFile = "carbon_price.csv"
	}
	if c.EmissionFile == "" {
		c.EmissionFile = "tech_emission.csv"
	}
	if c.MACFile == "" {
		c.MACFile = "tech_mac.csv"
	}
	if c.AllowanceFile == "" {
		c.AllowanceFile = "allowance_rate.csv"
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dataset: dir required")
	}
	return nil
}
