package export

import "fmt"

// Config controls where and how run artifacts are written.
type Config struct {
	Dir     string   `json:"dir"`
	Formats []string `json:"formats"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "results"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"csv"}
	}
}

// Validate checks the requested formats.
func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("export: dir not set")
	}
	for _, f := range c.Formats {
		switch f {
		case "csv", "json":
		default:
			return fmt.Errorf("export: unknown format %q", f)
		}
	}
	return nil
}

// Has reports whether the given format is requested.
func (c Config) Has(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}
