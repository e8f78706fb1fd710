package metrics

import "github.com/induplan/pathopt/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// ServeAddr exposes the Prometheus scrape endpoint when non-empty,
	// for example ":9090".
	ServeAddr string `json:"serve_addr"`
}
