// Package config loads the planner configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/induplan/pathopt/core/metrics"
	"github.com/induplan/pathopt/core/optimize"
	"github.com/induplan/pathopt/infra/dataset"
	"github.com/induplan/pathopt/infra/mqtt"
	"github.com/induplan/pathopt/infra/solver"
	"github.com/induplan/pathopt/pkg/export"
)

type Config struct {
	Plan    optimize.Config    `json:"plan"`
	Dataset dataset.Config     `json:"dataset"`
	Solver  solver.Config      `json:"solver"`
	Metrics coremetrics.Config `json:"metrics"`
	Export  export.Config      `json:"export"`
	MQTT    mqtt.Config        `json:"mqtt"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PATHOPT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pathopt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dataset.SetDefaults()
	cfg.Solver.SetDefaults()
	cfg.Export.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Dataset.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
