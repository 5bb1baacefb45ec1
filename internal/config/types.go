// Package config loads leapmeta configuration from defaults, leapmeta.yaml,
// LEAPMETA_* environment variables and command-line flags.
package config

import (
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/model"
)

// Config holds all configuration options.
type Config struct {
	StatePath  string           `koanf:"state_path"`
	Output     string           `koanf:"output"`
	Verbose    bool             `koanf:"verbose"`
	Validation ValidationConfig `koanf:"validation"`
	Model      ModelConfig      `koanf:"model"`
	Defaults   DefaultsConfig   `koanf:"defaults"`
}

// ValidationConfig holds the validation policy.
type ValidationConfig struct {
	Strict       bool `koanf:"strict"`
	Orphans      bool `koanf:"orphans"`
	SkipServices bool `koanf:"skip_services"`
}

// ModelConfig selects and tunes contributors and refiners.
type ModelConfig struct {
	DisabledContributors []string                  `koanf:"disabled_contributors"`
	DisabledRefiners     []string                  `koanf:"disabled_refiners"`
	SeverityOverrides    map[string]string         `koanf:"severity_overrides"`
	Options              map[string]map[string]any `koanf:"options"`
}

// DefaultsConfig holds the values behind fallback facets.
type DefaultsConfig struct {
	MaxLength int `koanf:"max_length"`
	PageSize  int `koanf:"page_size"`
}

// ProgrammingModel converts the configuration into model settings.
func (c *Config) ProgrammingModel() (model.Config, error) {
	sev := make(map[string]core.Severity, len(c.Model.SeverityOverrides))
	for id, s := range c.Model.SeverityOverrides {
		parsed, ok := core.ParseSeverity(s)
		if !ok {
			return model.Config{}, fmt.Errorf("model.severity_overrides.%s: unknown severity %q", id, s)
		}
		sev[id] = parsed
	}

	return model.Config{
		Strict:               c.Validation.Strict,
		Orphans:              c.Validation.Orphans,
		SkipServices:         c.Validation.SkipServices,
		DisabledContributors: c.Model.DisabledContributors,
		DisabledRefiners:     c.Model.DisabledRefiners,
		SeverityOverrides:    sev,
		Options:              c.Model.Options,
		MaxLength:            c.Defaults.MaxLength,
		PageSize:             c.Defaults.PageSize,
	}, nil
}
