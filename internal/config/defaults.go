package config

// Default configuration values.
const (
	DefaultStateFile = ".leapmeta/state.db"
	DefaultOutput    = "auto" // TTY=text, non-TTY=markdown
	DefaultPageSize  = 25

	ConfigFileName    = "leapmeta.yaml"
	ConfigFileNameAlt = "leapmeta.yml"

	EnvPrefix = "LEAPMETA_"
)

// defaultValues seeds the lowest configuration layer.
func defaultValues() map[string]any {
	return map[string]any{
		"state_path":               DefaultStateFile,
		"output":                   DefaultOutput,
		"verbose":                  false,
		"validation.strict":        false,
		"validation.orphans":       true,
		"validation.skip_services": true,
		"defaults.max_length":      0,
		"defaults.page_size":       DefaultPageSize,
	}
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		StatePath: DefaultStateFile,
		Output:    DefaultOutput,
		Validation: ValidationConfig{
			Orphans:      true,
			SkipServices: true,
		},
		Defaults: DefaultsConfig{PageSize: DefaultPageSize},
	}
}
