// Package config holds the batch configuration for a recolouring run.
package config

// Default base colours used when neither discovery nor an explicit colour
// is configured.
const (
	DefaultLightColour = "128,128,255,255"
	DefaultDarkColour  = "0,0,255,255"
)

// Config holds all batch settings.
type Config struct {
	Darkening       float64       `yaml:"darkening"`
	OutputDir       string        `yaml:"output_dir"`
	Pattern         string        `yaml:"pattern"`
	LightColour     string        `yaml:"light_colour"`
	DarkColour      string        `yaml:"dark_colour"`
	DiscoverColours bool          `yaml:"discover_colours"`
	Workers         int           `yaml:"workers"` // 0 selects runtime.NumCPU()
	StrictCatalog   bool          `yaml:"strict_catalog"`
	Verbose         bool          `yaml:"verbose"`
	Logging         LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Darkening: 0.2,
		OutputDir: ".",
		Pattern:   "*.gif",
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
