package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/silcolour/internal/colour"
	"github.com/jmylchreest/silcolour/internal/logger"
)

// ErrConflictingColours is returned when colour discovery is combined with
// an explicit light or dark colour.
var ErrConflictingColours = errors.New("discover_colours cannot be combined with light_colour or dark_colour")

// Validate checks every setting that can be verified without touching the
// filesystem.
func (c *Config) Validate() error {
	if err := colour.ValidateFactor(c.Darkening); err != nil {
		return fmt.Errorf("darkening: %w", err)
	}

	if c.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("pattern %q: %w", c.Pattern, err)
	}

	if c.DiscoverColours && (c.LightColour != "" || c.DarkColour != "") {
		return ErrConflictingColours
	}
	if c.LightColour != "" {
		if _, err := colour.ParseChannelList(c.LightColour); err != nil {
			return fmt.Errorf("light_colour: %w", err)
		}
	}
	if c.DarkColour != "" {
		if _, err := colour.ParseChannelList(c.DarkColour); err != nil {
			return fmt.Errorf("dark_colour: %w", err)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be zero or positive, got %d", c.Workers)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// CheckOutputDir verifies that the output directory exists.
func (c *Config) CheckOutputDir() error {
	info, err := os.Stat(c.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", c.OutputDir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", c.OutputDir)
	}
	return nil
}

// Resolve returns the fixed base colours for the batch, or nil when they
// are discovered per image. Colours left unset fall back to the defaults;
// each fallback is reported as a warning.
func (c *Config) Resolve() (*colour.BaseColours, []string, error) {
	if c.DiscoverColours {
		if c.LightColour != "" || c.DarkColour != "" {
			return nil, nil, ErrConflictingColours
		}
		return nil, nil, nil
	}

	var warnings []string
	resolve := func(name, value, fallback string) (colour.Colour, error) {
		if value == "" {
			warnings = append(warnings, fmt.Sprintf("%s not specified, using default colour %s", name, fallback))
			value = fallback
		}
		parsed, err := colour.ParseChannelList(value)
		if err != nil {
			return colour.Colour{}, fmt.Errorf("%s: %w", name, err)
		}
		return parsed, nil
	}

	light, err := resolve("light_colour", c.LightColour, DefaultLightColour)
	if err != nil {
		return nil, nil, err
	}
	dark, err := resolve("dark_colour", c.DarkColour, DefaultDarkColour)
	if err != nil {
		return nil, nil, err
	}
	return &colour.BaseColours{Light: light, Dark: dark}, warnings, nil
}

// LogFile returns the rotating file settings for the configured log file.
func (c *Config) LogFile() logger.FileConfig {
	return logger.FileConfig{
		Path:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}
