package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
)

// DefaultConfigFile is read from the working directory when -config is not
// given.
const DefaultConfigFile = "tmc.json"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the tmc configuration file
type Config struct {
	Verbose bool `json:"verbose"`
	Debug   bool `json:"debug"`
	// Color is one of auto, always or never.
	Color string `json:"color"`
	// JSON switches diagnostics to machine-readable output.
	JSON bool `json:"json"`
	// MaxNestingDepth bounds parser recursion; zero keeps the default.
	MaxNestingDepth int `json:"max_nesting_depth"`
	// Language is a semver constraint the compiler's language version must
	// satisfy, e.g. "^1.0".
	Language string `json:"language,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{Color: ColorAuto}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the field values.
func (c *Config) Validate() error {
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.MaxNestingDepth < 0 {
		return fmt.Errorf("max_nesting_depth must not be negative, got %d", c.MaxNestingDepth)
	}
	if c.Language != "" {
		if _, err := semver.NewConstraint(c.Language); err != nil {
			return fmt.Errorf("language constraint %q: %w", c.Language, err)
		}
	}
	return nil
}

// CheckLanguage reports an error when version does not satisfy the
// configured language constraint.
func (c *Config) CheckLanguage(version string) error {
	if c.Language == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Language)
	if err != nil {
		return fmt.Errorf("language constraint %q: %w", c.Language, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("language version %q: %w", version, err)
	}
	if ok, errs := constraint.Validate(v); !ok {
		return fmt.Errorf("language version %s does not satisfy %q: %w", v, c.Language, errors.Join(errs...))
	}
	return nil
}

// UseColor resolves the color mode for output written to f.
func (c *Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return f != nil && IsTerminal(f.Fd()) && os.Getenv("NO_COLOR") == ""
	}
}
