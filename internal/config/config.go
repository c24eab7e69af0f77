// Package config provides YAML-based configuration loading for subnav.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/scan"
)

// Config contains all configuration for the navigator and its surfaces.
type Config struct {
	Navigation NavigationConfig `yaml:"navigation"`
	Scan       ScanConfig       `yaml:"scan"`
	Render     RenderConfig     `yaml:"render"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// NavigationConfig selects the transition rule.
type NavigationConfig struct {
	Variant      string `yaml:"variant"`       // "simple" or "aimed"
	EnforceModes bool   `yaml:"enforce_modes"` // Reject commands illegal in the current mode
}

// ScanConfig selects the scan source. A dataset file wins over terrain.
type ScanConfig struct {
	Dataset string        `yaml:"dataset"`
	Terrain TerrainConfig `yaml:"terrain"`
}

// TerrainConfig parameterizes the procedural scan source.
type TerrainConfig struct {
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Coverage  float64 `yaml:"coverage"`
}

// RenderConfig controls map output.
type RenderConfig struct {
	Title    string `yaml:"title"`     // Heading of the styled map view
	Blank    string `yaml:"blank"`     // Single character for unknown cells
	Color    bool   `yaml:"color"`     // Colour terrain symbols in terminal views
	TickRate int    `yaml:"tick_rate"` // Commands per second in the replay viewer
	MaxCells int    `yaml:"max_cells"` // Largest grid (width x height) rendered in full
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig holds the SSH and HTTP listener settings.
type ServerConfig struct {
	SSHAddress         string `yaml:"ssh_address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	HTTPAddress        string `yaml:"http_address"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks field values that the loader cannot enforce.
func (c Config) Validate() error {
	if _, err := nav.ParseVariant(c.Navigation.Variant); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if utf8.RuneCountInString(c.Render.Blank) > 1 {
		return fmt.Errorf("%w: render.blank %q must be a single character", ErrInvalidConfig, c.Render.Blank)
	}
	if c.Render.TickRate <= 0 {
		return fmt.Errorf("%w: render.tick_rate must be positive, got %d", ErrInvalidConfig, c.Render.TickRate)
	}
	if c.Render.MaxCells <= 0 {
		return fmt.Errorf("%w: render.max_cells must be positive, got %d", ErrInvalidConfig, c.Render.MaxCells)
	}
	if c.Scan.Terrain.Coverage < 0 || c.Scan.Terrain.Coverage > 1 {
		return fmt.Errorf("%w: scan.terrain.coverage must be within 0..1, got %v", ErrInvalidConfig, c.Scan.Terrain.Coverage)
	}
	return nil
}

// Variant returns the parsed navigation variant.
func (c Config) Variant() nav.Variant {
	v, err := nav.ParseVariant(c.Navigation.Variant)
	if err != nil {
		return nav.VariantAimed
	}
	return v
}

// BlankRune returns the render placeholder, or 0 to use the map default.
func (c Config) BlankRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Render.Blank)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// Source builds the configured scan source.
func (c ScanConfig) Source() (scan.Source, error) {
	if c.Dataset != "" {
		table, err := scan.LoadDataset(expandHome(c.Dataset))
		if err != nil {
			return nil, err
		}
		return table, nil
	}
	return scan.NewTerrain(scan.TerrainConfig{
		Seed:      c.Terrain.Seed,
		Frequency: c.Terrain.Frequency,
		Coverage:  c.Terrain.Coverage,
	}), nil
}
