package config

import (
	_ "embed"
)

//go:embed defaults/subnav.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration. It mirrors
// defaults/subnav.yaml and is used if the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Navigation: NavigationConfig{
			Variant: "aimed",
		},
		Scan: ScanConfig{
			Terrain: TerrainConfig{
				Seed:      1,
				Frequency: 0.08,
				Coverage:  1.0,
			},
		},
		Render: RenderConfig{
			Title:    "SONAR MAP",
			Blank:    " ",
			Color:    true,
			TickRate: 4,
			MaxCells: 1 << 22,
		},
		Storage: StorageConfig{
			DBPath: "~/.subnav/runs.db",
		},
		Server: ServerConfig{
			SSHAddress:         ":23235",
			IdleTimeoutMinutes: 30,
			HTTPAddress:        ":8088",
		},
	}
}
