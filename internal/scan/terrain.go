package scan

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/subnav/internal/core"
)

// Terrain symbols produced by the procedural source.
const (
	SymbolWater = '.'
	SymbolKelp  = '~'
	SymbolRock  = '#'
	SymbolOre   = '*'
	SymbolVent  = '^'
)

// TerrainConfig parameterizes a procedural terrain source.
type TerrainConfig struct {
	Seed      int64
	Frequency float64 // Noise frequency per cell; smaller means larger features
	Coverage  float64 // Fraction of coordinates that carry scan data, 0..1
}

// DefaultTerrainConfig returns a config producing mid-sized features with
// every coordinate scanned.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Seed:      1,
		Frequency: 0.08,
		Coverage:  1.0,
	}
}

// Terrain is a Source that derives every symbol from absolute coordinates,
// so overlapping samples always agree on shared cells.
type Terrain struct {
	cfg      TerrainConfig
	elev     opensimplex.Noise
	coverage opensimplex.Noise
}

// NewTerrain creates a procedural source.
func NewTerrain(cfg TerrainConfig) *Terrain {
	if cfg.Frequency <= 0 {
		cfg.Frequency = DefaultTerrainConfig().Frequency
	}
	return &Terrain{
		cfg:      cfg,
		elev:     opensimplex.NewNormalized(cfg.Seed),
		coverage: opensimplex.NewNormalized(cfg.Seed + 1),
	}
}

// Symbol returns the terrain character at c.
func (t *Terrain) Symbol(c core.Coord) rune {
	n := octaveNoise(t.elev, float64(c.X), float64(c.Y), 3, t.cfg.Frequency, 0.5)
	switch {
	case n < 0.38:
		return SymbolWater
	case n < 0.52:
		return SymbolKelp
	case n < 0.66:
		return SymbolRock
	case n < 0.70:
		return SymbolOre
	case n < 0.80:
		return SymbolRock
	default:
		return SymbolVent
	}
}

// Scanned reports whether c carries scan data under the coverage setting.
func (t *Terrain) Scanned(c core.Coord) bool {
	if t.cfg.Coverage >= 1 {
		return true
	}
	if t.cfg.Coverage <= 0 {
		return false
	}
	return t.coverage.Eval2(float64(c.X)*0.37, float64(c.Y)*0.37) < t.cfg.Coverage
}

// Query implements Source.
func (t *Terrain) Query(c core.Coord) (Sample, bool) {
	if !t.Scanned(c) {
		return Sample{}, false
	}
	var s Sample
	for i := range Offsets {
		s[i] = t.Symbol(At(c, i))
	}
	return s, true
}

// octaveNoise layers several noise frequencies and normalizes back to 0..1.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
