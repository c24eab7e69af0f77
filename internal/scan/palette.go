package scan

import "github.com/vovakirdan/subnav/internal/core"

// SymbolColor picks a display color for a terrain symbol.
func SymbolColor(r rune) core.Color {
	switch r {
	case SymbolWater:
		return core.ColorBlue
	case SymbolKelp:
		return core.ColorGreen
	case SymbolRock:
		return core.ColorGray
	case SymbolOre:
		return core.ColorYellow
	case SymbolVent:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}
