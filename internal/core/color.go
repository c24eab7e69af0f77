package core

// Color represents a foreground color for a rendered cell.
// Renderers map it to terminal styles; the domain only picks one.
type Color uint8

// Predefined colors for terrain and markers.
const (
	ColorDefault Color = iota
	ColorBlue
	ColorCyan
	ColorGreen
	ColorYellow
	ColorRed
	ColorGray
	ColorBrightWhite
)
