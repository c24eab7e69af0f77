package core

import (
	"strings"
)

// Screen is a 2D character buffer. The map aggregator materializes its
// sparse cells into a Screen before handing rows to a renderer.
type Screen struct {
	width  int
	height int
	blank  rune
	cells  [][]rune
}

// NewScreen creates a new screen buffer with the given dimensions, every
// cell holding the blank rune. Negative dimensions are treated as zero.
func NewScreen(width, height int, blank rune) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
		blank:  blank,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		s.cells[y] = make([]rune, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with the blank rune.
func (s *Screen) Clear() {
	s.Fill(s.blank)
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = r
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position.
// Returns the blank rune for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return s.blank
	}
	return s.cells[y][x]
}

// Rows returns a deep copy of the cell grid, row-major.
func (s *Screen) Rows() [][]rune {
	rows := make([][]rune, s.height)
	for y := range s.cells {
		rows[y] = make([]rune, s.width)
		copy(rows[y], s.cells[y])
	}
	return rows
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(string(s.blank), s.width)
	}
	return string(s.cells[y])
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x])
		}
	}
	return sb.String()
}
