package sonarmap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/subnav/internal/core"
)

// Title heads the printed map block.
const Title = "=== SONAR MAP ==="

// NoDataMessage is printed instead of a grid when nothing was scanned.
const NoDataMessage = "No map data available"

// ErrTooLarge is returned when a grid would exceed the map's cell limit.
var ErrTooLarge = errors.New("sonarmap: map too large to render")

// TooLargeMessage is printed instead of a grid wider or taller than the
// cell limit allows.
func TooLargeMessage(box core.Bounds) string {
	return fmt.Sprintf("Map too large to render (%dx%d)", box.Width, box.Height)
}

// MaxCells returns the largest grid area the map will materialize.
func (m *Map) MaxCells() int {
	return m.maxCells
}

// Fits reports whether a grid covering box stays within the cell limit.
func (m *Map) Fits(box core.Bounds) bool {
	n, ok := box.Area()
	return ok && n <= m.maxCells
}

// Render materializes the map as a height x width grid. Row index is
// y - minY and column index is x - minX; unknown cells hold the blank rune.
// Returns an empty grid when the map is empty or exceeds the cell limit.
func (m *Map) Render() [][]rune {
	_, grid, _ := m.Frame()
	return grid
}

// Frame returns the bounding box together with the grid rendered for it,
// taken under one lock so the two always agree. When the box exceeds the
// cell limit the grid is nil and err is ErrTooLarge; nothing is allocated.
func (m *Map) Frame() (core.Bounds, [][]rune, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	box := m.boundsLocked()
	s, err := m.screenLocked(box)
	if err != nil {
		return box, nil, err
	}
	return box, s.Rows(), nil
}

// Window renders only the cells inside area, using the same blank
// placeholder. Row 0 is area.MinY and column 0 is area.MinX.
func (m *Map) Window(area core.Bounds) ([][]rune, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.screenLocked(area)
	if err != nil {
		return nil, err
	}
	return s.Rows(), nil
}

// Lines renders the map as one string per row. It returns nil when the
// map is empty or exceeds the cell limit.
func (m *Map) Lines() []string {
	_, lines, _ := m.lines()
	return lines
}

func (m *Map) lines() (core.Bounds, []string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	box := m.boundsLocked()
	s, err := m.screenLocked(box)
	if err != nil {
		return box, nil, err
	}
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = s.Row(y)
	}
	return box, lines, nil
}

// screenLocked copies the cells inside area into a dense buffer.
// The caller holds m.mu.
func (m *Map) screenLocked(area core.Bounds) (*core.Screen, error) {
	if !m.Fits(area) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, area.Width, area.Height, m.maxCells)
	}

	s := core.NewScreen(area.Width, area.Height, m.blank)
	for c, r := range m.cells {
		if !area.Contains(c) {
			continue
		}
		col, row := area.Offset(c)
		s.Set(col, row, r)
	}
	return s, nil
}

// String returns the printed block without writing it anywhere.
func (m *Map) String() string {
	var sb strings.Builder
	m.Print(&sb)
	return sb.String()
}

// Print writes a bordered view of the map: a title line, one line per grid
// row and a closing border. An empty map prints NoDataMessage and a map over
// the cell limit prints TooLargeMessage instead.
// Write errors are ignored; printing never fails.
func (m *Map) Print(w io.Writer) {
	box, lines, err := m.lines()
	if err != nil {
		fmt.Fprintln(w, TooLargeMessage(box))
		return
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, NoDataMessage)
		return
	}

	fmt.Fprintln(w, Title)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(Title)))
}
