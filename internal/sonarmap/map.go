// Package sonarmap aggregates overlapping 3x3 scan samples into one sparse
// map keyed by absolute coordinates, and materializes it as a dense grid.
package sonarmap

import (
	"sort"
	"sync"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/scan"
)

// DefaultBlank fills grid cells no scan has covered.
const DefaultBlank = ' '

// DefaultMaxCells caps the dense grid a map materializes (width x height).
const DefaultMaxCells = 1 << 22

// Point is one known map cell.
type Point struct {
	Coord  core.Coord
	Symbol rune
}

// Map is the sparse terrain map. Writes use last-write-wins: a later
// ingest overwrites whatever an earlier one recorded at the same coordinate.
// Map is safe for concurrent use.
type Map struct {
	source   scan.Source
	blank    rune
	maxCells int

	mu    sync.RWMutex
	cells map[core.Coord]rune
}

// Option configures a Map.
type Option func(*Map)

// WithBlank sets the placeholder rune used for unknown cells when rendering.
func WithBlank(r rune) Option {
	return func(m *Map) {
		m.blank = r
	}
}

// WithMaxCells caps the area of rendered grids. n <= 0 keeps DefaultMaxCells.
func WithMaxCells(n int) Option {
	return func(m *Map) {
		if n > 0 {
			m.maxCells = n
		}
	}
}

// New creates an empty map fed by src. A nil src behaves like scan.Empty.
func New(src scan.Source, opts ...Option) *Map {
	if src == nil {
		src = scan.Empty
	}
	m := &Map{
		source:   src,
		blank:    DefaultBlank,
		maxCells: DefaultMaxCells,
		cells:    make(map[core.Coord]rune),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ingest queries the scan source at pos and merges the returned sample.
// It reports whether the source had data; a miss leaves the map untouched.
func (m *Map) Ingest(pos core.Coord) bool {
	sample, ok := m.source.Query(pos)
	if !ok {
		return false
	}
	m.Merge(pos, sample)
	return true
}

// Merge projects a sample centered on pos onto its nine absolute
// coordinates, overwriting existing cells.
func (m *Map) Merge(pos core.Coord, sample scan.Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range sample {
		m.cells[scan.At(pos, i)] = r
	}
}

// Set records a single cell, overwriting any existing symbol.
func (m *Map) Set(c core.Coord, r rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[c] = r
}

// Get returns the symbol known at c.
func (m *Map) Get(c core.Coord) (rune, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.cells[c]
	return r, ok
}

// Len returns the number of known cells.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}

// Points returns a copy of every known cell ordered by row then column.
func (m *Map) Points() []Point {
	m.mu.RLock()
	points := make([]Point, 0, len(m.cells))
	for c, r := range m.cells {
		points = append(points, Point{Coord: c, Symbol: r})
	}
	m.mu.RUnlock()

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i].Coord, points[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return points
}

// Cells returns a copy of the sparse map.
func (m *Map) Cells() map[core.Coord]rune {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[core.Coord]rune, len(m.cells))
	for c, r := range m.cells {
		out[c] = r
	}
	return out
}

// Clear forgets every known cell.
func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells = make(map[core.Coord]rune)
}

// BoundingBox returns the minimal box containing every known cell,
// or the all-zero box when the map is empty.
func (m *Map) BoundingBox() core.Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.boundsLocked()
}

func (m *Map) boundsLocked() core.Bounds {
	coords := make([]core.Coord, 0, len(m.cells))
	for c := range m.cells {
		coords = append(coords, c)
	}
	return core.BoundsOf(coords)
}
