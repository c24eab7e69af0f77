package scan

import (
	"sort"
	"sync"

	"github.com/vovakirdan/subnav/internal/core"
)

// Source answers scan queries. ok is false when the coordinate was never
// scanned; that is an expected outcome, not an error.
type Source interface {
	Query(c core.Coord) (sample Sample, ok bool)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(c core.Coord) (Sample, bool)

// Query calls f(c).
func (f SourceFunc) Query(c core.Coord) (Sample, bool) {
	return f(c)
}

// Empty is a Source with no data anywhere.
var Empty Source = SourceFunc(func(core.Coord) (Sample, bool) {
	return Sample{}, false
})

// Table is a static Source backed by a coordinate-keyed map.
// It is safe for concurrent use.
type Table struct {
	Name string

	mu      sync.RWMutex
	samples map[core.Coord]Sample
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		samples: make(map[core.Coord]Sample),
	}
}

// Set records the sample centered on c, replacing any previous one.
func (t *Table) Set(c core.Coord, s Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples[c] = s
}

// Query implements Source.
func (t *Table) Query(c core.Coord) (Sample, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.samples[c]
	return s, ok
}

// Len returns the number of scanned coordinates.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.samples)
}

// Coords returns the scanned coordinates ordered by row then column.
func (t *Table) Coords() []core.Coord {
	t.mu.RLock()
	coords := make([]core.Coord, 0, len(t.samples))
	for c := range t.samples {
		coords = append(coords, c)
	}
	t.mu.RUnlock()

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// Generate queries src at every coordinate in box and records the hits.
func Generate(name string, src Source, box core.Bounds) *Table {
	t := NewTable(name)
	for _, c := range box.Coords() {
		if s, ok := src.Query(c); ok {
			t.Set(c, s)
		}
	}
	return t
}
