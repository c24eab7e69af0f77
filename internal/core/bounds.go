package core

import "math"

// Bounds is an inclusive axis-aligned bounding box over integer coordinates.
// The zero value is the canonical empty box: every field is 0.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
	Width      int // MaxX - MinX + 1, or 0 when empty
	Height     int // MaxY - MinY + 1, or 0 when empty
}

// NewBounds creates a box spanning the two corners (inclusive).
// Corners may be given in any order.
func NewBounds(a, b Coord) Bounds {
	box := Bounds{
		MinX: Min(a.X, b.X),
		MaxX: Max(a.X, b.X),
		MinY: Min(a.Y, b.Y),
		MaxY: Max(a.Y, b.Y),
	}
	box.Width = box.MaxX - box.MinX + 1
	box.Height = box.MaxY - box.MinY + 1
	return box
}

// BoundsOf returns the minimal box containing every coordinate.
// Returns the zero Bounds when coords is empty.
func BoundsOf(coords []Coord) Bounds {
	if len(coords) == 0 {
		return Bounds{}
	}

	box := Bounds{
		MinX: coords[0].X, MaxX: coords[0].X,
		MinY: coords[0].Y, MaxY: coords[0].Y,
	}
	for _, c := range coords[1:] {
		box.MinX = Min(box.MinX, c.X)
		box.MaxX = Max(box.MaxX, c.X)
		box.MinY = Min(box.MinY, c.Y)
		box.MaxY = Max(box.MaxY, c.Y)
	}
	box.Width = box.MaxX - box.MinX + 1
	box.Height = box.MaxY - box.MinY + 1
	return box
}

// Empty reports whether the box covers no cells.
func (b Bounds) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Area returns Width * Height computed from the corners. ok is false when
// a side or the product does not fit in an int.
func (b Bounds) Area() (n int, ok bool) {
	if b == (Bounds{}) {
		return 0, true
	}
	w, wok := span(b.MinX, b.MaxX)
	h, hok := span(b.MinY, b.MaxY)
	if !wok || !hok || w > math.MaxInt/h {
		return 0, false
	}
	return w * h, true
}

// span counts the integers in [lo, hi], reporting overflow.
func span(lo, hi int) (int, bool) {
	d := hi - lo
	if d < 0 || d == math.MaxInt {
		return 0, false
	}
	return d + 1, true
}

// Contains returns true if the coordinate lies inside the box.
func (b Bounds) Contains(c Coord) bool {
	if b.Empty() {
		return false
	}
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Offset translates an absolute coordinate into grid indices relative to
// the top-left corner of the box: column = x - MinX, row = y - MinY.
func (b Bounds) Offset(c Coord) (col, row int) {
	return c.X - b.MinX, c.Y - b.MinY
}

// Coords returns every coordinate in the box, ordered by row then column.
func (b Bounds) Coords() []Coord {
	if b.Empty() {
		return nil
	}
	coords := make([]Coord, 0, b.Width*b.Height)
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}
