// Package core provides fundamental types and utilities shared by the
// navigator, the scan sources and the map aggregator. It has no external
// dependencies so the domain logic stays pure and testable.
package core

import "fmt"

// Coord is an absolute position on the sonar plane.
// X is the horizontal position, Y is the depth (it grows downward, like
// screen coordinates). Coord is comparable and is used directly as a map key.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns the "(x,y)" representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
