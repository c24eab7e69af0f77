// Package scan models the Scan Source: a read-only lookup from an absolute
// coordinate to the 3x3 terrain sample recorded around it.
package scan

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/subnav/internal/core"
)

// SampleSize is the number of cells in a sample (a 3x3 window).
const SampleSize = 9

// Sample is a 3x3 terrain window in row-major order: indices 0-2 are the row
// above the center, 3-5 the center row, 6-8 the row below.
type Sample [SampleSize]rune

// Offsets gives the (dx, dy) of each sample index relative to the center.
// The order is the wire contract between sources and the map aggregator.
var Offsets = [SampleSize]core.Coord{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// ErrInvalidDataset is returned for malformed samples, keys or dataset files.
var ErrInvalidDataset = errors.New("invalid scan dataset")

// ParseSample builds a Sample from a string of exactly nine characters.
func ParseSample(s string) (Sample, error) {
	var sample Sample
	if n := utf8.RuneCountInString(s); n != SampleSize {
		return sample, fmt.Errorf("%w: sample %q has %d characters, expected %d", ErrInvalidDataset, s, n, SampleSize)
	}
	i := 0
	for _, r := range s {
		sample[i] = r
		i++
	}
	return sample, nil
}

// MustSample is like ParseSample but panics on malformed input.
func MustSample(s string) Sample {
	sample, err := ParseSample(s)
	if err != nil {
		panic(err)
	}
	return sample
}

// String returns the nine characters concatenated.
func (s Sample) String() string {
	return string(s[:])
}

// Center returns the character at the queried coordinate itself.
func (s Sample) Center() rune {
	return s[4]
}

// At returns the absolute coordinate of sample index i around center.
func At(center core.Coord, i int) core.Coord {
	off := Offsets[i]
	return center.Add(off.X, off.Y)
}
