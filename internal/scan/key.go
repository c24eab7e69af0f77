package scan

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/vovakirdan/subnav/internal/core"
)

var keyPattern = regexp.MustCompile(`^\((-?\d+),(-?\d+)\)$`)

// FormatKey renders a coordinate as a dataset key, "(x,y)".
func FormatKey(c core.Coord) string {
	return c.String()
}

// ParseKey is the inverse of FormatKey. Whitespace is not allowed.
func ParseKey(key string) (core.Coord, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return core.Coord{}, fmt.Errorf("%w: bad coordinate key %q", ErrInvalidDataset, key)
	}
	x, err := strconv.Atoi(m[1])
	if err != nil {
		return core.Coord{}, fmt.Errorf("%w: bad x in key %q: %v", ErrInvalidDataset, key, err)
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return core.Coord{}, fmt.Errorf("%w: bad y in key %q: %v", ErrInvalidDataset, key, err)
	}
	return core.C(x, y), nil
}
