package nav

import (
	"fmt"

	"github.com/vovakirdan/subnav/internal/core"
)

// Variant selects the transition rule.
type Variant int

const (
	// VariantSimple moves depth directly on down/up.
	VariantSimple Variant = iota
	// VariantAimed steers an aim accumulator on down/up; forward moves
	// depth by aim * value. This is the rule used when building maps.
	VariantAimed
)

// String returns the config/CLI name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantSimple:
		return "simple"
	case VariantAimed:
		return "aimed"
	default:
		return "unknown"
	}
}

// ParseVariant converts "simple" or "aimed" to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "simple":
		return VariantSimple, nil
	case "aimed", "":
		return VariantAimed, nil
	}
	return VariantSimple, fmt.Errorf("nav: unknown variant %q (want simple or aimed)", s)
}

// Position is the observable location of the submarine.
type Position struct {
	Horizontal int
	Depth      int
}

// Coord maps a position onto the sonar plane: x = horizontal, y = depth.
func (p Position) Coord() core.Coord {
	return core.C(p.Horizontal, p.Depth)
}

// Product returns horizontal * depth.
func (p Position) Product() int {
	return p.Horizontal * p.Depth
}

// State is a Position plus the aim accumulator.
type State struct {
	Position
	Aim int
}

// Apply is the pure transition function. Values are used as given,
// including negative ones, and nothing is bounds checked.
func Apply(v Variant, cmd Command, s State) State {
	if v == VariantAimed {
		switch cmd.Direction {
		case Forward:
			s.Horizontal += cmd.Value
			s.Depth += s.Aim * cmd.Value
		case Down:
			s.Aim += cmd.Value
		case Up:
			s.Aim -= cmd.Value
		}
		return s
	}

	switch cmd.Direction {
	case Forward:
		s.Horizontal += cmd.Value
	case Down:
		s.Depth += cmd.Value
	case Up:
		s.Depth -= cmd.Value
	}
	return s
}

// Fold applies every command in order starting from the zero state.
func Fold(v Variant, cmds []Command) State {
	var s State
	for _, cmd := range cmds {
		s = Apply(v, cmd, s)
	}
	return s
}

// Navigator holds the mutable state of one navigation session.
// It is not safe for concurrent use.
type Navigator struct {
	variant Variant
	state   State
}

// New creates a navigator at the origin with zero aim.
func New(v Variant) *Navigator {
	return &Navigator{variant: v}
}

// Variant returns the rule this navigator applies.
func (n *Navigator) Variant() Variant {
	return n.variant
}

// Execute applies cmd and returns the new position.
func (n *Navigator) Execute(cmd Command) Position {
	n.state = Apply(n.variant, cmd, n.state)
	return n.state.Position
}

// Position returns a snapshot of the current position.
func (n *Navigator) Position() Position {
	return n.state.Position
}

// State returns a snapshot of position and aim.
func (n *Navigator) State() State {
	return n.state
}

// Result returns horizontal * depth of the current position.
func (n *Navigator) Result() int {
	return n.state.Product()
}

// Reset moves the navigator back to the origin with zero aim.
func (n *Navigator) Reset() {
	n.state = State{}
}
