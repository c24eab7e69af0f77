// Package nav implements the submarine navigation rule: parsing textual
// commands and applying them to a position under one of two rule variants.
package nav

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Direction is one of the three recognized movement literals.
type Direction string

const (
	Forward Direction = "forward"
	Down    Direction = "down"
	Up      Direction = "up"
)

// Valid reports whether d is a recognized direction.
func (d Direction) Valid() bool {
	switch d {
	case Forward, Down, Up:
		return true
	}
	return false
}

// Command is a single parsed movement instruction.
type Command struct {
	Direction Direction
	Value     int
}

// String returns the command in its textual "<direction> <integer>" form.
func (c Command) String() string {
	return fmt.Sprintf("%s %d", c.Direction, c.Value)
}

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("malformed command")

// ParseError describes why a command line was rejected.
type ParseError struct {
	Text   string // Offending input
	Reason string
	Err    error // Underlying grammar or number error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse command %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Exactly two tokens separated by one space. No elision: a second space,
// a tab or a trailing token all fail the grammar.
var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Space", Pattern: ` `},
})

type commandGrammar struct {
	Direction string `parser:"@Word Space"`
	Value     string `parser:"@Int"`
}

var commandParser = participle.MustBuild[commandGrammar](
	participle.Lexer(commandLexer),
)

// Parse converts "<direction> <integer>" into a Command.
// Negative values are accepted; only malformed input is rejected.
func Parse(text string) (Command, error) {
	if text == "" {
		return Command{}, &ParseError{Text: text, Reason: "empty command"}
	}

	g, err := commandParser.ParseString("", text)
	if err != nil {
		return Command{}, &ParseError{
			Text:   text,
			Reason: `expected "<direction> <integer>"`,
			Err:    err,
		}
	}

	value, err := strconv.Atoi(g.Value)
	if err != nil {
		return Command{}, &ParseError{
			Text:   text,
			Reason: fmt.Sprintf("invalid integer value %q", g.Value),
			Err:    err,
		}
	}

	dir := Direction(g.Direction)
	if !dir.Valid() {
		return Command{}, &ParseError{
			Text:   text,
			Reason: fmt.Sprintf("unknown direction %q", g.Direction),
		}
	}

	return Command{Direction: dir, Value: value}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// literals in tests and examples.
func MustParse(text string) Command {
	cmd, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return cmd
}
