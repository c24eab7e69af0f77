// Package session runs one navigation: it owns the navigator, the sonar map
// and the log of visited positions, and scans at every visited position.
package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

// Options configures a Session.
type Options struct {
	Variant      nav.Variant
	Source       scan.Source // nil means no scan data anywhere
	Blank        rune        // Render placeholder; 0 means sonarmap.DefaultBlank
	EnforceModes bool        // Reject commands illegal in the current operational mode
	MaxCells     int         // Largest grid the map renders; 0 means sonarmap.DefaultMaxCells
	Logger       *log.Logger // nil means silent
}

// Snapshot is a read-only view of the session after some commands.
type Snapshot struct {
	State    nav.State
	Mode     nav.Mode
	Result   int
	Commands int // Commands executed so far
	Visited  int // Entries in the visited log, origin included
	Cells    int // Known map cells
	LastHit  bool
}

// Session is not safe for concurrent use; its Map is.
type Session struct {
	opts     Options
	nav      *nav.Navigator
	modes    *nav.ModeTracker
	sonar    *sonarmap.Map
	visited  []nav.Position
	commands int
	lastHit  bool
	logger   *log.Logger
}

// New starts a session at the origin and performs the initial scan there.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var mapOpts []sonarmap.Option
	if opts.Blank != 0 {
		mapOpts = append(mapOpts, sonarmap.WithBlank(opts.Blank))
	}
	if opts.MaxCells > 0 {
		mapOpts = append(mapOpts, sonarmap.WithMaxCells(opts.MaxCells))
	}

	s := &Session{
		opts:   opts,
		nav:    nav.New(opts.Variant),
		modes:  nav.NewModeTracker(),
		sonar:  sonarmap.New(opts.Source, mapOpts...),
		logger: logger,
	}
	s.visit(s.nav.Position())
	return s
}

// visit appends pos to the log and scans there.
func (s *Session) visit(pos nav.Position) {
	s.visited = append(s.visited, pos)
	s.lastHit = s.sonar.Ingest(pos.Coord())
	s.logger.Debug("scan", "x", pos.Horizontal, "y", pos.Depth, "hit", s.lastHit, "cells", s.sonar.Len())
}

// Execute parses and applies one command, then scans at the new position.
// A parse or mode error leaves the session unchanged.
func (s *Session) Execute(text string) (nav.Position, error) {
	cmd, err := nav.Parse(text)
	if err != nil {
		return s.nav.Position(), err
	}
	return s.Apply(cmd)
}

// Apply applies an already parsed command.
func (s *Session) Apply(cmd nav.Command) (nav.Position, error) {
	// Modes are always tracked for display but only block when enforced.
	if _, err := s.modes.Advance(cmd); err != nil && s.opts.EnforceModes {
		s.logger.Warn("command rejected", "command", cmd.String(), "mode", s.modes.Mode(), "error", err)
		return s.nav.Position(), err
	}

	pos := s.nav.Execute(cmd)
	s.commands++
	s.logger.Debug("command", "n", s.commands, "command", cmd.String(), "horizontal", pos.Horizontal, "depth", pos.Depth, "aim", s.nav.State().Aim)
	s.visit(pos)
	return pos, nil
}

// Emergency forces the EMERGENCY mode. Position and aim are unchanged and
// every command stays legal afterwards.
func (s *Session) Emergency() {
	s.modes.Emergency()
	s.logger.Warn("emergency", "horizontal", s.nav.Position().Horizontal, "depth", s.nav.Position().Depth)
}

// Run executes each line in order and stops at the first failure.
// The returned error names the 1-based index of the failing line.
func (s *Session) Run(lines []string) error {
	for i, text := range lines {
		if _, err := s.Execute(text); err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
	}
	return nil
}

// RunScript executes script lines and reports failures by source line number.
func (s *Session) RunScript(lines []nav.Line) error {
	for _, line := range lines {
		if _, err := s.Execute(line.Text); err != nil {
			return fmt.Errorf("line %d: %w", line.Number, err)
		}
	}
	return nil
}

// Position returns the current position.
func (s *Session) Position() nav.Position {
	return s.nav.Position()
}

// State returns the current position and aim.
func (s *Session) State() nav.State {
	return s.nav.State()
}

// Result returns horizontal * depth.
func (s *Session) Result() int {
	return s.nav.Result()
}

// Mode returns the current operational mode.
func (s *Session) Mode() nav.Mode {
	return s.modes.Mode()
}

// Variant returns the navigation rule in use.
func (s *Session) Variant() nav.Variant {
	return s.nav.Variant()
}

// Map returns the session's sonar map.
func (s *Session) Map() *sonarmap.Map {
	return s.sonar
}

// Visited returns a copy of the visited-positions log, origin first.
func (s *Session) Visited() []nav.Position {
	out := make([]nav.Position, len(s.visited))
	copy(out, s.visited)
	return out
}

// Commands returns the number of successfully executed commands.
func (s *Session) Commands() int {
	return s.commands
}

// Snapshot captures the session state for display.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:    s.nav.State(),
		Mode:     s.modes.Mode(),
		Result:   s.nav.Result(),
		Commands: s.commands,
		Visited:  len(s.visited),
		Cells:    s.sonar.Len(),
		LastHit:  s.lastHit,
	}
}
