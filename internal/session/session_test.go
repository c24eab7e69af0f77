package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/scan"
)

func TestNewScansOrigin(t *testing.T) {
	src := scan.NewTable("origin")
	src.Set(core.C(0, 0), scan.MustSample("abcdefghi"))

	s := New(Options{Variant: nav.VariantAimed, Source: src})

	visited := s.Visited()
	if len(visited) != 1 || visited[0] != (nav.Position{}) {
		t.Fatalf("Visited() = %+v, expected only the origin", visited)
	}
	if s.Map().Len() != 9 {
		t.Errorf("origin scan produced %d cells, expected 9", s.Map().Len())
	}
	if !s.Snapshot().LastHit {
		t.Error("Snapshot().LastHit should be true after origin hit")
	}
}

func TestEndToEndAimed(t *testing.T) {
	src := scan.NewTable("e2e")
	src.Set(core.C(10, 10), scan.MustSample("#########"))

	s := New(Options{Variant: nav.VariantAimed, Source: src})
	if err := s.Run([]string{"down 1", "forward 10"}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if pos := s.Position(); pos.Horizontal != 10 || pos.Depth != 10 {
		t.Fatalf("Position() = %+v, expected (10,10)", pos)
	}
	for _, c := range core.NewBounds(core.C(9, 9), core.C(11, 11)).Coords() {
		if r, ok := s.Map().Get(c); !ok || r != '#' {
			t.Errorf("Get(%v) = %q, %v; expected '#'", c, r, ok)
		}
	}
	if s.Map().Len() != 9 {
		t.Errorf("Len() = %d, expected 9", s.Map().Len())
	}
}

func TestVisitedLogIncludesEveryCommand(t *testing.T) {
	s := New(Options{Variant: nav.VariantAimed})
	cmds := []string{"forward 5", "down 5", "forward 8", "up 3", "down 8", "forward 2"}
	if err := s.Run(cmds); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	visited := s.Visited()
	if len(visited) != len(cmds)+1 {
		t.Fatalf("Visited() has %d entries, expected %d", len(visited), len(cmds)+1)
	}
	// down/up entries repeat the previous position
	if visited[2] != visited[1] {
		t.Errorf("down should not move: %+v vs %+v", visited[2], visited[1])
	}
	if s.Result() != 900 {
		t.Errorf("Result() = %d, expected 900", s.Result())
	}
	if s.Commands() != len(cmds) {
		t.Errorf("Commands() = %d, expected %d", s.Commands(), len(cmds))
	}
}

func TestVisitedIsCopy(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple})
	s.Execute("forward 3")

	visited := s.Visited()
	visited[1].Horizontal = 99

	if s.Visited()[1].Horizontal != 3 {
		t.Errorf("mutating Visited() result changed the log")
	}
}

func TestRunStopsAtParseError(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple})
	err := s.Run([]string{"forward 2", "backward 1", "forward 5"})
	if !errors.Is(err, nav.ErrParse) {
		t.Fatalf("Run() error = %v, expected ErrParse", err)
	}
	if !strings.HasPrefix(err.Error(), "command 2:") {
		t.Errorf("error %q should name command 2", err)
	}
	if s.Position().Horizontal != 2 {
		t.Errorf("Position() = %+v, expected processing to stop after the first command", s.Position())
	}
	if len(s.Visited()) != 2 {
		t.Errorf("failed command should not be logged, Visited() has %d entries", len(s.Visited()))
	}
}

func TestRunScriptReportsLineNumber(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple})
	lines := []nav.Line{{Number: 1, Text: "forward 1"}, {Number: 4, Text: "up"}}

	err := s.RunScript(lines)
	if err == nil || !strings.HasPrefix(err.Error(), "line 4:") {
		t.Errorf("RunScript() error = %v, expected line 4", err)
	}
}

func TestEnforceModes(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple, EnforceModes: true})

	_, err := s.Execute("up 1")
	if !errors.Is(err, nav.ErrIllegalTransition) {
		t.Fatalf("Execute(up) while surfaced: err = %v, expected ErrIllegalTransition", err)
	}
	if s.Commands() != 0 || len(s.Visited()) != 1 {
		t.Errorf("rejected command should not be applied")
	}

	if _, err := s.Execute("down 7"); err != nil {
		t.Fatalf("Execute(down 7) failed: %v", err)
	}
	if s.Mode() != nav.ModeDiving {
		t.Errorf("Mode() = %v, expected DIVING", s.Mode())
	}
	if _, err := s.Execute("up 1"); err != nil {
		t.Errorf("up should be legal once submerged: %v", err)
	}
}

func TestModesNotEnforcedByDefault(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple})
	if _, err := s.Execute("up 1"); err != nil {
		t.Fatalf("Execute(up) should pass without enforcement: %v", err)
	}
	if s.Position().Depth != -1 {
		t.Errorf("Depth = %d, expected -1", s.Position().Depth)
	}
}

func TestSessionLogsCommands(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	s := New(Options{Variant: nav.VariantAimed, Logger: logger})
	s.Execute("forward 4")

	out := buf.String()
	if !strings.Contains(out, "scan") || !strings.Contains(out, "forward 4") {
		t.Errorf("debug log missing scan/command entries:\n%s", out)
	}
}

func TestCustomBlank(t *testing.T) {
	src := scan.NewTable("gaps")
	src.Set(core.C(0, 0), scan.MustSample("a........"))
	src.Set(core.C(4, 0), scan.MustSample("........b"))

	s := New(Options{Variant: nav.VariantSimple, Source: src, Blank: '?'})
	s.Execute("forward 4")

	lines := s.Map().Lines()
	if lines[1] != "...?..." {
		t.Errorf("Lines()[1] = %q, expected %q", lines[1], "...?...")
	}
}

func TestEmergency(t *testing.T) {
	s := New(Options{Variant: nav.VariantAimed, EnforceModes: true})
	s.Emergency()

	if s.Mode() != nav.ModeEmergency {
		t.Fatalf("Mode() = %v, expected EMERGENCY", s.Mode())
	}
	if s.Commands() != 0 || s.Position() != (nav.Position{}) {
		t.Errorf("Emergency() moved the submarine: %+v after %d commands", s.Position(), s.Commands())
	}
	if _, err := s.Execute("up 3"); err != nil {
		t.Errorf("up should be legal in EMERGENCY: %v", err)
	}
	if s.State().Aim != -3 {
		t.Errorf("Aim = %d, expected -3", s.State().Aim)
	}
}

func TestDeepCourseStillPrints(t *testing.T) {
	s := New(Options{Variant: nav.VariantAimed, Source: scan.NewTerrain(scan.DefaultTerrainConfig())})
	if err := s.Run([]string{"down 1000000000", "forward 1000000000"}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	box := s.Map().BoundingBox()
	if s.Map().Fits(box) {
		t.Fatalf("Fits(%+v) = true, expected the course to exceed the cell limit", box)
	}

	var sb strings.Builder
	s.Map().Print(&sb)
	if !strings.HasPrefix(sb.String(), "Map too large to render") {
		t.Errorf("Print() = %q, expected the too-large notice", sb.String())
	}
}

func TestMaxCellsOption(t *testing.T) {
	s := New(Options{Variant: nav.VariantSimple, MaxCells: 4})
	if got := s.Map().MaxCells(); got != 4 {
		t.Errorf("MaxCells() = %d, expected 4", got)
	}
}
