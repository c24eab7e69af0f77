package nav

import (
	"errors"
	"testing"
)

func TestModeTrackerSurfaced(t *testing.T) {
	tr := NewModeTracker()
	if tr.Mode() != ModeSurfaced {
		t.Fatalf("initial mode = %v, expected SURFACED", tr.Mode())
	}

	_, err := tr.Advance(MustParse("up 1"))
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("up while surfaced: err = %v, expected ErrIllegalTransition", err)
	}
	if tr.Mode() != ModeSurfaced {
		t.Errorf("failed command changed mode to %v", tr.Mode())
	}
}

func TestModeTrackerTransitions(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		expected Mode
	}{
		{"forward from surface cruises", []string{"forward 3"}, ModeCruising},
		{"shallow dive cruises", []string{"down 5"}, ModeCruising},
		{"steep dive", []string{"down 6"}, ModeDiving},
		{"steep ascent", []string{"down 2", "up 9"}, ModeAscending},
		{"back to cruising", []string{"down 9", "forward 1"}, ModeCruising},
		{"negative magnitude counts", []string{"down -7"}, ModeDiving},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewModeTracker()
			for _, text := range tc.commands {
				if _, err := tr.Advance(MustParse(text)); err != nil {
					t.Fatalf("Advance(%q) failed: %v", text, err)
				}
			}
			if tr.Mode() != tc.expected {
				t.Errorf("Mode() = %v, expected %v", tr.Mode(), tc.expected)
			}
		})
	}
}

func TestModeTrackerEmergency(t *testing.T) {
	tr := NewModeTracker()
	tr.Emergency()
	if tr.Mode() != ModeEmergency {
		t.Fatalf("Mode() = %v, expected EMERGENCY", tr.Mode())
	}
	if err := tr.Check(MustParse("up 3")); err != nil {
		t.Errorf("up should be legal in EMERGENCY: %v", err)
	}

	tr.Reset()
	if tr.Mode() != ModeSurfaced {
		t.Errorf("Reset() mode = %v, expected SURFACED", tr.Mode())
	}
}
