package nav

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/subnav/internal/core"
)

// Mode is the operational mode of the submarine. Modes only gate which
// commands are legal; they never change how a command moves the vessel.
type Mode int

const (
	ModeSurfaced Mode = iota
	ModeCruising
	ModeDiving
	ModeAscending
	ModeEmergency
)

// String returns the upper-case display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSurfaced:
		return "SURFACED"
	case ModeCruising:
		return "CRUISING"
	case ModeDiving:
		return "DIVING"
	case ModeAscending:
		return "ASCENDING"
	case ModeEmergency:
		return "EMERGENCY"
	default:
		return "UNKNOWN"
	}
}

// steepThreshold is the down/up magnitude above which the vessel dives or ascends.
const steepThreshold = 5

// ErrIllegalTransition is returned when a command is not allowed in the current mode.
var ErrIllegalTransition = errors.New("illegal command for current mode")

// ModeTracker follows mode transitions for a command stream.
// The zero value starts SURFACED.
type ModeTracker struct {
	mode Mode
}

// NewModeTracker returns a tracker in ModeSurfaced.
func NewModeTracker() *ModeTracker {
	return &ModeTracker{mode: ModeSurfaced}
}

// Mode returns the current mode.
func (t *ModeTracker) Mode() Mode {
	return t.mode
}

// Check reports whether cmd is legal without changing the mode.
func (t *ModeTracker) Check(cmd Command) error {
	if t.mode == ModeSurfaced && cmd.Direction == Up {
		return fmt.Errorf("%w: %s while %s", ErrIllegalTransition, cmd, t.mode)
	}
	return nil
}

// Advance validates cmd and moves to the resulting mode.
// On error the mode is left unchanged.
func (t *ModeTracker) Advance(cmd Command) (Mode, error) {
	if err := t.Check(cmd); err != nil {
		return t.mode, err
	}

	steep := core.Abs(cmd.Value) > steepThreshold
	switch {
	case cmd.Direction == Down && steep:
		t.mode = ModeDiving
	case cmd.Direction == Up && steep:
		t.mode = ModeAscending
	default:
		t.mode = ModeCruising
	}
	return t.mode, nil
}

// Emergency forces ModeEmergency. All commands stay legal afterwards.
func (t *ModeTracker) Emergency() {
	t.mode = ModeEmergency
}

// Reset returns the tracker to ModeSurfaced.
func (t *ModeTracker) Reset() {
	t.mode = ModeSurfaced
}
