package nav

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Command
	}{
		{"forward", "forward 5", Command{Forward, 5}},
		{"down", "down 8", Command{Down, 8}},
		{"up", "up 3", Command{Up, 3}},
		{"negative value", "forward -3", Command{Forward, -3}},
		{"explicit plus sign", "down +2", Command{Down, 2}},
		{"zero", "up 0", Command{Up, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.text)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.text, err)
			}
			if got != tc.expected {
				t.Errorf("Parse(%q) = %+v, expected %+v", tc.text, got, tc.expected)
			}
			if got.String() != tc.expected.String() {
				t.Errorf("String() = %q, expected %q", got.String(), tc.expected.String())
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"missing value", "forward"},
		{"unknown direction", "invalid 5"},
		{"too many tokens", "forward 5 6"},
		{"non-integer value", "forward five"},
		{"fractional value", "forward 5.5"},
		{"double space", "forward  5"},
		{"trailing space", "forward 5 "},
		{"leading space", " forward 5"},
		{"tab separator", "forward\t5"},
		{"reversed tokens", "5 forward"},
		{"uppercase direction", "Forward 5"},
		{"overflowing value", "down 99999999999999999999999"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tc.text)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) error %v should match ErrParse", tc.text, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error should be *ParseError, got %T", tc.text, err)
			}
			if perr.Text != tc.text {
				t.Errorf("ParseError.Text = %q, expected %q", perr.Text, tc.text)
			}
		})
	}
}

func TestParseUnknownDirectionReason(t *testing.T) {
	_, err := Parse("sideways 2")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Reason != `unknown direction "sideways"` {
		t.Errorf("Reason = %q", perr.Reason)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	MustParse("nope")
}
