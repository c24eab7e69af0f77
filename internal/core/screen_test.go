package core

import (
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24, ' ')

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with the blank rune
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1, ' ')
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("NewScreen(-3, -1) = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if len(s.Rows()) != 0 {
		t.Errorf("Rows() on empty screen returned %d rows", len(s.Rows()))
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10, '.')

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	// Out of bounds get should return the blank rune
	if s.Get(-1, 0) != '.' {
		t.Error("Out of bounds Get should return blank")
	}
	if s.Get(100, 0) != '.' {
		t.Error("Out of bounds Get should return blank")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(5, 5, ' ')
	s.Fill('#')

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("After Fill, expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}

	s.Clear()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenRowsIsCopy(t *testing.T) {
	s := NewScreen(3, 2, ' ')
	s.Set(1, 1, 'Z')

	rows := s.Rows()
	rows[1][1] = 'Q'

	if s.Get(1, 1) != 'Z' {
		t.Errorf("mutating Rows() result changed the screen: got %q", s.Get(1, 1))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2, '.')
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	expected := "a..\n..b"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
	if s.Row(1) != "..b" {
		t.Errorf("Row(1) = %q, expected %q", s.Row(1), "..b")
	}
	if s.Row(5) != "..." {
		t.Errorf("Row(5) = %q, expected %q", s.Row(5), "...")
	}
}
