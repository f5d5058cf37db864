package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorGreen)
	cell := s.GetCell(5, 5)
	if cell.Rune != '●' || cell.Color != ColorGreen {
		t.Errorf("GetCell(5, 5) = %+v, expected green '●'", cell)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawText(1, 1, "P1 ▓▓")

	if got := strings.TrimRight(s.Row(1), " "); got != " P1 ▓▓" {
		t.Errorf("Row(1) = %q, expected %q", got, " P1 ▓▓")
	}

	s.DrawTextCentered(0, "HI", ColorRed)
	if s.GetCell(5, 0).Rune != 'H' || s.GetCell(5, 0).Color != ColorRed {
		t.Errorf("centered text misplaced: %q", s.Row(0))
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X')
	s.Resize(6, 2)

	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("Resize() gave %dx%d, expected 6x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
	if len(strings.Split(s.String(), "\n")) != 2 {
		t.Error("String() should have one line per row")
	}
}
