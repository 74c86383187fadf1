package core

import (
	"strings"
	"testing"
)

var (
	red  = RGB{R: 200}
	gray = RGB{R: 50, G: 50, B: 50}
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(10, 5, DefaultScale())

	if s.Width() != 10 {
		t.Errorf("Width() = %d, expected 10", s.Width())
	}
	if s.Height() != 5 {
		t.Errorf("Height() = %d, expected 5", s.Height())
	}

	w, h := s.Size()
	if w != 80 || h != 80 {
		t.Errorf("Size() = (%d, %d), expected (80, 80)", w, h)
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Top != Black || c.Bottom != Black || c.Rune != 0 {
				t.Errorf("New screen should be black pixel cells, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestNewScreenInvalidScale(t *testing.T) {
	s := NewScreen(4, 4, Scale{})
	if s.Scale() != DefaultScale() {
		t.Errorf("Scale() = %+v, expected default %+v", s.Scale(), DefaultScale())
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 5, DefaultScale())
	s.FillRect(NewRect(0, 0, 16, 16), red)

	for sy := 0; sy < 2; sy++ {
		for sx := 0; sx < 2; sx++ {
			if s.SubPixel(sx, sy) != red {
				t.Errorf("FillRect: expected red at sub-pixel (%d, %d), got %v", sx, sy, s.SubPixel(sx, sy))
			}
		}
	}
	if s.SubPixel(2, 0) != Black {
		t.Error("FillRect should not affect area right of the rect")
	}
	if s.SubPixel(0, 2) != Black {
		t.Error("FillRect should not affect area below the rect")
	}
}

func TestScreenFillRectCenterSampling(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		painted bool
	}{
		{"covers sub-pixel center", NewRect(-3, 0, 8, 8), true},
		{"stops short of center", NewRect(-5, 0, 8, 8), false},
		{"starts past center", NewRect(5, 0, 8, 8), false},
		{"starts on center", NewRect(4, 0, 8, 8), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(4, 2, DefaultScale())
			s.FillRect(tc.rect, red)
			got := s.SubPixel(0, 0) == red
			if got != tc.painted {
				t.Errorf("sub-pixel (0, 0) painted = %v, expected %v", got, tc.painted)
			}
		})
	}
}

func TestScreenFillRectAdjacentTilesNoGap(t *testing.T) {
	s := NewScreen(16, 4, DefaultScale())
	blue := RGB{B: 200}

	// Two 64px tiles shifted by a camera offset of 3px.
	s.FillRect(NewRect(-3, 0, 64, 64), red)
	s.FillRect(NewRect(61, 0, 64, 64), blue)

	for sx := 0; sx < 16; sx++ {
		c := s.SubPixel(sx, 0)
		if c != red && c != blue {
			t.Fatalf("sub-pixel (%d, 0) left unpainted between adjacent tiles", sx)
		}
	}
	if s.SubPixel(7, 0) != red || s.SubPixel(8, 0) != blue {
		t.Errorf("tile boundary misplaced: (7,0)=%v (8,0)=%v", s.SubPixel(7, 0), s.SubPixel(8, 0))
	}
}

func TestScreenFillRectClipped(t *testing.T) {
	s := NewScreen(4, 2, DefaultScale())

	// Should not panic
	s.FillRect(NewRect(-1000, -1000, 5000, 5000), red)

	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 4; sx++ {
			if s.SubPixel(sx, sy) != red {
				t.Fatalf("expected whole screen red, (%d, %d) = %v", sx, sy, s.SubPixel(sx, sy))
			}
		}
	}
}

func TestScreenStrokeRect(t *testing.T) {
	s := NewScreen(10, 5, DefaultScale())
	s.StrokeRect(NewRect(0, 0, 32, 32), gray)

	edges := [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}, {1, 0}, {0, 2}, {3, 1}, {2, 3}}
	for _, e := range edges {
		if s.SubPixel(e[0], e[1]) != gray {
			t.Errorf("StrokeRect: expected outline at (%d, %d)", e[0], e[1])
		}
	}

	interior := [][2]int{{1, 1}, {2, 2}, {1, 2}}
	for _, p := range interior {
		if s.SubPixel(p[0], p[1]) != Black {
			t.Errorf("StrokeRect: interior (%d, %d) should be untouched", p[0], p[1])
		}
	}
}

func TestScreenStrokeRectOffscreenEdgesSkipped(t *testing.T) {
	s := NewScreen(4, 2, DefaultScale())
	s.StrokeRect(NewRect(-16, -16, 48, 48), gray)

	// Left and top edges are off screen; right edge is sub-pixel column 3.
	if s.SubPixel(0, 0) != Black {
		t.Error("clipped outline should not be pulled onto the screen edge")
	}
	if s.SubPixel(3, 0) != gray {
		t.Error("right edge of outline should be visible")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(6, 3, DefaultScale())
	s.FillRect(NewRect(0, 0, 48, 48), red)
	s.DrawText(0, 0, "Hi", White)

	green := RGB{G: 139}
	s.Clear(green)

	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			c := s.GetCell(x, y)
			if c.Top != green || c.Bottom != green || c.Rune != 0 {
				t.Errorf("After Clear, expected green pixel cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5, DefaultScale())
	s.DrawText(2, 1, "Hello", White)

	for i, ch := range "Hello" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Fg != White {
			t.Errorf("DrawText: expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello", White)
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Pixel drawing over text turns the cell back into a pixel cell
	s.FillRect(NewRect(16, 16, 8, 8), red)
	if s.GetCell(2, 1).Rune != 0 {
		t.Error("FillRect should replace text in the painted cell")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 2, DefaultScale())
	s.DrawText(0, 0, "AAAAA", White)

	expected := "AAAAA\n▀▀▀▀▀"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10, DefaultScale())
	s.DrawText(0, 0, "Hello", White)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	w, h := s.Size()
	if w != 120 || h != 128 {
		t.Errorf("Size() after resize = (%d, %d), expected (120, 128)", w, h)
	}

	// Out of bounds row
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}
