package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("blank screen = %q", got)
	}
}

func TestSetColoredAndGetGlyph(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, '▓', ColorSnakeBody)

	if g := s.GetGlyph(1, 2); g != (Glyph{Rune: '▓', Color: ColorSnakeBody}) {
		t.Errorf("GetGlyph(1, 2) = %+v", g)
	}

	// Off-screen writes are dropped and reads see a blank.
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.SetColored(p[0], p[1], 'X', ColorAlert)
		if g := s.GetGlyph(p[0], p[1]); g != (Glyph{Rune: ' '}) {
			t.Errorf("GetGlyph(%d, %d) = %+v, expected blank", p[0], p[1], g)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("off-screen write leaked into the buffer")
	}
}

func TestDrawBoxColorsEveryEdge(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorBorder)

	expected := map[[2]int]rune{
		{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘',
		{3, 1}: '─', {3, 4}: '─', {1, 2}: '│', {5, 3}: '│',
	}
	for p, r := range expected {
		g := s.GetGlyph(p[0], p[1])
		if g.Rune != r || g.Color != ColorBorder {
			t.Errorf("(%d, %d) = %+v, expected %q in border color", p[0], p[1], g, r)
		}
	}
	if g := s.GetGlyph(3, 2); g.Rune != ' ' {
		t.Errorf("box interior = %q, expected blank", g.Rune)
	}
}

func TestDrawTextCenteredCountsRunes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		x     int
	}{
		{"ascii", "Snake", 11, 3},
		{"multi-byte", "▓▓<>", 10, 3},
		{"wider than screen", "Game Over", 5, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(tc.width, 1)
			s.DrawTextCentered(0, tc.text, ColorTitle)

			for i, r := range []rune(tc.text) {
				x := tc.x + i
				if x < 0 || x >= tc.width {
					continue
				}
				if g := s.GetGlyph(x, 0); g.Rune != r || g.Color != ColorTitle {
					t.Errorf("(%d, 0) = %+v, expected %q", x, g, r)
				}
			}
		})
	}
}

func TestDrawRectClearsUnderOverlay(t *testing.T) {
	s := NewScreen(6, 4)
	for x := range 6 {
		s.SetColored(x, 1, '█', ColorSnakeHead)
	}

	s.DrawRect(NewRect(2, 0, 3, 3), ' ')

	for x := 2; x < 5; x++ {
		if g := s.GetGlyph(x, 1); g != (Glyph{Rune: ' '}) {
			t.Errorf("(%d, 1) = %+v, expected cleared", x, g)
		}
	}
	// Cells outside the rect keep their glyph and colour.
	for _, x := range []int{0, 1, 5} {
		if g := s.GetGlyph(x, 1); g.Rune != '█' || g.Color != ColorSnakeHead {
			t.Errorf("(%d, 1) = %+v, expected untouched", x, g)
		}
	}
}

func TestResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 3)
	s.SetColored(1, 1, 'a', ColorFood)
	s.SetColored(3, 2, 'b', ColorFood)

	s.Resize(2, 2)
	if s.Width() != 2 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 2x2", s.Width(), s.Height())
	}
	if g := s.GetGlyph(1, 1); g.Rune != 'a' || g.Color != ColorFood {
		t.Errorf("kept glyph = %+v", g)
	}

	s.Resize(5, 3)
	if s.Get(3, 2) != ' ' {
		t.Error("glyph cut by shrinking came back after growing")
	}
	if s.Get(1, 1) != 'a' {
		t.Error("grow lost existing content")
	}
}

func TestClearResetsColor(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawTextColored(0, 0, "abc", ColorHUD)
	s.Clear()
	for x := range 3 {
		if g := s.GetGlyph(x, 0); g != (Glyph{Rune: ' '}) {
			t.Errorf("(%d, 0) = %+v after Clear", x, g)
		}
	}
}
