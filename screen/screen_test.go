// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/screen_test.go
// Summary: Exercises the screen drawing primitives and bounds checks.
// Usage: Executed during `go test` to guard against regressions.

package screen

import (
	"errors"
	"strings"
	"testing"
)

func newTestScreen(t *testing.T, w, h uint8) *Screen {
	t.Helper()
	s, err := New(w, h, Color256)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return s
}

func countNonBlank(s *Screen) int {
	n := 0
	for y := uint8(0); y < s.Height(); y++ {
		for _, cell := range s.Row(y) {
			if cell != BlankCell {
				n++
			}
		}
	}
	return n
}

func TestNewStartsBlank(t *testing.T) {
	s := newTestScreen(t, 4, 3)
	if s.Width() != 4 || s.Height() != 3 || s.ColorMode() != Color256 {
		t.Fatalf("unexpected geometry %dx%d mode %v", s.Width(), s.Height(), s.ColorMode())
	}
	if x, y := s.Cursor(); x != 0 || y != 0 {
		t.Fatalf("expected cursor at origin, got (%d,%d)", x, y)
	}
	if n := countNonBlank(s); n != 0 {
		t.Fatalf("expected blank screen, found %d written cells", n)
	}
}

func TestNewRejectsInvalidSetup(t *testing.T) {
	if _, err := New(0, 5, Monochrome); !errors.Is(err, ErrValue) {
		t.Fatalf("expected ErrValue for zero width, got %v", err)
	}
	if _, err := New(5, 0, Monochrome); !errors.Is(err, ErrValue) {
		t.Fatalf("expected ErrValue for zero height, got %v", err)
	}
	if _, err := New(5, 5, ColorMode(3)); !errors.Is(err, ErrValue) {
		t.Fatalf("expected ErrValue for undefined mode, got %v", err)
	}
}

func TestDrawCharacterEveryCell(t *testing.T) {
	s := newTestScreen(t, 7, 5)
	for y := uint8(0); y < 5; y++ {
		for x := uint8(0); x < 7; x++ {
			glyph := byte('a' + (int(x)+int(y))%26)
			if err := s.DrawCharacter(x, y, glyph, x*y); err != nil {
				t.Fatalf("DrawCharacter(%d,%d): %v", x, y, err)
			}
			got, err := s.Cell(x, y)
			if err != nil {
				t.Fatalf("Cell(%d,%d): %v", x, y, err)
			}
			if got.Glyph != glyph || got.Color != x*y {
				t.Fatalf("cell (%d,%d) = %+v", x, y, got)
			}
		}
	}
}

func TestDrawCharacterOutOfBoundsLeavesScreenUnchanged(t *testing.T) {
	s := newTestScreen(t, 10, 4)
	if err := s.DrawCharacter(2, 2, 'k', 1); err != nil {
		t.Fatalf("DrawCharacter: %v", err)
	}
	before := s.Dump()

	for _, pt := range [][2]uint8{{10, 0}, {0, 4}, {255, 255}, {9, 4}} {
		if err := s.DrawCharacter(pt[0], pt[1], 'X', 9); !errors.Is(err, ErrBounds) {
			t.Fatalf("DrawCharacter(%d,%d): expected ErrBounds, got %v", pt[0], pt[1], err)
		}
	}
	if s.Dump() != before {
		t.Fatalf("screen changed after rejected writes")
	}
}

func TestDrawLineSinglePoint(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	if err := s.DrawLine(0, 0, 0, 0, '*', 1); err != nil {
		t.Fatalf("DrawLine: %v", err)
	}
	if n := countNonBlank(s); n != 1 {
		t.Fatalf("expected exactly one cell, got %d", n)
	}
	if c, _ := s.Cell(0, 0); c.Glyph != '*' || c.Color != 1 {
		t.Fatalf("unexpected origin cell %+v", c)
	}
}

func TestDrawLineShallowSlope(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	if err := s.DrawLine(5, 5, 20, 10, '*', 2); err != nil {
		t.Fatalf("DrawLine: %v", err)
	}
	if n := countNonBlank(s); n != 16 {
		t.Fatalf("expected 16 cells, got %d", n)
	}
	for _, pt := range [][2]uint8{{5, 5}, {20, 10}} {
		c, _ := s.Cell(pt[0], pt[1])
		if c.Glyph != '*' || c.Color != 2 {
			t.Fatalf("endpoint (%d,%d) not drawn: %+v", pt[0], pt[1], c)
		}
	}
	// One cell per column on a shallow line.
	for x := uint8(5); x <= 20; x++ {
		hits := 0
		for y := uint8(0); y < 24; y++ {
			if c, _ := s.Cell(x, y); c.Glyph == '*' {
				hits++
			}
		}
		if hits != 1 {
			t.Fatalf("column %d has %d cells", x, hits)
		}
	}
}

func TestDrawLineDirections(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 uint8
		want           int
	}{
		{"horizontal", 1, 3, 8, 3, 8},
		{"horizontal reversed", 8, 3, 1, 3, 8},
		{"vertical", 4, 0, 4, 9, 10},
		{"vertical reversed", 4, 9, 4, 0, 10},
		{"diagonal", 0, 0, 9, 9, 10},
		{"anti-diagonal", 9, 0, 0, 9, 10},
		{"steep", 2, 0, 5, 9, 10},
		{"steep reversed", 5, 9, 2, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScreen(t, 10, 10)
			if err := s.DrawLine(tt.x1, tt.y1, tt.x2, tt.y2, '#', 7); err != nil {
				t.Fatalf("DrawLine: %v", err)
			}
			if n := countNonBlank(s); n != tt.want {
				t.Fatalf("expected %d cells, got %d", tt.want, n)
			}
			for _, pt := range [][2]uint8{{tt.x1, tt.y1}, {tt.x2, tt.y2}} {
				if c, _ := s.Cell(pt[0], pt[1]); c.Glyph != '#' {
					t.Fatalf("endpoint (%d,%d) not drawn", pt[0], pt[1])
				}
			}
		})
	}
}

func TestDrawLineRejectsAnyOutOfRangeCoordinate(t *testing.T) {
	s := newTestScreen(t, 10, 10)
	cases := [][4]uint8{{10, 0, 0, 0}, {0, 10, 0, 0}, {0, 0, 10, 0}, {0, 0, 0, 10}}
	for _, c := range cases {
		if err := s.DrawLine(c[0], c[1], c[2], c[3], '#', 1); !errors.Is(err, ErrBounds) {
			t.Fatalf("DrawLine%v: expected ErrBounds, got %v", c, err)
		}
	}
	if n := countNonBlank(s); n != 0 {
		t.Fatalf("rejected lines wrote %d cells", n)
	}
}

func TestRenderTextFits(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	text := []byte("Hello, World!")
	if err := s.RenderText(2, 2, 3, text); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	for i, ch := range text {
		c, _ := s.Cell(uint8(2+i), 2)
		if c.Glyph != ch || c.Color != 3 {
			t.Fatalf("column %d = %+v, want %q", 2+i, c, ch)
		}
	}
	if n := countNonBlank(s); n != len(text) {
		t.Fatalf("expected %d cells, got %d", len(text), n)
	}
}

func TestRenderTextTruncatesAtRightEdge(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	if err := s.RenderText(75, 2, 3, []byte("Hello, World!")); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	row := s.Row(2)
	if got := rowText(row[75:]); got != "Hello" {
		t.Fatalf("expected truncated %q, got %q", "Hello", got)
	}
	if n := countNonBlank(s); n != 5 {
		t.Fatalf("expected 5 cells, got %d", n)
	}
	if next := rowText(s.Row(3)[:5]); strings.TrimSpace(next) != "" {
		t.Fatalf("text wrapped onto next row: %q", next)
	}
}

func TestRenderTextNearUint8Limit(t *testing.T) {
	s := newTestScreen(t, 255, 1)
	long := []byte(strings.Repeat("x", 300))
	if err := s.RenderText(250, 0, 1, long); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if n := countNonBlank(s); n != 5 {
		t.Fatalf("expected 5 cells at the edge, got %d", n)
	}
	if c, _ := s.Cell(0, 0); c != BlankCell {
		t.Fatalf("column arithmetic wrapped to column 0: %+v", c)
	}
}

func TestRenderTextRejectsStartOutOfBounds(t *testing.T) {
	s := newTestScreen(t, 10, 2)
	if err := s.RenderText(10, 0, 1, []byte("x")); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected ErrBounds, got %v", err)
	}
	if err := s.RenderText(0, 2, 1, []byte("x")); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected ErrBounds, got %v", err)
	}
}

func TestCursorMoveAndDraw(t *testing.T) {
	s := newTestScreen(t, 80, 24)
	if err := s.MoveCursor(15, 10); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}
	if err := s.DrawAtCursor('@', 4); err != nil {
		t.Fatalf("DrawAtCursor: %v", err)
	}
	if c, _ := s.Cell(15, 10); c.Glyph != '@' || c.Color != 4 {
		t.Fatalf("cursor cell = %+v", c)
	}
	if x, y := s.Cursor(); x != 15 || y != 10 {
		t.Fatalf("cursor advanced to (%d,%d)", x, y)
	}
	if err := s.MoveCursor(80, 0); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected ErrBounds, got %v", err)
	}
	if x, y := s.Cursor(); x != 15 || y != 10 {
		t.Fatalf("rejected move changed cursor to (%d,%d)", x, y)
	}
}

func TestClearResetsCellsAndCursor(t *testing.T) {
	s := newTestScreen(t, 12, 6)
	_ = s.DrawLine(0, 0, 11, 5, '*', 9)
	_ = s.MoveCursor(3, 4)
	s.Clear()

	if n := countNonBlank(s); n != 0 {
		t.Fatalf("expected blank screen after clear, got %d cells", n)
	}
	if x, y := s.Cursor(); x != 0 || y != 0 {
		t.Fatalf("expected cursor at origin, got (%d,%d)", x, y)
	}
}

func TestDumpFormat(t *testing.T) {
	s, err := New(3, 2, Color16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = s.DrawCharacter(1, 0, 'A', 5)
	_ = s.DrawCharacter(2, 1, 'B', 6)

	want := "Screen (3x2, Color Mode: 1)\n A \n  B\n"
	if got := s.Dump(); got != want {
		t.Fatalf("dump mismatch:\n got %q\nwant %q", got, want)
	}

	var sb strings.Builder
	n, err := s.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if int(n) != len(want) || sb.String() != want {
		t.Fatalf("WriteTo wrote %d bytes %q", n, sb.String())
	}
}

func TestReleaseDropsCells(t *testing.T) {
	s := newTestScreen(t, 4, 4)
	s.Release()
	if err := s.DrawCharacter(0, 0, 'x', 1); !errors.Is(err, ErrBounds) {
		t.Fatalf("expected ErrBounds after release, got %v", err)
	}
	if s.Row(0) != nil {
		t.Fatalf("expected no rows after release")
	}
}

func TestParseColorMode(t *testing.T) {
	for code := 0; code < 256; code++ {
		mode, err := ParseColorMode(uint8(code))
		if code <= 2 {
			if err != nil || uint8(mode) != uint8(code) {
				t.Fatalf("code %d: mode %v err %v", code, mode, err)
			}
			continue
		}
		if !errors.Is(err, ErrValue) {
			t.Fatalf("code %d: expected ErrValue, got %v", code, err)
		}
	}
	if Color16.Colors() != 16 || Monochrome.String() != "monochrome" {
		t.Fatalf("unexpected mode metadata")
	}
}

func rowText(row []Cell) string {
	b := make([]byte, len(row))
	for i, c := range row {
		b[i] = c.Glyph
	}
	return string(b)
}
