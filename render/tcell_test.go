// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/tcell_test.go
// Summary: Exercises blitting onto a simulated tcell screen.
// Usage: Executed during `go test` to guard against regressions.

package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstream/screen"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ts := tcell.NewSimulationScreen("UTF-8")
	if err := ts.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(ts.Fini)
	ts.SetSize(w, h)
	return ts
}

func readLine(ts tcell.Screen, x, y, width int) string {
	runes := make([]rune, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := ts.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes[i] = ch
	}
	return string(runes)
}

func TestTcellSinkPlacesCells(t *testing.T) {
	ts := newSimScreen(t, 10, 4)
	s := newScreen(t, 5, 2, screen.Color256)
	draw(t, s, 1, 0, 'A', 3)
	draw(t, s, 2, 1, 0xDB, 0)
	if err := s.MoveCursor(4, 1); err != nil {
		t.Fatalf("MoveCursor: %v", err)
	}

	if err := (&TcellSink{Screen: ts, Charset: CP437}).Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := readLine(ts, 0, 0, 5); got != " A   " {
		t.Fatalf("row 0 = %q", got)
	}
	if got := readLine(ts, 0, 1, 5); got != "  █  " {
		t.Fatalf("row 1 = %q", got)
	}

	_, _, style, _ := ts.GetContent(1, 0)
	fg, _, _ := style.Decompose()
	if fg != tcell.PaletteColor(3) {
		t.Fatalf("expected palette colour 3, got %v", fg)
	}
	_, _, style, _ = ts.GetContent(2, 1)
	if fg, _, _ := style.Decompose(); fg != tcell.ColorDefault {
		t.Fatalf("expected default colour for colour 0, got %v", fg)
	}
}

func TestBlitClipsAndOffsets(t *testing.T) {
	ts := newSimScreen(t, 3, 1)
	s := newScreen(t, 5, 2, screen.Monochrome)
	if err := s.RenderText(0, 0, 0, []byte("abcde")); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	if n := Blit(ts, s, ASCII, 0, 0, 0, 0); n != 3 {
		t.Fatalf("expected 3 cells written, got %d", n)
	}
	if got := readLine(ts, 0, 0, 3); got != "abc" {
		t.Fatalf("clipped row = %q", got)
	}

	if n := Blit(ts, s, ASCII, 2, 0, 0, 0); n != 3 {
		t.Fatalf("expected 3 cells written from offset, got %d", n)
	}
	if got := readLine(ts, 0, 0, 3); got != "cde" {
		t.Fatalf("offset row = %q", got)
	}

	if n := Blit(ts, s, ASCII, 0, 0, 1, 0); n != 2 {
		t.Fatalf("expected 2 cells written when shifted right, got %d", n)
	}
}

func TestStyleMonochromeIgnoresColour(t *testing.T) {
	if Style(screen.Monochrome, 7) != tcell.StyleDefault {
		t.Fatalf("monochrome cells should use the default style")
	}
	if Style(screen.Color16, 0x1A) != tcell.StyleDefault.Foreground(tcell.PaletteColor(10)) {
		t.Fatalf("16-colour cells should mask to the low nibble")
	}
	if Style(screen.Color16, 0x10) != tcell.StyleDefault {
		t.Fatalf("16-colour cells masking to 0 should use the default style")
	}
}

func TestTcellSinkOffsets(t *testing.T) {
	ts := newSimScreen(t, 3, 1)
	s := newScreen(t, 5, 1, screen.Monochrome)
	if err := s.RenderText(0, 0, 0, []byte("abcde")); err != nil {
		t.Fatalf("RenderText: %v", err)
	}

	sink := &TcellSink{Screen: ts, Charset: ASCII, OffsetX: 2}
	if err := sink.Render(s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := readLine(ts, 0, 0, 3); got != "cde" {
		t.Fatalf("offset row = %q", got)
	}
}
