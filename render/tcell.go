// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/tcell.go
// Summary: Copies a screen buffer onto a tcell.Screen.
// Usage: The interactive viewer blits the final buffer each frame; tests use the simulation screen.

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstream/screen"
)

// Style returns the tcell style for a cell colour under mode.
func Style(mode screen.ColorMode, color uint8) tcell.Style {
	style := tcell.StyleDefault
	if idx, ok := paletteIndex(mode, color); ok {
		style = style.Foreground(tcell.PaletteColor(idx))
	}
	return style
}

// Blit copies the cells of s starting at source column sx, row sy onto ts
// with the top-left corner at destination column dx, row dy. Cells that fall
// outside ts are clipped. It returns the number of cells written.
func Blit(ts tcell.Screen, s *screen.Screen, cs Charset, sx, sy, dx, dy int) int {
	tw, th := ts.Size()
	mode := s.ColorMode()
	written := 0
	for y := sy; y < int(s.Height()); y++ {
		row := dy + y - sy
		if row < 0 {
			continue
		}
		if row >= th {
			break
		}
		cells := s.Row(uint8(y))
		for x := sx; x < len(cells); x++ {
			col := dx + x - sx
			if col < 0 {
				continue
			}
			if col >= tw {
				break
			}
			cell := cells[x]
			ts.SetContent(col, row, cs.Rune(cell.Glyph), nil, Style(mode, cell.Color))
			written++
		}
	}
	return written
}

// TcellSink renders into a tcell screen owned by the caller. OffsetX and
// OffsetY select the buffer cell drawn at the terminal's top-left corner.
// The terminal cursor follows the buffer cursor and is hidden while that
// cell is scrolled out of view.
type TcellSink struct {
	Screen  tcell.Screen
	Charset Charset
	OffsetX int
	OffsetY int
}

func (t *TcellSink) Render(s *screen.Screen) error {
	t.Screen.Clear()
	Blit(t.Screen, s, t.Charset, t.OffsetX, t.OffsetY, 0, 0)
	w, h := t.Screen.Size()
	cx, cy := s.Cursor()
	col, row := int(cx)-t.OffsetX, int(cy)-t.OffsetY
	if col >= 0 && col < w && row >= 0 && row < h {
		t.Screen.ShowCursor(col, row)
	} else {
		t.Screen.HideCursor()
	}
	t.Screen.Show()
	return nil
}
