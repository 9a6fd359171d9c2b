// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/frame.go
// Summary: Dump sink that draws the buffer inside a box with the header as its title.

package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelstream/screen"
)

// FrameSink draws the screen inside a single-line box. The header is set
// into the top border and truncated with an ellipsis when the screen is too
// narrow to hold it. The cursor cell is not marked.
type FrameSink struct {
	W       io.Writer
	Charset Charset
}

func (f *FrameSink) Render(s *screen.Screen) error {
	bw := bufio.NewWriter(f.W)
	width := int(s.Width())

	title := frameTitle(s.Header(), width)
	bw.WriteString("┌")
	bw.WriteString(title)
	bw.WriteString(strings.Repeat("─", max(width-runewidth.StringWidth(title), 0)))
	bw.WriteString("┐\n")

	for y := 0; y < int(s.Height()); y++ {
		bw.WriteString("│")
		for _, cell := range s.Row(uint8(y)) {
			bw.WriteRune(f.Charset.Rune(cell.Glyph))
		}
		bw.WriteString("│\n")
	}

	bw.WriteString("└")
	bw.WriteString(strings.Repeat("─", width))
	bw.WriteString("┘\n")
	return bw.Flush()
}

// frameTitle fits title into width columns. The ellipsis is dropped when it
// is itself too wide, as it is under East Asian width rules.
func frameTitle(title string, width int) string {
	if runewidth.StringWidth(title) <= width {
		return title
	}
	if t := runewidth.Truncate(title, width, "…"); runewidth.StringWidth(t) <= width {
		return t
	}
	return runewidth.Truncate(title, width, "")
}
