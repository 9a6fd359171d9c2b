// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/ansi.go
// Summary: Dump sink that colours glyphs with SGR escape sequences.

package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/framegrace/texelstream/screen"
)

const sgrReset = "\x1b[0m"

// ANSISink writes the dump with each run of same-coloured cells prefixed by
// an SGR foreground sequence. Every row ends in the default colour.
type ANSISink struct {
	W       io.Writer
	Charset Charset
}

func (a *ANSISink) Render(s *screen.Screen) error {
	bw := bufio.NewWriter(a.W)
	mode := s.ColorMode()
	fmt.Fprintln(bw, s.Header())
	for y := 0; y < int(s.Height()); y++ {
		current := ""
		for _, cell := range s.Row(uint8(y)) {
			if seq := sgr(mode, cell.Color); seq != current {
				if seq == "" {
					bw.WriteString(sgrReset)
				} else {
					bw.WriteString(seq)
				}
				current = seq
			}
			bw.WriteRune(a.Charset.Rune(cell.Glyph))
		}
		if current != "" {
			bw.WriteString(sgrReset)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// sgr returns the foreground sequence for color, or "" for the default.
func sgr(mode screen.ColorMode, color uint8) string {
	idx, ok := paletteIndex(mode, color)
	if !ok {
		return ""
	}
	if mode == screen.Color16 {
		if idx < 8 {
			return fmt.Sprintf("\x1b[%dm", 30+idx)
		}
		return fmt.Sprintf("\x1b[%dm", 90+idx-8)
	}
	return fmt.Sprintf("\x1b[38;5;%dm", idx)
}
