// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/dump.go
// Summary: Deterministic plain-text dump of a screen.

package screen

import (
	"bytes"
	"fmt"
	"io"
)

// Header returns the first line of the dump without its newline.
func (s *Screen) Header() string {
	return fmt.Sprintf("Screen (%dx%d, Color Mode: %d)", s.width, s.height, uint8(s.mode))
}

// Dump renders the header followed by one line of raw glyph bytes per row.
// Colours are not rendered.
func (s *Screen) Dump() string {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the Dump representation to w.
func (s *Screen) WriteTo(w io.Writer) (int64, error) {
	buf := bytes.NewBuffer(make([]byte, 0, (int(s.width)+1)*(int(s.height)+1)+32))
	buf.WriteString(s.Header())
	buf.WriteByte('\n')
	for _, row := range s.grid {
		for _, cell := range row {
			buf.WriteByte(cell.Glyph)
		}
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}
