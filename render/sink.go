// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/sink.go
// Summary: Output sinks for a finished screen buffer.
// Usage: The CLI picks a sink by format name and hands it the dispatcher's final screen.

package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/framegrace/texelstream/screen"
)

// ErrUnknown reports a format or charset name with no implementation.
var ErrUnknown = errors.New("render: unknown name")

// Format names accepted by NewSink.
const (
	FormatText  = "text"
	FormatANSI  = "ansi"
	FormatFrame = "frame"
)

// Sink writes a screen to its destination. Sinks never modify the screen.
type Sink interface {
	Render(s *screen.Screen) error
}

// NewSink returns the writer-backed sink registered under format.
func NewSink(format string, w io.Writer, cs Charset) (Sink, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return &TextSink{W: w}, nil
	case FormatANSI:
		return &ANSISink{W: w, Charset: cs}, nil
	case FormatFrame:
		return &FrameSink{W: w, Charset: cs}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrUnknown, format)
	}
}

// TextSink writes the plain dump: header line, then raw glyph bytes.
type TextSink struct {
	W io.Writer
}

func (t *TextSink) Render(s *screen.Screen) error {
	_, err := s.WriteTo(t.W)
	return err
}

// paletteIndex maps a cell colour onto the palette of mode by reducing it
// modulo the mode's colour count, so Color16 keeps the low nibble. A colour
// that reduces to 0 uses the terminal default, reported as ok == false, as
// does every colour in monochrome mode.
func paletteIndex(mode screen.ColorMode, color uint8) (idx int, ok bool) {
	if mode == screen.Monochrome || mode.Colors() == 0 {
		return 0, false
	}
	idx = int(color) % mode.Colors()
	return idx, idx != 0
}
