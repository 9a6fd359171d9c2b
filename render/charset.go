// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/charset.go
// Summary: Glyph byte decoding for sinks that print runes.

package render

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// Charset maps a cell's glyph byte to the rune a terminal should display.
// The zero value behaves like ASCII.
type Charset struct {
	name string
	cm   *charmap.Charmap
}

var (
	ASCII  = Charset{name: "ascii"}
	CP437  = Charset{name: "cp437", cm: charmap.CodePage437}
	Latin1 = Charset{name: "latin1", cm: charmap.ISO8859_1}
)

// Charsets lists the supported charsets in flag order.
var Charsets = []Charset{ASCII, CP437, Latin1}

// LookupCharset returns the charset registered under name (case-insensitive).
func LookupCharset(name string) (Charset, error) {
	for _, cs := range Charsets {
		if strings.EqualFold(cs.name, name) {
			return cs, nil
		}
	}
	return Charset{}, fmt.Errorf("%w: unknown charset %q", ErrUnknown, name)
}

// Name returns the charset's flag name.
func (c Charset) Name() string {
	if c.name == "" {
		return ASCII.name
	}
	return c.name
}

// Rune decodes b. NUL shows as a space, other control characters as '.',
// and bytes the charset cannot represent as '?'.
func (c Charset) Rune(b byte) rune {
	if b == 0 {
		return ' '
	}
	var r rune
	switch {
	case b < 0x80:
		r = rune(b)
	case c.cm == nil:
		return '?'
	default:
		r = c.cm.DecodeByte(b)
	}
	if unicode.IsControl(r) {
		return '.'
	}
	return r
}
