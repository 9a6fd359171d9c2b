// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/colormode.go
// Summary: Colour depth enumeration carried by the setup command.

package screen

import "fmt"

// ColorMode is the colour depth a screen was created with.
type ColorMode uint8

const (
	Monochrome ColorMode = iota
	Color16
	Color256
)

// ParseColorMode decodes a wire colour-mode code. Codes outside the known set
// are rejected, never clamped.
func ParseColorMode(code uint8) (ColorMode, error) {
	mode := ColorMode(code)
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: undefined color mode %d", ErrValue, code)
	}
	return mode, nil
}

// Valid reports whether m is one of the defined modes.
func (m ColorMode) Valid() bool {
	return m <= Color256
}

// Colors returns the number of distinct colours the mode can show.
func (m ColorMode) Colors() int {
	switch m {
	case Monochrome:
		return 2
	case Color16:
		return 16
	case Color256:
		return 256
	default:
		return 0
	}
}

func (m ColorMode) String() string {
	switch m {
	case Monochrome:
		return "monochrome"
	case Color16:
		return "16-color"
	case Color256:
		return "256-color"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}
