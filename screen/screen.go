// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/screen.go
// Summary: Fixed-size glyph/colour grid with a cursor and bounds-checked drawing primitives.
// Usage: Created by the dispatcher on a setup command and mutated by every drawing command.
// Notes: Dimensions never change after New; every mutator validates before writing.

package screen

import "fmt"

// Cell is one grid position.
type Cell struct {
	Glyph byte
	Color uint8
}

// BlankCell is the value every cell holds after New or Clear.
var BlankCell = Cell{Glyph: ' ', Color: 0}

// Screen holds the display grid and cursor state.
type Screen struct {
	width, height    uint8
	mode             ColorMode
	grid             [][]Cell
	cursorX, cursorY uint8
}

// New allocates a blank width x height screen with the cursor at the origin.
func New(width, height uint8, mode ColorMode) (*Screen, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be non-zero", ErrValue, width, height)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: undefined color mode %d", ErrValue, uint8(mode))
	}
	s := &Screen{
		width:  width,
		height: height,
		mode:   mode,
		grid:   make([][]Cell, height),
	}
	for y := range s.grid {
		s.grid[y] = make([]Cell, width)
	}
	s.Clear()
	return s, nil
}

// Width returns the number of columns.
func (s *Screen) Width() uint8 { return s.width }

// Height returns the number of rows.
func (s *Screen) Height() uint8 { return s.height }

// ColorMode returns the mode the screen was created with.
func (s *Screen) ColorMode() ColorMode { return s.mode }

// Cursor returns the current cursor position.
func (s *Screen) Cursor() (x, y uint8) { return s.cursorX, s.cursorY }

// Cell returns the cell at (x, y).
func (s *Screen) Cell(x, y uint8) (Cell, error) {
	if err := s.check(x, y); err != nil {
		return Cell{}, err
	}
	return s.grid[y][x], nil
}

// Row returns a copy of row y, or nil when y is out of range.
func (s *Screen) Row(y uint8) []Cell {
	if y >= s.height {
		return nil
	}
	row := make([]Cell, s.width)
	copy(row, s.grid[y])
	return row
}

// DrawCharacter sets the cell at (x, y).
func (s *Screen) DrawCharacter(x, y uint8, glyph byte, color uint8) error {
	if err := s.check(x, y); err != nil {
		return err
	}
	s.grid[y][x] = Cell{Glyph: glyph, Color: color}
	return nil
}

// DrawLine rasterises the segment (x1, y1)-(x2, y2) with Bresenham stepping.
// Both endpoints are drawn; a zero-length segment draws a single cell.
func (s *Screen) DrawLine(x1, y1, x2, y2 uint8, glyph byte, color uint8) error {
	if x1 >= s.width || y1 >= s.height || x2 >= s.width || y2 >= s.height {
		return fmt.Errorf("%w: line (%d,%d)-(%d,%d) on %dx%d screen",
			ErrBounds, x1, y1, x2, y2, s.width, s.height)
	}

	cell := Cell{Glyph: glyph, Color: color}
	x, y := int(x1), int(y1)
	endX, endY := int(x2), int(y2)
	dx := abs(endX - x)
	dy := abs(endY - y)
	sx, sy := -1, -1
	if x < endX {
		sx = 1
	}
	if y < endY {
		sy = 1
	}
	err := dx - dy

	for {
		s.grid[y][x] = cell
		if x == endX && y == endY {
			return nil
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// RenderText writes text left to right from (x, y). Characters that would
// fall past the right edge are dropped; the row never changes.
func (s *Screen) RenderText(x, y uint8, color uint8, text []byte) error {
	if err := s.check(x, y); err != nil {
		return fmt.Errorf("text start: %w", err)
	}
	row := s.grid[y]
	for i, glyph := range text {
		col := int(x) + i
		if col >= int(s.width) {
			break
		}
		row[col] = Cell{Glyph: glyph, Color: color}
	}
	return nil
}

// MoveCursor places the cursor at (x, y).
func (s *Screen) MoveCursor(x, y uint8) error {
	if err := s.check(x, y); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	s.cursorX, s.cursorY = x, y
	return nil
}

// DrawAtCursor draws at the cursor without advancing it.
func (s *Screen) DrawAtCursor(glyph byte, color uint8) error {
	return s.DrawCharacter(s.cursorX, s.cursorY, glyph, color)
}

// Clear blanks every cell and homes the cursor.
func (s *Screen) Clear() {
	for _, row := range s.grid {
		for x := range row {
			row[x] = BlankCell
		}
	}
	s.cursorX, s.cursorY = 0, 0
}

// Release drops the grid. A released screen has no cells, so every coordinate
// is out of bounds and Dump yields only the header.
func (s *Screen) Release() {
	s.grid = nil
	s.width, s.height = 0, 0
	s.cursorX, s.cursorY = 0, 0
}

func (s *Screen) check(x, y uint8) error {
	if x >= s.width || y >= s.height {
		return fmt.Errorf("%w: (%d,%d) on %dx%d screen", ErrBounds, x, y, s.width, s.height)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
