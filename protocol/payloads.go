// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/payloads.go
// Summary: Per-tag payload layouts with matching encode and decode helpers.

package protocol

import (
	"bytes"
	"fmt"

	"github.com/framegrace/texelstream/screen"
)

// PayloadLen returns the payload length a tag requires. When exact is false
// n is a minimum. Terminate and unknown tags report n < 0: any length is
// accepted.
func (t Tag) PayloadLen() (n int, exact bool) {
	switch t {
	case TagSetup:
		return 3, true
	case TagDrawCharacter:
		return 4, true
	case TagDrawLine:
		return 6, true
	case TagRenderText:
		return 3, false
	case TagMoveCursor, TagDrawAtCursor:
		return 2, true
	case TagClear:
		return 0, true
	default:
		return -1, false
	}
}

// CheckPayload validates the payload length of cmd against its tag.
func CheckPayload(cmd Command) error {
	n, exact := cmd.Tag.PayloadLen()
	switch {
	case n < 0:
		return nil
	case exact && len(cmd.Payload) != n:
		return fmt.Errorf("%w: %s requires exactly %d payload bytes, got %d", ErrFormat, cmd.Tag, n, len(cmd.Payload))
	case !exact && len(cmd.Payload) < n:
		return fmt.Errorf("%w: %s requires at least %d payload bytes, got %d", ErrFormat, cmd.Tag, n, len(cmd.Payload))
	}
	return nil
}

// ParseSetup decodes a setup payload.
//
// Layout:
//   - u8: width (non-zero)
//   - u8: height (non-zero)
//   - u8: colour mode code (0-2)
func ParseSetup(payload []byte) (width, height uint8, mode screen.ColorMode, err error) {
	if err := CheckPayload(Command{Tag: TagSetup, Payload: payload}); err != nil {
		return 0, 0, 0, err
	}
	width, height = payload[0], payload[1]
	if width == 0 || height == 0 {
		return 0, 0, 0, fmt.Errorf("%w: width and height must be non-zero, got %dx%d", screen.ErrValue, width, height)
	}
	mode, err = screen.ParseColorMode(payload[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return width, height, mode, nil
}

// SetupPayload encodes a setup payload.
func SetupPayload(width, height uint8, mode screen.ColorMode) []byte {
	return []byte{width, height, byte(mode)}
}

// DrawCharacterPayload encodes x, y, colour, glyph.
func DrawCharacterPayload(x, y, color uint8, glyph byte) []byte {
	return []byte{x, y, color, glyph}
}

// DecodeDrawCharacter decodes a DrawCharacterPayload.
func DecodeDrawCharacter(payload []byte) (x, y, color uint8, glyph byte, err error) {
	if err := CheckPayload(Command{Tag: TagDrawCharacter, Payload: payload}); err != nil {
		return 0, 0, 0, 0, err
	}
	return payload[0], payload[1], payload[2], payload[3], nil
}

// LineArgs holds a decoded draw-line payload.
type LineArgs struct {
	X1, Y1, X2, Y2 uint8
	Color          uint8
	Glyph          byte
}

// DrawLinePayload encodes x1, y1, x2, y2, colour, glyph.
func DrawLinePayload(a LineArgs) []byte {
	return []byte{a.X1, a.Y1, a.X2, a.Y2, a.Color, a.Glyph}
}

// DecodeDrawLine decodes a DrawLinePayload.
func DecodeDrawLine(payload []byte) (LineArgs, error) {
	if err := CheckPayload(Command{Tag: TagDrawLine, Payload: payload}); err != nil {
		return LineArgs{}, err
	}
	return LineArgs{
		X1:    payload[0],
		Y1:    payload[1],
		X2:    payload[2],
		Y2:    payload[3],
		Color: payload[4],
		Glyph: payload[5],
	}, nil
}

// RenderTextPayload encodes x, y, colour followed by the text bytes.
func RenderTextPayload(x, y, color uint8, text []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 3+len(text)))
	buf.Write([]byte{x, y, color})
	buf.Write(text)
	return buf.Bytes()
}

// DecodeRenderText decodes a RenderTextPayload. The returned text aliases
// payload.
func DecodeRenderText(payload []byte) (x, y, color uint8, text []byte, err error) {
	if err := CheckPayload(Command{Tag: TagRenderText, Payload: payload}); err != nil {
		return 0, 0, 0, nil, err
	}
	return payload[0], payload[1], payload[2], payload[3:], nil
}

// MoveCursorPayload encodes x, y.
func MoveCursorPayload(x, y uint8) []byte {
	return []byte{x, y}
}

// DecodeMoveCursor decodes a MoveCursorPayload.
func DecodeMoveCursor(payload []byte) (x, y uint8, err error) {
	if err := CheckPayload(Command{Tag: TagMoveCursor, Payload: payload}); err != nil {
		return 0, 0, err
	}
	return payload[0], payload[1], nil
}

// DrawAtCursorPayload encodes glyph, colour. Note the glyph comes first,
// unlike the positioned draw commands.
func DrawAtCursorPayload(glyph byte, color uint8) []byte {
	return []byte{glyph, color}
}

// DecodeDrawAtCursor decodes a DrawAtCursorPayload.
func DecodeDrawAtCursor(payload []byte) (glyph byte, color uint8, err error) {
	if err := CheckPayload(Command{Tag: TagDrawAtCursor, Payload: payload}); err != nil {
		return 0, 0, err
	}
	return payload[0], payload[1], nil
}

// EncodeCommands frames cmds back to back.
func EncodeCommands(cmds ...Command) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	for _, cmd := range cmds {
		if err := WriteCommand(buf, cmd); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
