// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol.go
// Summary: Tag/length/payload framing for the screen command stream.
// Usage: Decoder walks an in-memory stream; ReadCommand/WriteCommand frame io streams.
// Notes: Framing only. Tag values and payload contents are validated by callers.

package protocol

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Tag identifies the command carried by a frame.
type Tag uint8

const (
	TagSetup         Tag = 0x01
	TagDrawCharacter Tag = 0x02
	TagDrawLine      Tag = 0x03
	TagRenderText    Tag = 0x04
	TagMoveCursor    Tag = 0x05
	TagDrawAtCursor  Tag = 0x06
	TagClear         Tag = 0x07
	TagTerminate     Tag = 0xFF
)

const (
	frameHeaderSize = 2

	// MaxPayload is the largest payload a one-byte length can describe.
	MaxPayload = 0xFF
)

var (
	// ErrFormat reports a malformed frame or a payload of the wrong length.
	ErrFormat = errors.New("protocol: malformed command")
	// ErrTruncatedStream reports input ending inside a frame.
	ErrTruncatedStream = fmt.Errorf("%w: truncated stream", ErrFormat)
	// ErrPayloadTooLarge is returned when encoding more than MaxPayload bytes.
	ErrPayloadTooLarge = fmt.Errorf("%w: payload exceeds %d bytes", ErrFormat, MaxPayload)
)

// Command is a single decoded frame. Payload may alias the decoder input.
type Command struct {
	Tag     Tag
	Payload []byte
}

// Known reports whether t is one of the recognised command tags.
func (t Tag) Known() bool {
	switch t {
	case TagSetup, TagDrawCharacter, TagDrawLine, TagRenderText,
		TagMoveCursor, TagDrawAtCursor, TagClear, TagTerminate:
		return true
	default:
		return false
	}
}

func (t Tag) String() string {
	switch t {
	case TagSetup:
		return "setup"
	case TagDrawCharacter:
		return "draw_character"
	case TagDrawLine:
		return "draw_line"
	case TagRenderText:
		return "render_text"
	case TagMoveCursor:
		return "move_cursor"
	case TagDrawAtCursor:
		return "draw_at_cursor"
	case TagClear:
		return "clear"
	case TagTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("tag(0x%02x)", uint8(t))
	}
}

// Decoder splits a byte slice into commands on demand.
type Decoder struct {
	data []byte
	off  int
	err  error
}

// NewDecoder returns a decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Next returns the next command. It returns io.EOF once the input is consumed
// on a frame boundary. A framing error is sticky until Reset.
func (d *Decoder) Next() (Command, error) {
	if d.err != nil {
		return Command{}, d.err
	}
	if d.off >= len(d.data) {
		return Command{}, io.EOF
	}

	rest := d.data[d.off:]
	if len(rest) < frameHeaderSize {
		d.err = fmt.Errorf("%w: tag 0x%02x at offset %d has no length byte", ErrTruncatedStream, rest[0], d.off)
		return Command{}, d.err
	}
	n := int(rest[1])
	if len(rest)-frameHeaderSize < n {
		d.err = fmt.Errorf("%w: tag 0x%02x at offset %d declares %d payload bytes, %d remain",
			ErrTruncatedStream, rest[0], d.off, n, len(rest)-frameHeaderSize)
		return Command{}, d.err
	}

	end := frameHeaderSize + n
	cmd := Command{Tag: Tag(rest[0]), Payload: rest[frameHeaderSize:end:end]}
	d.off += end
	return cmd, nil
}

// Offset returns the index of the next unread byte.
func (d *Decoder) Offset() int {
	return d.off
}

// Reset rewinds the decoder to the first byte and clears any error.
func (d *Decoder) Reset() {
	d.off = 0
	d.err = nil
}

// All iterates the decoder's input from the beginning. Iteration ends at
// end of input or after yielding the first error.
func (d *Decoder) All() iter.Seq2[Command, error] {
	return Commands(d.data)
}

// Commands iterates the commands framed in data. Each call to the returned
// sequence starts again from the first byte.
func Commands(data []byte) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		dec := NewDecoder(data)
		for {
			cmd, err := dec.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(cmd, err) || err != nil {
				return
			}
		}
	}
}

// ReadCommand reads one frame from r. It returns io.EOF only when r is
// exhausted before the tag byte; any later shortfall is ErrTruncatedStream.
func ReadCommand(r io.Reader) (Command, error) {
	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Command{}, fmt.Errorf("%w: tag 0x%02x has no length byte", ErrTruncatedStream, hdr[0])
		}
		return Command{}, err
	}

	cmd := Command{Tag: Tag(hdr[0]), Payload: make([]byte, hdr[1])}
	if len(cmd.Payload) > 0 {
		if _, err := io.ReadFull(r, cmd.Payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Command{}, fmt.Errorf("%w: %s declares %d payload bytes", ErrTruncatedStream, cmd.Tag, hdr[1])
			}
			return Command{}, err
		}
	}
	return cmd, nil
}

// WriteCommand frames cmd onto w. The payload is written as-is.
func WriteCommand(w io.Writer, cmd Command) error {
	if len(cmd.Payload) > MaxPayload {
		return fmt.Errorf("%w: %s carries %d bytes", ErrPayloadTooLarge, cmd.Tag, len(cmd.Payload))
	}
	hdr := [frameHeaderSize]byte{byte(cmd.Tag), byte(len(cmd.Payload))}
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(cmd.Payload) == 0 {
		return nil
	}
	_, err := w.Write(cmd.Payload)
	return err
}
