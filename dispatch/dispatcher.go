// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dispatch/dispatcher.go
// Summary: Routes decoded commands to the active screen and tracks the stream state.
// Usage: The CLI feeds whole streams through Run or RunReader; tests drive Apply directly.
// Notes: The dispatcher owns its screen exclusively; a setup replaces it outright.

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/framegrace/texelstream/protocol"
	"github.com/framegrace/texelstream/screen"
)

// State is the dispatcher's position in the command stream.
type State int

const (
	StateNoScreen State = iota
	StateHasScreen
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNoScreen:
		return "no_screen"
	case StateHasScreen:
		return "has_screen"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrPrecondition reports a drawing command issued before any setup.
	ErrPrecondition = errors.New("dispatch: screen not set up")
	// ErrTerminated is returned by Apply once a terminate command was seen.
	ErrTerminated = errors.New("dispatch: stream already terminated")
)

// Stats counts what the dispatcher did with the commands it was given.
type Stats struct {
	Applied  int
	Skipped  int
	Replaced int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger routes warnings and trace output to l. A nil logger keeps the
// default.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTrace logs every command as it is applied.
func WithTrace(on bool) Option {
	return func(d *Dispatcher) {
		d.trace = on
	}
}

// Dispatcher applies commands to a single screen.
type Dispatcher struct {
	screen   *screen.Screen
	state    State
	logger   *log.Logger
	trace    bool
	stats    Stats
	returned bool // screen handed out by Run; not released on replacement
}

// New returns a dispatcher in the NoScreen state.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		state:  StateNoScreen,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns the current state.
func (d *Dispatcher) State() State {
	return d.state
}

// Screen returns the active screen, or nil before the first setup.
func (d *Dispatcher) Screen() *screen.Screen {
	return d.screen
}

// Stats returns command counters for the stream so far.
func (d *Dispatcher) Stats() Stats {
	return d.stats
}

// Apply executes a single command against the active screen. Unknown tags
// are logged and skipped. A failed command leaves the screen unchanged.
func (d *Dispatcher) Apply(cmd protocol.Command) error {
	if d.state == StateDone {
		return ErrTerminated
	}
	if d.trace {
		d.logger.Printf("Dispatch: %s payload=%d bytes", cmd.Tag, len(cmd.Payload))
	}

	var err error
	switch cmd.Tag {
	case protocol.TagSetup:
		err = d.setup(cmd.Payload)

	case protocol.TagDrawCharacter:
		if err = d.ready(cmd); err != nil {
			break
		}
		var x, y, color, glyph uint8
		if x, y, color, glyph, err = protocol.DecodeDrawCharacter(cmd.Payload); err == nil {
			err = d.screen.DrawCharacter(x, y, glyph, color)
		}

	case protocol.TagDrawLine:
		if err = d.ready(cmd); err != nil {
			break
		}
		var line protocol.LineArgs
		if line, err = protocol.DecodeDrawLine(cmd.Payload); err == nil {
			err = d.screen.DrawLine(line.X1, line.Y1, line.X2, line.Y2, line.Glyph, line.Color)
		}

	case protocol.TagRenderText:
		if err = d.ready(cmd); err != nil {
			break
		}
		var x, y, color uint8
		var text []byte
		if x, y, color, text, err = protocol.DecodeRenderText(cmd.Payload); err == nil {
			err = d.screen.RenderText(x, y, color, text)
		}

	case protocol.TagMoveCursor:
		if err = d.ready(cmd); err != nil {
			break
		}
		var x, y uint8
		if x, y, err = protocol.DecodeMoveCursor(cmd.Payload); err == nil {
			err = d.screen.MoveCursor(x, y)
		}

	case protocol.TagDrawAtCursor:
		if err = d.ready(cmd); err != nil {
			break
		}
		var glyph, color uint8
		if glyph, color, err = protocol.DecodeDrawAtCursor(cmd.Payload); err == nil {
			err = d.screen.DrawAtCursor(glyph, color)
		}

	case protocol.TagClear:
		if err = d.ready(cmd); err != nil {
			break
		}
		if err = protocol.CheckPayload(cmd); err == nil {
			d.screen.Clear()
		}

	case protocol.TagTerminate:
		d.state = StateDone
		if d.trace {
			d.logger.Printf("Dispatch: end of command stream")
		}

	default:
		d.logger.Printf("Dispatch: unknown command tag 0x%02x, skipping", uint8(cmd.Tag))
		d.stats.Skipped++
		return nil
	}

	if err != nil {
		return err
	}
	d.stats.Applied++
	return nil
}

// Run decodes data and applies each command until the input is exhausted or
// a terminate command is seen. It returns the final screen, which is nil if
// the stream never set one up. Any error aborts the run and no screen is
// returned. A returned screen belongs to the caller: a later setup on d
// replaces it without releasing it.
func (d *Dispatcher) Run(data []byte) (*screen.Screen, error) {
	index := 0
	for cmd, err := range protocol.Commands(data) {
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", index, err)
		}
		if err := d.Apply(cmd); err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", index, cmd.Tag, err)
		}
		index++
		if d.state == StateDone {
			break
		}
	}
	return d.result(), nil
}

// RunReader is Run over a byte stream. Reading stops at the terminate
// command, so bytes after it are never consumed.
func (d *Dispatcher) RunReader(r io.Reader) (*screen.Screen, error) {
	for index := 0; d.state != StateDone; index++ {
		cmd, err := protocol.ReadCommand(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", index, err)
		}
		if err := d.Apply(cmd); err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", index, cmd.Tag, err)
		}
	}
	return d.result(), nil
}

func (d *Dispatcher) result() *screen.Screen {
	if d.screen != nil {
		d.returned = true
	}
	return d.screen
}

func (d *Dispatcher) ready(cmd protocol.Command) error {
	if d.screen == nil {
		return fmt.Errorf("%w: cannot process %s", ErrPrecondition, cmd.Tag)
	}
	return nil
}

func (d *Dispatcher) setup(payload []byte) error {
	width, height, mode, err := protocol.ParseSetup(payload)
	if err != nil {
		return err
	}
	next, err := screen.New(width, height, mode)
	if err != nil {
		return err
	}
	if d.screen != nil {
		if d.trace {
			d.logger.Printf("Dispatch: replacing %dx%d screen", d.screen.Width(), d.screen.Height())
		}
		if !d.returned {
			d.screen.Release()
		}
		d.screen = nil
		d.stats.Replaced++
	}
	d.screen = next
	d.returned = false
	d.state = StateHasScreen
	return nil
}
