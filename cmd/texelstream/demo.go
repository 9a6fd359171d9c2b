// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelstream/demo.go
// Summary: Built-in demo stream exercising every command.

package main

import (
	"github.com/framegrace/texelstream/protocol"
	"github.com/framegrace/texelstream/screen"
)

// demoStream draws on an 80x24 256-colour screen, then clears it and
// terminates, so the final dump is a blank screen.
func demoStream() ([]byte, error) {
	return protocol.EncodeCommands(
		protocol.Command{Tag: protocol.TagSetup, Payload: protocol.SetupPayload(80, 24, screen.Color256)},
		protocol.Command{Tag: protocol.TagDrawCharacter, Payload: protocol.DrawCharacterPayload(10, 5, 3, 'A')},
		protocol.Command{Tag: protocol.TagDrawLine, Payload: protocol.DrawLinePayload(protocol.LineArgs{
			X1: 5, Y1: 5, X2: 20, Y2: 10, Color: 2, Glyph: '*',
		})},
		protocol.Command{Tag: protocol.TagRenderText, Payload: protocol.RenderTextPayload(2, 2, 3, []byte("Hello, World!"))},
		protocol.Command{Tag: protocol.TagMoveCursor, Payload: protocol.MoveCursorPayload(15, 10)},
		protocol.Command{Tag: protocol.TagDrawAtCursor, Payload: protocol.DrawAtCursorPayload('@', 4)},
		protocol.Command{Tag: protocol.TagClear},
		protocol.Command{Tag: protocol.TagTerminate},
	)
}
