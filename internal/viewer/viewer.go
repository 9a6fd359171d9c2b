// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/viewer.go
// Summary: Full-screen tcell view of a finished screen buffer.
// Usage: The CLI's "view" format hands the dispatcher's final screen to Run.

package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelstream/render"
	"github.com/framegrace/texelstream/screen"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run shows s until the user presses q, Esc or Ctrl-C. Arrow keys scroll
// buffers larger than the terminal; Home returns to the top-left corner.
func Run(s *screen.Screen, cs render.Charset) error {
	ts, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer ts.Fini()

	v := &view{term: ts, buf: s, charset: cs}
	v.draw()

	for {
		ev := ts.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			ts.Sync()
			v.clamp()
			v.draw()
		case *tcell.EventKey:
			if v.handleKey(tev) {
				return nil
			}
			v.draw()
		}
	}
}

type view struct {
	term    tcell.Screen
	buf     *screen.Screen
	charset render.Charset
	offX    int
	offY    int
}

// viewport is the area left for the buffer above the status line.
func (v *view) viewport() (int, int) {
	w, h := v.term.Size()
	if h > 1 {
		h--
	}
	return w, h
}

func (v *view) handleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == 'Q' {
			return true
		}
	case tcell.KeyLeft:
		v.offX--
	case tcell.KeyRight:
		v.offX++
	case tcell.KeyUp:
		v.offY--
	case tcell.KeyDown:
		v.offY++
	case tcell.KeyHome:
		v.offX, v.offY = 0, 0
	}
	v.clamp()
	return false
}

func (v *view) clamp() {
	w, h := v.viewport()
	v.offX = min(max(v.offX, 0), max(int(v.buf.Width())-w, 0))
	v.offY = min(max(v.offY, 0), max(int(v.buf.Height())-h, 0))
}

func (v *view) draw() {
	sink := &render.TcellSink{Screen: v.term, Charset: v.charset, OffsetX: v.offX, OffsetY: v.offY}
	_ = sink.Render(v.buf)

	w, h := v.viewport()
	cx, cy := v.buf.Cursor()
	if row := int(cy) - v.offY; row >= h {
		v.term.HideCursor()
	}

	_, th := v.term.Size()
	if th > 1 {
		status := fmt.Sprintf(" %s  cursor %d,%d  offset %d,%d  q: quit", v.buf.Header(), cx, cy, v.offX, v.offY)
		style := tcell.StyleDefault.Reverse(true)
		x := 0
		for _, r := range status {
			if x >= w {
				break
			}
			v.term.SetContent(x, th-1, r, nil, style)
			x++
		}
		for ; x < w; x++ {
			v.term.SetContent(x, th-1, ' ', nil, style)
		}
	}
	v.term.Show()
}
