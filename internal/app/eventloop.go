package app

import (
	"errors"
	"time"

	"github.com/charcoaldev/charcoal/internal/term"
	"github.com/charcoaldev/charcoal/internal/tool"
)

// ErrQuit signals a user-requested exit.
var ErrQuit = errors.New("quit")

// caretBlink is the caret's half period.
const caretBlink = 500 * time.Millisecond

// Run initializes the terminal and drives the event loop until the user
// quits. It always returns ErrQuit on a clean exit.
func (a *App) Run() error {
	if err := a.terminal.Init(); err != nil {
		return err
	}
	defer a.terminal.Fini()

	events := make(chan term.Event, 16)
	go func() {
		for {
			ev := a.terminal.PollEvent()
			if ev.Kind == term.EventNone {
				close(events)
				return
			}
			events <- ev
		}
	}()

	blink := time.NewTicker(caretBlink)
	defer blink.Stop()

	// Populate the glyph plane for a loaded document before the first frame.
	a.convertNow()
	a.dirty = true

	for {
		a.renderIfDirty()

		select {
		case ev, ok := <-events:
			if !ok {
				return ErrQuit
			}
			if quit := a.handleEvent(ev); quit {
				return ErrQuit
			}

		case cells := <-a.applyCh:
			if err := a.doc.SetGlyphs(cells); err != nil {
				a.log.Error("apply glyphs: %v", err)
			} else {
				a.dirty = true
			}

		case <-blink.C:
			a.caretOn = !a.caretOn
			if a.disp.TextEditing() {
				a.dirty = true
			}
		}
	}
}

func (a *App) handleEvent(ev term.Event) bool {
	switch ev.Kind {
	case term.EventKey:
		return a.handleKey(ev)
	case term.EventMouse:
		a.handleMouse(ev)
	case term.EventResize, term.EventWake:
		a.dirty = true
	}
	return false
}

// handleKey routes a key. While the text tool is typing, the tool sees the
// key first; global chords only apply when it declines.
func (a *App) handleKey(ev term.Event) bool {
	if a.disp.TextEditing() {
		if k, ok := toolKey(ev); ok && a.disp.KeyDown(k) {
			return false
		}
	}

	switch ev.Key {
	case term.KeyCtrlQ, term.KeyCtrlC:
		return true
	case term.KeyCtrlZ:
		a.undo()
		return false
	case term.KeyCtrlY:
		a.redo()
		return false
	case term.KeyCtrlS:
		a.save()
		a.dirty = true
		return false
	case term.KeyCtrlE:
		a.exportClipboard()
		a.dirty = true
		return false
	case term.KeyBackspace, term.KeyDelete:
		a.disp.ClearSelectedRegion()
		return false
	case term.KeyEscape:
		a.disp.KeyDown(tool.SpecialKey(tool.KeyEscape))
		return false
	}

	if ev.Key == term.KeyRune {
		a.handleRune(ev.Rune)
	}
	return false
}

func (a *App) handleRune(r rune) {
	switch r {
	case 'f':
		a.switchTool(tool.KindFreehand)
	case 'l':
		a.switchTool(tool.KindLine)
	case 'r':
		a.switchTool(tool.KindRect)
	case 'e':
		a.switchTool(tool.KindEllipse)
	case 'x':
		a.switchTool(tool.KindEraser)
	case 't':
		a.switchTool(tool.KindText)
	case 's':
		a.switchTool(tool.KindSelect)
	case 'g':
		a.toggleGrid()
	case 'c':
		a.cycleCharset()
	case 'u':
		a.undo()
	case 'U':
		a.redo()
	}
	a.dirty = true
}

func (a *App) switchTool(k tool.Kind) {
	a.disp.SetActive(k)
	a.status = k.String()
}

// toolKey converts a terminal key event into a tool key event, reporting
// whether the key is one tools understand.
func toolKey(ev term.Event) (tool.Key, bool) {
	switch ev.Key {
	case term.KeyRune:
		return tool.RuneKey(ev.Rune), true
	case term.KeyLeft:
		return tool.SpecialKey(tool.KeyLeft), true
	case term.KeyRight:
		return tool.SpecialKey(tool.KeyRight), true
	case term.KeyUp:
		return tool.SpecialKey(tool.KeyUp), true
	case term.KeyDown:
		return tool.SpecialKey(tool.KeyDown), true
	case term.KeyBackspace:
		return tool.SpecialKey(tool.KeyBackspace), true
	case term.KeyDelete:
		return tool.SpecialKey(tool.KeyDelete), true
	case term.KeyEnter:
		return tool.SpecialKey(tool.KeyEnter), true
	case term.KeyEscape:
		return tool.SpecialKey(tool.KeyEscape), true
	case term.KeyCtrlG:
		return tool.SpecialKey(tool.KeyCommit), true
	default:
		return tool.Key{}, false
	}
}

// handleMouse translates terminal-cell mouse events into pixel-plane
// pointer events. Each terminal row holds two pixel rows, so the vertical
// coordinate doubles.
func (a *App) handleMouse(ev term.Event) {
	px := ev.MouseX - canvasX
	py := (ev.MouseY - canvasY) * 2
	inside := px >= 0 && px < a.doc.PixelW() && py >= 0 && py < a.doc.PixelH()

	switch {
	case ev.Button == term.MouseLeft && !a.dragging:
		if !inside {
			return
		}
		a.dragging = true
		a.disp.PointerDown(px, py)

	case ev.Button == term.MouseLeft && a.dragging:
		a.disp.PointerMove(px, py)

	case ev.Button == term.MouseNone && a.dragging:
		a.dragging = false
		a.disp.PointerUp(px, py)

	case ev.Button == term.MouseNone && inside:
		// Hover; the text tool tracks it.
		a.disp.PointerMove(px, py)
	}
}
