package app

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/render"
)

// Screen layout: status line on row 0, canvas pane below it, character
// pane to the canvas's right.
const (
	canvasX    = 0
	canvasY    = 1
	paneGutter = 2
)

func (a *App) renderIfDirty() {
	if !a.dirty {
		return
	}
	a.dirty = false

	frame := a.renderer.Compose(a.doc, a.overlay())

	a.terminal.Clear()
	a.drawStatus()
	a.terminal.DrawImage(canvasX, canvasY, frame)
	a.drawCharPane()
	a.terminal.Show()
}

func (a *App) overlay() render.Overlay {
	preview, _ := a.disp.Preview()
	return render.Overlay{
		Preview:       preview,
		DrawingActive: a.disp.DrawingActive(),
		TextEditing:   a.disp.TextEditing(),
		CaretOn:       a.caretOn,
	}
}

func (a *App) drawStatus() {
	line := fmt.Sprintf(" %s | %s  [f/l/r/e/x/t/s] tool  ^Z undo ^Y redo ^S save ^E copy ^Q quit",
		a.disp.Active(), a.status)
	a.terminal.SetText(0, 0, line, a.theme.Ink, a.theme.DarkBg)
}

// drawCharPane draws the resolved character grid one terminal cell per
// document cell. Mirroring cannot be drawn in a terminal cell, so only the
// resolved rune shows; typed overrides get the cursor accent color.
func (a *App) drawCharPane() {
	ox := canvasX + a.doc.PixelW() + paneGutter
	fg, bg := a.paneColors()
	for row, line := range render.CharGrid(a.doc) {
		for col, cell := range line {
			cfg := fg
			if cell.Typed {
				cfg = a.theme.Cursor
			}
			a.terminal.SetCell(ox+col, canvasY+row, cell.Char, cfg, bg)
		}
	}
}

// paneColors follows the document's polarity: a light-background document
// shows dark characters on the light theme color.
func (a *App) paneColors() (fg, bg colorful.Color) {
	if a.doc.Config().Polarity == document.LightBackground {
		return a.theme.DarkBg, a.theme.LightBg
	}
	return a.theme.Ink, a.theme.DarkBg
}
