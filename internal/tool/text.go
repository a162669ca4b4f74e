package tool

import (
	"github.com/rivo/uniseg"

	"github.com/charcoaldev/charcoal/internal/document"
)

// textTool types character overrides into cells. It is a two-state machine:
// while inactive the cursor merely follows pointer hover and nothing is
// edited; a pointer-down pins the cursor to the clicked cell and enters the
// active (typing) state.
//
// Unlike the drawing tools, every committed insertion or deletion is its
// own undo checkpoint.
type textTool struct {
	d        *Dispatcher
	editing  bool
	startCol int // column Enter returns to, typewriter style
}

func newTextTool(d *Dispatcher) *textTool {
	return &textTool{d: d}
}

func (t *textTool) Kind() Kind { return KindText }

func (t *textTool) PointerDown(x, y int) {
	col, row := t.d.doc.PixelToCell(x, y)
	t.d.doc.SetCursor(col, row, false)
	t.startCol = col
	t.editing = true
}

func (t *textTool) PointerMove(x, y int) {
	if t.editing {
		// Pinned to the clicked cell while typing.
		return
	}
	col, row := t.d.doc.PixelToCell(x, y)
	t.d.doc.SetCursor(col, row, false)
}

func (t *textTool) PointerUp(x, y int) {}

func (t *textTool) KeyHandler() KeyHandler { return t }

// KeyDown handles typing while active. Inactive, it consumes nothing so
// application shortcuts keep working.
func (t *textTool) KeyDown(k Key) bool {
	if !t.editing {
		return false
	}

	cur, ok := t.d.doc.Cursor()
	if !ok {
		t.editing = false
		return false
	}

	switch k.Special {
	case KeyLeft:
		t.d.doc.SetCursor(cur.Col-1, cur.Row, false)
	case KeyRight:
		t.d.doc.SetCursor(cur.Col+1, cur.Row, false)
	case KeyUp:
		t.d.doc.SetCursor(cur.Col, cur.Row-1, false)
	case KeyDown:
		t.d.doc.SetCursor(cur.Col, cur.Row+1, false)
	case KeyEnter:
		// Typewriter return: next row, back to the starting column.
		t.d.doc.SetCursor(t.startCol, cur.Row+1, false)
	case KeyBackspace:
		col := cur.Col
		if col > 0 {
			col--
		}
		t.d.doc.SetCursor(col, cur.Row, false)
		if _, had := t.d.doc.TextAt(col, cur.Row); had {
			t.d.doc.DeleteText(col, cur.Row)
			t.d.checkpoint()
		}
	case KeyDelete:
		if _, had := t.d.doc.TextAt(cur.Col, cur.Row); had {
			t.d.doc.DeleteText(cur.Col, cur.Row)
			t.d.checkpoint()
		}
	case KeyEscape, KeyCommit:
		// Leave typing mode without losing position.
		t.editing = false
	case SpecialNone:
		t.insert(cur, k.Rune)
	default:
		return false
	}
	return true
}

// insert commits one character and auto-advances, wrapping to the starting
// column of the next row past the right edge.
func (t *textTool) insert(cur document.Cursor, ch rune) {
	if ch == 0 || uniseg.StringWidth(string(ch)) != 1 {
		// Only single-cell characters fit a tile.
		return
	}

	t.d.doc.SetText(cur.Col, cur.Row, ch)
	t.d.checkpoint()

	col, row := cur.Col+1, cur.Row
	if col >= t.d.doc.Cols() {
		if row+1 >= t.d.doc.Rows() {
			// Bottom-right corner: stay put.
			col = t.d.doc.Cols() - 1
		} else {
			col, row = t.startCol, row+1
		}
	}
	t.d.doc.SetCursor(col, row, false)
}

func (t *textTool) Lifecycle() Lifecycle { return t }

func (t *textTool) Activate() {}

// Deactivate leaves typing mode and releases the hover cursor.
func (t *textTool) Deactivate() {
	t.editing = false
	t.d.doc.ClearCursor()
}
