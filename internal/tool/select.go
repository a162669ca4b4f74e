package tool

// selectTool drags out a rectangular cell selection. The rectangle is
// stored exactly as dragged; normalization is left to consumers.
type selectTool struct {
	d         *Dispatcher
	down      bool
	anchorCol int
	anchorRow int
}

func newSelectTool(d *Dispatcher) *selectTool {
	return &selectTool{d: d}
}

func (t *selectTool) Kind() Kind { return KindSelect }

func (t *selectTool) PointerDown(x, y int) {
	col, row := t.d.doc.PixelToCell(x, y)
	t.down = true
	t.anchorCol, t.anchorRow = col, row
	t.d.doc.SetSelection(col, row, col, row)
}

func (t *selectTool) PointerMove(x, y int) {
	if !t.down {
		return
	}
	col, row := t.d.doc.PixelToCell(x, y)
	t.d.doc.SetSelection(t.anchorCol, t.anchorRow, col, row)
}

func (t *selectTool) PointerUp(x, y int) {
	if !t.down {
		return
	}
	t.PointerMove(x, y)
	t.down = false
}

func (t *selectTool) KeyHandler() KeyHandler { return nil }

func (t *selectTool) Lifecycle() Lifecycle { return t }

func (t *selectTool) Activate() {}

// Deactivate flushes the selection this tool owns.
func (t *selectTool) Deactivate() {
	t.down = false
	t.d.doc.ClearSelection()
}
