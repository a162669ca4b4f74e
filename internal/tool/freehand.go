package tool

import "github.com/charcoaldev/charcoal/internal/raster"

// freehandTool paints directly into the pixel plane, interpolating between
// successive pointer positions with the line primitive so fast motion does
// not leave gaps.
type freehandTool struct {
	d            *Dispatcher
	down         bool
	lastX, lastY int
}

func newFreehandTool(d *Dispatcher) *freehandTool {
	return &freehandTool{d: d}
}

func (t *freehandTool) Kind() Kind { return KindFreehand }

func (t *freehandTool) PointerDown(x, y int) {
	x, y = t.d.doc.ClampPixel(x, y)
	t.d.beginGesture()
	t.down = true
	t.lastX, t.lastY = x, y
	t.d.paintPixel(x, y)
}

func (t *freehandTool) PointerMove(x, y int) {
	if !t.down {
		return
	}
	x, y = t.d.doc.ClampPixel(x, y)
	for p := range raster.Line(t.lastX, t.lastY, x, y) {
		t.d.paintPixel(p.X, p.Y)
	}
	t.lastX, t.lastY = x, y
}

func (t *freehandTool) PointerUp(x, y int) {
	if !t.down {
		return
	}
	t.PointerMove(x, y)
	t.down = false
	t.d.endGesture()
}

func (t *freehandTool) KeyHandler() KeyHandler { return nil }

func (t *freehandTool) Lifecycle() Lifecycle { return t }

func (t *freehandTool) Activate() {}

// Deactivate closes an in-progress stroke. Its pixels are already
// committed, so the gesture ends with its checkpoint rather than being
// dropped like a shape preview.
func (t *freehandTool) Deactivate() {
	if t.down {
		t.down = false
		t.d.endGesture()
	}
}
