package tool

import "github.com/charcoaldev/charcoal/internal/raster"

// eraserRadius is the half-width of the square cleared around the pointer.
// The 3x3 region is fixed and does not scale with tile size.
const eraserRadius = 1

// eraserTool clears a 3x3 pixel block along the pointer path, interpolating
// between positions like the freehand tool.
type eraserTool struct {
	d            *Dispatcher
	down         bool
	lastX, lastY int
}

func newEraserTool(d *Dispatcher) *eraserTool {
	return &eraserTool{d: d}
}

func (t *eraserTool) Kind() Kind { return KindEraser }

func (t *eraserTool) PointerDown(x, y int) {
	x, y = t.d.doc.ClampPixel(x, y)
	t.d.beginGesture()
	t.down = true
	t.lastX, t.lastY = x, y
	t.eraseAt(x, y)
}

func (t *eraserTool) PointerMove(x, y int) {
	if !t.down {
		return
	}
	x, y = t.d.doc.ClampPixel(x, y)
	for p := range raster.Line(t.lastX, t.lastY, x, y) {
		t.eraseAt(p.X, p.Y)
	}
	t.lastX, t.lastY = x, y
}

func (t *eraserTool) PointerUp(x, y int) {
	if !t.down {
		return
	}
	t.PointerMove(x, y)
	t.down = false
	t.d.endGesture()
}

func (t *eraserTool) eraseAt(x, y int) {
	for dy := -eraserRadius; dy <= eraserRadius; dy++ {
		for dx := -eraserRadius; dx <= eraserRadius; dx++ {
			ex, ey := x+dx, y+dy
			if ex < 0 || ex >= t.d.doc.PixelW() || ey < 0 || ey >= t.d.doc.PixelH() {
				continue
			}
			t.d.erasePixel(ex, ey)
		}
	}
}

func (t *eraserTool) KeyHandler() KeyHandler { return nil }

func (t *eraserTool) Lifecycle() Lifecycle { return t }

func (t *eraserTool) Activate() {}

// Deactivate closes an in-progress erase, committing its checkpoint.
func (t *eraserTool) Deactivate() {
	if t.down {
		t.down = false
		t.d.endGesture()
	}
}
