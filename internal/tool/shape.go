package tool

import (
	"iter"

	"github.com/charcoaldev/charcoal/internal/raster"
)

// shapeTool covers the three preview-based drawing tools: straight line,
// rectangle outline, and ellipse outline. While the pointer is down it
// renders the shape from the anchor to the current position into the
// dispatcher's preview mask; the committed pixel plane is untouched until
// pointer-up merges the final shape.
type shapeTool struct {
	d                *Dispatcher
	kind             Kind
	down             bool
	anchorX, anchorY int
}

func newShapeTool(d *Dispatcher, kind Kind) *shapeTool {
	return &shapeTool{d: d, kind: kind}
}

func (t *shapeTool) Kind() Kind { return t.kind }

// outline returns the shape's coordinate sequence for the current drag.
func (t *shapeTool) outline(x, y int) iter.Seq[raster.Point] {
	switch t.kind {
	case KindRect:
		return raster.RectOutline(t.anchorX, t.anchorY, x, y)
	case KindEllipse:
		return raster.EllipseOutline(t.anchorX, t.anchorY, x, y)
	default:
		return raster.Line(t.anchorX, t.anchorY, x, y)
	}
}

func (t *shapeTool) PointerDown(x, y int) {
	x, y = t.d.doc.ClampPixel(x, y)
	t.d.beginGesture()
	t.down = true
	t.anchorX, t.anchorY = x, y
	t.d.openPreview()
	t.d.previewPixel(x, y)
}

func (t *shapeTool) PointerMove(x, y int) {
	if !t.down {
		return
	}
	x, y = t.d.doc.ClampPixel(x, y)
	t.d.resetPreview()
	for p := range t.outline(x, y) {
		t.d.previewPixel(p.X, p.Y)
	}
}

func (t *shapeTool) PointerUp(x, y int) {
	if !t.down {
		return
	}
	t.PointerMove(x, y)
	t.down = false
	t.d.mergePreview()
	t.d.endGesture()
}

func (t *shapeTool) KeyHandler() KeyHandler { return nil }

func (t *shapeTool) Lifecycle() Lifecycle { return t }

func (t *shapeTool) Activate() {}

// Deactivate flushes an in-progress preview without committing it.
func (t *shapeTool) Deactivate() {
	if t.down {
		t.down = false
		t.d.dropPreview()
		t.d.gestureActive = false
		clear(t.d.touched)
	}
}
