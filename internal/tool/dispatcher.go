package tool

import (
	"sync"

	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/history"
	"github.com/charcoaldev/charcoal/internal/logging"
)

// Dispatcher owns the active tool, routes input events to it, and manages
// the shared per-gesture state: the preview plane, the set of touched
// tiles, and the one-checkpoint-per-gesture rule.
//
// All methods are intended to be called from a single event loop; the
// mutex only guards the preview snapshot read by the renderer.
type Dispatcher struct {
	doc  *document.Document
	hist *history.Stack
	log  *logging.Logger

	tools  map[Kind]Tool
	active Kind

	mu            sync.Mutex
	preview       []byte // ink mask, pixel-plane sized; nil outside shape gestures
	gestureActive bool

	touched  map[document.CellIndex]struct{}
	onChange func()
}

// NewDispatcher builds a dispatcher with the full closed tool set, with
// freehand paint active.
func NewDispatcher(doc *document.Document, hist *history.Stack, log *logging.Logger, onChange func()) *Dispatcher {
	if log == nil {
		log = logging.Null
	}
	d := &Dispatcher{
		doc:      doc,
		hist:     hist,
		log:      log.WithComponent("dispatcher"),
		touched:  make(map[document.CellIndex]struct{}),
		onChange: onChange,
	}
	d.tools = map[Kind]Tool{
		KindFreehand: newFreehandTool(d),
		KindLine:     newShapeTool(d, KindLine),
		KindRect:     newShapeTool(d, KindRect),
		KindEllipse:  newShapeTool(d, KindEllipse),
		KindEraser:   newEraserTool(d),
		KindText:     newTextTool(d),
		KindSelect:   newSelectTool(d),
	}
	d.active = KindFreehand
	if lc := d.tools[d.active].Lifecycle(); lc != nil {
		lc.Activate()
	}
	return d
}

// Active returns the active tool's kind.
func (d *Dispatcher) Active() Kind { return d.active }

// SetActive switches tools: the outgoing tool's Deactivate hook runs first
// (flushing any preview or selection it owns), then the incoming tool's
// Activate hook. Switching to the already-active tool is a no-op.
func (d *Dispatcher) SetActive(kind Kind) {
	if kind == d.active {
		return
	}
	next, ok := d.tools[kind]
	if !ok {
		d.log.Warn("unknown tool kind %d", kind)
		return
	}

	if lc := d.tools[d.active].Lifecycle(); lc != nil {
		lc.Deactivate()
	}
	d.active = kind
	if lc := next.Lifecycle(); lc != nil {
		lc.Activate()
	}
	d.notify()
}

// PointerDown routes a press at pixel coordinates to the active tool.
func (d *Dispatcher) PointerDown(x, y int) {
	d.tools[d.active].PointerDown(x, y)
	d.notify()
}

// PointerMove routes pointer motion to the active tool.
func (d *Dispatcher) PointerMove(x, y int) {
	d.tools[d.active].PointerMove(x, y)
	d.notify()
}

// PointerUp routes a release to the active tool.
func (d *Dispatcher) PointerUp(x, y int) {
	d.tools[d.active].PointerUp(x, y)
	d.notify()
}

// KeyDown routes a key to the active tool's keyboard hook, if it has one.
// It reports whether the tool consumed the event.
func (d *Dispatcher) KeyDown(k Key) bool {
	kh := d.tools[d.active].KeyHandler()
	if kh == nil {
		return false
	}
	consumed := kh.KeyDown(k)
	if consumed {
		d.notify()
	}
	return consumed
}

// Preview returns a copy-free view of the preview ink mask and whether one
// is active. The renderer must not mutate it.
func (d *Dispatcher) Preview() ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.preview, d.preview != nil
}

// DrawingActive reports whether a drawing gesture is in progress. The
// renderer forces the pixel layer fully opaque while this holds.
func (d *Dispatcher) DrawingActive() bool {
	return d.gestureActive
}

// TextEditing reports whether the text tool is in its active (typing)
// state, which the renderer shows as a blinking caret.
func (d *Dispatcher) TextEditing() bool {
	tt, ok := d.tools[KindText].(*textTool)
	return ok && d.active == KindText && tt.editing
}

// ClearSelectedRegion erases all pixels and typed overrides inside the
// normalized selection and pushes one checkpoint. Without a selection it
// is a no-op.
func (d *Dispatcher) ClearSelectedRegion() {
	sel, ok := d.doc.Selection()
	if !ok {
		return
	}
	minCol, minRow, maxCol, maxRow := sel.Normalized()
	cfg := d.doc.Config()
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			d.doc.DeleteText(col, row)
			px, py := d.doc.CellToPixel(col, row)
			for dy := 0; dy < cfg.TileH; dy++ {
				for dx := 0; dx < cfg.TileW; dx++ {
					d.doc.ErasePixel(px+dx, py+dy)
				}
			}
		}
	}
	d.checkpoint()
	d.notify()
}

// beginGesture opens an edit batch.
func (d *Dispatcher) beginGesture() {
	d.gestureActive = true
	clear(d.touched)
}

// endGesture commits the batch: typed overrides under every touched tile
// are cleared (drawing supersedes typing), then exactly one checkpoint is
// pushed. No-op if no gesture is open.
func (d *Dispatcher) endGesture() {
	if !d.gestureActive {
		return
	}
	d.gestureActive = false
	for key := range d.touched {
		col, row := key.Cell()
		d.doc.DeleteText(col, row)
	}
	clear(d.touched)
	d.checkpoint()
}

// checkpoint pushes the current document state onto the undo stack.
func (d *Dispatcher) checkpoint() {
	if d.hist != nil {
		d.hist.Push(d.doc.Snapshot())
	}
}

// paintPixel commits ink at a pixel and records its tile as touched.
func (d *Dispatcher) paintPixel(x, y int) {
	d.doc.PaintPixel(x, y)
	d.markTouched(x, y)
}

// erasePixel commits background at a pixel and records its tile as touched.
func (d *Dispatcher) erasePixel(x, y int) {
	d.doc.ErasePixel(x, y)
	d.markTouched(x, y)
}

func (d *Dispatcher) markTouched(x, y int) {
	col, row := d.doc.PixelToCell(x, y)
	d.touched[document.Key(col, row)] = struct{}{}
}

// openPreview allocates a fresh preview mask for a shape gesture.
func (d *Dispatcher) openPreview() {
	d.mu.Lock()
	d.preview = make([]byte, d.doc.PixelW()*d.doc.PixelH())
	d.mu.Unlock()
}

// resetPreview clears the mask without deallocating it.
func (d *Dispatcher) resetPreview() {
	d.mu.Lock()
	clear(d.preview)
	d.mu.Unlock()
}

// previewPixel marks a pixel in the preview mask; the committed plane is
// untouched.
func (d *Dispatcher) previewPixel(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.preview == nil {
		return
	}
	w, h := d.doc.PixelW(), d.doc.PixelH()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	d.preview[y*w+x] = 0xFF
}

// mergePreview commits every preview pixel to the pixel plane and drops
// the mask.
func (d *Dispatcher) mergePreview() {
	d.mu.Lock()
	mask := d.preview
	d.preview = nil
	d.mu.Unlock()
	if mask == nil {
		return
	}
	w := d.doc.PixelW()
	for i, v := range mask {
		if v != 0 {
			d.paintPixel(i%w, i/w)
		}
	}
}

// dropPreview discards the mask without committing.
func (d *Dispatcher) dropPreview() {
	d.mu.Lock()
	d.preview = nil
	d.mu.Unlock()
}

// notify signals the owner that visible state may have changed.
func (d *Dispatcher) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}
