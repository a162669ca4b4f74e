package tool

// Kind tags one of the closed set of tool variants.
type Kind int

const (
	// KindFreehand paints pixels directly under the pointer.
	KindFreehand Kind = iota
	// KindLine draws a straight line with live preview.
	KindLine
	// KindRect draws a rectangle outline with live preview.
	KindRect
	// KindEllipse draws an ellipse outline with live preview.
	KindEllipse
	// KindEraser clears a fixed 3x3 pixel region under the pointer.
	KindEraser
	// KindText types character overrides into cells.
	KindText
	// KindSelect drags out a rectangular cell selection.
	KindSelect
)

// String returns the tool name.
func (k Kind) String() string {
	switch k {
	case KindFreehand:
		return "freehand"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindEraser:
		return "eraser"
	case KindText:
		return "text"
	case KindSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Tool is the shared interaction protocol. The pointer methods are
// mandatory; the hook accessors return nil for capabilities a tool does
// not have, and the dispatcher checks for nil instead of inspecting types.
// Pointer coordinates are pixel-plane coordinates and may be out of range;
// tools clamp through the document.
type Tool interface {
	Kind() Kind
	PointerDown(x, y int)
	PointerMove(x, y int)
	PointerUp(x, y int)

	// KeyHandler returns the tool's keyboard hook, or nil.
	KeyHandler() KeyHandler
	// Lifecycle returns the tool's activation hook, or nil.
	Lifecycle() Lifecycle
}

// KeyHandler is the optional keyboard hook. KeyDown reports whether the
// tool consumed the event.
type KeyHandler interface {
	KeyDown(k Key) bool
}

// Lifecycle is the optional activation hook. Deactivate must flush any
// transient preview or selection the tool owns.
type Lifecycle interface {
	Activate()
	Deactivate()
}
