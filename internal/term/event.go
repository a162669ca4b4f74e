package term

// EventKind discriminates terminal events after conversion from tcell.
type EventKind int

const (
	EventNone EventKind = iota
	EventKey
	EventMouse
	EventResize
	// EventWake is posted from other goroutines to unblock the event loop,
	// typically when a conversion result or blink tick needs a redraw.
	EventWake
)

// Key identifies the non-rune keys the editor reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlE
	KeyCtrlG
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlY
	KeyCtrlZ
)

// ModMask is a bitmask of key modifiers.
type ModMask int

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// MouseButton identifies the pressed button, or none for pure motion.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	WheelUp
	WheelDown
)

// Event is a terminal event with all tcell types converted away.
type Event struct {
	Kind EventKind

	// Key events.
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse events. Coordinates are terminal cells.
	MouseX, MouseY int
	Button         MouseButton

	// Resize events.
	Width, Height int
}
