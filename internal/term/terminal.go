// Package term wraps tcell behind the small surface the editor needs:
// cell and image drawing, and events converted to tcell-free types.
package term

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Terminal drives a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// New creates a terminal on the process's tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen. Tests pass a tcell
// SimulationScreen here.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// SetCell places one rune with explicit colors.
func (t *Terminal) SetCell(x, y int, ch rune, fg, bg colorful.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, ch, nil, styleFor(fg, bg))
}

// SetText places a string starting at (x, y), one rune per cell.
func (t *Terminal) SetText(x, y int, s string, fg, bg colorful.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := styleFor(fg, bg)
	for _, ch := range s {
		t.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// DrawImage renders img starting at terminal cell (ox, oy) using upper
// half blocks, packing two image rows into each terminal row. The image
// occupies img.Dx() columns and ceil(img.Dy()/2) rows.
func (t *Terminal) DrawImage(ox, oy int, img *image.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		row := oy + (y-b.Min.Y)/2
		for x := b.Min.X; x < b.Max.X; x++ {
			top := rgbaColor(img, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = rgbaColor(img, x, y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(ox+x-b.Min.X, row, '▀', nil, style)
		}
	}
}

// PollEvent blocks for the next event. It never returns tcell types.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Kind: EventNone}
		}
		if conv := convertEvent(ev); conv.Kind != EventNone {
			return conv
		}
	}
}

// Wake posts a wake event from another goroutine.
func (t *Terminal) Wake() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // queue may be full
}

func styleFor(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func rgbaColor(img *image.RGBA, x, y int) tcell.Color {
	i := img.PixOffset(x, y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Kind: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Kind:   EventMouse,
			MouseX: x,
			MouseY: y,
			Button: convertButton(e.Buttons()),
			Mod:    convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Kind: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Kind: EventWake}

	default:
		return Event{Kind: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlE:
		return KeyCtrlE
	case tcell.KeyCtrlG:
		return KeyCtrlG
	case tcell.KeyCtrlQ:
		return KeyCtrlQ
	case tcell.KeyCtrlS:
		return KeyCtrlS
	case tcell.KeyCtrlY:
		return KeyCtrlY
	case tcell.KeyCtrlZ:
		return KeyCtrlZ
	default:
		return KeyNone
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

func convertButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0 || b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return WheelUp
	case b&tcell.WheelDown != 0:
		return WheelDown
	default:
		return MouseNone
	}
}
