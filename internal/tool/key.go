package tool

// Special identifies a non-printable key the tools care about.
type Special int

const (
	// SpecialNone means the key carries a printable rune instead.
	SpecialNone Special = iota
	// KeyLeft is the left arrow.
	KeyLeft
	// KeyRight is the right arrow.
	KeyRight
	// KeyUp is the up arrow.
	KeyUp
	// KeyDown is the down arrow.
	KeyDown
	// KeyBackspace deletes backwards.
	KeyBackspace
	// KeyDelete deletes at the cursor.
	KeyDelete
	// KeyEnter starts a new line.
	KeyEnter
	// KeyEscape leaves the current tool mode.
	KeyEscape
	// KeyCommit commits and leaves the current tool mode (the frontend
	// maps its commit chord, e.g. Ctrl+Enter, onto this).
	KeyCommit
)

// Key is one keyboard event as seen by tools. Printable input sets Rune
// and leaves Special at SpecialNone.
type Key struct {
	Rune    rune
	Special Special
}

// RuneKey builds a printable key event.
func RuneKey(r rune) Key { return Key{Rune: r} }

// SpecialKey builds a non-printable key event.
func SpecialKey(s Special) Key { return Key{Special: s} }
