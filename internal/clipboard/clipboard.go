// Package clipboard exports the character grid as plain text and defines
// the system clipboard integration point.
package clipboard

import (
	"strings"

	"github.com/charcoaldev/charcoal/internal/document"
)

// Clipboard provides system clipboard integration.
//
// Errors must not crash the editor; callers log failures and continue.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// Discard is a Clipboard that stores nothing. It is the default when no
// platform clipboard is wired up.
type Discard struct{}

func (Discard) ReadText() (string, error) { return "", nil }

func (Discard) WriteText(string) error { return nil }

// Memory is an in-process Clipboard, used in tests and as a fallback so
// copy/paste still works within one session.
type Memory struct {
	text string
}

func (m *Memory) ReadText() (string, error) { return m.text, nil }

func (m *Memory) WriteText(s string) error {
	m.text = s
	return nil
}

// ExportText renders the document's final characters as plain text, one
// line per cell row. Trailing spaces on each line and trailing empty lines
// are trimmed, so a mostly blank canvas exports compactly.
func ExportText(doc *document.Document) string {
	rows := make([]string, 0, doc.Rows())
	var b strings.Builder
	for row := 0; row < doc.Rows(); row++ {
		b.Reset()
		for col := 0; col < doc.Cols(); col++ {
			ch, _, _ := doc.FinalCharAt(col, row)
			b.WriteRune(ch)
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n"
}
