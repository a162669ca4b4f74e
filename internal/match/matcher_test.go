package match

import (
	"testing"

	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
)

func newMatcher(t *testing.T, charset string) (*GlyphMatcher, fontmetrics.Metrics) {
	t.Helper()
	fm, err := fontmetrics.Measure("Go Mono", 14, nil)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	m, err := New(fm.Face, fm.TileW, fm.TileH, fm.Baseline, document.DarkBackground, []rune(charset))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, fm
}

// plane builds a w*h snapshot with every pixel set to v.
func plane(w, h int, v byte) []byte {
	p := make([]byte, w*h)
	for i := range p {
		p[i] = v
	}
	return p
}

func TestMatchEmptyTileYieldsEmptyCell(t *testing.T) {
	m, fm := newMatcher(t, "# .")
	cells, err := m.Match(plane(fm.TileW, fm.TileH, 0x00), fm.TileW, fm.TileH, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("got %d cells, want 1", len(cells))
	}
	if !cells[0].IsEmpty() {
		t.Errorf("inkless tile matched %+v, want empty cell", cells[0])
	}
}

func TestMatchFullTilePrefersDenseGlyph(t *testing.T) {
	m, fm := newMatcher(t, ".#")
	cells, err := m.Match(plane(fm.TileW, fm.TileH, 0xFF), fm.TileW, fm.TileH, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if cells[0].Char != '#' {
		t.Errorf("full tile matched %q, want the denser '#'", cells[0].Char)
	}
}

func TestMatchDeterministic(t *testing.T) {
	m, fm := newMatcher(t, "@#.xo-|/\\")
	w, h := fm.TileW*3, fm.TileH*2

	// A reproducible speckle pattern.
	pixels := make([]byte, w*h)
	for i := range pixels {
		if (i*7+3)%11 < 4 {
			pixels[i] = 0xFF
		}
	}

	cfg := convert.DefaultMatchConfig()
	first, err := m.Match(pixels, w, h, cfg)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	second, err := m.Match(pixels, w, h, cfg)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cell %d differs between identical runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMatchGridShape(t *testing.T) {
	m, fm := newMatcher(t, "# ")
	w, h := fm.TileW*4, fm.TileH*3
	cells, err := m.Match(plane(w, h, 0x00), w, h, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(cells) != 12 {
		t.Errorf("got %d cells for a 4x3 grid, want 12", len(cells))
	}
}

func TestMatchInputValidation(t *testing.T) {
	m, fm := newMatcher(t, "#")

	if _, err := m.Match(make([]byte, 5), fm.TileW, fm.TileH, convert.DefaultMatchConfig()); err != ErrBadSnapshot {
		t.Errorf("size mismatch error = %v, want ErrBadSnapshot", err)
	}
	w, h := fm.TileW+1, fm.TileH
	if _, err := m.Match(make([]byte, w*h), w, h, convert.DefaultMatchConfig()); err != ErrBadGeometry {
		t.Errorf("misaligned error = %v, want ErrBadGeometry", err)
	}
}

func TestRebuildReplacesCandidates(t *testing.T) {
	m, fm := newMatcher(t, ".")
	if err := m.Rebuild([]rune("#")); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	cells, err := m.Match(plane(fm.TileW, fm.TileH, 0xFF), fm.TileW, fm.TileH, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if cells[0].Char != '#' {
		t.Errorf("matched %q after rebuild, want '#'", cells[0].Char)
	}

	if err := m.Rebuild(nil); err != ErrEmptyCharset {
		t.Errorf("empty rebuild error = %v, want ErrEmptyCharset", err)
	}
}

func TestLightPolarityInkDetection(t *testing.T) {
	fm, err := fontmetrics.Measure("Go Mono", 14, nil)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	m, err := New(fm.Face, fm.TileW, fm.TileH, fm.Baseline, document.LightBackground, []rune("#."))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// On a light background, 0xFF is background and 0x00 is ink.
	cells, err := m.Match(plane(fm.TileW, fm.TileH, 0xFF), fm.TileW, fm.TileH, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !cells[0].IsEmpty() {
		t.Errorf("light-background tile of 0xFF matched %+v, want empty", cells[0])
	}

	cells, err = m.Match(plane(fm.TileW, fm.TileH, 0x00), fm.TileW, fm.TileH, convert.DefaultMatchConfig())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if cells[0].Char != '#' {
		t.Errorf("inked light-background tile matched %q, want '#'", cells[0].Char)
	}
}
