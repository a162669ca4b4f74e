package persist

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
)

func buildDoc(t *testing.T) (*document.Document, string, float64) {
	t.Helper()
	const family, size = "Go Mono", 14.0
	fm, err := fontmetrics.Measure(family, size, nil)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	doc, err := document.New(document.Config{
		Cols: 6, Rows: 4,
		TileW: fm.TileW, TileH: fm.TileH, Baseline: fm.Baseline,
		Polarity: document.DarkBackground,
		Charset:  []rune("@#.xo "),
	})
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}

	doc.PaintPixel(0, 0)
	doc.PaintPixel(7, 3)
	doc.SetPixel(5, 5, 0x7F) // partial intensity must survive exactly
	doc.SetText(0, 0, 'H')
	doc.SetText(3, 2, 'i')
	return doc, family, size
}

func TestRoundTrip(t *testing.T) {
	doc, family, size := buildDoc(t)
	cfg := convert.DefaultMatchConfig()

	art, err := Save(doc, family, size, &cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	res, err := Load(art, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !bytes.Equal(res.Doc.ClonePixels(), doc.ClonePixels()) {
		t.Error("pixel bytes changed across the round trip")
	}
	if res.Doc.TextLen() != doc.TextLen() {
		t.Fatalf("text plane has %d entries, want %d", res.Doc.TextLen(), doc.TextLen())
	}
	doc.EachText(func(col, row int, ch rune) {
		got, ok := res.Doc.TextAt(col, row)
		if !ok || got != ch {
			t.Errorf("text (%d,%d) = %q,%v, want %q", col, row, got, ok, ch)
		}
	})
	if res.FontFamily != family || res.FontSize != size {
		t.Errorf("font = %q/%g, want %q/%g", res.FontFamily, res.FontSize, family, size)
	}
	if res.MatchCfg == nil || *res.MatchCfg != cfg {
		t.Errorf("match config = %+v, want %+v", res.MatchCfg, cfg)
	}
	if got := res.Doc.Config().Polarity; got != document.DarkBackground {
		t.Errorf("polarity = %v, want dark", got)
	}
	if got := string(res.Doc.Config().Charset); got != "@#.xo " {
		t.Errorf("charset = %q, want %q", got, "@#.xo ")
	}
}

func TestMetaTextEntriesAreCompleteObjects(t *testing.T) {
	doc, family, size := buildDoc(t)

	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries := gjson.Get(art.Meta, "text").Array()
	if len(entries) != doc.TextLen() {
		t.Fatalf("metadata has %d text elements, want one per entry (%d)",
			len(entries), doc.TextLen())
	}
	for _, e := range entries {
		col := e.Get("col")
		row := e.Get("row")
		ch := e.Get("char")
		if col.Type != gjson.Number || row.Type != gjson.Number || ch.Type != gjson.String {
			t.Errorf("text element %s is not a complete (col,row,char) object", e.Raw)
		}
	}
}

func TestOptionalMatchConfigOmitted(t *testing.T) {
	doc, family, size := buildDoc(t)
	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	res, err := Load(art, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.MatchCfg != nil {
		t.Errorf("match config = %+v, want nil when omitted", res.MatchCfg)
	}
}

func TestGlyphPlaneNotPersisted(t *testing.T) {
	doc, family, size := buildDoc(t)
	glyphs := make([]document.GlyphCell, doc.Cols()*doc.Rows())
	glyphs[0] = document.GlyphCell{Char: '@'}
	if err := doc.SetGlyphs(glyphs); err != nil {
		t.Fatalf("SetGlyphs: %v", err)
	}

	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	res, err := Load(art, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.Doc.GlyphAt(0, 0).IsEmpty() {
		t.Error("glyph plane should come back empty; it is recomputed from pixels")
	}
}

func TestLoadRejectsMalformedMetadata(t *testing.T) {
	doc, family, size := buildDoc(t)
	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name string
		meta string
	}{
		{"not json", "{nope"},
		{"missing cols", `{"rows":4,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# "}`},
		{"cols wrong type", `{"cols":"six","rows":4,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# "}`},
		{"negative rows", `{"cols":6,"rows":-1,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# "}`},
		{"missing font size", `{"cols":6,"rows":4,"font":{"family":"Go Mono"},"polarity":"dark","charset":"# "}`},
		{"empty charset", `{"cols":6,"rows":4,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":""}`},
		{"bad text entry", `{"cols":6,"rows":4,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# ","text":[{"col":0,"row":0}]}`},
		{"text out of grid", `{"cols":6,"rows":4,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# ","text":[{"col":99,"row":0,"char":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Artifact{PNG: art.PNG, Meta: tt.meta}, nil)
			var de *DeserializationError
			if !errors.As(err, &de) {
				t.Errorf("Load error = %v, want *DeserializationError", err)
			}
		})
	}
}

func TestLoadRejectsGeometryMismatch(t *testing.T) {
	doc, family, size := buildDoc(t)
	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Claim a different grid than the image was rendered for.
	bad := `{"cols":2,"rows":2,"font":{"family":"Go Mono","size":14},"polarity":"dark","charset":"# "}`
	_, err = Load(Artifact{PNG: art.PNG, Meta: bad}, nil)
	var de *DeserializationError
	if !errors.As(err, &de) {
		t.Errorf("Load error = %v, want *DeserializationError for geometry mismatch", err)
	}
}

func TestSaveLoadFiles(t *testing.T) {
	doc, family, size := buildDoc(t)
	art, err := Save(doc, family, size, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	base := filepath.Join(t.TempDir(), "sketch")
	if err := SaveFiles(base, art); err != nil {
		t.Fatalf("SaveFiles: %v", err)
	}
	res, err := LoadFiles(base, nil)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if !bytes.Equal(res.Doc.ClonePixels(), doc.ClonePixels()) {
		t.Error("pixels changed across file round trip")
	}
}
