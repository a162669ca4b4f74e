package render

import (
	"image"
	"testing"

	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
)

func testDoc(t *testing.T, p document.Polarity) *document.Document {
	t.Helper()
	d, err := document.New(document.Config{
		Cols: 4, Rows: 3, TileW: 4, TileH: 4, Baseline: 3,
		Polarity: p,
		Charset:  []rune("@#. "),
	})
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return d
}

func rgbAt(img *image.RGBA, x, y int) (uint8, uint8, uint8) {
	o := img.PixOffset(x, y)
	return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
}

func TestComposeBackgroundByPolarity(t *testing.T) {
	r := New(DefaultOptions(), DefaultTheme())

	dark := r.Compose(testDoc(t, document.DarkBackground), Overlay{})
	dr, dg, db := rgbAt(dark, 0, 0)
	if int(dr)+int(dg)+int(db) > 150 {
		t.Errorf("dark background renders as (%d,%d,%d), want a dark color", dr, dg, db)
	}

	light := r.Compose(testDoc(t, document.LightBackground), Overlay{})
	lr, lg, lb := rgbAt(light, 0, 0)
	if int(lr)+int(lg)+int(lb) < 600 {
		t.Errorf("light background renders as (%d,%d,%d), want a light color", lr, lg, lb)
	}
}

func TestComposePixelLayer(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	doc.PaintPixel(2, 2)
	r := New(DefaultOptions(), DefaultTheme())

	img := r.Compose(doc, Overlay{})
	ir, ig, ib := rgbAt(img, 2, 2)
	br, bg, bb := rgbAt(img, 0, 0)
	if ir == br && ig == bg && ib == bb {
		t.Error("inked pixel should render differently from background")
	}
}

func TestComposeOpacityForcedDuringGesture(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	doc.PaintPixel(1, 1)
	r := New(Options{PixelOpacity: 0.3}, DefaultTheme())

	idle := r.Compose(doc, Overlay{})
	active := r.Compose(doc, Overlay{DrawingActive: true})

	ir, _, _ := rgbAt(idle, 1, 1)
	ar, _, _ := rgbAt(active, 1, 1)
	if ar <= ir {
		t.Errorf("gesture should force full opacity: idle R=%d, active R=%d", ir, ar)
	}
}

func TestComposePreviewPerChannelMax(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	r := New(DefaultOptions(), DefaultTheme())

	preview := make([]byte, doc.PixelW()*doc.PixelH())
	preview[5*doc.PixelW()+5] = 0xFF

	img := r.Compose(doc, Overlay{Preview: preview})
	pr, pg, pb := rgbAt(img, 5, 5)
	br, bg, bb := rgbAt(img, 0, 0)
	if pr < br || pg < bg || pb < bb {
		t.Error("per-channel max merge must never darken a channel")
	}
	if pr == br && pg == bg && pb == bb {
		t.Error("preview pixel should be visible")
	}
}

func TestComposeSelectionHighlight(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	// Unnormalized drag; the highlight must still cover cell (1,1).
	doc.SetSelection(2, 2, 1, 1)
	r := New(DefaultOptions(), DefaultTheme())

	img := r.Compose(doc, Overlay{})
	sr, sg, sb := rgbAt(img, 5, 5) // inside cell (1,1)
	br, bg, bb := rgbAt(img, 0, 0) // outside selection
	if sr == br && sg == bg && sb == bb {
		t.Error("selection highlight missing inside the normalized rectangle")
	}
}

func TestComposeCursorVariants(t *testing.T) {
	r := New(DefaultOptions(), DefaultTheme())

	// Standard outline touches the cell corner.
	doc := testDoc(t, document.DarkBackground)
	doc.SetCursor(1, 1, false)
	img := r.Compose(doc, Overlay{})
	cr, cg, cb := rgbAt(img, 4, 4) // top-left of cell (1,1)
	br, bg, bb := rgbAt(img, 0, 0)
	if cr == br && cg == bg && cb == bb {
		t.Error("cell outline cursor missing")
	}

	// Snap mode draws a crosshair through the center, not the corner.
	doc = testDoc(t, document.DarkBackground)
	doc.SetCursor(1, 1, true)
	img = r.Compose(doc, Overlay{})
	xr, xg, xb := rgbAt(img, 6, 6) // center of cell (1,1)
	if xr == br && xg == bg && xb == bb {
		t.Error("crosshair cursor missing at cell center")
	}
	or, og, ob := rgbAt(img, 4, 4)
	if or != br || og != bg || ob != bb {
		t.Error("crosshair cursor should not draw the cell corner")
	}
}

func TestComposeCaretBlinks(t *testing.T) {
	r := New(DefaultOptions(), DefaultTheme())
	br, bg, bb := rgbAt(r.Compose(testDoc(t, document.DarkBackground), Overlay{}), 4, 5)

	doc := testDoc(t, document.DarkBackground)
	doc.SetCursor(1, 1, false)

	on := r.Compose(doc, Overlay{TextEditing: true, CaretOn: true})
	ar, ag, ab := rgbAt(on, 4, 5) // left edge of cell (1,1)
	if ar == br && ag == bg && ab == bb {
		t.Error("caret should be drawn in the on blink phase")
	}

	off := r.Compose(doc, Overlay{TextEditing: true, CaretOn: false})
	fr, fg, fb := rgbAt(off, 4, 5)
	if fr != br || fg != bg || fb != bb {
		t.Error("caret should vanish in the off blink phase")
	}
}

func TestComposeGridLines(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	r := New(Options{PixelOpacity: 1, ShowGrid: true}, DefaultTheme())

	img := r.Compose(doc, Overlay{})
	gr, gg, gb := rgbAt(img, 4, 0) // first vertical tile boundary
	br, bg, bb := rgbAt(img, 1, 0)
	if gr == br && gg == bg && gb == bb {
		t.Error("grid line missing on tile boundary")
	}
}

func TestCharGridResolution(t *testing.T) {
	doc := testDoc(t, document.DarkBackground)
	glyphs := make([]document.GlyphCell, doc.Cols()*doc.Rows())
	glyphs[0] = document.GlyphCell{Char: '/', FlipX: true}
	if err := doc.SetGlyphs(glyphs); err != nil {
		t.Fatalf("SetGlyphs: %v", err)
	}
	doc.SetText(1, 0, 'T')

	grid := CharGrid(doc)
	if len(grid) != doc.Rows() || len(grid[0]) != doc.Cols() {
		t.Fatalf("grid is %dx%d, want %dx%d", len(grid), len(grid[0]), doc.Rows(), doc.Cols())
	}
	if grid[0][0].Char != '/' || !grid[0][0].FlipX || grid[0][0].Typed {
		t.Errorf("glyph cell = %+v, want flipped '/' from glyph plane", grid[0][0])
	}
	if grid[0][1].Char != 'T' || !grid[0][1].Typed {
		t.Errorf("typed cell = %+v, want typed 'T'", grid[0][1])
	}
	if grid[1][1].Char != document.Blank {
		t.Errorf("empty cell = %q, want blank", grid[1][1].Char)
	}
}

func TestComposeCharsDrawsAndMirrors(t *testing.T) {
	fm, err := fontmetrics.Measure("Go Mono", 12, nil)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	doc, err := document.New(document.Config{
		Cols: 2, Rows: 1, TileW: fm.TileW, TileH: fm.TileH, Baseline: fm.Baseline,
		Polarity: document.DarkBackground,
		Charset:  []rune("L "),
	})
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	glyphs := []document.GlyphCell{
		{Char: 'L'},
		{Char: 'L', FlipX: true},
	}
	if err := doc.SetGlyphs(glyphs); err != nil {
		t.Fatalf("SetGlyphs: %v", err)
	}

	r := New(DefaultOptions(), DefaultTheme())
	img := r.ComposeChars(doc, fm.Face)

	opaque := func(x0, x1 int) int {
		n := 0
		for y := 0; y < fm.TileH; y++ {
			for x := x0; x < x1; x++ {
				if img.Pix[img.PixOffset(x, y)+3] != 0 {
					n++
				}
			}
		}
		return n
	}

	plain := opaque(0, fm.TileW)
	flipped := opaque(fm.TileW, 2*fm.TileW)
	if plain == 0 || flipped == 0 {
		t.Fatal("both cells should draw their character")
	}
	if plain != flipped {
		t.Errorf("mirroring changed coverage: %d vs %d pixels", plain, flipped)
	}

	// 'L' is left-heavy; its mirror must differ pixel-for-pixel.
	same := true
	for y := 0; y < fm.TileH && same; y++ {
		for x := 0; x < fm.TileW; x++ {
			a := img.Pix[img.PixOffset(x, y)+3]
			b := img.Pix[img.PixOffset(fm.TileW+x, y)+3]
			if a != b {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("flipped glyph renders identically to the plain one")
	}
}
