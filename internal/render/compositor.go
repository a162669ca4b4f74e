package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/charcoaldev/charcoal/internal/document"
)

// Options tunes the compositor.
type Options struct {
	// PixelOpacity scales the committed pixel layer, 0..1. It is ignored
	// (treated as 1) while a gesture or preview is active so the user
	// always sees exactly what they are drawing.
	PixelOpacity float64

	// ShowGrid draws tile boundary lines.
	ShowGrid bool
}

// DefaultOptions returns the standard compositor tuning.
func DefaultOptions() Options {
	return Options{PixelOpacity: 0.85, ShowGrid: false}
}

// Overlay carries the per-frame transient state the document does not own.
type Overlay struct {
	// Preview is the shape tools' uncommitted ink mask, or nil.
	Preview []byte

	// DrawingActive forces the pixel layer fully opaque.
	DrawingActive bool

	// TextEditing selects the caret cursor variant.
	TextEditing bool

	// CaretOn is the blink phase; the caret is drawn only when set.
	CaretOn bool
}

// Theme is the compositor's palette. Colors blend in RGB space.
type Theme struct {
	DarkBg    colorful.Color
	LightBg   colorful.Color
	Ink       colorful.Color
	Preview   colorful.Color
	Grid      colorful.Color
	Selection colorful.Color
	Cursor    colorful.Color
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	return Theme{
		DarkBg:    colorful.Color{R: 0.07, G: 0.07, B: 0.09},
		LightBg:   colorful.Color{R: 0.96, G: 0.96, B: 0.94},
		Ink:       colorful.Color{R: 0.92, G: 0.91, B: 0.85},
		Preview:   colorful.Color{R: 0.35, G: 0.65, B: 0.95},
		Grid:      colorful.Color{R: 0.45, G: 0.45, B: 0.50},
		Selection: colorful.Color{R: 0.30, G: 0.55, B: 0.90},
		Cursor:    colorful.Color{R: 0.95, G: 0.65, B: 0.20},
	}
}

// Renderer composes frames. It holds only configuration, never document
// state.
type Renderer struct {
	opts  Options
	theme Theme
}

// New creates a renderer.
func New(opts Options, theme Theme) *Renderer {
	if opts.PixelOpacity < 0 {
		opts.PixelOpacity = 0
	}
	if opts.PixelOpacity > 1 {
		opts.PixelOpacity = 1
	}
	return &Renderer{opts: opts, theme: theme}
}

// background returns the frame's base color for the document's polarity.
func (r *Renderer) background(p document.Polarity) colorful.Color {
	if p == document.LightBackground {
		return r.theme.LightBg
	}
	return r.theme.DarkBg
}

// ink returns the pixel layer's ink color for the polarity.
func (r *Renderer) ink(p document.Polarity) colorful.Color {
	if p == document.LightBackground {
		return r.theme.DarkBg
	}
	return r.theme.Ink
}

func toRGBA(c colorful.Color) color.RGBA {
	cl := c.Clamped()
	return color.RGBA{
		R: uint8(cl.R*255 + 0.5),
		G: uint8(cl.G*255 + 0.5),
		B: uint8(cl.B*255 + 0.5),
		A: 0xFF,
	}
}

// Compose renders the pixel-side frame: background, pixel plane, preview,
// grid, selection, and cursor. One image pixel per document pixel.
func (r *Renderer) Compose(doc *document.Document, ov Overlay) *image.RGBA {
	w, h := doc.PixelW(), doc.PixelH()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	cfg := doc.Config()
	bg := r.background(cfg.Polarity)
	ink := r.ink(cfg.Polarity)
	bgv := cfg.Polarity.Background()

	opacity := r.opts.PixelOpacity
	if ov.DrawingActive || ov.Preview != nil {
		opacity = 1
	}

	// Background fill and pixel layer in one pass.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bg
			if v := doc.PixelAt(x, y); v != bgv {
				strength := float64(v) / 255
				if cfg.Polarity == document.LightBackground {
					strength = 1 - strength
				}
				c = bg.BlendRgb(ink, strength*opacity)
			}
			img.SetRGBA(x, y, toRGBA(c))
		}
	}

	// Preview layer: per-channel maximum keeps committed ink visible
	// underneath the uncommitted shape.
	if ov.Preview != nil {
		pv := toRGBA(r.theme.Preview)
		for i, v := range ov.Preview {
			if v == 0 {
				continue
			}
			x, y := i%w, i/w
			o := img.PixOffset(x, y)
			img.Pix[o+0] = max(img.Pix[o+0], pv.R)
			img.Pix[o+1] = max(img.Pix[o+1], pv.G)
			img.Pix[o+2] = max(img.Pix[o+2], pv.B)
		}
	}

	if r.opts.ShowGrid {
		r.drawGrid(img, cfg)
	}

	if sel, ok := doc.Selection(); ok {
		r.drawSelection(img, doc, sel)
	}

	if cur, ok := doc.Cursor(); ok {
		r.drawCursor(img, doc, cur, ov)
	}

	return img
}

// drawGrid overlays tile boundary lines, blended so ink stays legible.
func (r *Renderer) drawGrid(img *image.RGBA, cfg document.Config) {
	w, h := cfg.PixelW(), cfg.PixelH()
	blend := func(x, y int) {
		o := img.PixOffset(x, y)
		base := colorful.Color{
			R: float64(img.Pix[o+0]) / 255,
			G: float64(img.Pix[o+1]) / 255,
			B: float64(img.Pix[o+2]) / 255,
		}
		c := toRGBA(base.BlendRgb(r.theme.Grid, 0.35))
		img.Pix[o+0], img.Pix[o+1], img.Pix[o+2] = c.R, c.G, c.B
	}
	for x := cfg.TileW; x < w; x += cfg.TileW {
		for y := 0; y < h; y++ {
			blend(x, y)
		}
	}
	for y := cfg.TileH; y < h; y += cfg.TileH {
		for x := 0; x < w; x++ {
			blend(x, y)
		}
	}
}

// drawSelection tints the normalized selection rectangle.
func (r *Renderer) drawSelection(img *image.RGBA, doc *document.Document, sel document.Selection) {
	cfg := doc.Config()
	minCol, minRow, maxCol, maxRow := sel.Normalized()
	x0 := minCol * cfg.TileW
	y0 := minRow * cfg.TileH
	x1 := (maxCol+1)*cfg.TileW - 1
	y1 := (maxRow+1)*cfg.TileH - 1

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			o := img.PixOffset(x, y)
			base := colorful.Color{
				R: float64(img.Pix[o+0]) / 255,
				G: float64(img.Pix[o+1]) / 255,
				B: float64(img.Pix[o+2]) / 255,
			}
			c := toRGBA(base.BlendRgb(r.theme.Selection, 0.30))
			img.Pix[o+0], img.Pix[o+1], img.Pix[o+2] = c.R, c.G, c.B
		}
	}
}

// drawCursor draws the cursor cell indicator: a caret while text entry is
// active (blink permitting), a center crosshair in snap mode, or a plain
// cell outline.
func (r *Renderer) drawCursor(img *image.RGBA, doc *document.Document, cur document.Cursor, ov Overlay) {
	cfg := doc.Config()
	x0, y0 := cur.Col*cfg.TileW, cur.Row*cfg.TileH
	x1, y1 := x0+cfg.TileW-1, y0+cfg.TileH-1
	c := toRGBA(r.theme.Cursor)

	set := func(x, y int) {
		if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
			return
		}
		img.SetRGBA(x, y, c)
	}

	switch {
	case ov.TextEditing:
		if !ov.CaretOn {
			return
		}
		// Blinking caret: a bar on the cell's left edge.
		for y := y0; y <= y1; y++ {
			set(x0, y)
		}
	case cur.Snapped:
		// Crosshair through the cell center.
		cx, cy := x0+cfg.TileW/2, y0+cfg.TileH/2
		for x := x0; x <= x1; x++ {
			set(x, cy)
		}
		for y := y0; y <= y1; y++ {
			set(cx, y)
		}
	default:
		for x := x0; x <= x1; x++ {
			set(x, y0)
			set(x, y1)
		}
		for y := y0; y <= y1; y++ {
			set(x0, y)
			set(x1, y)
		}
	}
}
