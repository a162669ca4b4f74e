package document

// Document aggregates the pixel, glyph and text planes with the selection
// and cursor, behind clamped accessors. It performs no I/O; persistence and
// conversion live in their own packages and talk to the document through
// these methods.
type Document struct {
	cfg Config

	pixels []byte      // dense, PixelW*PixelH, row-major
	glyphs []GlyphCell // dense, Cols*Rows, row-major
	text   map[CellIndex]rune

	sel       Selection
	hasSel    bool
	cursor    Cursor
	hasCursor bool
}

// New creates a document with the pixel plane filled with the polarity's
// background value and empty glyph and text planes.
func New(cfg Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Document{
		cfg:    cfg,
		pixels: make([]byte, cfg.PixelW()*cfg.PixelH()),
		glyphs: make([]GlyphCell, cfg.Cols*cfg.Rows),
		text:   make(map[CellIndex]rune),
	}

	bg := cfg.Polarity.Background()
	if bg != 0 {
		for i := range d.pixels {
			d.pixels[i] = bg
		}
	}
	return d, nil
}

// Config returns the document configuration. The charset slice is shared;
// callers must not mutate it.
func (d *Document) Config() Config { return d.cfg }

// Cols returns the character grid width.
func (d *Document) Cols() int { return d.cfg.Cols }

// Rows returns the character grid height.
func (d *Document) Rows() int { return d.cfg.Rows }

// PixelW returns the pixel plane width.
func (d *Document) PixelW() int { return d.cfg.PixelW() }

// PixelH returns the pixel plane height.
func (d *Document) PixelH() int { return d.cfg.PixelH() }

// SetCharset replaces the allowed character set in place. This is the one
// configuration change a live document permits; the caller is responsible
// for rebuilding the matcher lookup and rescheduling conversion.
func (d *Document) SetCharset(charset []rune) {
	if len(charset) == 0 {
		return
	}
	d.cfg.Charset = charset
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPixel clamps a pixel coordinate into the plane.
func (d *Document) ClampPixel(x, y int) (int, int) {
	return clamp(x, 0, d.PixelW()-1), clamp(y, 0, d.PixelH()-1)
}

// ClampCell clamps a cell coordinate into the grid.
func (d *Document) ClampCell(col, row int) (int, int) {
	return clamp(col, 0, d.cfg.Cols-1), clamp(row, 0, d.cfg.Rows-1)
}

// PixelToCell converts a pixel coordinate to the cell containing it,
// clamping first.
func (d *Document) PixelToCell(x, y int) (col, row int) {
	x, y = d.ClampPixel(x, y)
	return x / d.cfg.TileW, y / d.cfg.TileH
}

// CellToPixel converts a cell coordinate to its top-left pixel, clamping
// first.
func (d *Document) CellToPixel(col, row int) (x, y int) {
	col, row = d.ClampCell(col, row)
	return col * d.cfg.TileW, row * d.cfg.TileH
}

// PixelAt returns the intensity at a (clamped) pixel coordinate.
func (d *Document) PixelAt(x, y int) byte {
	x, y = d.ClampPixel(x, y)
	return d.pixels[y*d.PixelW()+x]
}

// SetPixel sets the intensity at a (clamped) pixel coordinate.
func (d *Document) SetPixel(x, y int, v byte) {
	x, y = d.ClampPixel(x, y)
	d.pixels[y*d.PixelW()+x] = v
}

// PaintPixel sets a pixel to the polarity's ink value.
func (d *Document) PaintPixel(x, y int) {
	d.SetPixel(x, y, d.cfg.Polarity.Ink())
}

// ErasePixel resets a pixel to the polarity's background value.
func (d *Document) ErasePixel(x, y int) {
	d.SetPixel(x, y, d.cfg.Polarity.Background())
}

// IsInk reports whether the (clamped) pixel carries ink for this polarity.
func (d *Document) IsInk(x, y int) bool {
	return d.PixelAt(x, y) != d.cfg.Polarity.Background()
}

// SetPixels replaces the whole pixel plane. Used by persistence when
// rebuilding a document from its serialized form.
func (d *Document) SetPixels(p []byte) error {
	if len(p) != len(d.pixels) {
		return ErrPixelPlaneSize
	}
	copy(d.pixels, p)
	return nil
}

// ClonePixels returns an independent copy of the pixel plane. The
// conversion coordinator snapshots through this so in-flight conversions
// are unaffected by later edits.
func (d *Document) ClonePixels() []byte {
	out := make([]byte, len(d.pixels))
	copy(out, d.pixels)
	return out
}

// GlyphAt returns the derived glyph at a (clamped) cell coordinate.
func (d *Document) GlyphAt(col, row int) GlyphCell {
	col, row = d.ClampCell(col, row)
	return d.glyphs[row*d.cfg.Cols+col]
}

// SetGlyphs replaces the whole glyph plane. The glyph plane is derived
// state: it is never edited per cell, only swapped wholesale with
// conversion output.
func (d *Document) SetGlyphs(cells []GlyphCell) error {
	if len(cells) != len(d.glyphs) {
		return ErrGlyphPlaneSize
	}
	copy(d.glyphs, cells)
	return nil
}

// ClearGlyphs empties the glyph plane.
func (d *Document) ClearGlyphs() {
	for i := range d.glyphs {
		d.glyphs[i] = GlyphCell{}
	}
}

// TextAt returns the typed override at a (clamped) cell, if any.
func (d *Document) TextAt(col, row int) (rune, bool) {
	col, row = d.ClampCell(col, row)
	ch, ok := d.text[Key(col, row)]
	return ch, ok
}

// SetText places a typed override at a (clamped) cell.
func (d *Document) SetText(col, row int, ch rune) {
	col, row = d.ClampCell(col, row)
	d.text[Key(col, row)] = ch
}

// DeleteText removes the typed override at a (clamped) cell, if present.
func (d *Document) DeleteText(col, row int) {
	col, row = d.ClampCell(col, row)
	delete(d.text, Key(col, row))
}

// TextLen returns the number of typed overrides.
func (d *Document) TextLen() int { return len(d.text) }

// EachText calls fn for every typed override. Iteration order is
// unspecified. fn must not mutate the text plane.
func (d *Document) EachText(fn func(col, row int, ch rune)) {
	for k, ch := range d.text {
		col, row := k.Cell()
		fn(col, row, ch)
	}
}

// FinalCharAt resolves the displayed character at a cell: the text override
// if present (never flipped), else the glyph match with its flips, else
// Blank with no flips.
func (d *Document) FinalCharAt(col, row int) (ch rune, flipX, flipY bool) {
	if ch, ok := d.TextAt(col, row); ok {
		return ch, false, false
	}
	g := d.GlyphAt(col, row)
	if g.IsEmpty() {
		return Blank, false, false
	}
	return g.Char, g.FlipX, g.FlipY
}

// SetSelection stores a (clamped, unnormalized) drag rectangle.
func (d *Document) SetSelection(startCol, startRow, endCol, endRow int) {
	startCol, startRow = d.ClampCell(startCol, startRow)
	endCol, endRow = d.ClampCell(endCol, endRow)
	d.sel = Selection{StartCol: startCol, StartRow: startRow, EndCol: endCol, EndRow: endRow}
	d.hasSel = true
}

// Selection returns the current selection, if any.
func (d *Document) Selection() (Selection, bool) {
	return d.sel, d.hasSel
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() {
	d.sel = Selection{}
	d.hasSel = false
}

// SetCursor places the cursor at a (clamped) cell.
func (d *Document) SetCursor(col, row int, snapped bool) {
	col, row = d.ClampCell(col, row)
	d.cursor = Cursor{Col: col, Row: row, Snapped: snapped}
	d.hasCursor = true
}

// Cursor returns the cursor, if any.
func (d *Document) Cursor() (Cursor, bool) {
	return d.cursor, d.hasCursor
}

// ClearCursor removes the cursor.
func (d *Document) ClearCursor() {
	d.cursor = Cursor{}
	d.hasCursor = false
}
