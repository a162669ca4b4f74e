package document

// Blank is the character displayed for cells with neither a text override
// nor a glyph match.
const Blank = ' '

// GlyphCell is one derived best-match character. A zero GlyphCell means
// "no match yet" and renders as Blank.
type GlyphCell struct {
	Char  rune
	FlipX bool
	FlipY bool
}

// IsEmpty reports whether the cell holds no match.
func (g GlyphCell) IsEmpty() bool {
	return g.Char == 0
}

// CellIndex is a packed (col,row) key for sparse per-cell storage.
// Packing into one integer keeps text plane lookups allocation-free.
type CellIndex int64

// Key packs a cell coordinate into a CellIndex.
func Key(col, row int) CellIndex {
	return CellIndex(int64(row)<<32 | int64(uint32(col)))
}

// Cell unpacks the coordinate.
func (k CellIndex) Cell() (col, row int) {
	return int(int32(k)), int(k >> 32)
}

// Selection is a drag rectangle over the cell grid. It is stored exactly as
// dragged; Start may lie below or right of End. Consumers normalize before
// use.
type Selection struct {
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Normalized returns the min/max bounds of the selection.
func (s Selection) Normalized() (minCol, minRow, maxCol, maxRow int) {
	minCol, maxCol = s.StartCol, s.EndCol
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	minRow, maxRow = s.StartRow, s.EndRow
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	return minCol, minRow, maxCol, maxRow
}

// Contains reports whether the normalized selection covers the cell.
func (s Selection) Contains(col, row int) bool {
	minCol, minRow, maxCol, maxRow := s.Normalized()
	return col >= minCol && col <= maxCol && row >= minRow && row <= maxRow
}

// Cursor marks the focused cell. Snapped indicates center-snap mode, which
// the renderer draws as a crosshair instead of a cell outline.
type Cursor struct {
	Col     int
	Row     int
	Snapped bool
}
