package document

import "errors"

// Errors returned by document construction and wholesale mutation.
var (
	// ErrInvalidGrid indicates non-positive column or row counts.
	ErrInvalidGrid = errors.New("document: grid dimensions must be positive")

	// ErrInvalidTile indicates non-positive tile dimensions.
	ErrInvalidTile = errors.New("document: tile dimensions must be positive")

	// ErrEmptyCharset indicates an empty allowed character set.
	ErrEmptyCharset = errors.New("document: character set is empty")

	// ErrWideCharset indicates a character set entry wider than one cell.
	ErrWideCharset = errors.New("document: character set entries must be one cell wide")

	// ErrGlyphPlaneSize indicates a glyph plane replacement whose length
	// does not match the cell grid.
	ErrGlyphPlaneSize = errors.New("document: glyph plane size mismatch")

	// ErrPixelPlaneSize indicates a pixel restore whose length does not
	// match the pixel plane.
	ErrPixelPlaneSize = errors.New("document: pixel plane size mismatch")
)
