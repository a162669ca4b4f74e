package document

import "github.com/rivo/uniseg"

// Polarity selects which byte value means ink and which means background.
type Polarity int

const (
	// DarkBackground draws light ink on a dark canvas.
	DarkBackground Polarity = iota
	// LightBackground draws dark ink on a light canvas.
	LightBackground
)

// String returns a string representation of the polarity.
func (p Polarity) String() string {
	switch p {
	case DarkBackground:
		return "dark"
	case LightBackground:
		return "light"
	default:
		return "unknown"
	}
}

// ParsePolarity parses a polarity name. Unknown names map to DarkBackground.
func ParsePolarity(s string) Polarity {
	if s == "light" {
		return LightBackground
	}
	return DarkBackground
}

// Background returns the byte value that means "no ink" for this polarity.
func (p Polarity) Background() byte {
	if p == LightBackground {
		return 0xFF
	}
	return 0x00
}

// Ink returns the byte value that means "full ink" for this polarity.
func (p Polarity) Ink() byte {
	if p == LightBackground {
		return 0x00
	}
	return 0xFF
}

// Config holds the immutable geometry and rendering parameters of a
// document. It is fixed at construction; the only in-place change a live
// document permits is replacing the allowed character set via SetCharset.
// Everything else (font change, resize) requires building a new document.
type Config struct {
	// Cols and Rows are the character grid dimensions.
	Cols int
	Rows int

	// TileW and TileH are the pixel dimensions of one cell.
	TileW int
	TileH int

	// Baseline is the glyph baseline offset in pixels from the tile top,
	// supplied by the font metrics at document creation.
	Baseline int

	// Polarity fixes which byte value is ink and which is background.
	Polarity Polarity

	// Charset is the allowed character set for glyph matching.
	Charset []rune
}

// Validate checks that the configuration describes a usable document.
func (c Config) Validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return ErrInvalidGrid
	}
	if c.TileW <= 0 || c.TileH <= 0 {
		return ErrInvalidTile
	}
	if len(c.Charset) == 0 {
		return ErrEmptyCharset
	}
	for _, ch := range c.Charset {
		if uniseg.StringWidth(string(ch)) != 1 {
			return ErrWideCharset
		}
	}
	return nil
}

// PixelW returns the pixel plane width.
func (c Config) PixelW() int { return c.Cols * c.TileW }

// PixelH returns the pixel plane height.
func (c Config) PixelH() int { return c.Rows * c.TileH }
