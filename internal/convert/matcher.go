package convert

import "github.com/charcoaldev/charcoal/internal/document"

// MatchConfig tunes the character matcher. Identical pixels and config must
// always produce identical output.
type MatchConfig struct {
	// OffsetRange is the half-width, in pixels, of the alignment search
	// window tried around each tile on both axes.
	OffsetRange int

	// TestFlips also scores the X- and Y-mirrored variants of every
	// candidate character.
	TestFlips bool

	// InkThreshold is the intensity distance from the background value
	// above which a pixel counts as ink.
	InkThreshold byte

	// MissWeight penalizes ink pixels the candidate glyph does not cover.
	MissWeight float64

	// ExtraWeight penalizes glyph pixels with no ink under them.
	ExtraWeight float64
}

// DefaultMatchConfig returns the standard matcher tuning.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		OffsetRange:  1,
		TestFlips:    true,
		InkThreshold: 128,
		MissWeight:   1.0,
		ExtraWeight:  0.6,
	}
}

// Matcher converts a pixel region into per-cell best-match characters.
// Implementations must be deterministic for identical input and config.
type Matcher interface {
	// Match scores every tile of the w*h pixel snapshot and returns one
	// GlyphCell per tile in row-major order.
	Match(pixels []byte, w, h int, cfg MatchConfig) ([]document.GlyphCell, error)

	// Rebuild replaces the matcher's candidate lookup after a character
	// set change. It must complete before the next Match call.
	Rebuild(charset []rune) error
}
