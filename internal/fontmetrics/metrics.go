// Package fontmetrics resolves font families to tile geometry.
//
// It is consulted once per document creation or recreation: the returned
// tile width, height, and baseline fix the document's pixel grid, so a
// font change always means rebuilding the document and its conversion
// pipeline rather than mutating them.
package fontmetrics

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/charcoaldev/charcoal/internal/logging"
)

// DefaultFamily is used when a requested family is unknown.
const DefaultFamily = "Go Mono"

// ErrInvalidSize indicates a non-positive font size.
var ErrInvalidSize = errors.New("fontmetrics: size must be positive")

// embedded holds the bundled typefaces. Charcoal ships its fonts so tile
// geometry is reproducible across machines; system font enumeration is out
// of scope.
var embedded = map[string][]byte{
	"Go Mono":    gomono.TTF,
	"Go Regular": goregular.TTF,
}

// Metrics is the tile geometry derived from one (family, size) pair, plus
// the parsed face for glyph rasterization.
type Metrics struct {
	Family   string
	Size     float64
	TileW    int
	TileH    int
	Baseline int
	Face     font.Face
}

// Families lists the available font families, sorted.
func Families() []string {
	names := make([]string, 0, len(embedded))
	for name := range embedded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Measure resolves a family and size to tile metrics. Unknown families
// fall back to DefaultFamily with a log line rather than failing; a
// malformed size is an error.
func Measure(family string, size float64, log *logging.Logger) (Metrics, error) {
	if log == nil {
		log = logging.Null
	}
	if size <= 0 {
		return Metrics{}, ErrInvalidSize
	}

	ttf, ok := embedded[family]
	if !ok {
		log.WithComponent("fontmetrics").Warn("unknown font family %q, using %q", family, DefaultFamily)
		family = DefaultFamily
		ttf = embedded[family]
	}

	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return Metrics{}, fmt.Errorf("fontmetrics: parse %s: %w", family, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Metrics{}, fmt.Errorf("fontmetrics: face %s: %w", family, err)
	}

	fm := face.Metrics()
	ascent := fm.Ascent.Ceil()
	height := (fm.Ascent + fm.Descent).Ceil()

	// Monospace cell width: the advance of a representative glyph.
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return Metrics{}, fmt.Errorf("fontmetrics: %s has no 'M' glyph", family)
	}
	width := advance.Ceil()
	if width <= 0 || height <= 0 {
		return Metrics{}, fmt.Errorf("fontmetrics: %s yields degenerate %dx%d tile", family, width, height)
	}

	return Metrics{
		Family:   family,
		Size:     size,
		TileW:    width,
		TileH:    height,
		Baseline: ascent,
		Face:     face,
	}, nil
}
