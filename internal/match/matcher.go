// Package match implements the glyph-bitmap character matcher.
//
// Each allowed character is rasterized once per (face, tile geometry) into
// an ink mask. Matching scores every tile of a pixel snapshot against every
// candidate mask over a small alignment search window, optionally including
// mirrored variants, and picks the lowest-cost candidate. Ties break on
// charset order, unflipped before flipped, so identical input and
// configuration always produce identical output.
package match

import (
	"errors"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
)

// Errors returned by the matcher.
var (
	// ErrBadSnapshot indicates pixel data inconsistent with the declared
	// dimensions.
	ErrBadSnapshot = errors.New("match: snapshot size mismatch")

	// ErrBadGeometry indicates a snapshot not aligned to the tile grid.
	ErrBadGeometry = errors.New("match: snapshot not tile-aligned")

	// ErrEmptyCharset indicates a rebuild with no candidates.
	ErrEmptyCharset = errors.New("match: empty charset")
)

// candidate is one pre-rasterized character.
type candidate struct {
	ch   rune
	mask []bool // tileW*tileH, true where the glyph covers the pixel
	ink  int    // number of covered pixels
}

// GlyphMatcher is a deterministic convert.Matcher over a fixed font face
// and tile geometry. A font or size change invalidates the masks, so
// callers build a new matcher (and a new coordinator) instead of mutating
// this one; only the character set may be rebuilt in place.
type GlyphMatcher struct {
	mu         sync.Mutex
	face       font.Face
	tileW      int
	tileH      int
	baseline   int
	polarity   document.Polarity
	candidates []candidate
}

// New builds a matcher and rasterizes the initial charset.
func New(face font.Face, tileW, tileH, baseline int, polarity document.Polarity, charset []rune) (*GlyphMatcher, error) {
	m := &GlyphMatcher{
		face:     face,
		tileW:    tileW,
		tileH:    tileH,
		baseline: baseline,
		polarity: polarity,
	}
	if err := m.Rebuild(charset); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild re-rasterizes the candidate lookup for a new character set.
func (m *GlyphMatcher) Rebuild(charset []rune) error {
	if len(charset) == 0 {
		return ErrEmptyCharset
	}

	cands := make([]candidate, 0, len(charset))
	for _, ch := range charset {
		mask := m.rasterize(ch)
		ink := 0
		for _, on := range mask {
			if on {
				ink++
			}
		}
		cands = append(cands, candidate{ch: ch, mask: mask, ink: ink})
	}

	m.mu.Lock()
	m.candidates = cands
	m.mu.Unlock()
	return nil
}

// rasterize draws one character into a tile-sized ink mask.
func (m *GlyphMatcher) rasterize(ch rune) []bool {
	dst := image.NewGray(image.Rect(0, 0, m.tileW, m.tileH))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: m.face,
		Dot:  fixed.P(0, m.baseline),
	}
	d.DrawString(string(ch))

	mask := make([]bool, m.tileW*m.tileH)
	for i, v := range dst.Pix {
		mask[i] = v >= 128
	}
	return mask
}

// Match scores every tile of the snapshot and returns one GlyphCell per
// tile in row-major order. Tiles without ink yield an empty cell.
func (m *GlyphMatcher) Match(pixels []byte, w, h int, cfg convert.MatchConfig) ([]document.GlyphCell, error) {
	if len(pixels) != w*h {
		return nil, ErrBadSnapshot
	}
	if w%m.tileW != 0 || h%m.tileH != 0 {
		return nil, ErrBadGeometry
	}

	m.mu.Lock()
	cands := m.candidates
	m.mu.Unlock()

	cols := w / m.tileW
	rows := h / m.tileH
	out := make([]document.GlyphCell, cols*rows)

	ink := make([]bool, m.tileW*m.tileH)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			n := m.inkTile(pixels, w, col, row, cfg.InkThreshold, ink)
			if n == 0 {
				continue
			}
			out[row*cols+col] = m.bestFor(ink, cands, cfg)
		}
	}
	return out, nil
}

// inkTile extracts a tile's ink coverage into dst and returns the ink count.
func (m *GlyphMatcher) inkTile(pixels []byte, w, col, row int, threshold byte, dst []bool) int {
	bg := int(m.polarity.Background())
	x0 := col * m.tileW
	y0 := row * m.tileH
	n := 0
	for y := 0; y < m.tileH; y++ {
		for x := 0; x < m.tileW; x++ {
			v := int(pixels[(y0+y)*w+x0+x])
			diff := v - bg
			if diff < 0 {
				diff = -diff
			}
			on := diff >= int(threshold)
			dst[y*m.tileW+x] = on
			if on {
				n++
			}
		}
	}
	return n
}

// flip variants in scoring order: unflipped first, so ties prefer the
// plain glyph.
var flipOrder = [4][2]bool{{false, false}, {true, false}, {false, true}, {true, true}}

// bestFor returns the lowest-cost candidate for one tile's ink coverage.
func (m *GlyphMatcher) bestFor(ink []bool, cands []candidate, cfg convert.MatchConfig) document.GlyphCell {
	best := document.GlyphCell{}
	bestCost := -1.0

	variants := flipOrder[:1]
	if cfg.TestFlips {
		variants = flipOrder[:]
	}

	for _, c := range cands {
		for _, fl := range variants {
			for dy := -cfg.OffsetRange; dy <= cfg.OffsetRange; dy++ {
				for dx := -cfg.OffsetRange; dx <= cfg.OffsetRange; dx++ {
					cost := m.cost(ink, c.mask, dx, dy, fl[0], fl[1], cfg)
					if bestCost < 0 || cost < bestCost {
						bestCost = cost
						best = document.GlyphCell{Char: c.ch, FlipX: fl[0], FlipY: fl[1]}
					}
				}
			}
		}
	}
	return best
}

// cost scores one (candidate, flip, offset) combination: ink pixels the
// glyph misses weigh MissWeight, glyph pixels with no ink weigh
// ExtraWeight. Lower is better.
func (m *GlyphMatcher) cost(ink, mask []bool, dx, dy int, flipX, flipY bool, cfg convert.MatchConfig) float64 {
	misses, extras := 0, 0
	for y := 0; y < m.tileH; y++ {
		for x := 0; x < m.tileW; x++ {
			gx, gy := x+dx, y+dy
			covered := false
			if gx >= 0 && gx < m.tileW && gy >= 0 && gy < m.tileH {
				mx, my := gx, gy
				if flipX {
					mx = m.tileW - 1 - gx
				}
				if flipY {
					my = m.tileH - 1 - gy
				}
				covered = mask[my*m.tileW+mx]
			}
			if ink[y*m.tileW+x] {
				if !covered {
					misses++
				}
			} else if covered {
				extras++
			}
		}
	}
	return cfg.MissWeight*float64(misses) + cfg.ExtraWeight*float64(extras)
}
