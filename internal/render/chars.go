package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/charcoaldev/charcoal/internal/document"
)

// CharCell is one resolved display character for cell-based frontends.
type CharCell struct {
	Char  rune
	FlipX bool
	FlipY bool
	Typed bool // true when the character comes from the text plane
}

// CharGrid resolves every cell through the text-over-glyph rule and returns
// a rows*cols grid for terminal rendering, where mirroring cannot be
// expressed and only the resolved rune matters.
func CharGrid(doc *document.Document) [][]CharCell {
	rows := make([][]CharCell, doc.Rows())
	for row := 0; row < doc.Rows(); row++ {
		line := make([]CharCell, doc.Cols())
		for col := 0; col < doc.Cols(); col++ {
			ch, fx, fy := doc.FinalCharAt(col, row)
			_, typed := doc.TextAt(col, row)
			line[col] = CharCell{Char: ch, FlipX: fx, FlipY: fy, Typed: typed}
		}
		rows[row] = line
	}
	return rows
}

// ComposeChars renders the character overlay: every cell's final character
// (text plane over glyph plane) drawn with the document's face, glyph-plane
// entries mirrored per their flip flags. The result is transparent where
// cells are blank, ready to composite over the pixel frame.
func (r *Renderer) ComposeChars(doc *document.Document, face font.Face) *image.RGBA {
	cfg := doc.Config()
	img := image.NewRGBA(image.Rect(0, 0, cfg.PixelW(), cfg.PixelH()))
	inkSrc := image.NewUniform(toRGBA(r.ink(cfg.Polarity)))

	tile := image.NewAlpha(image.Rect(0, 0, cfg.TileW, cfg.TileH))

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			ch, flipX, flipY := doc.FinalCharAt(col, row)
			if ch == document.Blank {
				continue
			}

			clearAlpha(tile)
			d := font.Drawer{
				Dst:  tile,
				Src:  image.Opaque,
				Face: face,
				Dot:  fixed.P(0, cfg.Baseline),
			}
			d.DrawString(string(ch))

			if flipX || flipY {
				mirrorAlpha(tile, flipX, flipY)
			}

			dst := image.Rect(col*cfg.TileW, row*cfg.TileH,
				(col+1)*cfg.TileW, (row+1)*cfg.TileH)
			draw.DrawMask(img, dst, inkSrc, image.Point{}, tile, image.Point{}, draw.Over)
		}
	}
	return img
}

func clearAlpha(img *image.Alpha) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

// mirrorAlpha flips the mask in place on the requested axes.
func mirrorAlpha(img *image.Alpha, flipX, flipY bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]uint8, len(img.Pix))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := x, y
			if flipX {
				sx = w - 1 - x
			}
			if flipY {
				sy = h - 1 - y
			}
			out[y*img.Stride+x] = img.Pix[sy*img.Stride+sx]
		}
	}
	copy(img.Pix, out)
}
