package persist

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
	"github.com/charcoaldev/charcoal/internal/logging"
)

// Artifact is one serialized document: a grayscale PNG of the pixel plane
// and a JSON metadata string.
type Artifact struct {
	PNG  []byte
	Meta string
}

// Result is everything a successful load rebuilds.
type Result struct {
	Doc        *document.Document
	FontFamily string
	FontSize   float64
	Metrics    fontmetrics.Metrics
	// MatchCfg is nil when the artifact carried no conversion config.
	MatchCfg *convert.MatchConfig
}

// Save serializes the document. matchCfg is optional; pass nil to omit the
// conversion configuration from the metadata.
func Save(doc *document.Document, family string, size float64, matchCfg *convert.MatchConfig) (Artifact, error) {
	cfg := doc.Config()

	img := image.NewGray(image.Rect(0, 0, cfg.PixelW(), cfg.PixelH()))
	copy(img.Pix, doc.ClonePixels())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Artifact{}, fmt.Errorf("persist: encode pixels: %w", err)
	}

	meta, err := buildMeta(doc, family, size, matchCfg)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{PNG: buf.Bytes(), Meta: meta}, nil
}

func buildMeta(doc *document.Document, family string, size float64, matchCfg *convert.MatchConfig) (string, error) {
	cfg := doc.Config()

	meta := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		meta, err = sjson.Set(meta, path, value)
	}

	set("cols", cfg.Cols)
	set("rows", cfg.Rows)
	set("font.family", family)
	set("font.size", size)
	set("polarity", cfg.Polarity.String())
	set("charset", string(cfg.Charset))

	// Deterministic text ordering: row-major walk rather than map order.
	// Each entry is appended as one object; sjson's -1 path appends a new
	// array element per Set call.
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			if ch, ok := doc.TextAt(col, row); ok {
				set("text.-1", map[string]any{
					"col":  col,
					"row":  row,
					"char": string(ch),
				})
			}
		}
	}

	if matchCfg != nil {
		set("match.offsetRange", matchCfg.OffsetRange)
		set("match.testFlips", matchCfg.TestFlips)
		set("match.inkThreshold", int(matchCfg.InkThreshold))
		set("match.missWeight", matchCfg.MissWeight)
		set("match.extraWeight", matchCfg.ExtraWeight)
	}

	if err != nil {
		return "", fmt.Errorf("persist: build metadata: %w", err)
	}
	return meta, nil
}

// Load rebuilds a document from an artifact. It validates all metadata
// and the image geometry before constructing anything; on any failure it
// returns a *DeserializationError and no partial state.
func Load(art Artifact, log *logging.Logger) (Result, error) {
	if log == nil {
		log = logging.Null
	}

	if !gjson.Valid(art.Meta) {
		return Result{}, deserr("", "metadata is not valid JSON")
	}
	meta := gjson.Parse(art.Meta)

	cols, err := requireInt(meta, "cols")
	if err != nil {
		return Result{}, err
	}
	rows, err := requireInt(meta, "rows")
	if err != nil {
		return Result{}, err
	}
	if cols <= 0 || rows <= 0 {
		return Result{}, deserr("cols", "grid %dx%d is not positive", cols, rows)
	}

	family := meta.Get("font.family")
	if !family.Exists() || family.Type != gjson.String {
		return Result{}, deserr("font.family", "missing or not a string")
	}
	sizeVal := meta.Get("font.size")
	if !sizeVal.Exists() || sizeVal.Type != gjson.Number || sizeVal.Float() <= 0 {
		return Result{}, deserr("font.size", "missing or not a positive number")
	}

	polarity := meta.Get("polarity")
	if !polarity.Exists() || polarity.Type != gjson.String {
		return Result{}, deserr("polarity", "missing or not a string")
	}
	charset := meta.Get("charset")
	if !charset.Exists() || charset.Type != gjson.String || charset.Str == "" {
		return Result{}, deserr("charset", "missing or empty")
	}

	img, err2 := png.Decode(bytes.NewReader(art.PNG))
	if err2 != nil {
		return Result{}, deserr("", "decode pixel image: %v", err2)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		// Non-grayscale PNGs were not written by us; convert defensively.
		b := img.Bounds()
		gray = image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				gray.Set(x, y, img.At(x, y))
			}
		}
	}

	fm, err2 := fontmetrics.Measure(family.Str, sizeVal.Float(), log)
	if err2 != nil {
		return Result{}, deserr("font", "resolve metrics: %v", err2)
	}

	wantW, wantH := cols*fm.TileW, rows*fm.TileH
	if gray.Rect.Dx() != wantW || gray.Rect.Dy() != wantH {
		return Result{}, deserr("", "image is %dx%d, metadata implies %dx%d",
			gray.Rect.Dx(), gray.Rect.Dy(), wantW, wantH)
	}

	// Validate text entries before touching any document state.
	type entry struct {
		col, row int
		ch       rune
	}
	var entries []entry
	var badEntry *DeserializationError
	meta.Get("text").ForEach(func(_, item gjson.Result) bool {
		col := item.Get("col")
		row := item.Get("row")
		ch := item.Get("char")
		if col.Type != gjson.Number || row.Type != gjson.Number ||
			ch.Type != gjson.String || len([]rune(ch.Str)) != 1 {
			badEntry = deserr("text", "malformed entry %s", item.Raw)
			return false
		}
		c, r := int(col.Int()), int(row.Int())
		if c < 0 || c >= cols || r < 0 || r >= rows {
			badEntry = deserr("text", "entry (%d,%d) out of the %dx%d grid", c, r, cols, rows)
			return false
		}
		entries = append(entries, entry{col: c, row: r, ch: []rune(ch.Str)[0]})
		return true
	})
	if badEntry != nil {
		return Result{}, badEntry
	}

	doc, err2 := document.New(document.Config{
		Cols:     cols,
		Rows:     rows,
		TileW:    fm.TileW,
		TileH:    fm.TileH,
		Baseline: fm.Baseline,
		Polarity: document.ParsePolarity(polarity.Str),
		Charset:  []rune(charset.Str),
	})
	if err2 != nil {
		return Result{}, deserr("", "rebuild document: %v", err2)
	}
	if err2 := doc.SetPixels(gray.Pix); err2 != nil {
		return Result{}, deserr("", "restore pixels: %v", err2)
	}
	for _, e := range entries {
		doc.SetText(e.col, e.row, e.ch)
	}

	res := Result{
		Doc:        doc,
		FontFamily: fm.Family,
		FontSize:   sizeVal.Float(),
		Metrics:    fm,
	}
	if m := meta.Get("match"); m.Exists() {
		res.MatchCfg = &convert.MatchConfig{
			OffsetRange:  int(m.Get("offsetRange").Int()),
			TestFlips:    m.Get("testFlips").Bool(),
			InkThreshold: byte(m.Get("inkThreshold").Int()),
			MissWeight:   m.Get("missWeight").Float(),
			ExtraWeight:  m.Get("extraWeight").Float(),
		}
	}
	return res, nil
}

func requireInt(meta gjson.Result, path string) (int, error) {
	v := meta.Get(path)
	if !v.Exists() || v.Type != gjson.Number {
		return 0, deserr(path, "missing or not a number")
	}
	return int(v.Int()), nil
}
