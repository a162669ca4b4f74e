package app

import (
	"fmt"
	"os"

	"github.com/charcoaldev/charcoal/internal/clipboard"
	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
	"github.com/charcoaldev/charcoal/internal/history"
	"github.com/charcoaldev/charcoal/internal/logging"
	"github.com/charcoaldev/charcoal/internal/match"
	"github.com/charcoaldev/charcoal/internal/persist"
	"github.com/charcoaldev/charcoal/internal/render"
	"github.com/charcoaldev/charcoal/internal/settings"
	"github.com/charcoaldev/charcoal/internal/term"
	"github.com/charcoaldev/charcoal/internal/tool"
)

// Default canvas grid for a fresh document.
const (
	DefaultCols = 40
	DefaultRows = 12
)

// Options configures a new application.
type Options struct {
	// Cols and Rows size a fresh canvas; ignored when File loads one.
	Cols, Rows int

	// File is the base path of a document to open and the default save
	// target. Empty starts with a blank canvas and no save path.
	File string

	// SettingsPath overrides the settings file location.
	SettingsPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// App is the assembled editor.
type App struct {
	log      *logging.Logger
	terminal *term.Terminal

	settings     settings.Settings
	settingsPath string

	doc     *document.Document
	hist    *history.Stack
	disp    *tool.Dispatcher
	coord   *convert.Coordinator
	metrics fontmetrics.Metrics

	renderer *render.Renderer
	theme    render.Theme
	showGrid bool

	clip     clipboard.Clipboard
	savePath string

	applyCh chan []document.GlyphCell

	dirty    bool
	caretOn  bool
	dragging bool
	status   string
}

// New assembles the editor against the given terminal. The terminal is not
// initialized here; Run owns its lifecycle.
func New(opts Options, terminal *term.Terminal) (*App, error) {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.LogLevel),
		Output: os.Stderr,
		Prefix: "charcoal",
	})
	logging.SetDefault(log)

	a := &App{
		log:          log.WithComponent("app"),
		terminal:     terminal,
		settingsPath: opts.SettingsPath,
		clip:         &clipboard.Memory{},
		applyCh:      make(chan []document.GlyphCell, 1),
		theme:        render.DefaultTheme(),
	}
	if a.settingsPath == "" {
		a.settingsPath = settings.DefaultPath()
	}

	var err error
	a.settings, err = settings.Load(a.settingsPath)
	if err != nil {
		// A broken settings file falls back to defaults.
		a.log.Warn("settings: %v", err)
	}

	if opts.File != "" && documentExists(opts.File) {
		if err := a.openDocument(opts.File); err != nil {
			return nil, err
		}
	} else {
		if err := a.freshDocument(opts.Cols, opts.Rows); err != nil {
			return nil, err
		}
		a.savePath = opts.File
	}

	matcher, err := match.New(a.metrics.Face, a.metrics.TileW, a.metrics.TileH,
		a.metrics.Baseline, a.doc.Config().Polarity, a.doc.Config().Charset)
	if err != nil {
		return nil, fmt.Errorf("app: build matcher: %w", err)
	}
	a.coord = convert.New(matcher,
		convert.WithDebounce(a.settings.Debounce),
		convert.WithLogger(log.WithComponent("convert")))

	a.hist = history.New(history.DefaultCapacity)
	a.hist.Push(a.doc.Snapshot())

	a.disp = tool.NewDispatcher(a.doc, a.hist, log, a.onChange)
	a.renderer = render.New(render.Options{
		PixelOpacity: a.settings.PixelOpacity,
		ShowGrid:     a.showGrid,
	}, a.theme)

	a.status = "ready"
	return a, nil
}

// Shutdown releases everything New acquired. Safe to call after a failed
// Run.
func (a *App) Shutdown() {
	if a.coord != nil {
		a.coord.Cancel()
	}
	if err := settings.Save(a.settingsPath, a.settings); err != nil {
		a.log.Warn("save settings: %v", err)
	}
}

// Document exposes the live document, for tests.
func (a *App) Document() *document.Document { return a.doc }

// Dispatcher exposes the tool dispatcher, for tests.
func (a *App) Dispatcher() *tool.Dispatcher { return a.disp }

// SetClipboard replaces the clipboard integration.
func (a *App) SetClipboard(c clipboard.Clipboard) {
	if c != nil {
		a.clip = c
	}
}

func documentExists(base string) bool {
	_, err := os.Stat(base + ".json")
	return err == nil
}

func (a *App) openDocument(base string) error {
	res, err := persist.LoadFiles(base, a.log)
	if err != nil {
		return fmt.Errorf("app: open %s: %w", base, err)
	}
	a.doc = res.Doc
	a.metrics = res.Metrics
	a.savePath = base
	a.settings.FontFamily = res.FontFamily
	a.settings.FontSize = res.FontSize
	if res.MatchCfg != nil {
		a.settings.Match = *res.MatchCfg
	}
	a.log.Info("opened %s (%dx%d cells)", base, a.doc.Cols(), a.doc.Rows())
	return nil
}

func (a *App) freshDocument(cols, rows int) error {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}

	var err error
	a.metrics, err = fontmetrics.Measure(a.settings.FontFamily, a.settings.FontSize, a.log)
	if err != nil {
		return fmt.Errorf("app: font metrics: %w", err)
	}

	a.doc, err = document.New(document.Config{
		Cols:     cols,
		Rows:     rows,
		TileW:    a.metrics.TileW,
		TileH:    a.metrics.TileH,
		Baseline: a.metrics.Baseline,
		Polarity: a.settings.Polarity,
		Charset:  []rune(a.settings.Charset),
	})
	if err != nil {
		return fmt.Errorf("app: new document: %w", err)
	}
	return nil
}

// onChange runs on the event loop whenever a tool mutated visible state.
// It marks the frame dirty and schedules a debounced conversion.
func (a *App) onChange() {
	a.dirty = true
	a.scheduleConversion()
}

func (a *App) scheduleConversion() {
	a.coord.Request(a.doc.ClonePixels(), a.doc.PixelW(), a.doc.PixelH(),
		a.settings.Match, a.applyGlyphs)
}

// convertNow repopulates the glyph plane without waiting for the debounce
// interval, used after load, undo, and redo.
func (a *App) convertNow() {
	a.coord.RequestNow(a.doc.ClonePixels(), a.doc.PixelW(), a.doc.PixelH(),
		a.settings.Match, a.applyGlyphs)
}

// applyGlyphs runs on the coordinator goroutine. It parks the result for
// the event loop and wakes it; a result the loop has not consumed yet is
// stale and gets replaced.
func (a *App) applyGlyphs(cells []document.GlyphCell) {
	for {
		select {
		case a.applyCh <- cells:
			a.terminal.Wake()
			return
		default:
			select {
			case <-a.applyCh:
			default:
			}
		}
	}
}

func (a *App) save() {
	if a.savePath == "" {
		a.savePath = "untitled"
	}
	art, err := persist.Save(a.doc, a.settings.FontFamily, a.settings.FontSize, &a.settings.Match)
	if err != nil {
		a.log.Error("save: %v", err)
		a.status = "save failed"
		return
	}
	if err := persist.SaveFiles(a.savePath, art); err != nil {
		a.log.Error("save: %v", err)
		a.status = "save failed"
		return
	}
	a.status = fmt.Sprintf("saved %s", a.savePath)
	a.log.Info("saved %s", a.savePath)
}

func (a *App) exportClipboard() {
	text := clipboard.ExportText(a.doc)
	if err := a.clip.WriteText(text); err != nil {
		a.log.Warn("clipboard: %v", err)
		a.status = "copy failed"
		return
	}
	a.status = "copied as text"
}

func (a *App) undo() {
	snap, ok := a.hist.Undo()
	if !ok {
		a.status = "nothing to undo"
		return
	}
	if err := a.doc.Restore(snap); err != nil {
		a.log.Error("undo: %v", err)
		return
	}
	a.dirty = true
	a.convertNow()
}

func (a *App) redo() {
	snap, ok := a.hist.Redo()
	if !ok {
		a.status = "nothing to redo"
		return
	}
	if err := a.doc.Restore(snap); err != nil {
		a.log.Error("redo: %v", err)
		return
	}
	a.dirty = true
	a.convertNow()
}

// presetCharsets are the character sets the charset key cycles through:
// full printable ASCII, a density ramp, and a line-art set.
var presetCharsets = []string{
	settings.DefaultCharset,
	" .:-=+*#%@",
	" .,'`|/(){}[]<>_-",
}

// cycleCharset advances to the next preset character set.
func (a *App) cycleCharset() {
	next := presetCharsets[0]
	for i, cs := range presetCharsets {
		if cs == a.settings.Charset {
			next = presetCharsets[(i+1)%len(presetCharsets)]
			break
		}
	}
	a.applyCharset(next)
}

// applyCharset swaps the allowed character set in place: the matcher
// re-rasterizes its candidates first, then the document adopts the set and
// a conversion runs immediately so the glyph plane reflects it.
func (a *App) applyCharset(charset string) {
	cs := []rune(charset)
	if err := a.coord.Rebuild(cs); err != nil {
		a.log.Error("charset rebuild: %v", err)
		a.status = "charset rebuild failed"
		return
	}
	a.doc.SetCharset(cs)
	a.settings.Charset = charset
	a.convertNow()
	a.status = "charset changed"
	a.dirty = true
}

func (a *App) toggleGrid() {
	a.showGrid = !a.showGrid
	a.renderer = render.New(render.Options{
		PixelOpacity: a.settings.PixelOpacity,
		ShowGrid:     a.showGrid,
	}, a.theme)
	a.dirty = true
}
