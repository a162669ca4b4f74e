// Package settings persists editor preferences between sessions.
//
// Settings live in a single JSON file. Loading is forgiving: a missing
// file or an unknown field yields defaults, and a malformed file is
// reported but never fatal.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/charcoaldev/charcoal/internal/convert"
	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/fontmetrics"
)

// DefaultCharset is the character set offered to the matcher when the
// user has not chosen one.
const DefaultCharset = ` !"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\]^_` + "`" + `abcdefghijklmnopqrstuvwxyz{|}~`

// Settings holds the user preferences the editor persists.
type Settings struct {
	FontFamily   string
	FontSize     float64
	Polarity     document.Polarity
	Charset      string
	Match        convert.MatchConfig
	PixelOpacity float64
	Debounce     time.Duration
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		FontFamily:   fontmetrics.DefaultFamily,
		FontSize:     14,
		Polarity:     document.DarkBackground,
		Charset:      DefaultCharset,
		Match:        convert.DefaultMatchConfig(),
		PixelOpacity: 0.85,
		Debounce:     convert.DefaultDebounce,
	}
}

// DefaultPath returns the conventional settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "charcoal.json"
	}
	return filepath.Join(dir, "charcoal", "settings.json")
}

// Load reads settings from path. A missing file returns Default() with a
// nil error; unknown or absent fields keep their default values.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return s, fmt.Errorf("settings: %s is not valid JSON", path)
	}

	meta := gjson.ParseBytes(data)
	if v := meta.Get("font.family"); v.Type == gjson.String {
		s.FontFamily = v.Str
	}
	if v := meta.Get("font.size"); v.Type == gjson.Number && v.Float() > 0 {
		s.FontSize = v.Float()
	}
	if v := meta.Get("polarity"); v.Type == gjson.String {
		s.Polarity = document.ParsePolarity(v.Str)
	}
	if v := meta.Get("charset"); v.Type == gjson.String && v.Str != "" {
		s.Charset = v.Str
	}
	if v := meta.Get("pixelOpacity"); v.Type == gjson.Number {
		if f := v.Float(); f >= 0 && f <= 1 {
			s.PixelOpacity = f
		}
	}
	if v := meta.Get("debounceMs"); v.Type == gjson.Number && v.Int() >= 0 {
		s.Debounce = time.Duration(v.Int()) * time.Millisecond
	}
	if m := meta.Get("match"); m.IsObject() {
		if v := m.Get("offsetRange"); v.Type == gjson.Number && v.Int() >= 0 {
			s.Match.OffsetRange = int(v.Int())
		}
		if v := m.Get("testFlips"); v.Type == gjson.True || v.Type == gjson.False {
			s.Match.TestFlips = v.Bool()
		}
		if v := m.Get("inkThreshold"); v.Type == gjson.Number {
			s.Match.InkThreshold = byte(v.Int())
		}
		if v := m.Get("missWeight"); v.Type == gjson.Number {
			s.Match.MissWeight = v.Float()
		}
		if v := m.Get("extraWeight"); v.Type == gjson.Number {
			s.Match.ExtraWeight = v.Float()
		}
	}
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	meta := "{}"
	var err error
	set := func(key string, value any) {
		if err != nil {
			return
		}
		meta, err = sjson.Set(meta, key, value)
	}

	set("font.family", s.FontFamily)
	set("font.size", s.FontSize)
	set("polarity", s.Polarity.String())
	set("charset", s.Charset)
	set("pixelOpacity", s.PixelOpacity)
	set("debounceMs", s.Debounce.Milliseconds())
	set("match.offsetRange", s.Match.OffsetRange)
	set("match.testFlips", s.Match.TestFlips)
	set("match.inkThreshold", int(s.Match.InkThreshold))
	set("match.missWeight", s.Match.MissWeight)
	set("match.extraWeight", s.Match.ExtraWeight)
	if err != nil {
		return fmt.Errorf("settings: build JSON: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(meta), 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
