package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charcoaldev/charcoal/internal/document"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	want := Default()
	want.FontFamily = "Go Regular"
	want.FontSize = 18
	want.Polarity = document.LightBackground
	want.Charset = "#. "
	want.PixelOpacity = 0.5
	want.Debounce = 400 * time.Millisecond
	want.Match.OffsetRange = 2
	want.Match.TestFlips = false
	want.Match.InkThreshold = 200
	want.Match.MissWeight = 2.5
	want.Match.ExtraWeight = 0.1

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"font":{"size":20}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.FontSize != 20 {
		t.Errorf("FontSize = %g, want 20", s.FontSize)
	}
	def := Default()
	if s.FontFamily != def.FontFamily || s.Charset != def.Charset || s.Match != def.Match {
		t.Errorf("unset fields should keep defaults, got %+v", s)
	}
}

func TestLoadMalformedFileReportsButDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err == nil {
		t.Error("Load(malformed) should return an error")
	}
	if s != Default() {
		t.Errorf("Load(malformed) = %+v, want defaults alongside the error", s)
	}
}

func TestLoadIgnoresOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"font":{"size":-3},"pixelOpacity":7,"debounceMs":-10}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if s.FontSize != def.FontSize || s.PixelOpacity != def.PixelOpacity || s.Debounce != def.Debounce {
		t.Errorf("out-of-range values should be ignored, got %+v", s)
	}
}
