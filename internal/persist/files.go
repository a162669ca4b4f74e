package persist

import (
	"fmt"
	"os"
	"strings"

	"github.com/charcoaldev/charcoal/internal/logging"
)

// SaveFiles writes an artifact as <base>.png and <base>.json.
func SaveFiles(base string, art Artifact) error {
	base = strings.TrimSuffix(base, ".png")
	if err := os.WriteFile(base+".png", art.PNG, 0o644); err != nil {
		return fmt.Errorf("persist: write image: %w", err)
	}
	if err := os.WriteFile(base+".json", []byte(art.Meta), 0o644); err != nil {
		return fmt.Errorf("persist: write metadata: %w", err)
	}
	return nil
}

// LoadFiles reads <base>.png and <base>.json and rebuilds the document.
func LoadFiles(base string, log *logging.Logger) (Result, error) {
	base = strings.TrimSuffix(base, ".png")
	pngData, err := os.ReadFile(base + ".png")
	if err != nil {
		return Result{}, fmt.Errorf("persist: read image: %w", err)
	}
	meta, err := os.ReadFile(base + ".json")
	if err != nil {
		return Result{}, fmt.Errorf("persist: read metadata: %w", err)
	}
	return Load(Artifact{PNG: pngData, Meta: string(meta)}, log)
}
