package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/falldown/falldown/internal/component"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPalette(t *testing.T) {
	path := writeFile(t, "palette.yaml", `
colors:
  - color: red
    weight: 3
  - color: blue
  - color: Purple
    weight: 1
`)
	p, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	if p.Count() != 3 {
		t.Fatalf("Expected 3 colors, got %d", p.Count())
	}

	// total weight 5: [0,3) red, [3,4) blue, [4,5) purple
	cases := []struct {
		roll float64
		want component.Color
	}{
		{0.0, component.Red},
		{0.59, component.Red},
		{0.61, component.Blue},
		{0.79, component.Blue},
		{0.81, component.Purple},
		{0.999, component.Purple},
	}
	for _, c := range cases {
		if got := p.Pick(c.roll); got != c.want {
			t.Errorf("Pick(%v): expected %v, got %v", c.roll, c.want, got)
		}
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	if _, err := LoadPalette(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadPalette(writeFile(t, "empty.yaml", "colors: []\n")); err == nil {
		t.Error("Expected error for empty palette")
	}
	if _, err := LoadPalette(writeFile(t, "bad.yaml", "colors:\n  - color: teal\n")); err == nil {
		t.Error("Expected error for unknown color")
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Count() != len(component.Colors) {
		t.Errorf("Expected %d colors, got %d", len(component.Colors), p.Count())
	}
	if got := p.Colors(); got[0] != component.Red {
		t.Errorf("Expected red first, got %v", got[0])
	}
}
