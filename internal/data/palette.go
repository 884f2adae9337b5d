package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/falldown/falldown/internal/component"
)

// PaletteEntry is one colour in the spawn rotation.
type PaletteEntry struct {
	Color  component.Color `yaml:"color"`
	Weight int             `yaml:"weight"` // relative odds; <= 0 means 1
}

type paletteFile struct {
	Colors []PaletteEntry `yaml:"colors"`
}

// Palette picks block colours with weighted odds.
type Palette struct {
	entries []PaletteEntry
	total   int
}

// LoadPalette loads the colour rotation from a YAML file.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	p, err := NewPalette(f.Colors)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// NewPalette builds a palette from entries; at least one is required.
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no colors")
	}
	p := &Palette{entries: make([]PaletteEntry, len(entries))}
	for i, e := range entries {
		if !e.Color.Valid() {
			return nil, fmt.Errorf("entry %d: invalid color %d", i, uint8(e.Color))
		}
		if e.Weight <= 0 {
			e.Weight = 1
		}
		p.entries[i] = e
		p.total += e.Weight
	}
	return p, nil
}

// DefaultPalette contains every colour once.
func DefaultPalette() *Palette {
	entries := make([]PaletteEntry, 0, len(component.Colors))
	for _, c := range component.Colors {
		entries = append(entries, PaletteEntry{Color: c, Weight: 1})
	}
	p, _ := NewPalette(entries)
	return p
}

// Pick maps roll in [0, 1) onto a colour by weight.
func (p *Palette) Pick(roll float64) component.Color {
	target := int(roll * float64(p.total))
	for _, e := range p.entries {
		if target < e.Weight {
			return e.Color
		}
		target -= e.Weight
	}
	return p.entries[len(p.entries)-1].Color
}

// Count returns the number of colours in rotation.
func (p *Palette) Count() int { return len(p.entries) }

// Colors returns the colours in rotation, in file order.
func (p *Palette) Colors() []component.Color {
	out := make([]component.Color, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Color
	}
	return out
}
