package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/falldown/falldown/internal/component"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "falldown.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[arena]
width = 1024

[loop]
tick_rate = "20ms"
max_ticks = 500

[player]
color = "Blue"

[collision]
capacity = 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Arena.Width != 1024 || cfg.Arena.Height != 600 {
		t.Errorf("Expected 1024x600 arena, got %+v", cfg.Arena)
	}
	if cfg.Loop.TickRate != 20*time.Millisecond || cfg.Loop.MaxTicks != 500 {
		t.Errorf("Unexpected loop config %+v", cfg.Loop)
	}
	if cfg.Player.Color != component.Blue {
		t.Errorf("Expected blue player, got %v", cfg.Player.Color)
	}
	if cfg.Collision.Capacity != 0 || cfg.Collision.CellSize != 64 {
		t.Errorf("Unexpected collision config %+v", cfg.Collision)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[spawner]
interval = "2s"
`)
	t.Setenv("FALLDOWN_SPAWN_INTERVAL", "250ms")
	t.Setenv("FALLDOWN_PLAYER_COLOR", "purple")
	t.Setenv("FALLDOWN_LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Spawner.Interval != 250*time.Millisecond {
		t.Errorf("Expected env interval, got %s", cfg.Spawner.Interval)
	}
	if cfg.Player.Color != component.Purple {
		t.Errorf("Expected purple, got %v", cfg.Player.Color)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Palette != "data/yaml/palette.yaml" {
		t.Errorf("Expected default palette path, got %q", cfg.Data.Palette)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "[arena\n")); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := Load(writeConfig(t, "[player]\ncolor = \"teal\"\n")); err == nil {
		t.Error("Expected unknown colour to fail")
	}

	_, err := Load(writeConfig(t, "[arena]\nwidth = -1\n[collision]\ncell_size = 0\n"))
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"arena size", "cell_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}
