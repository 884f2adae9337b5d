package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/falldown/falldown/internal/component"
)

type Config struct {
	Arena     ArenaConfig     `toml:"arena"`
	Loop      LoopConfig      `toml:"loop"`
	Spawner   SpawnerConfig   `toml:"spawner"`
	Player    PlayerConfig    `toml:"player"`
	Collision CollisionConfig `toml:"collision"`
	Logging   LoggingConfig   `toml:"logging"`
	Data      DataConfig      `toml:"data"`
	Debug     DebugConfig     `toml:"debug"`
}

// ArenaConfig is the playfield size in world units; y grows upward.
type ArenaConfig struct {
	Width  float64 `toml:"width"  env:"FALLDOWN_ARENA_WIDTH"`
	Height float64 `toml:"height" env:"FALLDOWN_ARENA_HEIGHT"`
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate" env:"FALLDOWN_TICK_RATE"`
	MaxTicks uint64        `toml:"max_ticks" env:"FALLDOWN_MAX_TICKS"` // 0 = run until signalled
	Seed     int64         `toml:"seed"      env:"FALLDOWN_SEED"`      // 0 = time based
}

type SpawnerConfig struct {
	Interval time.Duration `toml:"interval" env:"FALLDOWN_SPAWN_INTERVAL"`
	Radius   float64       `toml:"radius"   env:"FALLDOWN_SPAWN_RADIUS"`
}

type PlayerConfig struct {
	Width     float64         `toml:"width"      env:"FALLDOWN_PLAYER_WIDTH"`
	Height    float64         `toml:"height"     env:"FALLDOWN_PLAYER_HEIGHT"`
	Color     component.Color `toml:"color"      env:"FALLDOWN_PLAYER_COLOR"`
	TrailSize int             `toml:"trail_size" env:"FALLDOWN_PLAYER_TRAIL"`
}

type CollisionConfig struct {
	CellSize float64 `toml:"cell_size" env:"FALLDOWN_CELL_SIZE"`
	Capacity int     `toml:"capacity"  env:"FALLDOWN_COLLISION_CAPACITY"` // 0 = unbounded
	Margin   float64 `toml:"margin"    env:"FALLDOWN_COLLISION_MARGIN"`
}

type LoggingConfig struct {
	Level  string `toml:"level"  env:"FALLDOWN_LOG_LEVEL"`
	Format string `toml:"format" env:"FALLDOWN_LOG_FORMAT"` // "json" or "console"
}

type DataConfig struct {
	Palette string `toml:"palette" env:"FALLDOWN_PALETTE"`
	Scripts string `toml:"scripts" env:"FALLDOWN_SCRIPTS"`
}

type DebugConfig struct {
	Profile string `toml:"profile" env:"FALLDOWN_PROFILE"` // "", "cpu", "mem" or "trace"
}

// Load reads the TOML file at path over the defaults, then applies
// FALLDOWN_* environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size %gx%g must be positive", c.Arena.Width, c.Arena.Height))
	}
	if c.Loop.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %s must be positive", c.Loop.TickRate))
	}
	if c.Spawner.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawner interval %s must be positive", c.Spawner.Interval))
	}
	if c.Spawner.Radius <= 0 {
		errs = append(errs, fmt.Errorf("spawner radius %g must be positive", c.Spawner.Radius))
	}
	if c.Collision.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size %g must be positive", c.Collision.CellSize))
	}
	if !c.Player.Color.Valid() {
		errs = append(errs, fmt.Errorf("player color %d unknown", c.Player.Color))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging format %q must be json or console", c.Logging.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Loop: LoopConfig{
			TickRate: 16 * time.Millisecond,
		},
		Spawner: SpawnerConfig{
			Interval: time.Second,
			Radius:   20,
		},
		Player: PlayerConfig{
			Width:     80,
			Height:    20,
			Color:     component.Red,
			TrailSize: 8,
		},
		Collision: CollisionConfig{
			CellSize: 64,
			Capacity: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Palette: "data/yaml/palette.yaml",
			Scripts: "scripts",
		},
	}
}
