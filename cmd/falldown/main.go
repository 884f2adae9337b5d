package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/falldown/falldown/internal/config"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/data"
	"github.com/falldown/falldown/internal/scripting"
	"github.com/falldown/falldown/internal/system"
	"github.com/falldown/falldown/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              falldown  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless simulation driver         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value string) {
	dotsLen := max(42-len(label)-len(value), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/falldown.toml"
	if p := os.Getenv("FALLDOWN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Debug.Profile); stop != nil {
		defer stop()
	}

	printBanner()

	// 3. Load data tables and scripts
	printSection("data")
	palette, err := data.LoadPalette(cfg.Data.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	printStat("palette colors", fmt.Sprint(palette.Count()))

	lua, err := scripting.NewEngine(cfg.Data.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	defer lua.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 4. Build world state and systems
	ws := world.NewState(world.Options{
		Arena:    world.Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		CellSize: cfg.Collision.CellSize,
		Capacity: cfg.Collision.Capacity,
		Margin:   cfg.Collision.Margin,
	})
	scoreboard := world.NewScoreboard(ws.Bus, lua, log)

	seed := cfg.Loop.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	player := ws.SpawnPlayer(world.PlayerSpec{
		Width:     cfg.Player.Width,
		Height:    cfg.Player.Height,
		Color:     cfg.Player.Color,
		TrailSize: cfg.Player.TrailSize,
	})
	ws.SpawnCursor(0.2, 0.2)
	ws.SpawnSpawner(cfg.Spawner.Interval, cfg.Spawner.Radius)
	pilot := newAutopilot(ws, player)

	runner := coresys.NewRunner()
	runner.Register(system.NewPlayerMovementSystem(ws, pilot))
	runner.Register(system.NewSpawnerSystem(ws, palette, lua, rng, log))
	runner.Register(system.NewFallingObjectSystem(ws, log))
	runner.Register(system.NewCollisionSyncSystem(ws, log))
	runner.Register(system.NewObjectCollectionSystem(ws, log))
	runner.Register(system.NewEventDispatchSystem(ws.Bus))
	runner.Register(system.NewCleanupSystem(ws.World, log))

	// 5. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printSection("running")
	printStat("tick rate", cfg.Loop.TickRate.String())
	printStat("player color", cfg.Player.Color.DisplayName())
	printStat("seed", fmt.Sprint(seed))
	fmt.Println()

	last := time.Now()
	maxStep := 4 * cfg.Loop.TickRate
	for {
		select {
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxStep)
			last = now
			if err := runner.Tick(dt); err != nil {
				log.Error("tick failed", zap.Error(err))
			}
			if cfg.Loop.MaxTicks > 0 && runner.Ticks() >= cfg.Loop.MaxTicks {
				logScore(log, scoreboard, runner.Ticks())
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			logScore(log, scoreboard, runner.Ticks())
			return nil
		}
	}
}

func logScore(log *zap.Logger, sb *world.Scoreboard, ticks uint64) {
	s := sb.Score()
	log.Info("simulation stopped",
		zap.Uint64("ticks", ticks),
		zap.Int("points", s.Points),
		zap.Int("catches", s.Catches),
		zap.Int("misses", s.Misses),
		zap.Int("best_streak", s.BestStreak),
	)
}

// startProfile starts the profiler selected in [debug] and returns its stop
// function, or nil when profiling is off.
func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	case "trace":
		opt = profile.TraceProfile
	default:
		return nil
	}
	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	return p.Stop
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
