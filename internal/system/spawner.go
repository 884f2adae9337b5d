package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/component"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/data"
	"github.com/falldown/falldown/internal/scripting"
	"github.com/falldown/falldown/internal/world"
)

// SpawnTuner decides the motion of a new block. *scripting.Engine and
// scripting.Defaults satisfy it.
type SpawnTuner interface {
	CalcSpawn(ctx scripting.SpawnContext) scripting.SpawnResult
}

// SpawnerSystem advances every Spawner and drops a new block along the top
// edge of the arena each time one fires. It also advances the simulation
// clock. Phase 1 (Spawn).
type SpawnerSystem struct {
	world   *world.State
	palette *data.Palette
	tuner   SpawnTuner
	rng     *rand.Rand
	log     *zap.Logger
}

func NewSpawnerSystem(ws *world.State, palette *data.Palette, tuner SpawnTuner, rng *rand.Rand, log *zap.Logger) *SpawnerSystem {
	return &SpawnerSystem{world: ws, palette: palette, tuner: tuner, rng: rng, log: log}
}

func (s *SpawnerSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnerSystem) Update(dt time.Duration) error {
	s.world.Elapsed += dt

	// fixed order keeps a seeded run reproducible
	for _, sp := range s.world.Spawners.Sorted() {
		if sp.Advance(dt) {
			s.spawn(sp.Radius)
		}
	}
	return nil
}

func (s *SpawnerSystem) spawn(radius float64) {
	x := s.rng.Float64() * s.world.Arena.Width
	y := s.world.Arena.Height + radius

	sign := 1.0
	if s.rng.Intn(2) == 0 {
		sign = -1
	}
	motion := s.tuner.CalcSpawn(scripting.SpawnContext{
		Elapsed: s.world.Elapsed.Seconds(),
		Radius:  radius,
		Roll1:   s.rng.Float64(),
		Roll2:   s.rng.Float64(),
		Sign:    sign,
	})
	color := s.palette.Pick(s.rng.Float64())

	id := s.world.SpawnBlock(x, y, color, component.FallingObject{
		FallRate: motion.FallRate,
		SpinRate: motion.SpinRate,
		Radius:   radius,
	})
	s.log.Debug("block spawned",
		zap.Uint64("entity", uint64(id)),
		zap.String("color", color.String()),
		zap.Float64("x", x),
		zap.Float64("fall_rate", motion.FallRate))
}
