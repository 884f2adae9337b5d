package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/world"
)

// FallingObjectSystem drops and spins every falling object and requests
// deletion once it has left the bottom of the arena.
// Phase 2 (Update).
type FallingObjectSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewFallingObjectSystem(ws *world.State, log *zap.Logger) *FallingObjectSystem {
	return &FallingObjectSystem{world: ws, log: log}
}

func (s *FallingObjectSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *FallingObjectSystem) Update(dt time.Duration) error {
	secs := dt.Seconds()
	ecs.Each2(s.world.Falling, s.world.Transforms, func(id ecs.EntityID, f *component.FallingObject, tr *component.Transform) {
		tr.Translate(0, -f.FallRate*secs)
		tr.Rotate(f.SpinRate * secs)
		if tr.Y >= -f.Radius || s.world.World.Queued(id) {
			return
		}
		if err := s.world.World.Delete(id); err != nil {
			s.log.Warn("off-screen delete", zap.Uint64("entity", uint64(id)), zap.Error(err))
			return
		}
		s.log.Debug("block left the arena", zap.Uint64("entity", uint64(id)))
	})
	return nil
}
