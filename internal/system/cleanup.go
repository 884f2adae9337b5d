package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/core/event"
	coresys "github.com/falldown/falldown/internal/core/system"
)

// EventDispatchSystem delivers pending bus events to subscribed handlers
// such as the scoreboard. Phase 5 (Dispatch).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EventDispatchSystem) Update(_ time.Duration) error {
	return s.bus.DispatchAll()
}

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Removing the entities' colliders publishes the Removed events the
// collision sync system drains next tick.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) error {
	if n := s.world.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Int("alive", s.world.Count()))
	}
	return nil
}
