package system

import (
	"math"
	"time"

	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/world"
)

const (
	maxTiltDegrees = 45.0
	tiltPerUnit    = -2.0 // degrees of tilt per unit of recent travel
	tiltDeadZone   = 0.1
)

// PointerSource supplies the pointer position normalised to [0, 1) on both
// axes. ok is false while no position is known.
type PointerSource interface {
	Pointer() (x, y float64, ok bool)
}

// PlayerMovementSystem moves the collector to the pointer, eases followers
// toward it and tilts the collector by how far it travelled recently.
// Phase 0 (Input).
type PlayerMovementSystem struct {
	world   *world.State
	pointer PointerSource
}

func NewPlayerMovementSystem(ws *world.State, pointer PointerSource) *PlayerMovementSystem {
	return &PlayerMovementSystem{world: ws, pointer: pointer}
}

func (s *PlayerMovementSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlayerMovementSystem) Update(_ time.Duration) error {
	if px, py, ok := s.pointer.Pointer(); ok {
		tx, ty := px*s.world.Arena.Width, py*s.world.Arena.Height
		ecs.Each2(s.world.Players, s.world.Transforms, func(_ ecs.EntityID, _ *component.Player, tr *component.Transform) {
			tr.X, tr.Y = tx, ty
		})
		ecs.Each2(s.world.Followers, s.world.Transforms, func(_ ecs.EntityID, f *component.FollowPointer, tr *component.Transform) {
			tr.Translate((tx-tr.X)*f.XRatio, (ty-tr.Y)*f.YRatio)
		})
	}

	ecs.Each2(s.world.Players, s.world.Transforms, func(_ ecs.EntityID, p *component.Player, tr *component.Transform) {
		p.Trail.Push(tr.X)
		tr.Rotation = tiltFor(p.Trail, tr.X)
	})
	return nil
}

// tiltFor returns the collector's rotation in radians for its travel since
// the oldest trail sample.
func tiltFor(trail *component.Trail, x float64) float64 {
	oldest, ok := trail.Oldest()
	if !ok {
		return 0
	}
	dx := x - oldest
	if math.Abs(dx) <= tiltDeadZone {
		return 0
	}
	deg := max(-maxTiltDegrees, min(maxTiltDegrees, dx*tiltPerUnit))
	return deg * math.Pi / 180
}
