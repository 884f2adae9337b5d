package world

import (
	"time"

	"github.com/falldown/falldown/internal/collision"
	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
)

// PlayerSpec describes the collector.
type PlayerSpec struct {
	Width, Height float64
	Color         component.Color
	TrailSize     int
}

// SpawnPlayer creates the collector at the bottom centre of the arena.
// Its collider is registered with the index by the next collision sync.
func (s *State) SpawnPlayer(ps PlayerSpec) ecs.EntityID {
	id := s.World.Create()
	s.Transforms.Set(id, &component.Transform{X: s.Arena.Width / 2, Y: ps.Height})
	s.Players.Set(id, component.NewPlayer(ps.TrailSize))
	aff := component.PlayerOf(ps.Color)
	s.Affiliations.Set(id, &aff)
	s.Colliders.Insert(id, component.NewCollider(
		collision.Cuboid{HalfW: ps.Width / 2, HalfH: ps.Height / 2},
		component.PlayerGroups(),
		collision.Contacts(s.Margin),
	))
	return id
}

// SpawnBlock creates a falling enemy block at (x, y).
func (s *State) SpawnBlock(x, y float64, color component.Color, fall component.FallingObject) ecs.EntityID {
	id := s.World.Create()
	s.Transforms.Set(id, &component.Transform{X: x, Y: y})
	s.Falling.Set(id, &fall)
	aff := component.EnemyOf(color)
	s.Affiliations.Set(id, &aff)
	s.Colliders.Insert(id, component.NewCollider(
		collision.Ball{Radius: fall.Radius},
		component.EnemyGroups(),
		collision.Contacts(s.Margin),
	))
	return id
}

// SpawnSpawner creates an entity that emits blocks every interval.
func (s *State) SpawnSpawner(interval time.Duration, radius float64) ecs.EntityID {
	id := s.World.Create()
	s.Spawners.Set(id, component.NewSpawner(interval, radius))
	return id
}

// SpawnCursor creates a marker that eases toward the pointer.
func (s *State) SpawnCursor(xRatio, yRatio float64) ecs.EntityID {
	id := s.World.Create()
	s.Transforms.Set(id, &component.Transform{X: s.Arena.Width / 2, Y: s.Arena.Height / 2})
	s.Followers.Set(id, &component.FollowPointer{XRatio: xRatio, YRatio: yRatio})
	return id
}
