package world

import (
	"time"

	"github.com/falldown/falldown/internal/collision"
	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/core/event"
)

// Arena is the playfield in world units. The origin is the bottom-left
// corner and y grows upward, so objects spawn above Height and fall to 0.
type Arena struct {
	Width, Height float64
}

// Options configures a new State.
type Options struct {
	Arena    Arena
	CellSize float64 // broad phase cell edge
	Capacity int     // spatial index limit, 0 = unbounded
	Margin   float64 // contact margin for every collider
}

// State is the simulation context handed to every system: the entity world,
// its component stores, the spatial index and the event bus.
// Single-goroutine access only (game loop).
type State struct {
	World *ecs.World
	Bus   *event.Bus
	Index *collision.World[ecs.EntityID]

	Colliders    *ecs.TrackedStore[component.Collider, collision.Handle]
	Transforms   *ecs.PtrComponentStore[component.Transform]
	Affiliations *ecs.PtrComponentStore[component.Affiliation]
	Falling      *ecs.PtrComponentStore[component.FallingObject]
	Spawners     *ecs.PtrComponentStore[component.Spawner]
	Players      *ecs.PtrComponentStore[component.Player]
	Followers    *ecs.PtrComponentStore[component.FollowPointer]

	Arena   Arena
	Margin  float64
	Elapsed time.Duration // simulated time, advanced by the spawner phase
}

func NewState(opts Options) *State {
	s := &State{
		World:        ecs.NewWorld(),
		Bus:          event.NewBus(),
		Index:        collision.NewWorld[ecs.EntityID](opts.CellSize, opts.Capacity),
		Colliders:    ecs.NewTrackedStore[component.Collider](component.ColliderHandle),
		Transforms:   ecs.NewPtrComponentStore[component.Transform](),
		Affiliations: ecs.NewPtrComponentStore[component.Affiliation](),
		Falling:      ecs.NewPtrComponentStore[component.FallingObject](),
		Spawners:     ecs.NewPtrComponentStore[component.Spawner](),
		Players:      ecs.NewPtrComponentStore[component.Player](),
		Followers:    ecs.NewPtrComponentStore[component.FollowPointer](),
		Arena:        opts.Arena,
		Margin:       opts.Margin,
	}
	s.World.Register(s.Colliders)
	s.World.Register(s.Transforms)
	s.World.Register(s.Affiliations)
	s.World.Register(s.Falling)
	s.World.Register(s.Spawners)
	s.World.Register(s.Players)
	s.World.Register(s.Followers)
	return s
}

// Contacts is the log the collision sync system publishes entity contacts to.
func (s *State) Contacts() *event.Log[ContactEvent] {
	return event.Channel[ContactEvent](s.Bus)
}

// Collections is the log of catch and miss outcomes.
func (s *State) Collections() *event.Log[CollectionEvent] {
	return event.Channel[CollectionEvent](s.Bus)
}
