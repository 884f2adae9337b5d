package system

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/collision"
	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/core/event"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/world"
)

// CollisionSyncSystem keeps the spatial index in step with the Collider
// store: every live collider with a handle has exactly one index entry and
// every index entry belongs to a live collider. It then runs the index's
// detection pass and publishes entity contacts.
// Phase 3 (Collision).
type CollisionSyncSystem struct {
	world  *world.State
	log    *zap.Logger
	reader event.ReaderID

	added    []ecs.EntityID
	addedSet map[ecs.EntityID]struct{}
	removed  []collision.Handle
	retry    []ecs.EntityID // colliders left unregistered by a failed tick
}

// NewCollisionSyncSystem registers a reader on the collider log. Colliders
// that already exist and have no handle are registered on the first tick.
func NewCollisionSyncSystem(ws *world.State, log *zap.Logger) *CollisionSyncSystem {
	s := &CollisionSyncSystem{
		world:    ws,
		log:      log,
		reader:   ws.Colliders.Register(),
		addedSet: make(map[ecs.EntityID]struct{}),
	}
	ws.Colliders.Each(func(id ecs.EntityID, c *component.Collider) {
		if !c.Synced() {
			s.retry = append(s.retry, id)
		}
	})
	slices.Sort(s.retry)
	return s
}

func (s *CollisionSyncSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSyncSystem) Update(_ time.Duration) error {
	events, err := s.world.Colliders.Events().Read(s.reader)
	if err != nil {
		return fmt.Errorf("read collider events: %w", err)
	}

	s.added = s.added[:0]
	s.removed = s.removed[:0]
	clear(s.addedSet)
	for _, id := range s.retry {
		s.markAdded(id)
	}
	s.retry = s.retry[:0]

	for ev := range events {
		switch ev.Kind {
		case ecs.Inserted:
			s.markAdded(ev.Entity)
		case ecs.Removed:
			if !ev.Payload.Valid() {
				s.log.Warn("collider removed before it was synchronised",
					zap.Uint64("entity", uint64(ev.Entity)))
				continue
			}
			s.removed = append(s.removed, ev.Payload)
		}
	}

	addErr := s.register(s.added)

	if len(s.removed) > 0 {
		if err := s.world.Index.Remove(s.removed); err != nil {
			s.log.Warn("index removal", zap.Error(err))
		}
		// slots released this tick take the colliders that did not fit
		if errors.Is(addErr, collision.ErrCapacity) {
			pending := slices.Clone(s.retry)
			s.retry = s.retry[:0]
			addErr = s.register(pending)
		}
	}

	if addErr != nil {
		return addErr
	}

	ecs.EachTracked2(s.world.Colliders, s.world.Transforms, func(id ecs.EntityID, c *component.Collider, tr *component.Transform) {
		if !c.Synced() {
			return
		}
		if err := s.world.Index.SetPosition(c.Handle, tr.Isometry()); err != nil {
			s.log.Warn("collider handle not in index",
				zap.Uint64("entity", uint64(id)),
				zap.Uint64("handle", uint64(c.Handle)),
				zap.Error(err))
		}
	})

	s.world.Index.Update()

	contacts := s.world.Contacts()
	for _, ev := range s.world.Index.ContactEvents() {
		contacts.Publish(world.ContactEvent{A: ev.OwnerA, B: ev.OwnerB, Kind: ev.Kind})
	}
	for _, ev := range s.world.Index.ProximityEvents() {
		s.log.Debug("proximity",
			zap.Uint64("a", uint64(ev.OwnerA)),
			zap.Uint64("b", uint64(ev.OwnerB)),
			zap.Bool("intersecting", ev.Intersecting))
	}
	return nil
}

func (s *CollisionSyncSystem) markAdded(id ecs.EntityID) {
	if _, ok := s.addedSet[id]; ok {
		return
	}
	s.addedSet[id] = struct{}{}
	s.added = append(s.added, id)
}

// register adds the given colliders to the index. On a capacity failure the
// remaining colliders are kept for the next attempt.
func (s *CollisionSyncSystem) register(ids []ecs.EntityID) error {
	for i, id := range ids {
		if !s.world.Colliders.Has(id) {
			continue // removed in the same window; its Removed was in this drain
		}
		c, err := s.world.Colliders.Get(id)
		if err != nil {
			return err
		}
		if c.Synced() {
			continue
		}
		iso := collision.Identity()
		if tr, ok := s.world.Transforms.Get(id); ok {
			iso = tr.Isometry()
		}
		h, err := s.world.Index.Add(iso, c.Shape(), c.Groups(), c.Query(), id)
		if err != nil {
			if errors.Is(err, collision.ErrCapacity) {
				s.retry = append(s.retry, ids[i:]...)
			}
			return fmt.Errorf("register collider %d: %w", id, err)
		}
		mc, err := s.world.Colliders.GetMut(id)
		if err != nil {
			return err
		}
		mc.Handle = h
	}
	return nil
}
