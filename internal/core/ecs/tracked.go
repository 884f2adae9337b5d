package ecs

import (
	"errors"
	"fmt"

	"github.com/falldown/falldown/internal/core/event"
)

// ErrNoSuchComponent is returned when a slot is accessed that holds no value.
// Callers are expected to check occupancy first; treat it as a programming error.
var ErrNoSuchComponent = errors.New("no such component")

// EventKind is the lifecycle transition a ComponentEvent reports.
type EventKind uint8

const (
	Inserted EventKind = iota + 1
	Modified
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "Inserted"
	case Modified:
		return "Modified"
	case Removed:
		return "Removed"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ComponentEvent is a lifecycle notification for one component slot.
// Payload is only set for Removed and holds the projection of the value
// that was removed.
type ComponentEvent[E any] struct {
	Kind    EventKind
	Entity  EntityID
	Payload E
}

// TrackedStore wraps a component map and publishes every insertion, mutable
// access and removal into a broadcast log. E is the payload carried by
// Removed events, produced from the outgoing value by the projection given
// at construction.
type TrackedStore[T, E any] struct {
	data    map[EntityID]*T
	project func(*T) E
	events  *event.Log[ComponentEvent[E]]
}

func NewTrackedStore[T, E any](project func(*T) E) *TrackedStore[T, E] {
	return &TrackedStore[T, E]{
		data:    make(map[EntityID]*T, 256),
		project: project,
		events:  event.NewLog[ComponentEvent[E]](),
	}
}

// NewIdentityStore returns a TrackedStore whose Removed events carry a copy
// of the removed value itself.
func NewIdentityStore[T any]() *TrackedStore[T, T] {
	return NewTrackedStore[T, T](func(c *T) T { return *c })
}

// Events returns the lifecycle log for this component type.
func (s *TrackedStore[T, E]) Events() *event.Log[ComponentEvent[E]] { return s.events }

// Register creates a reader positioned after every event published so far.
func (s *TrackedStore[T, E]) Register() event.ReaderID { return s.events.Register() }

// Get returns the component without recording a modification.
func (s *TrackedStore[T, E]) Get(id EntityID) (*T, error) {
	c, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("get entity %d: %w", id, ErrNoSuchComponent)
	}
	return c, nil
}

// GetMut returns the component for in-place mutation. Any mutable access
// counts as a modification, whether or not the caller writes.
func (s *TrackedStore[T, E]) GetMut(id EntityID) (*T, error) {
	c, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("get_mut entity %d: %w", id, ErrNoSuchComponent)
	}
	s.events.Publish(ComponentEvent[E]{Kind: Modified, Entity: id})
	return c, nil
}

// Insert attaches c to id. Replacing an existing value is reported as the
// removal of the old value followed by a fresh insertion.
func (s *TrackedStore[T, E]) Insert(id EntityID, c *T) {
	if old, ok := s.data[id]; ok {
		s.events.Publish(ComponentEvent[E]{Kind: Removed, Entity: id, Payload: s.project(old)})
	}
	s.data[id] = c
	s.events.Publish(ComponentEvent[E]{Kind: Inserted, Entity: id})
}

// Take detaches and returns the component. The Removed event is published
// before the value leaves the store.
func (s *TrackedStore[T, E]) Take(id EntityID) (*T, error) {
	c, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("remove entity %d: %w", id, ErrNoSuchComponent)
	}
	s.events.Publish(ComponentEvent[E]{Kind: Removed, Entity: id, Payload: s.project(c)})
	delete(s.data, id)
	return c, nil
}

// Remove implements Removable. Absent slots are ignored.
func (s *TrackedStore[T, E]) Remove(id EntityID) {
	if s.Has(id) {
		s.Take(id)
	}
}

func (s *TrackedStore[T, E]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *TrackedStore[T, E]) Len() int {
	return len(s.data)
}

// Each visits every component without recording modifications; fn must not
// write through the pointer.
func (s *TrackedStore[T, E]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// EachMut visits every component for mutation, publishing Modified for each.
func (s *TrackedStore[T, E]) EachMut(fn func(EntityID, *T)) {
	for id, c := range s.data {
		s.events.Publish(ComponentEvent[E]{Kind: Modified, Entity: id})
		fn(id, c)
	}
}
