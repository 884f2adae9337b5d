package ecs

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidEntity is returned when deleting an entity that is no longer
// alive or is already queued for deletion.
var ErrInvalidEntity = errors.New("invalid entity")

// World is the top-level ECS container. It owns the entity pool and a
// deferred destruction queue flushed by CleanupSystem each tick. Stores
// registered with it are cleared, in registration order, when an entity is
// flushed.
type World struct {
	pool         *EntityPool
	stores       []Removable
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		stores:       make([]Removable, 0, 16),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
	}
}

// Register adds a component store whose slots are cleared when an entity is
// flushed. Registering the same store twice is a no-op.
func (w *World) Register(store Removable) {
	if slices.Contains(w.stores, store) {
		return
	}
	w.stores = append(w.stores, store)
}

func (w *World) Create() EntityID {
	return w.pool.Create()
}

// Alive reports whether id names a live entity. Entities queued for deletion
// stay alive until the queue is flushed.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Queued reports whether id is waiting in the destruction queue.
func (w *World) Queued(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// Delete queues an entity for end-of-tick cleanup. Its components, and the
// lifecycle events their removal publishes, only go away on flush.
func (w *World) Delete(id EntityID) error {
	if !w.pool.Alive(id) {
		return fmt.Errorf("delete entity %d: %w", id, ErrInvalidEntity)
	}
	if _, ok := w.queued[id]; ok {
		return fmt.Errorf("delete entity %d: already queued: %w", id, ErrInvalidEntity)
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
	return nil
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick. Returns the number destroyed.
func (w *World) FlushDestroyQueue() int {
	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.pool.Destroy(id)
		delete(w.queued, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// Count returns the number of live entities, including queued ones.
func (w *World) Count() int { return w.pool.Count() }
