package ecs

import (
	"iter"
	"maps"
	"slices"
)

// Removable is implemented by every component store so World can clear a
// flushed entity from all of them.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore holds untracked components by pointer. Nothing observes
// its mutations; use TrackedStore when another system must follow the
// component's lifecycle.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 256),
	}
}

// Set stores c for id, replacing any previous value.
func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Sorted yields the store's components in ascending entity order. The ids
// are snapshotted first, so fn may add or remove entries; removed ones that
// have not been reached yet are skipped.
func (s *PtrComponentStore[T]) Sorted() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		for _, id := range slices.Sorted(maps.Keys(s.data)) {
			c, ok := s.data[id]
			if !ok {
				continue
			}
			if !yield(id, c) {
				return
			}
		}
	}
}
