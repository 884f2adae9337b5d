package collision

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrCapacity is returned by Add when the world already holds its
	// configured maximum number of objects.
	ErrCapacity = errors.New("collision world at capacity")
	// ErrUnknownHandle is returned for handles that are not in the world.
	ErrUnknownHandle = errors.New("unknown collision handle")
)

// Handle identifies an object inside a World. Handles are never reused;
// the zero Handle is never issued.
type Handle uint64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

func (h Handle) Valid() bool { return h != NoHandle }

// ContactKind tells whether a pair started or stopped touching.
type ContactKind uint8

const (
	ContactStarted ContactKind = iota + 1
	ContactStopped
)

func (k ContactKind) String() string {
	switch k {
	case ContactStarted:
		return "Started"
	case ContactStopped:
		return "Stopped"
	}
	return "Unknown"
}

// ContactEvent reports a pair whose contact state changed during Update.
// Owners are carried so that pairs involving removed objects stay resolvable.
type ContactEvent[O any] struct {
	A, B           Handle
	OwnerA, OwnerB O
	Kind           ContactKind
}

// ProximityEvent reports a proximity pair entering or leaving range.
type ProximityEvent[O any] struct {
	A, B           Handle
	OwnerA, OwnerB O
	Intersecting   bool
}

type pair struct {
	a, b Handle // a < b
}

func makePair(x, y Handle) pair {
	if x > y {
		x, y = y, x
	}
	return pair{x, y}
}

type object[O any] struct {
	iso    Isometry
	shape  Shape
	groups Groups
	query  Query
	owner  O
}

func (o *object[O]) bounds() AABB {
	return o.shape.AABB(o.iso).Loosen(o.query.Margin)
}

// World is the spatial index: it owns every object added to it and detects
// overlaps between them once per Update. O is the owner data attached to
// each object, typically the entity that holds the collider.
// Accessed only from the game loop goroutine; no locks.
type World[O any] struct {
	objects  map[Handle]*object[O]
	next     Handle
	capacity int
	grid     *grid

	contacts    map[pair][2]O
	proximities map[pair][2]O

	pendingContacts  []ContactEvent[O]
	pendingProximity []ProximityEvent[O]
	contactEvents    []ContactEvent[O]
	proximityEvents  []ProximityEvent[O]
}

// NewWorld creates an empty world. cellSize is the broad phase cell edge;
// capacity <= 0 means unbounded.
func NewWorld[O any](cellSize float64, capacity int) *World[O] {
	return &World[O]{
		objects:     make(map[Handle]*object[O], 256),
		capacity:    capacity,
		grid:        newGrid(cellSize),
		contacts:    make(map[pair][2]O),
		proximities: make(map[pair][2]O),
	}
}

// Add inserts an object and returns its handle.
func (w *World[O]) Add(iso Isometry, shape Shape, groups Groups, query Query, owner O) (Handle, error) {
	if shape == nil {
		return NoHandle, errors.New("add collision object: nil shape")
	}
	if w.capacity > 0 && len(w.objects) >= w.capacity {
		return NoHandle, fmt.Errorf("add collision object (%d/%d): %w", len(w.objects), w.capacity, ErrCapacity)
	}
	w.next++
	h := w.next
	obj := &object[O]{iso: iso, shape: shape, groups: groups, query: query, owner: owner}
	w.objects[h] = obj
	w.grid.insert(h, obj.bounds())
	return h, nil
}

// Remove deletes a batch of objects. Pairs they were part of report Stopped
// (or non-intersecting) on the next Update. Unknown handles are reported
// after every known handle has been removed.
func (w *World[O]) Remove(handles []Handle) error {
	var unknown []Handle
	gone := make(map[Handle]struct{}, len(handles))
	for _, h := range handles {
		if _, ok := w.objects[h]; !ok {
			unknown = append(unknown, h)
			continue
		}
		delete(w.objects, h)
		w.grid.remove(h)
		gone[h] = struct{}{}
	}
	if len(gone) > 0 {
		for _, p := range sortedPairs(w.contacts) {
			if !touches(p, gone) {
				continue
			}
			owners := w.contacts[p]
			delete(w.contacts, p)
			w.pendingContacts = append(w.pendingContacts, ContactEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1], Kind: ContactStopped,
			})
		}
		for _, p := range sortedPairs(w.proximities) {
			if !touches(p, gone) {
				continue
			}
			owners := w.proximities[p]
			delete(w.proximities, p)
			w.pendingProximity = append(w.pendingProximity, ProximityEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1],
			})
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("remove %v: %w", unknown, ErrUnknownHandle)
	}
	return nil
}

func touches(p pair, set map[Handle]struct{}) bool {
	_, a := set[p.a]
	_, b := set[p.b]
	return a || b
}

// SetPosition moves an object.
func (w *World[O]) SetPosition(h Handle, iso Isometry) error {
	obj, ok := w.objects[h]
	if !ok {
		return fmt.Errorf("set position %d: %w", h, ErrUnknownHandle)
	}
	obj.iso = iso
	w.grid.move(h, obj.bounds())
	return nil
}

// Update runs the broad and narrow phase and records which pairs changed
// state since the previous Update. Calling it twice without moving anything
// yields no events the second time.
func (w *World[O]) Update() {
	w.contactEvents = append(w.contactEvents[:0], w.pendingContacts...)
	w.proximityEvents = append(w.proximityEvents[:0], w.pendingProximity...)
	w.pendingContacts = w.pendingContacts[:0]
	w.pendingProximity = w.pendingProximity[:0]

	touching := make(map[pair][2]O)
	near := make(map[pair][2]O)
	for p := range w.grid.candidates() {
		a, b := w.objects[p.a], w.objects[p.b]
		if a == nil || b == nil || !a.groups.CanInteractWith(b.groups) {
			continue
		}
		margin := max(a.query.Margin, b.query.Margin)
		if !overlaps(a.shape, a.iso, b.shape, b.iso, margin) {
			continue
		}
		owners := [2]O{a.owner, b.owner}
		if a.query.Kind == QueryProximity || b.query.Kind == QueryProximity {
			near[p] = owners
		} else {
			touching[p] = owners
		}
	}

	for _, p := range sortedPairs(w.contacts) {
		if _, still := touching[p]; !still {
			owners := w.contacts[p]
			delete(w.contacts, p)
			w.contactEvents = append(w.contactEvents, ContactEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1], Kind: ContactStopped,
			})
		}
	}
	for _, p := range sortedPairs(touching) {
		if _, already := w.contacts[p]; !already {
			owners := touching[p]
			w.contacts[p] = owners
			w.contactEvents = append(w.contactEvents, ContactEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1], Kind: ContactStarted,
			})
		}
	}

	for _, p := range sortedPairs(w.proximities) {
		if _, still := near[p]; !still {
			owners := w.proximities[p]
			delete(w.proximities, p)
			w.proximityEvents = append(w.proximityEvents, ProximityEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1],
			})
		}
	}
	for _, p := range sortedPairs(near) {
		if _, already := w.proximities[p]; !already {
			owners := near[p]
			w.proximities[p] = owners
			w.proximityEvents = append(w.proximityEvents, ProximityEvent[O]{
				A: p.a, B: p.b, OwnerA: owners[0], OwnerB: owners[1], Intersecting: true,
			})
		}
	}
}

// ContactEvents returns the contact transitions found by the last Update.
// The slice is reused by the next Update.
func (w *World[O]) ContactEvents() []ContactEvent[O] { return w.contactEvents }

// ProximityEvents returns the proximity transitions found by the last Update.
func (w *World[O]) ProximityEvents() []ProximityEvent[O] { return w.proximityEvents }

// InContact reports whether two objects are currently touching.
func (w *World[O]) InContact(a, b Handle) bool {
	_, ok := w.contacts[makePair(a, b)]
	return ok
}

func (w *World[O]) Contains(h Handle) bool {
	_, ok := w.objects[h]
	return ok
}

// Owner returns the owner data of a live object.
func (w *World[O]) Owner(h Handle) (O, bool) {
	obj, ok := w.objects[h]
	if !ok {
		var zero O
		return zero, false
	}
	return obj.owner, true
}

// Position returns the last isometry set for h.
func (w *World[O]) Position(h Handle) (Isometry, bool) {
	obj, ok := w.objects[h]
	if !ok {
		return Isometry{}, false
	}
	return obj.iso, true
}

// Handles returns every live handle in ascending order.
func (w *World[O]) Handles() []Handle {
	out := make([]Handle, 0, len(w.objects))
	for h := range w.objects {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (w *World[O]) Len() int { return len(w.objects) }


func sortedPairs[V any](m map[pair]V) []pair {
	out := make([]pair, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].a != out[j].a {
			return out[i].a < out[j].a
		}
		return out[i].b < out[j].b
	})
	return out
}
