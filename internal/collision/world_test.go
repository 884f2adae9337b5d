package collision

import (
	"errors"
	"math"
	"testing"
)

func at(x, y float64) Isometry { return Isometry{Translation: Vec2{x, y}} }

func TestBallContactStartedAndStopped(t *testing.T) {
	w := NewWorld[string](10, 0)
	a, err := w.Add(at(0, 0), Ball{Radius: 5}, NewGroups(), Contacts(0), "a")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := w.Add(at(100, 0), Ball{Radius: 5}, NewGroups(), Contacts(0), "b")

	w.Update()
	if n := len(w.ContactEvents()); n != 0 {
		t.Fatalf("Expected no contacts while apart, got %d", n)
	}

	if err := w.SetPosition(b, at(8, 0)); err != nil {
		t.Fatal(err)
	}
	w.Update()
	evs := w.ContactEvents()
	if len(evs) != 1 || evs[0].Kind != ContactStarted {
		t.Fatalf("Expected one Started, got %+v", evs)
	}
	if evs[0].A != a || evs[0].B != b || evs[0].OwnerA != "a" || evs[0].OwnerB != "b" {
		t.Errorf("Unexpected pair %+v", evs[0])
	}
	if !w.InContact(b, a) {
		t.Error("Expected InContact after Started")
	}

	w.Update()
	if n := len(w.ContactEvents()); n != 0 {
		t.Errorf("Expected no repeat events for a steady contact, got %d", n)
	}

	w.SetPosition(b, at(50, 50))
	w.Update()
	evs = w.ContactEvents()
	if len(evs) != 1 || evs[0].Kind != ContactStopped {
		t.Errorf("Expected one Stopped, got %+v", evs)
	}
}

func TestGroupsFilterPairs(t *testing.T) {
	const player, enemy = 0, 1
	playerGroups := NewGroups().WithMembership(player).WithWhitelist(enemy)
	enemyGroups := NewGroups().WithMembership(enemy).WithWhitelist(player)

	if enemyGroups.CanInteractWith(enemyGroups) {
		t.Error("Expected enemies not to interact with each other")
	}
	if !playerGroups.CanInteractWith(enemyGroups) || !enemyGroups.CanInteractWith(playerGroups) {
		t.Error("Expected player and enemy to interact")
	}
	blocked := enemyGroups.WithBlacklist(player)
	if blocked.CanInteractWith(playerGroups) {
		t.Error("Expected blacklist to win over whitelist")
	}

	w := NewWorld[int](10, 0)
	w.Add(at(0, 0), Ball{Radius: 5}, enemyGroups, Contacts(0), 1)
	w.Add(at(1, 0), Ball{Radius: 5}, enemyGroups, Contacts(0), 2)
	w.Update()
	if n := len(w.ContactEvents()); n != 0 {
		t.Errorf("Expected filtered pair to produce no contact, got %d", n)
	}
}

func TestRemoveReportsStoppedOnNextUpdate(t *testing.T) {
	w := NewWorld[int](10, 0)
	a, _ := w.Add(at(0, 0), Ball{Radius: 5}, NewGroups(), Contacts(0), 1)
	b, _ := w.Add(at(3, 0), Ball{Radius: 5}, NewGroups(), Contacts(0), 2)
	w.Update()

	if err := w.Remove([]Handle{a}); err != nil {
		t.Fatal(err)
	}
	if w.Contains(a) || !w.Contains(b) || w.Len() != 1 {
		t.Fatal("Expected only b to remain")
	}
	w.Update()
	evs := w.ContactEvents()
	if len(evs) != 1 || evs[0].Kind != ContactStopped || evs[0].OwnerA != 1 {
		t.Errorf("Expected Stopped carrying the removed owner, got %+v", evs)
	}
}

func TestRemoveUnknownHandle(t *testing.T) {
	w := NewWorld[int](10, 0)
	a, _ := w.Add(at(0, 0), Ball{Radius: 1}, NewGroups(), Contacts(0), 1)

	err := w.Remove([]Handle{a, Handle(99)})
	if !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Expected ErrUnknownHandle, got %v", err)
	}
	if w.Contains(a) {
		t.Error("Expected known handle removed despite error")
	}
	if err := w.SetPosition(a, at(1, 1)); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Expected ErrUnknownHandle from SetPosition, got %v", err)
	}
}

func TestCapacity(t *testing.T) {
	w := NewWorld[int](10, 2)
	for i := 0; i < 2; i++ {
		if _, err := w.Add(Identity(), Ball{Radius: 1}, NewGroups(), Contacts(0), i); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	h, err := w.Add(Identity(), Ball{Radius: 1}, NewGroups(), Contacts(0), 3)
	if !errors.Is(err, ErrCapacity) || h.Valid() {
		t.Errorf("Expected ErrCapacity and no handle, got %v %v", h, err)
	}
}

func TestHandlesAreNotReused(t *testing.T) {
	w := NewWorld[int](10, 0)
	a, _ := w.Add(Identity(), Ball{Radius: 1}, NewGroups(), Contacts(0), 1)
	w.Remove([]Handle{a})
	b, _ := w.Add(Identity(), Ball{Radius: 1}, NewGroups(), Contacts(0), 2)
	if a == b {
		t.Errorf("Expected a fresh handle, got %d twice", a)
	}
	if hs := w.Handles(); len(hs) != 1 || hs[0] != b {
		t.Errorf("Expected [%d], got %v", b, hs)
	}
}

func TestProximityQueryUsesSeparateStream(t *testing.T) {
	w := NewWorld[int](10, 0)
	w.Add(at(0, 0), Ball{Radius: 1}, NewGroups(), Proximity(5), 1)
	w.Add(at(6, 0), Ball{Radius: 1}, NewGroups(), Contacts(0), 2)
	w.Update()

	if n := len(w.ContactEvents()); n != 0 {
		t.Errorf("Expected no contact events for a proximity pair, got %d", n)
	}
	pe := w.ProximityEvents()
	if len(pe) != 1 || !pe[0].Intersecting {
		t.Errorf("Expected one intersecting proximity event, got %+v", pe)
	}
}

func TestCuboidOverlaps(t *testing.T) {
	box := Cuboid{HalfW: 5, HalfH: 1}

	// Ball above the long side, clear of it unless the box is rotated upright.
	ball := Ball{Radius: 1}
	if overlaps(box, at(0, 0), ball, at(0, 4), 0) {
		t.Error("Expected flat box to miss ball at y=4")
	}
	upright := Isometry{Rotation: math.Pi / 2}
	if !overlaps(box, upright, ball, at(0, 4), 0) {
		t.Error("Expected upright box to reach ball at y=4")
	}
	if !overlaps(ball, at(0, 4), box, upright, 0) {
		t.Error("Expected ball/cuboid to be symmetric")
	}

	other := Cuboid{HalfW: 1, HalfH: 1}
	if overlaps(box, at(0, 0), other, at(0, 2.5), 0) {
		t.Error("Expected separated boxes not to overlap")
	}
	if !overlaps(box, at(0, 0), other, at(0, 2.5), 0.6) {
		t.Error("Expected margin to bridge the gap")
	}
	diamond := Isometry{Translation: Vec2{0, 2.3}, Rotation: math.Pi / 4}
	if !overlaps(box, at(0, 0), other, diamond, 0) {
		t.Error("Expected rotated box corner to reach the flat box")
	}
}

func TestGridRefilesMovedObjects(t *testing.T) {
	w := NewWorld[int](10, 0)
	a, _ := w.Add(at(5, 5), Ball{Radius: 1}, NewGroups(), Contacts(0), 1)
	w.Add(at(205, 205), Ball{Radius: 1}, NewGroups(), Contacts(0), 2)

	w.Update()
	if len(w.ContactEvents()) != 0 {
		t.Fatal("Expected no contact while far apart")
	}

	w.SetPosition(a, at(204, 205))
	w.Update()
	if len(w.ContactEvents()) != 1 {
		t.Errorf("Expected contact after moving into the other object's cell, got %d", len(w.ContactEvents()))
	}
	if len(w.grid.spans) != 2 {
		t.Errorf("Expected 2 filed objects, got %d", len(w.grid.spans))
	}
}
