package world

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/core/event"
	"github.com/falldown/falldown/internal/scripting"
)

func newTestState() *State {
	return NewState(Options{Arena: Arena{Width: 800, Height: 600}, CellSize: 64})
}

func TestSpawnPlayer(t *testing.T) {
	s := newTestState()
	r := s.Colliders.Register()

	id := s.SpawnPlayer(PlayerSpec{Width: 80, Height: 20, Color: component.Green, TrailSize: 4})

	tr, ok := s.Transforms.Get(id)
	if !ok || tr.X != 400 {
		t.Fatalf("Expected player centred, got %+v", tr)
	}
	aff, _ := s.Affiliations.Get(id)
	if *aff != component.PlayerOf(component.Green) {
		t.Errorf("Expected green player, got %v", aff)
	}
	c, err := s.Colliders.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if c.Synced() {
		t.Error("Expected collider to start unsynced")
	}
	evs, _ := s.Colliders.Events().Drain(r)
	if len(evs) != 1 || evs[0].Kind != ecs.Inserted || evs[0].Entity != id {
		t.Errorf("Expected one Inserted for the player, got %+v", evs)
	}
}

func TestFlushClearsEveryStore(t *testing.T) {
	s := newTestState()
	id := s.SpawnBlock(10, 600, component.Blue, component.FallingObject{FallRate: 60, Radius: 5})
	sp := s.SpawnSpawner(time.Second, 5)

	if err := s.World.Delete(id); err != nil {
		t.Fatal(err)
	}
	if err := s.World.Delete(sp); err != nil {
		t.Fatal(err)
	}
	s.World.FlushDestroyQueue()

	if s.Colliders.Has(id) || s.Transforms.Has(id) || s.Falling.Has(id) || s.Affiliations.Has(id) {
		t.Error("Expected block components gone after flush")
	}
	if s.Spawners.Len() != 0 {
		t.Error("Expected spawner gone after flush")
	}
}

func TestBusChannelsAreShared(t *testing.T) {
	s := newTestState()
	if s.Contacts() != event.Channel[ContactEvent](s.Bus) {
		t.Error("Expected Contacts to be the bus channel")
	}
	if s.Collections() != s.Collections() {
		t.Error("Expected a single collections log")
	}
}

func TestScoreboard(t *testing.T) {
	s := newTestState()
	sb := NewScoreboard(s.Bus, scripting.Defaults{}, zap.NewNop())

	caught := CollectionEvent{BlockColor: component.Red, PlayerColor: component.Red, Outcome: Caught}
	missed := CollectionEvent{BlockColor: component.Blue, PlayerColor: component.Red, Outcome: Missed}
	for _, ev := range []CollectionEvent{caught, caught, missed, caught} {
		event.Emit(s.Bus, ev)
	}
	if sb.Score().Catches != 0 {
		t.Fatal("Expected no scoring before dispatch")
	}
	if err := s.Bus.DispatchAll(); err != nil {
		t.Fatal(err)
	}

	want := Score{Points: 10 + 12 + 10, Catches: 3, Misses: 1, Streak: 1, BestStreak: 2}
	if got := sb.Score(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
