package event

import (
	"slices"
	"testing"
)

type pingEvent struct{ N int }

type pongEvent struct{ S string }

func TestChannelIsSharedPerType(t *testing.T) {
	b := NewBus()
	if Channel[pingEvent](b) != Channel[pingEvent](b) {
		t.Error("Expected the same log for repeated Channel calls")
	}

	r := Channel[pongEvent](b).Register()
	Emit(b, pingEvent{N: 1})
	Emit(b, pongEvent{S: "x"})

	got, _ := Channel[pongEvent](b).Drain(r)
	if len(got) != 1 || got[0].S != "x" {
		t.Errorf("Expected only the pong event, got %v", got)
	}
}

func TestSubscribeDispatchAll(t *testing.T) {
	b := NewBus()
	var seen []int
	Subscribe(b, func(ev pingEvent) { seen = append(seen, ev.N) })

	Emit(b, pingEvent{N: 1})
	Emit(b, pingEvent{N: 2})
	if len(seen) != 0 {
		t.Fatalf("Expected delivery deferred until DispatchAll, got %v", seen)
	}

	if err := b.DispatchAll(); err != nil {
		t.Fatalf("DispatchAll: %v", err)
	}
	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("Expected [1 2], got %v", seen)
	}

	if err := b.DispatchAll(); err != nil {
		t.Fatalf("DispatchAll: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("Expected no redelivery, got %v", seen)
	}
}
