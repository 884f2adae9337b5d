package event

import (
	"fmt"
	"reflect"
)

// Bus is a registry of broadcast logs keyed by event type. Systems fetch the
// shared log for a type with Channel; handler-style consumers Subscribe and
// receive their events when DispatchAll runs once per tick.
type Bus struct {
	logs        map[reflect.Type]any
	subscribers []func() error
}

func NewBus() *Bus {
	return &Bus{
		logs: make(map[reflect.Type]any),
	}
}

// Channel returns the log for events of type T, creating it on first use.
func Channel[T any](b *Bus) *Log[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if l, ok := b.logs[t]; ok {
		return l.(*Log[T])
	}
	l := NewLog[T]()
	b.logs[t] = l
	return l
}

// Emit publishes an event on the log for its type.
func Emit[T any](b *Bus, event T) {
	Channel[T](b).Publish(event)
}

// Subscribe registers a typed handler for events of type T. The handler gets
// its own cursor, positioned at the current end of the log.
func Subscribe[T any](b *Bus, fn func(T)) {
	l := Channel[T](b)
	r := l.Register()
	b.subscribers = append(b.subscribers, func() error {
		events, err := l.Read(r)
		if err != nil {
			return err
		}
		for ev := range events {
			fn(ev)
		}
		return nil
	})
}

// DispatchAll delivers every pending event to its subscribed handlers,
// in subscription order.
func (b *Bus) DispatchAll() error {
	for i, deliver := range b.subscribers {
		if err := deliver(); err != nil {
			return fmt.Errorf("dispatch subscriber %d: %w", i, err)
		}
	}
	return nil
}
