package event

import (
	"errors"
	"fmt"
	"iter"
)

// ErrUnknownReader is returned when a cursor was never registered on a log
// or has already been released.
var ErrUnknownReader = errors.New("unknown reader")

// ReaderID identifies one cursor into a Log.
type ReaderID uint32

// Log is an append-only broadcast log. Every registered reader sees every
// event published after its registration exactly once, in publish order.
// Entries are pruned only once the slowest reader has moved past them.
// Accessed only from the game loop goroutine; no locks.
type Log[T any] struct {
	entries []T
	base    uint64 // absolute sequence number of entries[0]
	readers map[ReaderID]uint64
	nextID  ReaderID
}

func NewLog[T any]() *Log[T] {
	return &Log[T]{
		entries: make([]T, 0, 64),
		readers: make(map[ReaderID]uint64, 4),
	}
}

func (l *Log[T]) end() uint64 { return l.base + uint64(len(l.entries)) }

// Register creates a cursor positioned at the current end of the log.
func (l *Log[T]) Register() ReaderID {
	l.nextID++
	id := l.nextID
	l.readers[id] = l.end()
	return id
}

// Unregister releases a cursor so its unread entries can be pruned.
func (l *Log[T]) Unregister(r ReaderID) {
	delete(l.readers, r)
	l.prune()
}

// Publish appends an event. With no registered readers nobody could ever
// observe it, so it is dropped.
func (l *Log[T]) Publish(ev T) {
	if len(l.readers) == 0 {
		l.base++
		return
	}
	l.entries = append(l.entries, ev)
}

// Read returns the events the cursor has not seen yet. Each event yielded
// advances the cursor, so a consumer that stops early resumes at the next
// unconsumed event on its following Read.
func (l *Log[T]) Read(r ReaderID) (iter.Seq[T], error) {
	if _, ok := l.readers[r]; !ok {
		return nil, fmt.Errorf("read cursor %d: %w", r, ErrUnknownReader)
	}
	return func(yield func(T) bool) {
		defer l.prune()
		for {
			pos, ok := l.readers[r]
			if !ok || pos >= l.end() {
				return
			}
			ev := l.entries[pos-l.base]
			l.readers[r] = pos + 1
			if !yield(ev) {
				return
			}
		}
	}, nil
}

// Drain reads every pending event for the cursor into a slice.
func (l *Log[T]) Drain(r ReaderID) ([]T, error) {
	events, err := l.Read(r)
	if err != nil {
		return nil, err
	}
	var out []T
	for ev := range events {
		out = append(out, ev)
	}
	return out, nil
}

// Pending reports how many events the cursor has not read yet.
func (l *Log[T]) Pending(r ReaderID) (int, error) {
	pos, ok := l.readers[r]
	if !ok {
		return 0, fmt.Errorf("pending cursor %d: %w", r, ErrUnknownReader)
	}
	return int(l.end() - pos), nil
}

// Len returns the number of retained entries.
func (l *Log[T]) Len() int { return len(l.entries) }

// prune drops every entry below the slowest cursor.
func (l *Log[T]) prune() {
	if len(l.readers) == 0 {
		clear(l.entries)
		l.base = l.end()
		l.entries = l.entries[:0]
		return
	}
	lowest := l.end()
	for _, pos := range l.readers {
		if pos < lowest {
			lowest = pos
		}
	}
	drop := int(lowest - l.base)
	if drop <= 0 {
		return
	}
	n := copy(l.entries, l.entries[drop:])
	clear(l.entries[n:])
	l.entries = l.entries[:n]
	l.base = lowest
}
