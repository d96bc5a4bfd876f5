package playback

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Cancel detaches a listener. It is safe to call more than once; once it
// returns the listener receives no further values.
type Cancel func()

// Observable is the read side of a value stream.
type Observable[T any] interface {
	// Value returns the latest value.
	Value() T
	// Listen calls fn with the latest value, then with every new value.
	Listen(fn func(T)) Cancel
}

type listener[T any] struct {
	fn      func(T)
	seen    atomic.Uint64
	stopped atomic.Bool
}

// deliver calls fn unless a newer or equal version was already delivered.
func (l *listener[T]) deliver(v T, version uint64) {
	for {
		if l.stopped.Load() {
			return
		}
		seen := l.seen.Load()
		if version <= seen {
			return
		}
		if l.seen.CompareAndSwap(seen, version) {
			break
		}
	}
	l.fn(v)
}

// ValueStream caches the latest value and replays it to new listeners.
// Listeners are notified synchronously, in registration order, by the
// goroutine that publishes. Only the owner of a stream publishes to it.
type ValueStream[T any] struct {
	mu        sync.Mutex
	value     T
	version   uint64
	listeners []*listener[T]
	closed    bool
}

// NewValueStream returns a stream seeded with seed.
func NewValueStream[T any](seed T) *ValueStream[T] {
	return &ValueStream[T]{value: seed, version: 1}
}

// Value returns the latest value.
func (s *ValueStream[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Listen registers fn and immediately delivers the latest value to it.
// A closed stream delivers nothing.
func (s *ValueStream[T]) Listen(fn func(T)) Cancel {
	l := &listener[T]{fn: fn}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.listeners = append(s.listeners, l)
	v, version := s.value, s.version
	s.mu.Unlock()

	l.deliver(v, version)

	return func() {
		l.stopped.Store(true)
		s.remove(l)
	}
}

// Publish replaces the latest value and notifies listeners.
func (s *ValueStream[T]) Publish(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.value = v
	s.version++
	version := s.version
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.deliver(v, version)
	}
}

func (s *ValueStream[T]) remove(l *listener[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := slices.Index(s.listeners, l); idx >= 0 {
		s.listeners = slices.Delete(s.listeners, idx, idx+1)
	}
}

// Close detaches all listeners. The latest value stays readable.
func (s *ValueStream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listeners {
		l.stopped.Store(true)
	}
	s.listeners = nil
	s.closed = true
}

// EventStream broadcasts values without retaining them.
type EventStream[T any] struct {
	mu        sync.Mutex
	listeners []*listener[T]
	version   uint64
	closed    bool
}

// NewEventStream returns an empty event stream.
func NewEventStream[T any]() *EventStream[T] {
	return &EventStream[T]{}
}

// Listen registers fn for future events.
func (s *EventStream[T]) Listen(fn func(T)) Cancel {
	l := &listener[T]{fn: fn}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	l.seen.Store(s.version)
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		l.stopped.Store(true)
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx := slices.Index(s.listeners, l); idx >= 0 {
			s.listeners = slices.Delete(s.listeners, idx, idx+1)
		}
	}
}

func (s *EventStream[T]) emit(v T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.version++
	version := s.version
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.deliver(v, version)
	}
}

func (s *EventStream[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listeners {
		l.stopped.Store(true)
	}
	s.listeners = nil
	s.closed = true
}
