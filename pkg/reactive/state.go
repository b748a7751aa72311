package reactive

import (
	"reflect"
	"sync"
)

// State is a value container that notifies its listeners after every change.
//
// State is safe for concurrent use. Listeners are invoked on the goroutine
// that performed the mutation, after the internal lock has been released, so
// a listener may read the state (or even mutate it) without deadlocking.
type State[T any] struct {
	id uint64

	// value is the current state value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// subs are the registered listeners.
	subs []Listener

	// subMu protects subs.
	subMu sync.RWMutex

	// equal decides whether a new value differs from the current one.
	// If nil, defaultEquals is used.
	equal func(T, T) bool
}

// NewState creates a new State holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// SetState replaces the value and notifies listeners if it changed.
func (s *State[T]) SetState(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update atomically reads and replaces the value.
// fn receives the current value and returns the new one. fn runs under the
// state lock and must not call back into the same State.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// WithEquals configures a custom equality function and returns s.
func (s *State[T]) WithEquals(fn func(T, T) bool) *State[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this state.
func (s *State[T]) ID() uint64 {
	return s.id
}

// Subscribe registers l and returns a function that removes it again.
// Registering the same listener ID twice is a no-op.
func (s *State[T]) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	s.subMu.Lock()
	lid := l.ID()
	dup := false
	for _, existing := range s.subs {
		if existing.ID() == lid {
			dup = true
			break
		}
	}
	if !dup {
		s.subs = append(s.subs, l)
	}
	s.subMu.Unlock()

	return func() { s.unsubscribe(lid) }
}

// Listeners returns the number of registered listeners.
func (s *State[T]) Listeners() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// Clear removes every listener.
func (s *State[T]) Clear() {
	s.subMu.Lock()
	s.subs = nil
	s.subMu.Unlock()
}

func (s *State[T]) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, existing := range s.subs {
		if existing.ID() == id {
			// Keep registration order for the remaining listeners.
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify calls every listener. Uses copy-before-notify so listeners can
// subscribe or unsubscribe while being notified.
func (s *State[T]) notify() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

func (s *State[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
