package reactive

import "sync/atomic"

// Listener is anything that can be notified when a State changes.
type Listener interface {
	// MarkDirty notifies the listener that the observed value changed.
	// For views, this schedules a re-render.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used to deduplicate registrations.
	ID() uint64
}

// globalIDCounter is the source of unique IDs for states and listeners.
var globalIDCounter uint64

// nextID returns the next unique ID. IDs are never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// funcListener adapts a plain function to the Listener interface.
type funcListener struct {
	id uint64
	fn func()
}

func (l *funcListener) MarkDirty() {
	if l.fn != nil {
		l.fn()
	}
}

func (l *funcListener) ID() uint64 { return l.id }

// ListenerFunc wraps fn in a Listener with a fresh ID.
// Each call returns a distinct listener, even for the same function.
func ListenerFunc(fn func()) Listener {
	return &funcListener{id: nextID(), fn: fn}
}

// Observable is implemented by anything that accepts view-refresh listeners,
// typically a stateful component forwarding to its State.
type Observable interface {
	Subscribe(l Listener) (unsubscribe func())
}
