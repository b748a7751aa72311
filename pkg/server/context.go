package server

import "context"

// EventContext describes one client event while it is being dispatched.
// It is only valid inside the middleware chain of that event.
type EventContext struct {
	ctx     context.Context
	session *Session
	hid     string
	event   string
	values  map[any]any
}

// NewEventContext creates the context of one event. s may be nil outside a
// live session, e.g. in middleware tests.
func NewEventContext(ctx context.Context, s *Session, hid, event string) *EventContext {
	return &EventContext{ctx: ctx, session: s, hid: hid, event: event}
}

// Context returns the standard context of the event. Live events derive it
// from the session context, so request-scoped values such as the chi
// request id are visible and it is cancelled when the session closes.
func (c *EventContext) Context() context.Context { return c.ctx }

// SetContext replaces the standard context, e.g. with one carrying a span.
func (c *EventContext) SetContext(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
}

// Session returns the session the event arrived on.
func (c *EventContext) Session() *Session { return c.session }

// SessionID returns the id of the session the event arrived on.
func (c *EventContext) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.ID
}

// HID returns the hydration id of the target element.
func (c *EventContext) HID() string { return c.hid }

// Event returns the DOM event name, e.g. "click".
func (c *EventContext) Event() string { return c.event }

// Path returns the page path the session was opened from.
func (c *EventContext) Path() string {
	if c.session == nil || c.session.Path == "" {
		return "/"
	}
	return c.session.Path
}

// Value returns a value stored with SetValue.
func (c *EventContext) Value(key any) any {
	return c.values[key]
}

// SetValue stores a value for later middleware in the chain.
func (c *EventContext) SetValue(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

// EventMiddleware wraps the dispatch of a client event.
// Call next to continue the chain; its error is the handler's outcome.
type EventMiddleware interface {
	Handle(ctx *EventContext, next func() error) error
}

// EventMiddlewareFunc adapts a function to EventMiddleware.
type EventMiddlewareFunc func(ctx *EventContext, next func() error) error

// Handle implements EventMiddleware.
func (f EventMiddlewareFunc) Handle(ctx *EventContext, next func() error) error {
	return f(ctx, next)
}

// chain builds the call order mw[0] → mw[1] → … → final.
func chain(ctx *EventContext, mw []EventMiddleware, final func() error) func() error {
	next := final
	for i := len(mw) - 1; i >= 0; i-- {
		m, n := mw[i], next
		next = func() error { return m.Handle(ctx, n) }
	}
	return next
}
