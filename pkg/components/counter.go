package components

import (
	"github.com/vango-dev/tally/pkg/reactive"
	"github.com/vango-dev/tally/pkg/vdom"
)

// DefaultStep is the increment used when CounterProps.Step is nil.
const DefaultStep = 1

// StepOf returns a pointer to n for CounterProps.Step.
func StepOf(n int) *int { return &n }

// CounterProps configures a Counter.
type CounterProps struct {
	// Message is rendered before the count, as "<Message>: <count>".
	Message string

	// Step is added to the count on every activation. Nil means
	// unspecified and resolves to DefaultStep; an explicit zero is kept.
	Step *int
}

// Counter displays a message and a count that grows by Step on each click.
//
// The count lives in a reactive.IntState owned by the instance; Activate is
// the only mutator. Message and Step are fixed at construction.
type Counter struct {
	message string
	step    int
	count   *reactive.IntState
}

// NewCounter creates a Counter with its count at zero.
func NewCounter(props CounterProps) *Counter {
	step := DefaultStep
	if props.Step != nil {
		step = *props.Step
	}

	// Every activation refreshes the view, even when the step is zero.
	count := reactive.NewIntState(0)
	count.WithEquals(func(int, int) bool { return false })

	return &Counter{
		message: props.Message,
		step:    step,
		count:   count,
	}
}

// Render implements vdom.Component. The root div carries the click handler.
func (c *Counter) Render() *vdom.VNode {
	return vdom.Div(
		vdom.Class("counter"),
		vdom.OnClick(c.Activate),
		vdom.Textf("%s: %d", c.message, c.count.Get()),
	)
}

// Activate adds the step to the count and notifies subscribed views.
func (c *Counter) Activate() {
	c.count.Add(c.step)
}

// Count returns the current count.
func (c *Counter) Count() int {
	return c.count.Get()
}

// Step returns the increment applied per activation.
func (c *Counter) Step() int {
	return c.step
}

// Message returns the display message.
func (c *Counter) Message() string {
	return c.message
}

// Subscribe registers a view-refresh listener that fires after every
// activation. The returned function removes it.
func (c *Counter) Subscribe(l reactive.Listener) (unsubscribe func()) {
	return c.count.Subscribe(l)
}

// Unmount detaches every listener. The instance must not be used afterwards.
func (c *Counter) Unmount() {
	c.count.Clear()
}
