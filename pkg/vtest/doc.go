// Package vtest provides testing helpers for tally components.
//
// Harness mounts a component the way a live session does: it renders it,
// records the hydration IDs and handlers, and subscribes to the component
// so every state change produces a fresh render.
//
//	h := vtest.Mount(components.NewCounter(components.CounterProps{Message: "Count", Step: components.StepOf(2)}))
//	h.ClickRoot(t)
//	h.ClickRoot(t)
//	vtest.Equal(t, h.Text(), "Count: 4")
//
// The render assertions work on plain VNodes too:
//
//	vtest.ExpectContains(t, comp.Render(), "Count: 0")
package vtest
