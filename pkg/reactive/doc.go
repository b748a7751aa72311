// Package reactive provides the explicit state holder used by tally components.
//
// A State holds a single value owned by one component instance. Mutations go
// through SetState or Update; after the value changes, every registered
// Listener is notified synchronously, in registration order, before the
// mutating call returns. Components use this to request a re-render without
// knowing who renders them.
//
//	count := reactive.NewState(0)
//	unsubscribe := count.Subscribe(reactive.ListenerFunc(func() {
//	    // view is stale; re-render
//	}))
//	defer unsubscribe()
//
//	count.Update(func(n int) int { return n + 1 })
package reactive
