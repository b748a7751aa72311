// Package vdom provides the virtual node tree that tally components render to.
//
// VNode is the building block for elements, text, fragments, nested
// components and raw HTML. Elements are built with variadic constructors that
// accept attributes, event handlers, children and plain strings in any order:
//
//	Div(Class("counter"), OnClick(c.Activate),
//	    Textf("%s: %d", message, count),
//	)
//
// The tree carries no behaviour of its own; pkg/render turns it into HTML and
// collects the event handlers so a session can dispatch client events back to
// the component that produced them.
package vdom
