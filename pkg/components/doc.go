// Package components contains the tally components.
//
// Counter is the stateful one: it owns an integer that starts at zero and
// grows by a fixed step every time its root element is activated. The card
// components are pure renderers of the AppProps data contract.
package components
