package components

import (
	"github.com/vango-dev/tally/pkg/reactive"
	"github.com/vango-dev/tally/pkg/vdom"
)

// Page is the root component served by tally: an optional card above a
// Counter. It is stateless itself and forwards subscriptions to the counter.
type Page struct {
	// Card renders above the counter. Nil renders no card.
	Card    vdom.Component
	Counter *Counter
}

// NewPage creates a Page around a fresh counter.
func NewPage(card vdom.Component, counter CounterProps) *Page {
	return &Page{Card: card, Counter: NewCounter(counter)}
}

// MessageCardOf wraps MessageCard as a component for Page.
func MessageCardOf(props AppProps[string]) vdom.Component {
	return vdom.Func(func() *vdom.VNode { return MessageCard(props) })
}

// ResponseCardOf wraps ResponseCard as a component for Page.
func ResponseCardOf(props AppProps[AppResponse]) vdom.Component {
	return vdom.Func(func() *vdom.VNode { return ResponseCard(props) })
}

// Render implements vdom.Component.
func (p *Page) Render() *vdom.VNode {
	if p.Card == nil {
		return vdom.Main(p.Counter)
	}
	return vdom.Main(p.Card, p.Counter)
}

// Subscribe implements the session's view-refresh hook.
func (p *Page) Subscribe(l reactive.Listener) func() {
	return p.Counter.Subscribe(l)
}

// Unmount releases the counter.
func (p *Page) Unmount() {
	p.Counter.Unmount()
}
