package components

import (
	"fmt"

	"github.com/vango-dev/tally/pkg/vdom"
)

// APIResponse is the envelope shared by API-backed views.
type APIResponse[T any] struct {
	Payload T `json:"payload"`
}

// AppResponse is the structured payload shown by ResponseCard.
type AppResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AppProps is the data contract of the card components: a heading, a
// description and whatever payload the response carried.
type AppProps[T any] struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	APIResponse[T]
}

// Card renders props as a heading, a paragraph and a span holding the
// formatted payload. It is a pure function of its arguments.
func Card[T any](props AppProps[T], format func(T) string) *vdom.VNode {
	return vdom.Div(
		vdom.Class("card"),
		vdom.H2(props.Title),
		vdom.P(props.Description),
		vdom.Span(format(props.Payload)),
	)
}

// ResponseCard renders a structured payload as "<message>: <code>".
func ResponseCard(props AppProps[AppResponse]) *vdom.VNode {
	return Card(props, func(r AppResponse) string {
		return fmt.Sprintf("%s: %d", r.Message, r.Code)
	})
}

// MessageCard renders a plain string payload as-is.
func MessageCard(props AppProps[string]) *vdom.VNode {
	return Card(props, func(s string) string { return s })
}
