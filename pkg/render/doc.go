// Package render turns vdom trees into HTML.
//
// The Renderer writes escaped, deterministic markup (attributes are emitted in
// sorted order) and assigns sequential hydration IDs ("h1", "h2", ...) to
// every element that carries an event handler. The handlers are collected in
// a registry keyed by "<hid>_on<event>" so a live session can route a client
// event to the Go function that should run.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(counter.Render())
//	handlers := r.GetHandlers() // {"h1_onclick": counter.Activate}
//
// RenderPage wraps a body in a full HTML document with the client script.
package render
