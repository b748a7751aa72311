package vtest

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/vango-dev/tally/pkg/reactive"
	"github.com/vango-dev/tally/pkg/render"
	"github.com/vango-dev/tally/pkg/vdom"
)

// Harness holds a mounted component and its latest render.
type Harness struct {
	comp     vdom.Component
	renderer *render.Renderer
	unsub    func()

	mu       sync.Mutex
	tree     *vdom.VNode
	html     string
	handlers map[string]any
	renders  int
	dirty    int
}

// Mount renders comp and subscribes to it if it is reactive.Observable.
func Mount(comp vdom.Component) *Harness {
	h := &Harness{
		comp:     comp,
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
	h.rerender()

	if obs, ok := comp.(reactive.Observable); ok {
		h.unsub = obs.Subscribe(reactive.ListenerFunc(func() {
			h.mu.Lock()
			h.dirty++
			h.mu.Unlock()
			h.rerender()
		}))
	}
	return h
}

func (h *Harness) rerender() {
	tree := h.comp.Render()
	html, err := h.renderer.RenderToString(tree)
	if err != nil {
		html = ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree = tree
	h.html = html
	h.handlers = h.renderer.GetHandlers()
	h.renders++
}

// HTML returns the markup of the latest render.
func (h *Harness) HTML() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.html
}

// Text returns the visible text of the latest render.
func (h *Harness) Text() string {
	h.mu.Lock()
	tree := h.tree
	h.mu.Unlock()
	return render.TextContent(tree)
}

// Renders returns how many times the component has been rendered,
// including the initial mount.
func (h *Harness) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// Notifications returns how many change notifications the component sent.
func (h *Harness) Notifications() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// HIDs returns the hydration IDs that have handlers, sorted.
func (h *Harness) HIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[string]bool)
	for key := range h.handlers {
		for i := 0; i < len(key); i++ {
			if key[i] == '_' {
				seen[key[:i]] = true
				break
			}
		}
	}
	hids := make([]string, 0, len(seen))
	for hid := range seen {
		hids = append(hids, hid)
	}
	sort.Strings(hids)
	return hids
}

// Fire dispatches event (e.g. "click") to the element with the given HID.
func (h *Harness) Fire(hid, event string) error {
	h.mu.Lock()
	handler, ok := h.handlers[hid+"_on"+event]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("vtest: no %s handler on %s", event, hid)
	}
	if !vdom.Invoke(handler, vdom.Event{Type: event, Target: hid}) {
		return fmt.Errorf("vtest: handler for %s on %s has unsupported type %T", event, hid, handler)
	}
	return nil
}

// Click fires a click on hid and fails the test if nothing handles it.
func (h *Harness) Click(t testing.TB, hid string) {
	t.Helper()
	if err := h.Fire(hid, "click"); err != nil {
		t.Fatal(err)
	}
}

// ClickRoot clicks the first interactive element (h1).
func (h *Harness) ClickRoot(t testing.TB) {
	t.Helper()
	h.Click(t, "h1")
}

// Unmount unsubscribes and unmounts the component.
func (h *Harness) Unmount() {
	if h.unsub != nil {
		h.unsub()
		h.unsub = nil
	}
	if u, ok := h.comp.(vdom.Unmounter); ok {
		u.Unmount()
	}
}
