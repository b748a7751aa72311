package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/tally/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;alert(&#39;xss&#39;)") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"), vdom.ID("main"),
		vdom.H2(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
		vdom.Br(),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container" id="main"><h2>Title</h2><p>Content</p><br></div>`
	if html != want {
		t.Errorf("got  %q\nwant %q", html, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Span(vdom.Data("note", "a\"b\nc")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `data-note="a&quot;b&#10;c"`) {
		t.Errorf("attribute not escaped: %q", html)
	}
}

func TestRenderBooleanAttribute(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, _ := renderer.RenderToString(vdom.Script(vdom.Attr{Key: "defer", Value: true}, vdom.Attr{Key: "async", Value: false}))
	if html != "<script defer></script>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderAssignsHIDsToInteractiveElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	first := func() {}
	second := func(vdom.Event) {}

	node := vdom.Div(
		vdom.Span("static"),
		vdom.Button(vdom.OnClick(first), "one"),
		vdom.Button(vdom.OnDblClick(second), "two"),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, `<button data-hid="h1" data-on-click="true">one</button>`) {
		t.Errorf("first button markup wrong: %q", html)
	}
	if !strings.Contains(html, `<button data-hid="h2" data-on-dblclick="true">two</button>`) {
		t.Errorf("second button markup wrong: %q", html)
	}
	if strings.Contains(html, "<span data-hid") {
		t.Errorf("static element should not get a HID: %q", html)
	}

	handlers := renderer.GetHandlers()
	if len(handlers) != 2 {
		t.Fatalf("handlers = %d, want 2", len(handlers))
	}
	if _, ok := handlers["h1_onclick"]; !ok {
		t.Error("missing h1_onclick")
	}
	if _, ok := handlers["h2_ondblclick"]; !ok {
		t.Error("missing h2_ondblclick")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	node := vdom.Div(vdom.OnClick(func() {}), "Count: 0")

	a, _ := renderer.RenderToString(node)
	b, _ := renderer.RenderToString(node)
	if a != b {
		t.Errorf("renders differ:\n%q\n%q", a, b)
	}
}

func TestRenderComponentAndFragment(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	comp := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(vdom.Span("a"), "b", vdom.Raw("<i>c</i>"))
	})

	html, err := renderer.RenderToString(vdom.Div(comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div><span>a</span>b<i>c</i></div>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	if _, err := renderer.RenderToString(&vdom.VNode{Kind: vdom.VKind(42)}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})
	html, err := renderer.RenderToString(vdom.Div(vdom.P("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div>\n  <p>x</p>\n</div>\n" {
		t.Errorf("got %q", html)
	}
}

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	var buf bytes.Buffer

	err := renderer.RenderPage(&buf, PageData{
		Title: "Counter",
		Body:  vdom.Div(vdom.OnClick(func() {}), "Count: 0"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Counter</title>",
		`<div id="tally-root"><div data-hid="h1" data-on-click="true">Count: 0</div></div>`,
		`<script defer src="/_tally/client.js"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}

func TestRenderStaticPageOmitsClient(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	var buf bytes.Buffer

	if err := renderer.RenderPage(&buf, PageData{Static: true, Body: vdom.P("x")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "<script") {
		t.Errorf("static page should not include client script")
	}
}

func TestTextContent(t *testing.T) {
	node := vdom.Div(
		vdom.H2("Title"),
		vdom.Raw("<b>ignored</b>"),
		vdom.Func(func() *vdom.VNode { return vdom.Span("Count: ", vdom.Textf("%d", 4)) }),
	)
	if got := TextContent(node); got != "TitleCount: 4" {
		t.Errorf("TextContent = %q", got)
	}
	if TextContent(nil) != "" {
		t.Error("nil node should have empty text")
	}
}
