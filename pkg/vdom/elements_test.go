package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with attributes", func(t *testing.T) {
		node := Div(Class("card", "wide"), ID("main"))
		if node.Props["class"] != "card wide" {
			t.Errorf("class = %v, want card wide", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("with attribute slice", func(t *testing.T) {
		node := Span([]Attr{Data("role", "label"), {}})
		if node.Props["data-role"] != "label" {
			t.Errorf("data-role = %v, want label", node.Props["data-role"])
		}
		if len(node.Props) != 1 {
			t.Errorf("empty attr should be skipped, props = %v", node.Props)
		}
	})

	t.Run("with children", func(t *testing.T) {
		node := Div(H2(Text("Title")), P(Text("Content")), []*VNode{Span(), nil})
		if len(node.Children) != 3 {
			t.Fatalf("Children len = %v, want 3", len(node.Children))
		}
		if node.Children[0].Tag != "h2" {
			t.Errorf("Child tag = %v, want h2", node.Children[0].Tag)
		}
	})

	t.Run("with string shorthand", func(t *testing.T) {
		node := Div("Hello")
		if len(node.Children) != 1 || node.Children[0].Kind != KindText {
			t.Fatalf("expected one text child, got %+v", node.Children)
		}
		if node.Children[0].Text != "Hello" {
			t.Errorf("Child text = %v, want Hello", node.Children[0].Text)
		}
	})

	t.Run("with nil ignored", func(t *testing.T) {
		node := Div(nil, Class("test"), nil, If(false, Span()))
		if node.Props["class"] != "test" {
			t.Errorf("class = %v, want test", node.Props["class"])
		}
		if len(node.Children) != 0 {
			t.Errorf("Children len = %v, want 0", len(node.Children))
		}
	})

	t.Run("with event handler", func(t *testing.T) {
		node := Div(OnClick(func() {}))
		if node.Handler("click") == nil {
			t.Error("onclick handler not set")
		}
		if !node.IsInteractive() {
			t.Error("node with handler should be interactive")
		}
	})

	t.Run("with key", func(t *testing.T) {
		node := Li(Key(7))
		if node.Key != "7" {
			t.Errorf("Key = %q, want 7", node.Key)
		}
	})

	t.Run("with component", func(t *testing.T) {
		comp := Func(func() *VNode { return Span("inner") })
		node := Div(comp)
		if len(node.Children) != 1 || node.Children[0].Kind != KindComponent {
			t.Fatalf("expected component child, got %+v", node.Children)
		}
		if got := node.Children[0].Comp.Render().Tag; got != "span" {
			t.Errorf("rendered tag = %q, want span", got)
		}
	})
}

func TestFragment(t *testing.T) {
	frag := Fragment("a", Span(), nil)
	if frag.Kind != KindFragment {
		t.Errorf("Kind = %v, want KindFragment", frag.Kind)
	}
	if len(frag.Children) != 2 {
		t.Errorf("Children len = %d, want 2", len(frag.Children))
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("br") || !IsVoidElement("meta") {
		t.Error("br and meta are void elements")
	}
	if IsVoidElement("div") {
		t.Error("div is not a void element")
	}
}

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestInvoke(t *testing.T) {
	calls := 0
	if !Invoke(func() { calls++ }, Event{}) {
		t.Error("func() should be invokable")
	}

	var got Event
	if !Invoke(func(e Event) { got = e }, Event{Type: "click", Target: "h1"}) {
		t.Error("func(Event) should be invokable")
	}
	if got.Target != "h1" || got.Type != "click" {
		t.Errorf("event = %+v", got)
	}

	if Invoke("not a handler", Event{}) {
		t.Error("string should not be invokable")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
