package render

import (
	"strings"

	"github.com/vango-dev/tally/pkg/vdom"
)

// TextContent returns the visible text of a tree, the way a browser's
// textContent would report it: text nodes concatenated in document order,
// components rendered, raw HTML skipped.
func TextContent(node *vdom.VNode) string {
	var b strings.Builder
	collectText(&b, node)
	return b.String()
}

func collectText(b *strings.Builder, node *vdom.VNode) {
	if node == nil {
		return
	}
	switch node.Kind {
	case vdom.KindText:
		b.WriteString(node.Text)
	case vdom.KindComponent:
		if node.Comp != nil {
			collectText(b, node.Comp.Render())
		}
	case vdom.KindElement, vdom.KindFragment:
		for _, child := range node.Children {
			collectText(b, child)
		}
	}
}
