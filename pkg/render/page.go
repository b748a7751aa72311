package render

import (
	"io"

	"github.com/vango-dev/tally/pkg/vdom"
)

// DefaultClientScript is the path the server publishes the live client on.
const DefaultClientScript = "/_tally/client.js"

// RootID is the id of the element the live client swaps re-rendered HTML into.
const RootID = "tally-root"

// PageData contains everything needed to render a full HTML document.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the document title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// ClientScript is the path of the live client. Defaults to
	// DefaultClientScript. Set Static to omit it.
	ClientScript string

	// Static disables the live client; the page is rendered once.
	Static bool
}

// RenderPage writes a complete HTML document containing data.Body inside the
// live root element.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	lang := data.Lang
	if lang == "" {
		lang = "en"
	}
	script := data.ClientScript
	if script == "" {
		script = DefaultClientScript
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}

	doc := vdom.Html(vdom.Attr{Key: "lang", Value: lang},
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Title(data.Title),
		),
		vdom.Body(
			vdom.Div(vdom.ID(RootID), data.Body),
			vdom.If(!data.Static, vdom.Script(vdom.Src(script), vdom.Attr{Key: "defer", Value: true})),
		),
	)
	return r.RenderToWriter(w, doc)
}
