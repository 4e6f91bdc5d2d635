package viewcounter

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markup the widget looks for in a host page.
const (
	ElementID     = "view-count"
	ScriptID      = "view-counter-script"
	ScriptBaseKey = "data-api-base"
	MetaBaseName  = "ossprey-view-counter-api-base"
)

// Display is the surface the widget writes its text to.
type Display interface {
	SetText(text string)
}

// Page is a parsed host page.
type Page struct {
	doc *html.Node
}

// LoadPage parses an HTML document. Like a browser, the parser repairs
// malformed markup instead of rejecting it.
func LoadPage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

// Element returns the element with the given id, if present.
func (p *Page) Element(id string) (*Element, bool) {
	n := findFirst(p.doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
	if n == nil {
		return nil, false
	}
	return &Element{node: n}, true
}

// Sources returns the bases the page declares for itself: the data-api-base
// attribute of the widget's script tag and the meta-tag override. The script
// tag is the one with id view-counter-script, or else the first script that
// carries data-api-base.
func (p *Page) Sources() Sources {
	var src Sources

	script := findFirst(p.doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Script && attr(n, "id") == ScriptID
	})
	if script == nil {
		script = findFirst(p.doc, func(n *html.Node) bool {
			return n.DataAtom == atom.Script && hasAttr(n, ScriptBaseKey)
		})
	}
	if script != nil {
		src.ScriptAttr = attr(script, ScriptBaseKey)
	}

	meta := findFirst(p.doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && attr(n, "name") == MetaBaseName
	})
	if meta != nil {
		src.Meta = attr(meta, "content")
	}

	return src
}

// Render writes the page, including any text the widget set.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.doc)
}

// Element is a node in a Page. It implements Display.
type Element struct {
	node *html.Node
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// TextDisplay is a Display outside any page. It keeps every text it was
// given, which is what the CLI and the JSON endpoint need.
type TextDisplay struct {
	history []string
}

// SetText records text as the current value.
func (d *TextDisplay) SetText(text string) {
	d.history = append(d.history, text)
}

// Text returns the latest text, or "" if none was set.
func (d *TextDisplay) Text() string {
	if len(d.history) == 0 {
		return ""
	}
	return d.history[len(d.history)-1]
}

// History returns every text set so far, oldest first.
func (d *TextDisplay) History() []string {
	return append([]string(nil), d.history...)
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
