package format

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-typeset/internal/document"
)

// Rules defines how a format serializes the document tree.
type Rules interface {
	// Allowed returns the kinds that keep their markup inside parent.
	// KindOther stands for the body itself.
	Allowed(parent Kind) KindSet
	// Element wraps the rendered content of an allowed element.
	Element(k Kind, content string) string
	// Text renders a text node. Returning false drops the node.
	Text(s string) (string, bool)
	// Beat renders a scene break.
	Beat() string
}

// Walker renders a tree through Rules.
type Walker struct {
	rules  Rules
	strict bool
}

// NewWalker returns a Walker. In strict mode, elements outside the active
// allow-list fail the walk instead of being unwrapped.
func NewWalker(rules Rules, strict bool) *Walker {
	return &Walker{rules: rules, strict: strict}
}

// Render serializes the children of root.
func (w *Walker) Render(root *html.Node) (string, error) {
	var b strings.Builder
	if err := w.children(&b, root, w.rules.Allowed(KindOther)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (w *Walker) children(b *strings.Builder, parent *html.Node, allowed KindSet) error {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if err := w.node(b, c, allowed); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) node(b *strings.Builder, n *html.Node, allowed KindSet) error {
	switch n.Type {
	case html.TextNode:
		if s, ok := w.rules.Text(n.Data); ok {
			b.WriteString(s)
		}
	case html.CommentNode:
		if document.IsBeat(n) {
			b.WriteString(w.rules.Beat())
		}
	case html.DocumentNode:
		return w.children(b, n, allowed)
	case html.ElementNode:
		return w.element(b, n, allowed)
	}
	return nil
}

func (w *Walker) element(b *strings.Builder, n *html.Node, allowed KindSet) error {
	k := KindOf(n.DataAtom)
	if !allowed.Has(k) {
		if w.strict {
			return unsupported(n)
		}
		return w.children(b, n, allowed)
	}

	var inner strings.Builder
	if err := w.children(&inner, n, w.rules.Allowed(k)); err != nil {
		return err
	}
	b.WriteString(w.rules.Element(k, inner.String()))
	return nil
}

func unsupported(n *html.Node) error {
	var markup strings.Builder
	if err := html.Render(&markup, n); err != nil {
		markup.Reset()
		markup.WriteString("<" + n.Data + ">")
	}
	return &UnsupportedElementError{Kind: n.Data, Markup: markup.String()}
}
