package document

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-typeset/internal/logging"
)

// BeatComment is the comment text that marks a scene break.
const BeatComment = "beat"

// Metadata describes a document. Fields absent from the source are empty.
type Metadata struct {
	Title     string
	Author    string
	Copyright string
	Language  string
}

// Variables returns the non-empty fields keyed by template variable name.
func (m Metadata) Variables() map[string]string {
	vars := make(map[string]string, 4)
	for k, v := range map[string]string{
		"title":     m.Title,
		"author":    m.Author,
		"copyright": m.Copyright,
		"language":  m.Language,
	} {
		if v != "" {
			vars[k] = v
		}
	}
	return vars
}

// merge overrides m with the non-empty fields of o.
func (m Metadata) merge(o Metadata) Metadata {
	if o.Title != "" {
		m.Title = o.Title
	}
	if o.Author != "" {
		m.Author = o.Author
	}
	if o.Copyright != "" {
		m.Copyright = o.Copyright
	}
	if o.Language != "" {
		m.Language = strings.ToLower(strings.TrimSpace(o.Language))
	}
	return m
}

// Document is a parsed input file.
type Document struct {
	root   *html.Node
	meta   Metadata
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetadata overrides metadata found in the tree with the non-empty
// fields of m.
func WithMetadata(m Metadata) Option {
	return func(d *Document) {
		d.meta = d.meta.merge(m)
	}
}

// New wraps an already parsed tree. Metadata is read from the tree's
// html, title and meta elements.
func New(root *html.Node, opts ...Option) *Document {
	d := &Document{root: root, logger: logging.Discard()}
	d.meta = extractMetadata(root)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse parses UTF-8 HTML from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return New(root, opts...), nil
}

// Root returns the whole tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Metadata returns the document metadata.
func (d *Document) Metadata() Metadata {
	return d.meta
}

// Body returns the first body element, or the whole tree when there is none.
func (d *Document) Body() *html.Node {
	if body := d.FindFirst(atom.Body); body != nil {
		return body
	}
	d.logger.Info("body not found, using whole document")
	return d.root
}

// FindFirst returns the first element of kind a in document order, or nil.
func (d *Document) FindFirst(a atom.Atom) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	})
}

// TextNodes returns the text nodes under Body in document order. Text inside
// script, style, pre and code elements is left out.
func (d *Document) TextNodes() []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				nodes = append(nodes, c)
			case html.ElementNode:
				if !skipText(c.DataAtom) {
					walk(c)
				}
			case html.DocumentNode:
				walk(c)
			}
		}
	}
	walk(d.Body())
	return nodes
}

// IsBeat reports whether n is a scene break comment.
func IsBeat(n *html.Node) bool {
	return n.Type == html.CommentNode && strings.TrimSpace(n.Data) == BeatComment
}

func skipText(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Pre, atom.Code:
		return true
	}
	return false
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
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

// extractMetadata reads the language from the html (or body) lang attribute,
// the title element, and the author and copyright meta elements.
func extractMetadata(root *html.Node) Metadata {
	var m Metadata
	isElement := func(a atom.Atom) func(*html.Node) bool {
		return func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == a }
	}

	if n := findFirst(root, isElement(atom.Html)); n != nil {
		m.Language = attr(n, "lang")
	}
	if m.Language == "" {
		if n := findFirst(root, isElement(atom.Body)); n != nil {
			m.Language = attr(n, "lang")
		}
	}
	m.Language = strings.ToLower(strings.TrimSpace(m.Language))

	if n := findFirst(root, isElement(atom.Title)); n != nil {
		m.Title = strings.TrimSpace(textContent(n))
	}
	m.Author = metaContent(root, "author")
	m.Copyright = metaContent(root, "copyright")
	return m
}

func metaContent(root *html.Node, name string) string {
	n := findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Meta &&
			strings.EqualFold(attr(n, "name"), name)
	})
	if n == nil {
		return ""
	}
	return strings.TrimSpace(attr(n, "content"))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
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
	walk(n)
	return b.String()
}
