package format

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-typeset/internal/document"
	"github.com/alnah/go-typeset/internal/punct"
)

// Format names.
const (
	HTML           = "html"
	SimplifiedHTML = "simplified_html"
	XHTML          = "xhtml"
	Markdown       = "markdown"
	ParagraphMD    = "paragraph_md"
)

// RenderOptions tunes a single Render call.
type RenderOptions struct {
	// Strict fails on elements a format does not allow instead of
	// unwrapping them.
	Strict bool
}

// Format describes one output format.
type Format struct {
	Name        string
	Description string
	// Extension is appended to the input base name to build the output name.
	Extension string
	// Template names the output template the content is bound into. Empty
	// means the rendered content is the whole output.
	Template string
	// Punctuation is the policy used when none is configured.
	Punctuation punct.Policy

	render func(doc *document.Document, opts RenderOptions) (string, error)
}

// Render serializes doc.
func (f Format) Render(doc *document.Document, opts RenderOptions) (string, error) {
	return f.render(doc, opts)
}

var formats = []Format{
	{
		Name:        HTML,
		Description: "Parsed HTML file",
		Extension:   "_parsed.html",
		Punctuation: punct.Keep,
		render:      renderHTML,
	},
	{
		Name:        SimplifiedHTML,
		Description: "Simplified HTML file",
		Extension:   "_simplified.html",
		Template:    SimplifiedHTML,
		Punctuation: punct.Keep,
		render:      renderSimplified,
	},
	{
		Name:        XHTML,
		Description: "XHTML file suitable for EPUB",
		Extension:   "_reformatted.xhtml",
		Template:    XHTML,
		Punctuation: punct.Keep,
		render:      renderXHTML,
	},
	{
		Name:        Markdown,
		Description: "Simplified Markdown file",
		Extension:   "_reformatted.md",
		Punctuation: punct.Plain,
		render:      renderMarkdown,
	},
	{
		Name:        ParagraphMD,
		Description: "Markdown file with one sentence per line",
		Extension:   ".md",
		Punctuation: punct.Plain,
		render:      renderParagraphMD,
	},
}

// aliases maps alternative spellings to format names.
var aliases = map[string]string{
	"md": Markdown,
}

// All returns every format in display order.
func All() []Format {
	return slices.Clone(formats)
}

// Names returns every format name in display order.
func Names() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// Match selects the format whose name starts with prefix, ignoring case.
// An exact name or alias always wins.
func Match(prefix string) (Format, error) {
	return matchIn(formats, prefix)
}

func matchIn(set []Format, prefix string) (Format, error) {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if p == "" {
		return Format{}, fmt.Errorf("%w: empty name (must be one of %s)", ErrUnknownFormat, strings.Join(Names(), ", "))
	}
	if name, ok := aliases[p]; ok {
		p = name
	}

	var matches []Format
	for _, f := range set {
		if f.Name == p {
			return f, nil
		}
		if strings.HasPrefix(f.Name, p) {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return Format{}, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownFormat, prefix, strings.Join(Names(), ", "))
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, f := range matches {
			names[i] = f.Name
		}
		return Format{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousFormat, prefix, strings.Join(names, ", "))
	}
}

func renderMarkdown(doc *document.Document, opts RenderOptions) (string, error) {
	md, err := NewWalker(markdownRules{}, opts.Strict).Render(doc.Body())
	if err != nil {
		return "", err
	}
	return trimTrailingBlank(md), nil
}

// trimTrailingBlank ends non-empty Markdown with exactly one blank line.
func trimTrailingBlank(md string) string {
	md = strings.TrimRight(md, " \t\n")
	if md == "" {
		return ""
	}
	return md + "\n\n"
}

func renderParagraphMD(doc *document.Document, opts RenderOptions) (string, error) {
	md, err := renderMarkdown(doc, opts)
	if err != nil {
		return "", err
	}
	return SentencePerLine(md), nil
}

func renderSimplified(doc *document.Document, opts RenderOptions) (string, error) {
	s, err := NewWalker(simplifiedRules{}, opts.Strict).Render(doc.Body())
	if err != nil {
		return "", err
	}
	return tidySimplified(s), nil
}

// renderHTML renders the whole parsed document.
func renderHTML(doc *document.Document, _ RenderOptions) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, doc.Root()); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return b.String(), nil
}

// renderXHTML renders the children of the body. Void elements are
// self-closed so the content is well-formed inside an XHTML template.
func renderXHTML(doc *document.Document, _ RenderOptions) (string, error) {
	var b strings.Builder
	for c := doc.Body().FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("rendering xhtml: %w", err)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
