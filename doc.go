// Package typeset reformats HTML and Markdown documents and hyphenates
// Finnish text for publishing.
//
// # Quick Start
//
// Build a Pipeline from a configuration, process files, and close it when
// done:
//
//	cfg := config.DefaultConfig()
//	cfg.OutputFormat = "xhtml"
//
//	p, err := typeset.New(cfg, typeset.WithMode(typeset.ModeHyphenate))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	results := p.Run(ctx, []string{"luku1.html", "luku2.md"})
//
// # Pipeline
//
// Each document goes through these stages:
//
//  1. Reading: HTML is decoded from its declared charset, Markdown is
//     rendered by goldmark with "- - -" scene breaks and YAML front matter
//  2. Punctuation normalization of every text node (keep, typeset, plain)
//  3. Hyphenation of every text node, or collection of unknown words
//  4. Rendering in the output format (html, simplified_html, xhtml,
//     markdown, paragraph_md)
//  5. Template binding with document metadata and configured variables
//  6. Writing to the file named by the output_name template
//
// # Modes
//
// ModeReformat skips hyphenation. ModeHyphenate inserts soft hyphens using
// the override dictionary first and the hyphenation backend second.
// ModeListUnknown writes nothing and records words the backend does not
// know; WriteUnknown dumps them as YAML that can serve as a hyphenations
// file after review.
//
// # Concurrency
//
// A Pipeline owns a stateful hyphenation backend and is not safe for
// concurrent use. Documents are processed one after another.
package typeset
