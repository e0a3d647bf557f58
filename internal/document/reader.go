package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-typeset/internal/logging"
	"github.com/alnah/go-typeset/internal/yamlutil"
)

// InputKind identifies how a file is read.
type InputKind int

const (
	// InputHTML covers HTML and XHTML files.
	InputHTML InputKind = iota
	// InputMarkdown covers Markdown files.
	InputMarkdown
)

// String returns the kind name.
func (k InputKind) String() string {
	switch k {
	case InputHTML:
		return "html"
	case InputMarkdown:
		return "markdown"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

// KindOf picks a reader from the first letter of the file extension:
// 'h' or 'x' for HTML, 'm' for Markdown.
func KindOf(path string) (InputKind, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnsupportedInput, path)
	}
	switch ext[0] {
	case 'h', 'x':
		return InputHTML, nil
	case 'm':
		return InputMarkdown, nil
	default:
		return 0, fmt.Errorf("%w: %q extension in %s", ErrUnsupportedInput, ext, path)
	}
}

// frontMatter holds the metadata keys read from Markdown front matter.
type frontMatter struct {
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
	Lang      string `yaml:"lang"`
	Language  string `yaml:"language"`
}

// Reader turns input files into Documents.
type Reader struct {
	markdown MarkdownConverter
	logger   *slog.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMarkdownConverter replaces the goldmark converter.
func WithMarkdownConverter(c MarkdownConverter) ReaderOption {
	return func(r *Reader) {
		if c != nil {
			r.markdown = c
		}
	}
}

// WithReaderLogger sets the logger passed to every Document.
func WithReaderLogger(l *slog.Logger) ReaderOption {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReader creates a Reader.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		markdown: NewGoldmarkConverter(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile reads and parses the file at path.
func (r *Reader) ReadFile(ctx context.Context, path string) (*Document, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := r.Read(ctx, kind, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Read parses data as kind.
func (r *Reader) Read(ctx context.Context, kind InputKind, data []byte) (*Document, error) {
	switch kind {
	case InputHTML:
		return r.readHTML(data)
	case InputMarkdown:
		return r.readMarkdown(ctx, data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, kind)
	}
}

func (r *Reader) readHTML(data []byte) (*Document, error) {
	decoded, label, err := DecodeHTML(data)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("decoded html", slog.String("encoding", label))
	return Parse(bytes.NewReader(decoded), WithLogger(r.logger))
}

func (r *Reader) readMarkdown(ctx context.Context, data []byte) (*Document, error) {
	front, body := yamlutil.SplitFrontMatter(data)

	var fm frontMatter
	if len(front) > 0 {
		if err := yamlutil.Unmarshal(front, &fm); err != nil {
			return nil, fmt.Errorf("%w: front matter: %v", ErrMalformedDocument, err)
		}
	}

	rendered, err := r.markdown.ToHTML(ctx, string(body))
	if err != nil {
		return nil, err
	}

	lang := fm.Lang
	if lang == "" {
		lang = fm.Language
	}
	return Parse(strings.NewReader(rendered),
		WithLogger(r.logger),
		WithMetadata(Metadata{
			Title:     fm.Title,
			Author:    fm.Author,
			Copyright: fm.Copyright,
			Language:  lang,
		}),
	)
}
