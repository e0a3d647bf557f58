package typeset

import (
	"log/slog"
	"time"

	"github.com/alnah/go-typeset/internal/document"
	"github.com/alnah/go-typeset/internal/hyphen"
)

// Mode selects what a Pipeline does to the text of each document.
type Mode int

const (
	// ModeReformat converts documents without hyphenating them.
	ModeReformat Mode = iota
	// ModeHyphenate inserts hyphenation marks before rendering.
	ModeHyphenate
	// ModeListUnknown records words the backend cannot hyphenate and
	// writes no output files.
	ModeListUnknown
)

// String returns the command name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeHyphenate:
		return "hyphenate"
	case ModeListUnknown:
		return "list-unknown"
	default:
		return "reformat"
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMode sets the processing mode. The default is ModeReformat.
func WithMode(m Mode) Option {
	return func(p *Pipeline) {
		p.mode = m
	}
}

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the time source for the date and time output fields.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithService uses svc instead of opening the configured backend.
// The Pipeline does not close an injected service.
func WithService(svc hyphen.Service) Option {
	return func(p *Pipeline) {
		p.service = svc
	}
}

// WithMarkdownConverter replaces the goldmark converter used for Markdown
// input.
func WithMarkdownConverter(c document.MarkdownConverter) Option {
	return func(p *Pipeline) {
		p.markdown = c
	}
}
