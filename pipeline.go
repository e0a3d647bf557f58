package typeset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-typeset/internal/assets"
	"github.com/alnah/go-typeset/internal/binder"
	"github.com/alnah/go-typeset/internal/config"
	"github.com/alnah/go-typeset/internal/dateutil"
	"github.com/alnah/go-typeset/internal/document"
	"github.com/alnah/go-typeset/internal/fileutil"
	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hyphen"
	"github.com/alnah/go-typeset/internal/logging"
	"github.com/alnah/go-typeset/internal/punct"
)

// Pipeline turns input documents into output files for one run. It holds
// the run's format, hyphenation backend, override dictionary, unknown-word
// registry and punctuation checker.
type Pipeline struct {
	cfg      *config.Config
	mode     Mode
	logger   *slog.Logger
	now      func() time.Time
	markdown document.MarkdownConverter

	format    format.Format
	policy    punct.Policy
	reader    *document.Reader
	templates *assets.Resolver
	checker   *punct.Checker

	service    hyphen.Service
	backend    *hyphen.Backend // nil when the service was injected
	dictionary *hyphen.Dictionary
	resolver   *hyphen.Resolver
	collector  *hyphen.Collector
	registry   *hyphen.Registry

	fields map[string]string // run-wide output name fields
	vars   binder.Variables  // configured variables, dates resolved
}

// New validates cfg and prepares a Pipeline. Failures here concern the whole
// run: unknown format, missing output directory, unreadable hyphenations or
// lexicon file, unavailable backend. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		mode:   ModeReformat,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.mode == ModeHyphenate && cfg.ListUnknownMode {
		p.mode = ModeListUnknown
	}

	f, err := format.Match(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	p.format = f

	p.policy = f.Punctuation
	if cfg.Punctuation != "" {
		if p.policy, err = punct.ParsePolicy(cfg.Punctuation); err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath != "" && !fileutil.DirExists(cfg.OutputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputDirectory, cfg.OutputPath)
	}

	if p.templates, err = assets.NewResolver(cfg.TemplateDir); err != nil {
		return nil, err
	}

	if p.fields, err = p.runFields(); err != nil {
		return nil, err
	}

	readerOpts := []document.ReaderOption{document.WithReaderLogger(p.logger)}
	if p.markdown != nil {
		readerOpts = append(readerOpts, document.WithMarkdownConverter(p.markdown))
	}
	p.reader = document.NewReader(readerOpts...)
	p.checker = punct.NewChecker(p.logger)

	if p.mode != ModeReformat {
		if err := p.openHyphenation(); err != nil {
			return nil, err
		}
	}

	p.logger.Debug("pipeline ready",
		slog.String("mode", p.mode.String()),
		logging.FormatName(p.format.Name),
		slog.String("punctuation", p.policy.String()))
	return p, nil
}

// openHyphenation starts the backend and builds the resolver or collector.
func (p *Pipeline) openHyphenation() error {
	cfg := p.cfg

	if p.service == nil {
		var lexicon []string
		if cfg.LexiconFile != "" {
			words, err := hyphen.LoadLexicon(cfg.LexiconFile)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrLoadLexicon, err)
			}
			lexicon = words
		}

		b, err := hyphen.Open(hyphen.BackendConfig{
			Name:       cfg.Backend,
			Language:   cfg.Language,
			VoikkoPath: cfg.VoikkoPath,
			Lexicon:    lexicon,
		})
		if err != nil {
			return err
		}
		p.backend = b
		p.service = b
		p.logger.Info("hyphenation backend", logging.Backend(b.Name))
	}

	if p.mode == ModeListUnknown {
		p.registry = hyphen.NewRegistry()
		p.collector = hyphen.NewCollector(p.service, p.registry,
			hyphen.WithSeparator(cfg.HyphenationSeparator),
			hyphen.WithMinLength(cfg.UnknownMinLength),
			hyphen.WithCollectorLogger(p.logger))
		return nil
	}

	if cfg.HyphenationsFile != "" {
		dict, err := hyphen.LoadDictionary(cfg.HyphenationsFile, cfg.HyphenationSeparator, p.languageTag())
		if err != nil {
			_ = p.closeBackend()
			return fmt.Errorf("%w: %w", ErrLoadDictionary, err)
		}
		p.dictionary = dict
		p.logger.Debug("loaded hyphenations",
			logging.File(cfg.HyphenationsFile), logging.Count(dict.Len()))
	}

	p.resolver = hyphen.NewResolver(p.service, cfg.MinWordLength, cfg.AllowUnknownWords,
		hyphen.WithDictionary(p.dictionary),
		hyphen.WithLogger(p.logger))
	return nil
}

// languageTag parses the configured language, falling back to Finnish.
func (p *Pipeline) languageTag() language.Tag {
	tag, err := language.Parse(p.cfg.Language)
	if err != nil {
		p.logger.Warn("unknown language, using fi", slog.String("language", p.cfg.Language))
		return language.Finnish
	}
	return tag
}

// runFields computes the output name fields shared by every document of
// the run: date, time, string-valued settings and configured variables.
func (p *Pipeline) runFields() (map[string]string, error) {
	now := p.now()
	fields := p.cfg.StringEntries()

	date, err := dateutil.Format(now, orDefault(p.cfg.DateFormat, dateutil.DefaultDateFormat))
	if err != nil {
		return nil, err
	}
	clock, err := dateutil.Format(now, orDefault(p.cfg.TimeFormat, dateutil.DefaultTimeFormat))
	if err != nil {
		return nil, err
	}
	fields["date"] = date
	fields["time"] = clock

	if p.vars, err = p.variables(now); err != nil {
		return nil, err
	}
	for k, v := range p.vars {
		fields[k] = v
	}
	return fields, nil
}

// variables resolves the configured template variables. "auto" and
// "auto:FORMAT" values become the current date.
func (p *Pipeline) variables(now time.Time) (binder.Variables, error) {
	vars := make(binder.Variables, len(p.cfg.Variables))
	for k, v := range p.cfg.Variables {
		resolved, err := dateutil.ResolveDate(v, now)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", k, err)
		}
		vars[k] = resolved
	}
	return vars, nil
}

// Format returns the output format of the run.
func (p *Pipeline) Format() format.Format {
	return p.format
}

// Mode returns the processing mode of the run.
func (p *Pipeline) Mode() Mode {
	return p.mode
}

// BackendName returns the name of the opened hyphenation backend, or ""
// when none was opened.
func (p *Pipeline) BackendName() string {
	if p.backend == nil {
		return ""
	}
	return p.backend.Name
}

// Registry returns the unknown-word registry. It is nil unless the mode is
// ModeListUnknown.
func (p *Pipeline) Registry() *hyphen.Registry {
	return p.registry
}

// WriteUnknown writes the collected unknown words as YAML.
func (p *Pipeline) WriteUnknown(w io.Writer) error {
	if p.registry == nil {
		return nil
	}
	return p.registry.WriteYAML(w)
}

// Close releases the hyphenation backend.
func (p *Pipeline) Close() error {
	return p.closeBackend()
}

func (p *Pipeline) closeBackend() error {
	if p.backend == nil {
		return nil
	}
	err := p.backend.Close()
	p.backend = nil
	return err
}

// Input is one document to convert.
type Input struct {
	// Path names the document. Its extension selects the reader and its
	// base name fills the name output field.
	Path string
	// Data is the document content.
	Data []byte
}

// Output is a converted document.
type Output struct {
	// Name is the output file name produced by the output_name template.
	Name string
	// Content is the bound template, or the rendered body for formats
	// without a template. Empty in ModeListUnknown.
	Content string
	// Collected counts words added to the unknown-word registry.
	Collected int
}

// Convert transforms one in-memory document. It does not touch the file
// system.
func (p *Pipeline) Convert(ctx context.Context, in Input) (*Output, error) {
	kind, err := document.KindOf(in.Path)
	if err != nil {
		return nil, err
	}
	doc, err := p.reader.Read(ctx, kind, in.Data)
	if err != nil {
		return nil, err
	}
	return p.convertDocument(doc, in.Path)
}

func (p *Pipeline) convertDocument(doc *document.Document, path string) (*Output, error) {
	nodes := doc.TextNodes()
	for _, n := range nodes {
		p.checker.Check(n.Data)
		n.Data = punct.Normalize(n.Data, p.policy)
	}

	switch p.mode {
	case ModeListUnknown:
		total := 0
		for _, n := range nodes {
			added, err := p.collector.Collect(n.Data)
			total += added
			if err != nil {
				return nil, err
			}
		}
		return &Output{Collected: total}, nil

	case ModeHyphenate:
		for _, n := range nodes {
			hyphenated, err := p.resolver.Text(n.Data)
			if err != nil {
				return nil, err
			}
			n.Data = hyphenated
		}
	}

	body, err := p.format.Render(doc, format.RenderOptions{Strict: p.cfg.StrictElementMode})
	if err != nil {
		return nil, err
	}

	fields := p.documentFields(path)
	name, err := binder.Bind(p.cfg.OutputName, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutputName, err)
	}

	content, err := p.bindTemplate(doc, fields, body)
	if err != nil {
		return nil, err
	}
	return &Output{Name: name, Content: content}, nil
}

// documentFields adds the per-document name and ext fields to the run
// fields.
func (p *Pipeline) documentFields(path string) binder.Variables {
	fields := make(binder.Variables, len(p.fields)+2)
	for k, v := range p.fields {
		fields[k] = v
	}
	stem, _ := fileutil.SplitName(path)
	fields["name"] = stem
	fields["ext"] = p.format.Extension
	return fields
}

// bindTemplate wraps body in the format's template. Formats without a
// template return body unchanged.
func (p *Pipeline) bindTemplate(doc *document.Document, fields binder.Variables, body string) (string, error) {
	if p.format.Template == "" {
		return body, nil
	}

	tmpl := p.cfg.Templates.Template(p.format.Name)
	if tmpl == "" {
		var err error
		if tmpl, err = p.templates.LoadTemplate(p.format.Template); err != nil {
			return "", err
		}
	}

	configured := binder.Variables{
		"name": fields["name"],
		"ext":  fields["ext"],
		"date": fields["date"],
		"time": fields["time"],
	}
	for k, v := range p.vars {
		configured[k] = v
	}

	return binder.Bind(tmpl, binder.Assemble(doc.Metadata().Variables(), configured, body))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
