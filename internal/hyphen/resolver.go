package hyphen

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-typeset/internal/logging"
	"github.com/alnah/go-typeset/internal/segment"
)

// DefaultMinWordLength is the shortest word hyphenated by default.
const DefaultMinWordLength = 5

// Resolver hyphenates words and text runs. It owns its Service for the
// duration of a batch and is not safe for concurrent use.
type Resolver struct {
	service    Service
	dictionary *Dictionary
	opts       Options
	mark       string
	logger     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDictionary sets the override dictionary consulted before the Service.
func WithDictionary(d *Dictionary) ResolverOption {
	return func(r *Resolver) { r.dictionary = d }
}

// withMark sets the break mark written into text. Defaults to SoftHyphen.
func withMark(mark string) ResolverOption {
	return func(r *Resolver) {
		if mark != "" {
			r.mark = mark
		}
	}
}

// WithLogger sets the logger used for repair reports.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver returns a Resolver querying svc with the given minimum word
// length and unknown-word policy. Ugly hyphenation is always disabled for
// document output.
func NewResolver(svc Service, minWordLength int, hyphenateUnknown bool, opts ...ResolverOption) *Resolver {
	if minWordLength <= 0 {
		minWordLength = DefaultMinWordLength
	}
	r := &Resolver{
		service: svc,
		opts: Options{
			MinWordLength:     minWordLength,
			HyphenateUnknown:  hyphenateUnknown,
			NoUglyHyphenation: true,
		},
		mark:   SoftHyphen,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mark returns the break mark the Resolver writes.
func (r *Resolver) Mark() string {
	return r.mark
}

// Word hyphenates a single whitespace-free token. Surrounding punctuation
// is split off, the core is hyphenated, and the punctuation is put back
// unchanged. A core that is not valid UTF-8 is returned as is.
func (r *Resolver) Word(token string) (string, error) {
	t := segment.SplitToken(token)
	if t.Core == "" || !utf8.ValidString(t.Core) {
		return token, nil
	}

	if hyphenated, ok := r.dictionary.Lookup(t.Core, r.mark); ok {
		r.logger.Debug("known word", logging.Word(t.Core), logging.Fixed(display(hyphenated, r.mark)))
		return t.Prefix + hyphenated + t.Suffix, nil
	}

	hyphenated, err := Query(r.service, r.opts, t.Core, r.mark)
	if err != nil {
		return "", err
	}

	if fixed := Repair(hyphenated, r.mark); fixed != hyphenated {
		r.logger.Warn("hyphenation fixed",
			logging.Original(display(hyphenated, r.mark)),
			logging.Fixed(display(fixed, r.mark)))
		hyphenated = fixed
	}

	return t.Prefix + hyphenated + t.Suffix, nil
}

// Text hyphenates every word of a text run. Marks already present are
// removed first, so hyphenating twice gives the same result as once.
// Whitespace is preserved exactly. A run that is a single newline is
// layout between elements and is returned unchanged.
func (r *Resolver) Text(text string) (string, error) {
	if text == "\n" {
		return text, nil
	}

	tokens := segment.SplitSentence(Strip(text, r.mark))
	for i, tok := range tokens {
		if segment.IsSpace(tok) {
			continue
		}
		hyphenated, err := r.Word(tok)
		if err != nil {
			return "", err
		}
		tokens[i] = hyphenated
	}

	return strings.Join(tokens, ""), nil
}
