package hyphen

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/alnah/go-typeset/internal/logging"
	"github.com/alnah/go-typeset/internal/segment"
)

// DefaultCollectLength is the shortest word the Collector inspects.
const DefaultCollectLength = 5

var (
	// strictQuery only reports breaks for words the Service recognizes.
	strictQuery = Options{MinWordLength: 1, HyphenateUnknown: false, NoUglyHyphenation: false}
	// guessQuery lets the Service guess breaks for any word.
	guessQuery = Options{MinWordLength: 1, HyphenateUnknown: true, NoUglyHyphenation: true}
)

// Collector finds words the Service does not recognize and records a
// guessed hyphenation for each in a Registry. A word counts as unknown when
// a query with unknown-word hyphenation disabled yields no break at all.
// This is a heuristic: a known word with no legal break is reported too.
type Collector struct {
	service   Service
	registry  *Registry
	minLength int
	separator string
	logger    *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMinLength sets the shortest word, in characters, that is inspected.
func WithMinLength(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.minLength = n
		}
	}
}

// WithSeparator sets the mark written into guesses. Defaults to "_".
func WithSeparator(sep string) CollectorOption {
	return func(c *Collector) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// WithCollectorLogger sets the logger for newly found words.
func WithCollectorLogger(l *slog.Logger) CollectorOption {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollector returns a Collector recording into reg.
func NewCollector(svc Service, reg *Registry, opts ...CollectorOption) *Collector {
	c := &Collector{
		service:   svc,
		registry:  reg,
		minLength: DefaultCollectLength,
		separator: DefaultSeparator,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the Collector records into.
func (c *Collector) Registry() *Registry {
	return c.registry
}

// Collect inspects every word of text. Soft hyphens already in text are
// ignored. Words that are not valid UTF-8 are skipped. It returns the
// number of words added to the registry.
func (c *Collector) Collect(text string) (int, error) {
	added := 0
	for _, token := range segment.Words(Strip(text, SoftHyphen)) {
		word := segment.Core(token)
		if !utf8.ValidString(word) || utf8.RuneCountInString(word) < c.minLength || c.registry.Has(word) {
			continue
		}

		if err := c.service.Configure(strictQuery); err != nil {
			return added, fmt.Errorf("%w: configure: %v", ErrHyphenationService, err)
		}
		pattern, err := c.service.Pattern(word)
		if err != nil {
			return added, fmt.Errorf("%w: %v", ErrHyphenationService, err)
		}
		if _, err := ApplyPattern(word, pattern, ""); err != nil {
			return added, err
		}
		if HasBreak(pattern) {
			continue
		}

		guess, err := Query(c.service, guessQuery, word, c.separator)
		if err != nil {
			return added, err
		}
		guess = Repair(guess, c.separator)

		if c.registry.Add(word, guess) {
			added++
			c.logger.Debug("unknown word", logging.Word(word), logging.Fixed(guess))
		}
	}
	return added, nil
}
