package punct

import (
	"log/slog"
	"slices"
	"unicode"

	"github.com/alnah/go-typeset/internal/logging"
)

// Checker warns about characters that are neither letters, digits,
// whitespace, break marks nor known punctuation. Each character is reported
// once for the life of the Checker. A Checker is not safe for concurrent use.
type Checker struct {
	logger *slog.Logger
	seen   map[rune]struct{}
}

// NewChecker returns a Checker that logs to logger. A nil logger discards.
func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Checker{logger: logger, seen: make(map[rune]struct{})}
}

// Check logs every unknown character of s not reported before.
func (c *Checker) Check(s string) {
	for _, r := range s {
		if !isUnknown(r) {
			continue
		}
		if _, ok := c.seen[r]; ok {
			continue
		}
		c.seen[r] = struct{}{}
		c.logger.Warn("unknown punctuation", logging.Character(r), logging.Unicode(r))
	}
}

// Unknown returns the reported characters in code point order.
func (c *Checker) Unknown() []rune {
	out := make([]rune, 0, len(c.seen))
	for r := range c.seen {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func isUnknown(r rune) bool {
	switch {
	case unicode.IsSpace(r), unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
		return false
	case IsPunct(r), IsBreakMark(r):
		return false
	}
	return true
}
