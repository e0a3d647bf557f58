package hyphen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SoftHyphen is the default break mark written into documents.
const SoftHyphen = "\u00ad"

// Options tunes a Service before a query.
type Options struct {
	// MinWordLength is the shortest word, in characters, that gets any break.
	MinWordLength int
	// HyphenateUnknown lets the Service guess breaks for words it does not
	// recognize instead of leaving them whole.
	HyphenateUnknown bool
	// NoUglyHyphenation forbids breaks that leave a single letter or an
	// awkward vowel split on either side.
	NoUglyHyphenation bool
}

// Service answers hyphenation queries. Pattern returns one byte per rune of
// word: ' ' for no break, '-' for a break before that rune, '=' for a break
// where that rune is replaced by a hyphen.
//
// A Service is stateful (Configure then Pattern) and must not be shared
// between goroutines.
type Service interface {
	Configure(opts Options) error
	Pattern(word string) (string, error)
}

// Pattern characters.
const (
	patternNone    = ' '
	patternBreak   = '-'
	patternReplace = '='
)

// ApplyPattern inserts mark into word at every '-' position of pattern.
// Positions marked '=' carry a hyphen-like character that already allows a
// break, so nothing is inserted and the character is kept. The result with
// every mark removed is always word.
func ApplyPattern(word, pattern, mark string) (string, error) {
	if n, m := utf8.RuneCountInString(word), len(pattern); n != m {
		return "", fmt.Errorf("%w: pattern %q has %d positions for %d characters in %q",
			ErrHyphenationService, pattern, m, n, word)
	}

	var b strings.Builder
	b.Grow(len(word) + len(mark)*4)

	i := 0
	for _, r := range word {
		switch pattern[i] {
		case patternBreak:
			if i > 0 {
				b.WriteString(mark)
			}
		case patternNone, patternReplace:
		default:
			return "", fmt.Errorf("%w: unexpected %q in pattern %q for %q",
				ErrHyphenationService, pattern[i], pattern, word)
		}
		b.WriteRune(r)
		i++
	}
	return b.String(), nil
}

// HasBreak reports whether pattern allows at least one break.
func HasBreak(pattern string) bool {
	return strings.ContainsAny(pattern, "-=")
}

// Query configures svc with opts and returns word with mark at every break.
func Query(svc Service, opts Options, word, mark string) (string, error) {
	if err := svc.Configure(opts); err != nil {
		return "", fmt.Errorf("%w: configure: %v", ErrHyphenationService, err)
	}
	pattern, err := svc.Pattern(word)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHyphenationService, err)
	}
	return ApplyPattern(word, pattern, mark)
}
