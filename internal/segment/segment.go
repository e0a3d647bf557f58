// Package segment splits text runs into whitespace-preserving tokens and
// tokens into surrounding punctuation and a core word.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-typeset/internal/punct"
)

// Token is a whitespace-delimited word split into its punctuation prefix,
// core word and punctuation suffix. Prefix+Core+Suffix is the original token.
type Token struct {
	Prefix string
	Core   string
	Suffix string
}

// String reassembles the token.
func (t Token) String() string {
	return t.Prefix + t.Core + t.Suffix
}

// SplitToken consumes punctuation greedily from both ends of token. A single
// hyphen between other punctuation and a letter stays with the core, so the
// Finnish compound markers in "-ko" and "auto-" survive. A token made only of
// punctuation has an empty core and everything in Prefix.
func SplitToken(token string) Token {
	n := len(token)

	start := 0
	for start < n {
		r, size := utf8.DecodeRuneInString(token[start:])
		if !punct.IsPunct(r) {
			break
		}
		start += size
	}
	if start == n {
		return Token{Prefix: token}
	}

	end := n
	for end > start {
		r, size := utf8.DecodeLastRuneInString(token[start:end])
		if !punct.IsPunct(r) {
			break
		}
		end -= size
	}

	// '-' is a single byte, so byte neighbours are rune neighbours.
	if start > 0 && token[start-1] == '-' && (start == 1 || token[start-2] != '-') {
		if first, _ := utf8.DecodeRuneInString(token[start:]); unicode.IsLetter(first) {
			start--
		}
	}
	if end < n && token[end] == '-' && (end == n-1 || token[end+1] != '-') {
		if last, _ := utf8.DecodeLastRuneInString(token[start:end]); unicode.IsLetter(last) {
			end++
		}
	}

	return Token{
		Prefix: token[:start],
		Core:   token[start:end],
		Suffix: token[end:],
	}
}

// Core returns the core word of token.
func Core(token string) string {
	return SplitToken(token).Core
}

// SplitSentence splits text into alternating runs of non-space and space
// characters. Every whitespace run is kept verbatim as its own token and no
// token is empty, so strings.Join(SplitSentence(s), "") == s.
func SplitSentence(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	begin := 0
	first, _ := utf8.DecodeRuneInString(text)
	inSpace := unicode.IsSpace(first)

	for i, r := range text {
		if space := unicode.IsSpace(r); space != inSpace {
			tokens = append(tokens, text[begin:i])
			begin = i
			inSpace = space
		}
	}
	return append(tokens, text[begin:])
}

// IsSpace reports whether token is a whitespace run produced by SplitSentence.
func IsSpace(token string) bool {
	return token != "" && strings.TrimFunc(token, unicode.IsSpace) == ""
}

// Words returns the whitespace-separated words of text.
func Words(text string) []string {
	return strings.Fields(text)
}
