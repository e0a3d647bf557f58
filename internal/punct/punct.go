// Package punct holds the punctuation table shared by the segmenter, the
// hyphenation resolver and the formatters.
//
// Every entry maps a raw form to a typeset form (curly right quotes, en dash,
// single-character ellipsis) and a plain form (ASCII quotes and hyphens, three
// periods). The typeset form follows Finnish convention, which closes and
// opens quotations with the same right-hand quote mark.
package punct

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized name.
var ErrUnknownPolicy = errors.New("unknown punctuation policy")

// Characters with a special meaning in the table.
const (
	SoftHyphen        = '\u00AD'
	NoBreakSpace      = '\u00A0'
	NonBreakingHyphen = '\u2011'
	MinusSign         = '\u2212'
	ZeroWidthSpace    = '\u200B'
	Ellipsis          = '\u2026'
	EmDash            = '\u2014'
	EnDash            = '\u2013'
)

// Policy selects how Normalize rewrites punctuation.
type Policy int

const (
	// Keep leaves text untouched.
	Keep Policy = iota
	// Typeset produces press-ready punctuation.
	Typeset
	// Plain produces ASCII-safe punctuation.
	Plain
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case Typeset:
		return "typeset"
	case Plain:
		return "plain"
	default:
		return "keep"
	}
}

// ParsePolicy converts a configuration name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "keep", "none":
		return Keep, nil
	case "typeset", "pretty":
		return Typeset, nil
	case "plain", "simple", "simplified":
		return Plain, nil
	default:
		return Keep, fmt.Errorf("%w: %q (must be keep, typeset, or plain)", ErrUnknownPolicy, name)
	}
}

type entry struct {
	raw     string
	typeset string
	plain   string
}

// table lists every canonized punctuation form.
var table = []entry{
	{"\u2026", "\u2026", "..."},
	{"...", "\u2026", "..."},

	{"\u201C", "\u201D", `"`},
	{"\u201D", "\u201D", `"`},
	{`"`, "\u201D", `"`},

	{"\u2018", "\u2019", "'"},
	{"\u2019", "\u2019", "'"},
	{"'", "\u2019", "'"},

	{"\u2014", "\u2013", "\u2013"},
	{"\u2013", "\u2013", "\u2013"},
	{"\u2011", "\u2011", "-"},
	{"\u2212", "\u2212", "-"},

	{"\u00A0", "\u00A0", " "},
}

// basic is the ASCII punctuation that has no alternate forms.
const basic = "!?:;.,()*+-/[]_"

var (
	punctSet        = buildSet()
	typesetReplacer = buildReplacer(func(e entry) string { return e.typeset })
	plainReplacer   = buildReplacer(func(e entry) string { return e.plain })
	allPunctuation  = buildAll()
)

func buildSet() map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range basic {
		set[r] = struct{}{}
	}
	for _, e := range table {
		for _, r := range e.raw {
			set[r] = struct{}{}
		}
	}
	return set
}

func buildReplacer(pick func(entry) string) *strings.Replacer {
	pairs := make([]string, 0, len(table)*2)
	for _, e := range table {
		pairs = append(pairs, e.raw, pick(e))
	}
	return strings.NewReplacer(pairs...)
}

func buildAll() string {
	var b strings.Builder
	b.WriteString(basic)
	for _, e := range table {
		if strings.ContainsAny(e.raw[:1], basic) {
			continue
		}
		b.WriteString(e.raw)
	}
	return b.String()
}

// IsPunct reports whether r is in the punctuation set.
func IsPunct(r rune) bool {
	_, ok := punctSet[r]
	return ok
}

// All returns every punctuation character as one string.
func All() string {
	return allPunctuation
}

// IsBreakMark reports whether r is an invisible break opportunity
// (soft hyphen or zero-width space). Break marks are neither words nor
// punctuation.
func IsBreakMark(r rune) bool {
	return r == SoftHyphen || r == ZeroWidthSpace
}

// Normalize rewrites the punctuation of s according to p. Applying the same
// policy twice yields the same result as applying it once.
func Normalize(s string, p Policy) string {
	switch p {
	case Typeset:
		return typesetReplacer.Replace(s)
	case Plain:
		return plainReplacer.Replace(s)
	default:
		return s
	}
}
