package hyphen

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-typeset/internal/punct"
	"github.com/alnah/go-typeset/internal/yamlutil"
)

// DefaultSeparator marks breaks in dictionary files and word lists.
const DefaultSeparator = "_"

// Dictionary maps words to user-approved break positions. Keys are
// lowercased for the dictionary language and NFC-normalized, so a lookup
// matches regardless of the case or composition used in the document.
// A Dictionary is read-only after construction and safe to share.
type Dictionary struct {
	lang    language.Tag
	entries map[string]dictEntry
}

type dictEntry struct {
	spelled string // value with separators removed
	breaks  []int  // rune offsets of each break, ascending
}

// NewDictionary builds a Dictionary from word → hyphenated form pairs, where
// sep marks each break in the hyphenated form. Every hyphenated form must
// spell its key once the separators are removed.
func NewDictionary(entries map[string]string, sep string, lang language.Tag) (*Dictionary, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}

	d := &Dictionary{lang: lang, entries: make(map[string]dictEntry, len(entries))}
	for word, hyphenated := range entries {
		key := d.key(word)
		e := parseEntry(hyphenated, sep)
		if d.key(e.spelled) != key {
			return nil, fmt.Errorf("%w: %q does not spell %q", ErrInvalidDictionary, hyphenated, word)
		}
		if r, ok := e.breakAfterPunct(); ok {
			return nil, fmt.Errorf("%w: %q breaks after %q", ErrInvalidDictionary, hyphenated, r)
		}
		d.entries[key] = e
	}
	return d, nil
}

// ParseDictionary decodes a YAML mapping of word → hyphenated form.
func ParseDictionary(data []byte, sep string, lang language.Tag) (*Dictionary, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return NewDictionary(nil, sep, lang)
	}
	var raw map[string]string
	if err := yamlutil.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	return NewDictionary(raw, sep, lang)
}

// LoadDictionary reads and parses a dictionary file.
func LoadDictionary(path, sep string, lang language.Tag) (*Dictionary, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided dictionary path
	if err != nil {
		return nil, fmt.Errorf("reading hyphenation dictionary: %w", err)
	}
	d, err := ParseDictionary(data, sep, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func parseEntry(hyphenated, sep string) dictEntry {
	parts := strings.Split(hyphenated, sep)
	e := dictEntry{spelled: strings.Join(parts, "")}
	offset := 0
	total := utf8.RuneCountInString(e.spelled)
	for _, part := range parts[:len(parts)-1] {
		offset += utf8.RuneCountInString(part)
		if offset == 0 || offset == total {
			continue
		}
		if n := len(e.breaks); n > 0 && e.breaks[n-1] == offset {
			continue
		}
		e.breaks = append(e.breaks, offset)
	}
	return e
}

// breakAfterPunct reports the first punctuation character directly
// followed by a break.
func (e dictEntry) breakAfterPunct() (rune, bool) {
	runes := []rune(e.spelled)
	for _, b := range e.breaks {
		if punct.IsPunct(runes[b-1]) {
			return runes[b-1], true
		}
	}
	return 0, false
}

func (d *Dictionary) key(word string) string {
	// cases.Caser keeps state, so each call gets its own.
	return norm.NFC.String(cases.Lower(d.lang).String(word))
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Lookup returns word with mark inserted at the dictionary's break
// positions. Breaks are placed on the caller's spelling, so the original
// case is kept. When the caller's spelling has a different length than the
// stored one (case mappings that change length), the stored spelling is used.
func (d *Dictionary) Lookup(word, mark string) (string, bool) {
	if d == nil {
		return "", false
	}
	e, ok := d.entries[d.key(word)]
	if !ok {
		return "", false
	}

	base := word
	if utf8.RuneCountInString(word) != utf8.RuneCountInString(e.spelled) {
		base = e.spelled
	}
	return insertMarks(base, e.breaks, mark), true
}

// Words returns the dictionary keys in lexical order.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	words := make([]string, 0, len(d.entries))
	for k := range d.entries {
		words = append(words, k)
	}
	slices.Sort(words)
	return words
}

func insertMarks(word string, breaks []int, mark string) string {
	if len(breaks) == 0 {
		return word
	}
	var b strings.Builder
	b.Grow(len(word) + len(breaks)*len(mark))
	next := 0
	i := 0
	for _, r := range word {
		if next < len(breaks) && breaks[next] == i {
			b.WriteString(mark)
			next++
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}
