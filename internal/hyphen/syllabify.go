package hyphen

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Syllabifier is a rule-based Finnish hyphenation Service. It places a break
// before the last consonant preceding a vowel (ta-los-sa, kir-ja) and between
// vowels that form neither a long vowel nor a diphthong (lu-en, ko-e).
// Hyphens, apostrophes and other non-letters split a word into parts that
// are syllabified independently. Words containing digits are never broken.
//
// With a lexicon, only listed words count as known; without one every
// alphabetic word is known.
type Syllabifier struct {
	opts    Options
	lexicon map[string]struct{}
}

var _ Service = (*Syllabifier)(nil)

// NewSyllabifier returns a Syllabifier. lexicon may be nil.
func NewSyllabifier(lexicon []string) *Syllabifier {
	s := &Syllabifier{opts: Options{MinWordLength: 1}}
	if lexicon != nil {
		s.lexicon = make(map[string]struct{}, len(lexicon))
		for _, w := range lexicon {
			if w = strings.TrimSpace(w); w != "" {
				s.lexicon[strings.ToLower(w)] = struct{}{}
			}
		}
	}
	return s
}

// ReadLexicon reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func ReadLexicon(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return words, nil
}

// LoadLexicon reads a lexicon file.
func LoadLexicon(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided lexicon path
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()
	return ReadLexicon(f)
}

// Configure implements Service.
func (s *Syllabifier) Configure(opts Options) error {
	if opts.MinWordLength < 1 {
		opts.MinWordLength = 1
	}
	s.opts = opts
	return nil
}

// Known reports whether word is in the lexicon. Without a lexicon every
// word is known.
func (s *Syllabifier) Known(word string) bool {
	if s.lexicon == nil {
		return true
	}
	_, ok := s.lexicon[strings.ToLower(word)]
	return ok
}

// Pattern implements Service.
func (s *Syllabifier) Pattern(word string) (string, error) {
	runes := []rune(strings.ToLower(word))
	pattern := []byte(strings.Repeat(string(patternNone), len([]rune(word))))
	if len(runes) != len(pattern) {
		// Lowercasing changed the length; leave the word whole.
		return string(pattern), nil
	}

	if len(runes) < s.opts.MinWordLength {
		return string(pattern), nil
	}
	if !s.opts.HyphenateUnknown && !s.Known(word) {
		return string(pattern), nil
	}
	for _, r := range runes {
		if unicode.IsDigit(r) {
			return string(pattern), nil
		}
	}

	start := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && unicode.IsLetter(runes[i]) {
			continue
		}
		if i > start {
			s.syllabify(runes, start, i, pattern)
		}
		start = i + 1
	}
	return string(pattern), nil
}

// syllabify marks breaks inside the letter run runes[from:to].
func (s *Syllabifier) syllabify(runes []rune, from, to int, pattern []byte) {
	seenVowel := false
	firstRun := true

	for i := from; i < to; {
		if !isVowel(runes[i]) {
			// Consonant rule: the last consonant before a vowel opens a syllable.
			if seenVowel && i+1 < to && isVowel(runes[i+1]) {
				s.mark(pattern, i, from, to)
			}
			i++
			continue
		}

		end := i
		for end < to && isVowel(runes[end]) {
			end++
		}
		s.splitVowels(runes, i, end, firstRun, from, to, pattern)
		seenVowel = true
		firstRun = false
		i = end
	}
}

// splitVowels marks breaks inside the vowel run runes[i:end].
func (s *Syllabifier) splitVowels(runes []rune, i, end int, firstRun bool, from, to int, pattern []byte) {
	j := i
	for j < end {
		size := 1
		if j+1 < end && joins(runes[j], runes[j+1], firstRun && j == i) {
			size = 2
		}
		j += size
		if j < end && !s.opts.NoUglyHyphenation {
			s.mark(pattern, j, from, to)
		}
	}
}

// mark records a break before position i unless it would leave a single
// letter on either side and ugly breaks are disabled.
func (s *Syllabifier) mark(pattern []byte, i, from, to int) {
	if i <= from || i >= to {
		return
	}
	if s.opts.NoUglyHyphenation && (i-from < 2 || to-i < 2) {
		return
	}
	pattern[i] = patternBreak
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ä', 'ö', 'å':
		return true
	}
	return false
}

// joins reports whether a and b stay in one syllable: a long vowel or a
// diphthong. The diphthongs ie, uo and yö only occur in a word's first
// syllable.
func joins(a, b rune, firstSyllable bool) bool {
	if a == b {
		return true
	}
	switch string([]rune{a, b}) {
	case "ai", "ei", "oi", "ui", "yi", "äi", "öi",
		"au", "eu", "iu", "ou", "ey", "iy", "äy", "öy":
		return true
	case "ie", "uo", "yö":
		return firstSyllable
	}
	return false
}
