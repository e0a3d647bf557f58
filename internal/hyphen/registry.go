package hyphen

import (
	"fmt"
	"io"
	"slices"

	"github.com/alnah/go-typeset/internal/yamlutil"
)

// Registry accumulates words the Service did not recognize together with a
// guessed hyphenation. The first guess recorded for a word is kept.
type Registry struct {
	entries map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Add records word → guess unless word is already present. It reports
// whether the entry was added.
func (g *Registry) Add(word, guess string) bool {
	if _, ok := g.entries[word]; ok {
		return false
	}
	g.entries[word] = guess
	return true
}

// Has reports whether word has been recorded.
func (g *Registry) Has(word string) bool {
	_, ok := g.entries[word]
	return ok
}

// Guess returns the recorded guess for word.
func (g *Registry) Guess(word string) (string, bool) {
	guess, ok := g.entries[word]
	return guess, ok
}

// Len returns the number of recorded words.
func (g *Registry) Len() int {
	return len(g.entries)
}

// Words returns the recorded words in lexical order.
func (g *Registry) Words() []string {
	words := make([]string, 0, len(g.entries))
	for w := range g.entries {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// WriteYAML writes the registry as a YAML mapping with sorted keys. The
// output can be loaded back as an override dictionary once reviewed.
func (g *Registry) WriteYAML(w io.Writer) error {
	data, err := yamlutil.MarshalSorted(g.entries)
	if err != nil {
		return fmt.Errorf("encoding unknown words: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing unknown words: %w", err)
	}
	return nil
}
