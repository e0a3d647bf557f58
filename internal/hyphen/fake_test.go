package hyphen

import (
	"errors"
	"strings"
)

// fakeService returns canned patterns and records every call.
type fakeService struct {
	patterns   map[string]string // word -> pattern for any options
	guesses    map[string]string // word -> pattern when HyphenateUnknown is set
	configured []Options
	queried    []string
	current    Options
	err        error
}

func newFake(patterns map[string]string) *fakeService {
	return &fakeService{patterns: patterns, guesses: map[string]string{}}
}

func (f *fakeService) Configure(opts Options) error {
	f.configured = append(f.configured, opts)
	f.current = opts
	return nil
}

func (f *fakeService) Pattern(word string) (string, error) {
	f.queried = append(f.queried, word)
	if f.err != nil {
		return "", f.err
	}
	if f.current.HyphenateUnknown {
		if p, ok := f.guesses[word]; ok {
			return p, nil
		}
	}
	if p, ok := f.patterns[word]; ok {
		return p, nil
	}
	return strings.Repeat(" ", len([]rune(word))), nil
}

var errFake = errors.New("fake failure")
