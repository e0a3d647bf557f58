//go:build !voikko

package hyphen

import "fmt"

// VoikkoAvailable reports whether the Voikko backend is compiled in.
const VoikkoAvailable = false

// Voikko is a placeholder for builds without the "voikko" tag.
type Voikko struct{}

var _ Service = (*Voikko)(nil)

// NewVoikko always fails in builds without the "voikko" tag.
func NewVoikko(lang, _ string) (*Voikko, error) {
	return nil, fmt.Errorf("%w: voikko %s: binary built without the voikko tag", ErrBackendUnavailable, lang)
}

func (*Voikko) Configure(Options) error {
	return ErrBackendUnavailable
}

func (*Voikko) Pattern(string) (string, error) {
	return "", ErrBackendUnavailable
}

func (*Voikko) Close() error {
	return nil
}
