package hyphen

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendVoikko = "voikko"
	BackendNative = "native"
)

// BackendConfig selects and configures a Service.
type BackendConfig struct {
	// Name is auto, voikko or native. Empty means auto.
	Name string
	// Language is the Voikko language code. Empty means "fi".
	Language string
	// VoikkoPath overrides the Voikko dictionary search path.
	VoikkoPath string
	// Lexicon restricts the native backend's known words. Nil means every
	// word is known.
	Lexicon []string
}

// Backend is an opened Service together with the name of the
// implementation that was chosen.
type Backend struct {
	Service
	Name string
}

// Close releases the Service if it holds resources.
func (b *Backend) Close() error {
	if c, ok := b.Service.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open starts the backend named in cfg. Auto tries Voikko first and falls
// back to the native syllabifier when Voikko is not available.
func Open(cfg BackendConfig) (*Backend, error) {
	lang := cfg.Language
	if lang == "" {
		lang = "fi"
	}

	switch strings.ToLower(cfg.Name) {
	case BackendVoikko:
		v, err := NewVoikko(lang, cfg.VoikkoPath)
		if err != nil {
			return nil, err
		}
		return &Backend{Service: v, Name: BackendVoikko}, nil

	case BackendNative:
		return &Backend{Service: NewSyllabifier(cfg.Lexicon), Name: BackendNative}, nil

	case "", BackendAuto:
		v, err := NewVoikko(lang, cfg.VoikkoPath)
		if err == nil {
			return &Backend{Service: v, Name: BackendVoikko}, nil
		}
		if !errors.Is(err, ErrBackendUnavailable) {
			return nil, err
		}
		return &Backend{Service: NewSyllabifier(cfg.Lexicon), Name: BackendNative}, nil

	default:
		return nil, fmt.Errorf("%w: %q (must be auto, voikko, or native)", ErrUnknownBackend, cfg.Name)
	}
}
