package hyphen

import "errors"

var (
	// ErrHyphenationService is returned when a Service produces a pattern
	// that does not describe the queried word.
	ErrHyphenationService = errors.New("hyphenation service error")

	// ErrBackendUnavailable is returned when the requested Service cannot be
	// started (missing library, missing language data, or not compiled in).
	ErrBackendUnavailable = errors.New("hyphenation backend unavailable")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown hyphenation backend")

	// ErrInvalidDictionary is returned when an override dictionary entry does
	// not spell its own key.
	ErrInvalidDictionary = errors.New("invalid hyphenation dictionary")

	// ErrEmptySeparator is returned when a dictionary separator is empty.
	ErrEmptySeparator = errors.New("hyphenation separator cannot be empty")
)
