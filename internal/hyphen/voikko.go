//go:build voikko

package hyphen

/*
#cgo pkg-config: libvoikko
#include <stdlib.h>
#include <libvoikko/voikko.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// VoikkoAvailable reports whether the Voikko backend is compiled in.
const VoikkoAvailable = true

// Voikko is a Service backed by libvoikko.
type Voikko struct {
	handle *C.struct_VoikkoHandle
}

var _ Service = (*Voikko)(nil)

// NewVoikko opens libvoikko for language (for example "fi"). path may be
// empty to use the default dictionary search path.
func NewVoikko(lang, path string) (*Voikko, error) {
	cLang := C.CString(lang)
	defer C.free(unsafe.Pointer(cLang))

	var cPath *C.char
	if path != "" {
		cPath = C.CString(path)
		defer C.free(unsafe.Pointer(cPath))
	}

	var cErr *C.char
	handle := C.voikkoInit(&cErr, cLang, cPath)
	if handle == nil {
		msg := "unknown error"
		if cErr != nil {
			msg = C.GoString(cErr)
		}
		return nil, fmt.Errorf("%w: voikko %s: %s", ErrBackendUnavailable, lang, msg)
	}
	return &Voikko{handle: handle}, nil
}

// Configure implements Service.
func (v *Voikko) Configure(opts Options) error {
	if v.handle == nil {
		return fmt.Errorf("%w: voikko handle closed", ErrBackendUnavailable)
	}
	if C.voikkoSetBooleanOption(v.handle, C.VOIKKO_OPT_NO_UGLY_HYPHENATION, cBool(opts.NoUglyHyphenation)) == 0 {
		return fmt.Errorf("voikko: setting no-ugly hyphenation failed")
	}
	if C.voikkoSetBooleanOption(v.handle, C.VOIKKO_OPT_HYPHENATE_UNKNOWN_WORDS, cBool(opts.HyphenateUnknown)) == 0 {
		return fmt.Errorf("voikko: setting unknown word hyphenation failed")
	}
	if C.voikkoSetIntegerOption(v.handle, C.VOIKKO_MIN_HYPHENATED_WORD_LENGTH, C.int(opts.MinWordLength)) == 0 {
		return fmt.Errorf("voikko: setting minimum word length failed")
	}
	return nil
}

// Pattern implements Service.
func (v *Voikko) Pattern(word string) (string, error) {
	if v.handle == nil {
		return "", fmt.Errorf("%w: voikko handle closed", ErrBackendUnavailable)
	}
	cWord := C.CString(word)
	defer C.free(unsafe.Pointer(cWord))

	cPattern := C.voikkoHyphenateCstr(v.handle, cWord)
	if cPattern == nil {
		return "", fmt.Errorf("voikko returned no pattern for %q", word)
	}
	defer C.voikkoFreeCstr(cPattern)
	return C.GoString(cPattern), nil
}

// Close releases the libvoikko handle.
func (v *Voikko) Close() error {
	if v.handle != nil {
		C.voikkoTerminate(v.handle)
		v.handle = nil
	}
	return nil
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
