package logging

import (
	"fmt"
	"log/slog"
)

// Canonical attribute keys, shared so that records from different packages
// can be filtered the same way.
const (
	KeyFile      = "file"
	KeyOutput    = "output"
	KeyError     = "error"
	KeyFormat    = "format"
	KeyWord      = "word"
	KeyOriginal  = "original"
	KeyFixed     = "fixed"
	KeyCharacter = "character"
	KeyUnicode   = "unicode"
	KeyCount     = "count"
	KeyBackend   = "backend"
)

func File(path string) slog.Attr       { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr     { return slog.String(KeyOutput, path) }
func FormatName(name string) slog.Attr { return slog.String(KeyFormat, name) }
func Word(w string) slog.Attr          { return slog.String(KeyWord, w) }
func Original(s string) slog.Attr      { return slog.String(KeyOriginal, s) }
func Fixed(s string) slog.Attr         { return slog.String(KeyFixed, s) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Backend(name string) slog.Attr    { return slog.String(KeyBackend, name) }
func Character(r rune) slog.Attr       { return slog.String(KeyCharacter, string(r)) }
func Unicode(r rune) slog.Attr         { return slog.String(KeyUnicode, fmt.Sprintf("U+%04X", r)) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
