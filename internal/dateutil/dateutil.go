// Package dateutil formats dates and times with user-friendly tokens.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFormat indicates an invalid date or time format string.
var ErrInvalidFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length to prevent abuse.
const MaxFormatLength = 50

// Default formats for the date and time output name fields.
const (
	DefaultDateFormat = "YYYY-MM-DD"
	DefaultTimeFormat = "HHmmss"
)

// tokens maps user-friendly tokens to Go time layout components.
// Ordered by length descending for greedy matching. Tokens are case
// sensitive: MM is the month, mm the minute.
var tokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"compact":  "YYYYMMDD",
	"clock":    "HH:mm:ss",
}

// part is either a literal or a single Go layout component.
type part struct {
	literal string
	goFmt   string
}

// Layout is a parsed format.
type Layout struct {
	parts []part
}

// Parse parses a format string or preset name.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss.
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidFormat if the format is empty, too long, or has unclosed
// brackets.
func Parse(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidFormat)
	}
	if len(format) > MaxFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidFormat, MaxFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	var l Layout
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			l.parts = append(l.parts, part{literal: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidFormat, i)
			}
			literal.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				flush()
				l.parts = append(l.parts, part{goFmt: t.goFmt})
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			literal.WriteByte(format[i])
			i++
		}
	}
	flush()
	return l, nil
}

// Format renders t. Literal text is copied as is, so digits and words that
// happen to be Go layout elements are never reinterpreted.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, p := range l.parts {
		if p.goFmt != "" {
			b.WriteString(t.Format(p.goFmt))
		} else {
			b.WriteString(p.literal)
		}
	}
	return b.String()
}

// Format parses format and renders t with it.
func Format(t time.Time, format string) (string, error) {
	l, err := Parse(format)
	if err != nil {
		return "", err
	}
	return l.Format(t), nil
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for variable values.
//   - "auto" → current date in YYYY-MM-DD format
//   - "auto:FORMAT" → current date in a custom format (e.g., "auto:DD/MM/YYYY")
//   - "auto:preset" → current date using a named preset
//   - any other value → returned unchanged
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	if lower == "auto" {
		return Format(t, DefaultDateFormat)
	}
	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidFormat, value)
	}

	formatPart := value[len("auto:"):]
	if formatPart == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidFormat)
	}
	return Format(t, formatPart)
}
