package hyphen

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-typeset/internal/punct"
)

// Repair deletes every mark that directly follows a punctuation character.
// Linguistic services place such marks inside hyphen-joined compounds, where
// a line break would leave a dangling "-" followed by another hyphen.
func Repair(s, mark string) string {
	if mark == "" || !strings.Contains(s, mark) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	afterPunct := false
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], mark) {
			if !afterPunct {
				b.WriteString(mark)
			}
			i += len(mark)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		afterPunct = punct.IsPunct(r)
		i += size
	}
	return b.String()
}

// Strip removes every occurrence of mark from s.
func Strip(s, mark string) string {
	if mark == "" {
		return s
	}
	return strings.ReplaceAll(s, mark, "")
}

// display renders marks as "_" for log output.
func display(s, mark string) string {
	if mark == "_" {
		return s
	}
	return strings.ReplaceAll(s, mark, "_")
}
