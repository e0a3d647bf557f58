package format

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentencePerLine puts each sentence of every Markdown paragraph on its own
// line. Headings, thematic breaks and scene breaks are left alone. Lines
// created inside a quotation keep its indentation.
func SentencePerLine(md string) string {
	lines := strings.SplitAfter(md, "\n")
	var b strings.Builder
	b.Grow(len(md) + len(md)/16)
	for _, line := range lines {
		body := strings.TrimRight(line, "\n")
		trimmed := strings.TrimLeft(body, " ")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
			trimmed == "---" || trimmed == "- - -" {
			b.WriteString(line)
			continue
		}
		prefix := body[:len(body)-len(trimmed)]
		b.WriteString(prefix)
		b.WriteString(splitSentences(trimmed, prefix))
		b.WriteString(line[len(body):])
	}
	return b.String()
}

// splitSentences replaces the spaces after each sentence end with a newline
// followed by prefix.
func splitSentences(s, prefix string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isSentenceEnd(r) {
			b.WriteRune(r)
			i += size
			continue
		}

		// Copy the terminator run and any closing quotes or brackets.
		j := i
		for j < len(s) {
			r, size := utf8.DecodeRuneInString(s[j:])
			if !isSentenceEnd(r) && !isCloser(r) {
				break
			}
			j += size
		}
		b.WriteString(s[i:j])

		k := j
		for k < len(s) && s[k] == ' ' {
			k++
		}
		next, _ := utf8.DecodeRuneInString(s[k:])
		if k > j && k < len(s) && opensSentence(next) {
			b.WriteString("\n")
			b.WriteString(prefix)
			i = k
			continue
		}
		i = j
	}
	return b.String()
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', '»', ')', ']', '*':
		return true
	}
	return false
}

// opensSentence reports whether r can start a new sentence.
func opensSentence(r rune) bool {
	if unicode.IsUpper(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '"', '\'', '“', '”', '‘', '’', '«', '»', '–', '—', '-', '(', '*':
		return true
	}
	return false
}
