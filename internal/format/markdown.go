package format

import "strings"

// blockquoteIndent prefixes every non-blank line of a quotation.
const blockquoteIndent = "    "

// markdownRules produces simplified Markdown. Every kind with markup is
// allowed at any depth.
type markdownRules struct{}

var _ Rules = markdownRules{}

func (markdownRules) Allowed(Kind) KindSet { return allKinds }

func (markdownRules) Element(k Kind, content string) string {
	switch k {
	case KindH1, KindH2, KindH3, KindH4, KindH5:
		return strings.Repeat("#", headingLevel(k)) + " " + content + "\n\n"
	case KindP:
		return content + "\n\n"
	case KindHR:
		return "---\n\n"
	case KindBR:
		return " "
	case KindEm:
		return "'" + content + "'"
	case KindStrong:
		return "*" + content + "*"
	case KindI, KindB:
		return content
	case KindBlockquote:
		return indent(content, blockquoteIndent)
	case KindOther:
		return content
	default:
		return content
	}
}

func (markdownRules) Text(s string) (string, bool) {
	if s == "\n" {
		return "", false
	}
	return s, true
}

func (markdownRules) Beat() string { return "- - -\n\n" }

// indent adds prefix to the start of every line that is not blank.
func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s) + len(lines)*len(prefix))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}
