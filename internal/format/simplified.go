package format

import (
	"regexp"
	"strings"
)

var (
	asciiSpaceRun  = regexp.MustCompile(`[ \t\n\f\r]+`)
	spacedNewline  = regexp.MustCompile(` *\n *`)
	newlineRun     = regexp.MustCompile(`\n+`)
	blankParagraph = regexp.MustCompile(`<p> +</p>`)

	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// inlineKinds may appear inside headings and paragraphs.
var inlineKinds = Kinds(KindBR, KindEm, KindI, KindStrong, KindB)

// simplifiedRules produces HTML with headings, paragraphs, quotations and
// basic inline emphasis only.
type simplifiedRules struct{}

var _ Rules = simplifiedRules{}

func (simplifiedRules) Allowed(parent Kind) KindSet {
	switch parent {
	case KindOther:
		return allKinds
	case KindH1, KindH2, KindH3, KindH4, KindH5, KindP:
		return inlineKinds
	case KindBlockquote:
		return Kinds(KindP)
	case KindHR, KindBR, KindEm, KindI, KindStrong, KindB:
		return 0
	default:
		return 0
	}
}

func (simplifiedRules) Element(k Kind, content string) string {
	switch k {
	case KindH1, KindH2, KindH3, KindH4, KindH5, KindP:
		tag := k.String()
		return "<" + tag + ">" + content + "</" + tag + ">\n"
	case KindHR:
		return "<hr>"
	case KindBR:
		return "<br>\n"
	case KindEm, KindI, KindStrong, KindB:
		tag := k.String()
		return "<" + tag + ">" + content + "</" + tag + ">"
	case KindBlockquote:
		return "<blockquote>\n" + content + "\n</blockquote>\n"
	case KindOther:
		return content
	default:
		return content
	}
}

// Text collapses runs of ASCII whitespace. No-break spaces are kept.
func (simplifiedRules) Text(s string) (string, bool) {
	return textEscaper.Replace(asciiSpaceRun.ReplaceAllString(s, " ")), true
}

func (simplifiedRules) Beat() string { return "<!-- beat -->\n" }

// tidySimplified trims the rendered body, removes spaces around line breaks,
// drops blank lines and empties whitespace-only paragraphs.
func tidySimplified(s string) string {
	s = strings.TrimSpace(s)
	s = spacedNewline.ReplaceAllString(s, "\n")
	s = newlineRun.ReplaceAllString(s, "\n")
	return blankParagraph.ReplaceAllString(s, "<p></p>")
}
