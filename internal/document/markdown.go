package document

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/renderer/html"
)

// beatPlaceholder stands in for a scene break while goldmark renders the
// document. It is a Private Use Area character, so it passes through goldmark
// unchanged without enabling raw HTML.
const beatPlaceholder = "\ue000"

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
</head>
<body>
%s</body>
</html>
`

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	beatParagraph      = regexp.MustCompile(`<p>` + beatPlaceholder + `</p>`)
)

// MarkdownConverter renders Markdown to a standalone HTML document.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders CommonMark with goldmark. Fenced code blocks are
// highlighted by chroma using CSS classes.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

var _ MarkdownConverter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter creates a GoldmarkConverter.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early when ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(PreprocessMarkdown(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		body := beatParagraph.ReplaceAllString(buf.String(), "<!-- "+BeatComment+" -->")
		done <- result{html: fmt.Sprintf(htmlTemplate, body)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// PreprocessMarkdown normalizes line endings, turns beat lines into
// placeholder paragraphs and limits blank lines to one.
func PreprocessMarkdown(content string) string {
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = markBeats(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// markBeats replaces every line starting with "- - -" (indented at most
// three spaces, outside fenced code) with a placeholder paragraph.
func markBeats(content string) string {
	lines := strings.Split(content, "\n")
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := len(line) - len(trimmed)

		if fence != "" {
			if indent < 4 && strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if indent >= 4 {
			continue
		}
		if marker := fenceMarker(trimmed); marker != "" {
			fence = marker
			continue
		}
		if strings.HasPrefix(trimmed, "- - -") {
			lines[i] = "\n" + beatPlaceholder + "\n"
		}
	}
	return strings.Join(lines, "\n")
}

// fenceMarker returns the opening run of a fenced code block, or "".
func fenceMarker(line string) string {
	for _, c := range []string{"`", "~"} {
		n := len(line) - len(strings.TrimLeft(line, c))
		if n >= 3 {
			return line[:n]
		}
	}
	return ""
}
