package typeset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-typeset/internal/binder"
	"github.com/alnah/go-typeset/internal/config"
	"github.com/alnah/go-typeset/internal/document"
	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hyphen"
)

const chapter = `<html lang="fi"><head><title>Luku</title>` +
	`<meta name="author" content="Aleksis Kivi"></head>` +
	`<body><h1>Otsikko</h1><p>Kissa istuu talossa.</p></body></html>`

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Backend = hyphen.BackendNative
	return cfg
}

func newPipeline(t *testing.T, cfg *config.Config, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	p, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// visible makes soft hyphens readable in failure messages.
func visible(s string) string {
	return strings.ReplaceAll(s, hyphen.SoftHyphen, "-")
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		p := newPipeline(t, nil)
		if p.Format().Name != format.Markdown {
			t.Errorf("Format() = %s, want markdown", p.Format().Name)
		}
		if p.Mode() != ModeReformat {
			t.Errorf("Mode() = %v, want reformat", p.Mode())
		}
		if p.BackendName() != "" {
			t.Errorf("reformat should not open a backend, got %q", p.BackendName())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.OutputFormat = "pdf"
		_, err := New(cfg)
		if !errors.Is(err, format.ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("missing output directory", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.OutputPath = filepath.Join(t.TempDir(), "missing")
		_, err := New(cfg)
		if !errors.Is(err, ErrOutputDirectory) {
			t.Errorf("error = %v, want ErrOutputDirectory", err)
		}
	})

	t.Run("output path is a file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.OutputPath = writeFile(t, t.TempDir(), "file.txt", "")
		_, err := New(cfg)
		if !errors.Is(err, ErrOutputDirectory) {
			t.Errorf("error = %v, want ErrOutputDirectory", err)
		}
	})

	t.Run("unreadable hyphenations file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.HyphenationsFile = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := New(cfg, WithMode(ModeHyphenate))
		if !errors.Is(err, ErrLoadDictionary) {
			t.Errorf("error = %v, want ErrLoadDictionary", err)
		}
	})

	t.Run("invalid hyphenations entry", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.HyphenationsFile = writeFile(t, t.TempDir(), "hyph.yaml", "talo: ka_lo\n")
		_, err := New(cfg, WithMode(ModeHyphenate))
		if !errors.Is(err, hyphen.ErrInvalidDictionary) {
			t.Errorf("error = %v, want ErrInvalidDictionary", err)
		}
	})

	t.Run("missing lexicon", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.LexiconFile = filepath.Join(t.TempDir(), "missing.txt")
		_, err := New(cfg, WithMode(ModeHyphenate))
		if !errors.Is(err, ErrLoadLexicon) {
			t.Errorf("error = %v, want ErrLoadLexicon", err)
		}
	})

	t.Run("native backend opened for hyphenation", func(t *testing.T) {
		t.Parallel()
		p := newPipeline(t, testConfig(t), WithMode(ModeHyphenate))
		if p.BackendName() != hyphen.BackendNative {
			t.Errorf("BackendName() = %q, want native", p.BackendName())
		}
	})

	t.Run("list_unknown_mode switches hyphenate to listing", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.ListUnknownMode = true
		p := newPipeline(t, cfg, WithMode(ModeHyphenate))
		if p.Mode() != ModeListUnknown {
			t.Errorf("Mode() = %v, want list-unknown", p.Mode())
		}
		if p.Registry() == nil {
			t.Error("Registry() = nil in list mode")
		}
	})
}

func TestMode_String(t *testing.T) {
	t.Parallel()

	tests := map[Mode]string{
		ModeReformat:    "reformat",
		ModeHyphenate:   "hyphenate",
		ModeListUnknown: "list-unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConvert_Reformat(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, testConfig(t))
	out, err := p.Convert(context.Background(), Input{Path: "luku1.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if out.Name != "luku1_reformatted.md" {
		t.Errorf("Name = %q, want luku1_reformatted.md", out.Name)
	}
	want := "# Otsikko\n\nKissa istuu talossa.\n\n"
	if out.Content != want {
		t.Errorf("Content = %q, want %q", out.Content, want)
	}
}

func TestConvert_Hyphenate(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, testConfig(t), WithMode(ModeHyphenate))
	out, err := p.Convert(context.Background(), Input{Path: "luku1.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(out.Content, "Kis\u00adsa is\u00adtuu ta\u00adlos\u00adsa.") {
		t.Errorf("Content = %q, want hyphenated paragraph", visible(out.Content))
	}
	if got := strings.ReplaceAll(out.Content, hyphen.SoftHyphen, ""); got != "# Otsikko\n\nKissa istuu talossa.\n\n" {
		t.Errorf("removing marks gives %q, want the reformatted text", got)
	}
}

func TestConvert_HyphenateKeepsInvalidUTF8(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, testConfig(t), WithMode(ModeHyphenate))
	out, err := p.Convert(context.Background(), Input{Path: "a.md", Data: []byte("Kissa caf\xe9, talossa.\n")})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(out.Content, "caf\xe9,") {
		t.Errorf("Content = %q, want the original bytes kept", out.Content)
	}
	if got := strings.ReplaceAll(out.Content, hyphen.SoftHyphen, ""); got != "Kissa caf\xe9, talossa.\n\n" {
		t.Errorf("removing marks gives %q, want the input text", got)
	}
}

func TestConvert_HyphenateIdempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.OutputFormat = format.HTML
	p := newPipeline(t, cfg, WithMode(ModeHyphenate))

	first, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("first Convert() error = %v", err)
	}
	second, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(first.Content)})
	if err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	if first.Content != second.Content {
		t.Errorf("hyphenating twice changed output:\n%q\n%q", visible(first.Content), visible(second.Content))
	}
}

func TestConvert_DictionaryOverride(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HyphenationsFile = writeFile(t, t.TempDir(), "hyph.yaml", "talossa: talo_ssa\n")
	p := newPipeline(t, cfg, WithMode(ModeHyphenate))

	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(out.Content, "talo\u00adssa.") {
		t.Errorf("Content = %q, want dictionary hyphenation talo-ssa", visible(out.Content))
	}
}

func TestConvert_ListUnknown(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.LexiconFile = writeFile(t, t.TempDir(), "lexicon.txt", "kissa\notsikko\n")
	p := newPipeline(t, cfg, WithMode(ModeListUnknown))

	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Collected != 2 {
		t.Errorf("Collected = %d, want 2", out.Collected)
	}
	if out.Content != "" || out.Name != "" {
		t.Errorf("list mode should produce no output, got %+v", out)
	}

	reg := p.Registry()
	for word, want := range map[string]string{"istuu": "is_tuu", "talossa": "ta_los_sa"} {
		if got, ok := reg.Guess(word); !ok || got != want {
			t.Errorf("Guess(%q) = %q, %v; want %q", word, got, ok, want)
		}
	}
	if reg.Has("Kissa") {
		t.Error("known word Kissa should not be listed")
	}

	var buf bytes.Buffer
	if err := p.WriteUnknown(&buf); err != nil {
		t.Fatalf("WriteUnknown() error = %v", err)
	}
	dump := buf.String()
	if strings.Index(dump, "istuu") > strings.Index(dump, "talossa") {
		t.Errorf("dump not sorted: %q", dump)
	}
}

func TestConvert_ListUnknownMinLength(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.LexiconFile = writeFile(t, t.TempDir(), "lexicon.txt", "kissa\notsikko\n")
	cfg.UnknownMinLength = 6
	p := newPipeline(t, cfg, WithMode(ModeListUnknown))

	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Collected != 1 {
		t.Errorf("Collected = %d, want 1", out.Collected)
	}
	if p.Registry().Has("istuu") {
		t.Error("istuu is shorter than unknown_min_length and should not be listed")
	}
	if !p.Registry().Has("talossa") {
		t.Error("talossa should be listed")
	}
}

func TestConvert_Template(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.OutputFormat = format.XHTML
	cfg.Templates.XHTML = "<t>{title}|{author}|{language}|{series}|{date}|{content}</t>"
	cfg.Variables = map[string]string{"series": "Seitsemän veljestä"}
	p := newPipeline(t, cfg)

	out, err := p.Convert(context.Background(), Input{Path: "luku1.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := "<t>Luku|Aleksis Kivi|fi|Seitsemän veljestä|2024-03-05|<h1>Otsikko</h1><p>Kissa istuu talossa.</p></t>"
	if out.Content != want {
		t.Errorf("Content = %q, want %q", out.Content, want)
	}
	if out.Name != "luku1_reformatted.xhtml" {
		t.Errorf("Name = %q", out.Name)
	}
}

func TestConvert_EmbeddedTemplate(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.OutputFormat = format.SimplifiedHTML
	p := newPipeline(t, cfg)

	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for _, want := range []string{`<html lang="fi">`, "<title>Luku</title>", `content="Aleksis Kivi"`, "<h1>Otsikko</h1>"} {
		if !strings.Contains(out.Content, want) {
			t.Errorf("Content missing %q:\n%s", want, out.Content)
		}
	}
}

func TestConvert_TemplateDefaultsLanguage(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.OutputFormat = format.XHTML
	cfg.Templates.XHTML = "{language}|{title}|{author}"
	p := newPipeline(t, cfg)

	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte("<p>teksti</p>")})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Content != "en||" {
		t.Errorf("Content = %q, want en||", out.Content)
	}
}

func TestConvert_UnknownTemplateVariable(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.OutputFormat = format.XHTML
	cfg.Templates.XHTML = "{content}{publisher}"
	p := newPipeline(t, cfg)

	_, err := p.Convert(context.Background(), Input{Path: "a.html", Data: []byte(chapter)})
	if !errors.Is(err, binder.ErrUnknownVariable) {
		t.Fatalf("error = %v, want ErrUnknownVariable", err)
	}
	var uerr *binder.UnknownVariableError
	if !errors.As(err, &uerr) || uerr.Name != "publisher" {
		t.Errorf("error = %v, want UnknownVariableError for publisher", err)
	}
}

func TestConvert_OutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
		wantErr  error
	}{
		{name: "default", template: "{name}{ext}", want: "luku1_reformatted.md"},
		{name: "date and time", template: "{name}-{date}-{time}{ext}", want: "luku1-2024-03-05-140709_reformatted.md"},
		{name: "config entry", template: "{name}.{output_format}", want: "luku1.markdown"},
		{name: "variable", template: "{series}_{name}{ext}", vars: map[string]string{"series": "kivi"}, want: "kivi_luku1_reformatted.md"},
		{name: "auto date variable", template: "{stamp}_{name}", vars: map[string]string{"stamp": "auto:YYYYMMDD"}, want: "20240305_luku1"},
		{name: "escaped braces", template: "{{draft}}{name}", want: "{draft}luku1"},
		{name: "unknown field", template: "{name}{volume}", wantErr: binder.ErrUnknownVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)
			cfg.OutputName = tt.template
			cfg.Variables = tt.vars
			p := newPipeline(t, cfg)

			out, err := p.Convert(context.Background(), Input{Path: "in/luku1.html", Data: []byte(chapter)})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrOutputName) {
					t.Errorf("error = %v, want %v and ErrOutputName", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if out.Name != tt.want {
				t.Errorf("Name = %q, want %q", out.Name, tt.want)
			}
		})
	}
}

func TestConvert_Punctuation(t *testing.T) {
	t.Parallel()

	input := []byte(`<p>"Hei" ... sanoi hän – ja lähti</p>`)

	tests := []struct {
		name   string
		format string
		policy string
		want   string
	}{
		{name: "markdown defaults to plain", format: format.Markdown, want: "\"Hei\" ... sanoi hän – ja lähti\n\n"},
		{name: "typeset on request", format: format.Markdown, policy: "typeset", want: "”Hei” … sanoi hän – ja lähti\n\n"},
		{name: "xhtml keeps by default", format: format.XHTML, want: `<p>&#34;Hei&#34; ... sanoi hän – ja lähti</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)
			cfg.OutputFormat = tt.format
			cfg.Punctuation = tt.policy
			cfg.Templates.XHTML = "{content}"
			p := newPipeline(t, cfg)

			out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: input})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if out.Content != tt.want {
				t.Errorf("Content = %q, want %q", out.Content, tt.want)
			}
		})
	}
}

func TestConvert_Strict(t *testing.T) {
	t.Parallel()

	input := []byte(`<body><p>ennen</p><script>x()</script><p>jälkeen</p></body>`)

	cfg := testConfig(t)
	p := newPipeline(t, cfg)
	out, err := p.Convert(context.Background(), Input{Path: "a.html", Data: input})
	if err != nil {
		t.Fatalf("lenient Convert() error = %v", err)
	}
	if want := "ennen\n\nx()jälkeen\n\n"; out.Content != want {
		t.Errorf("lenient Content = %q, want %q", out.Content, want)
	}

	strict := testConfig(t)
	strict.StrictElementMode = true
	ps := newPipeline(t, strict)
	_, err = ps.Convert(context.Background(), Input{Path: "a.html", Data: input})
	if !errors.Is(err, format.ErrUnsupportedElement) {
		t.Errorf("strict error = %v, want ErrUnsupportedElement", err)
	}
}

func TestConvert_Markdown(t *testing.T) {
	t.Parallel()

	input := "---\ntitle: Luku\nlang: FI\n---\n# Otsikko\n\nYksi.\n\n- - -\n\nKaksi.\n"
	cfg := testConfig(t)
	cfg.OutputFormat = format.XHTML
	cfg.Templates.XHTML = "{title}|{language}"
	p := newPipeline(t, cfg)

	out, err := p.Convert(context.Background(), Input{Path: "luku.md", Data: []byte(input)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Content != "Luku|fi" {
		t.Errorf("Content = %q, want Luku|fi", out.Content)
	}

	md := testConfig(t)
	pm := newPipeline(t, md)
	out, err = pm.Convert(context.Background(), Input{Path: "luku.md", Data: []byte(input)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(out.Content, "Yksi.\n\n- - -\n\nKaksi.") {
		t.Errorf("Content = %q, want scene break between paragraphs", out.Content)
	}
}

func TestConvert_UnsupportedInput(t *testing.T) {
	t.Parallel()

	p := newPipeline(t, testConfig(t))
	_, err := p.Convert(context.Background(), Input{Path: "notes.txt", Data: []byte("x")})
	if !errors.Is(err, document.ErrUnsupportedInput) {
		t.Errorf("error = %v, want ErrUnsupportedInput", err)
	}
}
