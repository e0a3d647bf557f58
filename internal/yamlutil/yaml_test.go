package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-typeset/internal/yamlutil"
)

type settings struct {
	MinWordLength int    `yaml:"min_word_length"`
	OutputFormat  string `yaml:"output_format"`
	AllowUnknown  bool   `yaml:"allow_unknown_words"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses configuration and dictionaries
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("struct", func(t *testing.T) {
		t.Parallel()

		var s settings
		err := yamlutil.Unmarshal([]byte("min_word_length: 6\noutput_format: xhtml\nallow_unknown_words: true"), &s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.MinWordLength != 6 || s.OutputFormat != "xhtml" || !s.AllowUnknown {
			t.Errorf("settings = %+v", s)
		}
	})

	t.Run("dictionary with finnish words", func(t *testing.T) {
		t.Parallel()

		var dict map[string]string
		err := yamlutil.Unmarshal([]byte("talo: ta_lo\nlähteä: läh_te_ä\n"), &dict)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dict["lähteä"] != "läh_te_ä" {
			t.Errorf("dict[lähteä] = %q, want %q", dict["lähteä"], "läh_te_ä")
		}
	})

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "nil data", data: nil, dest: &settings{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &settings{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("output_format: md"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("syntax error has prefix", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.Unmarshal([]byte("talo: [unclosed"), &map[string]string{})
		if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %v, want yamlutil prefix", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown configuration keys
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s settings
	if err := yamlutil.UnmarshalStrict([]byte("min_word_length: 4"), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MinWordLength != 4 {
		t.Errorf("MinWordLength = %d, want 4", s.MinWordLength)
	}

	err := yamlutil.UnmarshalStrict([]byte("min_word_lenght: 4"), &settings{})
	if err == nil {
		t.Fatal("expected error for misspelled key, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want yamlutil prefix", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshalSorted - Deterministic word list output
// ---------------------------------------------------------------------------

func TestMarshalSorted(t *testing.T) {
	t.Parallel()

	t.Run("keys sorted", func(t *testing.T) {
		t.Parallel()

		data, err := yamlutil.MarshalSorted(map[string]string{
			"talossa":  "ta_los_sa",
			"auto":     "au_to",
			"kirjasto": "kir_jas_to",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := string(data)
		want := "auto: au_to\nkirjasto: kir_jas_to\ntalossa: ta_los_sa\n"
		if got != want {
			t.Errorf("MarshalSorted = %q, want %q", got, want)
		}
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()

		data, err := yamlutil.MarshalSorted(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "{}\n" {
			t.Errorf("MarshalSorted(nil) = %q, want %q", data, "{}\n")
		}
	})

	t.Run("output parses back", func(t *testing.T) {
		t.Parallel()

		in := map[string]string{"öljy": "öl_jy", "yes": "ye_s"}
		data, err := yamlutil.MarshalSorted(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out map[string]string
		if err := yamlutil.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		for k, v := range in {
			if out[k] != v {
				t.Errorf("out[%q] = %q, want %q", k, out[k], v)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestSplitFrontMatter - Markdown metadata block
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       string
		wantFront string
		wantBody  string
		wantNil   bool
	}{
		{
			name:      "front matter present",
			doc:       "---\ntitle: Kirja\nlang: fi\n---\n# Luku\n",
			wantFront: "title: Kirja\nlang: fi\n",
			wantBody:  "# Luku\n",
		},
		{
			name:      "trailing blanks on fences",
			doc:       "--- \r\ntitle: X\n---\t\nbody",
			wantFront: "title: X\n",
			wantBody:  "body",
		},
		{
			name:      "closing fence at end of file",
			doc:       "---\ntitle: X\n---",
			wantFront: "title: X\n",
			wantBody:  "",
		},
		{
			name:     "no opening fence",
			doc:      "# Luku\n---\n",
			wantBody: "# Luku\n---\n",
			wantNil:  true,
		},
		{
			name:     "unclosed fence",
			doc:      "---\ntitle: X\n",
			wantBody: "---\ntitle: X\n",
			wantNil:  true,
		},
		{
			name:     "beat marker is not a fence",
			doc:      "- - -\ntext\n",
			wantBody: "- - -\ntext\n",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			front, body := yamlutil.SplitFrontMatter([]byte(tt.doc))
			if tt.wantNil && front != nil {
				t.Errorf("front = %q, want nil", front)
			}
			if !tt.wantNil && string(front) != tt.wantFront {
				t.Errorf("front = %q, want %q", front, tt.wantFront)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Modifies the package-level MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 32
	data := []byte("talo: ta_lo\n" + strings.Repeat("#", 40))

	err := yamlutil.Unmarshal(data, &map[string]string{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal error = %v, want ErrInputTooLarge", err)
	}
	err = yamlutil.UnmarshalStrict(data, &map[string]string{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict error = %v, want ErrInputTooLarge", err)
	}
	if !strings.Contains(err.Error(), "max 32") {
		t.Errorf("error = %q, want max size", err)
	}
}
