package hyphen

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/alnah/go-typeset/internal/punct"
)

func TestResolver_Word(t *testing.T) {
	t.Parallel()

	f := newFake(map[string]string{
		"talossa":    "  -  - ",
		"linja-auto": "   -  - - ",
		"hyvää":      "  -  ",
	})
	r := NewResolver(f, 5, false, withMark("_"))

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "plain word", token: "talossa", want: "ta_los_sa"},
		{name: "punctuation restored", token: "(talossa),", want: "(ta_los_sa),"},
		{name: "repair after hyphen", token: "linja-auto.", want: "lin_ja-au_to."},
		{name: "only punctuation", token: "...", want: "..."},
		{name: "unknown to service", token: "xyz", want: "xyz"},
		{name: "multibyte", token: "”hyvää”", want: "”hy_vää”"},
		{name: "invalid utf-8 kept", token: "(caf\xe9),", want: "(caf\xe9),"},
	}

	for _, tt := range tests {
		got, err := r.Word(tt.token)
		if err != nil {
			t.Fatalf("%s: Word(%q) unexpected error: %v", tt.name, tt.token, err)
		}
		if got != tt.want {
			t.Errorf("%s: Word(%q) = %q, want %q", tt.name, tt.token, got, tt.want)
		}
	}

	for _, opts := range f.configured {
		want := Options{MinWordLength: 5, HyphenateUnknown: false, NoUglyHyphenation: true}
		if opts != want {
			t.Errorf("configured %+v, want %+v", opts, want)
		}
	}
}

func TestResolver_RepairIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := newFake(map[string]string{"linja-auto": "   -  - - "})
	r := NewResolver(f, 5, false, WithLogger(logger))

	got, err := r.Word("linja-auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "lin" + SoftHyphen + "ja-au" + SoftHyphen + "to"; got != want {
		t.Errorf("Word = %q, want %q", got, want)
	}

	out := buf.String()
	if !strings.Contains(out, "hyphenation fixed") {
		t.Errorf("log = %q, want repair warning", out)
	}
	if !strings.Contains(out, "original=lin_ja-_au_to") || !strings.Contains(out, "fixed=lin_ja-au_to") {
		t.Errorf("log = %q, want original and fixed forms with _ marks", out)
	}
}

func TestResolver_DictionaryOverridesService(t *testing.T) {
	t.Parallel()

	dict, err := NewDictionary(map[string]string{"talo": "ta-lo"}, "-", language.Finnish)
	if err != nil {
		t.Fatal(err)
	}
	f := newFake(map[string]string{"talo": " -  "})
	r := NewResolver(f, 1, true, WithDictionary(dict), withMark("-"))

	got, err := r.Word("Talo,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ta-lo," {
		t.Errorf("Word(Talo,) = %q, want %q", got, "Ta-lo,")
	}
	if len(f.queried) != 0 {
		t.Errorf("service queried %q for a dictionary word", f.queried)
	}
}

func TestResolver_ServiceError(t *testing.T) {
	t.Parallel()

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()

		f := newFake(nil)
		f.err = errFake
		r := NewResolver(f, 5, false)
		if _, err := r.Word("talossa"); !errors.Is(err, ErrHyphenationService) {
			t.Errorf("error = %v, want ErrHyphenationService", err)
		}
	})

	t.Run("malformed pattern", func(t *testing.T) {
		t.Parallel()

		f := newFake(map[string]string{"talo": "--"})
		r := NewResolver(f, 1, false)
		if _, err := r.Text("iso talo"); !errors.Is(err, ErrHyphenationService) {
			t.Errorf("error = %v, want ErrHyphenationService", err)
		}
	})
}

func TestResolver_Text(t *testing.T) {
	t.Parallel()

	f := newFake(map[string]string{
		"talossa": "  -  - ",
		"kirja":   "   - ",
	})
	r := NewResolver(f, 5, false, withMark("_"))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "whitespace preserved", in: "  talossa\t\nkirja. ", want: "  ta_los_sa\t\nkir_ja. "},
		{name: "newline only", in: "\n", want: "\n"},
		{name: "empty", in: "", want: ""},
		{name: "existing marks replaced", in: "ta_lossa", want: "ta_los_sa"},
	}

	for _, tt := range tests {
		got, err := r.Text(tt.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: Text(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestResolver_Idempotent(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewSyllabifier(nil), 5, true)
	in := "Kirjastossa on hyvää, ”vanhaa” linja-autoa."

	once, err := r.Text(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := r.Text(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once != twice {
		t.Errorf("Text not idempotent: %q then %q", once, twice)
	}
	if Strip(once, SoftHyphen) != in {
		t.Errorf("Strip(Text(s)) = %q, want %q", Strip(once, SoftHyphen), in)
	}
}

func TestResolver_SafetyProperty(t *testing.T) {
	t.Parallel()

	r := NewResolver(NewSyllabifier(nil), 1, true)
	words := []string{
		"talo", "(talo)", "auto-", "-ko", "linja-auto", "”Niin…”", "vaa'an",
		"EU:ssa", "Äänestää", "hääyö", "123", "§12", "a", "--", "x-y-z",
		"caf\xe9", "(caf\xe9),", "ta\xfflossa",
	}

	for _, w := range words {
		got, err := r.Word(w)
		if err != nil {
			t.Fatalf("Word(%q) unexpected error: %v", w, err)
		}
		if Strip(got, SoftHyphen) != w {
			t.Errorf("Word(%q) = %q changes letters", w, got)
		}
		prev := rune(-1)
		for _, c := range got {
			if string(c) == SoftHyphen {
				if prev >= 0 && punct.IsPunct(prev) {
					t.Errorf("Word(%q) = %q has a mark after %q", w, got, prev)
				}
				continue
			}
			prev = c
		}
	}
}
