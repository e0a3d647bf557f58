package punct

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestIsPunct(t *testing.T) {
	t.Parallel()

	for _, r := range "!?:;.,()*+-/[]_…“”\"‘’'—–\u2011\u2212\u00a0" {
		if !IsPunct(r) {
			t.Errorf("IsPunct(%q) = false, want true", r)
		}
	}
	for _, r := range "aÄö9 \t\u00ad§@#" {
		if IsPunct(r) {
			t.Errorf("IsPunct(%q) = true, want false", r)
		}
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	all := All()
	if !strings.HasPrefix(all, "!?:;.,()*+-/[]_") {
		t.Errorf("All() = %q, want basic punctuation first", all)
	}
	for _, r := range all {
		if !IsPunct(r) {
			t.Errorf("All() contains %q which IsPunct rejects", r)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		policy Policy
		want   string
	}{
		{name: "keep is identity", input: "\"Hei...\" — sanoi", policy: Keep, want: "\"Hei...\" — sanoi"},
		{name: "typeset quotes", input: "\"Hei\" ja 'moi'", policy: Typeset, want: "”Hei” ja ’moi’"},
		{name: "typeset left quotes", input: "“Hei”", policy: Typeset, want: "”Hei”"},
		{name: "typeset ellipsis", input: "No...", policy: Typeset, want: "No…"},
		{name: "typeset dash", input: "a — b", policy: Typeset, want: "a – b"},
		{name: "typeset keeps no-break space", input: "10\u00a0km", policy: Typeset, want: "10\u00a0km"},
		{name: "plain quotes", input: "”Hei” ’moi’", policy: Plain, want: "\"Hei\" 'moi'"},
		{name: "plain ellipsis", input: "No…", policy: Plain, want: "No..."},
		{name: "plain hyphens", input: "a\u2011b \u22125", policy: Plain, want: "a-b -5"},
		{name: "plain no-break space", input: "10\u00a0km", policy: Plain, want: "10 km"},
		{name: "plain keeps en dash", input: "a — b – c", policy: Plain, want: "a – b – c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input, tt.policy); got != tt.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q", tt.input, tt.policy, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain words",
		"\"Quoted\" and 'single' ... — – \u2011 \u2212 \u00a0",
		"“Mixed” ‘marks’ …. ....",
		"....... ''\"\"",
	}

	for _, policy := range []Policy{Keep, Typeset, Plain} {
		for _, in := range inputs {
			once := Normalize(in, policy)
			twice := Normalize(once, policy)
			if once != twice {
				t.Errorf("Normalize not idempotent for %v on %q: %q then %q", policy, in, once, twice)
			}
		}
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{input: "keep", want: Keep},
		{input: "Typeset", want: Typeset},
		{input: "pretty", want: Typeset},
		{input: "plain", want: Plain},
		{input: "simplified", want: Plain},
		{input: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPolicy) {
				t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePolicy(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if parsed, _ := ParsePolicy(got.String()); parsed != got {
			t.Errorf("ParsePolicy(%q.String()) = %v, want %v", got, parsed, got)
		}
	}
}

func TestChecker(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewChecker(logger)

	c.Check("Hyvä § päivä ©")
	c.Check("toinen § rivi\u00ad, ok.")

	out := buf.String()
	if n := strings.Count(out, "unknown punctuation"); n != 2 {
		t.Errorf("warnings = %d, want 2\n%s", n, out)
	}
	if !strings.Contains(out, "unicode=U+00A7") {
		t.Errorf("output missing U+00A7: %s", out)
	}

	got := c.Unknown()
	want := []rune{'§', '©'}
	if string(got) != string(want) {
		t.Errorf("Unknown() = %q, want %q", string(got), string(want))
	}
}

func TestChecker_NilLogger(t *testing.T) {
	t.Parallel()

	c := NewChecker(nil)
	c.Check("@")
	if len(c.Unknown()) != 1 {
		t.Errorf("Unknown() = %q, want one rune", string(c.Unknown()))
	}
}
