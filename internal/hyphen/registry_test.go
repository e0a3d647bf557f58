package hyphen

import (
	"bytes"
	"testing"

	"golang.org/x/text/language"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if !reg.Add("talossa", "ta_los_sa") {
		t.Error("first Add returned false")
	}
	if reg.Add("talossa", "tal_os_sa") {
		t.Error("second Add returned true")
	}
	reg.Add("auto", "au_to")

	if got, _ := reg.Guess("talossa"); got != "ta_los_sa" {
		t.Errorf("Guess(talossa) = %q, want first guess", got)
	}
	words := reg.Words()
	if len(words) != 2 || words[0] != "auto" || words[1] != "talossa" {
		t.Errorf("Words() = %q, want [auto talossa]", words)
	}
}

func TestRegistry_WriteYAML(t *testing.T) {
	t.Parallel()

	t.Run("sorted mapping", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		reg.Add("talossa", "ta_los_sa")
		reg.Add("auto", "au_to")

		var buf bytes.Buffer
		if err := reg.WriteYAML(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "auto: au_to\ntalossa: ta_los_sa\n"
		if buf.String() != want {
			t.Errorf("WriteYAML = %q, want %q", buf.String(), want)
		}
	})

	t.Run("empty registry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewRegistry().WriteYAML(&buf); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "{}\n" {
			t.Errorf("WriteYAML = %q, want {}", buf.String())
		}
	})

	t.Run("dump loads as dictionary", func(t *testing.T) {
		t.Parallel()

		reg := NewRegistry()
		reg.Add("talossa", "ta_los_sa")

		var buf bytes.Buffer
		if err := reg.WriteYAML(&buf); err != nil {
			t.Fatal(err)
		}
		d, err := ParseDictionary(buf.Bytes(), DefaultSeparator, language.Finnish)
		if err != nil {
			t.Fatalf("ParseDictionary: %v", err)
		}
		if got, ok := d.Lookup("talossa", "-"); !ok || got != "ta-los-sa" {
			t.Errorf("Lookup = %q, %v; want ta-los-sa, true", got, ok)
		}
	})
}
