package hints

// Notes:
// - ForVoikko tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func TestForVoikko_NotCompiled(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("VOIKKO_DICTIONARY_PATH", "")

	hint := ForVoikko(false)

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("expected hint prefix, got %q", hint)
	}
	for _, want := range []string{"-tags voikko", "sudo apt install libvoikko1 voikko-fi", "VOIKKO_DICTIONARY_PATH", "--backend native"} {
		if !strings.Contains(hint, want) {
			t.Errorf("expected %q in %q", want, hint)
		}
	}
}

func TestForVoikko_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("VOIKKO_DICTIONARY_PATH", "")

	hint := ForVoikko(true)

	if strings.Contains(hint, "-tags voikko") {
		t.Error("compiled binary should not be told to rebuild")
	}
	if !strings.Contains(hint, "apt-get install -y") {
		t.Errorf("expected container install hint, got %q", hint)
	}
	if strings.Contains(hint, "sudo") {
		t.Error("container hint should not use sudo")
	}
}

func TestForVoikko_DictionaryPathSet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("VOIKKO_DICTIONARY_PATH", "/opt/voikko")

	hint := ForVoikko(true)

	if strings.Contains(hint, "VOIKKO_DICTIONARY_PATH") {
		t.Error("should not suggest VOIKKO_DICTIONARY_PATH when already set")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with user path",
			paths:    []string{"book.yaml", "/home/u/.config/go-typeset/book.yaml"},
			contains: "create /home/u/.config/go-typeset/book.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fn        func([]string) string
		available []string
		wantEmpty bool
		contains  string
	}{
		{"formats empty", ForUnknownFormat, nil, true, ""},
		{"formats", ForUnknownFormat, []string{"html", "xhtml"}, false, "html, xhtml"},
		{"templates empty", ForTemplateNotFound, []string{}, true, ""},
		{"templates", ForTemplateNotFound, []string{"simplified_html", "xhtml"}, false, "simplified_html, xhtml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := tt.fn(tt.available)

			if tt.wantEmpty {
				if hint != "" {
					t.Errorf("expected empty hint, got %q", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForDictionary(t *testing.T) {
	t.Parallel()

	hint := ForDictionary("_")
	if !strings.Contains(hint, "hy_phen_ation") {
		t.Errorf("expected separator example, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForOutputDirectory(),
		ForOverwrite(),
		ForDictionary("-"),
		ForUnknownVariable(),
		ForUnknownFormat([]string{"markdown"}),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
