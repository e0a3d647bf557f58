// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-typeset/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForVoikko returns hints for an unavailable Voikko backend. compiled tells
// whether the binary was built with the voikko tag.
func ForVoikko(compiled bool) string {
	var hints []string

	if !compiled {
		hints = append(hints, "rebuild with -tags voikko")
	}

	if IsInContainer() {
		hints = append(hints, "apt-get install -y libvoikko1 voikko-fi in the image")
	} else {
		hints = append(hints, "install libvoikko1 and voikko-fi (sudo apt install libvoikko1 voikko-fi)")
	}

	if os.Getenv("VOIKKO_DICTIONARY_PATH") == "" {
		hints = append(hints, "set voikko_path or VOIKKO_DICTIONARY_PATH for a custom dictionary")
	}

	hints = append(hints, "or use --backend native")
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-typeset/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-typeset) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-typeset") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for a missing or read-only output directory.
func ForOutputDirectory() string {
	return format("create the directory first or point --output at a writable one")
}

// ForOverwrite returns hints for refused overwrites.
func ForOverwrite() string {
	return format("use --overwrite or set overwrite: true")
}

// ForUnknownFormat returns hints listing the available output formats.
func ForUnknownFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + " (any unambiguous prefix works)")
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or set templates in the config")
}

// ForDictionary returns hints for malformed hyphenation dictionaries.
func ForDictionary(separator string) string {
	return format("entries look like \"word: hy" + separator + "phen" + separator + "ation\" with the same letters on both sides")
}

// ForUnknownVariable returns hints for templates naming an undefined variable.
func ForUnknownVariable() string {
	return format("define it under variables: in the config or write {{ and }} for literal braces")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
