package main

// Notes:
// - printUsage/printRunUsage: we test that required content is present, not
//   exact formatting.
// - Every flag registered on a run command must be documented in its usage.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	required := append([]string{"Usage: typeset", "Commands:"}, commands...)
	for _, s := range required {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintRunUsage - Every registered flag is documented
// ---------------------------------------------------------------------------

func TestPrintRunUsage(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{cmdReformat, cmdHyphenate} {
		t.Run(cmd, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printRunUsage(&buf, cmd)
			output := buf.String()

			if !strings.Contains(output, "Usage: typeset "+cmd) {
				t.Errorf("usage should start with the command line, got %q", output)
			}

			fs := newRunFlagSet(cmd, &runFlags{})
			fs.VisitAll(func(f *flag.Flag) {
				if !strings.Contains(output, "--"+f.Name) {
					t.Errorf("usage should document --%s", f.Name)
				}
				if f.Shorthand != "" && !strings.Contains(output, "-"+f.Shorthand+", --"+f.Name) {
					t.Errorf("usage should document -%s, --%s", f.Shorthand, f.Name)
				}
			})
		})
	}
}

func TestPrintRunUsage_HyphenationSection(t *testing.T) {
	t.Parallel()

	var reformat, hyphenate bytes.Buffer
	printRunUsage(&reformat, cmdReformat)
	printRunUsage(&hyphenate, cmdHyphenate)

	if strings.Contains(reformat.String(), "Hyphenation:") {
		t.Error("reformat usage should not list hyphenation flags")
	}
	if !strings.Contains(hyphenate.String(), "Hyphenation:") {
		t.Error("hyphenate usage should list hyphenation flags")
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Help topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no args shows main usage", nil, "Commands:", ""},
		{"reformat", []string{"reformat"}, "Usage: typeset reformat", ""},
		{"hyphenate", []string{"hyphenate"}, "Usage: typeset hyphenate", ""},
		{"formats", []string{"formats"}, "Usage: typeset formats", ""},
		{"doctor", []string{"doctor"}, "Usage: typeset doctor", ""},
		{"completion", []string{"completion"}, "Usage: typeset completion", ""},
		{"version", []string{"version"}, "Usage: typeset version", ""},
		{"help", []string{"help"}, "Usage: typeset help", ""},
		{"unknown topic", []string{"convert"}, "", "Unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			runHelp(tt.args, &Environment{Stdout: &stdout, Stderr: &stderr})

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
			if tt.wantStderr == "" && stderr.Len() > 0 {
				t.Errorf("stderr should be empty, got %q", stderr.String())
			}
		})
	}
}
