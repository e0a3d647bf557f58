package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/alnah/go-typeset/internal/format"
)

// runFormats lists the output formats as a table.
func runFormats(args []string, env *Environment) error {
	if len(args) > 0 {
		if args[0] == "-h" || args[0] == "--help" {
			runHelp([]string{cmdFormats}, env)
			return nil
		}
		return fmt.Errorf("%w: formats takes no arguments", ErrInvalidFlags)
	}

	t := table.NewWriter()
	t.SetOutputMirror(env.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"NAME", "DESCRIPTION", "EXTENSION", "TEMPLATE", "PUNCTUATION"})
	for _, f := range format.All() {
		tmpl := f.Template
		if tmpl == "" {
			tmpl = "-"
		}
		t.AppendRow(table.Row{f.Name, f.Description, f.Extension, tmpl, f.Punctuation.String()})
	}
	t.Render()
	return nil
}
