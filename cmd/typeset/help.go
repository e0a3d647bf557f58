package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typeset <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  reformat     Rewrite documents into a target format")
	fmt.Fprintln(w, "  hyphenate    Reformat and insert soft hyphens")
	fmt.Fprintln(w, "  formats      List output formats")
	fmt.Fprintln(w, "  doctor       Check backend, dictionaries and output setup")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'typeset help <command>' for details on a specific command.")
}

// printRunUsage prints usage for reformat and hyphenate. The hyphenation
// section is only shown for hyphenate.
func printRunUsage(w io.Writer, cmd string) {
	fmt.Fprintf(w, "Usage: typeset %s <input>... [flags]\n", cmd)
	fmt.Fprintln(w)
	if cmd == cmdHyphenate {
		fmt.Fprintln(w, "Reformat documents and insert soft hyphens into every word.")
	} else {
		fmt.Fprintln(w, "Rewrite HTML or Markdown documents into a target format.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or glob pattern (** supported)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <name>       Output format (see 'typeset formats')")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to input)")
	fmt.Fprintln(w, "      --output-name <s>     Name template: {name}, {ext}, {date}, {time},")
	fmt.Fprintln(w, "                            {output_format}, auto, auto:FORMAT")
	fmt.Fprintln(w, "      --overwrite           Replace existing output files")
	fmt.Fprintln(w, "  -n, --dry-run             Log what would be written, write nothing")
	fmt.Fprintln(w, "      --strict              Fail on elements the format does not allow")
	fmt.Fprintln(w, "      --punctuation <s>     Punctuation: keep, typeset, plain")
	fmt.Fprintln(w, "      --template-dir <dir>  Directory with output templates")
	fmt.Fprintln(w)
	if cmd == cmdHyphenate {
		fmt.Fprintln(w, "Hyphenation:")
		fmt.Fprintln(w, "  -b, --backend <s>         Backend: auto, voikko, native")
		fmt.Fprintln(w, "      --language <s>        Hyphenation language (default: fi)")
		fmt.Fprintln(w, "      --hyphenations <path> Known hyphenations YAML file")
		fmt.Fprintln(w, "      --separator <s>       Separator used in YAML files (default: _)")
		fmt.Fprintln(w, "      --lexicon <path>      Word list for the native backend")
		fmt.Fprintln(w, "      --min-length <n>      Shortest word hyphenated")
		fmt.Fprintln(w, "      --allow-unknown       Hyphenate words the backend does not know")
		fmt.Fprintln(w, "  -l, --list-unknown        Print unknown words as YAML, write nothing")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             More log output (-vv for debug)")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TYPESET_* variables override the config file; flags override both.")
	fmt.Fprintln(w, "  .env.local and .env in the working directory are loaded first.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdReformat, cmdHyphenate:
		printRunUsage(env.Stdout, args[0])
	case cmdFormats:
		fmt.Fprintln(env.Stdout, "Usage: typeset formats")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List output formats with their extensions and templates.")
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: typeset version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: typeset help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
