package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hyphen"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format":      {Values: format.Names()},
	"punctuation": {Values: []string{"keep", "typeset", "plain"}},
	"backend":     {Values: []string{hyphen.BackendAuto, hyphen.BackendVoikko, hyphen.BackendNative}},
	"log-format":  {Values: []string{"text", "json"}},

	// File flags with glob patterns
	"config":       {FileGlob: "*.yaml,*.yml"},
	"hyphenations": {FileGlob: "*.yaml,*.yml"},
	"lexicon":      {FileGlob: "*.txt"},

	// Directory flags
	"output":       {IsDir: true},
	"template-dir": {IsDir: true},
}

// inputFilePattern is the file argument glob for reformat and hyphenate.
const inputFilePattern = "*.html,*.htm,*.xhtml,*.md,*.markdown"

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool", "count":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the FlagSets the commands parse with.
func getCommands() []commandDef {
	var jsonOutput bool
	var configName string

	shells := []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

	return []commandDef{
		{
			Name:        cmdReformat,
			Desc:        "Rewrite documents into a target format",
			Flags:       extractFlagsFromFlagSet(newRunFlagSet(cmdReformat, &runFlags{})),
			TakesFiles:  true,
			FilePattern: inputFilePattern,
		},
		{
			Name:        cmdHyphenate,
			Desc:        "Reformat and insert soft hyphens",
			Flags:       extractFlagsFromFlagSet(newRunFlagSet(cmdHyphenate, &runFlags{})),
			TakesFiles:  true,
			FilePattern: inputFilePattern,
		},
		{
			Name: cmdFormats,
			Desc: "List output formats",
		},
		{
			Name:  cmdDoctor,
			Desc:  "Check backend, dictionaries and output setup",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&jsonOutput, &configName)),
		},
		{
			Name: cmdCompletion,
			Desc: "Generate shell completion script",
			Args: shells,
		},
		{
			Name: cmdVersion,
			Desc: "Show version information",
		},
		{
			Name: cmdHelp,
			Desc: "Show help for a command",
			Args: commands,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		generateBash(&b, cmds)
	case ShellZsh:
		generateZsh(&b, cmds)
	case ShellFish:
		generateFish(&b, cmds)
	case ShellPowerShell:
		generatePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

// flagNames returns the spellings of a flag, long form first.
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for typeset\n\n")
	b.WriteString("_typeset_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "        %s)\n", c.Name)

		var valued []flagDef
		var all []string
		for _, f := range c.Flags {
			all = append(all, flagNames(f)...)
			if f.Type == flagEnum || f.Type == flagFile || f.Type == flagDir {
				valued = append(valued, f)
			}
		}

		if len(valued) > 0 {
			b.WriteString("            case \"$prev\" in\n")
			for _, f := range valued {
				fmt.Fprintf(b, "                %s)\n", strings.Join(flagNames(f), "|"))
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(b, "                    COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(f.Values, " "))
				case flagDir:
					b.WriteString("                    COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
				default:
					b.WriteString("                    COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
				}
				b.WriteString("                    return\n")
				b.WriteString("                    ;;\n")
			}
			b.WriteString("            esac\n")
		}

		if len(all) > 0 {
			b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(all, " "))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _typeset_completions typeset\n")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text placed inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// zshAction returns the _arguments action for a valued flag.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf(":%s:_files -g \"*.(%s)\"", f.Long, strings.Join(globExtensions(f.FileGlob), "|"))
	case flagDir:
		return fmt.Sprintf(":%s:_files -/", f.Long)
	case flagBool:
		return ""
	default:
		return fmt.Sprintf(":%s: ", f.Long)
	}
}

func generateZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef typeset\n\n")
	b.WriteString("_typeset() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "        %s)\n", c.Name)
		b.WriteString("            _arguments -s \\\n")
		for _, f := range c.Flags {
			desc := zshEscape(f.Desc)
			action := zshAction(f)
			switch {
			case f.Long == "verbose":
				// Counted flag, may repeat.
				fmt.Fprintf(b, "                '*'{-%s,--%s}'[%s]' \\\n", f.Short, f.Long, desc)
			case f.Short != "":
				fmt.Fprintf(b, "                '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n",
					f.Short, f.Long, f.Short, f.Long, desc, action)
			default:
				fmt.Fprintf(b, "                '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "                '1:%s:(%s)'\n", c.Name, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(b, "                '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		default:
			b.WriteString("                '*: :'\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _typeset typeset\n")
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

func generateFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for typeset\n\n")
	b.WriteString("function __fish_typeset_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_typeset_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c typeset -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c typeset -n __fish_typeset_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_typeset_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c typeset -n %s", cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(b, "complete -c typeset -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			fmt.Fprintf(b, "complete -c typeset -n %s -F\n", cond)
		}
	}
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = psQuote(v)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# powershell completion for typeset\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName typeset -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	values := make(map[string][]string)
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		var names []string
		for _, f := range c.Flags {
			names = append(names, flagNames(f)...)
			if f.Type == flagEnum {
				for _, n := range flagNames(f) {
					values[n] = f.Values
				}
			}
		}
		if len(c.Args) > 0 {
			values[c.Name] = c.Args
		}
		fmt.Fprintf(b, "        %s = %s\n", psQuote(c.Name), psArray(names))
	}
	b.WriteString("    }\n\n")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("    $values = @{\n")
	for _, k := range keys {
		fmt.Fprintf(b, "        %s = %s\n", psQuote(k), psArray(values[k]))
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') {
        $elements = @($elements | Select-Object -SkipLast 1)
    }

    if ($elements.Count -le 1) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $cmd = $elements[1]
    $prev = $elements[-1]
    if ($values.ContainsKey($prev)) {
        $values[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {
        $flags[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
    }
}
`)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	if args[0] == "-h" || args[0] == "--help" {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typeset completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(typeset completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(typeset completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    typeset completion fish > ~/.config/fish/completions/typeset.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    typeset completion powershell | Out-String | Invoke-Expression")
}
