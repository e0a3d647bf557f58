package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdReformat   = "reformat"
	cmdHyphenate  = "hyphenate"
	cmdFormats    = "formats"
	cmdDoctor     = "doctor"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

// Sentinel errors for command dispatch.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidFlags   = errors.New("invalid flags")
)

var commands = []string{
	cmdReformat, cmdHyphenate, cmdFormats, cmdDoctor,
	cmdVersion, cmdHelp, cmdCompletion,
}

// isCommand reports whether arg names a command. Matching is case-sensitive.
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// wantsVerbose scans raw args for -v or --verbose before flags are parsed.
func wantsVerbose(args []string) bool {
	for _, a := range args {
		if a == "--verbose" || (len(a) > 1 && a[0] == '-' && a[1] != '-' && strings.ContainsRune(a[1:], 'v')) {
			return true
		}
	}
	return false
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	if cmd == cmdDoctor {
		return runDoctorCmd(rest, env)
	}

	err := runCommand(cmd, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		switch {
		case errors.Is(err, ErrUnknownCommand):
			fmt.Fprintln(env.Stderr, "Run 'typeset help' for a list of commands.")
		case errors.Is(err, ErrInvalidFlags):
			fmt.Fprintf(env.Stderr, "Run 'typeset help %s' for usage.\n", cmd)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runCommand runs every command except doctor, which reports its own status.
func runCommand(cmd string, args []string, env *Environment) error {
	switch cmd {
	case cmdReformat, cmdHyphenate:
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return runDocuments(ctx, cmd, args, env)
	case cmdFormats:
		return runFormats(args, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "go-typeset %s\n", Version)
		return nil
	case cmdHelp, "-h", "--help":
		runHelp(args, env)
		return nil
	case cmdCompletion:
		return runCompletion(args, env)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}
