package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	flag "github.com/spf13/pflag"

	typeset "github.com/alnah/go-typeset"
	"github.com/alnah/go-typeset/internal/assets"
	"github.com/alnah/go-typeset/internal/binder"
	"github.com/alnah/go-typeset/internal/config"
	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hints"
	"github.com/alnah/go-typeset/internal/hyphen"
	"github.com/alnah/go-typeset/internal/logging"
)

// Sentinel errors for run commands.
var (
	ErrNoInput         = errors.New("no input files")
	ErrDocumentsFailed = errors.New("some documents failed")
)

// inputPattern selects the files read from a directory argument.
const inputPattern = "**/*.{htm,html,xhtml,md,markdown}"

// runDocuments implements reformat and hyphenate.
func runDocuments(ctx context.Context, name string, args []string, env *Environment) error {
	flags, positional, err := parseRunFlags(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	cfg, err := loadRunConfig(flags, env)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags.common, env)
	if err != nil {
		return err
	}

	paths, err := expandInputs(positional)
	if err != nil {
		return err
	}

	mode := typeset.ModeReformat
	if name == cmdHyphenate {
		mode = typeset.ModeHyphenate
	}

	p, err := typeset.New(cfg,
		typeset.WithMode(mode),
		typeset.WithLogger(logger),
		typeset.WithClock(env.now))
	if err != nil {
		return withHint(err, cfg)
	}
	defer func() { _ = p.Close() }()

	results := p.Run(ctx, paths)

	failed := printResults(results, p.Mode(), cfg, flags.common, env)

	if p.Mode() == typeset.ModeListUnknown {
		if err := p.WriteUnknown(env.Stdout); err != nil {
			return fmt.Errorf("writing unknown words: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrDocumentsFailed, failed, len(results))
	}
	return nil
}

// loadRunConfig resolves the configuration: defaults, then the config file,
// then TYPESET_* variables, then flags.
func loadRunConfig(flags *runFlags, env *Environment) (*config.Config, error) {
	if err := loadDotEnv(dotEnvFiles...); err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr, env.environ())
	envCfg := loadEnvConfig(env.getenv)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			err = fmt.Errorf("loading config: %w", err)
			if errors.Is(err, config.ErrConfigNotFound) {
				err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, withHint(err, cfg)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *runFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.LogFormat, flags.common.logFormat)

	// Output flags
	o := flags.output
	set(&cfg.OutputFormat, o.format)
	set(&cfg.OutputPath, o.dir)
	set(&cfg.OutputName, o.name)
	set(&cfg.Punctuation, o.punctuation)
	set(&cfg.TemplateDir, o.templateDir)
	if o.overwrite {
		cfg.Overwrite = true
	}
	if o.dryRun {
		cfg.DryRun = true
	}
	if o.strict {
		cfg.StrictElementMode = true
	}

	// Hyphenation flags
	h := flags.hyphen
	set(&cfg.Backend, h.backend)
	set(&cfg.Language, h.language)
	set(&cfg.HyphenationsFile, h.hyphenations)
	set(&cfg.HyphenationSeparator, h.separator)
	set(&cfg.LexiconFile, h.lexicon)
	if h.minLength > 0 {
		cfg.MinWordLength = h.minLength
	}
	if h.allowUnknown {
		cfg.AllowUnknownWords = true
	}
	if h.listUnknown {
		cfg.ListUnknownMode = true
	}
}

// newLogger builds the stderr logger from log_level, -v, -q and log_format.
func newLogger(cfg *config.Config, common commonFlags, env *Environment) (*slog.Logger, error) {
	base, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	logFormat, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	return logging.New(env.Stderr, logging.Options{
		Level:  logging.LevelFromVerbosity(base, common.verbose, common.quiet),
		Format: logFormat,
	}), nil
}

// expandInputs turns arguments into input files. Directories are searched
// recursively for HTML and Markdown files, glob patterns (with ** support)
// are expanded, and other arguments are kept as given. Duplicates are
// dropped, keeping the first occurrence.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			matches, err := doublestar.Glob(os.DirFS(arg), inputPattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no HTML or Markdown files in %s", ErrNoInput, arg)
			}
			slices.Sort(matches)
			for _, m := range matches {
				add(filepath.Join(arg, filepath.FromSlash(m)))
			}
			continue
		}

		if !isGlob(arg) {
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: nothing matches %s", ErrNoInput, arg)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

// isGlob reports whether arg contains glob metacharacters.
func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// withHint appends an actionable hint to err when one applies.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, hyphen.ErrBackendUnavailable):
		hint = hints.ForVoikko(hyphen.VoikkoAvailable)
	case errors.Is(err, format.ErrUnknownFormat), errors.Is(err, format.ErrAmbiguousFormat):
		hint = hints.ForUnknownFormat(format.Names())
	case errors.Is(err, typeset.ErrOutputDirectory):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, typeset.ErrOutputExists):
		hint = hints.ForOverwrite()
	case errors.Is(err, hyphen.ErrInvalidDictionary):
		hint = hints.ForDictionary(cfg.HyphenationSeparator)
	case errors.Is(err, binder.ErrUnknownVariable):
		hint = hints.ForUnknownVariable()
	case errors.Is(err, assets.ErrTemplateNotFound):
		hint = hints.ForTemplateNotFound(templateFormats())
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// templateFormats lists the formats that bind a template.
func templateFormats() []string {
	var names []string
	for _, f := range format.All() {
		if f.Template != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

// printResults outputs per-document results on stderr, keeping stdout for
// the unknown-word dump, and returns the failure count.
func printResults(results []typeset.Result, mode typeset.Mode, cfg *config.Config, common commonFlags, env *Environment) int {
	s := newStyles()
	summary := typeset.Summarize(results)
	listing := mode == typeset.ModeListUnknown

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", s.red.Sprint("FAILED"), r.InputPath, withHint(r.Err, cfg))
			continue
		}

		if common.quiet {
			continue
		}

		switch {
		case listing:
			fmt.Fprintf(env.Stderr, "%s %s (%d new)\n", s.dim.Sprint("Scanned"), r.InputPath, r.Collected)
		case common.verbose > 0:
			fmt.Fprintf(env.Stderr, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		case !r.Written:
			fmt.Fprintf(env.Stderr, "%s %s\n", s.yellow.Sprint("Would create"), r.OutputPath)
		default:
			fmt.Fprintf(env.Stderr, "%s %s\n", s.green.Sprint("Created"), r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%s succeeded, %s failed\n",
			s.bold.Sprint(summary.Succeeded), s.bold.Sprint(summary.Failed))
	}

	return summary.Failed
}
