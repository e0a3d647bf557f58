package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   int
	logFormat string
}

// outputFlags holds flags that decide where and how output is written.
type outputFlags struct {
	format      string
	dir         string
	name        string
	overwrite   bool
	dryRun      bool
	strict      bool
	punctuation string
	templateDir string
}

// hyphenFlags holds hyphenation flags. They are registered for the
// hyphenate command only.
type hyphenFlags struct {
	backend      string
	language     string
	hyphenations string
	separator    string
	lexicon      string
	minLength    int
	allowUnknown bool
	listUnknown  bool
}

// runFlags holds all flags for the reformat and hyphenate commands.
type runFlags struct {
	common commonFlags
	output outputFlags
	hyphen hyphenFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.CountVarP(&f.verbose, "verbose", "v", "more log output (repeat for debug)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format (unique prefix accepted)")
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.StringVar(&f.name, "output-name", "", "output file name template")
	fs.BoolVar(&f.overwrite, "overwrite", false, "replace existing output files")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "log what would be written, write nothing")
	fs.BoolVar(&f.strict, "strict", false, "fail on elements the format does not allow")
	fs.StringVar(&f.punctuation, "punctuation", "", "punctuation policy: keep, typeset, plain")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory with output templates")
}

// addHyphenFlags adds hyphenation flags to a FlagSet.
func addHyphenFlags(fs *flag.FlagSet, f *hyphenFlags) {
	fs.StringVarP(&f.backend, "backend", "b", "", "hyphenation backend: auto, voikko, native")
	fs.StringVar(&f.language, "language", "", "hyphenation language")
	fs.StringVar(&f.hyphenations, "hyphenations", "", "known hyphenations YAML file")
	fs.StringVar(&f.separator, "separator", "", "hyphenation separator in YAML files")
	fs.StringVar(&f.lexicon, "lexicon", "", "word list for the native backend")
	fs.IntVar(&f.minLength, "min-length", 0, "shortest word hyphenated")
	fs.BoolVar(&f.allowUnknown, "allow-unknown", false, "hyphenate words the backend does not know")
	fs.BoolVarP(&f.listUnknown, "list-unknown", "l", false, "list unknown words instead of writing output")
}

// newRunFlagSet registers the flags of a run command. Hyphenation flags are
// only registered for hyphenate.
func newRunFlagSet(name string, f *runFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	if name == cmdHyphenate {
		addHyphenFlags(fs, &f.hyphen)
	}
	return fs
}

// parseRunFlags parses reformat or hyphenate flags and returns positional
// args.
func parseRunFlags(name string, args []string) (*runFlags, []string, error) {
	f := &runFlags{}
	fs := newRunFlagSet(name, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
