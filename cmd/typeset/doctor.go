package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/alnah/go-typeset/internal/config"
	"github.com/alnah/go-typeset/internal/fileutil"
	"github.com/alnah/go-typeset/internal/hyphen"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Config   configInfo  `json:"config"`
	Backend  backendInfo `json:"backend"`
	Files    filesInfo   `json:"files"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// configInfo describes which configuration was resolved.
type configInfo struct {
	Source string `json:"source"` // config path or "defaults"
	Format string `json:"format"`
}

// backendInfo holds hyphenation backend detection results.
type backendInfo struct {
	Requested       string `json:"requested"`
	Name            string `json:"name,omitempty"`
	Language        string `json:"language"`
	VoikkoCompiled  bool   `json:"voikko_compiled"`
	VoikkoAvailable bool   `json:"voikko_available"`
}

// filesInfo holds dictionary and output directory checks.
type filesInfo struct {
	Hyphenations   string `json:"hyphenations,omitempty"`
	Entries        int    `json:"entries"`
	Lexicon        string `json:"lexicon,omitempty"`
	LexiconWords   int    `json:"lexicon_words"`
	OutputDir      string `json:"output_dir"`
	OutputWritable bool   `json:"output_writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	VoikkoPath    string `json:"voikko_dictionary_path,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var jsonOutput bool
	var configName string

	fs := newDoctorFlagSet(&jsonOutput, &configName)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v: %v\n", ErrInvalidFlags, err)
		return ExitUsage
	}

	result := runDoctor(configName, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// newDoctorFlagSet registers the doctor flags.
func newDoctorFlagSet(jsonOutput *bool, configName *string) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdDoctor, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(jsonOutput, "json", false, "print results as JSON")
	fs.StringVarP(configName, "config", "c", "", "config file name or path")
	return fs
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			VoikkoPath: env.getenv("VOIKKO_DICTIONARY_PATH"),
		},
	}

	cfg := checkConfig(result, configName, env)
	checkBackend(result, cfg)
	checkFiles(result, cfg)
	checkEnvironment(result, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConfig resolves the configuration the run commands would use. On
// failure the defaults are checked instead.
func checkConfig(result *doctorResult, name string, env *Environment) *config.Config {
	envCfg := loadEnvConfig(env.getenv)
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	result.Config.Source = "defaults"
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		} else {
			cfg = loaded
			result.Config.Source = name
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
	}
	result.Config.Format = cfg.OutputFormat
	return cfg
}

// checkBackend opens the configured hyphenation backend and reports which
// implementation answered.
func checkBackend(result *doctorResult, cfg *config.Config) {
	result.Backend.Requested = cfg.Backend
	result.Backend.Language = cfg.Language
	result.Backend.VoikkoCompiled = hyphen.VoikkoAvailable

	b, err := hyphen.Open(hyphen.BackendConfig{
		Name:       cfg.Backend,
		Language:   cfg.Language,
		VoikkoPath: cfg.VoikkoPath,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Backend: %v", err))
		return
	}
	defer func() { _ = b.Close() }()

	result.Backend.Name = b.Name
	result.Backend.VoikkoAvailable = b.Name == hyphen.BackendVoikko

	if b.Name == hyphen.BackendNative && cfg.LexiconFile == "" {
		result.Warnings = append(result.Warnings,
			"Native backend without a lexicon treats every word as known. Set lexicon_file to collect unknown words")
	}
}

// checkFiles loads the dictionary and lexicon and checks the output
// directory is writable.
func checkFiles(result *doctorResult, cfg *config.Config) {
	if path := cfg.HyphenationsFile; path != "" {
		result.Files.Hyphenations = path
		tag, err := language.Parse(cfg.Language)
		if err != nil {
			tag = language.Finnish
		}
		dict, err := hyphen.LoadDictionary(path, cfg.HyphenationSeparator, tag)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Hyphenations: %v", err))
		} else {
			result.Files.Entries = dict.Len()
		}
	}

	if path := cfg.LexiconFile; path != "" {
		result.Files.Lexicon = path
		words, err := hyphen.LoadLexicon(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Lexicon: %v", err))
		} else {
			result.Files.LexiconWords = len(words)
		}
	}

	dir := cfg.OutputPath
	if dir == "" {
		dir = "."
	}
	result.Files.OutputDir = dir
	if err := fileutil.CheckWritableDir(dir); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory: %v", err))
	} else {
		result.Files.OutputWritable = true
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && result.Backend.Requested == hyphen.BackendVoikko && !result.Backend.VoikkoAvailable {
		result.Warnings = append(result.Warnings,
			"Container detected without Voikko. Install libvoikko1 and voikko-fi in the image")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	// Explicit override (highest priority)
	if env.getenv("TYPESET_CONTAINER") == "1" {
		return true, "TYPESET_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "typeset doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	fmt.Fprintf(w, "  [OK] Format: %s\n", r.Config.Format)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Hyphenation")
	if r.Backend.Name != "" {
		fmt.Fprintf(w, "  [OK] Backend: %s (requested %s)\n", r.Backend.Name, r.Backend.Requested)
	} else {
		fmt.Fprintf(w, "  [ERROR] Backend: %s unavailable\n", r.Backend.Requested)
	}
	fmt.Fprintf(w, "  [OK] Language: %s\n", r.Backend.Language)
	if r.Backend.VoikkoCompiled {
		fmt.Fprintln(w, "  [OK] Voikko: compiled in")
	} else {
		fmt.Fprintln(w, "  [OK] Voikko: not compiled in (build with -tags voikko)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Files")
	if r.Files.Hyphenations != "" {
		fmt.Fprintf(w, "  [OK] Hyphenations: %s (%d entries)\n", r.Files.Hyphenations, r.Files.Entries)
	}
	if r.Files.Lexicon != "" {
		fmt.Fprintf(w, "  [OK] Lexicon: %s (%d words)\n", r.Files.Lexicon, r.Files.LexiconWords)
	}
	if r.Files.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory: %s writable\n", r.Files.OutputDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Output directory: %s not writable\n", r.Files.OutputDir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to typeset")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printDoctorUsage prints help for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typeset doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the hyphenation backend, dictionaries, and output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --json            Print results as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ready (warnings allowed), 1 errors found.")
}
