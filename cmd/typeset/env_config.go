package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-typeset/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "TYPESET_"

// dotEnvFiles are loaded in order before environment overrides are read.
// Variables already set in the environment are never replaced.
var dotEnvFiles = []string{".env.local", ".env"}

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // TYPESET_CONFIG: config name or path
	Format       string // TYPESET_FORMAT: output format
	OutputDir    string // TYPESET_OUTPUT_DIR: output directory
	OutputName   string // TYPESET_OUTPUT_NAME: output name template
	Backend      string // TYPESET_BACKEND: auto, voikko, native
	Language     string // TYPESET_LANGUAGE: hyphenation language
	Hyphenations string // TYPESET_HYPHENATIONS: known hyphenations file
	Lexicon      string // TYPESET_LEXICON: native backend word list
	VoikkoPath   string // TYPESET_VOIKKO_PATH: Voikko dictionary path
	Punctuation  string // TYPESET_PUNCTUATION: keep, typeset, plain
	LogLevel     string // TYPESET_LOG_LEVEL: debug, info, warn, error, none
	LogFormat    string // TYPESET_LOG_FORMAT: text, json
	MinLength    int    // TYPESET_MIN_LENGTH: shortest word hyphenated
}

// knownEnvVars lists valid TYPESET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TYPESET_CONFIG":       true,
	"TYPESET_FORMAT":       true,
	"TYPESET_OUTPUT_DIR":   true,
	"TYPESET_OUTPUT_NAME":  true,
	"TYPESET_BACKEND":      true,
	"TYPESET_LANGUAGE":     true,
	"TYPESET_HYPHENATIONS": true,
	"TYPESET_LEXICON":      true,
	"TYPESET_VOIKKO_PATH":  true,
	"TYPESET_PUNCTUATION":  true,
	"TYPESET_LOG_LEVEL":    true,
	"TYPESET_LOG_FORMAT":   true,
	"TYPESET_MIN_LENGTH":   true,
}

// loadDotEnv loads the dotenv files that exist. A missing file is not an
// error; a malformed one is.
func loadDotEnv(files ...string) error {
	for _, name := range files {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// loadEnvConfig reads configuration through getenv. Invalid numbers are
// ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("TYPESET_CONFIG"),
		Format:       getenv("TYPESET_FORMAT"),
		OutputDir:    getenv("TYPESET_OUTPUT_DIR"),
		OutputName:   getenv("TYPESET_OUTPUT_NAME"),
		Backend:      getenv("TYPESET_BACKEND"),
		Language:     getenv("TYPESET_LANGUAGE"),
		Hyphenations: getenv("TYPESET_HYPHENATIONS"),
		Lexicon:      getenv("TYPESET_LEXICON"),
		VoikkoPath:   getenv("TYPESET_VOIKKO_PATH"),
		Punctuation:  getenv("TYPESET_PUNCTUATION"),
		LogLevel:     getenv("TYPESET_LOG_LEVEL"),
		LogFormat:    getenv("TYPESET_LOG_FORMAT"),
	}

	if n := getenv("TYPESET_MIN_LENGTH"); n != "" {
		if v, err := strconv.Atoi(n); err == nil && v > 0 {
			cfg.MinLength = v
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every unrecognized TYPESET_*
// variable in environ.
// Helps catch typos like TYPESET_BAKCEND.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies every set environment value into cfg, replacing
// what the config file said. CLI flags are applied afterwards by
// mergeFlags, so the precedence is flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.OutputFormat, env.Format)
	set(&cfg.OutputPath, env.OutputDir)
	set(&cfg.OutputName, env.OutputName)
	set(&cfg.Backend, env.Backend)
	set(&cfg.Language, env.Language)
	set(&cfg.HyphenationsFile, env.Hyphenations)
	set(&cfg.LexiconFile, env.Lexicon)
	set(&cfg.VoikkoPath, env.VoikkoPath)
	set(&cfg.Punctuation, env.Punctuation)
	set(&cfg.LogLevel, env.LogLevel)
	set(&cfg.LogFormat, env.LogFormat)

	if env.MinLength > 0 {
		cfg.MinWordLength = env.MinLength
	}
}
