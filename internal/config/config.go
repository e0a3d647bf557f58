package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-typeset/internal/dateutil"
	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hyphen"
	"github.com/alnah/go-typeset/internal/logging"
	"github.com/alnah/go-typeset/internal/punct"
	"github.com/alnah/go-typeset/internal/yamlutil"
)

// AppName names the per-user configuration directory.
const AppName = "go-typeset"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxNameLength      = 255 // output_name template
	MaxSeparatorLength = 8
	MaxVariableLength  = 500
	MaxLanguageLength  = 35 // BCP 47 upper bound in practice
)

// Defaults applied by DefaultConfig.
const (
	DefaultMinWordLength = hyphen.DefaultMinWordLength
	DefaultUnknownLength = hyphen.DefaultCollectLength
	DefaultOutputFormat  = format.Markdown
	DefaultOutputName    = "{name}{ext}"
	DefaultLanguage      = "fi"
	DefaultLogLevel      = "warn"
)

// Config holds the settings of a typeset run.
type Config struct {
	// Hyphenation
	MinWordLength        int    `yaml:"min_word_length"`
	AllowUnknownWords    bool   `yaml:"allow_unknown_words"`
	ListUnknownMode      bool   `yaml:"list_unknown_mode"`
	UnknownMinLength     int    `yaml:"unknown_min_length"` // 0 uses the collector default
	HyphenationsFile     string `yaml:"hyphenations_file"`
	HyphenationSeparator string `yaml:"hyphenation_separator"`
	Language             string `yaml:"language"`
	Backend              string `yaml:"backend"`
	LexiconFile          string `yaml:"lexicon_file"`
	VoikkoPath           string `yaml:"voikko_path"`

	// Formatting. An empty punctuation policy uses the format's default.
	OutputFormat      string `yaml:"output_format"`
	StrictElementMode bool   `yaml:"strict_element_mode"`
	Punctuation       string `yaml:"punctuation"`

	// Output
	OutputName  string            `yaml:"output_name"`
	OutputPath  string            `yaml:"output_path"`
	Overwrite   bool              `yaml:"overwrite"`
	DryRun      bool              `yaml:"dry_run"`
	DateFormat  string            `yaml:"date_format"`
	TimeFormat  string            `yaml:"time_format"`
	Templates   TemplatesConfig   `yaml:"templates"`
	TemplateDir string            `yaml:"template_dir"`
	Variables   map[string]string `yaml:"variables"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// TemplatesConfig holds inline output templates. An empty entry falls back
// to template_dir and then to the embedded template.
type TemplatesConfig struct {
	XHTML          string `yaml:"xhtml"`
	SimplifiedHTML string `yaml:"simplified_html"`
}

// Template returns the inline template for the named format, or "".
func (t TemplatesConfig) Template(name string) string {
	switch name {
	case format.XHTML:
		return t.XHTML
	case format.SimplifiedHTML:
		return t.SimplifiedHTML
	default:
		return ""
	}
}

// Validate checks ranges, enumerations and field lengths.
func (c *Config) Validate() error {
	if c.MinWordLength < 1 {
		return fmt.Errorf("%w: min_word_length must be at least 1, got %d", ErrInvalidValue, c.MinWordLength)
	}
	if c.UnknownMinLength < 0 {
		return fmt.Errorf("%w: unknown_min_length cannot be negative, got %d", ErrInvalidValue, c.UnknownMinLength)
	}
	if c.HyphenationSeparator == "" {
		return fmt.Errorf("%w: hyphenation_separator cannot be empty", ErrInvalidValue)
	}
	if strings.ContainsAny(c.HyphenationSeparator, " \t\n") {
		return fmt.Errorf("%w: hyphenation_separator cannot contain whitespace", ErrInvalidValue)
	}
	if strings.TrimSpace(c.OutputName) == "" {
		return fmt.Errorf("%w: output_name cannot be empty", ErrInvalidValue)
	}

	if _, err := format.Match(c.OutputFormat); err != nil {
		return fmt.Errorf("%w: output_format: %w", ErrInvalidValue, err)
	}
	if c.Punctuation != "" {
		if _, err := punct.ParsePolicy(c.Punctuation); err != nil {
			return fmt.Errorf("%w: punctuation: %w", ErrInvalidValue, err)
		}
	}
	switch strings.ToLower(c.Backend) {
	case "", hyphen.BackendAuto, hyphen.BackendVoikko, hyphen.BackendNative:
	default:
		return fmt.Errorf("%w: backend %q (must be auto, voikko, or native)", ErrInvalidValue, c.Backend)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidValue, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: log_format: %w", ErrInvalidValue, err)
	}
	if c.DateFormat != "" {
		if _, err := dateutil.Parse(c.DateFormat); err != nil {
			return fmt.Errorf("%w: date_format: %w", ErrInvalidValue, err)
		}
	}
	if c.TimeFormat != "" {
		if _, err := dateutil.Parse(c.TimeFormat); err != nil {
			return fmt.Errorf("%w: time_format: %w", ErrInvalidValue, err)
		}
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"output_name", c.OutputName, MaxNameLength},
		{"output_path", c.OutputPath, MaxPathLength},
		{"hyphenations_file", c.HyphenationsFile, MaxPathLength},
		{"hyphenation_separator", c.HyphenationSeparator, MaxSeparatorLength},
		{"language", c.Language, MaxLanguageLength},
		{"lexicon_file", c.LexiconFile, MaxPathLength},
		{"voikko_path", c.VoikkoPath, MaxPathLength},
		{"template_dir", c.TemplateDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	for name, value := range c.Variables {
		if err := validateFieldLength("variables."+name, value, MaxVariableLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// StringEntries returns the string-valued top-level settings keyed by their
// YAML names, for use as output-name fields. Empty values are omitted.
func (c *Config) StringEntries() map[string]string {
	entries := map[string]string{
		"output_format":         c.OutputFormat,
		"output_path":           c.OutputPath,
		"hyphenations_file":     c.HyphenationsFile,
		"hyphenation_separator": c.HyphenationSeparator,
		"language":              c.Language,
		"backend":               c.Backend,
		"punctuation":           c.Punctuation,
		"date_format":           c.DateFormat,
		"time_format":           c.TimeFormat,
	}
	for k, v := range entries {
		if v == "" {
			delete(entries, k)
		}
	}
	return entries
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		MinWordLength:        DefaultMinWordLength,
		UnknownMinLength:     DefaultUnknownLength,
		HyphenationSeparator: hyphen.DefaultSeparator,
		Language:             DefaultLanguage,
		Backend:              hyphen.BackendAuto,
		OutputFormat:         DefaultOutputFormat,
		OutputName:           DefaultOutputName,
		DateFormat:           dateutil.DefaultDateFormat,
		TimeFormat:           dateutil.DefaultTimeFormat,
		LogLevel:             DefaultLogLevel,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries locations in order: current directory, ~/.config/go-typeset/
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
