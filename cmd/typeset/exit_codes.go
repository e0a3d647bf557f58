package main

import (
	"errors"
	"os"

	typeset "github.com/alnah/go-typeset"
	"github.com/alnah/go-typeset/internal/assets"
	"github.com/alnah/go-typeset/internal/binder"
	"github.com/alnah/go-typeset/internal/config"
	"github.com/alnah/go-typeset/internal/dateutil"
	"github.com/alnah/go-typeset/internal/format"
	"github.com/alnah/go-typeset/internal/hyphen"
)

// Exit codes for the typeset CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every document processed
	ExitGeneral = 1 // General error, or some documents failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, output refused
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Documents failed after a successful start (exit 1)
	if errors.Is(err, ErrDocumentsFailed) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, typeset.ErrOutputDirectory) ||
		errors.Is(err, typeset.ErrOutputExists) ||
		errors.Is(err, typeset.ErrWriteOutput) ||
		errors.Is(err, typeset.ErrLoadDictionary) ||
		errors.Is(err, typeset.ErrLoadLexicon) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, format.ErrUnknownFormat) ||
		errors.Is(err, format.ErrAmbiguousFormat) ||
		errors.Is(err, hyphen.ErrUnknownBackend) ||
		errors.Is(err, hyphen.ErrBackendUnavailable) ||
		errors.Is(err, binder.ErrUnknownVariable) ||
		errors.Is(err, binder.ErrTemplateSyntax) ||
		errors.Is(err, dateutil.ErrInvalidFormat) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
