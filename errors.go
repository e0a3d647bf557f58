package typeset

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrOutputDirectory = errors.New("output path is not a directory")
	ErrOutputExists    = errors.New("output file already exists")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrOutputName      = errors.New("invalid output name")
	ErrLoadDictionary  = errors.New("failed to load hyphenations file")
	ErrLoadLexicon     = errors.New("failed to load lexicon file")
)
