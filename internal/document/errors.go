package document

import "errors"

// Sentinel errors for document reading.
var (
	// ErrMalformedDocument indicates the input could not be decoded or parsed.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnsupportedInput indicates the file extension maps to no reader.
	ErrUnsupportedInput = errors.New("unsupported input file")
	// ErrMarkdownConversion indicates goldmark failed to render the input.
	ErrMarkdownConversion = errors.New("markdown conversion failed")
)
