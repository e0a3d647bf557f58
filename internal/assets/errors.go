package assets

import "errors"

// Sentinel errors for template loading.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates the template name contains invalid
	// characters such as path separators or dots.
	ErrInvalidAssetName = errors.New("invalid template name")

	// ErrInvalidBasePath indicates the template directory is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid template directory")

	// ErrAssetRead indicates an I/O error occurred while reading a template file.
	ErrAssetRead = errors.New("failed to read template")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
