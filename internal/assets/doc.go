// Package assets provides the output templates that rendered content is
// bound into.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates compiled into the binary
//	    ├── FilesystemLoader  - templates from a directory on disk
//	    └── Resolver          - custom directory first, embedded as fallback
//
// A template directory holds one file per template, named after the output
// format:
//
//	{basePath}/
//	├── xhtml.tmpl
//	└── simplified_html.tmpl
//
// Templates use {name} placeholders; see package binder.
//
// # Security
//
// Template names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
