// Package format serializes a document body into one of a closed set of
// output formats.
//
// Markdown and simplified HTML output goes through a Walker that keeps only
// the element kinds each format allows. Every element kind carries its own
// allow-list for its children. An element outside the active allow-list is
// unwrapped in lenient mode: its content is rendered without markup using the
// parent's allow-list. In strict mode it is an *UnsupportedElementError.
// The html and xhtml formats render the parsed tree as is.
package format
