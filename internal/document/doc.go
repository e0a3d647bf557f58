// Package document reads input files into an HTML node tree.
//
// HTML and XHTML files are decoded using the character set they declare and
// parsed with golang.org/x/net/html. Markdown files are rendered to HTML by
// goldmark first; a line starting with "- - -" becomes a scene break, kept in
// the tree as a "beat" comment. YAML front matter in Markdown files supplies
// the document metadata.
package document
