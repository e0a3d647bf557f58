package document

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// DefaultCharset is assumed when a file declares no encoding and is valid
// UTF-8.
const DefaultCharset = "utf-8"

var (
	utf8BOM     = []byte("\xef\xbb\xbf")
	xmlDeclOpen = []byte("<?xml")
	xmlDeclEnd  = []byte("?>")
	xmlEncoding = []byte("encoding=")
)

// SniffCharset returns the lowercased encoding label of data. An XML
// declaration at the start of the file wins. Otherwise the HTML prescan of
// charset.DetermineEncoding is used, which reads a byte order mark or a
// meta tag in the first 1024 bytes. Undeclared data that is valid UTF-8
// gives DefaultCharset; anything else gets the prescan's guess.
func SniffCharset(data []byte) string {
	if label, ok := xmlDeclaredEncoding(data); ok {
		return label
	}
	_, name, certain := charset.DetermineEncoding(data, "text/html")
	if !certain && utf8.Valid(data) {
		return DefaultCharset
	}
	return name
}

// xmlDeclaredEncoding reads the encoding pseudo-attribute of a leading
// <?xml ...?> declaration.
func xmlDeclaredEncoding(data []byte) (string, bool) {
	data = bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if !bytes.HasPrefix(data, xmlDeclOpen) {
		return "", false
	}
	end := bytes.Index(data, xmlDeclEnd)
	if end < 0 {
		return "", false
	}
	decl := data[:end]

	i := bytes.Index(decl, xmlEncoding)
	if i < 0 {
		return "", false
	}
	value := decl[i+len(xmlEncoding):]
	if len(value) > 0 && (value[0] == '"' || value[0] == '\'') {
		quote := value[0]
		value = value[1:]
		if j := bytes.IndexByte(value, quote); j >= 0 {
			value = value[:j]
		}
	} else if j := bytes.IndexAny(value, " \t\r\n"); j >= 0 {
		value = value[:j]
	}

	label := string(bytes.ToLower(bytes.TrimSpace(value)))
	return label, label != ""
}

// DecodeHTML converts data from its declared encoding to UTF-8.
func DecodeHTML(data []byte) ([]byte, string, error) {
	label := SniffCharset(data)
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, label, fmt.Errorf("%w: unknown encoding %q", ErrMalformedDocument, label)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, label, fmt.Errorf("%w: decoding %q: %v", ErrMalformedDocument, label, err)
	}
	return decoded, label, nil
}
