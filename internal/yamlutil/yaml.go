// Package yamlutil wraps the YAML library used for configuration files,
// hyphenation dictionaries, word lists and Markdown front matter.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion. Hyphenation
// dictionaries for a whole book stay well below it.
var MaxInputSize = 8 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// MarshalSorted encodes a string map as a block mapping with keys in
// lexical order, so repeated runs over the same input produce identical
// output. An empty map encodes as "{}\n".
func MarshalSorted(m map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	slice := make(yaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		slice = append(slice, yaml.MapItem{Key: k, Value: m[k]})
	}
	if len(slice) == 0 {
		return []byte("{}\n"), nil
	}
	return Marshal(slice)
}

var frontMatterFence = []byte("---")

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// rest of a Markdown document. It returns nil front matter and the input
// unchanged when the document does not open with a fence or the fence is
// never closed.
func SplitFrontMatter(doc []byte) (front, body []byte) {
	rest, ok := cutLine(doc, frontMatterFence)
	if !ok {
		return nil, doc
	}

	offset := 0
	for offset < len(rest) {
		end := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		next := len(rest)
		if end >= 0 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		} else {
			line = rest[offset:]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), frontMatterFence) {
			return rest[:offset], rest[next:]
		}
		offset = next
	}
	return nil, doc
}

// cutLine strips a first line equal to want (ignoring trailing blanks).
func cutLine(doc, want []byte) ([]byte, bool) {
	end := bytes.IndexByte(doc, '\n')
	if end < 0 {
		return nil, false
	}
	if !bytes.Equal(bytes.TrimRight(doc[:end], " \t\r"), want) {
		return nil, false
	}
	return doc[end+1:], true
}
