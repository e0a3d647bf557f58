// Package binder fills output templates.
//
// A template is literal text with {name} placeholders. "{{" and "}}" stand
// for literal braces. Every placeholder must name a bound variable.
package binder

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for template binding.
var (
	ErrUnknownVariable = errors.New("unknown template variable")
	ErrTemplateSyntax  = errors.New("template syntax error")
)

// UnknownVariableError names a placeholder with no bound value.
type UnknownVariableError struct {
	Name string
	// Known lists the bound variable names in lexical order.
	Known []string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown template variable %q (have %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is makes errors.Is(err, ErrUnknownVariable) match.
func (e *UnknownVariableError) Is(target error) bool {
	return target == ErrUnknownVariable
}

// Variables maps placeholder names to values.
type Variables map[string]string

// Names returns the variable names in lexical order.
func (v Variables) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Metadata variable names and the content variable.
const (
	VarLanguage  = "language"
	VarTitle     = "title"
	VarAuthor    = "author"
	VarCopyright = "copyright"
	VarContent   = "content"
)

// DefaultLanguage is used when neither the document nor the configuration
// names a language.
const DefaultLanguage = "en"

// Assemble builds the variables for one document. Metadata defaults come
// first (language "en", title, author and copyright empty), then the values
// found in the document, then configured values. content is set last and
// cannot be overridden.
func Assemble(meta, configured Variables, content string) Variables {
	vars := Variables{
		VarLanguage:  DefaultLanguage,
		VarTitle:     "",
		VarAuthor:    "",
		VarCopyright: "",
	}
	maps.Copy(vars, meta)
	maps.Copy(vars, configured)
	vars[VarContent] = content
	return vars
}

// Bind substitutes every {name} placeholder in tmpl.
func Bind(tmpl string, vars Variables) (string, error) {
	out, err := bindWith(tmpl, func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	})
	var uerr *UnknownVariableError
	if errors.As(err, &uerr) {
		uerr.Known = vars.Names()
	}
	return out, err
}

// Placeholders returns the distinct placeholder names in tmpl in order of
// first use.
func Placeholders(tmpl string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	_, err := bindWith(tmpl, func(name string) (string, bool) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return "", true
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func bindWith(tmpl string, lookup func(string) (string, bool)) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch {
		case c == '{' && strings.HasPrefix(tmpl[i:], "{{"):
			b.WriteByte('{')
			i += 2
		case c == '}' && strings.HasPrefix(tmpl[i:], "}}"):
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrTemplateSyntax, i)
			}
			name := tmpl[i+1 : i+1+end]
			if !validName(name) {
				return "", fmt.Errorf("%w: invalid placeholder {%s} at offset %d", ErrTemplateSyntax, name, i)
			}
			value, ok := lookup(name)
			if !ok {
				return "", &UnknownVariableError{Name: name}
			}
			b.WriteString(value)
			i += end + 2
		case c == '}':
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrTemplateSyntax, i)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// validName accepts letters, digits, '_', '-' and '.'.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}
