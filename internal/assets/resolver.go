package assets

import (
	"errors"
)

// Resolver combines a custom template directory with the built-in
// templates. Custom templates win; a template missing from the custom
// directory falls back to the built-in one.
type Resolver struct {
	custom   TemplateLoader // nil if no custom directory configured
	embedded TemplateLoader
}

// NewResolver creates a Resolver. An empty customBasePath uses the built-in
// templates only. Returns ErrInvalidBasePath if customBasePath is set but
// is not a readable directory.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a template, trying the custom directory first.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors do not fall back.
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// HasCustomLoader reports whether a custom template directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ TemplateLoader = (*Resolver)(nil)
