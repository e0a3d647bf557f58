package assets

// TemplateExt is the file extension of template files.
const TemplateExt = ".tmpl"

// TemplateLoader loads output templates by name.
type TemplateLoader interface {
	// LoadTemplate loads a template by name (without extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
