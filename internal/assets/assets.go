package assets

var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads a built-in template by name.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or dots.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
