package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTheme loads a built-in theme definition by name.
// Returns ErrThemeNotFound if the theme does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTheme(name string) ([]byte, error) {
	return defaultLoader.LoadTheme(name)
}

// LoadTemplate loads a built-in HTML template by name.
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	return defaultLoader.ThemeNames()
}
