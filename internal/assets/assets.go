package assets

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// defaultLoader serves package-level lookups from the embedded styles.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ListStyles returns the names of all embedded styles, sorted alphabetically.
func ListStyles() ([]string, error) {
	return defaultLoader.ListStyles()
}
