package assets

// StyleLoader defines the contract for loading CSS stylesheets by name.
// Implementations may load from embedded assets, the filesystem, or both.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// ListStyles returns the names of all styles the loader can serve,
	// sorted alphabetically.
	ListStyles() ([]string, error)
}
