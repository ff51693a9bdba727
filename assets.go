package mdpress

import (
	"errors"

	"github.com/alnah/go-mdpress/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style used when no style
// is selected.
const DefaultStyle = "default"

// StyleNone is a reserved style name that disables the built-in stylesheet.
// HTML output then carries only the print rules and any Input.CSS.
const StyleNone = "none"

// StyleLoader defines the contract for loading CSS styles by name.
// Implementations may load from filesystem, embedded assets, S3, database, etc.
//
// The library provides NewStyleLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// ListStyles returns the names of all available styles, sorted.
	ListStyles() ([]string, error)
}

// NewStyleLoader creates a StyleLoader for the given base path.
// If basePath is empty, returns a loader using only embedded styles.
// If basePath is set, custom styles take precedence with fallback to embedded.
//
// The basePath directory should contain styles/{name}.css files.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable
// directory.
func NewStyleLoader(basePath string) (StyleLoader, error) {
	resolver, err := assets.NewStyleResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &styleLoaderAdapter{loader: resolver}, nil
}

// Styles returns the names of the built-in styles shipped with the library.
func Styles() []string {
	names, err := assets.ListStyles()
	if err != nil {
		return nil
	}
	return names
}

// styleLoaderAdapter wraps an internal loader to return public errors.
type styleLoaderAdapter struct {
	loader assets.StyleLoader
}

func (a *styleLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *styleLoaderAdapter) ListStyles() ([]string, error) {
	names, err := a.loader.ListStyles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// convertAssetError maps internal asset errors to public sentinels while
// preserving the original message.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapSentinel(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapSentinel(ErrStyleNotFound, err) // Invalid name means not found
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapSentinel(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapSentinel(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapSentinel(ErrInvalidAssetPath, err)
	default:
		return err
	}
}
