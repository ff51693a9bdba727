package assets

import (
	"errors"
	"slices"
)

// StyleResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the style is not found in the custom location.
type StyleResolver struct {
	custom   StyleLoader // nil if no custom path configured
	embedded StyleLoader
}

// NewStyleResolver creates a StyleResolver.
// If customBasePath is empty, only embedded styles are used.
// If customBasePath is set, custom styles take precedence with fallback to embedded.
// Returns error if customBasePath is set but invalid.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	resolver := &StyleResolver{
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

// LoadStyle loads a CSS style, trying the custom loader first if available.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	// If no custom loader, use embedded directly
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	// Try custom loader first
	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return "", err
	}

	// Fall back to embedded
	return r.embedded.LoadStyle(name)
}

// ListStyles returns the union of custom and embedded style names,
// deduplicated and sorted alphabetically.
func (r *StyleResolver) ListStyles() ([]string, error) {
	names, err := r.embedded.ListStyles()
	if err != nil {
		return nil, err
	}

	if r.custom != nil {
		customNames, err := r.custom.ListStyles()
		if err != nil {
			return nil, err
		}
		names = append(names, customNames...)
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// isNotFoundError checks if the error indicates the style was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound)
}

// HasCustomLoader returns true if a custom style loader is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
