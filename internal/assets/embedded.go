package assets

import (
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// EmbeddedLoader loads stylesheets compiled into the binary.
// Implements StyleLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// ListStyles returns the names of all embedded styles, sorted alphabetically.
func (e *EmbeddedLoader) ListStyles() ([]string, error) {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), ".css")
		if !ok {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

// Compile-time interface check.
var _ StyleLoader = (*EmbeddedLoader)(nil)
