// Package fileutil holds the small file and path helpers shared by the
// converter and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Temp file extension errors.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile writes content to a fresh temp file named
// "mdpress-*.<extension>" and returns its path with a cleanup func that
// removes it. On any error the file is already gone.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "mdpress-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// ValidateExtension rejects extensions that could escape the temp name
// pattern: empty strings, path separators, and null bytes.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s looks like a file path rather than a bare
// style name: any path separator qualifies, so "./custom.css" and
// `C:\styles\x.css` are paths while "github" and "my-style" are names.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// IsCSS reports whether s looks like CSS content rather than a name or
// path; a declaration block brace is the tell.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}
