// Package assets provides the CSS stylesheets used for HTML output and
// the Chrome rendering engine.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── StyleResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, github) embedded
// at compile time.
//
// FilesystemLoader allows users to provide custom stylesheets from a
// directory, with path traversal protection and symlink resolution.
//
// StyleResolver is the primary loader used by the converter. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the style
// is not found. This enables overriding specific styles while keeping defaults.
//
// # Directory Structure
//
// Custom style directories mirror the embedded layout:
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css           # CSS styles (e.g., github.css)
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
