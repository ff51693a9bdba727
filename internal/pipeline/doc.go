// Package pipeline implements the Markdown-to-HTML stages used by the
// chrome engine and the HTML-only output mode.
//
// This package handles the text-level stages of that path:
//   - Markdown preprocessing (line-ending normalization, blank-line compression)
//   - Markdown to HTML conversion via Goldmark
//   - CSS injection into HTML documents
//
// PDF generation happens elsewhere: the native engine renders the Markdown
// AST directly (internal/markdown, internal/render) and never touches HTML,
// while the chrome engine prints this package's output via headless Chrome
// from the root mdpress package.
package pipeline
