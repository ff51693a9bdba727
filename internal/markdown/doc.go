// Package markdown parses Markdown into a closed set of document blocks.
//
// The goldmark AST is an open node hierarchy; this package narrows it to
// the variants the native PDF renderer knows how to paint (headings,
// paragraphs, code blocks, lists, quotes, tables, rules). Inline content
// flattens to styled runs so renderers never touch the AST.
package markdown
