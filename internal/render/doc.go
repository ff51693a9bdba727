// Package render draws parsed Markdown documents onto PDF pages.
//
// The engine walks document blocks top to bottom with a manual vertical
// cursor, breaking to a new page when the next line or block no longer
// fits. Body text flows word by word across the content width; code blocks
// and tables delegate their geometry to the codeblock package through a
// Surface adapter that flips between block-local and page coordinates.
package render
