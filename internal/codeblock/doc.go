// Package codeblock renders fenced code blocks onto PDF-style surfaces.
//
// This package handles the full journey from raw code text to painted output:
//   - Tokenization into coloured segments via Chroma (with language guessing
//     through go-enry and a guaranteed plain-text fallback)
//   - Greedy character-based line wrapping that preserves token colours
//   - Width-dependent layout (padding, indents, wrap width, total height)
//   - Painting of background, border, and text runs onto a Surface
//
// Rendering is handled separately by the render package, which adapts an
// fpdf document to the Surface interface. This separation keeps codeblock
// focused on measurement and geometry, while the renderer owns page flow,
// fonts, and device coordinates.
package codeblock
