package codeblock

import "github.com/alecthomas/chroma/v2"

// Fallback colours used when a Style leaves the corresponding field unset.
var (
	defaultBackground = chroma.ParseColour("#F5F5F5")
	defaultText       = chroma.ParseColour("#000000")
)

// Style holds the visual parameters of a rendered code block. All lengths
// are in the unit of the target surface (points for PDF output). A Style is
// immutable once handed to New; changing a rendered block's appearance means
// building a new block.
type Style struct {
	// FontName is the monospace font face used for all code text.
	FontName string
	// FontSize is the glyph size. Layout assumes a fixed advance width,
	// measured on the digit zero.
	FontSize float64
	// LineHeight is the vertical distance between consecutive baselines.
	LineHeight float64
	// Padding is the inner gap between the block edge and the text on all
	// four sides.
	Padding float64
	// BorderWidth is the stroke width of the outline. Zero disables the
	// border entirely.
	BorderWidth float64
	// LeftIndent and RightIndent shrink the block relative to the available
	// width, mirroring paragraph indentation.
	LeftIndent  float64
	RightIndent float64
	// Background fills the block rectangle. Unset falls back to a light
	// neutral grey.
	Background chroma.Colour
	// Border strokes the block outline. Border is only drawn when both
	// BorderWidth is positive and Border is set.
	Border chroma.Colour
	// Text is the colour for segments the tokenizer left uncoloured. Unset
	// falls back to black.
	Text chroma.Colour
}

// DefaultStyle returns the standard code block appearance: Courier 9pt on an
// 11pt leading, 6pt padding, a quarter-point light grey border, 12pt side
// indents, and a whitesmoke background.
func DefaultStyle() Style {
	return Style{
		FontName:    "Courier",
		FontSize:    9,
		LineHeight:  11,
		Padding:     6,
		BorderWidth: 0.25,
		LeftIndent:  12,
		RightIndent: 12,
		Background:  chroma.ParseColour("#F5F5F5"),
		Border:      chroma.ParseColour("#D3D3D3"),
		Text:        chroma.ParseColour("#000000"),
	}
}
