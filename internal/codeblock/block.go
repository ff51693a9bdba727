package codeblock

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
)

// Width floors below which layout refuses to shrink further. Extremely
// narrow pages still produce a one-column block instead of failing.
const (
	minUsableWidth = 12
	minInnerWidth  = 4
)

// Painting errors.
var (
	// ErrLayoutMissing reports a Paint call on a block that was never laid out.
	ErrLayoutMissing = errors.New("code block painted before layout")
	// ErrLayoutStale reports a Paint call whose surface width differs from the
	// width the block was last laid out at.
	ErrLayoutStale = errors.New("code block layout is stale for the paint width")
)

// Measurer reports rendered text widths in surface units.
type Measurer interface {
	TextWidth(fontName string, fontSize float64, s string) float64
}

// Surface is the drawing target for a code block. Coordinates are block
// local: the origin sits at the lower-left corner of the available-width
// box and y grows upward. The fill colour applies to both rectangles and
// text, matching PDF canvas semantics.
type Surface interface {
	Measurer
	SetFont(name string, size float64)
	SetFillColour(c chroma.Colour)
	SetStrokeColour(c chroma.Colour, lineWidth float64)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	DrawText(x, y float64, s string)
}

// LayoutResult captures everything geometry-dependent about a block at one
// available width. A new layout replaces the previous result wholesale.
type LayoutResult struct {
	// Lines are the wrapped display lines.
	Lines []Line
	// MaxChars is the per-line character budget the lines were wrapped to.
	MaxChars int
	// BlockWidth is the painted width: available width minus indents.
	BlockWidth float64
	// ContentWidth is BlockWidth minus horizontal padding.
	ContentWidth float64
	// TotalHeight is the full vertical extent including padding and border.
	TotalHeight float64

	availableWidth float64
}

// Block is a tokenized code block awaiting layout and painting. Lines and
// style are fixed at construction; only the cached layout changes, and only
// through Layout.
type Block struct {
	lines  []Line
	style  Style
	layout *LayoutResult
}

// New builds a block from tokenized lines and a style.
func New(lines []Line, style Style) *Block {
	return &Block{lines: lines, style: style}
}

// Style returns the block's immutable style.
func (b *Block) Style() Style {
	return b.style
}

// Layout computes wrapped lines and geometry for the given available width
// and caches the result. Calling it again with the same width returns the
// cached result unchanged; a different width recomputes from the original
// token lines, so layouts at alternating widths stay deterministic.
func (b *Block) Layout(available float64, m Measurer) LayoutResult {
	if b.layout != nil && b.layout.availableWidth == available {
		return *b.layout
	}
	st := b.style

	usable := available - st.LeftIndent - st.RightIndent
	if usable < minUsableWidth {
		usable = minUsableWidth
	}
	inner := usable - 2*st.Padding
	if inner < minInnerWidth {
		inner = minInnerWidth
	}

	maxChars := 1
	if glyph := m.TextWidth(st.FontName, st.FontSize, "0"); glyph > 0 {
		if n := int(inner / glyph); n > 1 {
			maxChars = n
		}
	}

	wrapped := Wrap(b.lines, maxChars)
	count := len(wrapped)
	if count < 1 {
		count = 1
	}

	result := LayoutResult{
		Lines:          wrapped,
		MaxChars:       maxChars,
		BlockWidth:     usable,
		ContentWidth:   inner,
		TotalHeight:    float64(count)*st.LineHeight + 2*st.Padding + 2*st.BorderWidth,
		availableWidth: available,
	}
	b.layout = &result
	return result
}

// Paint draws the block onto the surface: background first, then border,
// then text line by line. The block must already be laid out at the
// surface's available width; painting against a missing or stale layout is
// a programming error and fails fast rather than drawing misaligned output.
func (b *Block) Paint(s Surface, available float64) error {
	if b.layout == nil {
		return ErrLayoutMissing
	}
	if b.layout.availableWidth != available {
		return fmt.Errorf("%w: laid out at %.2f, painting at %.2f", ErrLayoutStale, b.layout.availableWidth, available)
	}
	st := b.style
	lr := b.layout

	bg := st.Background
	if !bg.IsSet() {
		bg = defaultBackground
	}
	s.SetFillColour(bg)
	s.FillRect(st.LeftIndent, 0, lr.BlockWidth, lr.TotalHeight)

	if st.BorderWidth > 0 && st.Border.IsSet() {
		s.SetStrokeColour(st.Border, st.BorderWidth)
		s.StrokeRect(st.LeftIndent, 0, lr.BlockWidth, lr.TotalHeight)
	}

	s.SetFont(st.FontName, st.FontSize)
	baseline := lr.TotalHeight - st.Padding - st.FontSize
	for _, line := range lr.Lines {
		x := st.LeftIndent + st.Padding
		for _, seg := range line {
			if seg.Text == "" {
				continue
			}
			colour := seg.Colour
			if !colour.IsSet() {
				colour = st.Text
			}
			if !colour.IsSet() {
				colour = defaultText
			}
			s.SetFillColour(colour)
			s.DrawText(x, baseline, seg.Text)
			x += s.TextWidth(st.FontName, st.FontSize, seg.Text)
		}
		baseline -= st.LineHeight
	}
	return nil
}
