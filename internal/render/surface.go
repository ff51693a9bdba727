package render

import (
	"codeberg.org/go-pdf/fpdf"
	"github.com/alecthomas/chroma/v2"

	"github.com/alnah/go-mdpress/internal/codeblock"
)

// surface adapts one block-sized region of a page to the codeblock drawing
// contract. Block coordinates put the origin at the lower-left corner of
// the region with y growing upward; fpdf pages put it at the top-left with
// y growing downward. left and base hold the page position of the block
// origin, so every call flips y against base.
type surface struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	left      float64
	base      float64
}

var _ codeblock.Surface = (*surface)(nil)

// pageX maps a block-local x to the page.
func (s *surface) pageX(x float64) float64 { return s.left + x }

// rectTop maps a block-local rectangle bottom edge to the page y of its top
// edge, which is where fpdf anchors rectangles.
func (s *surface) rectTop(y, h float64) float64 { return s.base - y - h }

// baselineY maps a block-local text baseline to the page.
func (s *surface) baselineY(y float64) float64 { return s.base - y }

func (s *surface) TextWidth(fontName string, fontSize float64, text string) float64 {
	s.pdf.SetFont(fontName, "", fontSize)
	return s.pdf.GetStringWidth(s.translate(text))
}

func (s *surface) SetFont(name string, size float64) {
	s.pdf.SetFont(name, "", size)
}

// SetFillColour applies to rectangles and text alike, matching the PDF
// notion of a single fill colour.
func (s *surface) SetFillColour(c chroma.Colour) {
	s.pdf.SetFillColor(int(c.Red()), int(c.Green()), int(c.Blue()))
	s.pdf.SetTextColor(int(c.Red()), int(c.Green()), int(c.Blue()))
}

func (s *surface) SetStrokeColour(c chroma.Colour, lineWidth float64) {
	s.pdf.SetDrawColor(int(c.Red()), int(c.Green()), int(c.Blue()))
	s.pdf.SetLineWidth(lineWidth)
}

func (s *surface) FillRect(x, y, w, h float64) {
	s.pdf.Rect(s.pageX(x), s.rectTop(y, h), w, h, "F")
}

func (s *surface) StrokeRect(x, y, w, h float64) {
	s.pdf.Rect(s.pageX(x), s.rectTop(y, h), w, h, "D")
}

func (s *surface) DrawText(x, y float64, text string) {
	s.pdf.Text(s.pageX(x), s.baselineY(y), s.translate(text))
}
