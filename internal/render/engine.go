package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-mdpress/internal/codeblock"
	"github.com/alnah/go-mdpress/internal/markdown"
)

// ErrGenerate indicates the PDF backend reported a failure.
var ErrGenerate = errors.New("PDF generation failed")

// emptyPlaceholder is rendered when a document has no blocks at all, so an
// empty input still produces a visibly valid page.
const emptyPlaceholder = "(empty document)"

// Layout constants in points. Body text is Helvetica 11 on a 14 pt leading;
// block gaps follow the classic report stylesheet they were lifted from.
const (
	inch = 72.0

	bodyFont  = "Helvetica"
	codeFont  = "Courier"
	bodySize  = 11.0
	bodyLineH = 14.0

	headingGap   = 0.12 * inch
	paragraphGap = 0.08 * inch
	ruleGap      = 0.15 * inch
	quoteGap     = 6.0
	codeGap      = 6.0
	codeTrailGap = 0.1 * inch

	quoteIndent    = 18.0
	listIndent     = 18.0
	listIndentStep = 12.0
	listItemGap    = 2.0
	bulletOffset   = 9.0
	maxListLevel   = 3

	footerSize = 8.0
	footerGrey = 170
)

// Footer describes the optional line drawn inside the bottom margin of
// every page. Empty fields are left out; an all-empty footer draws nothing.
type Footer struct {
	// Position aligns the footer: "left", "center", or "right". Right when
	// empty or unrecognized.
	Position string
	// ShowPageNumber prepends "page N of M".
	ShowPageNumber bool
	// Date is a preformatted date string.
	Date string
	// Text is free-form trailing text.
	Text string
}

// Options configures an Engine. Zero values fall back to A4 portrait with
// one-inch margins, the default code style, and uncoloured code text.
type Options struct {
	// PageSize is "a4", "letter", or "legal", case-insensitive.
	PageSize string
	// Orientation is "portrait" or "landscape", case-insensitive.
	Orientation string
	// MarginInches is the uniform page margin.
	MarginInches float64
	// Title sets the PDF title metadata. When empty the document's own
	// title (its first level-1 heading) is used instead.
	Title string
	// Footer enables the per-page footer line. Nil disables it.
	Footer *Footer
	// CodeStyle is the visual treatment of code blocks and tables.
	CodeStyle codeblock.Style
	// Tokenizer colours code block text. Nil means no highlighting.
	Tokenizer codeblock.Tokenizer
}

// Engine renders parsed documents to PDF bytes. An Engine is stateless
// across Render calls and safe to reuse.
type Engine struct {
	opts Options
}

// New returns an Engine with defaults filled in for unset options.
func New(opts Options) *Engine {
	if opts.MarginInches <= 0 {
		opts.MarginInches = 1.0
	}
	if opts.CodeStyle == (codeblock.Style{}) {
		opts.CodeStyle = codeblock.DefaultStyle()
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = codeblock.PlainTokenizer{}
	}
	return &Engine{opts: opts}
}

// Render draws the document and returns the finished PDF bytes.
func (e *Engine) Render(doc markdown.Document) ([]byte, error) {
	pdf, err := e.build(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	return buf.Bytes(), nil
}

// build assembles the document into an fpdf instance. Split from Render so
// tests can inspect page counts before serialization.
func (e *Engine) build(doc markdown.Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New(orientationCode(e.opts.Orientation), "pt", pageSizeName(e.opts.PageSize), "")
	margin := e.opts.MarginInches * inch
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)

	title := e.opts.Title
	if title == "" {
		title = doc.Title
	}
	if title = strings.TrimSpace(title); title != "" {
		pdf.SetTitle(title, true)
	}

	r := &renderer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		tokenizer: e.opts.Tokenizer,
		codeStyle: e.opts.CodeStyle,
	}
	if e.opts.Footer != nil {
		installFooter(pdf, r.translate, e.opts.Footer)
	}

	pageW, pageH := pdf.GetPageSize()
	r.left = margin
	r.width = pageW - 2*margin
	r.top = margin
	r.bottom = pageH - margin

	pdf.AddPage()
	r.y = r.top

	blocks := doc.Blocks
	if len(blocks) == 0 {
		blocks = []markdown.Block{markdown.Paragraph{
			Runs: []markdown.Run{{Text: emptyPlaceholder}},
		}}
	}
	for _, b := range blocks {
		r.renderBlock(b, bodyContext())
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, pdf.Error())
	}
	return pdf, nil
}

// installFooter registers the per-page footer callback. The "{nb}" alias is
// substituted with the final page count when the document closes.
func installFooter(pdf *fpdf.Fpdf, translate func(string) string, f *Footer) {
	align := "R"
	switch strings.ToLower(f.Position) {
	case "left":
		align = "L"
	case "center":
		align = "C"
	}
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		var parts []string
		if f.ShowPageNumber {
			parts = append(parts, fmt.Sprintf("page %d of {nb}", pdf.PageNo()))
		}
		if f.Date != "" {
			parts = append(parts, f.Date)
		}
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
		if len(parts) == 0 {
			return
		}
		pdf.SetY(-2 * footerSize)
		pdf.SetFont(bodyFont, "I", footerSize)
		pdf.SetTextColor(footerGrey, footerGrey, footerGrey)
		pdf.CellFormat(0, footerSize+2, translate(strings.Join(parts, " - ")), "", 0, align, false, 0, "")
	})
}

// pageSizeName maps a page size setting to the fpdf size identifier.
// Unknown values render as A4.
func pageSizeName(size string) string {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "letter":
		return "Letter"
	case "legal":
		return "Legal"
	default:
		return "A4"
	}
}

// orientationCode maps an orientation setting to the fpdf code. Unknown
// values render portrait.
func orientationCode(orientation string) string {
	if strings.EqualFold(strings.TrimSpace(orientation), "landscape") {
		return "L"
	}
	return "P"
}
