package render

import (
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-mdpress/internal/codeblock"
	"github.com/alnah/go-mdpress/internal/markdown"
)

// rgb is a device colour triple.
type rgb struct{ r, g, b int }

var (
	textBlack = rgb{0, 0, 0}
	quoteGrey = rgb{0x44, 0x44, 0x44}
)

// textContext carries the inherited text treatment while walking nested
// blocks: quotes indent and recolour their children, list items indent
// theirs.
type textContext struct {
	indent float64
	colour rgb
	italic bool
}

func bodyContext() textContext {
	return textContext{colour: textBlack}
}

// renderer walks document blocks down the page, breaking to a fresh page
// when the next line or block no longer fits. The cursor y is the top edge
// of whatever gets drawn next, in page coordinates. The last font and
// colour are tracked so they can be reasserted after a page break runs the
// footer callback, which sets its own.
type renderer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	tokenizer codeblock.Tokenizer
	codeStyle codeblock.Style

	left   float64
	width  float64
	top    float64
	bottom float64
	y      float64

	fontFamily string
	fontStyle  string
	fontSize   float64
	colour     rgb
}

// TextWidth implements codeblock.Measurer against the live document state.
func (r *renderer) TextWidth(fontName string, fontSize float64, s string) float64 {
	r.setFont(fontName, "", fontSize)
	return r.pdf.GetStringWidth(r.translate(s))
}

func (r *renderer) setFont(family, style string, size float64) {
	r.pdf.SetFont(family, style, size)
	r.fontFamily, r.fontStyle, r.fontSize = family, style, size
}

func (r *renderer) setColour(c rgb) {
	r.pdf.SetTextColor(c.r, c.g, c.b)
	r.colour = c
}

func (r *renderer) restoreTextState() {
	if r.fontFamily != "" {
		r.pdf.SetFont(r.fontFamily, r.fontStyle, r.fontSize)
	}
	r.pdf.SetTextColor(r.colour.r, r.colour.g, r.colour.b)
}

func (r *renderer) newPage() {
	r.pdf.AddPage()
	r.y = r.top
	r.restoreTextState()
}

// ensure breaks to a new page when h no longer fits above the bottom
// margin. Content taller than a whole page is the caller's problem.
func (r *renderer) ensure(h float64) {
	if r.y+h > r.bottom && r.y > r.top {
		r.newPage()
	}
}

// advance moves the cursor down without drawing. Trailing gaps never spill
// onto the next page; the break happens lazily at the next ensure, so a
// document ending in a gap does not grow a blank page.
func (r *renderer) advance(h float64) {
	r.y += h
	if r.y > r.bottom {
		r.y = r.bottom
	}
}

// gapBefore is an advance that collapses at the top of a page.
func (r *renderer) gapBefore(h float64) {
	if r.y > r.top {
		r.advance(h)
	}
}

func (r *renderer) renderBlock(b markdown.Block, ctx textContext) {
	switch blk := b.(type) {
	case markdown.Heading:
		r.renderHeading(blk, ctx)
	case markdown.Paragraph:
		r.renderParagraph(blk, ctx)
	case markdown.CodeBlock:
		r.renderCode(blk)
	case markdown.List:
		r.renderList(blk, 0, ctx)
	case markdown.Quote:
		r.renderQuote(blk, ctx)
	case markdown.Table:
		r.renderTable(blk)
	case markdown.Rule:
		r.advance(ruleGap)
	case markdown.Container:
		for _, child := range blk.Children {
			r.renderBlock(child, ctx)
		}
	}
}

// headingStyle clamps heading levels to the three supported treatments.
func headingStyle(level int) (size, lineH float64, style string) {
	switch {
	case level <= 1:
		return 18, 22, "B"
	case level == 2:
		return 14, 18, "B"
	default:
		return 12, 14, "BI"
	}
}

func (r *renderer) renderHeading(h markdown.Heading, ctx textContext) {
	size, lineH, style := headingStyle(h.Level)
	r.flow(h.Runs, flowSpec{
		size:   size,
		lineH:  lineH,
		indent: ctx.indent,
		colour: ctx.colour,
		bold:   strings.Contains(style, "B"),
		italic: strings.Contains(style, "I") || ctx.italic,
	})
	r.advance(headingGap)
}

func (r *renderer) renderParagraph(p markdown.Paragraph, ctx textContext) {
	if strings.TrimSpace(plainRunText(p.Runs)) == "" {
		return
	}
	r.flow(p.Runs, flowSpec{
		size:   bodySize,
		lineH:  bodyLineH,
		indent: ctx.indent,
		colour: ctx.colour,
		italic: ctx.italic,
	})
	r.advance(paragraphGap)
}

func (r *renderer) renderQuote(q markdown.Quote, ctx textContext) {
	r.gapBefore(quoteGap)
	child := ctx
	child.indent += quoteIndent
	child.colour = quoteGrey
	child.italic = true
	for _, b := range q.Children {
		r.renderBlock(b, child)
	}
	r.advance(quoteGap)
}

func (r *renderer) renderList(l markdown.List, level int, ctx textContext) {
	depth := level
	if depth > maxListLevel {
		depth = maxListLevel
	}
	indent := ctx.indent + listIndent + float64(depth)*listIndentStep
	for i, item := range l.Items {
		bullet := "•"
		if l.Ordered {
			bullet = fmt.Sprintf("%d.", l.Start+i)
		}
		r.advance(listItemGap)
		r.flow(item.Runs, flowSpec{
			size:   bodySize,
			lineH:  bodyLineH,
			indent: indent,
			colour: ctx.colour,
			italic: ctx.italic,
			bullet: bullet,
		})
		r.advance(listItemGap)
		for _, child := range item.Children {
			if nested, ok := child.(markdown.List); ok {
				r.renderList(nested, level+1, ctx)
				continue
			}
			childCtx := ctx
			childCtx.indent = indent
			r.renderBlock(child, childCtx)
		}
	}
	r.advance(paragraphGap)
}

func (r *renderer) renderCode(cb markdown.CodeBlock) {
	if strings.TrimSpace(cb.Text) == "" {
		return
	}
	r.paintCodeLines(r.tokenizer.Tokenize(cb.Text, cb.Language))
}

// renderTable draws rows the way the code painter draws text: cells joined
// with " | ", one row per line, always through the plain tokenizer.
func (r *renderer) renderTable(t markdown.Table) {
	var rows []string
	for _, row := range t.Rows {
		if len(row) > 0 {
			rows = append(rows, strings.Join(row, " | "))
		}
	}
	if len(rows) == 0 {
		return
	}
	r.paintCodeLines(codeblock.PlainTokenizer{}.Tokenize(strings.Join(rows, "\n"), ""))
}

// paintCodeLines lays the tokenized lines out at the content width and
// paints them. A block taller than the space left on the page moves to a
// fresh page whole when it fits one; anything taller splits at wrapped-line
// boundaries into per-page chunks. Wrapped lines are themselves valid token
// lines, so each chunk re-wraps to itself at the same width.
func (r *renderer) paintCodeLines(lines []codeblock.Line) {
	st := r.codeStyle
	block := codeblock.New(lines, st)
	layout := block.Layout(r.width, r)

	r.gapBefore(codeGap)

	chrome := 2*st.Padding + 2*st.BorderWidth
	pageCap := lineCapacity(r.bottom-r.top-chrome, st.LineHeight)

	remaining := layout.Lines
	first := true
	for len(remaining) > 0 {
		capacity := lineCapacity(r.bottom-r.y-chrome, st.LineHeight)
		moveWhole := first && capacity < len(remaining) && len(remaining) <= pageCap
		if capacity < 1 || moveWhole {
			if r.y > r.top {
				r.newPage()
			}
			capacity = pageCap
		}
		first = false
		if capacity < 1 {
			capacity = 1
		}
		if capacity > len(remaining) {
			capacity = len(remaining)
		}

		chunk := codeblock.New(remaining[:capacity], st)
		cl := chunk.Layout(r.width, r)
		surf := &surface{
			pdf:       r.pdf,
			translate: r.translate,
			left:      r.left,
			base:      r.y + cl.TotalHeight,
		}
		if err := chunk.Paint(surf, r.width); err != nil {
			r.pdf.SetError(err)
			return
		}
		r.y += cl.TotalHeight
		remaining = remaining[capacity:]
		if len(remaining) > 0 {
			r.newPage()
		}
	}

	// Painting went through the raw handle, so reassert the tracked text
	// state before flowing more body text.
	r.restoreTextState()
	r.advance(codeGap + codeTrailGap)
}

// lineCapacity is the number of code lines that fit in the given vertical
// space once block padding and borders are subtracted by the caller.
func lineCapacity(space, lineH float64) int {
	if lineH <= 0 {
		return 0
	}
	return int(space / lineH)
}

// flowSpec fixes the geometry and base treatment of one flowed text block.
type flowSpec struct {
	size   float64
	lineH  float64
	indent float64
	colour rgb
	bold   bool // forced on top of per-run styling
	italic bool
	bullet string // drawn hanging left of the first line
}

// flow word-wraps styled runs across the content width, drawing as it goes
// and breaking pages between lines.
func (r *renderer) flow(runs []markdown.Run, spec flowSpec) {
	lineLeft := r.left + spec.indent
	right := r.left + r.width

	r.ensure(spec.lineH)
	if spec.bullet != "" {
		r.setFont(bodyFont, "", spec.size)
		r.setColour(spec.colour)
		x := lineLeft - bulletOffset
		if x < r.left {
			x = r.left
		}
		r.pdf.Text(x, r.y+spec.size, r.translate(spec.bullet))
	}

	x := lineLeft
	drawn := false
	for _, run := range runs {
		tokens := splitWords(run.Text)
		if len(tokens) == 0 {
			continue
		}
		family, style := runFont(run, spec)
		r.setFont(family, style, spec.size)
		r.setColour(spec.colour)
		spaceW := r.pdf.GetStringWidth(" ")
		for _, tok := range tokens {
			if tok == " " {
				if x > lineLeft {
					x += spaceW
				}
				continue
			}
			w := r.pdf.GetStringWidth(r.translate(tok))
			if x+w > right && x > lineLeft {
				x = lineLeft
				r.nextLine(spec.lineH)
			}
			r.pdf.Text(x, r.y+spec.size, r.translate(tok))
			x += w
			drawn = true
		}
	}
	if drawn || spec.bullet != "" {
		r.advance(spec.lineH)
	}
}

func (r *renderer) nextLine(lineH float64) {
	r.y += lineH
	if r.y+lineH > r.bottom {
		r.newPage()
	}
}

// runFont resolves the fpdf family and style string for one run under the
// flow's forced treatment.
func runFont(run markdown.Run, spec flowSpec) (family, style string) {
	family = bodyFont
	if run.Code {
		family = codeFont
	}
	if run.Bold || spec.bold {
		style += "B"
	}
	if run.Italic || spec.italic {
		style += "I"
	}
	return family, style
}

// splitWords cuts text into alternating word and single-space tokens.
// Whitespace runs collapse to one space. Words never split further, so a
// word wider than the line overflows instead of breaking mid-word.
func splitWords(text string) []string {
	var tokens []string
	var word strings.Builder
	space := false
	for _, c := range text {
		switch c {
		case ' ', '\t', '\n', '\r':
			if word.Len() > 0 {
				tokens = append(tokens, word.String())
				word.Reset()
			}
			space = true
		default:
			if space {
				tokens = append(tokens, " ")
				space = false
			}
			word.WriteRune(c)
		}
	}
	if word.Len() > 0 {
		tokens = append(tokens, word.String())
	}
	if space {
		tokens = append(tokens, " ")
	}
	return tokens
}

func plainRunText(runs []markdown.Run) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.Text)
	}
	return b.String()
}
