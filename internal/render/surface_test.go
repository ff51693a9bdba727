package render

// Notes:
// - Courier metrics make width assertions exact: every glyph advances
//   0.6 em, so "0" at 10 pt measures 6.0
// - Coordinate flips are asserted on the pure mapping helpers; content
//   stream checks only look for values that must appear regardless of how
//   the backend encodes its operators

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-mdpress/internal/codeblock"
)

func newTestSurface() (*fpdf.Fpdf, *surface) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(false)
	pdf.AddPage()
	s := &surface{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		left:      100,
		base:      500,
	}
	return pdf, s
}

func output(t *testing.T, pdf *fpdf.Fpdf) string {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	return buf.String()
}

// ---

func TestSurfaceCoordinateMapping(t *testing.T) {
	t.Parallel()

	s := &surface{left: 100, base: 500}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "pageX offsets by left", got: s.pageX(12), want: 112},
		{name: "pageX at origin", got: s.pageX(0), want: 100},
		{name: "rect at block bottom tops out h above base", got: s.rectTop(0, 50), want: 450},
		{name: "raised rect tops out higher", got: s.rectTop(10, 20), want: 470},
		{name: "baseline at origin sits on base", got: s.baselineY(0), want: 500},
		{name: "baseline rises against page y", got: s.baselineY(21), want: 479},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestSurfaceTextWidthCourier(t *testing.T) {
	t.Parallel()

	_, s := newTestSurface()

	tests := []struct {
		text string
		size float64
		want float64
	}{
		{text: "0", size: 10, want: 6.0},
		{text: "00", size: 10, want: 12.0},
		{text: "0", size: 9, want: 5.4},
		{text: "wide", size: 10, want: 24.0},
		{text: "", size: 10, want: 0},
	}
	for _, tt := range tests {
		got := s.TextWidth("Courier", tt.size, tt.text)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("TextWidth(Courier, %v, %q) = %v, want %v", tt.size, tt.text, got, tt.want)
		}
	}
}

func TestSurfaceTextWidthTranslatesBeyondASCII(t *testing.T) {
	t.Parallel()

	_, s := newTestSurface()

	// é is a single cp1252 byte after translation, so it measures like any
	// other Courier glyph instead of like its two UTF-8 bytes.
	got := s.TextWidth("Courier", 10, "é")
	if math.Abs(got-6.0) > 1e-6 {
		t.Errorf("TextWidth(Courier, 10, é) = %v, want 6.0", got)
	}
}

func TestSurfaceDrawTextLandsAtFlippedBaseline(t *testing.T) {
	t.Parallel()

	pdf, s := newTestSurface()
	s.SetFont("Courier", 9)
	s.DrawText(18, 21, "zz")

	// Baseline at block y 21 is page y 479 top-down; the stream must place
	// the text at 841.89-479 = 362.89 in the page's bottom-up units.
	body := output(t, pdf)
	if !strings.Contains(body, "362.89") {
		t.Error("flipped baseline value not found in content stream")
	}
	if !strings.Contains(body, "(zz)") {
		t.Error("text literal not found in content stream")
	}
}

func TestSurfacePaintsWholeBlock(t *testing.T) {
	t.Parallel()

	pdf, s := newTestSurface()
	lines := codeblock.PlainTokenizer{}.Tokenize("first\nsecond", "")
	block := codeblock.New(lines, codeblock.DefaultStyle())
	block.Layout(400, s)
	if err := block.Paint(s, 400); err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	if pdf.Err() {
		t.Fatalf("pdf error after paint: %v", pdf.Error())
	}

	body := output(t, pdf)
	for _, want := range []string{"(first)", "(second)"} {
		if !strings.Contains(body, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}
