package mdpress

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"

	"github.com/alnah/go-mdpress/internal/codeblock"
)

// Engine constants.
const (
	EngineNative = "native"
	EngineChrome = "chrome"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "a4", "letter", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeA4, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Markdown string        // Markdown content (required)
	Title    string        // PDF title metadata (optional, falls back to first H1)
	CSS      string        // Custom CSS appended to the resolved style (HTML path only)
	Page     *PageSettings // Page settings (optional, nil = defaults)
	Footer   *Footer       // Footer config (optional)
	HTMLOnly bool          // Skip PDF generation, return HTML only
}

// ConvertResult holds the conversion output.
// PDF is empty when Input.HTMLOnly is set; HTML is empty on the native
// engine, which renders the document model directly.
type ConvertResult struct {
	PDF  []byte
	HTML []byte
}

// Footer configures the per-page PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string // preformatted, or "auto"/"auto:FORMAT" resolved by the CLI
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// CodeStyle configures the appearance of code blocks on the native engine.
// All lengths are in points; colours are hex strings like "#F5F5F5".
// The zero value means "use DefaultCodeStyle".
type CodeStyle struct {
	FontName    string
	FontSize    float64
	LineHeight  float64
	Padding     float64
	BorderWidth float64
	LeftIndent  float64
	RightIndent float64
	Background  string // fill colour, empty = default
	Border      string // outline colour, empty = default
	Text        string // colour for unhighlighted text, empty = default
}

// DefaultCodeStyle returns the standard code block appearance: Courier 9pt
// on an 11pt leading, 6pt padding, a quarter-point light grey border, 12pt
// side indents, and a whitesmoke background.
func DefaultCodeStyle() CodeStyle {
	return CodeStyle{
		FontName:    "Courier",
		FontSize:    9,
		LineHeight:  11,
		Padding:     6,
		BorderWidth: 0.25,
		LeftIndent:  12,
		RightIndent: 12,
		Background:  "#F5F5F5",
		Border:      "#D3D3D3",
		Text:        "#000000",
	}
}

// Validate checks that the code style has sane lengths and parseable colours.
func (cs CodeStyle) Validate() error {
	if cs == (CodeStyle{}) {
		return nil
	}

	lengths := []struct {
		name  string
		value float64
	}{
		{"font size", cs.FontSize},
		{"line height", cs.LineHeight},
		{"padding", cs.Padding},
		{"border width", cs.BorderWidth},
		{"left indent", cs.LeftIndent},
		{"right indent", cs.RightIndent},
	}
	for _, l := range lengths {
		if l.value < 0 {
			return fmt.Errorf("%w: negative %s %.2f", ErrInvalidCodeStyle, l.name, l.value)
		}
	}
	if cs.FontSize == 0 {
		return fmt.Errorf("%w: font size must be positive", ErrInvalidCodeStyle)
	}

	colours := []struct {
		name  string
		value string
	}{
		{"background", cs.Background},
		{"border", cs.Border},
		{"text", cs.Text},
	}
	for _, c := range colours {
		if c.value == "" {
			continue
		}
		if !chroma.ParseColour(c.value).IsSet() {
			return fmt.Errorf("%w: unparseable %s colour %q", ErrInvalidCodeStyle, c.name, c.value)
		}
	}

	return nil
}

// toInternal maps the public style onto the rendering core's style type.
// Call Validate first; unparseable colours come out unset here.
func (cs CodeStyle) toInternal() codeblock.Style {
	if cs == (CodeStyle{}) {
		return codeblock.DefaultStyle()
	}
	return codeblock.Style{
		FontName:    cs.FontName,
		FontSize:    cs.FontSize,
		LineHeight:  cs.LineHeight,
		Padding:     cs.Padding,
		BorderWidth: cs.BorderWidth,
		LeftIndent:  cs.LeftIndent,
		RightIndent: cs.RightIndent,
		Background:  chroma.ParseColour(cs.Background),
		Border:      chroma.ParseColour(cs.Border),
		Text:        chroma.ParseColour(cs.Text),
	}
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine        string
	timeout       time.Duration
	styleInput    string
	resolvedStyle string
	assetPath     string
	codeTheme     string
	highlight     bool
	codeStyle     CodeStyle
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithEngine selects the rendering engine: EngineNative (default, pure Go)
// or EngineChrome (headless Chrome, CSS-faithful).
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpress: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet for the HTML path: a built-in style name
// (e.g. "default", "github"), a path to a CSS file, or literal CSS content.
// The reserved name StyleNone disables the built-in stylesheet entirely.
func WithStyle(input string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = input
	}
}

// WithAssetPath points the style loader at a custom directory containing
// styles/{name}.css files. Built-in styles remain available as fallback.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithCodeTheme selects the chroma highlight theme used by both engines
// (e.g. "github", "monokai", "dracula"). Empty uses chroma's fallback.
func WithCodeTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.codeTheme = name
	}
}

// WithCodeStyle replaces the native engine's code block appearance.
func WithCodeStyle(cs CodeStyle) Option {
	return func(c *Converter) {
		c.cfg.codeStyle = cs
	}
}

// WithHighlighting toggles syntax highlighting. Disabled, code renders
// through the plain tokenizer in the block's default text colour.
func WithHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}
