package mdpress

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdpress/internal/assets"
	"github.com/alnah/go-mdpress/internal/codeblock"
	"github.com/alnah/go-mdpress/internal/fileutil"
	"github.com/alnah/go-mdpress/internal/markdown"
	"github.com/alnah/go-mdpress/internal/pipeline"
	"github.com/alnah/go-mdpress/internal/render"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ codeblock.Tokenizer           = (*codeblock.ChromaTokenizer)(nil)
	_ codeblock.Tokenizer           = (codeblock.PlainTokenizer{})
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// Converter orchestrates the markdown-to-PDF conversion pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close()
// when done. The native engine needs no external processes; the chrome
// engine holds a headless browser that Close() releases.
type Converter struct {
	cfg           converterConfig
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	tokenizer     codeblock.Tokenizer
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration: the native
// engine, a 30 second timeout, highlighting on, and the built-in default
// stylesheet for the HTML path.
// Use options to customize behavior (e.g., WithEngine, WithCodeTheme).
// Returns error if an option value or style resolution fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			engine:    EngineNative,
			timeout:   defaultTimeout,
			highlight: true,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if !isValidEngine(c.cfg.engine) {
		return nil, fmt.Errorf("%w: %q (must be native or chrome)", ErrInvalidEngine, c.cfg.engine)
	}
	c.cfg.engine = strings.ToLower(c.cfg.engine)

	if err := c.cfg.codeStyle.Validate(); err != nil {
		return nil, err
	}

	// HTML converter carries the same chroma theme as the native tokenizer
	// so both engines highlight identically (if not injected by tests).
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.codeTheme, c.cfg.highlight)
	}

	if c.tokenizer == nil {
		if c.cfg.highlight {
			c.tokenizer = codeblock.NewChromaTokenizer(c.cfg.codeTheme)
		} else {
			c.tokenizer = codeblock.PlainTokenizer{}
		}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Create browser-backed PDF converter only for the chrome engine
	// (if not injected by tests)
	if c.cfg.engine == EngineChrome && c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline and returns the result.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped and the styled HTML
// is returned for either engine. The native engine renders the document
// model directly and leaves result.HTML empty.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	// Preprocess markdown (both engines)
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if input.HTMLOnly || c.cfg.engine == EngineChrome {
		return c.convertHTML(ctx, mdContent, input)
	}

	pdfBytes, err := c.renderNative(ctx, mdContent, input)
	if err != nil {
		return nil, err
	}
	return &ConvertResult{PDF: pdfBytes}, nil
}

// convertHTML runs the HTML path: goldmark, CSS injection, and (unless
// HTMLOnly) headless Chrome printing.
func (c *Converter) convertHTML(ctx context.Context, mdContent string, input Input) (*ConvertResult, error) {
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, wrapSentinel(ErrHTMLConversion, err)
	}

	// Combined CSS: print layout rules first, resolved style as base,
	// user CSS last so it can override.
	cssContent := printCSS + c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{HTML: []byte(htmlContent)}

	if input.HTMLOnly {
		return res, nil
	}

	pdfOpts := &pdfOptions{
		Footer: input.Footer,
		Page:   input.Page,
	}
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// renderNative parses the markdown into the document model and paints it
// with the fpdf-backed engine.
func (c *Converter) renderNative(ctx context.Context, mdContent string, input Input) ([]byte, error) {
	doc := markdown.Parse([]byte(mdContent))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := render.Options{
		Title:     input.Title,
		CodeStyle: c.cfg.codeStyle.toInternal(),
		Tokenizer: c.tokenizer,
	}
	if input.Page != nil {
		opts.PageSize = input.Page.Size
		opts.Orientation = input.Page.Orientation
		opts.MarginInches = input.Page.Margin
	}
	if input.Footer != nil {
		opts.Footer = &render.Footer{
			Position:       input.Footer.Position,
			ShowPageNumber: input.Footer.ShowPageNumber,
			Date:           input.Footer.Date,
			Text:           input.Footer.Text,
		}
	}

	pdfBytes, err := render.New(opts).Render(doc)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdfBytes, nil
}

// Close releases resources (the chrome engine's headless browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// Engine returns the configured engine name.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content for the HTML path. An empty input loads the built-in default
// style so HTML output is styled out of the box.
// Called during NewConverter() after options are applied.
func (c *Converter) resolveStyle() error {
	var loader assets.StyleLoader = assets.NewEmbeddedLoader()
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewStyleResolver(c.cfg.assetPath)
		if err != nil {
			return convertAssetError(err)
		}
		loader = resolver
	}

	input := c.cfg.styleInput

	// Reserved name: no stylesheet at all.
	if input == StyleNone {
		c.cfg.resolvedStyle = ""
		return nil
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use the loader
	name := input
	if name == "" {
		name = assets.DefaultStyleName
	}
	css, err := loader.LoadStyle(name)
	if err != nil {
		return convertAssetError(err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config
// load time. Both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	return nil
}

// isValidEngine checks the engine name (case-insensitive).
func isValidEngine(name string) bool {
	switch strings.ToLower(name) {
	case EngineNative, EngineChrome:
		return true
	}
	return false
}
