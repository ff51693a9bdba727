// Package mdpress converts Markdown documents to PDF.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdpress.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpress.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// # Engines
//
// Two rendering engines are available:
//
//   - native (default): pure-Go layout and painting via fpdf. No external
//     dependencies; code blocks are tokenized, reflowed to the content
//     width, and painted with syntax colors.
//   - chrome: HTML rendering via headless Chrome (go-rod). Full CSS
//     fidelity, requires a Chrome/Chromium install.
//
// Select the engine at construction:
//
//	conv, err := mdpress.NewConverter(mdpress.WithEngine(mdpress.EngineChrome))
//
// # Conversion Pipeline
//
// The native engine parses markdown into a document model and paints it
// directly to PDF. The chrome engine follows these stages:
//
//  1. Markdown preprocessing (line ending normalization, blank-line capping)
//  2. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  3. CSS injection (print rules, stylesheet, user CSS)
//  4. PDF rendering via headless Chrome (go-rod)
//
// With Input.HTMLOnly the pipeline stops after CSS injection and returns
// the styled HTML instead of PDF bytes.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdpress.NewConverter(
//	    mdpress.WithTimeout(2 * time.Minute),
//	    mdpress.WithStyle("github"),
//	    mdpress.WithCodeTheme("monokai"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdpress.Input{
//	    Markdown: content,
//	    Title:    "Report",
//	    CSS:      "body { font-size: 14px; }",
//	    Page:     &mdpress.PageSettings{Size: mdpress.PageSizeA4},
//	    Footer:   &mdpress.Footer{ShowPageNumber: true},
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to share converters across
// goroutines:
//
//	pool := mdpress.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Styles
//
// Built-in stylesheets ship embedded; list them with Styles. WithStyle
// accepts a built-in name, a path to a CSS file, or literal CSS. Override
// or extend the built-ins from a directory with WithAssetPath:
//
//	conv, err := mdpress.NewConverter(
//	    mdpress.WithAssetPath("/path/to/assets"),
//	    mdpress.WithStyle("corporate"),
//	)
//
// Asset directory structure:
//
//	assets/
//	└── styles/
//	    └── corporate.css
//
// # Browser Requirements
//
// Only the chrome engine needs a browser. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; with CI=true or a
// custom binary the Chrome sandbox is disabled.
package mdpress
