package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	title      string // Explicit title flag ("" = H1, then file name)
	css        string // Extra CSS appended after the resolved style
	footer     *mdpress.Footer
	page       *mdpress.PageSettings
	htmlOnly   bool // Output HTML only, skip PDF
	htmlOutput bool // Output HTML alongside PDF
}

// buildParams bundles conversion parameters from flags and merged config.
// Footer and page settings are validated here so flag mistakes fail the
// run once instead of failing every file.
func buildParams(flags *convertFlags, cfg *config.Config) (*conversionParams, error) {
	css, err := resolveCSSContent(flags.style.css)
	if err != nil {
		return nil, err
	}

	footer := buildFooterData(cfg, flags.footer.disabled)
	if err := footer.Validate(); err != nil {
		return nil, err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return nil, err
	}

	return &conversionParams{
		title:      flags.title,
		css:        css,
		footer:     footer,
		page:       page,
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: flags.outputMode.html,
	}, nil
}

// resolveCSSContent reads the extra CSS file named by the --css flag.
// The stylesheet itself is resolved by the converter from cfg.Style;
// this content is appended after it and wins on conflicts.
func resolveCSSContent(cssFile string) (string, error) {
	if cssFile == "" {
		return "", nil
	}
	content, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildFooterData creates mdpress.Footer from config.
// Flags are merged into config by mergeFlags before this is called.
func buildFooterData(cfg *config.Config, noFooter bool) *mdpress.Footer {
	if noFooter || !cfg.Footer.Enabled {
		return nil
	}

	return &mdpress.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Date:           cfg.Footer.Date,
		Text:           cfg.Footer.Text,
	}
}

// buildPageSettings creates mdpress.PageSettings from config.
// Flags are merged into config by mergeFlags before this is called.
// Returns nil when nothing is configured, which means engine defaults.
func buildPageSettings(cfg *config.Config) (*mdpress.PageSettings, error) {
	hasConfig := cfg.Page.Size != "" || cfg.Page.Orientation != "" || cfg.Page.Margin > 0

	if !hasConfig {
		return nil, nil
	}

	ps := mdpress.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		ps.Margin = cfg.Page.Margin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}

	return ps, nil
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

// resolveTitle picks the PDF title for one file: the --title flag first,
// then the document's first heading, then the file name stem.
// An empty return lets the engine extract the first heading itself.
func resolveTitle(flagTitle, markdown, path string) string {
	if flagTitle != "" {
		return flagTitle
	}
	if extractFirstHeading(markdown) != "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
