package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

// Notes:
// - buildParams validates footers and page settings once per run; the
//   failure cases here pin the sentinel each maps to for exit codes.
// - Title resolution mirrors what the engines do with an empty title, so
//   only the CLI-side precedence is covered here.

// --- TestResolveCSSContent - extra CSS is read eagerly

func TestResolveCSSContent(t *testing.T) {
	t.Parallel()

	t.Run("empty flag means no extra CSS", func(t *testing.T) {
		t.Parallel()

		got, err := resolveCSSContent("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("resolveCSSContent(\"\") = %q, want empty", got)
		}
	})

	t.Run("reads the file contents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "extra.css")
		css := "h1 { color: rebeccapurple; }"
		if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
			t.Fatalf("writing css: %v", err)
		}

		got, err := resolveCSSContent(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != css {
			t.Errorf("resolveCSSContent = %q, want %q", got, css)
		}
	})

	t.Run("missing file maps to ErrReadCSS", func(t *testing.T) {
		t.Parallel()

		_, err := resolveCSSContent(filepath.Join(t.TempDir(), "absent.css"))
		if !errors.Is(err, ErrReadCSS) {
			t.Errorf("err = %v, want ErrReadCSS", err)
		}
	})
}

// --- TestBuildFooterData - config to library footer mapping

func TestBuildFooterData(t *testing.T) {
	t.Parallel()

	t.Run("disabled footer is nil", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		if footer := buildFooterData(cfg, false); footer != nil {
			t.Errorf("buildFooterData = %+v, want nil for disabled footer", footer)
		}
	})

	t.Run("no-footer flag beats enabled config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Footer.Enabled = true
		cfg.Footer.Text = "Draft"

		if footer := buildFooterData(cfg, true); footer != nil {
			t.Errorf("buildFooterData = %+v, want nil with noFooter", footer)
		}
	})

	t.Run("enabled footer carries all fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Footer.Enabled = true
		cfg.Footer.Position = "center"
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Date = "2025-01-15"
		cfg.Footer.Text = "Confidential"

		footer := buildFooterData(cfg, false)
		if footer == nil {
			t.Fatal("buildFooterData = nil, want footer")
		}
		want := mdpress.Footer{
			Position:       "center",
			ShowPageNumber: true,
			Date:           "2025-01-15",
			Text:           "Confidential",
		}
		if *footer != want {
			t.Errorf("buildFooterData = %+v, want %+v", *footer, want)
		}
	})
}

// --- TestBuildPageSettings - engine defaults unless configured

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	t.Run("unconfigured page is nil", func(t *testing.T) {
		t.Parallel()

		ps, err := buildPageSettings(config.DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ps != nil {
			t.Errorf("buildPageSettings = %+v, want nil", ps)
		}
	})

	t.Run("partial config fills in defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Size = "legal"

		ps, err := buildPageSettings(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ps == nil {
			t.Fatal("buildPageSettings = nil, want settings")
		}
		if ps.Size != "legal" {
			t.Errorf("size = %q, want legal", ps.Size)
		}
		if ps.Orientation != mdpress.OrientationPortrait {
			t.Errorf("orientation = %q, want default %q", ps.Orientation, mdpress.OrientationPortrait)
		}
		if ps.Margin != mdpress.DefaultMargin {
			t.Errorf("margin = %v, want default %v", ps.Margin, mdpress.DefaultMargin)
		}
	})

	t.Run("full config wins everywhere", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Size = "letter"
		cfg.Page.Orientation = "landscape"
		cfg.Page.Margin = 0.5

		ps, err := buildPageSettings(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := mdpress.PageSettings{Size: "letter", Orientation: "landscape", Margin: 0.5}
		if *ps != want {
			t.Errorf("buildPageSettings = %+v, want %+v", *ps, want)
		}
	})

	t.Run("invalid size is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Size = "tabloid"

		_, err := buildPageSettings(cfg)
		if !errors.Is(err, mdpress.ErrInvalidPageSize) {
			t.Errorf("err = %v, want mdpress.ErrInvalidPageSize", err)
		}
	})

	t.Run("invalid orientation is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Orientation = "diagonal"

		_, err := buildPageSettings(cfg)
		if !errors.Is(err, mdpress.ErrInvalidOrientation) {
			t.Errorf("err = %v, want mdpress.ErrInvalidOrientation", err)
		}
	})

	t.Run("out-of-range margin is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Margin = 5.0

		_, err := buildPageSettings(cfg)
		if !errors.Is(err, mdpress.ErrInvalidMargin) {
			t.Errorf("err = %v, want mdpress.ErrInvalidMargin", err)
		}
	})
}

// --- TestExtractFirstHeading - H1 detection for titles

func TestExtractFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{"simple heading", "# Hello World\n\nBody.", "Hello World"},
		{"heading after text", "Intro paragraph.\n\n# The Title\n", "The Title"},
		{"first of several", "# First\n\n# Second\n", "First"},
		{"trailing spaces trimmed", "# Padded   \n", "Padded"},
		{"h2 does not count", "## Subtitle\n\nBody.", ""},
		{"hash without space", "#NoSpace\n", ""},
		{"no heading", "Just text.\n", ""},
		{"empty document", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractFirstHeading(tt.markdown); got != tt.want {
				t.Errorf("extractFirstHeading(%q) = %q, want %q", tt.markdown, got, tt.want)
			}
		})
	}
}

// --- TestResolveTitle - flag, then document heading, then file stem

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagTitle string
		markdown  string
		path      string
		want      string
	}{
		{"flag wins", "Custom", "# Heading\n", "doc.md", "Custom"},
		{"heading defers to engine", "", "# Heading\n", "doc.md", ""},
		{"file stem fallback", "", "No heading here.\n", "notes.md", "notes"},
		{"stem strips directories", "", "plain text", "/srv/docs/report.markdown", "report"},
		{"flag wins even without heading", "Named", "plain", "doc.md", "Named"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveTitle(tt.flagTitle, tt.markdown, tt.path)
			if got != tt.want {
				t.Errorf("resolveTitle(%q, ..., %q) = %q, want %q",
					tt.flagTitle, tt.path, got, tt.want)
			}
		})
	}
}

// --- TestBuildParams - assembly and one-shot validation

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("defaults produce empty params", func(t *testing.T) {
		t.Parallel()

		params, err := buildParams(&convertFlags{}, config.DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if params.footer != nil || params.page != nil {
			t.Errorf("params = %+v, want nil footer and page", params)
		}
		if params.htmlOnly || params.htmlOutput {
			t.Error("output modes set without flags")
		}
	})

	t.Run("flags flow through", func(t *testing.T) {
		t.Parallel()

		flags := &convertFlags{
			title:      "Report",
			outputMode: outputFlags{html: true, htmlOnly: true},
		}
		params, err := buildParams(flags, config.DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if params.title != "Report" {
			t.Errorf("title = %q, want Report", params.title)
		}
		if !params.htmlOnly || !params.htmlOutput {
			t.Errorf("output modes = %+v, want both set", params)
		}
	})

	t.Run("bad footer position fails once", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Footer.Enabled = true
		cfg.Footer.Position = "bottom"

		_, err := buildParams(&convertFlags{}, cfg)
		if !errors.Is(err, mdpress.ErrInvalidFooterPosition) {
			t.Errorf("err = %v, want mdpress.ErrInvalidFooterPosition", err)
		}
	})

	t.Run("bad page size fails once", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Size = "tabloid"

		_, err := buildParams(&convertFlags{}, cfg)
		if !errors.Is(err, mdpress.ErrInvalidPageSize) {
			t.Errorf("err = %v, want mdpress.ErrInvalidPageSize", err)
		}
	})

	t.Run("missing extra CSS fails once", func(t *testing.T) {
		t.Parallel()

		flags := &convertFlags{
			style: styleFlags{css: filepath.Join(t.TempDir(), "absent.css")},
		}
		_, err := buildParams(flags, config.DefaultConfig())
		if !errors.Is(err, ErrReadCSS) {
			t.Errorf("err = %v, want ErrReadCSS", err)
		}
	})
}
