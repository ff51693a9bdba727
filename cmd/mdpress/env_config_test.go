package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpress/internal/config"
)

// Notes:
// - These tests mutate the environment through t.Setenv, so none of them
//   are parallel. The testing package restores the variables afterwards.
// - Precedence against CLI flags is covered in convert_merge_test.go;
//   here only env reading and the env-over-file overlay are pinned.

// clearMdpressEnv blanks every recognized variable so ambient CI settings
// cannot leak into assertions.
func clearMdpressEnv(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
}

// --- TestLoadEnvConfig - reading the MDPRESS_* surface

func TestLoadEnvConfig(t *testing.T) {
	clearMdpressEnv(t)

	t.Setenv("MDPRESS_CONFIG", "/etc/mdpress.yaml")
	t.Setenv("MDPRESS_ENGINE", "chrome")
	t.Setenv("MDPRESS_STYLE", "github")
	t.Setenv("MDPRESS_TIMEOUT", "45s")
	t.Setenv("MDPRESS_INPUT_DIR", "docs")
	t.Setenv("MDPRESS_OUTPUT_DIR", "pdfs")
	t.Setenv("MDPRESS_ASSET_PATH", "/srv/assets")
	t.Setenv("MDPRESS_WORKERS", "4")
	t.Setenv("MDPRESS_PAGE_SIZE", "letter")
	t.Setenv("MDPRESS_CODE_THEME", "monokai")
	t.Setenv("MDPRESS_FOOTER_DATE", "auto")

	cfg := loadEnvConfig()

	if cfg.ConfigPath != "/etc/mdpress.yaml" {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
	if cfg.Engine != "chrome" {
		t.Errorf("Engine = %q", cfg.Engine)
	}
	if cfg.Style != "github" {
		t.Errorf("Style = %q", cfg.Style)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.InputDir != "docs" || cfg.OutputDir != "pdfs" {
		t.Errorf("dirs = %q, %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.AssetPath != "/srv/assets" {
		t.Errorf("AssetPath = %q", cfg.AssetPath)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.PageSize != "letter" {
		t.Errorf("PageSize = %q", cfg.PageSize)
	}
	if cfg.CodeTheme != "monokai" {
		t.Errorf("CodeTheme = %q", cfg.CodeTheme)
	}
	if cfg.FooterDate != "auto" {
		t.Errorf("FooterDate = %q", cfg.FooterDate)
	}
}

func TestLoadEnvConfig_Empty(t *testing.T) {
	clearMdpressEnv(t)

	cfg := loadEnvConfig()

	if *cfg != (envConfig{}) {
		t.Errorf("loadEnvConfig() = %+v, want zero value with empty environment", *cfg)
	}
}

func TestLoadEnvConfig_BadValues(t *testing.T) {
	clearMdpressEnv(t)

	// Malformed or non-positive numbers are ignored rather than fatal:
	// a broken CI variable should not take down every conversion.
	t.Setenv("MDPRESS_TIMEOUT", "not-a-duration")
	t.Setenv("MDPRESS_WORKERS", "many")

	cfg := loadEnvConfig()
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 for malformed value", cfg.Timeout)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 for malformed value", cfg.Workers)
	}

	t.Setenv("MDPRESS_TIMEOUT", "-30s")
	t.Setenv("MDPRESS_WORKERS", "-2")

	cfg = loadEnvConfig()
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 for negative value", cfg.Timeout)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 for negative value", cfg.Workers)
	}
}

// --- TestWarnUnknownEnvVars - typo detection

func TestWarnUnknownEnvVars(t *testing.T) {
	clearMdpressEnv(t)

	t.Run("typos are reported", func(t *testing.T) {
		t.Setenv("MDPRESS_THEME", "monokai") // should be MDPRESS_CODE_THEME

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		out := buf.String()
		if !strings.Contains(out, "MDPRESS_THEME") {
			t.Errorf("output = %q, want mention of MDPRESS_THEME", out)
		}
		if !strings.Contains(out, "typo?") {
			t.Errorf("output = %q, want typo suggestion", out)
		}
	})

	t.Run("known variables stay silent", func(t *testing.T) {
		t.Setenv("MDPRESS_ENGINE", "native")
		t.Setenv("MDPRESS_WORKERS", "2")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if buf.Len() != 0 {
			t.Errorf("output = %q, want silence for known variables", buf.String())
		}
	})

	t.Run("other prefixes are ignored", func(t *testing.T) {
		// Shares leading characters but lacks the MDPRESS_ underscore.
		t.Setenv("MDPRESSING_PLANT", "olive")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		if strings.Contains(buf.String(), "MDPRESSING_PLANT") {
			t.Errorf("output = %q, MDPRESSING_PLANT should not match", buf.String())
		}
	})
}

// --- TestApplyEnvConfig - env values replace file values

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty env leaves config untouched", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Engine.Name = "chrome"
		cfg.Style = "github"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Engine.Name != "chrome" || cfg.Style != "github" {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})

	t.Run("env values fill empty config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		env := &envConfig{
			Engine:    "chrome",
			Style:     "air",
			InputDir:  "docs",
			OutputDir: "pdfs",
			AssetPath: "/srv/assets",
			PageSize:  "legal",
			CodeTheme: "dracula",
		}

		applyEnvConfig(env, cfg)

		if cfg.Engine.Name != "chrome" {
			t.Errorf("engine = %q", cfg.Engine.Name)
		}
		if cfg.Style != "air" {
			t.Errorf("style = %q", cfg.Style)
		}
		if cfg.Input.DefaultDir != "docs" || cfg.Output.DefaultDir != "pdfs" {
			t.Errorf("dirs = %q, %q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		if cfg.Assets.BasePath != "/srv/assets" {
			t.Errorf("asset path = %q", cfg.Assets.BasePath)
		}
		if cfg.Page.Size != "legal" {
			t.Errorf("page size = %q", cfg.Page.Size)
		}
		if cfg.Code.Theme != "dracula" {
			t.Errorf("code theme = %q", cfg.Code.Theme)
		}
	})

	t.Run("env values replace file values", func(t *testing.T) {
		t.Parallel()

		// Simulates a config file that names chrome while the environment
		// says native; the environment is more specific to this run.
		cfg := config.DefaultConfig()
		cfg.Engine.Name = "chrome"
		cfg.Style = "github"
		cfg.Page.Size = "a4"

		applyEnvConfig(&envConfig{Engine: "native", Style: "air", PageSize: "letter"}, cfg)

		if cfg.Engine.Name != "native" {
			t.Errorf("engine = %q, env should replace the file value", cfg.Engine.Name)
		}
		if cfg.Style != "air" {
			t.Errorf("style = %q, env should replace the file value", cfg.Style)
		}
		if cfg.Page.Size != "letter" {
			t.Errorf("page size = %q, env should replace the file value", cfg.Page.Size)
		}
	})

	t.Run("footer date enables the footer", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{FooterDate: "auto:iso"}, cfg)

		if !cfg.Footer.Enabled {
			t.Error("footer not enabled by MDPRESS_FOOTER_DATE")
		}
		if cfg.Footer.Date != "auto:iso" {
			t.Errorf("footer date = %q", cfg.Footer.Date)
		}
	})
}

// --- TestKnownEnvVars - the documented variable surface

func TestKnownEnvVars(t *testing.T) {
	t.Parallel()

	want := []string{
		"MDPRESS_CONFIG",
		"MDPRESS_ENGINE",
		"MDPRESS_STYLE",
		"MDPRESS_TIMEOUT",
		"MDPRESS_INPUT_DIR",
		"MDPRESS_OUTPUT_DIR",
		"MDPRESS_ASSET_PATH",
		"MDPRESS_WORKERS",
		"MDPRESS_PAGE_SIZE",
		"MDPRESS_CODE_THEME",
		"MDPRESS_FOOTER_DATE",
		"MDPRESS_CONTAINER",
	}

	for _, name := range want {
		if !knownEnvVars[name] {
			t.Errorf("knownEnvVars missing %s", name)
		}
	}
	if len(knownEnvVars) != len(want) {
		t.Errorf("knownEnvVars has %d entries, want %d; update the docs when adding variables",
			len(knownEnvVars), len(want))
	}
}
