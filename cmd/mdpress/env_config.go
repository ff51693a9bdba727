package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpress/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MDPRESS_CONFIG: config file path
	Engine     string        // MDPRESS_ENGINE: native or chrome
	Style      string        // MDPRESS_STYLE: CSS style name or path
	Timeout    time.Duration // MDPRESS_TIMEOUT: PDF generation timeout

	// Tier 2 - I/O
	InputDir  string // MDPRESS_INPUT_DIR: default input directory
	OutputDir string // MDPRESS_OUTPUT_DIR: default output directory
	AssetPath string // MDPRESS_ASSET_PATH: custom asset directory
	Workers   int    // MDPRESS_WORKERS: parallel workers

	// Tier 3 - Rendering
	PageSize   string // MDPRESS_PAGE_SIZE: a4, letter, legal
	CodeTheme  string // MDPRESS_CODE_THEME: chroma style name
	FooterDate string // MDPRESS_FOOTER_DATE: footer date value
}

// knownEnvVars lists valid MDPRESS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MDPRESS_CONFIG":  true,
	"MDPRESS_ENGINE":  true,
	"MDPRESS_STYLE":   true,
	"MDPRESS_TIMEOUT": true,
	// Tier 2 - I/O
	"MDPRESS_INPUT_DIR":  true,
	"MDPRESS_OUTPUT_DIR": true,
	"MDPRESS_ASSET_PATH": true,
	"MDPRESS_WORKERS":    true,
	// Tier 3 - Rendering
	"MDPRESS_PAGE_SIZE":   true,
	"MDPRESS_CODE_THEME":  true,
	"MDPRESS_FOOTER_DATE": true,
	// Container detection override, read by doctor
	"MDPRESS_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDPRESS_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MDPRESS_CONFIG"),
		Engine:     os.Getenv("MDPRESS_ENGINE"),
		Style:      os.Getenv("MDPRESS_STYLE"),
		// Tier 2
		InputDir:  os.Getenv("MDPRESS_INPUT_DIR"),
		OutputDir: os.Getenv("MDPRESS_OUTPUT_DIR"),
		AssetPath: os.Getenv("MDPRESS_ASSET_PATH"),
		// Tier 3
		PageSize:   os.Getenv("MDPRESS_PAGE_SIZE"),
		CodeTheme:  os.Getenv("MDPRESS_CODE_THEME"),
		FooterDate: os.Getenv("MDPRESS_FOOTER_DATE"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MDPRESS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MDPRESS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPRESS_* variables.
// Helps catch typos like MDPRESS_THEME instead of MDPRESS_CODE_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPRESS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment variable values onto config.
// Environment values replace config-file values; CLI flags are merged
// afterwards and win over both. Timeout is resolved separately through
// resolveTimeoutWithEnv. Precedence: CLI flags > env vars > config file.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Engine != "" {
		cfg.Engine.Name = env.Engine
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}

	// Tier 2 - I/O
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// Tier 3 - Rendering
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.CodeTheme != "" {
		cfg.Code.Theme = env.CodeTheme
	}
	if env.FooterDate != "" {
		cfg.Footer.Date = env.FooterDate
		cfg.Footer.Enabled = true
	}
}
