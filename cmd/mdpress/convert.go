package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
)

// ErrUnknownCodeTheme reports a highlight theme chroma does not know.
// The converter falls back silently on unknown themes; the CLI rejects
// them instead so typos surface immediately.
var ErrUnknownCodeTheme = errors.New("unknown code theme")

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Worker count: flag first, then MDPRESS_WORKERS, validated early
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	// Load configuration: the --config flag wins over MDPRESS_CONFIG
	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Environment variables override file values; CLI flags override both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Fail fast on settings that converter construction is too lazy to
	// surface before the batch starts.
	if err := validateEngineName(cfg.Engine.Name); err != nil {
		return err
	}
	if err := validateCodeTheme(cfg.Code.Theme); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.Engine.Timeout)
	if err != nil {
		return err
	}

	// Resolve "auto" date once for the entire batch
	resolvedDate, err := mdpress.ResolveDate(cfg.Footer.Date, env.Now())
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	cfg.Footer.Date = resolvedDate

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	// Bundle per-conversion parameters
	params, err := buildParams(flags, cfg)
	if err != nil {
		return err
	}

	// One converter per worker, all sharing the resolved settings
	pool := newPoolAdapter(resolvePoolSize(workers), buildConverterOptions(cfg, timeout, flags.style.noStyle))
	defer pool.Close()

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Engine flags
	if flags.engine != "" {
		cfg.Engine.Name = flags.engine
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Style flags
	if flags.style.style != "" {
		cfg.Style = flags.style.style
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	// Code flags
	if flags.code.theme != "" {
		cfg.Code.Theme = flags.code.theme
	}
	if flags.code.noHighlight {
		cfg.Code.Highlight = false
	}

	// Footer flags. Setting any footer detail implies the footer is wanted.
	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
		cfg.Footer.Enabled = true
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}
	if flags.footer.date != "" {
		cfg.Footer.Date = flags.footer.date
		cfg.Footer.Enabled = true
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Enabled = true
	}

	// Disable flags win over enable flags
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}
}

// validateEngineName rejects unknown engines before the pool is built.
// Converters are created lazily inside the pool, so a bad name would
// otherwise fail once per file instead of once per run.
func validateEngineName(name string) error {
	switch strings.ToLower(name) {
	case "", mdpress.EngineNative, mdpress.EngineChrome:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be native or chrome)", mdpress.ErrInvalidEngine, name)
	}
}

// validateCodeTheme checks the theme name against chroma's style registry.
func validateCodeTheme(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodeTheme, name)
	}
	return nil
}

// buildConverterOptions maps the merged config onto library options.
// Style resolution happens at converter construction, so every pool
// worker shares one resolved stylesheet.
func buildConverterOptions(cfg *config.Config, timeout time.Duration, noStyle bool) []mdpress.Option {
	var opts []mdpress.Option
	if cfg.Engine.Name != "" {
		opts = append(opts, mdpress.WithEngine(strings.ToLower(cfg.Engine.Name)))
	}
	if timeout > 0 {
		opts = append(opts, mdpress.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpress.WithAssetPath(cfg.Assets.BasePath))
	}
	switch {
	case noStyle:
		opts = append(opts, mdpress.WithStyle(mdpress.StyleNone))
	case cfg.Style != "":
		opts = append(opts, mdpress.WithStyle(cfg.Style))
	}
	if cfg.Code.Theme != "" {
		opts = append(opts, mdpress.WithCodeTheme(cfg.Code.Theme))
	}
	if !cfg.Code.Highlight {
		opts = append(opts, mdpress.WithHighlighting(false))
	}
	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
