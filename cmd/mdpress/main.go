package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdpress "github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/config"
	"github.com/alnah/go-mdpress/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS for container CPU limits. Errors are ignored:
	// maxprocs.Set only fails on an invalid GOMAXPROCS env var, in which
	// case the Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag scans raw arguments for the verbose flag before parsing.
// maxprocs logging has to be decided before any FlagSet exists.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// commands lists the recognized subcommands.
var commands = []string{"convert", "doctor", "completion", "version", "help"}

// isCommand reports whether name is a recognized subcommand.
func isCommand(name string) bool {
	for _, c := range commands {
		if name == c {
			return true
		}
	}
	return false
}

// looksLikeMarkdown reports whether the argument is a markdown file path.
// Used to detect legacy invocations without the convert subcommand.
func looksLikeMarkdown(path string) bool {
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".markdown")
}

// runMain dispatches to the requested command and returns an exit code.
// It is the testable core of main(): all I/O goes through env.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	rest := args[2:]

	if !isCommand(cmd) {
		// Legacy invocation: mdpress doc.md (pre-subcommand syntax)
		if looksLikeMarkdown(cmd) || strings.HasPrefix(cmd, "-") {
			fmt.Fprintln(env.Stderr,
				"DEPRECATED: invoking mdpress without a subcommand; use 'mdpress convert <input>'")
			return runConvertCmd(args[1:], env)
		}
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "mdpress %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	}

	return ExitGeneral
}

// runConvertCmd parses convert flags, runs the conversion, and maps the
// outcome to an exit code with an actionable hint where one applies.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, decorateError(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// decorateError appends an actionable hint to user-facing errors.
func decorateError(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, mdpress.ErrBrowserConnect):
		msg += hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(nil)
	case errors.Is(err, mdpress.ErrStyleNotFound):
		msg += hints.ForStyleNotFound(mdpress.Styles())
	case errors.Is(err, ErrUnknownCodeTheme):
		msg += hints.ForCodeTheme()
	case errors.Is(err, ErrWritePDF):
		msg += hints.ForOutputDirectory()
	}
	return msg
}

// resolveTimeoutWithEnv resolves the PDF generation timeout.
// Priority: CLI flag > environment variable > config file > engine default.
// Returns 0 when nothing is set, which means the engine default applies.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	value := flagValue
	if value == "" && envValue > 0 {
		return envValue, nil
	}
	if value == "" {
		value = configValue
	}
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %v", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", value)
	}
	return d, nil
}
