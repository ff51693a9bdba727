package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
// The code-theme values come straight from chroma's registry so the
// completion list and the validator can never disagree.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"engine":          {Values: []string{"native", "chrome"}},
	"page-size":       {Values: []string{"a4", "letter", "legal"}},
	"orientation":     {Values: []string{"portrait", "landscape"}},
	"footer-position": {Values: []string{"left", "center", "right"}},
	"code-theme":      {Values: styles.Names()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},
	"css":    {FileGlob: "*.css"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}
	buildConvertFlags(fs, f)
	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(buildConvertFlagSet())

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to PDF",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check engine and environment readiness",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output results as JSON"}},
		},
		{
			Name:  "completion",
			Desc:  "Generate shell completion script",
			Flags: nil,
		},
		{
			Name:  "version",
			Desc:  "Show version information",
			Flags: nil,
		},
		{
			Name:  "help",
			Desc:  "Show help for a command",
			Flags: nil,
		},
	}
}

// commandNames returns the names of all commands in order.
func commandNames(commands []commandDef) []string {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpress completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdpress completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdpress completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdpress completion fish > ~/.config/fish/completions/mdpress.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    mdpress completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

// generateBash writes the bash completion script.
func generateBash(w io.Writer) error {
	commands := getCommands()
	names := strings.Join(commandNames(commands), " ")

	var b strings.Builder
	b.WriteString("# bash completion for mdpress\n")
	b.WriteString("# Install: eval \"$(mdpress completion bash)\"\n\n")
	b.WriteString("_mdpress_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", names)
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, cmd := range commands {
		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		switch cmd.Name {
		case "completion":
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\"))\n")
		case "help":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", names)
		default:
			writeBashCommandArm(&b, cmd)
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _mdpress_completions mdpress\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeBashCommandArm emits value completion for the previous flag, then
// flag-name or file completion for the current word.
func writeBashCommandArm(b *strings.Builder, cmd commandDef) {
	var valueFlags []flagDef
	for _, f := range cmd.Flags {
		if f.Type == flagEnum || f.Type == flagFile || f.Type == flagDir {
			valueFlags = append(valueFlags, f)
		}
	}

	if len(valueFlags) > 0 {
		b.WriteString("        case \"$prev\" in\n")
		for _, f := range valueFlags {
			fmt.Fprintf(b, "        %s)\n", bashFlagPattern(f))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", bashExtAlternation(f.FileGlob))
			case flagDir:
				b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			}
			b.WriteString("            return\n")
			b.WriteString("            ;;\n")
		}
		b.WriteString("        esac\n")
	}

	b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(bashFlagWords(cmd.Flags), " "))
	if cmd.TakesFiles {
		b.WriteString("        else\n")
		fmt.Fprintf(b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", bashExtAlternation(cmd.FilePattern))
	}
	b.WriteString("        fi\n")
}

// bashFlagPattern builds a case pattern matching the flag's spellings.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return fmt.Sprintf("-%s|--%s", f.Short, f.Long)
	}
	return "--" + f.Long
}

// bashFlagWords lists every flag spelling for word completion.
func bashFlagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return words
}

// bashExtAlternation converts "*.yaml,*.yml" to "yaml|yml" for extglob.
func bashExtAlternation(glob string) string {
	parts := strings.Split(glob, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return strings.Join(exts, "|")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// generateZsh writes the zsh completion script.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("#compdef mdpress\n")
	b.WriteString("# zsh completion for mdpress\n")
	b.WriteString("# Install: eval \"$(mdpress completion zsh)\"\n\n")
	b.WriteString("_mdpress() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, cmd := range commands {
		switch {
		case cmd.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        _arguments '2:shell:(bash zsh fish powershell)'\n")
			b.WriteString("        ;;\n")
		case cmd.Name == "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        _arguments '2:command:(%s)'\n", strings.Join(commandNames(commands), " "))
			b.WriteString("        ;;\n")
		case len(cmd.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n", cmd.Name)
			b.WriteString("        _arguments \\\n")
			for _, f := range cmd.Flags {
				fmt.Fprintf(&b, "            %s \\\n", zshFlagSpec(f))
			}
			if cmd.TakesFiles {
				fmt.Fprintf(&b, "            '*:file:_files -g \"%s\"'\n", strings.ReplaceAll(cmd.FilePattern, ",", " "))
			} else {
				// Trailing no-op keeps the backslash continuation valid
				b.WriteString("            '*: :'\n")
			}
			b.WriteString("        ;;\n")
		}
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_mdpress \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec builds one _arguments optspec for a flag.
func zshFlagSpec(f flagDef) string {
	desc := zshSanitize(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", strings.ReplaceAll(f.FileGlob, ",", " "))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value:"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

// zshSanitize strips characters that would break an optspec.
func zshSanitize(s string) string {
	r := strings.NewReplacer("'", "", "[", "(", "]", ")")
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// generateFish writes the fish completion script.
func generateFish(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# fish completion for mdpress\n")
	b.WriteString("# Install: mdpress completion fish > ~/.config/fish/completions/mdpress.fish\n\n")
	b.WriteString("function __fish_mdpress_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_mdpress_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	b.WriteString("# Commands\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "complete -c mdpress -f -n __fish_mdpress_needs_command -a %s -d '%s'\n", cmd.Name, fishSanitize(cmd.Desc))
	}
	b.WriteString("\n")

	for _, cmd := range commands {
		switch {
		case cmd.Name == "completion":
			b.WriteString("# completion\n")
			b.WriteString("complete -c mdpress -x -n '__fish_mdpress_using_command completion' -a 'bash zsh fish powershell'\n\n")
		case cmd.Name == "help":
			b.WriteString("# help\n")
			fmt.Fprintf(&b, "complete -c mdpress -x -n '__fish_mdpress_using_command help' -a '%s'\n\n", strings.Join(commandNames(commands), " "))
		case len(cmd.Flags) > 0:
			fmt.Fprintf(&b, "# %s\n", cmd.Name)
			for _, f := range cmd.Flags {
				b.WriteString(fishFlagSpec(cmd.Name, f))
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishFlagSpec builds one complete statement for a flag.
func fishFlagSpec(cmdName string, f flagDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c mdpress -n '__fish_mdpress_using_command %s'", cmdName)
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	fmt.Fprintf(&b, " -l %s", f.Long)
	switch f.Type {
	case flagBool:
		// Flag takes no argument
	case flagEnum:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
	case flagDir:
		b.WriteString(" -x -a '(__fish_complete_directories)'")
	default:
		b.WriteString(" -r")
	}
	fmt.Fprintf(&b, " -d '%s'\n", fishSanitize(f.Desc))
	return b.String()
}

// fishSanitize escapes single quotes for fish string literals.
func fishSanitize(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// generatePowerShell writes the PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# powershell completion for mdpress\n")
	b.WriteString("# Install: mdpress completion powershell | Out-String | Invoke-Expression\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName mdpress -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        @{ Name = '%s'; Desc = '%s' }\n", cmd.Name, psSanitize(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    if ($elements.Count -le 2) {\n")
	b.WriteString("        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    switch ($elements[1].Value) {\n")

	for _, cmd := range commands {
		switch {
		case cmd.Name == "completion":
			b.WriteString("        'completion' {\n")
			b.WriteString("            'bash', 'zsh', 'fish', 'powershell' | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
			b.WriteString("                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
			b.WriteString("            }\n")
			b.WriteString("        }\n")
		case cmd.Name == "help":
			quoted := make([]string, 0, len(commands))
			for _, c := range commands {
				quoted = append(quoted, "'"+c.Name+"'")
			}
			b.WriteString("        'help' {\n")
			fmt.Fprintf(&b, "            %s | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n", strings.Join(quoted, ", "))
			b.WriteString("                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
			b.WriteString("            }\n")
			b.WriteString("        }\n")
		case len(cmd.Flags) > 0:
			fmt.Fprintf(&b, "        '%s' {\n", cmd.Name)
			b.WriteString("            $flags = @(\n")
			for _, f := range cmd.Flags {
				fmt.Fprintf(&b, "                @{ Name = '--%s'; Desc = '%s' }\n", f.Long, psSanitize(f.Desc))
			}
			b.WriteString("            )\n")
			b.WriteString("            $flags | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
			b.WriteString("                [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Desc)\n")
			b.WriteString("            }\n")
			b.WriteString("        }\n")
		}
	}

	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psSanitize doubles single quotes for PowerShell string literals.
func psSanitize(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
