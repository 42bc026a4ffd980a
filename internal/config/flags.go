package config

// This file implements CLI flag parsing and help text. Flags are grouped
// into edits, behavior, display, and utility. Negated flags (e.g.
// --no-title) are applied after Parse so Config defaults (and YAML file
// values) hold unless the flag is set.

import (
	"flag"
	"fmt"
	"os"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "0.3.0-dev"

// ParseFlags parses argv (without the program name) into cfg, loading the
// YAML config file between defaults and flags. On --help or --version it
// prints and exits. On error it returns non-nil (e.g. unknown flag,
// missing positional args).
func ParseFlags(cfg *Config, argv []string) error {
	fs := flag.NewFlagSet("mkvkit", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: captured as bools then applied to cfg after
	// Parse, so that defaults and config-file values hold unless the user
	// passes the flag.
	var negated negatedFlags

	configPath := fs.String("config", "", "Config file path (default ~/.config/mkvkit/config.yaml)")

	defineEditFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(argv); err != nil {
		return err
	}

	// The config file sits between defaults and flags: load it, then
	// reparse so explicit flags win over file values.
	path, explicit := *configPath, *configPath != ""
	if !explicit {
		path = DefaultFilePath()
	}
	if err := LoadFile(cfg, path, explicit); err != nil {
		return err
	}
	if err := fs.Parse(argv); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "mkvkit v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse. These
// either invert a default (e.g. noTitle -> TitleFromFilename=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noTitle      bool
	noSkip       bool
	fullParse    bool
	showCommand  bool
	hideOutput   bool
	hideExitCode bool
	forceColor   bool
	noColor      bool
	showVersion  bool
	showHelp     bool
}

// defineEditFlags registers the property-edit flags.
func defineEditFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.DefaultAudioLang, "language", cfg.DefaultAudioLang, "Set default audio track language (ISO 639 code or English name)")
	fs.StringVar(&cfg.DefaultAudioLang, "L", cfg.DefaultAudioLang, "Same as --language")
	fs.BoolVar(&n.noTitle, "no-title", false, "Do not set the container title from the filename")
	fs.BoolVar(&n.fullParse, "full-parse", false, "Make mkvpropedit parse whole files (slower, handles damaged files)")
}

// defineBehaviorFlags registers pattern, dry-run, and skip behavior.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "Glob pattern for file discovery (doublestar syntax)")
	fs.StringVar(&cfg.Pattern, "p", cfg.Pattern, "Same as --pattern")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not modify any file")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noSkip, "no-skip", false, "Edit files even when they already match the wanted state")
	fs.BoolVar(&cfg.Remux, "remux", false, "Remux non-Matroska files to MKV instead of skipping them")
	fs.BoolVar(&cfg.Remux, "r", false, "Same as --remux")
	fs.StringVar(&cfg.MkvmergePath, "mkvmerge", cfg.MkvmergePath, "Path to the mkvmerge binary")
	fs.StringVar(&cfg.MkvpropeditPath, "mkvpropedit", cfg.MkvpropeditPath, "Path to the mkvpropedit binary")
}

// defineDisplayFlags registers rendering toggles, color, verbose, check, log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.showCommand, "show-command", false, "Include the command line in result output")
	fs.BoolVar(&n.hideOutput, "hide-output", false, "Exclude tool output lines from result output")
	fs.BoolVar(&n.hideExitCode, "hide-exit-code", false, "Exclude the exit code from result output")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noTitle {
		cfg.TitleFromFilename = false
	}
	if n.noSkip {
		cfg.SkipUnedited = false
	}
	if n.fullParse {
		cfg.EditParseMode = ParseFull
	}
	if n.showCommand {
		cfg.ShowCommand = true
	}
	if n.hideOutput {
		cfg.ShowOutput = false
	}
	if n.hideExitCode {
		cfg.ShowExitCode = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the positional arg when not in
// CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input directory argument")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "mkvkit v" + version + " — batch Matroska property editor"},
		{"", ""},
		{"  mkvkit [OPTIONS] <input_dir>", ""},
		{"", ""},
		{"Edits", ""},
		{"  -L, --language <value>", "Set default audio track language (code or name)"},
		{"  --no-title", "Do not set the container title from the filename"},
		{"  --full-parse", "Parse whole files instead of headers only"},
		{"", ""},
		{"Behavior", ""},
		{"  -p, --pattern <glob>", "File discovery pattern (default: **/*.mkv)"},
		{"  -d, --dry-run", "Preview only; do not modify any file"},
		{"  -r, --remux", "Remux non-Matroska files to MKV"},
		{"  --no-skip", "Edit files already matching the wanted state"},
		{"  --mkvmerge <path>", "Path to mkvmerge (default: PATH lookup)"},
		{"  --mkvpropedit <path>", "Path to mkvpropedit (default: PATH lookup)"},
		{"", ""},
		{"Display", ""},
		{"  --show-command", "Include the command line in result output"},
		{"  --hide-output", "Exclude tool output lines from result output"},
		{"  --hide-exit-code", "Exclude the exit code from result output"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "Config file (default: ~/.config/mkvkit/config.yaml)"},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  -c, --check", "System diagnostics (mkvmerge, mkvpropedit)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
