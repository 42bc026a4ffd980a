// Package config holds runtime configuration: defaults, optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ParseMode controls how much of each file mkvpropedit reads before editing.
type ParseMode string

const (
	ParseDefault ParseMode = ""     // Let the tool decide (fast).
	ParseFast    ParseMode = "fast" // Headers only.
	ParseFull    ParseMode = "full" // Whole file; slower, handles damaged files.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from a YAML file by [LoadFile], and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir string `yaml:"-"`

	// File discovery.
	Pattern string `yaml:"pattern"` // doublestar glob relative to InputDir. Default: "**/*.mkv".

	// Tool binaries.
	MkvmergePath    string `yaml:"mkvmerge"`    // Default: "mkvmerge" (PATH lookup).
	MkvpropeditPath string `yaml:"mkvpropedit"` // Default: "mkvpropedit" (PATH lookup).

	// Edit behavior.
	TitleFromFilename bool      `yaml:"title_from_filename"` // Default: true. Cleared by --no-title.
	DefaultAudioLang  string    `yaml:"default_audio_lang"`  // ISO 639 code or English name; empty disables the edit.
	EditParseMode     ParseMode `yaml:"parse_mode"`          // Default: "" (tool default).
	Remux             bool      `yaml:"remux"`               // Convert non-Matroska files to MKV instead of skipping.

	// Behavior flags.
	DryRun       bool `yaml:"-"`
	SkipUnedited bool `yaml:"skip_unedited"` // Default: true. Skip files already matching the wanted state.

	// Result rendering toggles (see display.Options).
	ShowCommand  bool `yaml:"show_command"`   // Default: false.
	ShowOutput   bool `yaml:"show_output"`    // Default: true.
	ShowExitCode bool `yaml:"show_exit_code"` // Default: true.

	// Display and logging.
	Verbose   bool      `yaml:"verbose"`
	ColorMode ColorMode `yaml:"color"`    // Default: "auto".
	LogFile   string    `yaml:"log_file"` // Optional JSON log file path.
	CheckOnly bool      `yaml:"-"`        // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the
// base before [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Pattern:           "**/*.mkv",
		MkvmergePath:      "mkvmerge",
		MkvpropeditPath:   "mkvpropedit",
		TitleFromFilename: true,
		SkipUnedited:      true,
		ShowCommand:       false,
		ShowOutput:        true,
		ShowExitCode:      true,
		ColorMode:         ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path. The
// filesystem root "/" is returned unchanged so we don't produce an empty
// string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// reLangCode matches a syntactically plausible ISO 639 code. Longer values
// are treated as English language names; both forms are resolved against
// mkvmerge's language table at runtime.
var reLangCode = regexp.MustCompile(`^[a-z]{2,3}$`)

// Validate checks enum fields and required values. When not in CheckOnly
// mode it also requires the input directory positional argument.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.EditParseMode {
	case ParseDefault, ParseFast, ParseFull:
		// valid
	default:
		return errors.New("invalid parse mode (use 'fast' or 'full')")
	}

	if c.Pattern == "" {
		return errors.New("file pattern must not be empty")
	}

	if c.DefaultAudioLang != "" && !reLangCode.MatchString(c.DefaultAudioLang) &&
		len(c.DefaultAudioLang) <= 3 {
		return fmt.Errorf("invalid language %q (use an ISO 639 code like 'jpn', or an English name like 'Japanese')", c.DefaultAudioLang)
	}

	if c.MkvmergePath == "" || c.MkvpropeditPath == "" {
		return errors.New("tool binary paths must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need an input directory argument")
	}
	return nil
}
