// Package display renders command results and the startup banner.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mkvkit/internal/config"
	"github.com/backmassage/mkvkit/internal/runner"
	"github.com/backmassage/mkvkit/internal/term"
)

// Options selects which parts of a command result are rendered. The three
// toggles are independent; zero-value Options renders nothing.
type Options struct {
	// ShowCommand includes the command line, prefixed with "$ ".
	ShowCommand bool
	// ShowOutput includes the classified output lines.
	ShowOutput bool
	// ShowExitCode includes the numeric exit status.
	ShowExitCode bool
}

// OptionsFrom builds render options from the configured display toggles.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		ShowCommand:  cfg.ShowCommand,
		ShowOutput:   cfg.ShowOutput,
		ShowExitCode: cfg.ShowExitCode,
	}
}

// Render writes the selected parts of res to w. Output lines are indented
// and colored by severity (errors red, warnings yellow). Rendering a
// streaming result consumes output as it is produced and, when the exit
// code is shown, blocks until the process terminates.
func Render(w io.Writer, res runner.Result, opts Options) error {
	if opts.ShowCommand {
		fmt.Fprintf(w, "%s$ %s%s\n", term.Cyan, res.CommandLine(), term.NC)
	}

	if opts.ShowOutput {
		cur := res.Output()
		for cur.Next() {
			line := cur.Line()
			switch line.Severity {
			case runner.SeverityError:
				fmt.Fprintf(w, "  %s%s%s\n", term.Red, line.Message, term.NC)
			case runner.SeverityWarning:
				fmt.Fprintf(w, "  %s%s%s\n", term.Yellow, line.Message, term.NC)
			default:
				fmt.Fprintf(w, "  %s\n", line.Message)
			}
		}
		if err := cur.Err(); err != nil {
			return fmt.Errorf("render output: %w", err)
		}
	}

	if opts.ShowExitCode {
		code, err := res.ExitCode()
		if err != nil {
			return fmt.Errorf("render exit code: %w", err)
		}
		color := term.Green
		if code != runner.SuccessExitCode {
			color = term.Red
		}
		fmt.Fprintf(w, "  %sexit code: %d%s\n", color, code, term.NC)
	}

	return nil
}

// RenderCommand writes only the command line, used for dry-run previews.
func RenderCommand(w io.Writer, c runner.Command) {
	fmt.Fprintf(w, "%s$ %s%s\n", term.Cyan, c.String(), term.NC)
}
