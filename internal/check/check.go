// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation for the MKVToolNix binaries.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/mkvkit/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrMkvmergeNotFound    = errors.New("mkvmerge not found on PATH")
	ErrMkvpropeditNotFound = errors.New("mkvpropedit not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability and
// version of each MKVToolNix binary. Informational only; returns false
// when any tool is missing so main can set the exit code.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "mkvmerge", cfg.MkvmergePath)
	ok = checkTool(log, "mkvpropedit", cfg.MkvpropeditPath) && ok
	return ok
}

// checkTool verifies one binary is runnable and logs its version line.
func checkTool(log Logger, name, path string) bool {
	if _, err := exec.LookPath(path); err != nil {
		log.Error("%s not found (looked for %q)", name, path)
		return false
	}
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		log.Warn("%s found but --version failed: %v", name, err)
		return false
	}
	log.Success("%s: %s", name, firstLine(string(out)))
	return true
}

// CheckDeps is the pre-run validation: it verifies that both configured
// binaries resolve. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.MkvmergePath); err != nil {
		return ErrMkvmergeNotFound
	}
	if _, err := exec.LookPath(cfg.MkvpropeditPath); err != nil {
		return ErrMkvpropeditNotFound
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
