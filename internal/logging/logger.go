// Package logging provides the leveled logger used across the tool: a
// zerolog console writer for the terminal plus an optional JSON file sink.
// The printf-style methods keep call sites simple; structured fields are
// reserved for the file sink where they matter.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/mkvkit/internal/config"
	"github.com/backmassage/mkvkit/internal/term"
)

// Logger wraps a zerolog.Logger with the small leveled API the rest of the
// tool uses. Call Close when done if a log file was configured.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New builds the logger from cfg: it configures the ANSI color state,
// selects debug level when verbose, and opens the optional JSON log file.
func New(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !term.Enabled(),
	}

	var w io.Writer = console
	l := &Logger{}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		w = zerolog.MultiLevelWriter(console, f)
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	l.zl = zerolog.New(w).With().Timestamp().Logger().Level(level)
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Success logs at INFO level with a success marker, used for completed
// work so the file sink can distinguish it from plain progress.
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Info().Bool("success", true).Msgf(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Debug logs at DEBUG level; suppressed unless verbose was configured.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// WithRun returns a derived logger tagging every entry with the execution
// run ID, used when tool output is forwarded line by line. The derived
// logger does not own the file sink; Close it only via the root logger.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{zl: l.zl.With().Str("run_id", runID).Logger()}
}

// init tightens zerolog's global defaults for this process.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
