package runner

import (
	"errors"
	"fmt"
)

// ErrClosed is reported by cursors that reach the end of the buffer after
// the output handle was closed but before the source was fully drained.
// Lines buffered before the close remain replayable.
var ErrClosed = errors.New("runner: output closed before fully read")

// ReadError wraps an I/O failure on the live output stream. The failure is
// cached by the owning [LineCache] as its terminal condition, so every
// cursor that reaches the failing position observes the same error.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "runner: reading tool output: " + e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

// FailedError is returned by [Streaming.Wait] when the command did not
// succeed: nonzero exit code, or at least one warning or error line. It
// carries the fully drained result so callers can inspect or render it.
type FailedError struct {
	Result *Materialized
}

func (e *FailedError) Error() string {
	var warnings, errs int
	for _, l := range e.Result.Lines() {
		switch l.Severity {
		case SeverityWarning:
			warnings++
		case SeverityError:
			errs++
		}
	}
	code, _ := e.Result.ExitCode()
	return fmt.Sprintf("runner: command failed: exit code %d, %d error line(s), %d warning line(s)",
		code, errs, warnings)
}
