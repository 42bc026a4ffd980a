package runner

import (
	"io"
	"slices"
	"sync"
)

// SuccessExitCode is the exit status treated as success. The MKVToolNix
// tools exit 0 on success, 1 when warnings were issued, and 2 on error;
// warnings are already surfaced through line classification, so plain 0 is
// the success value here.
const SuccessExitCode = 0

// Result is the contract shared by the two command result flavors.
// [Streaming] is attached to a live process; [Materialized] is an immutable
// snapshot. On a Streaming result, ExitCode and Success are blocking on
// first call (documented on the concrete types).
type Result interface {
	// CommandLine returns the human-readable command line that produced
	// this result.
	CommandLine() string
	// ExitCode returns the process exit status.
	ExitCode() (int, error)
	// Output returns a fresh cursor over the classified output lines.
	Output() *Cursor
	// Success reports whether the command succeeded: exit code equal to
	// SuccessExitCode and no warning or error lines in the full output.
	Success() (bool, error)
}

// Streaming is a command result still attached to a live, possibly
// incomplete process. It owns the read end of the process output pipe and
// must be closed on every exit path; [Streaming.Wait] and [Streaming.Close]
// both release it, and Close is idempotent.
type Streaming struct {
	id      string
	cmdline string
	output  *LineCache

	handle io.Closer           // read end of the output pipe
	waitFn func() (int, error) // blocks until process exit

	exitOnce sync.Once
	exitCode int
	exitErr  error

	okOnce sync.Once
	ok     bool
	okErr  error

	closeOnce sync.Once
}

func newStreaming(id, cmdline string, output io.ReadCloser, wait func() (int, error)) *Streaming {
	return &Streaming{
		id:      id,
		cmdline: cmdline,
		output:  newLineCache(output),
		handle:  output,
		waitFn:  wait,
	}
}

// ID returns the unique identifier assigned to this execution.
func (s *Streaming) ID() string { return s.id }

// CommandLine returns the human-readable command line.
func (s *Streaming) CommandLine() string { return s.cmdline }

// Output returns a fresh cursor over the classified output. Iterating it
// reads the process output as it is produced; it does not, by itself, wait
// for the exit code.
func (s *Streaming) Output() *Cursor { return s.output.Cursor() }

// ExitCode blocks until the process terminates, then returns its exit
// status. Memoized: subsequent calls return the cached value without
// blocking again.
func (s *Streaming) ExitCode() (int, error) {
	s.exitOnce.Do(func() { s.exitCode, s.exitErr = s.waitFn() })
	return s.exitCode, s.exitErr
}

// Success drains the remaining output and forces the exit code; both are
// blocking on the first call and memoized afterwards. Semantic failure is
// reported through the bool, never as an error; the error is reserved for
// stream read and wait failures.
func (s *Streaming) Success() (bool, error) {
	s.okOnce.Do(func() { s.ok, s.okErr = s.evalSuccess() })
	return s.ok, s.okErr
}

func (s *Streaming) evalSuccess() (bool, error) {
	lines, err := s.output.drain()
	if err != nil {
		return false, err
	}
	code, err := s.ExitCode()
	if err != nil {
		return false, err
	}
	if code != SuccessExitCode {
		return false, nil
	}
	for _, l := range lines {
		if l.Severity != SeverityInfo {
			return false, nil
		}
	}
	return true, nil
}

// Wait drains the output, evaluates success, and releases the output
// handle on every path out, success or failure. On success it returns the
// materialized snapshot; on semantic failure it returns a [*FailedError]
// carrying that same snapshot. Stream read and wait failures propagate
// unmodified.
func (s *Streaming) Wait() (*Materialized, error) {
	defer s.Close()

	ok, err := s.Success()
	if err != nil {
		return nil, err
	}

	// Already fully buffered by Success; this replays the cache.
	lines, err := s.output.drain()
	if err != nil {
		return nil, err
	}
	code, err := s.ExitCode()
	if err != nil {
		return nil, err
	}

	m := newMaterialized(s.cmdline, code, lines)
	if !ok {
		return nil, &FailedError{Result: m}
	}
	return m, nil
}

// Close releases the output handle. Idempotent, safe to call while the
// process is still running (the process itself is not killed), and
// required on every exit path including early abandonment. The handle is
// closed before the cache is marked closed: closing the handle interrupts
// a cursor blocked mid-pull on a silent process, which then reports
// [ErrClosed], and Close returns without waiting for process output.
func (s *Streaming) Close() error {
	s.closeOnce.Do(func() {
		if s.handle != nil {
			_ = s.handle.Close()
		}
		s.output.close()
	})
	return nil
}

// Materialized is an immutable, fully drained command result. It holds no
// live process handle and is safe to retain and re-iterate indefinitely.
type Materialized struct {
	cmdline  string
	exitCode int
	output   *LineCache
}

func newMaterialized(cmdline string, exitCode int, lines []Line) *Materialized {
	return &Materialized{
		cmdline:  cmdline,
		exitCode: exitCode,
		output:   sealedLineCache(slices.Clone(lines)),
	}
}

// CommandLine returns the human-readable command line.
func (m *Materialized) CommandLine() string { return m.cmdline }

// ExitCode returns the recorded exit status. Never blocks.
func (m *Materialized) ExitCode() (int, error) { return m.exitCode, nil }

// Output returns a fresh, independent cursor over the recorded lines.
func (m *Materialized) Output() *Cursor { return m.output.Cursor() }

// Lines returns a copy of the recorded output lines in emission order.
func (m *Materialized) Lines() []Line { return slices.Clone(m.output.lines) }

// Success reports the recorded verdict: exit code equal to SuccessExitCode
// and no warning or error lines. Pure; never blocks, never fails.
func (m *Materialized) Success() (bool, error) {
	if m.exitCode != SuccessExitCode {
		return false, nil
	}
	for _, l := range m.output.lines {
		if l.Severity != SeverityInfo {
			return false, nil
		}
	}
	return true, nil
}
