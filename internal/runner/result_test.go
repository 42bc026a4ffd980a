package runner

import (
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStreaming builds a Streaming result over canned output and a fixed
// exit code, with no real process behind it.
func fakeStreaming(output string, exitCode int) (*Streaming, *atomic.Int64) {
	var waits atomic.Int64
	wait := func() (int, error) {
		waits.Add(1)
		return exitCode, nil
	}
	s := newStreaming("test-run", "mkvmerge -o out.mkv in.mkv",
		io.NopCloser(strings.NewReader(output)), wait)
	return s, &waits
}

func TestStreaming_ExitCodeIsMemoized(t *testing.T) {
	s, waits := fakeStreaming("", 2)
	defer s.Close()

	code, err := s.ExitCode()
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	code, err = s.ExitCode()
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, int64(1), waits.Load(), "wait must run exactly once")
}

func TestStreaming_SuccessFalseOnWarningDespiteCleanExit(t *testing.T) {
	s, _ := fakeStreaming("Starting.\nWarning: track 2 has no language\nDone.\n", SuccessExitCode)
	defer s.Close()

	ok, err := s.Success()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreaming_WaitOnSuccessMaterializes(t *testing.T) {
	s, _ := fakeStreaming("Muxing complete.\n", SuccessExitCode)

	m, err := s.Wait()
	require.NoError(t, err)

	ok, err := m.Success()
	require.NoError(t, err)
	assert.True(t, ok)

	code, err := m.ExitCode()
	require.NoError(t, err)
	assert.Equal(t, SuccessExitCode, code)

	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, Line{Message: "Muxing complete.", Severity: SeverityInfo}, lines[0])

	// Two independent traversals yield the same ordered list.
	first := collect(t, m.Output())
	second := collect(t, m.Output())
	assert.Equal(t, first, second)
	assert.Equal(t, lines, first)
}

func TestStreaming_WaitOnFailureCarriesResult(t *testing.T) {
	s, _ := fakeStreaming("Starting.\nWarning: track 2 has no language\nDone.\n", SuccessExitCode)

	m, err := s.Wait()
	assert.Nil(t, m)

	var failed *FailedError
	require.ErrorAs(t, err, &failed)

	code, codeErr := failed.Result.ExitCode()
	require.NoError(t, codeErr)
	assert.Equal(t, SuccessExitCode, code)
	assert.Len(t, failed.Result.Lines(), 3)
	assert.Contains(t, failed.Error(), "1 warning line(s)")
}

func TestStreaming_WaitOnNonzeroExit(t *testing.T) {
	s, _ := fakeStreaming("Error: the file could not be opened\n", 2)

	_, err := s.Wait()
	var failed *FailedError
	require.ErrorAs(t, err, &failed)

	code, codeErr := failed.Result.ExitCode()
	require.NoError(t, codeErr)
	assert.Equal(t, 2, code)
	assert.Contains(t, failed.Error(), "exit code 2")
	assert.Contains(t, failed.Error(), "1 error line(s)")
}

func TestStreaming_CloseIsIdempotent(t *testing.T) {
	s, _ := fakeStreaming("whatever\n", SuccessExitCode)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestStreaming_OutputIterationDoesNotForceExitCode(t *testing.T) {
	s, waits := fakeStreaming("one\ntwo\n", SuccessExitCode)
	defer s.Close()

	lines := collect(t, s.Output())
	require.Len(t, lines, 2)
	assert.Equal(t, int64(0), waits.Load(), "iterating output must not wait for the process")
}

func TestStreaming_ReadErrorPropagatesFromWait(t *testing.T) {
	wait := func() (int, error) { return SuccessExitCode, nil }
	src := io.NopCloser(io.MultiReader(
		strings.NewReader("partial\n"),
		&failingReader{err: errShortCircuit},
	))
	s := newStreaming("test-run", "mkvpropedit movie.mkv", src, wait)

	_, err := s.Wait()
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, errShortCircuit)
}

func collect(t *testing.T, cur *Cursor) []Line {
	t.Helper()
	var out []Line
	for cur.Next() {
		out = append(out, cur.Line())
	}
	require.NoError(t, cur.Err())
	return out
}

var errShortCircuit = assert.AnError
