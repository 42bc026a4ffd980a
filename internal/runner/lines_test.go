package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader counts Read calls and fails the test if two reads ever
// overlap, which would mean the cache let more than one cursor pull from
// the source at the same time.
type countingReader struct {
	t     *testing.T
	r     io.Reader
	reads atomic.Int64
	busy  atomic.Bool
}

func (cr *countingReader) Read(p []byte) (int, error) {
	if !cr.busy.CompareAndSwap(false, true) {
		cr.t.Error("concurrent Read on the underlying source")
	}
	defer cr.busy.Store(false)
	cr.reads.Add(1)
	return cr.r.Read(p)
}

func drainCursor(t *testing.T, cur *Cursor) []Line {
	t.Helper()
	var out []Line
	for cur.Next() {
		out = append(out, cur.Line())
	}
	require.NoError(t, cur.Err())
	return out
}

func TestLineCache_ReplayYieldsIdenticalResults(t *testing.T) {
	src := &countingReader{t: t, r: strings.NewReader("Starting.\nWarning: no language\nDone.\n")}
	c := newLineCache(src)

	first := drainCursor(t, c.Cursor())
	readsAfterFirst := src.reads.Load()
	second := drainCursor(t, c.Cursor())

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, SeverityWarning, first[1].Severity)

	// The second drain must be served entirely from the buffer.
	assert.Equal(t, readsAfterFirst, src.reads.Load())
}

func TestLineCache_InterleavedCursors(t *testing.T) {
	c := newLineCache(strings.NewReader("one\ntwo\nthree\n"))

	a := c.Cursor()
	b := c.Cursor()

	require.True(t, a.Next())
	require.True(t, a.Next())
	require.True(t, b.Next())
	assert.Equal(t, "one", b.Line().Message)
	require.True(t, b.Next())
	assert.Equal(t, "two", b.Line().Message)
	require.True(t, b.Next())
	assert.Equal(t, "three", b.Line().Message)
	require.True(t, a.Next())
	assert.Equal(t, "three", a.Line().Message)

	assert.False(t, a.Next())
	assert.False(t, b.Next())
	assert.NoError(t, a.Err())
	assert.NoError(t, b.Err())
}

func TestLineCache_ConcurrentDrains(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "line %03d\n", i)
	}
	src := &countingReader{t: t, r: strings.NewReader(sb.String())}
	c := newLineCache(src)

	const workers = 4
	results := make([][]Line, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			cur := c.Cursor()
			for cur.Next() {
				results[w] = append(results[w], cur.Line())
			}
			if err := cur.Err(); err != nil {
				t.Errorf("worker %d: %v", w, err)
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w], "worker %d diverged", w)
	}
	assert.Len(t, results[0], 200)
}

func TestLineCache_ReadErrorIsCachedForAllCursors(t *testing.T) {
	cause := errors.New("pipe burst")
	src := io.MultiReader(
		strings.NewReader("ok line\n"),
		&failingReader{err: cause},
	)
	c := newLineCache(src)

	a := c.Cursor()
	require.True(t, a.Next())
	assert.False(t, a.Next())

	var readErr *ReadError
	require.ErrorAs(t, a.Err(), &readErr)
	assert.ErrorIs(t, a.Err(), cause)

	// A second cursor replays the good line, then hits the same cached
	// terminal error without touching the source again.
	b := c.Cursor()
	require.True(t, b.Next())
	assert.Equal(t, "ok line", b.Line().Message)
	assert.False(t, b.Next())
	assert.ErrorIs(t, b.Err(), cause)
}

func TestLineCache_CloseStopsFurtherPulls(t *testing.T) {
	c := newLineCache(strings.NewReader("buffered\nnever read\n"))

	cur := c.Cursor()
	require.True(t, cur.Next())

	c.close()

	// Buffered lines stay replayable.
	replay := c.Cursor()
	require.True(t, replay.Next())
	assert.Equal(t, "buffered", replay.Line().Message)

	// Pulling past the buffer reports the misuse.
	assert.False(t, replay.Next())
	assert.ErrorIs(t, replay.Err(), ErrClosed)
	assert.False(t, cur.Next())
	assert.ErrorIs(t, cur.Err(), ErrClosed)
}

func TestLineCache_HandleCloseReleasesBlockedCursor(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	c := newLineCache(r)

	errCh := make(chan error, 1)
	go func() {
		cur := c.Cursor()
		for cur.Next() {
		}
		errCh <- cur.Err()
	}()

	// Let the cursor block on the empty pipe, then close the handle the
	// way a result owner does on abandonment.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, r.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("cursor still blocked after the handle was closed")
	}
}

type failingReader struct {
	err error
}

func (fr *failingReader) Read([]byte) (int, error) { return 0, fr.err }
