package runner

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"sync"
)

// LineCache adapts a single-pass output stream into a replayable sequence
// of classified lines. Lines are pulled from the source lazily, classified
// exactly once, and appended to a shared append-only buffer; cursors replay
// the buffer before pulling further. All access is serialized, so any
// number of cursors share exactly one read of the underlying OS stream and
// observe a consistent, monotonically growing buffer.
type LineCache struct {
	mu     sync.Mutex
	src    *bufio.Scanner
	lines  []Line
	err    error // terminal condition, cached once set
	done   bool  // source fully drained
	closed bool
}

func newLineCache(r io.Reader) *LineCache {
	return &LineCache{src: bufio.NewScanner(r)}
}

// sealedLineCache returns a cache with fixed content and no live source.
// Backs [Materialized] results.
func sealedLineCache(lines []Line) *LineCache {
	return &LineCache{lines: lines, done: true}
}

// Cursor returns a new cursor positioned at the start of the sequence.
// Cursors are independent: each replays the full buffer from the beginning.
func (c *LineCache) Cursor() *Cursor {
	return &Cursor{cache: c}
}

// next returns the line at position pos, pulling one line from the live
// source when the buffer does not yet reach that far. ok is false when the
// sequence ends at pos, either cleanly (err nil) or on the cached terminal
// error. The pull blocks while the process has produced no further output
// but has not closed its stream.
func (c *LineCache) next(pos int) (line Line, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pos < len(c.lines) {
		return c.lines[pos], true, nil
	}
	if c.done {
		return Line{}, false, c.err
	}
	if c.closed {
		return Line{}, false, ErrClosed
	}

	// pos == len(c.lines): pull while holding the lock, so the OS stream
	// has a single logical reader and no pull is ever duplicated.
	if c.src.Scan() {
		line = Classify(c.src.Text())
		c.lines = append(c.lines, line)
		return line, true, nil
	}
	c.done = true
	if scanErr := c.src.Err(); scanErr != nil {
		if errors.Is(scanErr, fs.ErrClosed) {
			// The owner closed the OS handle to abandon the stream; the
			// interrupted pull is a deliberate stop, not an I/O failure.
			c.closed = true
			c.err = ErrClosed
		} else {
			c.err = &ReadError{Err: scanErr}
		}
	}
	return Line{}, false, c.err
}

// drain reads the source to completion and returns the full buffered
// sequence. Blocking: returns only after the process closes its output.
func (c *LineCache) drain() ([]Line, error) {
	cur := c.Cursor()
	for cur.Next() {
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines, nil
}

// close stops further pulls. Buffered lines stay replayable; a cursor that
// runs past them before the source was drained observes [ErrClosed]. The
// owner must close the OS handle before calling this: that interrupts a
// pull blocked in the source, which would otherwise hold the lock until
// the process produced output.
func (c *LineCache) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Cursor iterates a [LineCache] in emission order. Obtain cursors from
// [LineCache.Cursor]; the zero value is not usable. Usage follows
// bufio.Scanner: Next advances, Line returns the current entry, and Err
// reports the terminal error once Next has returned false.
type Cursor struct {
	cache *LineCache
	pos   int
	cur   Line
	err   error
}

// Next advances to the next classified line, pulling from the live source
// when the cursor passes the end of the shared buffer. It blocks while the
// process is still running and has produced no further output.
func (cu *Cursor) Next() bool {
	line, ok, err := cu.cache.next(cu.pos)
	if !ok {
		cu.err = err
		return false
	}
	cu.pos++
	cu.cur = line
	return true
}

// Line returns the line read by the most recent successful Next.
func (cu *Cursor) Line() Line { return cu.cur }

// Err returns the terminal error, if any, once Next has returned false.
func (cu *Cursor) Err() error { return cu.err }
