package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"
)

// Command describes one invocation of an external tool. Implementations
// live in the builder packages (mkvmerge, propedit); the runner only needs
// the ordered argv and a printable form.
type Command interface {
	fmt.Stringer
	// Argv returns the binary path followed by its ordered arguments.
	Argv() []string
}

// Executor spawns external tool processes and exposes their output as
// [Streaming] results.
type Executor struct {
	// Dir is the working directory for spawned processes. Empty means
	// inherit the current directory.
	Dir string
}

// Execute spawns the process described by c and returns without blocking
// on completion. Stdout and stderr are merged into a single pipe so
// diagnostic lines keep their emission order; ownership of the read end
// passes to the returned Streaming result, which is the sole party
// responsible for eventually closing it.
func (e *Executor) Execute(ctx context.Context, c Command) (*Streaming, error) {
	argv := c.Argv()
	if len(argv) == 0 {
		return nil, errors.New("runner: empty argv")
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("runner: create output pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("runner: starting %s: %w", argv[0], err)
	}

	// The child holds its own copy of the write end; close ours so the
	// read side sees EOF once the process exits.
	w.Close()

	wait := func() (int, error) {
		err := cmd.Wait()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.ExitCode(), nil
			}
			return 0, fmt.Errorf("runner: waiting for %s: %w", argv[0], err)
		}
		return 0, nil
	}

	return newStreaming(uuid.New().String(), c.String(), r, wait), nil
}
