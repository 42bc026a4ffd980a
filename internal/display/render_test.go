package display

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/backmassage/mkvkit/internal/config"
	"github.com/backmassage/mkvkit/internal/runner"
	"github.com/backmassage/mkvkit/internal/term"
)

// shellCmd runs a shell snippet, standing in for a real tool invocation.
type shellCmd struct{ script string }

func (c shellCmd) Argv() []string { return []string{"sh", "-c", c.script} }
func (c shellCmd) String() string { return "sh -c '" + c.script + "'" }

func TestRender_AllParts(t *testing.T) {
	term.Configure(config.ColorNever)

	exe := &runner.Executor{}
	res, err := exe.Execute(context.Background(), shellCmd{script: "echo processing; echo done"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	m, err := res.Wait()
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}

	var buf bytes.Buffer
	opts := Options{ShowCommand: true, ShowOutput: true, ShowExitCode: true}
	if err := Render(&buf, m, opts); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	want := "$ sh -c 'echo processing; echo done'\n  processing\n  done\n  exit code: 0\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestRender_FailedResult(t *testing.T) {
	term.Configure(config.ColorNever)

	exe := &runner.Executor{}
	res, err := exe.Execute(context.Background(), shellCmd{script: "echo 'Error: no such property'; exit 2"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	_, err = res.Wait()
	var failed *runner.FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Wait() error = %v, want FailedError", err)
	}

	var buf bytes.Buffer
	opts := Options{ShowOutput: true, ShowExitCode: true}
	if err := Render(&buf, failed.Result, opts); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	want := "  Error: no such property\n  exit code: 2\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestRender_ZeroOptions(t *testing.T) {
	term.Configure(config.ColorNever)

	exe := &runner.Executor{}
	res, err := exe.Execute(context.Background(), shellCmd{script: "echo ignored"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	m, err := res.Wait()
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, m, Options{}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("zero options should render nothing, got %q", buf.String())
	}
}

func TestOptionsFrom_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := OptionsFrom(&cfg)

	if opts.ShowCommand {
		t.Error("ShowCommand should default to off")
	}
	if !opts.ShowOutput {
		t.Error("ShowOutput should default to on")
	}
	if !opts.ShowExitCode {
		t.Error("ShowExitCode should default to on")
	}
}

func TestRenderCommand(t *testing.T) {
	term.Configure(config.ColorNever)

	var buf bytes.Buffer
	RenderCommand(&buf, shellCmd{script: "true"})

	want := "$ sh -c 'true'\n"
	if buf.String() != want {
		t.Errorf("RenderCommand() = %q, want %q", buf.String(), want)
	}
}
