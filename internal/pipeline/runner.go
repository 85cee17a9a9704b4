package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrEmptyArgv is returned when there is nothing to execute.
var ErrEmptyArgv = errors.New("empty argument vector")

// Result holds the captured output of a finished process.
type Result struct {
	Stdout string
	Stderr string
}

// ExecError reports a process that exited non-zero, carrying its captured
// standard error for the caller.
type ExecError struct {
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return "command failed: " + s
	}
	return "command failed: " + e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// Runner executes one external tool invocation synchronously.
// The call blocks for the full duration of the process; there is no
// timeout, retry, or queueing at this layer.
type Runner interface {
	Run(ctx context.Context, argv []string) (Result, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec. The argument vector is
// passed to the process directly; no shell is involved.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, ErrEmptyArgv
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return res, &ExecError{Stderr: res.Stderr, Err: err}
	}
	return res, nil
}
