package wrappers

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Execution is the captured outcome of a finished child process.
type Execution struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts a command and waits for it to exit.
//
// A non-zero exit code is reported in Execution.ExitCode and is not an error;
// the error return is reserved for failures to start or wait on the process.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Execution, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Execution, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Execution{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
