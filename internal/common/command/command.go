// Package command runs external executables and reports their exit status.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrCommandFailed indicates a command exited with a non-zero status
	ErrCommandFailed = errors.New("command failed")
)

// Result holds the outcome of a finished command
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Err returns nil on success, otherwise ErrCommandFailed carrying the exit
// status and the trimmed stderr
func (r *Result) Err() error {
	if r.Success() {
		return nil
	}
	stderr := strings.TrimSpace(r.Stderr)
	if stderr == "" {
		return fmt.Errorf("%w: exit status %d", ErrCommandFailed, r.ExitCode)
	}
	return fmt.Errorf("%w: exit status %d: %s", ErrCommandFailed, r.ExitCode, stderr)
}

// Runner executes a command in a working directory.
// A non-zero exit status is reported through Result.ExitCode, not as an error;
// the error is reserved for commands that could not be started at all.
type Runner interface {
	Run(dir, name string, args ...string) (*Result, error)
}

// ExecRunner implements Runner with os/exec
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir and waits for it to exit
func (ExecRunner) Run(dir, name string, args ...string) (*Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	result := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result, nil
}

// Ensure ExecRunner implements Runner interface
var _ Runner = ExecRunner{}
