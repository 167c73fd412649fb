// Package executil provides shell execution utilities.
package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultShell is the interpreter used by RealExecutor when Shell is empty.
const DefaultShell = "sh"

// Result is the outcome of a single shell invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with code 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor runs shell scripts.
//
// A script that runs and exits non-zero is not an error: the exit code is
// reported in the Result. An error is returned only when the process could not
// be started or was interrupted.
type Executor interface {
	// RunSh executes script through the shell in dir (empty means inherit cwd).
	RunSh(ctx context.Context, dir, script string) (Result, error)
}

// RealExecutor calls actual shell commands.
type RealExecutor struct {
	// Shell overrides the interpreter. Defaults to DefaultShell.
	Shell string
}

// RunSh executes script with "<shell> -c" and captures stdout and stderr separately.
// An *exec.ExitError is never returned; its code is stored in the Result.
func (e *RealExecutor) RunSh(ctx context.Context, dir, script string) (Result, error) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}

	c := exec.CommandContext(ctx, shell, "-c", script)
	if dir != "" {
		c.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("exec %s: %w", shell, err)
	}

	return res, nil
}
