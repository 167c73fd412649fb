package git

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRepository is matched by *InvalidRepositoryError.
	ErrInvalidRepository = errors.New("not a valid git repository")

	// ErrNoCommits is returned by LastCommit when the log is empty.
	ErrNoCommits = errors.New("repository has no commits")
)

// InvalidRepositoryError reports a directory without a .git/HEAD file.
type InvalidRepositoryError struct {
	Dir string
}

func (e *InvalidRepositoryError) Error() string {
	return e.Dir + " is not a valid Git repository"
}

func (e *InvalidRepositoryError) Is(target error) bool {
	return target == ErrInvalidRepository
}

// ExecutionError reports a command that exited with a failing code.
type ExecutionError struct {
	// CommandLine is the full line passed to the shell, including the cd prefix.
	CommandLine string
	ExitCode    int
	// Output is the captured stderr, or stdout when stderr was empty.
	Output string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("Command %s failed with code %d: %s", e.CommandLine, e.ExitCode, e.Output)
}

// ExitCode returns the exit code carried by an *ExecutionError in err's chain,
// or -1 when there is none.
func ExitCode(err error) int {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.ExitCode
	}
	return -1
}
