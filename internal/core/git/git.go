// Package git wraps the git executable. Commands are composed as shell command
// lines, executed in the repository directory through a pluggable Command
// strategy, and well-known outputs (branch lists, tags, logs) are parsed into
// structured values.
package git

import "context"

// DefaultExecutable is the git binary used when Options.GitExecutable is empty.
const DefaultExecutable = "/usr/bin/git"

// Command runs one composed command line.
type Command interface {
	// Run executes the command and returns its trimmed standard output.
	// A failed execution is reported as an *ExecutionError.
	Run(ctx context.Context) (string, error)
}

// CommandFactory builds the Command used to run commandLine in dir.
type CommandFactory func(dir, commandLine string, debug bool) Command
