package executil

import (
	"context"
	"strings"
	"sync"
)

// RecordedCommand captures a script that was executed.
type RecordedCommand struct {
	Dir    string
	Script string
}

// RecordingExecutor captures scripts for testing.
// Configure Results and Errors to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Results maps a script fragment to the result returned for any script
	// containing it. The longest matching fragment wins.
	Results map[string]Result

	// Errors maps a script fragment to the error returned for it.
	Errors map[string]error
}

// RunSh records the script and returns the configured result/error.
func (e *RecordingExecutor) RunSh(ctx context.Context, dir, script string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Dir:    dir,
		Script: script,
	})

	var res Result
	if key, ok := longestMatch(e.Results, script); ok {
		res = e.Results[key]
	}

	var err error
	if key, ok := longestMatch(e.Errors, script); ok {
		err = e.Errors[key]
	}

	return res, err
}

// Last returns the most recently recorded script, or an empty command.
func (e *RecordingExecutor) Last() RecordedCommand {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.Commands) == 0 {
		return RecordedCommand{}
	}
	return e.Commands[len(e.Commands)-1]
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}

func longestMatch[V any](m map[string]V, script string) (string, bool) {
	best, found := "", false
	for k := range m {
		if strings.Contains(script, k) && (!found || len(k) > len(best)) {
			best, found = k, true
		}
	}
	return best, found
}
