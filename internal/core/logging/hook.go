package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts repo_dir and operation from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if dir := GetRepoDir(ctx); dir != "" {
		e.Str("repo_dir", dir)
	}

	if op := GetOperation(ctx); op != "" {
		e.Str("operation", op)
	}
}
