// Package logging holds component loggers and the context fields attached to
// every git invocation log line.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GitComponent names the logger used for git invocations. Its events carry
// repo_dir and operation when logged with a context built by WithRepoDir and
// WithOperation through a logger hooked with ContextHook.
const GitComponent = "git"

// Component creates a logger tagged with the "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
