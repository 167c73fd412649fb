package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/hay-kot/gitwrap/internal/core/logging"
	"github.com/hay-kot/gitwrap/pkg/executil"
)

// statusPrefix marks commands allowed to exit with code 1. Git 1.5.x returns 1
// from "git status" on a clean but diverged tree.
const statusPrefix = "git status"

// ShellCommand runs a command line through the host shell with the working
// directory changed to dir first.
type ShellCommand struct {
	dir         string
	commandLine string
	debug       bool

	exec     executil.Executor
	debugOut io.Writer
	logger   zerolog.Logger
}

// NewShellCommand creates a ShellCommand backed by the real shell. Debug output
// goes to stdout.
func NewShellCommand(dir, commandLine string, debug bool) *ShellCommand {
	return &ShellCommand{
		dir:         dir,
		commandLine: strings.TrimSpace(commandLine),
		debug:       debug,
		exec:        &executil.RealExecutor{},
		debugOut:    os.Stdout,
		logger:      logging.Component(logging.GitComponent),
	}
}

// ShellCommandFactory returns a CommandFactory producing ShellCommands that run
// through exec and write debug output to debugOut. Nil arguments keep the
// NewShellCommand defaults.
func ShellCommandFactory(exec executil.Executor, debugOut io.Writer, logger *zerolog.Logger) CommandFactory {
	return func(dir, commandLine string, debug bool) Command {
		c := NewShellCommand(dir, commandLine, debug)
		if exec != nil {
			c.exec = exec
		}
		if debugOut != nil {
			c.debugOut = debugOut
		}
		if logger != nil {
			c.logger = *logger
		}
		return c
	}
}

// Dir returns the directory the command runs in.
func (c *ShellCommand) Dir() string { return c.dir }

// CommandLine returns the command text without the directory prefix.
func (c *ShellCommand) CommandLine() string { return c.commandLine }

// ComposedLine returns the exact line handed to the shell.
func (c *ShellCommand) ComposedLine() string {
	return fmt.Sprintf("cd %s && %s", shellquote.Join(c.dir), c.commandLine)
}

// Run executes the command once and returns its trimmed stdout.
func (c *ShellCommand) Run(ctx context.Context) (string, error) {
	line := c.ComposedLine()

	if c.debug {
		_, _ = fmt.Fprintln(c.debugOut, line)
	}

	start := time.Now()
	res, err := c.exec.RunSh(ctx, "", line)
	if err != nil {
		return "", fmt.Errorf("run %q: %w", c.commandLine, err)
	}

	c.logger.Debug().Ctx(ctx).
		Str("cmd", line).
		Int("exit_code", res.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("command finished")

	if c.debug {
		_, _ = fmt.Fprintln(c.debugOut, res.Stdout)
	}

	if !c.succeeded(res.ExitCode) {
		output := strings.TrimSpace(res.Stderr)
		if output == "" {
			output = strings.TrimSpace(res.Stdout)
		}
		return "", &ExecutionError{
			CommandLine: line,
			ExitCode:    res.ExitCode,
			Output:      output,
		}
	}

	return strings.TrimSpace(res.Stdout), nil
}

func (c *ShellCommand) succeeded(code int) bool {
	switch code {
	case 0:
		return true
	case 1:
		return strings.HasPrefix(c.commandLine, statusPrefix)
	default:
		return false
	}
}
