package commands

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v3"
)

type ExecCmd struct {
	flags *Flags
}

func NewExecCmd(flags *Flags) *ExecCmd {
	return &ExecCmd{flags: flags}
}

func (cmd *ExecCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:            "exec",
		Usage:           "Run any git subcommand in the repository",
		UsageText:       "gitwrap exec <git args...>",
		Description:     "Arguments are quoted and passed to git unchanged. A leading \"git\" is ignored.",
		SkipFlagParsing: true,
		Action:          cmd.run,
	})
	return app
}

func (cmd *ExecCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("exec requires a git subcommand")
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	out, err := repo.Git(ctx, shellquote.Join(args...))
	if err != nil {
		return err
	}

	if out != "" {
		_, _ = fmt.Fprintln(c.Root().Writer, out)
	}
	return nil
}
