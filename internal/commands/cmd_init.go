package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/git"
)

type InitCmd struct {
	flags *Flags
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a new git repository",
		UsageText: "gitwrap init [dir]",
		Description: `Creates the directory if needed and runs git init inside it.

Defaults to the directory given by --dir.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	dir := c.Args().First()
	if dir == "" {
		dir = cmd.flags.dir()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	repo, err := git.Create(ctx, dir, cmd.flags.config().Debug, cmd.flags.options())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Initialized git repository in %s\n", repo.Dir())
	return nil
}
