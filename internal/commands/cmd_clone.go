package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/git"
)

type CloneCmd struct {
	flags *Flags
}

func NewCloneCmd(flags *Flags) *CloneCmd {
	return &CloneCmd{flags: flags}
}

func (cmd *CloneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clone",
		Usage:     "Clone a repository",
		UsageText: "gitwrap clone <url> [dir]",
		Description: `Clones url into dir. When dir is omitted the repository name of the
url is used, the same directory git clone would pick.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *CloneCmd) run(ctx context.Context, c *cli.Command) error {
	url := c.Args().Get(0)
	if url == "" {
		return fmt.Errorf("clone requires a repository url")
	}

	dir := c.Args().Get(1)
	if dir == "" {
		dir = git.ExtractRepoName(url)
	}
	if dir == "" || dir == "." || dir == "/" {
		return fmt.Errorf("cannot derive a directory from %q, pass one explicitly", url)
	}

	repo, err := git.Clone(ctx, url, dir, cmd.flags.config().Debug, cmd.flags.options())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Cloned %s into %s\n", url, repo.Dir())
	return nil
}
