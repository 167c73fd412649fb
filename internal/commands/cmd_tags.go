package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type TagsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

func NewTagsCmd(flags *Flags) *TagsCmd {
	return &TagsCmd{flags: flags}
}

func (cmd *TagsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tags",
		Usage:     "List tags",
		UsageText: "gitwrap tags [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON array",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *TagsCmd) run(ctx context.Context, c *cli.Command) error {
	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	tags, err := repo.Tags(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, tags)
	}

	for _, t := range tags {
		_, _ = fmt.Fprintln(out, t)
	}
	return nil
}
