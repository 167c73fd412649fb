package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/git"
	"github.com/hay-kot/gitwrap/internal/core/styles"
	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type DiffCmd struct {
	flags *Flags

	// flags
	files      bool
	jsonOutput bool
}

func NewDiffCmd(flags *Flags) *DiffCmd {
	return &DiffCmd{flags: flags}
}

func (cmd *DiffCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "diff",
		Usage:     "Show what source has that target does not",
		UsageText: "gitwrap diff <target> <source> [--files] [--json]",
		Description: `Lists the commits reachable from source but not from target.

Use --files to list the changed files with added and deleted line counts instead.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "files",
				Usage:       "list changed files instead of commits",
				Destination: &cmd.files,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: BranchNameCompleter(cmd.flags),
		Action:        cmd.run,
	})
	return app
}

func (cmd *DiffCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("diff requires <target> and <source>")
	}
	target, source := c.Args().Get(0), c.Args().Get(1)

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	if cmd.files {
		changes, err := repo.ChangedFiles(ctx, target, source)
		if err != nil {
			return fmt.Errorf("diff %s..%s: %w", target, source, err)
		}
		return cmd.writeFiles(c, changes)
	}

	commits, err := repo.DifferenceBetweenBranches(ctx, target, source)
	if err != nil {
		return fmt.Errorf("diff %s..%s: %w", target, source, err)
	}

	return writeCommits(c, commits, cmd.jsonOutput)
}

func (cmd *DiffCmd) writeFiles(c *cli.Command, changes []git.FileChange) error {
	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, changes)
	}

	color := styles.Enabled(out)
	for _, f := range changes {
		_, _ = fmt.Fprintf(out, "%s %s %s\n",
			styles.Render(color, styles.AdditionsStyle, fmt.Sprintf("+%d", f.Additions)),
			styles.Render(color, styles.DeletionsStyle, fmt.Sprintf("-%d", f.Deletions)),
			changeLabel(f),
		)
	}
	return nil
}

func changeLabel(f git.FileChange) string {
	switch {
	case f.IsRename:
		return f.OldName + " => " + f.NewName
	case f.IsNew:
		return f.NewName + " (new)"
	case f.IsDelete:
		return f.OldName + " (deleted)"
	case f.IsBinary:
		return f.Name() + " (binary)"
	default:
		return f.Name()
	}
}
