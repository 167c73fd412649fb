package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/git"
	"github.com/hay-kot/gitwrap/internal/core/styles"
	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type LogCmd struct {
	flags *Flags

	// flags
	count      int
	jsonOutput bool
}

// NewLogCmd creates the log and last commands.
func NewLogCmd(flags *Flags) *LogCmd {
	return &LogCmd{flags: flags}
}

func (cmd *LogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "log",
			Usage:     "Show recent commits",
			UsageText: "gitwrap log [-n <count>] [--json]",
			Description: `Shows the newest commits reachable from HEAD.

The count defaults to log.count from the config file. Use --json for one JSON
object per commit.`,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:        "count",
					Aliases:     []string{"n"},
					Usage:       "number of commits to show (defaults to log.count)",
					Destination: &cmd.count,
				},
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON lines",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.run,
		},
		&cli.Command{
			Name:      "last",
			Usage:     "Show the HEAD commit",
			UsageText: "gitwrap last [--json]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.runLast,
		},
	)
	return app
}

func (cmd *LogCmd) run(ctx context.Context, c *cli.Command) error {
	n := cmd.count
	if n <= 0 {
		n = cmd.flags.config().Log.Count
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	commits, err := repo.Commits(ctx, n)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}

	return writeCommits(c, commits, cmd.jsonOutput)
}

func (cmd *LogCmd) runLast(ctx context.Context, c *cli.Command) error {
	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	commit, err := repo.LastCommit(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNoCommits) {
			return cli.Exit("repository has no commits", 1)
		}
		return fmt.Errorf("read last commit: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, commit)
	}

	printCommits(c.Root().Writer, []git.Commit{commit})
	return nil
}

// writeCommits prints commits as a table or, with asJSON, as JSON lines.
func writeCommits(c *cli.Command, commits []git.Commit, asJSON bool) error {
	out := c.Root().Writer
	if asJSON {
		for _, commit := range commits {
			if err := iojson.WriteLine(out, commit); err != nil {
				return fmt.Errorf("encode commit: %w", err)
			}
		}
		return nil
	}

	printCommits(out, commits)
	return nil
}

func printCommits(out io.Writer, commits []git.Commit) {
	color := styles.Enabled(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, commit := range commits {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			styles.Render(color, styles.HashStyle, shortHash(commit.ID)),
			styles.Render(color, styles.MutedStyle, commit.AuthoredDate),
			commit.Author.Name,
			commit.Message,
		)
	}
	_ = w.Flush()
}

func shortHash(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
