package commands

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/styles"
	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type BranchesCmd struct {
	flags *Flags

	// flags
	all        bool
	match      string
	jsonOutput bool
}

// NewBranchesCmd creates the branches and current commands.
func NewBranchesCmd(flags *Flags) *BranchesCmd {
	return &BranchesCmd{flags: flags}
}

func (cmd *BranchesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "branches",
			Usage:     "List branches",
			UsageText: "gitwrap branches [--all] [--match <glob>] [--json]",
			Description: `Lists local branch names, one per line, marking the current branch.

Use --all to include remote-tracking branches and --match to filter names with
a glob such as "feature/**".`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "all",
					Aliases:     []string{"a"},
					Usage:       "include remote-tracking branches",
					Destination: &cmd.all,
				},
				&cli.StringFlag{
					Name:        "match",
					Aliases:     []string{"m"},
					Usage:       "only list branches matching the glob",
					Destination: &cmd.match,
				},
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.run,
		},
		&cli.Command{
			Name:      "current",
			Usage:     "Print the current branch",
			UsageText: "gitwrap current",
			Action:    cmd.runCurrent,
		},
	)
	return app
}

// branchList is the JSON output format for gitwrap branches --json.
type branchList struct {
	Current  string   `json:"current"`
	Branches []string `json:"branches"`
}

func (cmd *BranchesCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	var branchFlags string
	if cmd.all {
		branchFlags = "-a"
	}

	branches, err := repo.Branches(ctx, branchFlags)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}

	branches = filterBranches(branches, cmd.match)

	current, _, err := repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("current branch: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, branchList{Current: current, Branches: branches})
	}

	color := styles.Enabled(out)
	for _, b := range branches {
		if b == current {
			_, _ = fmt.Fprintf(out, "* %s\n", styles.Render(color, styles.CurrentBranchStyle, b))
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s\n", b)
	}

	return nil
}

func (cmd *BranchesCmd) runCurrent(ctx context.Context, c *cli.Command) error {
	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	current, ok, err := repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("current branch: %w", err)
	}
	if !ok {
		return cli.Exit("no current branch", 1)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, current)
	return nil
}

// filterBranches keeps the names matching pattern. An empty pattern keeps all.
func filterBranches(branches []string, pattern string) []string {
	if pattern == "" {
		return branches
	}

	matched := make([]string, 0, len(branches))
	for _, b := range branches {
		if ok, _ := doublestar.Match(pattern, b); ok {
			matched = append(matched, b)
		}
	}
	return matched
}
