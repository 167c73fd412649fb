package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// BranchNameCompleter returns a ShellCompleteFunc that suggests local branch
// names as positional completions. Set this as the ShellComplete field on any
// cli.Command that accepts branch names as arguments.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func BranchNameCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		repo, err := flags.OpenRepo()
		if err != nil {
			return
		}

		branches, err := repo.Branches(ctx, "")
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, b := range branches {
			_, _ = fmt.Fprintln(w, b)
		}
	}
}
