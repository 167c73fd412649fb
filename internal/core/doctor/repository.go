package doctor

import (
	"context"

	"github.com/hay-kot/gitwrap/internal/core/git"
)

// userEmail is the git option holding the committer email.
const userEmail = "user.email"

// RepositoryCheck verifies that dir is a repository ready for commits.
type RepositoryCheck struct {
	dir  string
	opts git.Options
}

func NewRepositoryCheck(dir string, opts git.Options) *RepositoryCheck {
	return &RepositoryCheck{dir: dir, opts: opts}
}

func (c *RepositoryCheck) Name() string {
	return "Repository"
}

func (c *RepositoryCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	repo, err := git.Open(c.dir, false, c.opts)
	if err != nil {
		result.Items = append(result.Items, fail("repository", err.Error()))
		return result
	}
	result.Items = append(result.Items, pass("repository", repo.Dir()))

	branch, ok, err := repo.CurrentBranch(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, fail("branch", err.Error()))
	case !ok:
		result.Items = append(result.Items, warn("branch", "no commits yet"))
	default:
		result.Items = append(result.Items, pass("branch", branch))
	}

	cfg := repo.Configuration()
	for _, option := range []string{git.UserName, userEmail} {
		if value := cfg.Get(ctx, option, ""); value != "" {
			result.Items = append(result.Items, pass(option, value))
		} else {
			result.Items = append(result.Items, warn(option, "not set, commits will fail"))
		}
	}

	return result
}
