package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/hay-kot/gitwrap/internal/core/logging"
)

// leadingGit matches a "git " token callers may put in front of a subcommand.
var leadingGit = regexp.MustCompile(`^git\s`)

// Options tunes how a Repository invokes git.
type Options struct {
	// GitExecutable is the path or name of the git binary. Defaults to DefaultExecutable.
	GitExecutable string
	// NewCommand builds the execution strategy. Defaults to NewShellCommand.
	NewCommand CommandFactory
	// DebugWriter receives composed command lines and output when debug is on.
	// Only used with the default NewCommand. Defaults to stdout.
	DebugWriter io.Writer
	// Logger is used for operation logs. Defaults to the "git" component logger.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.GitExecutable == "" {
		o.GitExecutable = DefaultExecutable
	}
	if o.Logger == nil {
		l := logging.Component(logging.GitComponent)
		o.Logger = &l
	}
	if o.NewCommand == nil {
		o.NewCommand = ShellCommandFactory(nil, o.DebugWriter, o.Logger)
	}
	return o
}

// Repository is a git working tree driven through the git executable.
type Repository struct {
	dir    string
	debug  bool
	opts   Options
	logger zerolog.Logger
}

// Open returns a Repository for dir. It fails with *InvalidRepositoryError
// unless dir/.git/HEAD exists.
func Open(dir string, debug bool, opts Options) (*Repository, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git", "HEAD")); err != nil {
		return nil, &InvalidRepositoryError{Dir: dir}
	}

	opts = opts.withDefaults()

	return &Repository{
		dir:    dir,
		debug:  debug,
		opts:   opts,
		logger: opts.Logger.With().Str("repo", dir).Logger(),
	}, nil
}

// Create runs "git init" in dir and opens the result. dir does not need to be
// a repository yet.
func Create(ctx context.Context, dir string, debug bool, opts Options) (*Repository, error) {
	opts = opts.withDefaults()

	cmd := opts.NewCommand(dir, opts.GitExecutable+" init", debug)
	if _, err := cmd.Run(ctx); err != nil {
		return nil, fmt.Errorf("init %s: %w", dir, err)
	}

	return Open(dir, debug, opts)
}

// Clone runs "git clone url dir" from the process working directory and opens
// the cloned repository.
func Clone(ctx context.Context, url, dir string, debug bool, opts Options) (*Repository, error) {
	opts = opts.withDefaults()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	line := opts.GitExecutable + " clone " + shellquote.Join(url, dir)
	if _, err := opts.NewCommand(cwd, line, debug).Run(ctx); err != nil {
		return nil, fmt.Errorf("clone %s to %s: %w", url, dir, err)
	}

	return Open(dir, debug, opts)
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// NewCommand builds a Command for commandLine with the repository's execution
// strategy and debug setting.
func (r *Repository) NewCommand(dir, commandLine string) Command {
	return r.opts.NewCommand(dir, commandLine, r.debug)
}

// Git runs any git subcommand in the repository, like "status" or
// "checkout -b mybranch origin/mybranch". A leading "git " is accepted and
// replaced by the configured executable.
func (r *Repository) Git(ctx context.Context, command string) (string, error) {
	command = leadingGit.ReplaceAllString(command, "")
	line := r.opts.GitExecutable + " " + command

	ctx = logging.WithRepoDir(ctx, r.dir)
	return r.NewCommand(r.dir, line).Run(ctx)
}

func (r *Repository) op(ctx context.Context, name string) context.Context {
	return logging.WithOperation(ctx, name)
}

// Branches lists local branch names, or others depending on flags (e.g. "-a").
// Whitespace and the current-branch marker are removed from each entry.
func (r *Repository) Branches(ctx context.Context, flags string) ([]string, error) {
	out, err := r.Git(r.op(ctx, "branches"), strings.TrimSpace("branch "+flags))
	if err != nil {
		return nil, err
	}

	branches := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		name := strings.Map(func(c rune) rune {
			if unicode.IsSpace(c) || c == '*' {
				return -1
			}
			return c
		}, line)
		if name != "" {
			branches = append(branches, name)
		}
	}

	return branches, nil
}

// CurrentBranch returns the checked out branch. ok is false when no branch is
// marked current, as in a repository without commits.
func (r *Repository) CurrentBranch(ctx context.Context) (name string, ok bool, err error) {
	out, err := r.Git(r.op(ctx, "current-branch"), "branch")
	if err != nil {
		return "", false, err
	}

	if out == "" {
		return "", false, nil
	}

	for _, line := range strings.Split(out, "\n") {
		if branch, found := strings.CutPrefix(line, "* "); found {
			return branch, true, nil
		}
	}

	return "", false, nil
}

// HasBranch reports whether name is a local branch.
func (r *Repository) HasBranch(ctx context.Context, name string) (bool, error) {
	branches, err := r.Branches(ctx, "")
	if err != nil {
		return false, err
	}
	return slices.Contains(branches, name), nil
}

// Tags lists tag names in git's order.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	out, err := r.Git(r.op(ctx, "tags"), "tag")
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0)
	if out == "" {
		return tags, nil
	}

	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			tags = append(tags, line)
		}
	}

	return tags, nil
}

// Commits returns up to n commits from HEAD, newest first.
func (r *Repository) Commits(ctx context.Context, n int) ([]Commit, error) {
	out, err := r.Git(r.op(ctx, "commits"), fmt.Sprintf("log -n %d %s", n, logArgs()))
	if err != nil {
		return nil, err
	}
	return parseCommits(out), nil
}

// LastCommit returns the HEAD commit. A repository without commits fails with
// the *ExecutionError from git log.
func (r *Repository) LastCommit(ctx context.Context) (Commit, error) {
	commits, err := r.Commits(ctx, 1)
	if err != nil {
		return Commit{}, err
	}
	if len(commits) == 0 {
		return Commit{}, ErrNoCommits
	}
	return commits[0], nil
}

// DifferenceBetweenBranches returns the commits reachable from source but not
// from target (git log target..source).
func (r *Repository) DifferenceBetweenBranches(ctx context.Context, target, source string) ([]Commit, error) {
	out, err := r.Git(r.op(ctx, "branch-difference"), fmt.Sprintf("log %s %s", revisionRange(target, source), logArgs()))
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Ctx(ctx).
		Str("target", target).
		Str("source", source).
		Msg("computed branch difference")

	return parseCommits(out), nil
}

// revisionRange returns target..source quoted as a single shell word.
func revisionRange(target, source string) string {
	return shellquote.Join(target + ".." + source)
}

// parseCommits is ParseLog with empty output mapped to no commits, as for an
// empty target..source range.
func parseCommits(out string) []Commit {
	if out == "" {
		return []Commit{}
	}
	return ParseLog(out)
}

// Configuration returns a new Configuration bound to r. Each call has its own cache.
func (r *Repository) Configuration() *Configuration {
	return newConfiguration(r)
}
