package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_EmptyRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	out, err := repo.Git(ctx, "branch")
	require.NoError(t, err)
	assert.Empty(t, out)

	branches, err := repo.Branches(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, branches)

	_, ok, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := repo.HasBranch(ctx, "main")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = repo.Git(ctx, "checkout main")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)

	_, err = repo.LastCommit(ctx)
	require.ErrorAs(t, err, &execErr)
}

func TestIntegration_UnknownCommandFails(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Git(context.Background(), "unknown")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.NotZero(t, execErr.ExitCode)
}

func TestIntegration_InvalidExecutable(t *testing.T) {
	repo := newTestRepo(t)
	bad, err := Open(repo.Dir(), false, Options{GitExecutable: "/usr/bin/git-foobar"})
	require.NoError(t, err)

	_, err = bad.Git(context.Background(), "status")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 127, execErr.ExitCode)
}

func TestIntegration_Create(t *testing.T) {
	gitPath := requireGit(t)
	dir := t.TempDir()
	require.NoDirExists(t, filepath.Join(dir, ".git"))

	_, err := Create(context.Background(), dir, false, Options{GitExecutable: gitPath})
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, ".git"))
}

func TestIntegration_Configuration(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	cfg := repo.Configuration()

	assert.Equal(t, "unset", cfg.Get(ctx, "core.editor", "unset"))

	require.NoError(t, cfg.Set(ctx, "core.editor", "nano"))
	assert.Equal(t, "nano", cfg.Get(ctx, "core.editor", "unset"))

	require.NoError(t, cfg.Remove(ctx, "core.editor"))
	assert.Equal(t, "unset", cfg.Get(ctx, "core.editor", "unset"))

	var execErr *ExecutionError
	require.ErrorAs(t, cfg.Remove(ctx, "core.editor"), &execErr)
}

func TestIntegration_Committing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	commitFile(t, repo, "README.md", "No, finally, do not read me.", "Add README.md")
	require.NoError(t, os.Remove(filepath.Join(repo.Dir(), "README.md")))
	_, err := repo.Git(ctx, "rm README.md")
	require.NoError(t, err)
	_, err = repo.Git(ctx, `commit -m "Remove README.md"`)
	require.NoError(t, err)

	commits, err := repo.Commits(ctx, 7)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	userName := repo.Configuration().Get(ctx, UserName, "")
	assert.Equal(t, "Test User", userName)

	assert.Equal(t, "Remove README.md", commits[0].Message)
	assert.Equal(t, userName, commits[0].Author.Name)
	assert.Equal(t, userName, commits[0].Committer.Name)
	assert.Equal(t, "test@example.com", commits[0].Author.Email)
	assert.Len(t, commits[0].ID, 40)
	assert.Len(t, commits[0].Tree, 40)
	assert.NotEmpty(t, commits[0].AuthoredDate)
	assert.NotEmpty(t, commits[0].CommittedDate)
	assert.Equal(t, "Add README.md", commits[1].Message)

	last, err := repo.LastCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, commits[0], last)

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = repo.Git(ctx, `tag -am "tag 1" first_tag`)
	require.NoError(t, err)
	_, err = repo.Git(ctx, `tag -am "tag 2" second_tag`)
	require.NoError(t, err)

	tags, err = repo.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_tag", "second_tag"}, tags)

	_, err = repo.Git(ctx, "checkout -b test")
	require.NoError(t, err)

	current, ok, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "test", current)

	commitFile(t, repo, "CHANGELOG.md", "Nothing yet.", "Add CHANGELOG.md")

	diff, err := repo.DifferenceBetweenBranches(ctx, "main", "test")
	require.NoError(t, err)
	require.Len(t, diff, 1)
	assert.Equal(t, "Add CHANGELOG.md", diff[0].Message)

	changes, err := repo.ChangedFiles(ctx, "main", "test")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "CHANGELOG.md", changes[0].Name())
	assert.True(t, changes[0].IsNew)
	assert.Equal(t, int64(1), changes[0].Additions)
}

func TestIntegration_RefWithShellCharacters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	const branch = "x;touch${IFS}pwned;#"

	commitFile(t, repo, "README.md", "hello", "Add README")
	_, err := repo.Git(ctx, "checkout -q -b "+shellquote.Join(branch))
	require.NoError(t, err)
	commitFile(t, repo, "CHANGELOG.md", "Nothing yet.", "Add CHANGELOG.md")

	diff, err := repo.DifferenceBetweenBranches(ctx, "main", branch)
	require.NoError(t, err)
	require.Len(t, diff, 1)
	assert.Equal(t, "Add CHANGELOG.md", diff[0].Message)

	changes, err := repo.ChangedFiles(ctx, "main", branch)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.NoFileExists(t, filepath.Join(repo.Dir(), "pwned"))

	_, err = repo.DifferenceBetweenBranches(ctx, "main", "missing;true")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr, "a bad range fails instead of reporting no commits")
	assert.Equal(t, 128, execErr.ExitCode)
}

func TestIntegration_Branches(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	commitFile(t, repo, "a.txt", "a", "First")

	branches, err := repo.Branches(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, branches)

	_, err = repo.Git(ctx, "checkout -b other_branch")
	require.NoError(t, err)

	branches, err = repo.Branches(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "other_branch"}, branches)

	again, err := repo.Branches(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, branches, again)

	has, err := repo.HasBranch(ctx, "other_branch")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = repo.Git(ctx, "checkout main")
	require.NoError(t, err)
	current, _, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", current)

	_, err = repo.Git(ctx, "git checkout other_branch")
	require.NoError(t, err)
	current, _, err = repo.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "other_branch", current)
}

func TestIntegration_Clone(t *testing.T) {
	source := newTestRepo(t)
	ctx := context.Background()
	commitFile(t, source, "a.txt", "a", "First")

	dest := filepath.Join(t.TempDir(), "clone dest")
	repo, err := Clone(ctx, source.Dir(), dest, false, Options{GitExecutable: source.opts.GitExecutable})
	require.NoError(t, err)

	current, ok, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "main", current)

	last, err := repo.LastCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", last.Message)
}

func TestIntegration_Debug(t *testing.T) {
	gitPath := requireGit(t)

	t.Run("enabled writes command line", func(t *testing.T) {
		var out bytes.Buffer
		repo := newTestRepo(t)
		dbg, err := Open(repo.Dir(), true, Options{GitExecutable: gitPath, DebugWriter: &out})
		require.NoError(t, err)

		_, err = dbg.Git(context.Background(), "status")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "&& "+gitPath+" status")
	})

	t.Run("disabled writes nothing", func(t *testing.T) {
		var out bytes.Buffer
		repo := newTestRepo(t)
		quiet, err := Open(repo.Dir(), false, Options{GitExecutable: gitPath, DebugWriter: &out})
		require.NoError(t, err)

		_, err = quiet.Git(context.Background(), "status")
		require.NoError(t, err)
		assert.Empty(t, out.String())
	})
}

// installFakeGit puts a "git" script on PATH that prints its arguments and
// exits with code 1.
func installFakeGit(t *testing.T) {
	t.Helper()
	bin := t.TempDir()
	script := "#!/bin/sh\necho \"fake $*\"\nexit 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "git"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestIntegration_StatusExitCodeOverride(t *testing.T) {
	installFakeGit(t)
	repo, err := Open(fakeRepoDir(t), false, Options{GitExecutable: "git"})
	require.NoError(t, err)
	ctx := context.Background()

	out, err := repo.Git(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, "fake status", out)

	out, err = repo.Git(ctx, "statusx")
	require.NoError(t, err)
	assert.Equal(t, "fake statusx", out)

	_, err = repo.Git(ctx, "log")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Equal(t, "fake log", execErr.Output)
}
