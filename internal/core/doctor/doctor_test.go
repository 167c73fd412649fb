package doctor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gitwrap/internal/core/config"
	"github.com/hay-kot/gitwrap/internal/core/git"
	"github.com/hay-kot/gitwrap/pkg/executil"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(context.Context) Result {
	return Result{Name: c.name, Items: c.items}
}

func TestRunAllAndSummary(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{pass("x", ""), warn("y", "")}},
		staticCheck{name: "b", items: []CheckItem{fail("z", ""), pass("w", "")}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func fakeRepoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	return dir
}

func recordingOptions(rec *executil.RecordingExecutor) git.Options {
	nop := zerolog.Nop()
	return git.Options{
		NewCommand: git.ShellCommandFactory(rec, io.Discard, &nop),
		Logger:     &nop,
	}
}

func TestRepositoryCheck(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Results: map[string]executil.Result{
				"git branch":              {Stdout: "  feature\n* main\n"},
				"config --get user.name":  {Stdout: "Ada\n"},
				"config --get user.email": {Stdout: "ada@example.com\n"},
			},
		}
		dir := fakeRepoDir(t)

		result := NewRepositoryCheck(dir, recordingOptions(rec)).Run(context.Background())

		assert.Equal(t, []CheckItem{
			pass("repository", dir),
			pass("branch", "main"),
			pass("user.name", "Ada"),
			pass("user.email", "ada@example.com"),
		}, result.Items)
	})

	t.Run("fresh repository", func(t *testing.T) {
		rec := &executil.RecordingExecutor{
			Results: map[string]executil.Result{
				"config --get": {ExitCode: 1},
			},
		}

		result := NewRepositoryCheck(fakeRepoDir(t), recordingOptions(rec)).Run(context.Background())

		require.Len(t, result.Items, 4)
		assert.Equal(t, warn("branch", "no commits yet"), result.Items[1])
		assert.Equal(t, StatusWarn, result.Items[2].Status)
		assert.Equal(t, StatusWarn, result.Items[3].Status)
	})

	t.Run("not a repository", func(t *testing.T) {
		rec := &executil.RecordingExecutor{}
		dir := t.TempDir()

		result := NewRepositoryCheck(dir, recordingOptions(rec)).Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, fail("repository", dir+" is not a valid Git repository"), result.Items[0])
		assert.Empty(t, rec.Commands)
	})
}

func TestConfigCheck(t *testing.T) {
	gitPath := filepath.Join(t.TempDir(), "git")
	require.NoError(t, os.WriteFile(gitPath, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	t.Run("defaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.GitPath = gitPath

		result := NewConfigCheck(&cfg, filepath.Join(t.TempDir(), "missing.yaml")).Run(context.Background())

		assert.Equal(t, []CheckItem{
			pass("file", "not found, using defaults"),
			pass("valid", ""),
		}, result.Items)
	})

	t.Run("missing executable", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.GitPath = "/nonexistent/git-12345"
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("git_path: /nonexistent/git-12345\n"), 0o644))

		result := NewConfigCheck(&cfg, path).Run(context.Background())

		require.Len(t, result.Items, 2)
		assert.Equal(t, pass("file", path), result.Items[0])
		assert.Equal(t, "git_path", result.Items[1].Label)
		assert.Equal(t, StatusFail, result.Items[1].Status)
	})

	t.Run("structural error", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Log.Count = 0

		result := NewConfigCheck(&cfg, "").Run(context.Background())

		require.Len(t, result.Items, 2)
		assert.Equal(t, fail("valid", "log.count must be at least 1"), result.Items[1])
	})
}
