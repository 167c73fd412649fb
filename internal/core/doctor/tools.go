package doctor

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/hay-kot/gitwrap/pkg/executil"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the configured git executable can be run.
type ToolsCheck struct {
	gitPath string
	exec    executil.Executor
}

// NewToolsCheck creates a new tools check for gitPath.
func NewToolsCheck(gitPath string, runner executil.Executor) *ToolsCheck {
	return &ToolsCheck{gitPath: gitPath, exec: runner}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	path, err := lookPathFunc(c.gitPath)
	if err != nil {
		item := fail("git", c.gitPath+" not found")
		// point at a usable git when the configured one is missing
		if onPath, err := lookPathFunc("git"); err == nil && onPath != c.gitPath {
			item.Detail += ", set git_path to " + onPath
		}
		result.Items = append(result.Items, item)
		return result
	}
	result.Items = append(result.Items, pass("git", path))

	res, err := c.exec.RunSh(ctx, "", shellquote.Join(path, "--version"))
	switch {
	case err != nil:
		result.Items = append(result.Items, fail("version", err.Error()))
	case !res.Success():
		result.Items = append(result.Items, fail("version", strings.TrimSpace(res.Stderr)))
	default:
		result.Items = append(result.Items, pass("version", strings.TrimSpace(res.Stdout)))
	}

	return result
}
