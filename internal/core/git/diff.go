package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// FileChange summarizes one file changed between two revisions.
type FileChange struct {
	OldName   string `json:"old_name,omitempty"`
	NewName   string `json:"new_name,omitempty"`
	IsNew     bool   `json:"is_new,omitempty"`
	IsDelete  bool   `json:"is_delete,omitempty"`
	IsRename  bool   `json:"is_rename,omitempty"`
	IsBinary  bool   `json:"is_binary,omitempty"`
	Additions int64  `json:"additions"`
	Deletions int64  `json:"deletions"`
}

// Name returns the path of the file after the change, or before it for deletions.
func (f FileChange) Name() string {
	if f.NewName != "" {
		return f.NewName
	}
	return f.OldName
}

// ChangedFiles returns the files that differ between target and source
// (git diff target..source).
func (r *Repository) ChangedFiles(ctx context.Context, target, source string) ([]FileChange, error) {
	// Zero context lines keep every patch line non-blank, so trimming the
	// command output cannot break hunk line counts.
	out, err := r.Git(r.op(ctx, "changed-files"), "diff --no-color --no-ext-diff --unified=0 "+revisionRange(target, source))
	if err != nil {
		return nil, err
	}

	return parseFileChanges(out)
}

func parseFileChanges(patch string) ([]FileChange, error) {
	changes := make([]FileChange, 0)
	if patch == "" {
		return changes, nil
	}

	files, _, err := gitdiff.Parse(strings.NewReader(patch + "\n"))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	for _, f := range files {
		fc := FileChange{
			OldName:  f.OldName,
			NewName:  f.NewName,
			IsNew:    f.IsNew,
			IsDelete: f.IsDelete,
			IsRename: f.IsRename,
			IsBinary: f.IsBinary,
		}
		for _, frag := range f.TextFragments {
			fc.Additions += frag.LinesAdded
			fc.Deletions += frag.LinesDeleted
		}
		changes = append(changes, fc)
	}

	return changes, nil
}
