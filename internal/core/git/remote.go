package git

import (
	"path"
	"strings"
)

// ExtractOwnerRepo extracts the owner and repository name from a remote URL.
// Supports SSH (git@host:owner/repo.git) and HTTPS forms. Returns empty strings
// when the URL has fewer than two path segments.
func ExtractOwnerRepo(remote string) (owner, repo string) {
	rest := remote
	if i := strings.Index(rest, "://"); i != -1 {
		rest = rest[i+3:]
		if j := strings.Index(rest, "/"); j != -1 {
			rest = rest[j+1:]
		} else {
			return "", ""
		}
	} else if i := strings.Index(rest, ":"); i != -1 {
		rest = rest[i+1:]
	} else {
		return "", ""
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) < 2 {
		return "", ""
	}

	owner = parts[len(parts)-2]
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	return owner, repo
}

// ExtractRepoName returns the repository name of a remote URL or local path,
// the directory git clone would create for it.
func ExtractRepoName(remote string) string {
	if _, repo := ExtractOwnerRepo(remote); repo != "" {
		return repo
	}

	// scp-like host:path, where the colon comes before any slash
	if !strings.Contains(remote, "://") {
		if i := strings.Index(remote, ":"); i != -1 && !strings.Contains(remote[:i], "/") {
			remote = remote[i+1:]
		}
	}

	return strings.TrimSuffix(path.Base(strings.TrimRight(remote, "/")), ".git")
}
