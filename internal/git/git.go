// Package git wraps the git binary behind a small capability interface
// so the slot engine can be exercised against an in-memory fake.
package git

// Git is the set of operations the engine consumes. All paths are
// absolute. Branch names are plain (no refs/heads/ prefix).
type Git interface {
	// CurrentBranch returns the branch checked out at path, or "" for
	// a detached HEAD. A path that is not a worktree is an error.
	CurrentBranch(path string) (string, error)

	// BranchExists reports whether the branch exists in repo.
	BranchExists(repo, name string) bool

	// CreateBranch creates name at fromRef (HEAD when empty).
	CreateBranch(repo, name, fromRef string) error

	// DefaultBranch returns the repository's primary branch.
	DefaultBranch(repo string) (string, error)

	// Clone clones url into dir as a bare repository.
	Clone(url, dir string) error

	// InitBare initializes an empty bare repository at dir.
	InitBare(dir string) error

	// WorktreeAdd checks out branch into a new worktree at path.
	WorktreeAdd(repo, path, branch string) error

	// WorktreeRemove force-removes the worktree at path and its
	// registration.
	WorktreeRemove(repo, path string) error

	// StashCreate captures the worktree's uncommitted work, including
	// untracked files, and returns an opaque handle. Returns "" when
	// there was nothing to capture.
	StashCreate(path, message string) (string, error)

	// StashApply restores a captured stash into the worktree at path
	// and drops it from git's stash list on success.
	StashApply(path, handle string) error

	// IsClean reports whether the worktree at path has no uncommitted
	// changes and no untracked files.
	IsClean(path string) (bool, error)
}
