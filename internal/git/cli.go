package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CLI implements Git over the git binary.
type CLI struct{}

// NewCLI returns the real git implementation.
func NewCLI() CLI {
	return CLI{}
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (CLI) CurrentBranch(path string) (string, error) {
	return run(path, "branch", "--show-current")
}

func (CLI) BranchExists(repo, name string) bool {
	_, err := run(repo, "rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

func (CLI) CreateBranch(repo, name, fromRef string) error {
	args := []string{"branch", name}
	if fromRef != "" {
		args = append(args, fromRef)
	}
	_, err := run(repo, args...)
	return err
}

func (CLI) DefaultBranch(repo string) (string, error) {
	// Try origin/HEAD first
	out, err := run(repo, "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		return strings.TrimPrefix(out, "refs/remotes/origin/"), nil
	}
	// Fallback: check for main or master
	for _, name := range []string{"main", "master"} {
		if _, err := run(repo, "rev-parse", "--verify", "refs/heads/"+name); err == nil {
			return name, nil
		}
	}
	return "main", nil
}

func (CLI) Clone(url, dir string) error {
	_, err := run("", "clone", "--bare", url, dir)
	return err
}

func (CLI) InitBare(dir string) error {
	_, err := run("", "init", "--bare", dir)
	return err
}

func (CLI) WorktreeAdd(repo, path, branch string) error {
	_, err := run(repo, "worktree", "add", path, branch)
	return err
}

func (CLI) WorktreeRemove(repo, path string) error {
	if _, err := run(repo, "worktree", "remove", "--force", path); err != nil {
		// The directory may already be gone; pruning clears the stale
		// registration.
		if _, pruneErr := run(repo, "worktree", "prune"); pruneErr != nil {
			return err
		}
	}
	return nil
}

func (CLI) StashCreate(path, message string) (string, error) {
	before, _ := run(path, "rev-parse", "refs/stash")

	if _, err := run(path, "stash", "push", "--include-untracked", "-m", message); err != nil {
		return "", err
	}

	after, err := run(path, "rev-parse", "refs/stash")
	if err != nil || after == before {
		// Nothing was captured (the worktree was clean).
		return "", nil
	}
	return after, nil
}

func (CLI) StashApply(path, handle string) error {
	if _, err := run(path, "stash", "apply", handle); err != nil {
		return err
	}

	// Drop the entry from the stash list now that it is restored.
	out, err := run(path, "stash", "list", "--format=%H")
	if err != nil {
		return nil
	}
	for i, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == handle {
			_, _ = run(path, "stash", "drop", fmt.Sprintf("stash@{%d}", i))
			break
		}
	}
	return nil
}

func (CLI) IsClean(path string) (bool, error) {
	out, err := run(path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}
