package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// InitTestRepo creates a temporary git repository on branch main with
// an initial commit. Returns the path to the repo directory.
func InitTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	RunGit(t, dir, "init", "-b", "main")
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "user.name", "Test")

	WriteFile(t, dir, "README.md", "# test\n")
	RunGit(t, dir, "add", ".")
	RunGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// InitBareClone clones src into a bare repository and configures a
// committer identity so stashes can be created in its worktrees.
func InitBareClone(t *testing.T, src string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "repo")

	RunGit(t, "", "clone", "--bare", src, dir)
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "user.name", "Test")

	return dir
}

// CreateBranch creates a new branch in the given repo directory.
func CreateBranch(t *testing.T, dir, branch string) {
	t.Helper()
	RunGit(t, dir, "branch", branch)
}

// MakeCommit creates a new commit with a dummy file change.
func MakeCommit(t *testing.T, dir, message string) {
	t.Helper()
	// Create a unique file to avoid conflicts
	name := "commit-" + message + ".txt"
	WriteFile(t, dir, name, message+"\n")
	RunGit(t, dir, "add", ".")
	RunGit(t, dir, "commit", "-m", message)
}

// WriteFile creates or overwrites a file in the given directory.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// RunGit runs a git command in dir, failing the test on error.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(),
		"GIT_CONFIG_GLOBAL="+os.DevNull,
		"GIT_CONFIG_SYSTEM="+os.DevNull,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %s\n%s", args, err, string(out))
	}
	return string(out)
}
