package engine

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/haldane/wt/internal/config"
	"github.com/haldane/wt/internal/container"
	"github.com/haldane/wt/internal/state"
)

// fakeGit implements git.Git in memory, mirroring worktree directories
// onto the real filesystem so the reconciler sees the same truth the
// engine does.
type fakeGit struct {
	mu        sync.Mutex
	branches  map[string]bool
	worktrees map[string]*fakeWorktree // keyed by worktree path
	stashes   map[string]string        // handle -> captured work
	nextStash int

	failWorktreeAdd bool
}

type fakeWorktree struct {
	branch string
	work   string // uncommitted work; "" means clean
}

func newFakeGit(branches ...string) *fakeGit {
	g := &fakeGit{
		branches:  map[string]bool{},
		worktrees: map[string]*fakeWorktree{},
		stashes:   map[string]string{},
	}
	for _, b := range branches {
		g.branches[b] = true
	}
	return g
}

func (g *fakeGit) CurrentBranch(path string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		return "", fmt.Errorf("git branch --show-current: not a worktree: %s", path)
	}
	return wt.branch, nil
}

func (g *fakeGit) BranchExists(repo, name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.branches[name]
}

func (g *fakeGit) CreateBranch(repo, name, fromRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.branches[name] = true
	return nil
}

func (g *fakeGit) DefaultBranch(repo string) (string, error) {
	return "main", nil
}

func (g *fakeGit) Clone(url, dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (g *fakeGit) InitBare(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (g *fakeGit) WorktreeAdd(repo, path, branch string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWorktreeAdd {
		return fmt.Errorf("git worktree add %s: forced failure", path)
	}
	if !g.branches[branch] {
		return fmt.Errorf("git worktree add %s: invalid reference: %s", path, branch)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	g.worktrees[path] = &fakeWorktree{branch: branch}
	return nil
}

func (g *fakeGit) WorktreeRemove(repo, path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.worktrees, path)
	return nil
}

func (g *fakeGit) StashCreate(path, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		return "", fmt.Errorf("git stash push: not a worktree: %s", path)
	}
	if wt.work == "" {
		return "", nil
	}
	g.nextStash++
	handle := fmt.Sprintf("stash-%d", g.nextStash)
	g.stashes[handle] = wt.work
	wt.work = ""
	return handle, nil
}

func (g *fakeGit) StashApply(path, handle string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		return fmt.Errorf("git stash apply: not a worktree: %s", path)
	}
	work, ok := g.stashes[handle]
	if !ok {
		return fmt.Errorf("git stash apply %s: not a valid reference", handle)
	}
	wt.work = work
	delete(g.stashes, handle)
	return nil
}

func (g *fakeGit) IsClean(path string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		return false, fmt.Errorf("git status: not a worktree: %s", path)
	}
	return wt.work == "", nil
}

// smudge marks the worktree at path dirty with the given content.
func (g *fakeGit) smudge(t *testing.T, path, work string) {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		t.Fatalf("smudge: %s is not a worktree", path)
	}
	wt.work = work
}

// switchBranch simulates a user running git checkout inside a slot.
func (g *fakeGit) switchBranch(t *testing.T, path, branch string) {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	wt, ok := g.worktrees[path]
	if !ok {
		t.Fatalf("switchBranch: %s is not a worktree", path)
	}
	wt.branch = branch
}

// newTestEngine builds a container on disk with the given vacant slots
// and returns an engine over a fake git with the given branches.
func newTestEngine(t *testing.T, slots []string, branches ...string) (*Engine, *fakeGit) {
	t.Helper()
	root := t.TempDir()
	paths := container.At(root)

	for _, dir := range []string{paths.ControlDir, paths.StashDir(), paths.RepoDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	st := state.Empty()
	epoch := time.Unix(0, 0).UTC()
	for _, name := range slots {
		if err := os.Mkdir(paths.SlotPath(name), 0o755); err != nil {
			t.Fatal(err)
		}
		st.Slots[name] = state.Slot{LastUsedAt: epoch}
	}
	if err := state.Write(paths.ControlDir, st); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.SlotCount = len(slots)

	g := newFakeGit(branches...)
	e := New(paths, cfg, g)

	// Deterministic, strictly increasing clock.
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex
	tick := 0
	e.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return e, g
}

// readState reads the persisted state document for assertions.
func readState(t *testing.T, e *Engine) *state.State {
	t.Helper()
	st, err := state.Read(e.Paths.ControlDir)
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	return st
}
