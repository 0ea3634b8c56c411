package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/haldane/wt/internal/codec"
)

// stashEntry is one archived stash, stored as a TOML file per branch
// under .wt/stashes/ so the mapping survives worktree removal. Only
// touched under the container lock.
type stashEntry struct {
	Branch     string    `toml:"branch"`
	Handle     string    `toml:"handle"`
	CapturedAt time.Time `toml:"captured_at"`
}

func (e *Engine) stashPath(branch string) string {
	return filepath.Join(e.Paths.StashDir(), codec.Encode(branch)+".toml")
}

// saveStash records handle as the archived work for branch, replacing
// any earlier capture.
func (e *Engine) saveStash(branch, handle string) error {
	if err := os.MkdirAll(e.Paths.StashDir(), 0o755); err != nil {
		return fmt.Errorf("creating stash archive: %w", err)
	}

	entry := stashEntry{Branch: branch, Handle: handle, CapturedAt: e.now()}
	path := e.stashPath(branch)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing stash entry %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(entry); err != nil {
		return fmt.Errorf("encoding stash entry %s: %w", path, err)
	}
	return nil
}

// lookupStash returns the archived handle for branch, if any.
func (e *Engine) lookupStash(branch string) (string, bool) {
	var entry stashEntry
	if _, err := toml.DecodeFile(e.stashPath(branch), &entry); err != nil {
		return "", false
	}
	return entry.Handle, entry.Handle != ""
}

// dropStash removes the archive entry for branch. Absence is success.
func (e *Engine) dropStash(branch string) error {
	err := os.Remove(e.stashPath(branch))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dropping stash entry for %s: %w", branch, err)
	}
	return nil
}
