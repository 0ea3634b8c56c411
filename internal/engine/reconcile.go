package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/haldane/wt/internal/container"
	"github.com/haldane/wt/internal/state"
)

// reconcile merges st with filesystem truth and persists the result.
// It only observes the filesystem, never changes it, and produces no
// user-facing output. Must be called with the container lock held.
func (e *Engine) reconcile(st *state.State) error {
	onDisk, err := e.slotDirs()
	if err != nil {
		return err
	}

	for _, name := range onDisk {
		branch := ""
		// Detached HEAD and non-worktree directories both count as
		// vacant.
		if b, err := e.Git.CurrentBranch(e.Paths.SlotPath(name)); err == nil {
			branch = b
		}

		if slot, ok := st.Slots[name]; ok {
			slot.Branch = branch
			st.Slots[name] = slot
		} else {
			st.Slots[name] = state.Slot{
				Branch:     branch,
				LastUsedAt: time.Unix(0, 0).UTC(),
			}
		}
	}

	present := make(map[string]bool, len(onDisk))
	for _, name := range onDisk {
		present[name] = true
	}
	for name := range st.Slots {
		if !present[name] {
			delete(st.Slots, name)
		}
	}

	return state.Write(e.Paths.ControlDir, st)
}

// slotDirs lists the immediate subdirectories of the container root,
// excluding the control directory.
func (e *Engine) slotDirs() ([]string, error) {
	entries, err := os.ReadDir(e.Paths.Root)
	if err != nil {
		return nil, fmt.Errorf("reading container root %s: %w", e.Paths.Root, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == container.ControlDirName {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
