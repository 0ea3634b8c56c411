package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/haldane/wt/internal/config"
	"github.com/haldane/wt/internal/container"
	"github.com/haldane/wt/internal/git"
	"github.com/haldane/wt/internal/state"
)

// Init creates a container at root: the control directory, a bare
// repository (cloned from url, or empty when url is ""), the default
// config, and slotCount vacant slot directories.
func Init(root, url string, slotCount int, g git.Git) (*Engine, error) {
	paths := container.At(root)

	if _, err := os.Stat(paths.ControlDir); err == nil {
		return nil, fmt.Errorf("already a container: %s", root)
	}

	for _, dir := range []string{paths.ControlDir, paths.StashDir(), paths.SharedDir(), paths.TemplateDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := config.Init(paths.ConfigPath(), slotCount); err != nil {
		return nil, err
	}
	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		return nil, err
	}

	if url != "" {
		err = g.Clone(url, paths.RepoDir)
	} else {
		err = g.InitBare(paths.RepoDir)
	}
	if err != nil {
		return nil, err
	}

	names, err := newSlotNames(cfg.SlotCount)
	if err != nil {
		return nil, err
	}

	st := state.Empty()
	epoch := time.Unix(0, 0).UTC()
	for _, name := range names {
		if err := os.Mkdir(paths.SlotPath(name), 0o755); err != nil {
			return nil, fmt.Errorf("creating slot %s: %w", name, err)
		}
		st.Slots[name] = state.Slot{LastUsedAt: epoch}
	}
	if err := state.Write(paths.ControlDir, st); err != nil {
		return nil, err
	}

	return New(paths, cfg, g), nil
}

// SetPinned sets or clears the pinned flag. slot may be empty, in which
// case the slot containing cwd is used. Returns the resolved slot name.
func (e *Engine) SetPinned(slot, cwd string, pinned bool) (string, error) {
	var resolved string
	err := e.locked(func(st *state.State) (bool, error) {
		name := slot
		if name == "" {
			name = container.CurrentSlotName(cwd, e.Paths)
			if name == "" {
				return false, ErrNotInSlot
			}
		}
		s, ok := st.Slots[name]
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
		}

		resolved = name
		if s.Pinned == pinned {
			return false, nil
		}
		s.Pinned = pinned
		st.Slots[name] = s
		return true, nil
	})
	return resolved, err
}

// ResumeResult names the most recently used occupied slot.
type ResumeResult struct {
	Slot    string
	Path    string
	Branch  string
	Already bool // cwd is already inside the slot
}

// Resume finds the occupied slot with the newest last_used_at.
func (e *Engine) Resume(cwd string) (*ResumeResult, error) {
	res := &ResumeResult{}

	err := e.locked(func(st *state.State) (bool, error) {
		best := ""
		for _, name := range st.SlotNames() {
			slot := st.Slots[name]
			if slot.Branch == "" {
				continue
			}
			if best == "" || slot.LastUsedAt.After(st.Slots[best].LastUsedAt) {
				best = name
			}
		}
		if best == "" {
			return false, ErrNoSlotsInUse
		}

		res.Slot = best
		res.Path = e.Paths.SlotPath(best)
		res.Branch = st.Slots[best].Branch
		res.Already = container.CurrentSlotName(cwd, e.Paths) == best
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SlotInfo is one row of the reconciled slot table.
type SlotInfo struct {
	Name       string
	Branch     string
	LastUsedAt time.Time
	Pinned     bool
	Current    bool
}

// Slots returns the reconciled slot table in name order.
func (e *Engine) Slots(cwd string) ([]SlotInfo, error) {
	var infos []SlotInfo
	current := container.CurrentSlotName(cwd, e.Paths)

	err := e.locked(func(st *state.State) (bool, error) {
		for _, name := range st.SlotNames() {
			slot := st.Slots[name]
			infos = append(infos, SlotInfo{
				Name:       name,
				Branch:     slot.Branch,
				LastUsedAt: slot.LastUsedAt,
				Pinned:     slot.Pinned,
				Current:    name == current,
			})
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}
