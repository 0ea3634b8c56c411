package engine

import (
	"fmt"
	"os"

	"github.com/haldane/wt/internal/share"
	"github.com/haldane/wt/internal/state"
)

// CheckoutResult describes what a checkout did. RestoreWarning and
// ProvisionWarnings are non-fatal: the checkout succeeded and the
// caller reports them on stderr.
type CheckoutResult struct {
	Slot   string
	Path   string
	Reused bool // the branch was already checked out in Slot

	Evicted           string // branch evicted to make room, if any
	Stashed           bool   // evicted branch had work captured
	Restored          bool   // a stash for the new branch was reapplied
	RestoreWarning    error
	ProvisionWarnings []error
}

// Checkout places branch in exactly one slot, evicting the
// least-recently-used unpinned slot when the pool is full. Uncommitted
// work in the evicted slot is captured to the stash archive keyed by
// the outgoing branch; previously captured work for branch is reapplied
// unless noRestore is set.
func (e *Engine) Checkout(branch string, noRestore bool) (*CheckoutResult, error) {
	res := &CheckoutResult{}

	err := e.locked(func(st *state.State) (bool, error) {
		// Fast path: the branch already has a slot. Pinning never
		// blocks reusing a slot the user asked for by name.
		if name := st.SlotFor(branch); name != "" {
			slot := st.Slots[name]
			slot.LastUsedAt = e.now()
			st.Slots[name] = slot
			res.Slot = name
			res.Path = e.Paths.SlotPath(name)
			res.Reused = true
			return true, nil
		}

		name, ok := pickTarget(st)
		if !ok {
			return false, ErrAllSlotsPinned
		}
		slot := st.Slots[name]
		slotPath := e.Paths.SlotPath(name)

		if slot.Branch != "" {
			res.Evicted = slot.Branch
			stashed, err := e.evict(name, &slot)
			if err != nil {
				return true, err
			}
			res.Stashed = stashed
		} else {
			// Vacant slots keep an empty placeholder directory so
			// reconciliation retains them; clear it for worktree add.
			os.Remove(slotPath)
		}

		if !e.Git.BranchExists(e.Paths.RepoDir, branch) {
			e.parkSlot(st, name, slot)
			return true, fmt.Errorf("%w: %s", ErrUnknownBranch, branch)
		}

		if err := e.Git.WorktreeAdd(e.Paths.RepoDir, slotPath, branch); err != nil {
			e.parkSlot(st, name, slot)
			return true, err
		}

		res.ProvisionWarnings = share.Apply(e.Paths, e.Config, name, branch)

		if !noRestore {
			if handle, ok := e.lookupStash(branch); ok {
				if err := e.Git.StashApply(slotPath, handle); err != nil {
					res.RestoreWarning = fmt.Errorf("restoring stash for %s: %w", branch, err)
				} else {
					res.Restored = true
					if err := e.dropStash(branch); err != nil {
						res.RestoreWarning = err
					}
				}
			}
		}

		st.Slots[name] = state.Slot{
			Branch:     branch,
			LastUsedAt: e.now(),
			Pinned:     slot.Pinned,
		}
		res.Slot = name
		res.Path = slotPath
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// evict captures the outgoing branch's uncommitted work, removes the
// worktree, and deletes the slot directory. slot is updated in place to
// the vacant record but not yet stored.
func (e *Engine) evict(name string, slot *state.Slot) (stashed bool, err error) {
	slotPath := e.Paths.SlotPath(name)

	clean, err := e.Git.IsClean(slotPath)
	if err != nil {
		return false, err
	}
	if !clean {
		handle, err := e.Git.StashCreate(slotPath, "wt: "+slot.Branch)
		if err != nil {
			return false, err
		}
		if handle != "" {
			if err := e.saveStash(slot.Branch, handle); err != nil {
				return false, err
			}
			stashed = true
		}
	}

	if err := e.Git.WorktreeRemove(e.Paths.RepoDir, slotPath); err != nil {
		return stashed, err
	}
	if err := os.RemoveAll(slotPath); err != nil {
		return stashed, fmt.Errorf("removing slot directory %s: %w", slotPath, err)
	}

	slot.Branch = ""
	return stashed, nil
}

// parkSlot records name as vacant and recreates its placeholder
// directory so the slot survives reconciliation and the next checkout
// reuses it.
func (e *Engine) parkSlot(st *state.State, name string, slot state.Slot) {
	os.MkdirAll(e.Paths.SlotPath(name), 0o755)
	st.Slots[name] = state.Slot{
		LastUsedAt: slot.LastUsedAt,
		Pinned:     slot.Pinned,
	}
}

// pickTarget chooses the slot to allocate: any vacant slot first, then
// the unpinned slot with the oldest last_used_at. Ties break by slot
// name order.
func pickTarget(st *state.State) (string, bool) {
	names := st.SlotNames()

	for _, name := range names {
		if st.Slots[name].Branch == "" {
			return name, true
		}
	}

	best := ""
	for _, name := range names {
		slot := st.Slots[name]
		if slot.Pinned {
			continue
		}
		if best == "" || slot.LastUsedAt.Before(st.Slots[best].LastUsedAt) {
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
